package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/bidsync/internal/buildinfo"
	"github.com/dmitrijs2005/bidsync/internal/devserver"
	"github.com/dmitrijs2005/bidsync/internal/devserver/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := devserver.NewApp(cfg)

	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}
