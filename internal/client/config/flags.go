package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/bidsync/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-a string   address and port of the backend server
//	-p string   push channel base URL
//	-d string   local cache path
//	-l string   interface locale
//	-i int      online check interval in seconds
//
// os.Args is filtered with flagx.FilterArgs so flags of other components do
// not interfere.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-p", "-d", "-l", "-i"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port to access server")
	fs.StringVar(&cfg.PushURL, "p", cfg.PushURL, "push channel base URL")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "local cache database path")
	fs.StringVar(&cfg.Locale, "l", cfg.Locale, "interface locale")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
}
