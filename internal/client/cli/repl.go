package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// fallbackMessage is shown when a command panics. It does not go through
// the translator, which may be what failed.
const fallbackMessage = "Unexpected error. Please try again."

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	Open(ctx context.Context, args []string) error
	Show(ctx context.Context) error
	More(ctx context.Context) error
	Bid(ctx context.Context, args []string) error
	Pledge(ctx context.Context, args []string) error
	Vote(ctx context.Context, args []string) error
	Suggest(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
}

const helpText = `Available commands:
  open <post id>                 open a post and follow its updates
  show | ls                      show the options of the open post
  more                           load the next page of options
  bid <amount> <option id>       bid on an auction option
  bid <amount> <new title...>    bid on a new auction option
  pledge <amount> <option id>    pledge to a crowdfunding reward
  vote <option id> <votes>       buy votes for a poll option
  suggest <title...>             propose a new option
  delete <option id>             delete an option
  login | logout                 switch between an account and guest mode
  exit | quit                    leave the program`

// runREPL starts a simple read–eval–print loop for the bidsync CLI.
//
// It reads a line from reader, parses the first token as the command and
// dispatches to methods on 'a'. Unknown commands are reported back to the
// user. The loop exits on EOF or when the user types "exit" or "quit".
//
// Errors returned by command handlers are ignored here; handlers report
// their own errors. A panicking handler is recovered and the loop goes on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("bidsync %s > ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if cmd == "exit" || cmd == "quit" {
			printlnFn("Bye!")
			return
		}

		dispatch(ctx, a, cmd, args)
	}
}

func dispatch(ctx context.Context, a execIface, cmd string, args []string) {
	defer func() {
		if r := recover(); r != nil {
			printlnFn(fallbackMessage)
		}
	}()

	switch cmd {
	case "help":
		printlnFn(helpText)

	case "open":
		_ = a.Open(ctx, args)

	case "show", "ls":
		_ = a.Show(ctx)

	case "more":
		_ = a.More(ctx)

	case "bid":
		_ = a.Bid(ctx, args)

	case "pledge":
		_ = a.Pledge(ctx, args)

	case "vote":
		_ = a.Vote(ctx, args)

	case "suggest":
		_ = a.Suggest(ctx, args)

	case "delete":
		_ = a.Delete(ctx, args)

	case "login":
		_ = a.Login(ctx)

	case "logout":
		_ = a.Logout(ctx)

	default:
		printlnFn("Unknown command:", cmd)
	}
}
