package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Me(ctx context.Context) error
	Filters(ctx context.Context) error
	Recommend(ctx context.Context) error
	Save(ctx context.Context, args []string) error
	List(ctx context.Context) error
	Delete(ctx context.Context, args []string) error
	Export(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the Bookwise CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Unknown commands are reported back to the
// user. The loop exits on EOF or when the user types "exit" or "quit".
//
// Prompt & Commands
//
//	Not logged in:
//	  - help           show available commands
//	  - register       create an account
//	  - login          authenticate
//	  - filters        list accepted filter values
//	  - exit | quit    leave the program
//
//	Logged in:
//	  - me             show the current account
//	  - rec            ask for recommendations
//	  - save N         save book N of the last recommendation
//	  - (l)ist         list saved books
//	  - delete ID      delete a saved book
//	  - export         export saved books and print a download link
//	  - logout         forget the access token
//
// Errors returned by command handlers are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("bw%s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: me, rec, save N, (l)ist, delete ID, export, filters, logout, exit")
			} else {
				printlnFn("Available commands: register, login, filters, exit")
			}

		case "register":
			cmdErr = a.Register(ctx)

		case "login":
			cmdErr = a.Login(ctx)

		case "filters":
			cmdErr = a.Filters(ctx)

		case "me":
			cmdErr = a.Me(ctx)

		case "rec", "recommend":
			cmdErr = a.Recommend(ctx)

		case "save":
			cmdErr = a.Save(ctx, args)

		case "l", "list":
			cmdErr = a.List(ctx)

		case "delete":
			cmdErr = a.Delete(ctx, args)

		case "export":
			cmdErr = a.Export(ctx)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", cmdErr)
		}
	}
}
