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
	List(ctx context.Context) error
	Preview(ctx context.Context, arg string) error
	NewBill(ctx context.Context) error
	Logout(ctx context.Context) error
	Render(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the Billed CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. After every command the page requested through the
// navigator, if any, is rendered. The loop exits on scanner EOF, on context
// cancellation or when the user types "exit" or "quit".
//
// Commands:
//
//	Not logged in:
//	  - help             show available commands
//	  - register         create an employee account
//	  - login            authenticate
//	  - exit | quit      leave the program
//
//	Logged in:
//	  - help             show available commands
//	  - (b)ills          list bills, newest first
//	  - preview <n>      show the receipt of the n-th listed bill
//	  - new              fill in and send a new bill
//	  - logout           log out
//	  - exit | quit      leave the program
//
// Errors returned by command handlers are ignored here; handlers report to
// the user and log on their own.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("billed %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: (b)ills, preview <n>, new, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "b", "bills":
			_ = a.List(ctx)

		case "preview":
			if len(args) == 0 {
				printlnFn("Usage: preview <n>")
				continue
			}
			_ = a.Preview(ctx, args[0])

		case "new":
			_ = a.NewBill(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		_ = a.Render(ctx)
	}
}
