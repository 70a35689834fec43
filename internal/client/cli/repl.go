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
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Send(ctx context.Context, message string) error
	History(ctx context.Context) error
	Seasons(ctx context.Context) error
	NewSeason(ctx context.Context) error
	Current(ctx context.Context) error
}

// runREPL starts a read-eval-print loop for the FasalMitra CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit". The "send" command forwards the rest of the line as the
// chat message; any other text typed while logged in is sent as chat too.
//
// Errors returned by command handlers are ignored here; handlers print
// their own errors. This keeps the loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("fasalmitra> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: send <message>, (h)istory, seasons, newseason, current, whoami, logout, exit")
				printlnFn("Anything else you type is sent to the advisor as a chat message.")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "send":
			_ = a.Send(ctx, strings.TrimSpace(strings.TrimPrefix(line, "send")))

		case "h", "history":
			_ = a.History(ctx)

		case "seasons":
			_ = a.Seasons(ctx)

		case "newseason":
			_ = a.NewSeason(ctx)

		case "current":
			_ = a.Current(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			if a.isLoggedIn() {
				_ = a.Send(ctx, strings.TrimSpace(line))
			} else {
				printlnFn("Unknown command:", cmd)
			}
		}
	}
}
