package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies it; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Verify(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Home(ctx context.Context) error
	Chat(ctx context.Context) error
	Messages(ctx context.Context, roomID string) error
	Say(ctx context.Context, roomID, content string) error
	Board(ctx context.Context) error
	Admin(ctx context.Context) error
}

// runREPL reads lines from the scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Command errors are not
// propagated here; handlers print their own messages, which keeps the loop
// resilient. The loop exits on EOF or "exit"/"quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("portal %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: home, chat, messages <room>, say <room> <text>, board, admin, whoami, logout, exit")
			} else {
				printlnFn("Available commands: login, verify, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "verify":
			_ = a.Verify(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "home", "news":
			_ = a.Home(ctx)

		case "chat", "rooms":
			_ = a.Chat(ctx)

		case "messages":
			if len(args) == 0 {
				printlnFn("Usage: messages <room-id>")
				continue
			}
			_ = a.Messages(ctx, args[0])

		case "say":
			if len(args) < 2 {
				printlnFn("Usage: say <room-id> <text>")
				continue
			}
			_ = a.Say(ctx, args[0], strings.Join(args[1:], " "))

		case "board":
			_ = a.Board(ctx)

		case "admin":
			_ = a.Admin(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
