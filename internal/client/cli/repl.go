package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/plated/internal/client/services"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn(ctx context.Context) bool
	Login(ctx context.Context) error
	Register(ctx context.Context, args []string) error
	Set(ctx context.Context, args []string) error
	Check(ctx context.Context) error
	Submit(ctx context.Context) error
	Profile(ctx context.Context) error
	Edit(ctx context.Context) error
	Save(ctx context.Context) error
	Cancel(ctx context.Context) error
	Whoami(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the Plated client.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. The loop exits on scanner EOF
// or when the user types "exit" or "quit".
//
//	Signed out:
//	  - login                       show where to sign in
//	  - register [url|token]        start registration with the sign-in redirect
//	  - set username|name|pic <v>   fill the registration form
//	  - check                       wait for the availability check
//	  - submit                      complete registration
//
//	Signed in:
//	  - profile                     show the profile
//	  - edit, set ..., save, cancel edit the profile
//	  - whoami                      show the (unverified) token claims
//	  - logout                      forget the session
//
// Errors from handlers are printed as user-facing messages and never stop
// the loop.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("plated %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var err error
		switch cmd {
		case "help":
			if a.isLoggedIn(ctx) {
				printlnFn("Available commands: profile, edit, set, check, save, cancel, whoami, logout, exit")
			} else {
				printlnFn("Available commands: login, register, set, check, submit, whoami, exit")
			}

		case "login":
			err = a.Login(ctx)
		case "register":
			err = a.Register(ctx, args)
		case "set":
			err = a.Set(ctx, args)
		case "check":
			err = a.Check(ctx)
		case "submit":
			err = a.Submit(ctx)
		case "profile":
			err = a.Profile(ctx)
		case "edit":
			err = a.Edit(ctx)
		case "save":
			err = a.Save(ctx)
		case "cancel":
			err = a.Cancel(ctx)
		case "whoami", "status":
			err = a.Whoami(ctx)
		case "logout":
			err = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			report(err)
		}
	}
}

// report prints err the way the user should see it.
func report(err error) {
	switch {
	case errors.Is(err, errUsage):
		printlnFn("Usage:", strings.TrimPrefix(err.Error(), errUsage.Error()+": "))
	case errors.Is(err, services.ErrNoHandoffToken):
		printlnFn("No token found. Sign in first.")
	case errors.Is(err, services.ErrCheckPending):
		printlnFn(msgChecking, "Run 'check' and submit again.")
	default:
		printlnFn("Error:", services.UserMessage(err, err.Error()))
	}
}
