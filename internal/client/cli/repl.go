package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/countrytap/internal/client/models"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	SetMode(ctx context.Context, mode string) error
	Search(ctx context.Context, query string) error
	Reset(ctx context.Context) error
	Filter(ctx context.Context, args []string) error
	Clear(ctx context.Context) error
	All(ctx context.Context) error
	More(ctx context.Context) error
	List(ctx context.Context) error
	Show(ctx context.Context, code string) error
	Favorite(ctx context.Context, code string, add bool) error
	Favorites(ctx context.Context) error
	Login(ctx context.Context) error
	LoginWithProvider(ctx context.Context, provider string) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
}

// runREPL starts a read–eval–print loop for the countrytap CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. The loop exits on scanner EOF or
// when the user types "exit" or "quit".
//
// Commands:
//
//	help                 show available commands
//	mode <m>             switch the search mode (name, fullText, capital, ...)
//	search <q...>        debounced search; results print when it settles
//	reset                clear the search, keep the filter
//	filter k=v ...       coarse filter by region=, language= and name=
//	clear                drop the filter, keep the search
//	all                  clear both and show every country
//	list | more          reprint the results or show the next page
//	show <code>          country details with its neighbours
//	fav | unfav <code>   add or remove a favorite (signed in only)
//	favs                 list favorites (signed in only)
//	login [provider]     sign in with email and password, or a provider
//	logout | whoami      end or show the session
//	exit | quit          leave the program
//
// Errors returned by command handlers are ignored here; handlers report
// their own errors to the user.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("countrytap %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "help":
			printlnFn("Available commands: mode, search, reset, filter, clear, all, list, more, show, login, whoami, exit")
			if a.isLoggedIn() {
				printlnFn("Signed in: fav, unfav, favs, logout")
			}
			printlnFn("Search modes:", joinModes())
			printlnFn("Regions:", strings.Join(models.Regions, ", "))
			printlnFn("Languages:", strings.Join(models.Languages, ", "))

		case "mode":
			if len(args) == 0 {
				printlnFn("Usage: mode <" + joinModes() + ">")
				continue
			}
			_ = a.SetMode(ctx, args[0])

		case "search", "s":
			_ = a.Search(ctx, strings.Join(args, " "))

		case "reset":
			_ = a.Reset(ctx)

		case "filter":
			if len(args) == 0 {
				printlnFn("Usage: filter [region=<region>] [language=<language>] [name=<name>]")
				continue
			}
			_ = a.Filter(ctx, args)

		case "clear":
			_ = a.Clear(ctx)

		case "all":
			_ = a.All(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "more":
			_ = a.More(ctx)

		case "show":
			if len(args) == 0 {
				printlnFn("Usage: show <code>")
				continue
			}
			_ = a.Show(ctx, args[0])

		case "fav", "unfav":
			if len(args) == 0 {
				printlnFn("Usage: " + cmd + " <code>")
				continue
			}
			_ = a.Favorite(ctx, args[0], cmd == "fav")

		case "favs":
			_ = a.Favorites(ctx)

		case "login":
			if len(args) > 0 {
				_ = a.LoginWithProvider(ctx, args[0])
			} else {
				_ = a.Login(ctx)
			}

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func joinModes() string {
	names := make([]string, 0, len(models.SearchModes))
	for _, m := range models.SearchModes {
		names = append(names, string(m))
	}
	return strings.Join(names, "|")
}
