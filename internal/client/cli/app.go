package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/countrytap/internal/client/client"
	"github.com/dmitrijs2005/countrytap/internal/client/config"
	"github.com/dmitrijs2005/countrytap/internal/client/models"
	"github.com/dmitrijs2005/countrytap/internal/client/search"
	"github.com/dmitrijs2005/countrytap/internal/client/services"
	"github.com/dmitrijs2005/countrytap/internal/client/store"
	"github.com/dmitrijs2005/countrytap/internal/client/toast"
	"github.com/dmitrijs2005/countrytap/internal/logging"
)

type App struct {
	config           *config.Config
	log              logging.Logger
	client           client.Client
	authService      services.AuthService
	favoritesService services.FavoriteService
	pipeline         *search.Pipeline
	toasts           *toast.Manager
	reader           *bufio.Reader
	out              io.Writer
	closers          []func() error
	closeOnce        sync.Once

	// mu guards the fields below and serializes writes to out, which happen
	// both from the REPL and from the debounce timer.
	mu        sync.Mutex
	user      *models.User
	pages     int
	lastState search.State
}

// NewApp wires the directory client, the configured store and the services
// behind the REPL. Close releases what NewApp opened.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	log := logging.New(os.Stderr, c.LogLevel)

	st, closeStore, err := openStore(ctx, c, log)
	if err != nil {
		log.Error(ctx, "error initializing storage", "storage", c.StorageType, "error", err)
		return nil, err
	}

	apiClient := client.NewHTTPClient(c.BaseURL, c.RequestTimeout, log)

	a := newApp(ctx, c, log, st, apiClient, os.Stdin, os.Stdout)
	a.closers = append(a.closers, closeStore)
	return a, nil
}

func newApp(ctx context.Context, c *config.Config, log logging.Logger, st *store.Store, cl client.Client,
	in io.Reader, out io.Writer, opts ...search.Option) *App {

	a := &App{
		config:           c,
		log:              log,
		client:           cl,
		authService:      services.NewAuthService(st, []byte(c.ProviderSecret), log),
		favoritesService: services.NewFavoriteService(st, cl, log),
		reader:           bufio.NewReader(in),
		out:              out,
		pages:            1,
	}

	opts = append([]search.Option{search.WithInterval(c.DebounceInterval), search.WithLogger(log)}, opts...)
	a.pipeline = search.New(ctx, cl, opts...)
	a.pipeline.Subscribe(a.onSnapshot)

	a.toasts = toast.NewManager(c.ToastDuration, nil, a.onToast)
	return a
}

// exitFn is a test seam for os.Exit.
var exitFn = os.Exit

// Run restores the session, loads the full list and blocks in the REPL
// until the user exits, input ends or a termination signal arrives.
func (a *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()
	defer a.Close()

	a.initSignalHandler(ctx, cancelFunc)

	a.printf("Welcome to countrytap (type 'help' for commands)\n")

	if u, err := a.authService.CurrentUser(ctx); err == nil && u != nil {
		a.setUser(u)
		a.printf("Signed in as %s\n", u.Email)
	}

	if err := a.All(ctx); err != nil {
		a.log.Warn(ctx, "initial load failed", "error", err)
	}

	scanner := bufio.NewScanner(a.reader)
	runREPL(ctx, a, a.getStatus, scanner)
}

// initSignalHandler exits the process on SIGINT, SIGTERM or SIGQUIT. The
// returned channel is closed once the handler stops, either after a signal or
// when ctx is done.
func (a *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) <-chan struct{} {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer signal.Stop(sigs)

		select {
		case <-sigs:
			cancelFunc()
			a.Close()
			printlnFn("Bye!")
			exitFn(0)
		case <-ctx.Done():
		}
	}()
	return done
}

// Close stops the pipeline and the toasts and releases the store. It is safe
// to call more than once.
func (a *App) Close() {
	a.closeOnce.Do(func() {
		a.pipeline.Close()
		a.toasts.Close()
		for _, c := range a.closers {
			if err := c(); err != nil {
				a.log.Warn(context.Background(), "close failed", "error", err)
			}
		}
	})
}

func (a *App) isLoggedIn() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.user != nil
}

func (a *App) setUser(u *models.User) {
	a.mu.Lock()
	a.user = u
	a.mu.Unlock()
}

func (a *App) currentUser() *models.User {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.user
}

func (a *App) getStatus() string {
	snap := a.pipeline.Snapshot()

	s := string(snap.Mode)
	if snap.Query != "" {
		s += fmt.Sprintf(" %q", snap.Query)
	}
	if u := a.currentUser(); u != nil {
		s = u.Name + " " + s
	}
	return fmt.Sprintf("(%s)", s)
}

func (a *App) printf(format string, args ...any) {
	a.mu.Lock()
	defer a.mu.Unlock()
	fmt.Fprintf(a.out, format, args...)
}

// onSnapshot prints the results of a debounced search once it settles.
func (a *App) onSnapshot(s search.Snapshot) {
	a.mu.Lock()
	defer a.mu.Unlock()

	prev := a.lastState
	a.lastState = s.State
	if s.State == prev {
		return
	}

	switch s.State {
	case search.Resolved:
		a.pages = 1
		fmt.Fprintln(a.out)
		a.renderPageLocked(s.Results)
	case search.Failed:
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, "Search failed, no countries to show.")
	}
}

func (a *App) onToast(t *toast.Toast) {
	if t == nil {
		return
	}
	a.printf("%s\n", t)
}

// renderPageLocked prints the first a.pages pages of cs.
func (a *App) renderPageLocked(cs []models.Country) {
	page, more := models.Paginate(cs, a.pages, a.config.PageSize)
	renderList(a.out, page)
	if more {
		fmt.Fprintf(a.out, "Showing %d of %d countries, type 'more' for the next page\n", len(page), len(cs))
	}
}
