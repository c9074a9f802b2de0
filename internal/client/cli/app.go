package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/url"
	"os"
	"sync"

	"go.uber.org/multierr"

	"github.com/dmitrijs2005/plated/internal/client/client"
	"github.com/dmitrijs2005/plated/internal/client/config"
	"github.com/dmitrijs2005/plated/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/plated/internal/client/services"
	"github.com/dmitrijs2005/plated/internal/client/session"
	"github.com/dmitrijs2005/plated/internal/filex"
	"github.com/dmitrijs2005/plated/internal/logging"
)

// registerRoute is the screen shown between sign-in and the first profile
// view. It is never navigated to by the flows themselves.
const registerRoute = "/register"

type App struct {
	config *config.Config
	log    logging.Logger
	out    io.Writer
	db     *sql.DB
	store  session.TokenStore
	guard  *session.Guard
	api    client.Client
	routes services.Routes

	profile *services.ProfileFlow

	mu    sync.Mutex
	route string
	reg   *services.RegistrationFlow
}

// NewApp prepares the data directory, opens the session database and wires
// the API client, session guard and flows.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	if _, err := filex.EnsureDir(c.DataDir); err != nil {
		return nil, fmt.Errorf("prepare data dir: %w", err)
	}

	db, err := client.InitDatabase(ctx, c.DBPath())
	if err != nil {
		log.Error(ctx, "error initializing database", "err", err)
		return nil, err
	}

	store := session.NewMetadataTokenStore(metadata.NewSQLiteRepository(db))
	a := &App{
		config: c,
		log:    log,
		out:    os.Stdout,
		db:     db,
		store:  store,
		routes: services.Routes{Login: c.LoginRoute, Profile: c.ProfileRoute},
	}

	var opts []client.Option
	if c.RequestTimeout > 0 {
		opts = append(opts, client.WithTimeout(c.RequestTimeout))
	}
	policy := session.NewUnauthorizedPolicy(store, a, c.LoginRoute, log)
	api, err := client.NewHTTPClient(c.APIBaseURL, store, policy, log, opts...)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	a.api = api
	a.guard = session.NewGuard(store, log)
	a.profile = services.NewProfileFlow(api, a.guard, store, a, a.newChecker(), a.routes, log)
	return a, nil
}

func (a *App) newChecker() *services.AvailabilityChecker {
	return services.NewAvailabilityChecker(a.api, a.config.DebounceDelay, a.log)
}

// Navigate implements session.Navigator. It may be called from the
// availability checker's goroutine when a lookup gets a 401.
func (a *App) Navigate(route string) {
	a.mu.Lock()
	a.route = route
	if route != registerRoute {
		a.reg = nil
	}
	a.mu.Unlock()

	a.log.Debug(context.Background(), "navigate", "route", route)
	if route == a.routes.Login {
		fmt.Fprintf(a.out, "Signed out. Sign in with Google at %s, then run: register <redirect URL>\n", a.loginURL())
	}
}

func (a *App) loginURL() string {
	u, err := url.JoinPath(a.config.APIBaseURL, a.routes.Login)
	if err != nil {
		return a.config.APIBaseURL + a.routes.Login
	}
	return u
}

func (a *App) currentRoute() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.route
}

func (a *App) registration() *services.RegistrationFlow {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.reg
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	return a.guard.IsAuthenticated(ctx)
}

// Run starts the REPL on stdin and blocks until the user exits.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to Plated (type 'help' for commands)")
	if a.isLoggedIn(ctx) {
		_ = a.Profile(ctx)
	}
	runREPL(ctx, a, func() string { return a.status(ctx) }, bufio.NewScanner(os.Stdin))
}

// Close stops pending availability lookups and releases the session
// database.
func (a *App) Close() error {
	a.profile.Checker().Reset()
	if reg := a.registration(); reg != nil {
		reg.Checker().Reset()
	}
	if a.db == nil {
		return nil
	}
	_, optErr := a.db.Exec("PRAGMA optimize")
	return multierr.Combine(optErr, a.db.Close())
}
