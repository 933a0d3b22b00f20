package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/mkalinins/commportal/internal/client/api"
	"github.com/mkalinins/commportal/internal/client/config"
	"github.com/mkalinins/commportal/internal/client/session"
	"github.com/mkalinins/commportal/internal/client/tokenstore"
	"github.com/mkalinins/commportal/internal/logging"
)

// App ties together the session store, the backend client, and the
// interactive input loop.
type App struct {
	config *config.Config
	store  *session.Store
	client api.Client
	log    logging.Logger
	reader *bufio.Reader
	db     *sql.DB
}

// NewApp builds the application from configuration: opens the local state
// database, constructs the HTTP client and the session store.
func NewApp(cfg *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	db, err := tokenstore.OpenDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("opening local state: %w", err)
	}

	client := api.NewHTTPClient(cfg.ServerURL, cfg.RequestTimeout)
	tokens := tokenstore.New(tokenstore.NewSQLiteRepository(db))
	store := session.NewStore(client, tokens, log, session.Options{
		RestoreMode: cfg.RestoreMode,
	})

	return &App{
		config: cfg,
		store:  store,
		client: client,
		log:    log,
		reader: bufio.NewReader(os.Stdin),
		db:     db,
	}, nil
}

// Run performs the one-time session check and hands control to the REPL.
// It blocks until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	a.store.CheckSession(ctx)

	if st := a.store.Snapshot(); st.IsAuthenticated() {
		printlnFn(fmt.Sprintf("Welcome back, %s!", st.User.Name))
	}

	runREPL(ctx, a, a.status, bufio.NewScanner(os.Stdin))
}

// Close releases the API client and the local database.
func (a *App) Close() {
	if a.client != nil {
		_ = a.client.Close()
	}
	if a.db != nil {
		_ = a.db.Close()
	}
}

func (a *App) isLoggedIn() bool {
	return a.store.Snapshot().IsAuthenticated()
}

func (a *App) status() string {
	st := a.store.Snapshot()
	switch {
	case st.IsLoading:
		return "(loading)"
	case st.Requires2FA:
		return "(2fa pending)"
	case st.User != nil:
		return fmt.Sprintf("(%s %s)", st.User.Email, st.User.Role)
	default:
		return ""
	}
}
