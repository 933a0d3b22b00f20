// Package server wires the dev backend together: in-memory accounts and
// content, the JSON API router, and graceful shutdown on SIGINT/SIGTERM.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/mkalinins/commportal/internal/logging"
	"github.com/mkalinins/commportal/internal/server/auth"
	"github.com/mkalinins/commportal/internal/server/config"
	"github.com/mkalinins/commportal/internal/server/content"
	"github.com/mkalinins/commportal/internal/server/httpapi"
)

type App struct {
	config *config.Config
	logger logging.Logger
	server *http.Server
}

func NewApp(cfg *config.Config, logger logging.Logger) *App {
	if logger == nil {
		logger = logging.NewNop()
	}

	authService := auth.NewService([]byte(cfg.JWTSecret), cfg.TokenTTL, cfg.CodeTTL, logger)
	store := content.NewStore()

	router := httpapi.NewRouter(&httpapi.RouterDeps{
		Auth:          authService,
		Verifier:      authService,
		Content:       store,
		Log:           logger,
		AllowedOrigin: cfg.AllowedOrigin,
		LoginRPS:      cfg.LoginRPS,
		LoginBurst:    cfg.LoginBurst,
	})

	return &App{
		config: cfg,
		logger: logger,
		server: &http.Server{Addr: cfg.Addr, Handler: router},
	}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting dev server", "addr", app.config.Addr)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.logger.Error(ctx, "server stopped", "error", err)
			cancelFunc()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := app.server.Shutdown(shutdownCtx); err != nil {
		app.logger.Error(shutdownCtx, "shutdown failed", "error", err)
	}

	wg.Wait()
	app.logger.Info(context.Background(), "dev server stopped")
}
