package app

import (
	"context"

	"golang.org/x/exp/slog"

	"github.com/jekabolt/storefront-insights/config"
	httpapi "github.com/jekabolt/storefront-insights/internal/api/http"
	"github.com/jekabolt/storefront-insights/internal/apisrv/auth"
	"github.com/jekabolt/storefront-insights/internal/apisrv/dashboard"
	"github.com/jekabolt/storefront-insights/internal/snapshot"
	"github.com/jekabolt/storefront-insights/internal/upstream"
)

// App is the main application
type App struct {
	hs    *httpapi.Server
	snaps *snapshot.Store
	c     *config.Config
	done  chan struct{}
}

// New returns a new instance of App
func New(c *config.Config) *App {
	return &App{
		c:    c,
		done: make(chan struct{}),
	}
}

// Start starts the app
func (a *App) Start(ctx context.Context) error {
	slog.Default().Info("starting storefront insights")

	client := upstream.New(&a.c.Upstream)

	a.snaps = snapshot.New(&a.c.Snapshot, client)
	if err := a.snaps.Start(); err != nil {
		slog.Default().Error("cannot fetch the initial snapshot", "err", err.Error())
		return err
	}

	authS, err := auth.New(&a.c.Auth)
	if err != nil {
		slog.Default().Error("failed to create the auth server", "err", err.Error())
		return err
	}

	dashS := dashboard.New(a.snaps)

	a.hs = httpapi.New(&a.c.HTTP)
	if err := a.hs.Start(ctx, authS, dashS); err != nil {
		slog.Default().Error("cannot start http server", "err", err.Error())
		return err
	}

	return nil
}

// Stop stops the application and waits for all services to exit
func (a *App) Stop(ctx context.Context) {
	if a.hs != nil {
		if err := a.hs.Stop(ctx); err != nil {
			slog.Default().Error("http server shutdown failed", "err", err.Error())
		}
	}
	if a.snaps != nil {
		a.snaps.Stop()
	}
	close(a.done)
}

// Done returns a channel that is closed after the application has exited
func (a *App) Done() chan struct{} {
	return a.done
}
