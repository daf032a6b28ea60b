// Package app wires configuration, storage, the board service and the HTTP
// server into a runnable daemon.
package app

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"sparse-life/internal/server"
	"sparse-life/internal/service"
	"sparse-life/internal/store"
)

// App is a configured daemon ready to serve.
type App struct {
	cfg     Config
	logger  *log.Logger
	handler http.Handler
	closers []func() error
}

// New builds the store, service and HTTP handler described by cfg.
func New(ctx context.Context, cfg Config, logger *log.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}
	a := &App{cfg: cfg, logger: logger}

	var st store.Store
	switch cfg.Store {
	case StoreValkey:
		v := store.NewValkey(store.ValkeyConfig{
			Addr:      cfg.ValkeyAddr(),
			Password:  cfg.ValkeyPassword,
			KeyPrefix: cfg.KeyPrefix,
		})
		if err := v.Ping(ctx); err != nil {
			v.Close()
			return nil, err
		}
		a.closers = append(a.closers, v.Close)
		st = v
	default:
		st = store.NewMemory()
	}

	svc, err := service.New(st, service.Config{
		MaxIterations:   cfg.MaxIterations,
		AlwaysWriteBack: cfg.AlwaysWriteBack,
	}, service.WithLogger(logger))
	if err != nil {
		a.Close()
		return nil, err
	}
	a.handler = server.New(svc, logger)
	return a, nil
}

// Handler exposes the HTTP handler, mainly for tests.
func (a *App) Handler() http.Handler { return a.handler }

// Run serves on the configured address until ctx is done.
func (a *App) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.cfg.Addr)
	if err != nil {
		return err
	}
	return a.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done, then shuts down within
// the configured grace period.
func (a *App) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           a.handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Printf("listening on %s (store=%s, max-iterations=%d)", ln.Addr(), a.cfg.Store, a.cfg.MaxIterations)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
		defer cancel()
		a.logger.Printf("shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	err := g.Wait()
	if cerr := a.Close(); err == nil {
		err = cerr
	}
	return err
}

// Close releases the store connection.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	a.closers = nil
	return errors.Join(errs...)
}
