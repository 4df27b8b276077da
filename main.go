// This is the main entry point of the Dept-AI Hub portal backend.
// It loads configuration, opens the document store, seeds it, and serves the
// HTTP API until it receives SIGINT or SIGTERM.
//
// @title Dept-AI Hub - PBR VITS API
// @version 1.0
// @description Backend of the AI department portal: roll-number login, notices, events, timetable, resources and faculty.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/user/deptaihub-go/apperror"
	"github.com/user/deptaihub-go/config"
	"github.com/user/deptaihub-go/db"
	"github.com/user/deptaihub-go/logging"
	"github.com/user/deptaihub-go/seed"
	"github.com/user/deptaihub-go/server"
	"github.com/user/deptaihub-go/store"
)

// app carries what every command needs once configuration is loaded.
type app struct {
	cfg    *config.AppConfig
	logger *slog.Logger
}

func main() {
	// .env is a development convenience; in production variables are set directly.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env file", "error", err)
	}

	a := &app{}
	cliApp := &cli.App{
		Name:   "deptaihub",
		Usage:  "Dept-AI Hub department portal backend",
		Before: a.load,
		Action: a.serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "seed the store and serve the HTTP API (default)",
				Action: a.serve,
			},
			{
				Name:   "seed",
				Usage:  "insert the seed users and sample content, then exit",
				Action: a.seed,
			},
			{
				Name:   "migrate",
				Usage:  "apply the PostgreSQL schema migrations, then exit",
				Action: a.migrate,
			},
			{
				Name:  "token",
				Usage: "print a session token for an existing user",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "roll-no", Usage: "roll number of the user", Required: true},
				},
				Action: a.token,
			},
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

// load reads the configuration and installs the logger before any command runs.
func (a *app) load(*cli.Context) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	a.cfg = cfg
	a.logger = logging.InitLogger(cfg.Log, os.Stdout)
	return nil
}

func (a *app) serve(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s, err := db.OpenStore(ctx, a.cfg.Store)
	if err != nil {
		// The portal still starts; every request touching storage answers 500.
		a.logger.Error("document store unavailable, serving without storage", "driver", a.cfg.Store.Driver, "error", err)
		s = store.NewUnavailableStore(err)
	}
	defer s.Close()

	if a.cfg.Auth.UsesDefaultSecret() {
		a.logger.Warn("JWT_SECRET is not set, session tokens are signed with the built-in default secret")
	}

	srv := server.New(a.cfg, s, a.logger)
	if err := a.runSeed(ctx, srv); err != nil {
		a.logger.Error("seeding failed", "error", err)
	}

	baseCtx, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()
	httpServer := &http.Server{
		Addr:         ":" + a.cfg.Server.Port,
		Handler:      srv.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
		BaseContext:  func(net.Listener) context.Context { return baseCtx },
	}
	// Open feed streams never finish on their own; end them when shutdown begins.
	httpServer.RegisterOnShutdown(cancelBase)

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("server starting", "addr", httpServer.Addr, "store", a.cfg.Store.Driver)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
	case <-ctx.Done():
	}

	a.logger.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	a.logger.Info("server stopped gracefully")
	return nil
}

func (a *app) runSeed(ctx context.Context, srv *server.Server) error {
	f, err := seed.Load(a.cfg.Seed.File)
	if err != nil {
		return err
	}
	_, err = seed.NewSeeder(srv.Users, srv.Records, a.logger).Run(ctx, f, a.cfg.Seed.SampleContent)
	return err
}

func (a *app) seed(c *cli.Context) error {
	s, err := db.OpenStore(c.Context, a.cfg.Store)
	if err != nil {
		return err
	}
	defer s.Close()
	return a.runSeed(c.Context, server.New(a.cfg, s, a.logger))
}

func (a *app) migrate(*cli.Context) error {
	if a.cfg.Store.Driver != config.StoreDriverPostgres {
		return fmt.Errorf("migrations only apply to the %s driver, STORE_DRIVER is %q", config.StoreDriverPostgres, a.cfg.Store.Driver)
	}
	if err := db.RunMigrations(db.DSN(a.cfg.Store.Postgres)); err != nil {
		return err
	}
	a.logger.Info("migrations applied")
	return nil
}

func (a *app) token(c *cli.Context) error {
	s, err := db.OpenStore(c.Context, a.cfg.Store)
	if err != nil {
		return err
	}
	defer s.Close()

	srv := server.New(a.cfg, s, a.logger)
	// A fresh memory store holds nobody until the seed users are loaded.
	if a.cfg.Store.Driver == config.StoreDriverMemory {
		if err := a.runSeed(c.Context, srv); err != nil {
			return err
		}
	}
	rollNo := c.String("roll-no")
	token, err := srv.Auth.IssueFor(c.Context, rollNo)
	if apperror.IsNotFound(err) {
		return fmt.Errorf("no user with roll number %q, run the seed command first", rollNo)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, token)
	return nil
}
