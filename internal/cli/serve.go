package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/LeJamon/xrpl-bot/internal/bot"
	"github.com/LeJamon/xrpl-bot/internal/explain"
	"github.com/LeJamon/xrpl-bot/internal/github"
	"github.com/LeJamon/xrpl-bot/internal/names"
	"github.com/LeJamon/xrpl-bot/internal/server"
	"github.com/LeJamon/xrpl-bot/internal/storage/auditdb"
	"github.com/LeJamon/xrpl-bot/internal/storage/eventstore"
	"github.com/LeJamon/xrpl-bot/internal/xrpl/client"
)

// serveCmd starts the webhook server (the default action).
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the GitHub webhook server",
	Long: `Start the xrpl-bot server which provides:
- POST /webhook for GitHub issues and issue_comment deliveries
- GET /health for liveness checks

This is the default command when no subcommand is specified.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return serveCmd.RunE(cmd, args)
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.GitHub.Token == "" {
		return errors.New("github.token is required to post comments (set XRPLBOT_GITHUB_TOKEN)")
	}

	log := newLogger()

	fetcher, err := client.New(client.Config{
		Endpoint:  cfg.XRPL.Endpoint,
		Timeout:   cfg.XRPL.Timeout,
		CacheSize: cfg.XRPL.CacheSize,
	})
	if err != nil {
		return err
	}

	opts := []bot.Option{bot.WithBotLogin(cfg.GitHub.BotLogin)}

	if cfg.Storage.EventsPath != "" {
		events, err := eventstore.Open(cfg.Storage.EventsPath)
		if err != nil {
			return err
		}
		defer events.Close()
		opts = append(opts, bot.WithEventStore(events))
	}

	if cfg.Storage.AuditPath != "" {
		audit, err := auditdb.Open(cfg.Storage.AuditPath)
		if err != nil {
			return err
		}
		defer audit.Close()
		opts = append(opts, bot.WithAuditLog(audit))
	}

	pipeline := bot.NewPipeline(fetcher, github.NewClient(cfg.GitHub.Token),
		explain.New(names.NewRegistry(), log), log, opts...)

	srv := server.New(pipeline, cfg.Server.WebhookSecret, log)
	httpServer := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           srv.Engine(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("webhook server listening", "addr", cfg.Server.Addr)
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("webhook server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
