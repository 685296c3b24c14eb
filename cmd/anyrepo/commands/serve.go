// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-08-24
// Last Modified: 2026-08-29

package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/anybox/anyrepo/internal/core/config"
	"github.com/anybox/anyrepo/internal/core/relay"
	"github.com/anybox/anyrepo/internal/integrations/github"
	"github.com/anybox/anyrepo/internal/integrations/gitlab"
	"github.com/anybox/anyrepo/internal/logging"
	"github.com/anybox/anyrepo/internal/remote"
	"github.com/anybox/anyrepo/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the webhook relay server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe() error {
	// Optional .env, then config with ${VAR} expansion
	_ = godotenv.Load()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	logger := logging.New(os.Stderr, logging.ParseLevel(level))

	remotes, err := buildRemotes(cfg)
	if err != nil {
		return err
	}

	engine := relay.NewEngine(remotes, logger, time.Duration(cfg.RemoteTimeout))
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server.New(cfg, engine, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("anyrepo relay listening", "addr", cfg.Addr, "remotes", len(remotes))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func loadConfig() (*config.Config, error) {
	path := cfgFile
	if path == "" {
		path = os.Getenv("ANYREPO_CONFIG")
	}
	path = config.FindConfigPath(path)
	if path == "" {
		return nil, fmt.Errorf("no config file found (searched anyrepo.yaml and /etc/anyrepo/)")
	}
	return config.Load(path)
}

// buildRemotes turns the configured remotes into capability clients.
func buildRemotes(cfg *config.Config) ([]remote.Client, error) {
	remotes := make([]remote.Client, 0, len(cfg.Remotes))
	for _, rc := range cfg.Remotes {
		switch rc.Kind {
		case config.KindGitHub:
			client, err := github.NewClient(context.Background(), rc.Name, rc.URL, rc.Token)
			if err != nil {
				return nil, fmt.Errorf("remote %q: %w", rc.Name, err)
			}
			remotes = append(remotes, client)
		case config.KindGitLab:
			client, err := gitlab.NewClient(rc.Name, rc.URL, rc.Token)
			if err != nil {
				return nil, fmt.Errorf("remote %q: %w", rc.Name, err)
			}
			remotes = append(remotes, client)
		default:
			return nil, fmt.Errorf("remote %q: unsupported kind %q", rc.Name, rc.Kind)
		}
	}
	return remotes, nil
}
