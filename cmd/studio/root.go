//go:build !js || !wasm

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/pagecraft/studio/internal/api"
	"github.com/pagecraft/studio/internal/auth"
	"github.com/pagecraft/studio/internal/config"
	"github.com/pagecraft/studio/internal/credentials"
	"github.com/pagecraft/studio/internal/logger"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "studio",
	Short:         "Admin CLI for the Pagecraft content backend",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to studio.yaml")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(projectsCmd)
	rootCmd.AddCommand(articlesCmd)
	rootCmd.AddCommand(contributorsCmd)
	rootCmd.AddCommand(formsCmd)
	rootCmd.AddCommand(socialCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadConfig loads the tool configuration from --config or defaults.
func loadConfig() (*config.Config, error) {
	return config.Load(configPath)
}

// newStore selects the credential store from configuration: Redis when
// an address is given, otherwise the credentials file.
func newStore(cfg *config.Config) (credentials.Store, error) {
	if cfg.Credentials.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.Credentials.RedisAddr})
		return credentials.NewRedisStore(client, cfg.Credentials.RedisKey), nil
	}
	if cfg.Credentials.Path != "" {
		return credentials.NewFileStoreAt(cfg.Credentials.Path), nil
	}
	return credentials.NewFileStore()
}

// newAPIClient wires the full stack for one CLI invocation.
func newAPIClient() (*api.Client, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	store, err := newStore(cfg)
	if err != nil {
		return nil, err
	}

	sessionClient := auth.NewSessionClient(store, cfg.Backend.BaseURL, func() {
		logger.Get().Warn().Msg("Session expired, run 'studio login' again")
	})
	return api.NewClient(cfg.Backend.BaseURL, sessionClient, store), nil
}

// printJSON renders a value as indented JSON on stdout.
func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to render output: %w", err)
	}
	fmt.Fprintln(os.Stdout, string(data))
	return nil
}
