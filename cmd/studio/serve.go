//go:build !js || !wasm

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pagecraft/studio/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the authenticated edge proxy locally",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, err := newStore(cfg)
		if err != nil {
			return err
		}

		srv := server.NewServer(store, cfg.Backend.BaseURL)
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		return srv.Start(addr)
	},
}
