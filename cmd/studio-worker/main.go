//go:build js && wasm

package main

import (
	"github.com/syumai/workers"

	"github.com/pagecraft/studio/internal/credentials"
	"github.com/pagecraft/studio/internal/env"
	"github.com/pagecraft/studio/internal/logger"
	"github.com/pagecraft/studio/internal/server"
)

var srv *server.Server

func init() {
	// The KV namespace binding is configured in wrangler.toml
	var store credentials.Store
	kvStore, err := credentials.NewKVStore("studio_proxy_kv")
	if err != nil {
		logger.Get().Error().Err(err).Msg("Failed to bind KV namespace, credentials will not persist")
		store = credentials.NewMemoryStore()
	} else {
		store = kvStore
	}

	backendURL := env.GetOrDefault("STUDIO_BACKEND_URL", "http://localhost:8080")
	srv = server.NewServer(store, backendURL)
}

func main() {
	// Serve using workers - it handles all the HTTP server setup
	workers.Serve(srv)
}
