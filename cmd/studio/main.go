//go:build !js || !wasm

package main

import (
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// Local development convenience; a missing .env is fine.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
