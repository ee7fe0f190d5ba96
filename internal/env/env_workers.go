//go:build js && wasm

package env

import (
	"time"

	"github.com/syumai/workers/cloudflare"
)

// Get retrieves an environment variable from the Cloudflare Workers environment
func Get(key string) (string, bool) {
	value := cloudflare.Getenv(key)
	if value == "" {
		return "", false
	}
	return value, true
}

// GetOrDefault retrieves an environment variable with a default value
func GetOrDefault(key, defaultValue string) string {
	if value, ok := Get(key); ok {
		return value
	}
	return defaultValue
}

// GetDuration retrieves an environment variable parsed as a duration,
// falling back to the default when unset or unparsable.
func GetDuration(key string, defaultValue time.Duration) time.Duration {
	value, ok := Get(key)
	if !ok {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}
