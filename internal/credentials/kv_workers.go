//go:build js && wasm

package credentials

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/syumai/workers/cloudflare/kv"
)

const kvCredentialsKey = "studio_credentials"

// KVStore implements Store using Cloudflare Workers KV storage
type KVStore struct {
	kvStore *kv.Namespace
}

// NewKVStore creates a Workers KV-backed store. The namespace binding
// name is configured in wrangler.toml.
func NewKVStore(namespace string) (*KVStore, error) {
	kvStore, err := kv.NewNamespace(namespace)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize KV namespace: %w", err)
	}
	return &KVStore{kvStore: kvStore}, nil
}

// Get retrieves the pair from Workers KV
func (k *KVStore) Get(ctx context.Context) (*Pair, error) {
	data, err := k.kvStore.GetString(kvCredentialsKey, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get credentials from KV: %w", err)
	}
	if data == "" {
		return nil, ErrNotFound
	}

	pair := &Pair{}
	if err := json.Unmarshal([]byte(data), pair); err != nil {
		return nil, fmt.Errorf("failed to parse credentials from KV: %w", err)
	}
	if !pair.Complete() {
		return nil, ErrNotFound
	}
	return pair, nil
}

// Set persists the pair to Workers KV as a single value
func (k *KVStore) Set(ctx context.Context, pair *Pair) error {
	if !pair.Complete() {
		return ErrIncompletePair
	}

	encoded, err := json.Marshal(pair)
	if err != nil {
		return fmt.Errorf("failed to marshal credentials: %w", err)
	}

	if err := k.kvStore.PutString(kvCredentialsKey, string(encoded), nil); err != nil {
		return fmt.Errorf("failed to store credentials in KV: %w", err)
	}
	return nil
}

// Clear overwrites the stored pair with an empty value
func (k *KVStore) Clear(ctx context.Context) error {
	if err := k.kvStore.PutString(kvCredentialsKey, "", nil); err != nil {
		return fmt.Errorf("failed to clear credentials in KV: %w", err)
	}
	return nil
}

// Name returns the store name
func (k *KVStore) Name() string {
	return "KVStore"
}
