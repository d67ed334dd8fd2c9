// Package kvstore is the durable medium behind the plant registry.
//
// The registry persists its whole collection as a single blob under one
// namespaced key, so the contract is deliberately tiny: get, set and clear
// a key. Backends:
//   - sqlite: pure-Go SQLite file under the data directory (default)
//   - postgres: a shared Postgres database via a pgx pool
//   - memory: process-local map, for tests and throwaway sessions
package kvstore

import (
	"context"
	"fmt"
)

// Driver names accepted by Open.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Store is a key-value blob store.
//
// Get reports found=false (and no error) when the key is absent.
type Store interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Clear(ctx context.Context, key string) error
	Close() error
}

// Options selects and configures a backend.
type Options struct {
	Driver string
	// DataDir holds the SQLite database file.
	DataDir string
	// DSN is the Postgres connection string.
	DSN string
}

// Open creates the backend named by opts.Driver.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Driver {
	case DriverSQLite, "":
		return NewSQLite(opts.DataDir)
	case DriverPostgres:
		return NewPostgres(ctx, opts.DSN)
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("kvstore: unknown driver %q: must be one of: sqlite, postgres, memory", opts.Driver)
	}
}
