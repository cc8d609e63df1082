// Package vault provides the public API for the local thing store.
// It exposes the factory function for opening vaults while keeping the
// storage implementation internal.
package vault

import (
	"github.com/go-logr/logr"

	"github.com/mesh-intelligence/vitals/internal/vault"
	"github.com/mesh-intelligence/vitals/pkg/record"
)

// SchemaVersion is the vault schema this release reads and writes.
const SchemaVersion = vault.SchemaVersion

// Options configures how a vault is opened. The zero value is usable.
type Options struct {
	// Logger receives vault activity at V(1). Defaults to a silent
	// logger.
	Logger logr.Logger
}

// Open opens the vault in dataDir, creating the directory and database
// on first use, and returns it as a record.Store.
//
// Example:
//
//	store, err := vault.Open(".vitals-db", nil)
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
func Open(dataDir string, opts *Options) (record.Store, error) {
	var vopts []vault.Option
	if opts != nil && opts.Logger.GetSink() != nil {
		vopts = append(vopts, vault.WithLogger(opts.Logger))
	}
	return vault.Open(dataDir, vopts...)
}
