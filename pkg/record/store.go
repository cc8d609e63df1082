package record

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Standard store errors.
var (
	// ErrNotFound is returned when no thing exists with the given id.
	ErrNotFound = errors.New("thing not found")

	// ErrInvalidID is returned when an id is not a valid UUID string.
	ErrInvalidID = errors.New("invalid thing id")

	// ErrNilThing is returned when a nil thing is passed to Put.
	ErrNilThing = errors.New("nil thing")

	// ErrStoreClosed is returned by operations on a closed store.
	ErrStoreClosed = errors.New("store is closed")

	// ErrSchemaVersion is returned when a store's on-disk schema was
	// written by an incompatible newer release.
	ErrSchemaVersion = errors.New("incompatible store schema version")
)

// Filter narrows a List call. The zero value matches everything.
type Filter struct {
	TypeID uuid.UUID // Match only this item type; uuid.Nil matches all.
	Limit  int       // Maximum entries to return; 0 means no limit.
}

// Entry is a row in a store listing: identity and display data, without
// the parsed payload.
type Entry struct {
	ID        string     // Thing id.
	TypeID    uuid.UUID  // Item type id.
	TypeName  string     // Root element name of the item type.
	Summary   string     // Display string of the payload.
	EffDate   *time.Time // Effective date, when the thing carries one.
	UpdatedAt time.Time  // When the stored copy was last written.
}

// Store is a local collection of things. Implementations persist the
// serialized fragment and enough envelope data to list without parsing.
type Store interface {
	// Put stores the thing and returns its id. A thing without a key is
	// assigned a new id; every write gets a fresh version stamp.
	Put(t *Thing) (string, error)

	// Get returns the thing with the given id.
	Get(id string) (*Thing, error)

	// Delete removes the thing with the given id.
	Delete(id string) error

	// List returns entries matching the filter, newest first.
	List(f Filter) ([]Entry, error)

	// Export writes every stored thing to the file at path.
	Export(path string) error

	// Import loads things from the file at path, returning how many
	// were stored.
	Import(path string) (int, error)

	// Close releases the store. Further calls return ErrStoreClosed.
	Close() error
}
