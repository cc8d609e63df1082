// Package vault implements the local SQLite store for things. Each row
// keeps the serialized fragment as the source of truth plus envelope
// columns (type, summary, dates) so listings never parse XML.
package vault

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/blang/semver/v4"
	"github.com/go-logr/logr"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/vitals/pkg/record"
)

//go:embed schema.sql
var schemaSQL string

// SchemaVersion is the vault schema this release writes. A vault
// written under a different major version is refused.
const SchemaVersion = "1.0.0"

// DBFileName is the database file created inside the data directory.
const DBFileName = "vault.db"

// Stored timestamps use nanosecond precision so write order survives.
const timeColumnLayout = time.RFC3339Nano

// Compile-time interface check: Vault must implement record.Store.
var _ record.Store = (*Vault)(nil)

// Vault is the SQLite-backed thing store.
type Vault struct {
	mu     sync.RWMutex
	db     *sql.DB
	log    logr.Logger
	dir    string
	closed bool
}

// Option configures a Vault before it opens.
type Option func(*Vault)

// WithLogger sets the vault logger. The default discards everything.
func WithLogger(log logr.Logger) Option {
	return func(v *Vault) { v.log = log }
}

// Open creates dataDir if needed, opens the vault database inside it,
// applies the schema, and verifies the stored schema version. A vault
// recorded by a different major release fails with
// record.ErrSchemaVersion.
func Open(dataDir string, opts ...Option) (*Vault, error) {
	if dataDir == "" {
		dataDir = "."
	}
	v := &Vault{log: logr.Discard(), dir: dataDir}
	for _, opt := range opts {
		opt(v)
	}

	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, DBFileName)
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", dbPath, err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}
	v.db = db

	if err := v.checkSchemaVersion(); err != nil {
		db.Close()
		return nil, err
	}

	v.log.V(1).Info("vault opened", "path", dbPath)
	return v, nil
}

// checkSchemaVersion records the schema version on first open and
// verifies major compatibility afterwards.
func (v *Vault) checkSchemaVersion() error {
	current, err := semver.Parse(SchemaVersion)
	if err != nil {
		return fmt.Errorf("parsing schema version %q: %w", SchemaVersion, err)
	}

	var stored string
	err = v.db.QueryRow("SELECT value FROM vault_meta WHERE key = 'schema_version'").Scan(&stored)
	if errors.Is(err, sql.ErrNoRows) {
		if _, err := v.db.Exec("INSERT INTO vault_meta (key, value) VALUES ('schema_version', ?)", SchemaVersion); err != nil {
			return fmt.Errorf("recording schema version: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}

	found, err := semver.Parse(stored)
	if err != nil {
		return fmt.Errorf("%w: unparseable stored version %q", record.ErrSchemaVersion, stored)
	}
	if found.Major != current.Major {
		return fmt.Errorf("%w: vault has %s, this release speaks %s", record.ErrSchemaVersion, stored, SchemaVersion)
	}
	return nil
}

// Put stores the thing and returns its id. A thing without a key is
// assigned a fresh UUID v7; every write gets a new version stamp. The
// caller's thing is updated only after the write succeeds.
func (v *Vault) Put(t *record.Thing) (string, error) {
	if t == nil {
		return "", record.ErrNilThing
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return "", record.ErrStoreClosed
	}
	return v.put(t)
}

// put stores a thing with the write lock held.
func (v *Vault) put(t *record.Thing) (string, error) {
	id := uuid.Nil
	if t.Key != nil {
		id = t.Key.ID
	}
	if id == uuid.Nil {
		newID, err := uuid.NewV7()
		if err != nil {
			return "", fmt.Errorf("generating thing id: %w", err)
		}
		id = newID
	}
	stamp, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generating version stamp: %w", err)
	}

	keyed := record.Thing{
		Key:     &record.Key{ID: id, VersionStamp: stamp},
		EffDate: t.EffDate,
		Data:    t.Data,
	}
	xmlData, err := keyed.Marshal()
	if err != nil {
		return "", err
	}

	typeName := keyed.Data.XMLName()
	if typ, ok := record.TypeByID(keyed.TypeID()); ok {
		typeName = typ.Name
	}
	var eff sql.NullString
	if keyed.EffDate != nil {
		eff = sql.NullString{String: keyed.EffDate.UTC().Format(timeColumnLayout), Valid: true}
	}
	now := time.Now().UTC().Format(timeColumnLayout)

	_, err = v.db.Exec(`INSERT INTO things
    (thing_id, version_stamp, type_id, type_name, summary, eff_date, xml, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(thing_id) DO UPDATE SET
    version_stamp = excluded.version_stamp,
    type_id = excluded.type_id,
    type_name = excluded.type_name,
    summary = excluded.summary,
    eff_date = excluded.eff_date,
    xml = excluded.xml,
    updated_at = excluded.updated_at`,
		id.String(), stamp.String(), keyed.TypeID().String(), typeName,
		keyed.String(), eff, string(xmlData), now, now)
	if err != nil {
		return "", fmt.Errorf("storing thing %s: %w", id, err)
	}

	t.Key = keyed.Key
	v.log.V(1).Info("thing stored", "id", id.String(), "type", typeName)
	return id.String(), nil
}

// Get returns the thing with the given id, parsed from its stored
// fragment.
func (v *Vault) Get(id string) (*record.Thing, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.closed {
		return nil, record.ErrStoreClosed
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%w: %q", record.ErrInvalidID, id)
	}

	var xmlData string
	err := v.db.QueryRow("SELECT xml FROM things WHERE thing_id = ?", id).Scan(&xmlData)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, record.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting thing %s: %w", id, err)
	}
	return record.ParseThing([]byte(xmlData))
}

// Delete removes the thing with the given id.
func (v *Vault) Delete(id string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return record.ErrStoreClosed
	}
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %q", record.ErrInvalidID, id)
	}

	res, err := v.db.Exec("DELETE FROM things WHERE thing_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting thing %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting thing %s: %w", id, err)
	}
	if n == 0 {
		return record.ErrNotFound
	}
	v.log.V(1).Info("thing deleted", "id", id)
	return nil
}

// List returns envelope entries matching the filter, most recently
// written first.
func (v *Vault) List(f record.Filter) ([]record.Entry, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.closed {
		return nil, record.ErrStoreClosed
	}

	query := "SELECT thing_id, type_id, type_name, summary, eff_date, updated_at FROM things"
	var args []any
	if f.TypeID != uuid.Nil {
		query += " WHERE type_id = ?"
		args = append(args, f.TypeID.String())
	}
	query += " ORDER BY updated_at DESC, thing_id"
	if f.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, f.Limit)
	}

	rows, err := v.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing things: %w", err)
	}
	defer rows.Close()

	var out []record.Entry
	for rows.Next() {
		var (
			e       record.Entry
			typeID  string
			eff     sql.NullString
			updated string
		)
		if err := rows.Scan(&e.ID, &typeID, &e.TypeName, &e.Summary, &eff, &updated); err != nil {
			return nil, fmt.Errorf("scanning thing row: %w", err)
		}
		if e.TypeID, err = uuid.Parse(typeID); err != nil {
			return nil, fmt.Errorf("row %s has bad type id %q: %w", e.ID, typeID, err)
		}
		if eff.Valid {
			ts, err := time.Parse(timeColumnLayout, eff.String)
			if err != nil {
				return nil, fmt.Errorf("row %s has bad eff date %q: %w", e.ID, eff.String, err)
			}
			e.EffDate = &ts
		}
		if e.UpdatedAt, err = time.Parse(timeColumnLayout, updated); err != nil {
			return nil, fmt.Errorf("row %s has bad update time %q: %w", e.ID, updated, err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Close releases the database. Further calls on the vault return
// record.ErrStoreClosed.
func (v *Vault) Close() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return record.ErrStoreClosed
	}
	v.closed = true
	return v.db.Close()
}
