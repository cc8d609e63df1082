package record

import (
	"sort"
	"sync"

	"github.com/google/uuid"
)

// Type describes a registered item type: its fixed identifier, the root
// element name of its fragment, and a factory for an empty payload.
type Type struct {
	ID   uuid.UUID
	Name string
	New  func() ItemData
}

var registry = struct {
	sync.RWMutex
	byID   map[uuid.UUID]Type
	byName map[string]Type
}{
	byID:   make(map[uuid.UUID]Type),
	byName: make(map[string]Type),
}

// Register adds an item type to the registry. Item types register
// themselves at package init; a duplicate id or name is a programming
// error and panics.
func Register(t Type) {
	if t.ID == uuid.Nil || t.Name == "" || t.New == nil {
		panic("record: incomplete type registration")
	}
	registry.Lock()
	defer registry.Unlock()
	if _, dup := registry.byID[t.ID]; dup {
		panic("record: duplicate type id " + t.ID.String())
	}
	if _, dup := registry.byName[t.Name]; dup {
		panic("record: duplicate type name " + t.Name)
	}
	registry.byID[t.ID] = t
	registry.byName[t.Name] = t
}

// TypeByID looks up a registered type by its type identifier.
func TypeByID(id uuid.UUID) (Type, bool) {
	registry.RLock()
	defer registry.RUnlock()
	t, ok := registry.byID[id]
	return t, ok
}

// TypeByName looks up a registered type by its root element name.
func TypeByName(name string) (Type, bool) {
	registry.RLock()
	defer registry.RUnlock()
	t, ok := registry.byName[name]
	return t, ok
}

// Types returns the registered item types sorted by name.
func Types() []Type {
	registry.RLock()
	defer registry.RUnlock()
	out := make([]Type, 0, len(registry.byName))
	for _, t := range registry.byName {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
