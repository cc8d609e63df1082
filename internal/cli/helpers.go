// Shared helpers for vitals CLI commands.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/mesh-intelligence/vitals/internal/paths"
	"github.com/mesh-intelligence/vitals/pkg/record"
	"github.com/mesh-intelligence/vitals/pkg/vault"
	"github.com/mesh-intelligence/vitals/pkg/xmlio"
)

// openStore resolves the data directory and opens the vault there.
// The caller must close the returned store.
func openStore(f *rootFlags) (record.Store, error) {
	dataDir, err := paths.ResolveDataDir(f.dataDir, f.configDataDir)
	if err != nil {
		return nil, systemErr(fmt.Errorf("resolve data dir: %w", err))
	}

	store, err := vault.Open(dataDir, nil)
	if err != nil {
		return nil, systemErr(fmt.Errorf("open vault: %w", err))
	}

	return store, nil
}

// readDocument loads path and parses it as a thing document. A bare item
// fragment (root element other than <thing>) is wrapped in a new thing.
func readDocument(path string) (*record.Thing, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, systemErr(fmt.Errorf("read %s: %w", path, err))
	}

	thing, err := parseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return thing, nil
}

// parseDocument parses data as a thing envelope or a bare item fragment.
func parseDocument(data []byte) (*record.Thing, error) {
	el, err := xmlio.Parse(data)
	if err != nil {
		return nil, err
	}

	if el.Name() == "thing" {
		return record.ParseThingElement(el)
	}

	item, err := record.ParseItem(data)
	if err != nil {
		return nil, err
	}
	return record.NewThing(item), nil
}

// typeNames returns the registered item type names, comma-separated, for
// error messages.
func typeNames() string {
	types := record.Types()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.Name
	}
	return strings.Join(names, ", ")
}
