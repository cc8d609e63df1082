package vault

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mesh-intelligence/vitals/pkg/record"
)

// exportLine is one line of an export file.
type exportLine struct {
	ThingID string `json:"thing_id"`
	TypeID  string `json:"type_id"`
	XML     string `json:"xml"`
}

// Lines are mostly XML fragments, so allow them to grow well past the
// default scanner limit.
const maxLineBytes = 16 * 1024 * 1024

// Export writes every stored thing to the file at path, one line per
// thing, ordered by id.
func (v *Vault) Export(path string) error {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.closed {
		return record.ErrStoreClosed
	}

	rows, err := v.db.Query("SELECT thing_id, type_id, xml FROM things ORDER BY thing_id")
	if err != nil {
		return fmt.Errorf("reading things for export: %w", err)
	}
	defer rows.Close()

	var lines [][]byte
	for rows.Next() {
		var line exportLine
		if err := rows.Scan(&line.ThingID, &line.TypeID, &line.XML); err != nil {
			return fmt.Errorf("scanning export row: %w", err)
		}
		data, err := json.Marshal(line)
		if err != nil {
			return fmt.Errorf("encoding thing %s: %w", line.ThingID, err)
		}
		lines = append(lines, data)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("reading things for export: %w", err)
	}

	if err := writeLinesAtomic(path, lines); err != nil {
		return err
	}
	v.log.V(1).Info("vault exported", "path", path, "things", len(lines))
	return nil
}

// Import loads things from a JSONL export into the vault and returns
// how many were stored. Blank and malformed lines are skipped, so an
// export from a newer release that adds line types still loads. Ids are
// preserved; version stamps are refreshed as on any write.
func (v *Vault) Import(path string) (int, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return 0, record.ErrStoreClosed
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening import file: %w", err)
	}
	defer f.Close()

	count := 0
	skipped := 0
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var line exportLine
		if err := json.Unmarshal(raw, &line); err != nil {
			skipped++
			continue
		}
		thing, err := record.ParseThing([]byte(line.XML))
		if err != nil {
			skipped++
			continue
		}
		if _, err := v.put(thing); err != nil {
			return count, fmt.Errorf("importing thing %s: %w", line.ThingID, err)
		}
		count++
	}
	if err := scanner.Err(); err != nil {
		return count, fmt.Errorf("reading import file: %w", err)
	}

	v.log.V(1).Info("vault imported", "path", path, "things", count, "skipped", skipped)
	return count, nil
}

// writeLinesAtomic replaces path with the given lines using the temp
// file, fsync, rename sequence. The temp file lives next to the target
// so the rename stays on one filesystem.
func writeLinesAtomic(path string, lines [][]byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".vault-export-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() {
		tmp.Close()
		os.Remove(tmpName)
	}

	w := bufio.NewWriter(tmp)
	for _, line := range lines {
		if _, err := w.Write(line); err != nil {
			cleanup()
			return fmt.Errorf("writing export line: %w", err)
		}
		if err := w.WriteByte('\n'); err != nil {
			cleanup()
			return fmt.Errorf("writing export line: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		cleanup()
		return fmt.Errorf("flushing export: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return fmt.Errorf("syncing export: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing export: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
