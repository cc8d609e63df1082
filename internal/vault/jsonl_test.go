package vault

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/vitals/pkg/record"
)

func TestExportImportRoundTrip(t *testing.T) {
	src := openVault(t)

	wantIDs := make(map[string]bool)
	id, err := src.Put(weightThing(t, 81.6))
	require.NoError(t, err)
	wantIDs[id] = true

	email, err := record.NewEmail("x@y.com")
	require.NoError(t, err)
	id, err = src.Put(record.NewThing(email))
	require.NoError(t, err)
	wantIDs[id] = true

	path := filepath.Join(t.TempDir(), "vault.jsonl")
	require.NoError(t, src.Export(path))

	dst := openVault(t)
	n, err := dst.Import(path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	entries, err := dst.List(record.Filter{})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.True(t, wantIDs[e.ID], "imported id %s was never exported", e.ID)

		got, err := dst.Get(e.ID)
		require.NoError(t, err)
		assert.Equal(t, e.Summary, got.String())
	}
}

func TestExportFileShape(t *testing.T) {
	v := openVault(t)
	_, err := v.Put(weightThing(t, 81.6))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "vault.jsonl")
	require.NoError(t, v.Export(path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var lines []exportLine
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var line exportLine
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &line), "every line must be a JSON object")
		lines = append(lines, line)
	}
	require.NoError(t, scanner.Err())

	require.Len(t, lines, 1)
	assert.NotEmpty(t, lines[0].ThingID)
	assert.Equal(t, record.WeightTypeID.String(), lines[0].TypeID)
	assert.Contains(t, lines[0].XML, "<weight>")
}

func TestExportReplacesExistingFile(t *testing.T) {
	v := openVault(t)
	_, err := v.Put(weightThing(t, 81.6))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "vault.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("stale content\n"), 0o644))

	require.NoError(t, v.Export(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "stale content")
}

func TestImportSkipsJunkLines(t *testing.T) {
	src := openVault(t)
	_, err := src.Put(weightThing(t, 81.6))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "vault.jsonl")
	require.NoError(t, src.Export(path))

	// Corrupt the file: blank line, broken JSON, valid JSON with broken XML.
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString("\n{not json\n{\"thing_id\":\"x\",\"type_id\":\"y\",\"xml\":\"<thing>\"}\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	dst := openVault(t)
	n, err := dst.Import(path)
	require.NoError(t, err)
	assert.Equal(t, 1, n, "only the intact line should import")

	entries, err := dst.List(record.Filter{})
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestImportMissingFile(t *testing.T) {
	v := openVault(t)
	_, err := v.Import(filepath.Join(t.TempDir(), "absent.jsonl"))
	assert.Error(t, err)
}

func TestImportIsIdempotentForIDs(t *testing.T) {
	src := openVault(t)
	id, err := src.Put(weightThing(t, 81.6))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "vault.jsonl")
	require.NoError(t, src.Export(path))

	// Importing the same export twice overwrites by id instead of
	// duplicating.
	dst := openVault(t)
	_, err = dst.Import(path)
	require.NoError(t, err)
	_, err = dst.Import(path)
	require.NoError(t, err)

	entries, err := dst.List(record.Filter{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, id, entries[0].ID)
}
