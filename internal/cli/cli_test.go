package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/vitals/internal/vault"
	"github.com/mesh-intelligence/vitals/pkg/record"
)

const weightDoc = `<weight><when>2024-05-14T09:30:00Z</when><value><kg>81.6</kg></value></weight>`

const emailDoc = `<email><description>Personal</description><is-primary>true</is-primary><address>x@y.com</address></email>`

// runCommand executes the root command with args plus isolated directory
// flags, and returns everything written to stdout and stderr.
func runCommand(t *testing.T, configDir, dataDir string, args ...string) (string, error) {
	t.Helper()

	full := append([]string{"--config-dir", configDir, "--data-dir", dataDir}, args...)

	root := NewRootCmd()
	buf := &bytes.Buffer{}
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(full)

	err := root.Execute()
	return buf.String(), err
}

// testDirs returns fresh config and data directories under a temp root.
func testDirs(t *testing.T) (string, string) {
	t.Helper()
	base := t.TempDir()
	return filepath.Join(base, "config"), filepath.Join(base, "data")
}

// writeDoc writes an XML document into a temp file and returns its path.
func writeDoc(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.xml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestVersionCmd(t *testing.T) {
	configDir, dataDir := testDirs(t)

	out, err := runCommand(t, configDir, dataDir, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "vitals v")
	assert.Contains(t, out, modulePath)
}

func TestInitCmd(t *testing.T) {
	configDir, dataDir := testDirs(t)

	out, err := runCommand(t, configDir, dataDir, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "initialized")

	configPath := filepath.Join(configDir, "config.yaml")
	cfg, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Contains(t, string(cfg), "data_dir")

	_, err = os.Stat(filepath.Join(dataDir, vault.DBFileName))
	require.NoError(t, err, "init must create the vault database")

	// Running init again is idempotent.
	_, err = runCommand(t, configDir, dataDir, "init")
	require.NoError(t, err)
}

func TestInitReadsDataDirFromConfig(t *testing.T) {
	configDir, dataDir := testDirs(t)

	_, err := runCommand(t, configDir, dataDir, "init")
	require.NoError(t, err)

	// A later command without --data-dir must pick up the config value.
	doc := writeDoc(t, weightDoc)
	root := NewRootCmd()
	buf := &bytes.Buffer{}
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs([]string{"--config-dir", configDir, "put", doc})
	require.NoError(t, root.Execute())
	assert.Contains(t, buf.String(), "Stored thing:")

	entries := listEntries(t, configDir, dataDir)
	require.Len(t, entries, 1)
}

func TestTypesCmd(t *testing.T) {
	configDir, dataDir := testDirs(t)

	out, err := runCommand(t, configDir, dataDir, "types")
	require.NoError(t, err)
	assert.Contains(t, out, "TYPE ID")
	for _, name := range []string{"blood-pressure", "contact", "email", "goal", "lab-result", "procedure", "weight"} {
		assert.Contains(t, out, name)
	}

	out, err = runCommand(t, configDir, dataDir, "types", "--json")
	require.NoError(t, err)

	var rows []typeOutput
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, len(record.Types()))
	assert.Equal(t, "blood-pressure", rows[0].Name)
}

func TestValidateCmd(t *testing.T) {
	configDir, dataDir := testDirs(t)

	t.Run("valid fragment", func(t *testing.T) {
		doc := writeDoc(t, weightDoc)
		out, err := runCommand(t, configDir, dataDir, "validate", doc)
		require.NoError(t, err)
		assert.Contains(t, out, "valid weight")
	})

	t.Run("json output", func(t *testing.T) {
		doc := writeDoc(t, weightDoc)
		out, err := runCommand(t, configDir, dataDir, "validate", doc, "--json")
		require.NoError(t, err)

		var res validateOutput
		require.NoError(t, json.Unmarshal([]byte(out), &res))
		assert.True(t, res.Valid)
		assert.Equal(t, "weight", res.Type)
		assert.Equal(t, "81.6 kg", res.Summary)
	})

	t.Run("missing mandatory field", func(t *testing.T) {
		doc := writeDoc(t, `<weight><value><kg>81.6</kg></value></weight>`)
		_, err := runCommand(t, configDir, dataDir, "validate", doc)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "when")
	})

	t.Run("unknown root element", func(t *testing.T) {
		doc := writeDoc(t, `<pizza><topping>cheese</topping></pizza>`)
		_, err := runCommand(t, configDir, dataDir, "validate", doc)
		require.ErrorIs(t, err, record.ErrUnknownType)
	})

	t.Run("malformed xml", func(t *testing.T) {
		doc := writeDoc(t, `<weight><when>`)
		_, err := runCommand(t, configDir, dataDir, "validate", doc)
		require.Error(t, err)
	})
}

func TestShowCmd(t *testing.T) {
	configDir, dataDir := testDirs(t)
	doc := writeDoc(t, weightDoc)

	out, err := runCommand(t, configDir, dataDir, "show", doc)
	require.NoError(t, err)
	assert.Equal(t, "81.6 kg\n", out)

	out, err = runCommand(t, configDir, dataDir, "show", doc, "--json")
	require.NoError(t, err)

	var res showOutput
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "weight", res.Type)
	assert.Equal(t, "81.6 kg", res.Summary)
	assert.Equal(t, record.WeightTypeID.String(), res.TypeID)
}

func TestPutGetDeleteFlow(t *testing.T) {
	configDir, dataDir := testDirs(t)

	doc := writeDoc(t, weightDoc)
	out, err := runCommand(t, configDir, dataDir, "put", doc, "--json")
	require.NoError(t, err)

	var put putOutput
	require.NoError(t, json.Unmarshal([]byte(out), &put))
	require.NotEmpty(t, put.ThingID)
	assert.Equal(t, "weight", put.Type)

	out, err = runCommand(t, configDir, dataDir, "get", put.ThingID)
	require.NoError(t, err)
	assert.Contains(t, out, "<thing>")
	assert.Contains(t, out, "<kg>81.6</kg>")
	assert.Contains(t, out, put.ThingID)

	out, err = runCommand(t, configDir, dataDir, "delete", put.ThingID)
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted thing:")

	_, err = runCommand(t, configDir, dataDir, "get", put.ThingID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestPutEnvelopeKeepsID(t *testing.T) {
	configDir, dataDir := testDirs(t)

	const id = "0190a1b2-0000-7000-8000-000000000001"
	doc := writeDoc(t,
		`<thing>`+
			`<thing-id version-stamp="0190a1b2-3c4d-7e5f-8a9b-0c1d2e3f4a5b">`+id+`</thing-id>`+
			`<type-id name="weight">`+record.WeightTypeID.String()+`</type-id>`+
			`<data-xml>`+weightDoc+`</data-xml>`+
			`</thing>`)

	out, err := runCommand(t, configDir, dataDir, "put", doc, "--json")
	require.NoError(t, err)

	var put putOutput
	require.NoError(t, json.Unmarshal([]byte(out), &put))
	assert.Equal(t, id, put.ThingID)
}

// listEntries runs "list --json" and decodes the result.
func listEntries(t *testing.T, configDir, dataDir string, extra ...string) []listOutput {
	t.Helper()

	args := append([]string{"list", "--json"}, extra...)
	out, err := runCommand(t, configDir, dataDir, args...)
	require.NoError(t, err)

	var rows []listOutput
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	return rows
}

func TestListCmd(t *testing.T) {
	configDir, dataDir := testDirs(t)

	_, err := runCommand(t, configDir, dataDir, "put", writeDoc(t, weightDoc))
	require.NoError(t, err)
	_, err = runCommand(t, configDir, dataDir, "put", writeDoc(t, emailDoc))
	require.NoError(t, err)

	rows := listEntries(t, configDir, dataDir)
	require.Len(t, rows, 2)

	rows = listEntries(t, configDir, dataDir, "--type", "weight")
	require.Len(t, rows, 1)
	assert.Equal(t, "weight", rows[0].Type)
	assert.Equal(t, "81.6 kg", rows[0].Summary)

	rows = listEntries(t, configDir, dataDir, "--type", "goal")
	assert.Empty(t, rows)

	out, err := runCommand(t, configDir, dataDir, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "SUMMARY")
	assert.Contains(t, out, "81.6 kg")

	_, err = runCommand(t, configDir, dataDir, "list", "--type", "bogus")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown item type")
	assert.Contains(t, err.Error(), "weight")
}

func TestExportImportCmd(t *testing.T) {
	configDir, dataDir := testDirs(t)

	doc := writeDoc(t, weightDoc)
	out, err := runCommand(t, configDir, dataDir, "put", doc, "--json")
	require.NoError(t, err)

	var put putOutput
	require.NoError(t, json.Unmarshal([]byte(out), &put))

	exportPath := filepath.Join(t.TempDir(), "backup.jsonl")
	out, err = runCommand(t, configDir, dataDir, "export", "--out", exportPath)
	require.NoError(t, err)
	assert.Contains(t, out, exportPath)

	data, err := os.ReadFile(exportPath)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), "\n"))

	// Import into a fresh vault; the thing id must survive.
	otherData := filepath.Join(t.TempDir(), "data2")
	out, err = runCommand(t, configDir, otherData, "import", "--in", exportPath, "--json")
	require.NoError(t, err)

	var res struct {
		Imported int `json:"imported"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, 1, res.Imported)

	got, err := runCommand(t, configDir, otherData, "get", put.ThingID)
	require.NoError(t, err)
	assert.Contains(t, got, "<kg>81.6</kg>")
}

func TestExportRequiresOutFlag(t *testing.T) {
	configDir, dataDir := testDirs(t)

	_, err := runCommand(t, configDir, dataDir, "export")
	require.Error(t, err)
}
