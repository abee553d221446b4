package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/pantry/pkg/pantry"
	"github.com/mesh-intelligence/pantry/pkg/types"
)

// env is an isolated config and data directory pair.
type env struct {
	configDir string
	dataDir   string
}

func newEnv(t *testing.T) env {
	t.Helper()
	for _, key := range []string{
		"PANTRY_BACKEND", "PANTRY_STRICT_LOAD", "PANTRY_STRICT_RECIPIENTS",
		"PANTRY_LOW_STOCK_THRESHOLD", "PANTRY_CONFIG_DIR", "PANTRY_DATA_DIR",
	} {
		t.Setenv(key, "")
	}
	root := t.TempDir()
	return env{
		configDir: filepath.Join(root, "config"),
		dataDir:   filepath.Join(root, "data"),
	}
}

type result struct {
	stdout string
	stderr string
	code   int
}

func (e env) run(t *testing.T, args ...string) result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	full := append([]string{"--config-dir", e.configDir, "--data-dir", e.dataDir}, args...)
	code := run(root, full, &stderr)
	return result{stdout: stdout.String(), stderr: stderr.String(), code: code}
}

func (e env) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	r := e.run(t, args...)
	require.Equal(t, exitSuccess, r.code, "args %v: stderr %s", args, r.stderr)
	return r.stdout
}

// seed registers Rice (50), Beans (3), and Alice Johnson.
func (e env) seed(t *testing.T) {
	t.Helper()
	e.mustRun(t, "item", "add", "Rice", "--category", "Grains", "--quantity", "50")
	e.mustRun(t, "item", "add", "Beans", "--category", "Canned Goods", "--quantity", "3")
	e.mustRun(t, "recipient", "add", "Alice Johnson", "--household", "4", "--notes", "Gluten-free preferred")
}

func TestVersion(t *testing.T) {
	e := newEnv(t)

	out := e.mustRun(t, "version")

	assert.Contains(t, out, "pantry v"+pantry.Version)
	assert.Contains(t, out, modulePath)
	_, err := os.Stat(e.configDir)
	assert.True(t, os.IsNotExist(err), "version does not touch the config dir")
}

func TestInit(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		backend  string
		dataFile string
	}{
		{name: "json by default", args: []string{"init"}, backend: "json", dataFile: "pantry_data.json"},
		{name: "sqlite", args: []string{"init", "--backend", "sqlite"}, backend: "sqlite", dataFile: "pantry.db"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t)

			out := e.mustRun(t, tt.args...)
			assert.Contains(t, out, "Pantry initialized successfully")

			data, err := os.ReadFile(filepath.Join(e.configDir, "config.yaml"))
			require.NoError(t, err)
			var cfg configFile
			require.NoError(t, yaml.Unmarshal(data, &cfg))
			assert.Equal(t, tt.backend, cfg.Backend)
			assert.Equal(t, types.DefaultLowStockThreshold, cfg.LowStockThreshold)

			_, err = os.Stat(filepath.Join(e.dataDir, tt.dataFile))
			assert.NoError(t, err)
		})
	}
}

func TestInitKeepsExistingConfig(t *testing.T) {
	e := newEnv(t)
	require.NoError(t, os.MkdirAll(e.configDir, 0o755))
	path := filepath.Join(e.configDir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("backend: sqlite\n"), 0o644))

	e.mustRun(t, "init")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "backend: sqlite\n", string(data))
	_, err = os.Stat(filepath.Join(e.dataDir, "pantry.db"))
	assert.NoError(t, err)
}

func TestInitRejectsUnknownBackend(t *testing.T) {
	e := newEnv(t)

	r := e.run(t, "init", "--backend", "csv")

	assert.Equal(t, exitUserError, r.code)
	assert.Contains(t, r.stderr, "csv")
}

func TestDistributeWorkflow(t *testing.T) {
	e := newEnv(t)
	e.seed(t)

	out := e.mustRun(t, "distribute", "Rice", "Alice Johnson", "5")
	assert.Equal(t, "SUCCESS\n", out)

	var items []types.Item
	require.NoError(t, json.Unmarshal([]byte(e.mustRun(t, "item", "list", "--json")), &items))
	assert.Equal(t, []types.Item{
		{Name: "Rice", Category: "Grains", Quantity: 45},
		{Name: "Beans", Category: "Canned Goods", Quantity: 3},
	}, items)

	var alice types.Recipient
	require.NoError(t, json.Unmarshal([]byte(e.mustRun(t, "recipient", "show", "Alice Johnson", "--json")), &alice))
	require.Len(t, alice.ReceivedItems, 1)
	assert.Equal(t, "Rice", alice.ReceivedItems[0].ItemName)
	assert.Equal(t, 5, alice.ReceivedItems[0].Quantity)

	var history []types.Distribution
	require.NoError(t, json.Unmarshal([]byte(e.mustRun(t, "history", "--json")), &history))
	require.Len(t, history, 1)
	assert.Equal(t, "Alice Johnson", history[0].Recipient)
	assert.NotEmpty(t, history[0].ID)

	assert.Contains(t, e.mustRun(t, "history"), "Alice Johnson")
	assert.Equal(t, "No distributions yet.\n", e.mustRun(t, "history", "--recipient", "Marcus Smith"))
}

func TestDistributeFailures(t *testing.T) {
	e := newEnv(t)
	e.seed(t)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "zero quantity", args: []string{"Rice", "Alice Johnson", "0"}, wantErr: "Quantity must be positive."},
		{name: "unknown item", args: []string{"Milk", "Alice Johnson", "1"}, wantErr: "Item 'Milk' not found."},
		{name: "unknown recipient", args: []string{"Rice", "Bob", "1"}, wantErr: "Recipient 'Bob' not found."},
		{name: "insufficient stock", args: []string{"Rice", "Alice Johnson", "100"}, wantErr: "Not enough 'Rice' in stock. Available: 50, requested: 100"},
		{name: "not a number", args: []string{"Rice", "Alice Johnson", "lots"}, wantErr: "quantity must be an integer"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := e.run(t, append([]string{"distribute"}, tt.args...)...)
			assert.Equal(t, exitUserError, r.code)
			assert.Contains(t, r.stderr, tt.wantErr)
		})
	}

	assert.Equal(t, "No distributions yet.\n", e.mustRun(t, "history"))
}

func TestItemAddAccumulates(t *testing.T) {
	e := newEnv(t)
	e.mustRun(t, "item", "add", "Rice", "--category", "Grains", "--quantity", "10")

	out := e.mustRun(t, "item", "add", "Rice", "--category", "Other", "--quantity", "5")

	assert.Equal(t, "Rice (Grains): 15 in stock\n", out)
	r := e.run(t, "item", "add", "Rice", "--quantity", "-1")
	assert.Equal(t, exitUserError, r.code)
}

func TestItemAdjust(t *testing.T) {
	e := newEnv(t)
	e.seed(t)

	assert.Equal(t, "Rice: 60 in stock\n", e.mustRun(t, "item", "adjust", "Rice", "10"))
	assert.Equal(t, "Rice: 57 in stock\n", e.mustRun(t, "item", "adjust", "Rice", "--", "-3"))

	r := e.run(t, "item", "adjust", "Beans", "--", "-4")
	assert.Equal(t, exitUserError, r.code)
	assert.Contains(t, r.stderr, types.ErrNegativeQuantity.Error())

	r = e.run(t, "item", "adjust", "Milk", "1")
	assert.Equal(t, exitUserError, r.code)
}

func TestItemLow(t *testing.T) {
	e := newEnv(t)
	e.seed(t)

	out := e.mustRun(t, "item", "low")
	assert.Contains(t, out, "Beans")
	assert.NotContains(t, out, "Rice")

	assert.Contains(t, e.mustRun(t, "item", "low", "--threshold", "50"), "Rice")

	t.Setenv("PANTRY_LOW_STOCK_THRESHOLD", "2")
	assert.Equal(t, "Nothing is running low.\n", e.mustRun(t, "item", "low"))
	assert.Equal(t, "[]\n", e.mustRun(t, "item", "low", "--json"))
}

func TestRecipientAdd(t *testing.T) {
	e := newEnv(t)
	e.seed(t)

	e.mustRun(t, "recipient", "add", "Alice Johnson", "--household", "2")
	r := e.run(t, "recipient", "add", "Marcus Smith", "--household", "0")
	assert.Equal(t, exitUserError, r.code)

	var recipients []types.Recipient
	require.NoError(t, json.Unmarshal([]byte(e.mustRun(t, "recipient", "list", "--json")), &recipients))
	require.Len(t, recipients, 1)
	assert.Equal(t, 4, recipients[0].HouseholdSize, "duplicate registration is ignored")

	r = e.run(t, "recipient", "show", "Marcus Smith")
	assert.Equal(t, exitUserError, r.code)
}

func TestStrictRecipientsFromConfig(t *testing.T) {
	e := newEnv(t)
	require.NoError(t, os.MkdirAll(e.configDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(e.configDir, "config.yaml"),
		[]byte("backend: json\nstrict_recipients: true\n"), 0o644))

	e.mustRun(t, "recipient", "add", "Alice Johnson")
	r := e.run(t, "recipient", "add", "Alice Johnson")

	assert.Equal(t, exitUserError, r.code)
	assert.Contains(t, r.stderr, types.ErrDuplicateRecipient.Error())
}

func TestCorruptDataFile(t *testing.T) {
	e := newEnv(t)
	require.NoError(t, os.MkdirAll(e.dataDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(e.dataDir, "pantry_data.json"), []byte("{broken"), 0o644))

	t.Setenv("PANTRY_STRICT_LOAD", "true")
	r := e.run(t, "item", "list")
	assert.Equal(t, exitSysError, r.code)

	t.Setenv("PANTRY_STRICT_LOAD", "")
	assert.Equal(t, "No items.\n", e.mustRun(t, "item", "list"))
}

func TestSQLiteBackendFromEnv(t *testing.T) {
	e := newEnv(t)
	t.Setenv("PANTRY_BACKEND", "sqlite")
	e.seed(t)

	e.mustRun(t, "distribute", "Beans", "Alice Johnson", "3")

	_, err := os.Stat(filepath.Join(e.dataDir, "pantry.db"))
	require.NoError(t, err)
	assert.Contains(t, e.mustRun(t, "item", "low", "--threshold", "0"), "Beans")

	t.Setenv("PANTRY_BACKEND", "xml")
	r := e.run(t, "item", "list")
	assert.Equal(t, exitSysError, r.code)
}

func TestReport(t *testing.T) {
	e := newEnv(t)
	e.seed(t)
	e.mustRun(t, "distribute", "Rice", "Alice Johnson", "5")

	raw := e.mustRun(t, "report", "--raw")
	assert.Contains(t, raw, "# Pantry Report")
	assert.Contains(t, raw, "| Rice | Grains | 45 |")
	assert.Contains(t, raw, "- **Beans**: 3")

	rendered := e.mustRun(t, "report")
	assert.Contains(t, rendered, "Pantry Report")
	assert.Contains(t, rendered, "Rice")
}

func TestQuery(t *testing.T) {
	e := newEnv(t)
	e.seed(t)

	out := e.mustRun(t, "query", "$.inventory[?(@.quantity <= 5)].name")
	assert.JSONEq(t, `["Beans"]`, out)

	out = e.mustRun(t, "query", "$.recipients[0].household_size")
	assert.JSONEq(t, `4`, out)

	r := e.run(t, "query", "$.inventory[")
	assert.Equal(t, exitUserError, r.code)
}

func TestVerboseLogsToStderr(t *testing.T) {
	e := newEnv(t)
	e.seed(t)

	r := e.run(t, "-v", "distribute", "Rice", "Alice Johnson", "5")

	require.Equal(t, exitSuccess, r.code)
	assert.Contains(t, r.stderr, "pantry: ")
	assert.Contains(t, r.stderr, `distributed 5 of "Rice" to "Alice Johnson"`)

	r = e.run(t, "distribute", "Rice", "Alice Johnson", "5")
	assert.Empty(t, r.stderr)
}

func TestUnknownCommand(t *testing.T) {
	e := newEnv(t)

	r := e.run(t, "restock")

	assert.Equal(t, exitUserError, r.code)
	assert.Contains(t, r.stderr, "unknown command")
}

func TestJSONOutputMatchesStoredTimestamps(t *testing.T) {
	e := newEnv(t)
	e.seed(t)
	e.mustRun(t, "distribute", "Rice", "Alice Johnson", "5")
	stamp := regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}$`)

	var history []map[string]any
	require.NoError(t, json.Unmarshal([]byte(e.mustRun(t, "history", "--json")), &history))
	require.Len(t, history, 1)
	assert.Regexp(t, stamp, history[0]["timestamp"])

	var alice map[string]any
	require.NoError(t, json.Unmarshal([]byte(e.mustRun(t, "recipient", "show", "Alice Johnson", "--json")), &alice))
	receipt := alice["received_items"].([]any)[0].(map[string]any)
	assert.Regexp(t, stamp, receipt["timestamp"])

	var stored string
	require.NoError(t, json.Unmarshal([]byte(e.mustRun(t, "query", "$.history[0].timestamp")), &stored))
	assert.Equal(t, history[0]["timestamp"], stored)
}

func TestMistypedRecordDoesNotWipeDataFile(t *testing.T) {
	e := newEnv(t)
	require.NoError(t, os.MkdirAll(e.dataDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(e.dataDir, "pantry_data.json"), []byte(`{
  "inventory": [
    {"name": "Rice", "category": "Grains", "quantity": 50},
    {"name": "Beans", "category": "Canned Goods", "quantity": "30"}
  ],
  "recipients": [{"name": "Alice", "household_size": 4, "notes": "", "received_items": []}],
  "history": []
}`), 0o644))

	r := e.run(t, "-v", "item", "add", "Salt", "--category", "Spices", "--quantity", "1")
	require.Equal(t, exitSuccess, r.code, r.stderr)
	assert.Contains(t, r.stderr, "skipping inventory record 1")

	var items []types.Item
	require.NoError(t, json.Unmarshal([]byte(e.mustRun(t, "item", "list", "--json")), &items))
	assert.Equal(t, []types.Item{
		{Name: "Rice", Category: "Grains", Quantity: 50},
		{Name: "Salt", Category: "Spices", Quantity: 1},
	}, items)
	assert.Contains(t, e.mustRun(t, "recipient", "list"), "Alice")
}
