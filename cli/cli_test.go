package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/harperreed/dealgrid/columns"
	"github.com/harperreed/dealgrid/grid"
	"github.com/harperreed/dealgrid/prefs"
	"github.com/harperreed/dealgrid/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestGrid(t *testing.T) *grid.Grid {
	t.Helper()
	reg := columns.Default()
	return grid.New(store.NewSample(), reg, prefs.Defaults(reg))
}

func TestListDealsCommand(t *testing.T) {
	g := setupTestGrid(t)
	var out bytes.Buffer

	err := ListDealsCommand(g, []string{"--stage", "won,lost", "--sort", "amount:desc"}, &out)
	require.NoError(t, err)

	lines := strings.Split(out.String(), "\n")
	require.GreaterOrEqual(t, len(lines), 4)
	assert.Contains(t, lines[0], "DEAL NAME")
	assert.True(t, strings.HasPrefix(lines[2], "Data Analytics Platform"))
	assert.True(t, strings.HasPrefix(lines[3], "Mobile App Development"))
	assert.Contains(t, out.String(), "Total: 2 of 6 deal(s) - $234,000")
}

func TestListDealsCommandWhereAndHeader(t *testing.T) {
	g := setupTestGrid(t)
	var out bytes.Buffer

	err := ListDealsCommand(g, []string{"--where", "min=60000&max=100000", "--header", "owner=emily"}, &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Custom Development Project")
	assert.Contains(t, out.String(), "Total: 1 of 6 deal(s)")
}

func TestListDealsCommandNoMatches(t *testing.T) {
	g := setupTestGrid(t)
	var out bytes.Buffer

	require.NoError(t, ListDealsCommand(g, []string{"--q", "nothing like this"}, &out))
	assert.Equal(t, "No deals found\n", out.String())
}

func TestListDealsCommandErrors(t *testing.T) {
	g := setupTestGrid(t)
	var out bytes.Buffer

	assert.Error(t, ListDealsCommand(g, []string{"--stage", "closed"}, &out))
	assert.Error(t, ListDealsCommand(g, []string{"--sort", "color"}, &out))
	assert.Error(t, ListDealsCommand(g, []string{"--header", "nocolumn=x"}, &out))
	assert.Error(t, ListDealsCommand(g, []string{"--header", "missing-equals"}, &out))
}

func TestDealTotalsCommand(t *testing.T) {
	g := setupTestGrid(t)
	var out bytes.Buffer

	require.NoError(t, DealTotalsCommand(g, []string{"--priority", "high"}, &out))
	s := out.String()
	assert.Contains(t, s, "Deals:")
	assert.Contains(t, s, "$214,000")
	assert.Contains(t, s, "Negotiation:")
}

func TestExportDealsCommand(t *testing.T) {
	g := setupTestGrid(t)
	path := filepath.Join(t.TempDir(), "out.csv")
	var out bytes.Buffer

	require.NoError(t, ExportDealsCommand(g, []string{"--owner", "Lisa Wang", "--output", path}, &out))
	assert.Contains(t, out.String(), "Exported 1 deal(s)")
	assert.Equal(t, 0, g.SelectedCount())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "FinanceFirst Bank")

	out.Reset()
	require.NoError(t, ExportDealsCommand(g, []string{"--output", "-"}, &out))
	assert.True(t, strings.HasPrefix(out.String(), "Name,Company,Stage"))
}

func TestVizCommands(t *testing.T) {
	g := setupTestGrid(t)
	var out bytes.Buffer

	require.NoError(t, VizDashboardCommand(g, []string{"--as-of", "2024-01-01"}, &out))
	assert.Contains(t, out.String(), "PIPELINE OVERVIEW")

	path := filepath.Join(t.TempDir(), "pipeline.dot")
	require.NoError(t, VizGraphCommand(context.Background(), g, []string{"--output", path}, &out))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "stage_Won")
}

func TestPrefsCommands(t *testing.T) {
	ctx := context.Background()
	m := prefs.NewManager(prefs.NewMemoryBackend(), columns.Default())
	var out bytes.Buffer

	require.NoError(t, PrefsShowCommand(ctx, m, &out))
	assert.Contains(t, out.String(), "No saved preferences")

	g := setupTestGrid(t)
	require.NoError(t, g.ClickSort("amount", false))
	require.NoError(t, m.Save(ctx, g.Preferences()))

	out.Reset()
	require.NoError(t, PrefsShowCommand(ctx, m, &out))
	assert.Contains(t, out.String(), `"sort_configs"`)
	assert.Contains(t, out.String(), `"amount"`)

	out.Reset()
	require.NoError(t, PrefsResetCommand(ctx, m, &out))
	_, err := m.Raw(ctx)
	assert.ErrorIs(t, err, prefs.ErrNotFound)
}

func TestNewMCPServer(t *testing.T) {
	assert.NotNil(t, NewMCPServer(setupTestGrid(t), "test"))
}
