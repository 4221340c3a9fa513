// ABOUTME: Tests for CSV export
// ABOUTME: Checks header order, display formatting and quoting of embedded commas
package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/harperreed/dealgrid/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCSV(t *testing.T) {
	deals := []models.Deal{
		{
			ID:          "1",
			Name:        "Enterprise License",
			Company:     "TechCorp, Inc.",
			Stage:       models.StageNegotiation,
			Priority:    models.PriorityHigh,
			Amount:      models.Dollars(125000),
			Probability: 85,
			CloseDate:   "2024-02-15",
			Owner:       models.Owner{Name: "Sarah Johnson", Initials: "SJ"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, deals))

	lines := buf.String()
	assert.Contains(t, lines, "Name,Company,Stage,Priority,Amount,Probability,Close Date,Owner\n")
	assert.Contains(t, lines, `Enterprise License,"TechCorp, Inc.",Negotiation,High,"$125,000",85,2024-02-15,Sarah Johnson`)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "TechCorp, Inc.", records[1][1])
	assert.Equal(t, "$125,000", records[1][4])
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	assert.Equal(t, "Name,Company,Stage,Priority,Amount,Probability,Close Date,Owner\n", buf.String())
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "deals-export-2024-01-20.csv", Filename(time.Date(2024, 1, 20, 23, 0, 0, 0, time.UTC)))
}
