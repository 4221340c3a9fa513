// ABOUTME: CSV export of deals with a fixed column set
// ABOUTME: Values are written as displayed in the grid, with standard CSV quoting
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/harperreed/dealgrid/models"
)

// Header is the first CSV row.
var Header = []string{"Name", "Company", "Stage", "Priority", "Amount", "Probability", "Close Date", "Owner"}

// WriteCSV writes the header and one row per deal in the given order.
func WriteCSV(w io.Writer, deals []models.Deal) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, d := range deals {
		if err := cw.Write(Row(d)); err != nil {
			return fmt.Errorf("write csv row %s: %w", d.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Row is the CSV record for one deal.
func Row(d models.Deal) []string {
	return []string{
		d.Name,
		d.Company,
		string(d.Stage),
		string(d.Priority),
		d.Amount.String(),
		strconv.Itoa(d.Probability),
		d.CloseDate,
		d.Owner.Name,
	}
}

// Filename is the default export file name for a given day.
func Filename(now time.Time) string {
	return "deals-export-" + now.Format(models.DateLayout) + ".csv"
}
