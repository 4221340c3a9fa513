// ABOUTME: Deal CLI commands
// ABOUTME: Lists, summarizes and exports the filtered deal grid from the command line
package cli

import (
	"flag"
	"fmt"
	"io"
	"net/url"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/harperreed/dealgrid/export"
	"github.com/harperreed/dealgrid/grid"
	"github.com/harperreed/dealgrid/models"
	"github.com/harperreed/dealgrid/pipeline"
)

// headerFlags collects repeated --header col=value flags.
type headerFlags map[string]string

func (h headerFlags) String() string {
	var parts []string
	for k, v := range h {
		parts = append(parts, k+"="+v)
	}
	sort.Strings(parts)
	return strings.Join(parts, ",")
}

func (h headerFlags) Set(s string) error {
	key, value, ok := strings.Cut(s, "=")
	if !ok || strings.TrimSpace(key) == "" {
		return fmt.Errorf("header filter must be column=value, got %q", s)
	}
	h[strings.TrimSpace(key)] = value
	return nil
}

// viewFlags are the filter and sort flags shared by the deals subcommands.
type viewFlags struct {
	fs      *flag.FlagSet
	where   *string
	sort    *string
	headers headerFlags
}

// queryFlags maps flag names onto the filter query keys they override.
var queryFlags = map[string]string{
	"stage":    "stage",
	"priority": "priority",
	"owner":    "owner",
	"source":   "source",
	"min":      "min",
	"max":      "max",
	"q":        "q",
}

func newViewFlags(name string) *viewFlags {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	v := &viewFlags{fs: fs, headers: headerFlags{}}
	fs.String("stage", "", "Stages to include (comma separated)")
	fs.String("priority", "", "Priorities to include (comma separated)")
	fs.String("owner", "", "Owner names to include (comma separated)")
	fs.String("source", "", "Lead sources to include (comma separated)")
	fs.String("min", "", "Minimum amount in dollars")
	fs.String("max", "", "Maximum amount in dollars")
	fs.String("q", "", "Search name, company, owner and tags")
	v.where = fs.String("where", "", "Filter query, e.g. 'stage=Won,Lost&min=50000'")
	v.sort = fs.String("sort", "", "Sort keys, e.g. amount:desc,name")
	fs.Var(v.headers, "header", "Column filter as column=value (repeatable)")
	return v
}

// apply overrides the grid's saved view with whatever flags were given.
func (v *viewFlags) apply(g *grid.Grid) error {
	values := url.Values{}
	if *v.where != "" {
		parsed, err := url.ParseQuery(strings.TrimPrefix(*v.where, "?"))
		if err != nil {
			return fmt.Errorf("invalid --where: %w", err)
		}
		values = parsed
	}

	set := map[string]bool{}
	v.fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	override := set["where"]
	for name, key := range queryFlags {
		if set[name] {
			values.Set(key, v.fs.Lookup(name).Value.String())
			override = true
		}
	}
	if override {
		criteria, err := pipeline.ParseCriteria(values)
		if err != nil {
			return err
		}
		g.SetFilters(criteria)
	}

	if set["sort"] {
		keys, err := pipeline.ParseSortKeys(*v.sort)
		if err != nil {
			return err
		}
		g.SetSortKeys(keys)
	}

	for key, value := range v.headers {
		if err := g.SetHeaderFilter(key, value); err != nil {
			return err
		}
	}
	return nil
}

// ListDealsCommand prints the filtered, sorted grid followed by its totals.
func ListDealsCommand(g *grid.Grid, args []string, w io.Writer) error {
	v := newViewFlags("list")
	if err := v.fs.Parse(args); err != nil {
		return err
	}
	if err := v.apply(g); err != nil {
		return err
	}

	deals := g.View()
	if len(deals) == 0 {
		_, _ = fmt.Fprintln(w, "No deals found")
		return nil
	}

	cols := g.VisibleColumns()
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	var header, rule []string
	for _, c := range cols {
		label := strings.ToUpper(c.Label)
		header = append(header, label)
		rule = append(rule, strings.Repeat("-", len(label)))
	}
	_, _ = fmt.Fprintln(tw, strings.Join(header, "\t"))
	_, _ = fmt.Fprintln(tw, strings.Join(rule, "\t"))

	for _, d := range deals {
		cells := make([]string, len(cols))
		for i, c := range cols {
			cells[i] = truncate(c.Format(d), c.Width)
		}
		_, _ = fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	_ = tw.Flush()

	t := g.Totals()
	_, _ = fmt.Fprintf(w, "\nTotal: %d of %d deal(s) - %s (weighted %s, avg probability %.0f%%)\n",
		t.TotalDeals, g.Len(), t.TotalValue, t.WeightedValue, t.AvgProbability)
	return nil
}

// DealTotalsCommand prints the aggregates of the filtered grid.
func DealTotalsCommand(g *grid.Grid, args []string, w io.Writer) error {
	v := newViewFlags("totals")
	if err := v.fs.Parse(args); err != nil {
		return err
	}
	if err := v.apply(g); err != nil {
		return err
	}

	t := g.Totals()
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "Deals:\t%d\n", t.TotalDeals)
	_, _ = fmt.Fprintf(tw, "Total value:\t%s\n", t.TotalValue)
	_, _ = fmt.Fprintf(tw, "Weighted value:\t%s\n", t.WeightedValue)
	_, _ = fmt.Fprintf(tw, "Avg probability:\t%.1f%%\n", t.AvgProbability)
	_, _ = fmt.Fprintf(tw, "Won / Lost:\t%d / %d\n", t.WonDeals, t.LostDeals)
	_, _ = fmt.Fprintf(tw, "Win rate:\t%.1f%%\n", t.WinRate())
	_, _ = fmt.Fprintln(tw, "\t")
	for _, stage := range models.Stages {
		_, _ = fmt.Fprintf(tw, "%s:\t%d\n", stage, t.ByStage[stage])
	}
	return tw.Flush()
}

// ExportDealsCommand writes every deal in the filtered view to a CSV file.
func ExportDealsCommand(g *grid.Grid, args []string, w io.Writer) error {
	v := newViewFlags("export")
	output := v.fs.String("output", "", "Output file, - for stdout (default deals-export-<date>.csv)")
	if err := v.fs.Parse(args); err != nil {
		return err
	}
	if err := v.apply(g); err != nil {
		return err
	}

	g.SelectAll()
	defer g.DeselectAll()

	if *output == "-" {
		_, err := g.ExportSelected(w)
		return err
	}

	path := *output
	if path == "" {
		path = export.Filename(time.Now())
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	n, err := g.ExportSelected(f)
	if err != nil {
		return fmt.Errorf("failed to export deals: %w", err)
	}
	_, _ = fmt.Fprintf(w, "✓ Exported %d deal(s) to %s\n", n, path)
	return nil
}

func truncate(s string, width int) string {
	r := []rune(s)
	if width <= 1 || len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}
