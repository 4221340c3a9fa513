// ABOUTME: Visualization CLI commands
// ABOUTME: Handles viz dashboard and graph generation commands
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/harperreed/dealgrid/grid"
	"github.com/harperreed/dealgrid/models"
	"github.com/harperreed/dealgrid/viz"
)

// VizDashboardCommand prints the ASCII pipeline dashboard for the filtered view.
func VizDashboardCommand(g *grid.Grid, args []string, w io.Writer) error {
	v := newViewFlags("viz dashboard")
	asOf := v.fs.String("as-of", time.Now().Format(models.DateLayout), "Date used to flag overdue deals")
	if err := v.fs.Parse(args); err != nil {
		return err
	}
	if err := v.apply(g); err != nil {
		return err
	}

	_, _ = fmt.Fprint(w, viz.Dashboard(g.Totals(), g.View(), *asOf))
	return nil
}

// VizGraphCommand generates a deal pipeline graph.
func VizGraphCommand(ctx context.Context, g *grid.Grid, args []string, w io.Writer) error {
	v := newViewFlags("viz graph")
	output := v.fs.String("output", "", "Output file (default: stdout)")
	if err := v.fs.Parse(args); err != nil {
		return err
	}
	if err := v.apply(g); err != nil {
		return err
	}

	dot, err := viz.PipelineGraph(ctx, g.View())
	if err != nil {
		return err
	}

	if *output != "" {
		return os.WriteFile(*output, []byte(dot), 0644)
	}

	_, _ = fmt.Fprintln(w, dot)
	return nil
}
