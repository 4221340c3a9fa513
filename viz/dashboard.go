// ABOUTME: Terminal dashboard statistics and rendering
// ABOUTME: Provides an ASCII pipeline overview of the filtered deal grid
package viz

import (
	"fmt"
	"strings"

	"github.com/harperreed/dealgrid/models"
	"github.com/harperreed/dealgrid/pipeline"
)

type DashboardStats struct {
	PipelineByStage map[models.Stage]PipelineStageStats
	Totals          pipeline.Totals

	// Open deals closing before the given date
	Overdue []OverdueDeal
}

type PipelineStageStats struct {
	Stage  models.Stage
	Count  int
	Amount models.Money
}

type OverdueDeal struct {
	Name      string
	CloseDate string
}

// GenerateDashboardStats groups deals by stage and lists open deals whose close
// date is before asOf (YYYY-MM-DD).
func GenerateDashboardStats(totals pipeline.Totals, deals []models.Deal, asOf string) *DashboardStats {
	stats := &DashboardStats{
		PipelineByStage: make(map[models.Stage]PipelineStageStats),
		Totals:          totals,
	}

	for _, deal := range deals {
		pstats := stats.PipelineByStage[deal.Stage]
		pstats.Stage = deal.Stage
		pstats.Count++
		pstats.Amount += deal.Amount
		stats.PipelineByStage[deal.Stage] = pstats

		if deal.Stage == models.StageWon || deal.Stage == models.StageLost {
			continue
		}
		if deal.CloseDate != "" && deal.CloseDate < asOf {
			stats.Overdue = append(stats.Overdue, OverdueDeal{Name: deal.Name, CloseDate: deal.CloseDate})
		}
	}

	return stats
}

// Dashboard renders the stage bars and totals for the given view.
func Dashboard(totals pipeline.Totals, deals []models.Deal, asOf string) string {
	return RenderDashboard(GenerateDashboardStats(totals, deals, asOf))
}

func RenderDashboard(stats *DashboardStats) string {
	var out strings.Builder

	out.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
	out.WriteString("  DEALS PIPELINE DASHBOARD\n")
	out.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n")

	out.WriteString("PIPELINE OVERVIEW\n")
	renderPipeline(&out, stats.PipelineByStage)
	out.WriteString("\n")

	t := stats.Totals
	out.WriteString("STATS\n")
	out.WriteString(fmt.Sprintf("  💼 %d deals  💰 %s total  ⚖️  %s weighted\n",
		t.TotalDeals, t.TotalValue, t.WeightedValue))
	out.WriteString(fmt.Sprintf("  🎯 %.0f%% avg probability  🏆 %d won  ❌ %d lost  (%.0f%% win rate)\n\n",
		t.AvgProbability, t.WonDeals, t.LostDeals, t.WinRate()))

	if len(stats.Overdue) > 0 {
		out.WriteString("NEEDS ATTENTION\n")
		out.WriteString(fmt.Sprintf("  ⚠️  %d open deals past their close date\n", len(stats.Overdue)))
		for _, d := range stats.Overdue {
			out.WriteString(fmt.Sprintf("     %s  %s\n", d.CloseDate, d.Name))
		}
	}

	return out.String()
}

func renderPipeline(out *strings.Builder, byStage map[models.Stage]PipelineStageStats) {
	maxCount := 0
	for _, pstats := range byStage {
		maxCount = max(maxCount, pstats.Count)
	}
	if maxCount == 0 {
		maxCount = 1
	}

	for _, stage := range models.Stages {
		pstats := byStage[stage]

		// 0-10 blocks
		barLength := (pstats.Count * 10) / maxCount
		bar := strings.Repeat("█", barLength) + strings.Repeat("░", 10-barLength)

		out.WriteString(fmt.Sprintf("  %-12s %s  %2d (%s)\n",
			stage, bar, pstats.Count, pstats.Amount))
	}
}
