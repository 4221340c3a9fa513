// ABOUTME: Graphviz rendering of the deal pipeline
// ABOUTME: One node per stage chained in pipeline order, with each deal hanging off its stage
package viz

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"
	"github.com/harperreed/dealgrid/models"
)

var stageColors = map[models.Stage]string{
	models.StageNew:         "lightgrey",
	models.StageQualified:   "lightblue",
	models.StageProposal:    "lightyellow",
	models.StageNegotiation: "orange",
	models.StageWon:         "lightgreen",
	models.StageLost:        "lightpink",
}

// PipelineGraph renders deals grouped under their stage as xdot source.
func PipelineGraph(ctx context.Context, deals []models.Deal) (string, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to create graphviz instance: %w", err)
	}
	defer func() { _ = gv.Close() }()

	graph, err := gv.Graph()
	if err != nil {
		return "", fmt.Errorf("failed to create graph: %w", err)
	}
	defer func() { _ = graph.Close() }()

	graph.SetRankDir(cgraph.LRRank)

	counts := make(map[models.Stage]int)
	totals := make(map[models.Stage]models.Money)
	for _, d := range deals {
		counts[d.Stage]++
		totals[d.Stage] += d.Amount
	}

	stageNodes := make(map[models.Stage]*cgraph.Node)
	var prev *cgraph.Node
	for _, stage := range models.Stages {
		node, err := graph.CreateNodeByName("stage_" + string(stage))
		if err != nil {
			return "", fmt.Errorf("failed to create stage node: %w", err)
		}
		node.SetLabel(fmt.Sprintf("%s\n%d deals\n%s", stage, counts[stage], totals[stage]))
		node.SetShape("box")
		node.SetStyle("filled")
		node.SetFillColor(stageColors[stage])
		stageNodes[stage] = node

		// Won and Lost both follow Negotiation.
		from := prev
		if stage == models.StageLost {
			from = stageNodes[models.StageNegotiation]
		}
		if from != nil {
			edge, err := graph.CreateEdgeByName("next_"+string(stage), from, node)
			if err != nil {
				return "", fmt.Errorf("failed to create stage edge: %w", err)
			}
			edge.SetStyle("bold")
		}
		if stage != models.StageWon {
			prev = node
		}
	}

	for _, d := range deals {
		stageNode, ok := stageNodes[d.Stage]
		if !ok {
			continue
		}
		node, err := graph.CreateNodeByName("deal_" + d.ID)
		if err != nil {
			return "", fmt.Errorf("failed to create deal node: %w", err)
		}
		node.SetLabel(fmt.Sprintf("%s\n%s (%d%%)\n%s", d.Name, d.Amount, d.Probability, d.Owner.Name))
		node.SetShape("ellipse")

		edge, err := graph.CreateEdgeByName("in_"+d.ID, stageNode, node)
		if err != nil {
			return "", fmt.Errorf("failed to create deal edge: %w", err)
		}
		edge.SetStyle("dashed")
	}

	var buf bytes.Buffer
	if err := gv.Render(ctx, graph, graphviz.XDOT, &buf); err != nil {
		return "", fmt.Errorf("failed to render graph: %w", err)
	}

	return buf.String(), nil
}
