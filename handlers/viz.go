// ABOUTME: GraphViz visualization MCP handlers
// ABOUTME: Provides the generate_graph tool over the current deal view
package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/harperreed/dealgrid/models"
	"github.com/harperreed/dealgrid/viz"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type GenerateGraphInput struct {
	Type string `json:"type" jsonschema:"Graph type: pipeline (xdot) or dashboard (ASCII)"`
}

type GenerateGraphOutput struct {
	GraphType string `json:"graph_type"`
	Source    string `json:"source"`
	NodeCount int    `json:"node_count,omitempty"`
	EdgeCount int    `json:"edge_count,omitempty"`
}

func (h *DealHandlers) GenerateGraph(ctx context.Context, _ *mcp.CallToolRequest, input GenerateGraphInput) (*mcp.CallToolResult, GenerateGraphOutput, error) {
	if input.Type == "" {
		return nil, GenerateGraphOutput{}, fmt.Errorf("type is required")
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	switch input.Type {
	case "pipeline":
		dot, err := viz.PipelineGraph(ctx, h.grid.View())
		if err != nil {
			return nil, GenerateGraphOutput{}, fmt.Errorf("failed to generate graph: %w", err)
		}
		// One stage node per stage plus one per deal, and one edge into every node but the first.
		nodes := len(models.Stages) + len(h.grid.View())
		return nil, GenerateGraphOutput{
			GraphType: input.Type,
			Source:    dot,
			NodeCount: nodes,
			EdgeCount: nodes - 1,
		}, nil

	case "dashboard":
		text := viz.Dashboard(h.grid.Totals(), h.grid.View(), time.Now().Format(models.DateLayout))
		return nil, GenerateGraphOutput{GraphType: input.Type, Source: text}, nil

	default:
		return nil, GenerateGraphOutput{}, fmt.Errorf("invalid graph type: %s (must be pipeline or dashboard)", input.Type)
	}
}
