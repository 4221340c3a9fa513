// ABOUTME: MCP resource handlers for exposing deal data
// ABOUTME: Provides read-only access to the current view, single deals and the dashboard via URI
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/dealgrid/models"
	"github.com/harperreed/dealgrid/viz"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ResourceScheme prefixes every resource URI.
const ResourceScheme = "deals://"

// ReadResource handles resource read requests
func (h *DealHandlers) ReadResource(_ context.Context, request *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	uri := request.Params.URI
	if !strings.HasPrefix(uri, ResourceScheme) {
		return nil, fmt.Errorf("invalid URI scheme: expected %s", ResourceScheme)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	parts := strings.Split(strings.TrimPrefix(uri, ResourceScheme), "/")
	switch parts[0] {
	case "view":
		return h.readView(uri)
	case "deals":
		if len(parts) < 2 || parts[1] == "" {
			return nil, fmt.Errorf("deal id required: %sdeals/{id}", ResourceScheme)
		}
		return h.readDeal(uri, parts[1])
	case "pipeline":
		return h.readPipeline(uri)
	default:
		return nil, fmt.Errorf("unknown resource: %s", parts[0])
	}
}

func (h *DealHandlers) readView(uri string) (*mcp.ReadResourceResult, error) {
	out := ListDealsOutput{Deals: []DealOutput{}, Totals: totalsToOutput(h.grid.Totals())}
	for _, d := range h.grid.View() {
		out.Deals = append(out.Deals, dealToOutput(d))
	}
	return jsonResource(uri, out)
}

func (h *DealHandlers) readDeal(uri, id string) (*mcp.ReadResourceResult, error) {
	deal, err := h.grid.Get(id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch deal: %w", err)
	}
	return jsonResource(uri, deal)
}

func (h *DealHandlers) readPipeline(uri string) (*mcp.ReadResourceResult, error) {
	text := viz.Dashboard(h.grid.Totals(), h.grid.View(), time.Now().Format(models.DateLayout))
	return &mcp.ReadResourceResult{Contents: []*mcp.ResourceContents{
		{
			URI:      uri,
			MIMEType: "text/plain",
			Text:     text,
		},
	}}, nil
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resource: %w", err)
	}
	return &mcp.ReadResourceResult{Contents: []*mcp.ResourceContents{
		{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}}, nil
}
