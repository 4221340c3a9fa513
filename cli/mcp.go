// ABOUTME: MCP server subcommand
// ABOUTME: Starts the MCP server exposing the deal grid as tools over stdio
package cli

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/harperreed/dealgrid/grid"
	"github.com/harperreed/dealgrid/handlers"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewMCPServer registers every deal tool against g.
func NewMCPServer(g *grid.Grid, version string) *mcp.Server {
	dealHandlers := handlers.NewDealHandlers(g)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "dealgrid",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_deals",
		Description: "List deals in the pipeline with optional filters, header filters and multi-column sort. Returns rows and totals for the filtered view",
	}, dealHandlers.ListDeals)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "deal_totals",
		Description: "Summarize the filtered pipeline: deal count, total and weighted value, average probability, won/lost counts and counts per stage and priority",
	}, dealHandlers.DealTotals)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_deal",
		Description: "Create a new deal. Unset fields get defaults: stage New, priority Medium, probability 50, source Direct, close date today",
	}, dealHandlers.CreateDeal)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_deal",
		Description: "Change a single field of an existing deal",
	}, dealHandlers.UpdateDeal)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_deals",
		Description: "Delete deals by ID",
	}, dealHandlers.DeleteDeals)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "duplicate_deal",
		Description: "Copy a deal under a new ID with (Copy) appended to its name",
	}, dealHandlers.DuplicateDeal)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "bulk_update_deals",
		Description: "Set the stage and/or priority of several deals at once",
	}, dealHandlers.BulkUpdateDeals)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "export_deals",
		Description: "Export deals as CSV in the current view order. With no IDs the whole filtered view is exported",
	}, dealHandlers.ExportDeals)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_graph",
		Description: "Render the filtered pipeline as a graphviz graph (pipeline) or an ASCII dashboard (dashboard)",
	}, dealHandlers.GenerateGraph)

	server.AddResource(&mcp.Resource{
		URI:         handlers.ResourceScheme + "view",
		Name:        "view",
		Description: "Deals in the current filtered, sorted view with totals",
		MIMEType:    "application/json",
	}, dealHandlers.ReadResource)

	server.AddResource(&mcp.Resource{
		URI:         handlers.ResourceScheme + "pipeline",
		Name:        "pipeline",
		Description: "ASCII pipeline dashboard for the current view",
		MIMEType:    "text/plain",
	}, dealHandlers.ReadResource)

	server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: handlers.ResourceScheme + "deals/{id}",
		Name:        "deal",
		Description: "A single deal with contact, activities and files",
		MIMEType:    "application/json",
	}, dealHandlers.ReadResource)

	server.AddPrompt(&mcp.Prompt{
		Name:        "deal-analysis",
		Description: "Analyze pipeline health for the current view",
	}, dealHandlers.GetPrompt)

	server.AddPrompt(&mcp.Prompt{
		Name:        "deal-review",
		Description: "Review a single deal and suggest next steps",
		Arguments: []*mcp.PromptArgument{
			{Name: "deal_id", Description: "Deal ID", Required: true},
		},
	}, dealHandlers.GetPrompt)

	return server
}

// MCPCommand starts the MCP server on stdio
func MCPCommand(ctx context.Context, g *grid.Grid, version string) error {
	log.Info("starting dealgrid MCP server", "version", version)

	server := NewMCPServer(g, version)
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		return err
	}
	return nil
}
