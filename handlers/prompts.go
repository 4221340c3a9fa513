// ABOUTME: MCP prompt handlers
// ABOUTME: Builds pipeline analysis and follow-up prompts from the current deal view
package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/harperreed/dealgrid/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// GetPrompt generates the prompt message based on the template
func (h *DealHandlers) GetPrompt(_ context.Context, request *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	switch request.Params.Name {
	case "deal-analysis":
		return h.getDealAnalysisPrompt()
	case "deal-review":
		return h.getDealReviewPrompt(request.Params.Arguments)
	default:
		return nil, fmt.Errorf("unknown prompt: %s", request.Params.Name)
	}
}

func (h *DealHandlers) getDealAnalysisPrompt() (*mcp.GetPromptResult, error) {
	t := h.grid.Totals()

	var promptText strings.Builder
	promptText.WriteString("Please analyze the current deal pipeline:\n\n")
	promptText.WriteString(fmt.Sprintf("Total Deals: %d\n", t.TotalDeals))
	promptText.WriteString(fmt.Sprintf("Total Value: %s\n", t.TotalValue))
	promptText.WriteString(fmt.Sprintf("Weighted Value: %s\n", t.WeightedValue))
	promptText.WriteString(fmt.Sprintf("Average Probability: %.0f%%\n", t.AvgProbability))
	promptText.WriteString(fmt.Sprintf("Won / Lost: %d / %d\n\n", t.WonDeals, t.LostDeals))
	promptText.WriteString("Pipeline by Stage:\n")
	for _, stage := range models.Stages {
		var value models.Money
		for _, d := range h.grid.View() {
			if d.Stage == stage {
				value += d.Amount
			}
		}
		promptText.WriteString(fmt.Sprintf("  - %s: %d deals, %s\n", stage, t.ByStage[stage], value))
	}

	promptText.WriteString("\nPlease provide:")
	promptText.WriteString("\n1. Analysis of pipeline health and distribution")
	promptText.WriteString("\n2. Recommendations for deals that may need attention")
	promptText.WriteString("\n3. Suggestions for improving conversion rates")

	return userPrompt("Deal pipeline analysis", promptText.String()), nil
}

func (h *DealHandlers) getDealReviewPrompt(args map[string]string) (*mcp.GetPromptResult, error) {
	id, ok := args["deal_id"]
	if !ok {
		return nil, fmt.Errorf("deal_id is required")
	}

	deal, err := h.grid.Get(id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch deal: %w", err)
	}

	var promptText strings.Builder
	promptText.WriteString(fmt.Sprintf("Review this deal and suggest next steps: %s\n\n", deal.Name))
	promptText.WriteString(fmt.Sprintf("Company: %s\n", deal.Company))
	promptText.WriteString(fmt.Sprintf("Stage: %s (%d%% probability)\n", deal.Stage, deal.Probability))
	promptText.WriteString(fmt.Sprintf("Priority: %s\n", deal.Priority))
	promptText.WriteString(fmt.Sprintf("Amount: %s\n", deal.Amount))
	promptText.WriteString(fmt.Sprintf("Owner: %s\n", deal.Owner.Name))
	if deal.CloseDate != "" {
		promptText.WriteString(fmt.Sprintf("Expected Close: %s\n", deal.CloseDate))
	}
	if deal.Contact != nil {
		promptText.WriteString(fmt.Sprintf("Contact: %s\n", deal.Contact.Name))
	}
	if deal.Description != "" {
		promptText.WriteString(fmt.Sprintf("\nDescription: %s\n", deal.Description))
	}

	if len(deal.Activities) > 0 {
		promptText.WriteString("\nRecent Activity:\n")
		for _, a := range deal.Activities {
			promptText.WriteString(fmt.Sprintf("  - %s %s: %s\n", a.Date, a.Type, a.Description))
		}
	}

	promptText.WriteString("\nPlease provide:")
	promptText.WriteString("\n1. Risks to closing this deal on time")
	promptText.WriteString("\n2. A concrete follow-up plan for the owner")

	return userPrompt("Deal review", promptText.String()), nil
}

func userPrompt(description, text string) *mcp.GetPromptResult {
	return &mcp.GetPromptResult{
		Description: description,
		Messages: []*mcp.PromptMessage{
			{
				Role:    "user",
				Content: &mcp.TextContent{Text: text},
			},
		},
	}
}
