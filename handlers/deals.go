// ABOUTME: Deal MCP tool handlers
// ABOUTME: Exposes the grid view, totals, record mutations and CSV export as tools
package handlers

import (
	"bytes"
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/harperreed/dealgrid/grid"
	"github.com/harperreed/dealgrid/models"
	"github.com/harperreed/dealgrid/pipeline"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// DealHandlers serializes tool calls onto a single grid.
type DealHandlers struct {
	mu   sync.Mutex
	grid *grid.Grid
}

func NewDealHandlers(g *grid.Grid) *DealHandlers {
	return &DealHandlers{grid: g}
}

type ListDealsInput struct {
	Query         string            `json:"query,omitempty" jsonschema:"Filter in query-string form, e.g. stage=Won,Lost&min=50000&q=cloud"`
	Search        string            `json:"search,omitempty" jsonschema:"Case-insensitive search over name, company, owner and tags"`
	Stages        []string          `json:"stages,omitempty" jsonschema:"Stages to include: New, Qualified, Proposal, Negotiation, Won, Lost"`
	Priorities    []string          `json:"priorities,omitempty" jsonschema:"Priorities to include: Low, Medium, High, Critical"`
	Owners        []string          `json:"owners,omitempty" jsonschema:"Owner names to include"`
	Sources       []string          `json:"sources,omitempty" jsonschema:"Lead sources to include"`
	MinAmount     *int64            `json:"min_amount,omitempty" jsonschema:"Minimum amount in whole dollars (default 0)"`
	MaxAmount     *int64            `json:"max_amount,omitempty" jsonschema:"Maximum amount in whole dollars (default 200000)"`
	Sort          string            `json:"sort,omitempty" jsonschema:"Sort keys, e.g. amount:desc,name"`
	HeaderFilters map[string]string `json:"header_filters,omitempty" jsonschema:"Per-column substring filters keyed by column (name, stage, owner, company, amount...)"`
}

type DealOutput struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Company     string   `json:"company"`
	Stage       string   `json:"stage"`
	Priority    string   `json:"priority"`
	Owner       string   `json:"owner"`
	Amount      string   `json:"amount"`
	AmountCents int64    `json:"amount_cents"`
	Probability int      `json:"probability"`
	CloseDate   string   `json:"close_date,omitempty"`
	Source      string   `json:"source"`
	Tags        []string `json:"tags,omitempty"`
}

type TotalsOutput struct {
	TotalDeals     int            `json:"total_deals"`
	TotalValue     string         `json:"total_value"`
	WeightedValue  string         `json:"weighted_value"`
	AvgProbability float64        `json:"avg_probability"`
	WonDeals       int            `json:"won_deals"`
	LostDeals      int            `json:"lost_deals"`
	ByStage        map[string]int `json:"by_stage"`
	ByPriority     map[string]int `json:"by_priority"`
}

type ListDealsOutput struct {
	Deals  []DealOutput `json:"deals"`
	Totals TotalsOutput `json:"totals"`
}

// ListDeals applies the requested filters and sort to the grid and returns its view.
func (h *DealHandlers) ListDeals(_ context.Context, _ *mcp.CallToolRequest, input ListDealsInput) (*mcp.CallToolResult, ListDealsOutput, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.applyView(input); err != nil {
		return nil, ListDealsOutput{}, err
	}

	out := ListDealsOutput{Deals: []DealOutput{}, Totals: totalsToOutput(h.grid.Totals())}
	for _, d := range h.grid.View() {
		out.Deals = append(out.Deals, dealToOutput(d))
	}
	return nil, out, nil
}

// DealTotals returns only the aggregates for the requested view.
func (h *DealHandlers) DealTotals(_ context.Context, _ *mcp.CallToolRequest, input ListDealsInput) (*mcp.CallToolResult, TotalsOutput, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.applyView(input); err != nil {
		return nil, TotalsOutput{}, err
	}
	return nil, totalsToOutput(h.grid.Totals()), nil
}

func (h *DealHandlers) applyView(input ListDealsInput) error {
	criteria, err := pipeline.ParseQuery(input.Query)
	if err != nil {
		return err
	}
	if input.Search != "" {
		criteria.Search = input.Search
	}
	for _, s := range input.Stages {
		stage, err := models.ParseStage(s)
		if err != nil {
			return err
		}
		criteria.Stages = append(criteria.Stages, stage)
	}
	for _, p := range input.Priorities {
		priority, err := models.ParsePriority(p)
		if err != nil {
			return err
		}
		criteria.Priorities = append(criteria.Priorities, priority)
	}
	criteria.Owners = append(criteria.Owners, input.Owners...)
	criteria.Sources = append(criteria.Sources, input.Sources...)
	if input.MinAmount != nil {
		criteria.Amount.Min = *input.MinAmount
	}
	if input.MaxAmount != nil {
		criteria.Amount.Max = *input.MaxAmount
	}

	keys, err := pipeline.ParseSortKeys(input.Sort)
	if err != nil {
		return err
	}

	for _, key := range h.grid.Registry().Keys() {
		if err := h.grid.SetHeaderFilter(key, input.HeaderFilters[key]); err != nil {
			return err
		}
	}
	h.grid.SetSortKeys(keys)
	h.grid.SetFilters(criteria)
	return nil
}

type CreateDealInput struct {
	Name        string   `json:"name" jsonschema:"Deal name (required)"`
	Company     string   `json:"company" jsonschema:"Company name (required)"`
	Amount      string   `json:"amount,omitempty" jsonschema:"Amount such as $45,000 or 45000"`
	Stage       string   `json:"stage,omitempty" jsonschema:"Stage (default New)"`
	Priority    string   `json:"priority,omitempty" jsonschema:"Priority (default Medium)"`
	Probability *int     `json:"probability,omitempty" jsonschema:"Win probability 0-100 (default 50)"`
	CloseDate   string   `json:"close_date,omitempty" jsonschema:"Expected close date YYYY-MM-DD (default today)"`
	Source      string   `json:"source,omitempty" jsonschema:"Lead source (default Direct)"`
	Owner       string   `json:"owner,omitempty" jsonschema:"Owner name (default Current User)"`
	Tags        []string `json:"tags,omitempty" jsonschema:"Tags"`
	Description string   `json:"description,omitempty" jsonschema:"Free-form description"`
}

func (h *DealHandlers) CreateDeal(_ context.Context, _ *mcp.CallToolRequest, input CreateDealInput) (*mcp.CallToolResult, DealOutput, error) {
	if input.Name == "" {
		return nil, DealOutput{}, fmt.Errorf("name is required")
	}
	if input.Company == "" {
		return nil, DealOutput{}, fmt.Errorf("company is required")
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	deal := h.grid.NewDeal()
	deal.Name = input.Name
	deal.Company = input.Company
	deal.Description = input.Description
	if input.Tags != nil {
		deal.Tags = input.Tags
	}
	if input.Source != "" {
		deal.Source = input.Source
	}
	if input.CloseDate != "" {
		deal.CloseDate = input.CloseDate
	}
	if input.Probability != nil {
		deal.Probability = *input.Probability
	}
	if input.Owner != "" {
		deal.Owner = models.NewOwner(input.Owner)
	}
	if input.Amount != "" {
		amount, err := models.ParseMoney(input.Amount)
		if err != nil {
			return nil, DealOutput{}, err
		}
		deal.Amount = amount
	}
	if input.Stage != "" {
		stage, err := models.ParseStage(input.Stage)
		if err != nil {
			return nil, DealOutput{}, err
		}
		deal.Stage = stage
	}
	if input.Priority != "" {
		priority, err := models.ParsePriority(input.Priority)
		if err != nil {
			return nil, DealOutput{}, err
		}
		deal.Priority = priority
	}

	created, err := h.grid.CreateDeal(deal)
	if err != nil {
		return nil, DealOutput{}, fmt.Errorf("failed to create deal: %w", err)
	}
	return nil, dealToOutput(created), nil
}

type UpdateDealInput struct {
	ID    string `json:"id" jsonschema:"Deal ID (required)"`
	Field string `json:"field" jsonschema:"Field to change: name, company, source, description, stage, priority, amount, probability, closeDate, lastActivity, owner, tags"`
	Value string `json:"value" jsonschema:"New value as text"`
}

func (h *DealHandlers) UpdateDeal(_ context.Context, _ *mcp.CallToolRequest, input UpdateDealInput) (*mcp.CallToolResult, DealOutput, error) {
	if input.ID == "" || input.Field == "" {
		return nil, DealOutput{}, fmt.Errorf("id and field are required")
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	d, err := h.grid.EditField(input.ID, input.Field, input.Value)
	if err != nil {
		return nil, DealOutput{}, fmt.Errorf("failed to update deal: %w", err)
	}
	return nil, dealToOutput(d), nil
}

type DealIDsInput struct {
	IDs []string `json:"ids" jsonschema:"Deal IDs"`
}

type DeleteDealsOutput struct {
	Deleted []string `json:"deleted"`
	Missing []string `json:"missing,omitempty"`
}

func (h *DealHandlers) DeleteDeals(_ context.Context, _ *mcp.CallToolRequest, input DealIDsInput) (*mcp.CallToolResult, DeleteDealsOutput, error) {
	if len(input.IDs) == 0 {
		return nil, DeleteDealsOutput{}, fmt.Errorf("ids is required")
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	out := DeleteDealsOutput{Deleted: h.grid.DeleteIDs(input.IDs...)}
	if out.Deleted == nil {
		out.Deleted = []string{}
	}
	for _, id := range input.IDs {
		if !slices.Contains(out.Deleted, id) && !slices.Contains(out.Missing, id) {
			out.Missing = append(out.Missing, id)
		}
	}
	return nil, out, nil
}

type DuplicateDealInput struct {
	ID string `json:"id" jsonschema:"Deal ID to copy (required)"`
}

func (h *DealHandlers) DuplicateDeal(_ context.Context, _ *mcp.CallToolRequest, input DuplicateDealInput) (*mcp.CallToolResult, DealOutput, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	dup, err := h.grid.DuplicateDeal(input.ID)
	if err != nil {
		return nil, DealOutput{}, fmt.Errorf("failed to duplicate deal: %w", err)
	}
	return nil, dealToOutput(dup), nil
}

type BulkUpdateInput struct {
	IDs      []string `json:"ids" jsonschema:"Deal IDs to change (required)"`
	Stage    string   `json:"stage,omitempty" jsonschema:"New stage for every deal"`
	Priority string   `json:"priority,omitempty" jsonschema:"New priority for every deal"`
}

type BulkUpdateOutput struct {
	Updated int `json:"updated"`
}

func (h *DealHandlers) BulkUpdateDeals(_ context.Context, _ *mcp.CallToolRequest, input BulkUpdateInput) (*mcp.CallToolResult, BulkUpdateOutput, error) {
	if len(input.IDs) == 0 {
		return nil, BulkUpdateOutput{}, fmt.Errorf("ids is required")
	}
	if input.Stage == "" && input.Priority == "" {
		return nil, BulkUpdateOutput{}, fmt.Errorf("stage or priority is required")
	}

	var (
		stage    models.Stage
		priority models.Priority
		err      error
	)
	if input.Stage != "" {
		if stage, err = models.ParseStage(input.Stage); err != nil {
			return nil, BulkUpdateOutput{}, err
		}
	}
	if input.Priority != "" {
		if priority, err = models.ParsePriority(input.Priority); err != nil {
			return nil, BulkUpdateOutput{}, err
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.grid.SelectIDs(input.IDs)
	defer h.grid.DeselectAll()

	out := BulkUpdateOutput{}
	if stage != "" {
		n, err := h.grid.BulkSetStage(stage)
		if err != nil {
			return nil, out, err
		}
		out.Updated = n
	}
	if priority != "" {
		n, err := h.grid.BulkSetPriority(priority)
		if err != nil {
			return nil, out, err
		}
		out.Updated = max(out.Updated, n)
	}
	return nil, out, nil
}

type ExportDealsOutput struct {
	Rows int    `json:"rows"`
	CSV  string `json:"csv"`
}

// ExportDeals renders the given deals, or the whole current view, as CSV.
func (h *DealHandlers) ExportDeals(_ context.Context, _ *mcp.CallToolRequest, input DealIDsInput) (*mcp.CallToolResult, ExportDealsOutput, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(input.IDs) == 0 {
		h.grid.SelectAll()
	} else {
		h.grid.SelectIDs(input.IDs)
	}
	defer h.grid.DeselectAll()

	var buf bytes.Buffer
	n, err := h.grid.ExportSelected(&buf)
	if err != nil {
		return nil, ExportDealsOutput{}, fmt.Errorf("failed to export deals: %w", err)
	}
	return nil, ExportDealsOutput{Rows: n, CSV: buf.String()}, nil
}

func dealToOutput(d models.Deal) DealOutput {
	return DealOutput{
		ID:          d.ID,
		Name:        d.Name,
		Company:     d.Company,
		Stage:       string(d.Stage),
		Priority:    string(d.Priority),
		Owner:       d.Owner.Name,
		Amount:      d.Amount.String(),
		AmountCents: int64(d.Amount),
		Probability: d.Probability,
		CloseDate:   d.CloseDate,
		Source:      d.Source,
		Tags:        d.Tags,
	}
}

func totalsToOutput(t pipeline.Totals) TotalsOutput {
	out := TotalsOutput{
		TotalDeals:     t.TotalDeals,
		TotalValue:     t.TotalValue.String(),
		WeightedValue:  t.WeightedValue.String(),
		AvgProbability: t.AvgProbability,
		WonDeals:       t.WonDeals,
		LostDeals:      t.LostDeals,
		ByStage:        map[string]int{},
		ByPriority:     map[string]int{},
	}
	for stage, n := range t.ByStage {
		out.ByStage[string(stage)] = n
	}
	for priority, n := range t.ByPriority {
		out.ByPriority[string(priority)] = n
	}
	return out
}
