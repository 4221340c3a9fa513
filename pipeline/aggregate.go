// ABOUTME: Aggregate stage of the view pipeline
// ABOUTME: Computes pipeline totals, weighted value and per-category counts
package pipeline

import (
	"github.com/harperreed/dealgrid/models"
	"github.com/shopspring/decimal"
)

type Totals struct {
	TotalDeals     int                     `json:"total_deals"`
	TotalValue     models.Money            `json:"total_value"`
	WeightedValue  models.Money            `json:"weighted_value"`
	AvgProbability float64                 `json:"avg_probability"`
	WonDeals       int                     `json:"won_deals"`
	LostDeals      int                     `json:"lost_deals"`
	ByStage        map[models.Stage]int    `json:"by_stage"`
	ByPriority     map[models.Priority]int `json:"by_priority"`
}

var hundred = decimal.NewFromInt(100)

// Aggregate summarizes deals. The result does not depend on their order.
func Aggregate(deals []models.Deal) Totals {
	t := Totals{
		ByStage:    map[models.Stage]int{},
		ByPriority: map[models.Priority]int{},
	}

	weighted := decimal.Zero
	probSum := 0
	for _, d := range deals {
		t.TotalDeals++
		t.TotalValue += d.Amount
		weighted = weighted.Add(d.Amount.Decimal().Mul(decimal.NewFromInt(int64(d.Probability))).Div(hundred))
		probSum += d.Probability
		t.ByStage[d.Stage]++
		t.ByPriority[d.Priority]++
		switch d.Stage {
		case models.StageWon:
			t.WonDeals++
		case models.StageLost:
			t.LostDeals++
		}
	}

	t.WeightedValue = models.Money(weighted.Shift(2).Round(0).IntPart())
	if t.TotalDeals > 0 {
		t.AvgProbability = float64(probSum) / float64(t.TotalDeals)
	}
	return t
}

// WinRate is won deals over closed deals, or 0 when nothing has closed.
func (t Totals) WinRate() float64 {
	closed := t.WonDeals + t.LostDeals
	if closed == 0 {
		return 0
	}
	return float64(t.WonDeals) / float64(closed) * 100
}
