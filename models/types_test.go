// ABOUTME: Tests for deal data models
// ABOUTME: Validates enum parsing, deal invariants, cloning and money handling
package models

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDeal() Deal {
	return Deal{
		ID:          "1",
		Name:        "Enterprise Software License",
		Company:     "TechCorp Inc.",
		Stage:       StageNegotiation,
		Priority:    PriorityHigh,
		Owner:       Owner{Name: "Sarah Johnson", Initials: "SJ"},
		Amount:      Dollars(125000),
		Probability: 85,
		CloseDate:   "2024-02-15",
		Tags:        []string{"Enterprise"},
		Contact:     &Contact{Name: "John Smith"},
	}
}

func TestParseStage(t *testing.T) {
	stage, err := ParseStage("negotiation")
	require.NoError(t, err)
	assert.Equal(t, StageNegotiation, stage)

	_, err = ParseStage("closed_won")
	assert.True(t, errors.Is(err, ErrInvalidStage))
}

func TestParsePriority(t *testing.T) {
	priority, err := ParsePriority("CRITICAL")
	require.NoError(t, err)
	assert.Equal(t, PriorityCritical, priority)

	_, err = ParsePriority("urgent")
	assert.True(t, errors.Is(err, ErrInvalidPriority))
}

func TestDealValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(d *Deal)
		wantErr error
	}{
		{name: "valid", mutate: func(d *Deal) {}},
		{name: "missing id", mutate: func(d *Deal) { d.ID = "" }, wantErr: ErrMissingField},
		{name: "unknown stage", mutate: func(d *Deal) { d.Stage = "Closed" }, wantErr: ErrInvalidStage},
		{name: "unknown priority", mutate: func(d *Deal) { d.Priority = "Urgent" }, wantErr: ErrInvalidPriority},
		{name: "probability too high", mutate: func(d *Deal) { d.Probability = 101 }, wantErr: ErrInvalidProbability},
		{name: "probability negative", mutate: func(d *Deal) { d.Probability = -1 }, wantErr: ErrInvalidProbability},
		{name: "negative amount", mutate: func(d *Deal) { d.Amount = -1 }, wantErr: ErrInvalidAmount},
		{name: "bad close date", mutate: func(d *Deal) { d.CloseDate = "next week" }, wantErr: ErrInvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDeal()
			tt.mutate(&d)
			err := d.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDealCloneIsDeep(t *testing.T) {
	original := validDeal()
	clone := original.Clone()

	clone.Tags[0] = "Changed"
	clone.Contact.Name = "Someone Else"

	assert.Equal(t, "Enterprise", original.Tags[0])
	assert.Equal(t, "John Smith", original.Contact.Name)
}

func TestParseMoney(t *testing.T) {
	tests := []struct {
		in   string
		want Money
	}{
		{"$125,000", Dollars(125000)},
		{"125000", Dollars(125000)},
		{" $1,234.56 ", Money(123456)},
		{"$0", 0},
		{"99.999", Money(10000)},
	}

	for _, tt := range tests {
		got, err := ParseMoney(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParseMoneyRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "$", "TBD", "$12k", "-$5", "$200,000,000,000,000,000", "1e30", "92233720368547758.08"} {
		_, err := ParseMoney(in)
		assert.ErrorIs(t, err, ErrInvalidAmount, in)
	}
}

func TestParseMoneyLargestAmount(t *testing.T) {
	got, err := ParseMoney("92233720368547758.07")
	require.NoError(t, err)
	assert.Equal(t, Money(math.MaxInt64), got)
}

func TestNewOwnerInitials(t *testing.T) {
	assert.Equal(t, "SJ", NewOwner("Sarah Johnson").Initials)
	assert.Equal(t, "ÉD", NewOwner("émile durand").Initials)
	assert.Equal(t, "", NewOwner("  ").Initials)
}

func TestMoneyString(t *testing.T) {
	assert.Equal(t, "$125,000", Dollars(125000).String())
	assert.Equal(t, "$1,234.50", Money(123450).String())
	assert.Equal(t, "$0", Money(0).String())
	assert.Equal(t, "$999", Dollars(999).String())
}

func TestMoneyJSON(t *testing.T) {
	data, err := json.Marshal(Dollars(45000))
	require.NoError(t, err)
	assert.Equal(t, `"$45,000"`, string(data))

	var fromString Money
	require.NoError(t, json.Unmarshal([]byte(`"$45,000"`), &fromString))
	assert.Equal(t, Dollars(45000), fromString)

	var fromNumber Money
	require.NoError(t, json.Unmarshal([]byte(`89000`), &fromNumber))
	assert.Equal(t, Dollars(89000), fromNumber)

	var bad Money
	assert.Error(t, json.Unmarshal([]byte(`"lots"`), &bad))
}
