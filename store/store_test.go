// ABOUTME: Tests for the in-memory deal store
// ABOUTME: Covers creation defaults, field edits, duplication and deletion
package store

import (
	"strings"
	"testing"
	"time"

	"github.com/harperreed/dealgrid/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time {
	return time.Date(2024, 1, 20, 9, 0, 0, 0, time.UTC)
}

func TestNewSample(t *testing.T) {
	s := NewSample()
	assert.Equal(t, 6, s.Len())

	d, err := s.Get("5")
	require.NoError(t, err)
	assert.Equal(t, models.StageWon, d.Stage)
	assert.Equal(t, models.Dollars(156000), d.Amount)
}

func TestNewRejectsDuplicateIDs(t *testing.T) {
	deals := SampleDeals()
	deals[1].ID = deals[0].ID

	_, err := New(deals)
	assert.ErrorIs(t, err, ErrDuplicateID)
}

func TestCreateAppliesDefaults(t *testing.T) {
	s := NewSample()
	s.SetClock(fixedClock)

	d, err := s.Create(models.Deal{Name: "Fresh lead", Probability: DefaultProbability})
	require.NoError(t, err)

	assert.NotEmpty(t, d.ID)
	assert.Equal(t, models.StageNew, d.Stage)
	assert.Equal(t, models.PriorityMedium, d.Priority)
	assert.Equal(t, 50, d.Probability)
	assert.Equal(t, "Direct", d.Source)
	assert.Equal(t, "2024-01-20", d.CloseDate)
	assert.Equal(t, DefaultOwner, d.Owner)
	assert.Empty(t, d.Tags)
	assert.Equal(t, 7, s.Len())
}

func TestNewDealTemplate(t *testing.T) {
	s := NewSample()
	s.SetClock(fixedClock)

	a := s.NewDeal()
	b := s.NewDeal()
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, DefaultProbability, a.Probability)
	assert.Equal(t, "2024-01-20", a.CloseDate)
}

func TestCreateRejectsInvalid(t *testing.T) {
	s := NewSample()

	_, err := s.Create(models.Deal{Name: "Bad", Probability: 150})
	assert.ErrorIs(t, err, models.ErrInvalidProbability)

	_, err = s.Create(models.Deal{ID: "1", Name: "Clash"})
	assert.ErrorIs(t, err, ErrDuplicateID)

	assert.Equal(t, 6, s.Len())
}

func TestEditFields(t *testing.T) {
	s := NewSample()

	d, err := s.Edit("2", "amount", "$50,500")
	require.NoError(t, err)
	assert.Equal(t, models.Dollars(50500), d.Amount)

	d, err = s.Edit("2", "stage", "proposal")
	require.NoError(t, err)
	assert.Equal(t, models.StageProposal, d.Stage)

	d, err = s.Edit("2", "probability", "75%")
	require.NoError(t, err)
	assert.Equal(t, 75, d.Probability)

	d, err = s.Edit("2", "owner", "ada lovelace")
	require.NoError(t, err)
	assert.Equal(t, models.Owner{Name: "ada lovelace", Initials: "AL"}, d.Owner)

	d, err = s.Edit("2", "tags", "SaaS, , Renewal ")
	require.NoError(t, err)
	assert.Equal(t, []string{"SaaS", "Renewal"}, d.Tags)

	stored, err := s.Get("2")
	require.NoError(t, err)
	assert.Equal(t, d, stored)
}

func TestEditRejectsBadValues(t *testing.T) {
	s := NewSample()
	before, err := s.Get("3")
	require.NoError(t, err)

	tests := []struct {
		field, value string
		want         error
	}{
		{"amount", "TBD", models.ErrInvalidAmount},
		{"stage", "Closed", models.ErrInvalidStage},
		{"priority", "Urgent", models.ErrInvalidPriority},
		{"probability", "120", models.ErrInvalidProbability},
		{"probability", "lots", models.ErrInvalidProbability},
		{"closeDate", "soon", models.ErrInvalidDate},
		{"color", "red", ErrUnknownField},
	}
	for _, tt := range tests {
		_, err := s.Edit("3", tt.field, tt.value)
		assert.ErrorIs(t, err, tt.want, "%s=%s", tt.field, tt.value)
	}

	after, err := s.Get("3")
	require.NoError(t, err)
	assert.Equal(t, before, after)

	_, err = s.Edit("missing", "name", "x")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetReturnsCopy(t *testing.T) {
	s := NewSample()
	d, err := s.Get("1")
	require.NoError(t, err)

	d.Tags[0] = "Mutated"
	d.Contact.Name = "Mutated"

	again, err := s.Get("1")
	require.NoError(t, err)
	assert.Equal(t, "Enterprise", again.Tags[0])
	assert.Equal(t, "John Smith", again.Contact.Name)
}

func TestDuplicate(t *testing.T) {
	s := NewSample()

	dup, err := s.Duplicate("1")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(dup.ID, "1-"))
	assert.Equal(t, strings.ToLower(dup.ID), dup.ID)
	assert.Equal(t, "Enterprise Software License - Q1 2024 (Copy)", dup.Name)
	assert.Equal(t, models.Dollars(125000), dup.Amount)
	assert.Equal(t, 7, s.Len())

	second, err := s.Duplicate("1")
	require.NoError(t, err)
	assert.NotEqual(t, dup.ID, second.ID)

	_, err = s.Duplicate("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete(t *testing.T) {
	s := NewSample()

	removed := s.Delete("2", "missing", "4", "2")
	assert.Equal(t, []string{"2", "4"}, removed)
	assert.Equal(t, 4, s.Len())

	var ids []string
	for _, d := range s.All() {
		ids = append(ids, d.ID)
	}
	assert.Equal(t, []string{"1", "3", "5", "6"}, ids)

	_, err := s.Get("4")
	assert.ErrorIs(t, err, ErrNotFound)

	d, err := s.Get("5")
	require.NoError(t, err)
	assert.Equal(t, "5", d.ID)

	assert.Nil(t, s.Delete("missing"))
}
