// ABOUTME: In-memory deal record store with create, edit, duplicate and delete
// ABOUTME: Every mutation validates the record and replaces it rather than editing in place
package store

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/dealgrid/models"
	"github.com/oklog/ulid/v2"
)

var (
	ErrNotFound     = errors.New("deal not found")
	ErrDuplicateID  = errors.New("duplicate deal id")
	ErrUnknownField = errors.New("unknown field")
)

// Defaults applied to a new deal when the caller leaves a field empty.
const (
	DefaultSource      = "Direct"
	DefaultProbability = 50
)

// DefaultOwner is assigned to deals created without an owner.
var DefaultOwner = models.Owner{Name: "Current User", Initials: "CU"}

// EditableFields lists the keys accepted by Edit.
var EditableFields = []string{
	"name", "company", "source", "description", "stage", "priority",
	"amount", "probability", "closeDate", "lastActivity", "owner", "tags",
}

// Store holds deals in insertion order. It is not safe for concurrent use.
type Store struct {
	deals []models.Deal
	index map[string]int
	now   func() time.Time
}

// New builds a store from the given deals, validating each one.
func New(deals []models.Deal) (*Store, error) {
	s := &Store{
		index: make(map[string]int, len(deals)),
		now:   time.Now,
	}
	for _, d := range deals {
		if err := s.insert(d.Clone()); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// NewSample returns a store loaded with the built-in sample pipeline.
func NewSample() *Store {
	s, err := New(SampleDeals())
	if err != nil {
		panic(fmt.Sprintf("sample deals are invalid: %v", err))
	}
	return s
}

// SetClock overrides the time source used for default close dates.
func (s *Store) SetClock(now func() time.Time) {
	s.now = now
}

func (s *Store) Len() int {
	return len(s.deals)
}

// All returns copies of every deal in insertion order.
func (s *Store) All() []models.Deal {
	out := make([]models.Deal, len(s.deals))
	for i, d := range s.deals {
		out[i] = d.Clone()
	}
	return out
}

func (s *Store) Get(id string) (models.Deal, error) {
	i, ok := s.index[id]
	if !ok {
		return models.Deal{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s.deals[i].Clone(), nil
}

// NewDeal returns a blank deal carrying a fresh id and the creation defaults.
func (s *Store) NewDeal() models.Deal {
	return models.Deal{
		ID:          uuid.New().String(),
		Stage:       models.StageNew,
		Priority:    models.PriorityMedium,
		Probability: DefaultProbability,
		Source:      DefaultSource,
		CloseDate:   s.now().Format(models.DateLayout),
		Owner:       DefaultOwner,
		Tags:        []string{},
	}
}

// Create adds a deal. Empty id, stage, priority, source, owner and close date are
// filled with the creation defaults before validation.
func (s *Store) Create(d models.Deal) (models.Deal, error) {
	d = d.Clone()
	defaults := s.NewDeal()
	if d.ID == "" {
		d.ID = defaults.ID
	}
	if d.Stage == "" {
		d.Stage = defaults.Stage
	}
	if d.Priority == "" {
		d.Priority = defaults.Priority
	}
	if d.Source == "" {
		d.Source = defaults.Source
	}
	if d.Owner.Name == "" {
		d.Owner = defaults.Owner
	}
	if d.CloseDate == "" {
		d.CloseDate = defaults.CloseDate
	}
	if d.Tags == nil {
		d.Tags = []string{}
	}

	if err := s.insert(d); err != nil {
		return models.Deal{}, err
	}
	return d.Clone(), nil
}

// Replace swaps the stored record with the same id for d.
func (s *Store) Replace(d models.Deal) error {
	i, ok := s.index[d.ID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, d.ID)
	}
	if err := d.Validate(); err != nil {
		return fmt.Errorf("invalid deal %s: %w", d.ID, err)
	}
	s.deals[i] = d.Clone()
	return nil
}

// Edit parses value for a single field and replaces the record.
func (s *Store) Edit(id, field, value string) (models.Deal, error) {
	d, err := s.Get(id)
	if err != nil {
		return models.Deal{}, err
	}

	if err := applyField(&d, field, value); err != nil {
		return models.Deal{}, err
	}
	if err := s.Replace(d); err != nil {
		return models.Deal{}, err
	}
	return d, nil
}

// Duplicate copies a deal under a new id derived from the original.
func (s *Store) Duplicate(id string) (models.Deal, error) {
	orig, err := s.Get(id)
	if err != nil {
		return models.Deal{}, err
	}

	dup := orig.Clone()
	dup.ID = orig.ID + "-" + strings.ToLower(ulid.Make().String())
	dup.Name = orig.Name + " (Copy)"

	if err := s.insert(dup); err != nil {
		return models.Deal{}, err
	}
	return dup.Clone(), nil
}

// Delete removes the given ids and returns those that were present.
func (s *Store) Delete(ids ...string) []string {
	drop := make(map[string]bool, len(ids))
	var removed []string
	for _, id := range ids {
		if _, ok := s.index[id]; ok && !drop[id] {
			drop[id] = true
			removed = append(removed, id)
		}
	}
	if len(removed) == 0 {
		return nil
	}

	kept := s.deals[:0]
	for _, d := range s.deals {
		if !drop[d.ID] {
			kept = append(kept, d)
		}
	}
	s.deals = kept
	s.reindex()
	return removed
}

func (s *Store) insert(d models.Deal) error {
	if err := d.Validate(); err != nil {
		return fmt.Errorf("invalid deal %s: %w", d.ID, err)
	}
	if _, exists := s.index[d.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateID, d.ID)
	}
	s.index[d.ID] = len(s.deals)
	s.deals = append(s.deals, d)
	return nil
}

func (s *Store) reindex() {
	s.index = make(map[string]int, len(s.deals))
	for i, d := range s.deals {
		s.index[d.ID] = i
	}
}

func applyField(d *models.Deal, field, value string) error {
	switch field {
	case "name":
		d.Name = value
	case "company":
		d.Company = value
	case "source":
		d.Source = value
	case "description":
		d.Description = value
	case "stage":
		stage, err := models.ParseStage(value)
		if err != nil {
			return err
		}
		d.Stage = stage
	case "priority":
		priority, err := models.ParsePriority(value)
		if err != nil {
			return err
		}
		d.Priority = priority
	case "amount":
		amount, err := models.ParseMoney(value)
		if err != nil {
			return err
		}
		d.Amount = amount
	case "probability":
		p, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(value), "%"))
		if err != nil {
			return fmt.Errorf("%w: %q", models.ErrInvalidProbability, value)
		}
		d.Probability = p
	case "closeDate", "close_date":
		if _, err := models.ParseDate(value); err != nil {
			return err
		}
		d.CloseDate = value
	case "lastActivity", "last_activity":
		if _, err := models.ParseDate(value); err != nil {
			return err
		}
		d.LastActivity = value
	case "owner":
		d.Owner = models.NewOwner(value)
	case "tags":
		d.Tags = splitTags(value)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

func splitTags(value string) []string {
	tags := []string{}
	for _, t := range strings.Split(value, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
