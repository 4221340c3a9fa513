// ABOUTME: Data models for the deals pipeline grid
// ABOUTME: Defines Deal, its nested owner/contact/activity/file types, and stage/priority enums
package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

var (
	ErrInvalidStage       = errors.New("invalid stage")
	ErrInvalidPriority    = errors.New("invalid priority")
	ErrInvalidProbability = errors.New("probability must be between 0 and 100")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidDate        = errors.New("invalid date")
	ErrMissingField       = errors.New("missing required field")
)

// DateLayout is the ISO calendar date format used for close and activity dates.
const DateLayout = "2006-01-02"

type Stage string

const (
	StageNew         Stage = "New"
	StageQualified   Stage = "Qualified"
	StageProposal    Stage = "Proposal"
	StageNegotiation Stage = "Negotiation"
	StageWon         Stage = "Won"
	StageLost        Stage = "Lost"
)

// Stages lists every stage in pipeline order.
var Stages = []Stage{StageNew, StageQualified, StageProposal, StageNegotiation, StageWon, StageLost}

func (s Stage) Valid() bool {
	for _, v := range Stages {
		if s == v {
			return true
		}
	}
	return false
}

// ParseStage accepts a stage name in any letter case.
func ParseStage(s string) (Stage, error) {
	for _, v := range Stages {
		if strings.EqualFold(string(v), s) {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: %q (valid: New, Qualified, Proposal, Negotiation, Won, Lost)", ErrInvalidStage, s)
}

type Priority string

const (
	PriorityLow      Priority = "Low"
	PriorityMedium   Priority = "Medium"
	PriorityHigh     Priority = "High"
	PriorityCritical Priority = "Critical"
)

// Priorities lists every priority from lowest to highest.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}

func (p Priority) Valid() bool {
	for _, v := range Priorities {
		if p == v {
			return true
		}
	}
	return false
}

// ParsePriority accepts a priority name in any letter case.
func ParsePriority(s string) (Priority, error) {
	for _, v := range Priorities {
		if strings.EqualFold(string(v), s) {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: %q (valid: Low, Medium, High, Critical)", ErrInvalidPriority, s)
}

type Owner struct {
	Name     string `json:"name"`
	Initials string `json:"initials"`
}

// NewOwner builds an owner from a display name, deriving initials from each word.
func NewOwner(name string) Owner {
	var b strings.Builder
	for _, part := range strings.Fields(name) {
		r, _ := utf8.DecodeRuneInString(part)
		b.WriteRune(unicode.ToUpper(r))
	}
	return Owner{Name: name, Initials: b.String()}
}

type Contact struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

type Activity struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Date        string `json:"date"`
}

type File struct {
	Name string `json:"name"`
	Size string `json:"size"`
}

type Deal struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Company      string     `json:"company"`
	Source       string     `json:"source"`
	Description  string     `json:"description,omitempty"`
	Stage        Stage      `json:"stage"`
	Priority     Priority   `json:"priority"`
	Owner        Owner      `json:"owner"`
	Amount       Money      `json:"amount"`
	Probability  int        `json:"probability"`
	CloseDate    string     `json:"close_date,omitempty"`
	LastActivity string     `json:"last_activity,omitempty"`
	Tags         []string   `json:"tags,omitempty"`
	Contact      *Contact   `json:"contact,omitempty"`
	Activities   []Activity `json:"activities,omitempty"`
	Files        []File     `json:"files,omitempty"`
}

// Validate checks the invariants every stored deal must satisfy.
func (d Deal) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("%w: id", ErrMissingField)
	}
	if !d.Stage.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStage, d.Stage)
	}
	if !d.Priority.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, d.Priority)
	}
	if d.Probability < 0 || d.Probability > 100 {
		return fmt.Errorf("%w: got %d", ErrInvalidProbability, d.Probability)
	}
	if d.Amount < 0 {
		return fmt.Errorf("%w: negative amount", ErrInvalidAmount)
	}
	if d.CloseDate != "" {
		if _, err := ParseDate(d.CloseDate); err != nil {
			return fmt.Errorf("close date: %w", err)
		}
	}
	if d.LastActivity != "" {
		if _, err := ParseDate(d.LastActivity); err != nil {
			return fmt.Errorf("last activity: %w", err)
		}
	}
	return nil
}

// Clone returns a deep copy so callers can edit without aliasing the stored record.
func (d Deal) Clone() Deal {
	out := d
	if d.Tags != nil {
		out.Tags = append([]string(nil), d.Tags...)
	}
	if d.Contact != nil {
		c := *d.Contact
		out.Contact = &c
	}
	if d.Activities != nil {
		out.Activities = append([]Activity(nil), d.Activities...)
	}
	if d.Files != nil {
		out.Files = append([]File(nil), d.Files...)
	}
	return out
}

// ParseDate parses an ISO calendar date, also accepting a full RFC3339 timestamp.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: %q (use YYYY-MM-DD)", ErrInvalidDate, s)
}
