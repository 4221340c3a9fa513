// ABOUTME: Structured currency amount stored as integer cents
// ABOUTME: Parses "$125,000" style input once and formats it back for display
package models

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Money is an amount in cents.
type Money int64

var (
	displayPrinter = message.NewPrinter(language.English)
	maxCents       = decimal.NewFromInt(math.MaxInt64)
)

// Dollars builds a Money value from whole currency units.
func Dollars(units int64) Money {
	return Money(units * 100)
}

// ParseMoney parses a currency string such as "$125,000" or "99.50".
// Currency symbols, thousands separators and surrounding spaces are ignored.
func ParseMoney(s string) (Money, error) {
	cleaned := strings.NewReplacer("$", "", ",", "", " ", "").Replace(strings.TrimSpace(s))
	if cleaned == "" {
		return 0, fmt.Errorf("%w: empty amount", ErrInvalidAmount)
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("%w: %q is negative", ErrInvalidAmount, s)
	}

	cents := d.Shift(2).Round(0)
	if cents.GreaterThan(maxCents) {
		return 0, fmt.Errorf("%w: %q is too large", ErrInvalidAmount, s)
	}
	return Money(cents.IntPart()), nil
}

// Decimal returns the amount in currency units.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -2)
}

// String formats the amount for display: "$125,000" or "$99.50".
func (m Money) String() string {
	sign := ""
	cents := int64(m)
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	whole, frac := cents/100, cents%100
	if frac == 0 {
		return displayPrinter.Sprintf("%s$%d", sign, whole)
	}
	return displayPrinter.Sprintf("%s$%d.%02d", sign, whole, frac)
}

// MarshalJSON writes the display form so exported JSON reads like the grid.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON accepts either the display form or a plain number of currency units.
func (m *Money) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed, err := ParseMoney(s)
		if err != nil {
			return err
		}
		*m = parsed
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidAmount, string(data))
	}
	parsed, err := ParseMoney(n.String())
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
