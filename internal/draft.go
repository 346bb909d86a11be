package internal

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrIncompleteDraft = errors.New("name, amount and day are all required")
	ErrInvalidAmount   = errors.New("amount must be a positive number")
	ErrInvalidDay      = errors.New("day must be a whole number between 1 and 31")
)

// DraftField names one of the three form inputs
type DraftField string

const (
	FieldName   DraftField = "name"
	FieldAmount DraftField = "amount"
	FieldDate   DraftField = "date"
)

// Draft is unvalidated form input, kept as strings until submitted
type Draft struct {
	Name   string
	Amount string
	Date   string
}

// IsEmpty returns true if no field has been filled in
func (d Draft) IsEmpty() bool {
	return d.Name == "" && d.Amount == "" && d.Date == ""
}

// With returns a copy of the draft with one field replaced
func (d Draft) With(field DraftField, value string) (Draft, error) {
	switch field {
	case FieldName:
		d.Name = value
	case FieldAmount:
		d.Amount = value
	case FieldDate:
		d.Date = value
	default:
		return d, fmt.Errorf("unknown field %q", field)
	}
	return d, nil
}

// DraftFrom prefills a draft from an existing record
func DraftFrom(sub Subscription) Draft {
	return Draft{
		Name:   sub.Name,
		Amount: sub.Amount.String(),
		Date:   strconv.Itoa(sub.Date),
	}
}

// ParsedDraft holds validated draft values
type ParsedDraft struct {
	Name   string
	Amount decimal.Decimal
	Date   int
}

// ParseDraft validates a draft. Every field must be non-empty, the amount
// positive and the day in 1..31.
func ParseDraft(d Draft) (ParsedDraft, error) {
	name := strings.TrimSpace(d.Name)
	amountStr := strings.TrimSpace(d.Amount)
	dateStr := strings.TrimSpace(d.Date)

	if name == "" || amountStr == "" || dateStr == "" {
		return ParsedDraft{}, ErrIncompleteDraft
	}

	amount, err := ParseAmount(amountStr)
	if err != nil {
		return ParsedDraft{}, err
	}

	day, err := ParseDay(dateStr)
	if err != nil {
		return ParsedDraft{}, err
	}

	return ParsedDraft{Name: name, Amount: amount, Date: day}, nil
}

// ParseAmount parses a positive decimal amount. Both "9.99" and "9,99" are accepted.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	normalized := strings.ReplaceAll(s, ",", ".")
	amount, err := decimal.NewFromString(normalized)
	if err != nil || !amount.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: got %q", ErrInvalidAmount, s)
	}
	return amount, nil
}

// ParseDay parses a due day in 1..31
func ParseDay(s string) (int, error) {
	s = strings.TrimSpace(s)
	day, err := strconv.Atoi(s)
	if err != nil || day < 1 || day > MaxDay {
		return 0, fmt.Errorf("%w: got %q", ErrInvalidDay, s)
	}
	return day, nil
}
