package internal

import (
	"github.com/shopspring/decimal"
)

// Subscription is one recurring monthly payment
type Subscription struct {
	ID     string          `json:"id" yaml:"id"`
	Name   string          `json:"name" yaml:"name"`
	Amount decimal.Decimal `json:"amount" yaml:"amount"`
	Date   int             `json:"date" yaml:"date"` // day of month, 1-31
	Color  Color           `json:"color" yaml:"color"`
}

// Equal reports whether two subscriptions match field for field
func (s Subscription) Equal(o Subscription) bool {
	return s.ID == o.ID &&
		s.Name == o.Name &&
		s.Amount.Equal(o.Amount) &&
		s.Date == o.Date &&
		s.Color == o.Color
}

// ViewMode selects which view is rendered
type ViewMode string

const (
	ViewCalendar ViewMode = "calendar"
	ViewList     ViewMode = "list"
)

// MaxDay is the largest accepted due day. It is not checked against the
// length of any particular month.
const MaxDay = 31

func cloneSubscriptions(subs []Subscription) []Subscription {
	if subs == nil {
		return []Subscription{}
	}
	out := make([]Subscription, len(subs))
	copy(out, subs)
	return out
}
