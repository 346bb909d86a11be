package internal

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Persister loads and saves the full subscription collection
type Persister interface {
	Load() ([]Subscription, error)
	Save(subs []Subscription) error
}

// Store owns the ordered subscription collection for one session.
// It is loaded once and written back wholesale after every change.
type Store struct {
	persister Persister
	log       zerolog.Logger
	subs      []Subscription
	saveErr   error
}

// NewStore creates a store and loads its initial contents. A failed load is
// logged and leaves the store empty.
func NewStore(p Persister, log zerolog.Logger) *Store {
	s := &Store{persister: p, log: log}

	subs, err := p.Load()
	if err != nil {
		log.Warn().Err(err).Msg("could not load saved subscriptions, starting empty")
		subs = nil
	}
	s.subs = cloneSubscriptions(subs)

	log.Debug().Int("count", len(s.subs)).Msg("loaded subscriptions")
	return s
}

// All returns a copy of the collection in insertion order
func (s *Store) All() []Subscription {
	return cloneSubscriptions(s.subs)
}

// Len returns the number of stored subscriptions
func (s *Store) Len() int {
	return len(s.subs)
}

// Get returns the subscription with the given id
func (s *Store) Get(id string) (Subscription, bool) {
	for _, sub := range s.subs {
		if sub.ID == id {
			return sub, true
		}
	}
	return Subscription{}, false
}

// Add appends a subscription
func (s *Store) Add(sub Subscription) {
	s.update(func(subs []Subscription) ([]Subscription, bool) {
		return append(subs, sub), true
	})
}

// Replace swaps in sub for the record with the same id.
// Returns false if no such record exists.
func (s *Store) Replace(sub Subscription) bool {
	return s.update(func(subs []Subscription) ([]Subscription, bool) {
		found := false
		for i := range subs {
			if subs[i].ID == sub.ID {
				subs[i] = sub
				found = true
			}
		}
		return subs, found
	})
}

// Delete removes the record with the given id. Deleting an unknown id is a no-op.
func (s *Store) Delete(id string) bool {
	return s.update(func(subs []Subscription) ([]Subscription, bool) {
		kept := subs[:0]
		for _, sub := range subs {
			if sub.ID != id {
				kept = append(kept, sub)
			}
		}
		return kept, len(kept) != len(subs)
	})
}

// LastSaveError returns the error of the most recent failed save, if any
func (s *Store) LastSaveError() error {
	return s.saveErr
}

// MonthlySpend sums every stored amount
func (s *Store) MonthlySpend() decimal.Decimal {
	return MonthlySpend(s.subs)
}

// Calendar builds the grid for the month containing now
func (s *Store) Calendar(now time.Time) Calendar {
	return BuildCalendar(s.subs, now)
}

// SortedByDate returns the list view ordering
func (s *Store) SortedByDate() []Subscription {
	return SortByDate(s.subs)
}

// update applies fn to a fresh copy of the collection. When fn reports a
// change the copy replaces the collection and is saved.
func (s *Store) update(fn func([]Subscription) ([]Subscription, bool)) bool {
	next, changed := fn(cloneSubscriptions(s.subs))
	if !changed {
		return false
	}
	s.subs = next

	if err := s.persister.Save(cloneSubscriptions(next)); err != nil {
		s.saveErr = err
		s.log.Error().Err(err).Msg("could not save subscriptions")
	} else {
		s.saveErr = nil
	}
	return true
}
