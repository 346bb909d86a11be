package internal

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// fakePersister records saves and serves a fixed load result
type fakePersister struct {
	loaded  []Subscription
	loadErr error
	saveErr error
	saves   [][]Subscription
}

func (f *fakePersister) Load() ([]Subscription, error) {
	return f.loaded, f.loadErr
}

func (f *fakePersister) Save(subs []Subscription) error {
	f.saves = append(f.saves, subs)
	return f.saveErr
}

func (f *fakePersister) lastSave() []Subscription {
	if len(f.saves) == 0 {
		return nil
	}
	return f.saves[len(f.saves)-1]
}

var errBoom = errors.New("boom")

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sub(id, name, amt string, day int, color Color) Subscription {
	return Subscription{ID: id, Name: name, Amount: amount(amt), Date: day, Color: color}
}

// sequentialIDs returns ids "id-1", "id-2", ...
func sequentialIDs() IDGenerator {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newTestStore(t *testing.T, initial ...Subscription) (*Store, *fakePersister) {
	t.Helper()
	p := &fakePersister{loaded: initial}
	return NewStore(p, zerolog.Nop()), p
}

func newTestEditor(t *testing.T, initial ...Subscription) (*Editor, *Store, *fakePersister) {
	t.Helper()
	store, p := newTestStore(t, initial...)
	e := NewEditor(store, WithIDGenerator(sequentialIDs()), WithColorChooser(FixedChooser(0)))
	return e, store, p
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 12, 0, 0, 0, time.UTC)
}

func assertSameSubs(t *testing.T, got, want []Subscription) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d subscriptions, want %d\ngot:  %+v\nwant: %+v", len(got), len(want), got, want)
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("subscription %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}
