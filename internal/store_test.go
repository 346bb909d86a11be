package internal

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestNewStore_LoadsOnce(t *testing.T) {
	initial := []Subscription{sub("a", "Netflix", "15.99", 5, ColorRed)}
	store, p := newTestStore(t, initial...)

	assertSameSubs(t, store.All(), initial)
	if len(p.saves) != 0 {
		t.Errorf("loading should not save, got %d saves", len(p.saves))
	}
}

func TestNewStore_LoadErrorStartsEmpty(t *testing.T) {
	p := &fakePersister{
		loaded:  []Subscription{sub("a", "Netflix", "15.99", 5, ColorRed)},
		loadErr: errBoom,
	}
	store := NewStore(p, zerolog.Nop())

	if store.Len() != 0 {
		t.Errorf("expected empty store after failed load, got %d", store.Len())
	}
	if store.All() == nil {
		t.Error("All() should return an empty slice, not nil")
	}
}

func TestStore_AllReturnsCopy(t *testing.T) {
	store, _ := newTestStore(t, sub("a", "Netflix", "15.99", 5, ColorRed))

	all := store.All()
	all[0].Name = "changed"

	if got, _ := store.Get("a"); got.Name != "Netflix" {
		t.Errorf("mutating All() result changed the store: %q", got.Name)
	}
}

func TestStore_AddSavesFullCollection(t *testing.T) {
	store, p := newTestStore(t, sub("a", "Netflix", "15.99", 5, ColorRed))

	store.Add(sub("b", "Spotify", "9.99", 5, ColorBlue))

	if len(p.saves) != 1 {
		t.Fatalf("expected 1 save, got %d", len(p.saves))
	}
	assertSameSubs(t, p.lastSave(), []Subscription{
		sub("a", "Netflix", "15.99", 5, ColorRed),
		sub("b", "Spotify", "9.99", 5, ColorBlue),
	})
}

func TestStore_Replace(t *testing.T) {
	store, p := newTestStore(t,
		sub("a", "Netflix", "15.99", 5, ColorRed),
		sub("b", "Spotify", "9.99", 12, ColorBlue),
	)

	if !store.Replace(sub("b", "Spotify Family", "17.99", 14, ColorBlue)) {
		t.Fatal("Replace returned false for existing id")
	}
	assertSameSubs(t, store.All(), []Subscription{
		sub("a", "Netflix", "15.99", 5, ColorRed),
		sub("b", "Spotify Family", "17.99", 14, ColorBlue),
	})
	if len(p.saves) != 1 {
		t.Errorf("expected 1 save, got %d", len(p.saves))
	}

	if store.Replace(sub("missing", "X", "1", 1, ColorRed)) {
		t.Error("Replace returned true for unknown id")
	}
	if len(p.saves) != 1 {
		t.Errorf("replacing unknown id should not save, got %d saves", len(p.saves))
	}
}

func TestStore_Delete(t *testing.T) {
	store, p := newTestStore(t,
		sub("a", "Netflix", "15.99", 5, ColorRed),
		sub("b", "Spotify", "9.99", 12, ColorBlue),
		sub("c", "Gym", "30", 1, ColorGreen),
	)

	before := store.MonthlySpend()
	if !store.Delete("b") {
		t.Fatal("Delete returned false for existing id")
	}
	assertSameSubs(t, store.All(), []Subscription{
		sub("a", "Netflix", "15.99", 5, ColorRed),
		sub("c", "Gym", "30", 1, ColorGreen),
	})
	if diff := before.Sub(store.MonthlySpend()); !diff.Equal(amount("9.99")) {
		t.Errorf("spend dropped by %s, want 9.99", diff)
	}

	savesBefore := len(p.saves)
	spendBefore := store.MonthlySpend()
	if store.Delete("nope") {
		t.Error("Delete returned true for unknown id")
	}
	if store.Len() != 2 || !store.MonthlySpend().Equal(spendBefore) {
		t.Error("deleting unknown id changed the store")
	}
	if len(p.saves) != savesBefore {
		t.Error("deleting unknown id should not save")
	}
}

func TestStore_SaveErrorIsRemembered(t *testing.T) {
	store, p := newTestStore(t)
	p.saveErr = errBoom

	store.Add(sub("a", "Netflix", "15.99", 5, ColorRed))

	if store.Len() != 1 {
		t.Error("a failed save should still keep the in-memory change")
	}
	if store.LastSaveError() == nil {
		t.Error("expected LastSaveError after failed save")
	}

	p.saveErr = nil
	store.Add(sub("b", "Spotify", "9.99", 5, ColorBlue))
	if store.LastSaveError() != nil {
		t.Error("LastSaveError should clear after a successful save")
	}
}
