package internal

import (
	"testing"
	"time"
)

func TestMonthlySpend(t *testing.T) {
	tests := []struct {
		name string
		subs []Subscription
		want string
	}{
		{"empty", nil, "0"},
		{"single", []Subscription{sub("a", "Netflix", "15.99", 5, ColorRed)}, "15.99"},
		{"exact decimal sum", []Subscription{
			sub("a", "Netflix", "15.99", 5, ColorRed),
			sub("b", "Spotify", "9.99", 5, ColorBlue),
		}, "25.98"},
		{"ignores due day", []Subscription{
			sub("a", "A", "1.10", 1, ColorRed),
			sub("b", "B", "2.20", 31, ColorRed),
		}, "3.30"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MonthlySpend(tt.subs); !got.Equal(amount(tt.want)) {
				t.Errorf("MonthlySpend = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestSortByDate(t *testing.T) {
	subs := []Subscription{
		sub("a", "A", "1", 20, ColorRed),
		sub("b", "B", "1", 5, ColorRed),
		sub("c", "C", "1", 31, ColorRed),
		sub("d", "D", "1", 5, ColorRed),
		sub("e", "E", "1", 1, ColorRed),
	}

	sorted := SortByDate(subs)

	for i := 1; i < len(sorted); i++ {
		if sorted[i-1].Date > sorted[i].Date {
			t.Fatalf("not sorted at %d: %d > %d", i, sorted[i-1].Date, sorted[i].Date)
		}
	}

	var ids []string
	for _, s := range sorted {
		ids = append(ids, s.ID)
	}
	want := []string{"e", "b", "d", "a", "c"} // b before d: insertion order on ties
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("order = %v, want %v", ids, want)
		}
	}

	if subs[0].ID != "a" {
		t.Error("SortByDate must not reorder its input")
	}
}

func TestBuildCalendar(t *testing.T) {
	tests := []struct {
		name         string
		now          time.Time
		firstWeekday int
		days         int
	}{
		{"february starting sunday", day(2026, time.February, 14), 0, 28},
		{"leap february", day(2024, time.February, 29), 4, 29},
		{"april has 30 days", day(2026, time.April, 1), 3, 30},
		{"october 2026", day(2026, time.October, 14), 4, 31},
		{"august needs six rows", day(2026, time.August, 31), 6, 31},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cal := BuildCalendar(nil, tt.now)

			if len(cal.Cells) != CalendarCells {
				t.Fatalf("got %d cells, want %d", len(cal.Cells), CalendarCells)
			}
			if cal.FirstWeekday != tt.firstWeekday {
				t.Errorf("FirstWeekday = %d, want %d", cal.FirstWeekday, tt.firstWeekday)
			}
			if cal.DaysInMonth != tt.days {
				t.Errorf("DaysInMonth = %d, want %d", cal.DaysInMonth, tt.days)
			}
			if got := cal.ValidCount(); got != tt.days {
				t.Errorf("ValidCount = %d, want %d", got, tt.days)
			}
			for i, cell := range cal.Cells {
				if cell.Day != i-tt.firstWeekday+1 {
					t.Fatalf("cell %d has day %d", i, cell.Day)
				}
				if cell.Valid != (cell.Day >= 1 && cell.Day <= tt.days) {
					t.Fatalf("cell %d (day %d) valid = %v", i, cell.Day, cell.Valid)
				}
			}
			if len(cal.Weeks()) != 6 {
				t.Errorf("expected 6 weeks, got %d", len(cal.Weeks()))
			}
		})
	}
}

func TestBuildCalendar_AssignsSubscriptions(t *testing.T) {
	subs := []Subscription{
		sub("n", "Netflix", "15.99", 5, ColorRed),
		sub("s", "Spotify", "9.99", 5, ColorBlue),
		sub("g", "Gym", "30", 12, ColorGreen),
		sub("x", "Late", "1", 31, ColorPink), // April has no 31st
	}
	cal := BuildCalendar(subs, day(2026, time.April, 20))

	five, ok := cal.Cell(5)
	if !ok {
		t.Fatal("day 5 missing")
	}
	if len(five.Subscriptions) != 2 || five.Badge() != 2 {
		t.Errorf("day 5: %d subscriptions, badge %d; want 2 and 2", len(five.Subscriptions), five.Badge())
	}
	if five.Color() != ColorRed {
		t.Errorf("day 5 color = %q, want first match's color red", five.Color())
	}

	twelve, _ := cal.Cell(12)
	if twelve.Badge() != 0 {
		t.Errorf("single subscription should have no badge, got %d", twelve.Badge())
	}
	if twelve.Color() != ColorGreen {
		t.Errorf("day 12 color = %q", twelve.Color())
	}

	empty, _ := cal.Cell(13)
	if empty.Color() != "" || empty.Badge() != 0 {
		t.Error("day without subscriptions should have no color or badge")
	}

	if _, ok := cal.Cell(31); ok {
		t.Error("April should have no day 31 cell")
	}
	for _, cell := range cal.Cells {
		for _, s := range cell.Subscriptions {
			if s.ID == "x" {
				t.Errorf("subscription due on the 31st placed in cell %d", cell.Index)
			}
		}
		if !cell.Valid && len(cell.Subscriptions) > 0 {
			t.Errorf("placeholder cell %d has subscriptions", cell.Index)
		}
	}
}

func TestCalendarTitle(t *testing.T) {
	cal := BuildCalendar(nil, day(2026, time.October, 14))
	if cal.Title() != "October 2026" {
		t.Errorf("Title = %q", cal.Title())
	}
}

func TestSubscriptionsOnDay(t *testing.T) {
	subs := []Subscription{
		sub("n", "Netflix", "15.99", 5, ColorRed),
		sub("g", "Gym", "30", 12, ColorGreen),
		sub("s", "Spotify", "9.99", 5, ColorBlue),
	}
	got := SubscriptionsOnDay(subs, 5)
	if len(got) != 2 || got[0].ID != "n" || got[1].ID != "s" {
		t.Errorf("SubscriptionsOnDay(5) = %+v", got)
	}
	if len(SubscriptionsOnDay(subs, 6)) != 0 {
		t.Error("expected nothing on day 6")
	}
}
