package internal

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// CalendarCells is the fixed size of the month grid (6 weeks x 7 days)
const CalendarCells = 42

// WeekdayNames are the column headers, starting on Sunday
var WeekdayNames = [7]string{"SUN", "MON", "TUE", "WED", "THU", "FRI", "SAT"}

// MonthlySpend sums the amount of every subscription, regardless of due day
func MonthlySpend(subs []Subscription) decimal.Decimal {
	total := decimal.Zero
	for _, sub := range subs {
		total = total.Add(sub.Amount)
	}
	return total
}

// SortByDate returns a copy sorted ascending by due day.
// Subscriptions due the same day keep their insertion order.
func SortByDate(subs []Subscription) []Subscription {
	sorted := cloneSubscriptions(subs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date < sorted[j].Date
	})
	return sorted
}

// SubscriptionsOnDay returns every subscription due on day, in insertion order
func SubscriptionsOnDay(subs []Subscription, day int) []Subscription {
	var result []Subscription
	for _, sub := range subs {
		if sub.Date == day {
			result = append(result, sub)
		}
	}
	return result
}

// CalendarCell is one slot in the month grid
type CalendarCell struct {
	Index         int
	Day           int // may be <1 or >DaysInMonth for placeholder cells
	Valid         bool
	Subscriptions []Subscription
}

// Color is the color of the first subscription due that day, or "" if none
func (c CalendarCell) Color() Color {
	if len(c.Subscriptions) == 0 {
		return ""
	}
	return c.Subscriptions[0].Color
}

// Badge is the number of subscriptions due when there is more than one, otherwise 0
func (c CalendarCell) Badge() int {
	if len(c.Subscriptions) > 1 {
		return len(c.Subscriptions)
	}
	return 0
}

// Calendar is the grid for a single month
type Calendar struct {
	Year         int
	Month        time.Month
	FirstWeekday int // 0 = Sunday
	DaysInMonth  int
	Cells        [CalendarCells]CalendarCell
}

// Title is the month heading, e.g. "October 2026"
func (c Calendar) Title() string {
	return fmt.Sprintf("%s %d", c.Month, c.Year)
}

// ValidCount returns the number of cells that hold a real day
func (c Calendar) ValidCount() int {
	n := 0
	for _, cell := range c.Cells {
		if cell.Valid {
			n++
		}
	}
	return n
}

// Cell returns the cell for a day of the displayed month
func (c Calendar) Cell(day int) (CalendarCell, bool) {
	if day < 1 || day > c.DaysInMonth {
		return CalendarCell{}, false
	}
	return c.Cells[day+c.FirstWeekday-1], true
}

// Weeks splits the grid into its six rows
func (c Calendar) Weeks() [][]CalendarCell {
	weeks := make([][]CalendarCell, 0, CalendarCells/7)
	for i := 0; i < CalendarCells; i += 7 {
		weeks = append(weeks, c.Cells[i:i+7])
	}
	return weeks
}

// BuildCalendar lays out the month containing now. Cell i holds day
// i - firstWeekday + 1; subscriptions due on a day the month lacks
// (e.g. the 31st in April) appear in no cell.
func BuildCalendar(subs []Subscription, now time.Time) Calendar {
	year, month, _ := now.Date()
	loc := now.Location()

	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	offset := int(first.Weekday())
	days := daysInMonth(year, month, loc)

	cal := Calendar{
		Year:         year,
		Month:        month,
		FirstWeekday: offset,
		DaysInMonth:  days,
	}

	byDay := make(map[int][]Subscription)
	for _, sub := range subs {
		byDay[sub.Date] = append(byDay[sub.Date], sub)
	}

	for i := range cal.Cells {
		day := i - offset + 1
		valid := day >= 1 && day <= days
		cell := CalendarCell{Index: i, Day: day, Valid: valid}
		if valid {
			cell.Subscriptions = byDay[day]
		}
		cal.Cells[i] = cell
	}

	return cal
}

func daysInMonth(year int, month time.Month, loc *time.Location) int {
	// day 0 of the next month is the last day of this one
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}
