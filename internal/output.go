package internal

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// paletteColors maps palette tags to terminal background colors
var paletteColors = map[Color]text.Colors{
	ColorBlue:   {text.BgBlue, text.FgHiWhite},
	ColorRed:    {text.BgRed, text.FgHiWhite},
	ColorGreen:  {text.BgGreen, text.FgBlack},
	ColorYellow: {text.BgYellow, text.FgBlack},
	ColorPurple: {text.BgMagenta, text.FgHiWhite},
	ColorPink:   {text.BgHiMagenta, text.FgBlack},
}

func colorize(c Color, s string) string {
	if colors, ok := paletteColors[c]; ok {
		return colors.Sprint(s)
	}
	return s
}

// JSONOutput is the root JSON output object
type JSONOutput struct {
	Subscriptions []JSONSubscription `json:"subscriptions"`
	Calendar      *JSONCalendar      `json:"calendar,omitempty"`
	Summary       JSONSummary        `json:"summary"`
}

// JSONSummary contains aggregate statistics
type JSONSummary struct {
	Count        int    `json:"count"`
	MonthlyTotal string `json:"monthly_total"`
	Formatted    string `json:"formatted"`
	Currency     string `json:"currency"`
}

// JSONSubscription is the JSON output format for a subscription
type JSONSubscription struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Amount string `json:"amount"`
	Date   int    `json:"date"`
	Color  string `json:"color"`
}

// JSONCalendar is the month grid in JSON output
type JSONCalendar struct {
	Title        string             `json:"title"`
	Year         int                `json:"year"`
	Month        int                `json:"month"`
	FirstWeekday int                `json:"first_weekday"`
	DaysInMonth  int                `json:"days_in_month"`
	Cells        []JSONCalendarCell `json:"cells"`
}

// JSONCalendarCell is one grid slot; invalid cells have no day
type JSONCalendarCell struct {
	Index           int      `json:"index"`
	Day             int      `json:"day,omitempty"`
	Valid           bool     `json:"valid"`
	Color           string   `json:"color,omitempty"`
	Badge           int      `json:"badge,omitempty"`
	SubscriptionIDs []string `json:"subscription_ids,omitempty"`
}

func toJSONSubscriptions(subs []Subscription) []JSONSubscription {
	out := make([]JSONSubscription, 0, len(subs))
	for _, sub := range subs {
		out = append(out, JSONSubscription{
			ID:     sub.ID,
			Name:   sub.Name,
			Amount: sub.Amount.StringFixed(2),
			Date:   sub.Date,
			Color:  string(sub.Color),
		})
	}
	return out
}

func buildSummary(subs []Subscription, currency Currency) JSONSummary {
	total := MonthlySpend(subs)
	return JSONSummary{
		Count:        len(subs),
		MonthlyTotal: total.StringFixed(2),
		Formatted:    currency.FormatDecimal(total),
		Currency:     currency.Code,
	}
}

// PrintListJSON outputs the date-sorted list in JSON format
func PrintListJSON(w io.Writer, subs []Subscription, currency Currency) error {
	output := JSONOutput{
		Subscriptions: toJSONSubscriptions(SortByDate(subs)),
		Summary:       buildSummary(subs, currency),
	}
	return writeJSON(w, output)
}

// PrintCalendarJSON outputs the month grid in JSON format
func PrintCalendarJSON(w io.Writer, subs []Subscription, cal Calendar, currency Currency) error {
	jc := &JSONCalendar{
		Title:        cal.Title(),
		Year:         cal.Year,
		Month:        int(cal.Month),
		FirstWeekday: cal.FirstWeekday,
		DaysInMonth:  cal.DaysInMonth,
	}
	for _, cell := range cal.Cells {
		jcell := JSONCalendarCell{Index: cell.Index, Valid: cell.Valid}
		if cell.Valid {
			jcell.Day = cell.Day
			jcell.Color = string(cell.Color())
			jcell.Badge = cell.Badge()
			for _, sub := range cell.Subscriptions {
				jcell.SubscriptionIDs = append(jcell.SubscriptionIDs, sub.ID)
			}
		}
		jc.Cells = append(jc.Cells, jcell)
	}

	output := JSONOutput{
		Subscriptions: toJSONSubscriptions(subs),
		Calendar:      jc,
		Summary:       buildSummary(subs, currency),
	}
	return writeJSON(w, output)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}
	return nil
}

// PrintListTable outputs subscriptions in the given order with a spend
// footer. Callers pass the list view ordering (Editor.List).
func PrintListTable(w io.Writer, subs []Subscription, currency Currency) {
	fmt.Fprintf(w, "%d subscriptions\n\n", len(subs))

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Name", "Amount", "Due", "Color", "ID"})

	for _, sub := range subs {
		t.AppendRow(table.Row{
			sub.Name,
			currency.FormatDecimal(sub.Amount),
			"Due: " + strconv.Itoa(sub.Date),
			colorize(sub.Color, " "+string(sub.Color)+" "),
			text.FgHiBlack.Sprint(sub.ID),
		})
	}

	t.AppendSeparator()
	t.AppendFooter(table.Row{
		text.Bold.Sprint("Monthly spend"),
		text.Bold.Sprint(currency.FormatDecimal(MonthlySpend(subs))),
		"", "", "",
	})

	t.SetStyle(table.StyleRounded)
	t.Style().Format.Header = text.FormatDefault
	t.Style().Format.Footer = text.FormatDefault
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight, AlignFooter: text.AlignRight},
	})

	t.Render()
}

// PrintCalendarTable outputs the month grid. Days with subscriptions take
// the color of the first one due and show "(N)" when more than one is due.
func PrintCalendarTable(w io.Writer, cal Calendar, total string) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(cal.Title())

	header := table.Row{}
	for _, name := range WeekdayNames {
		header = append(header, name)
	}
	t.AppendHeader(header)

	for _, week := range cal.Weeks() {
		row := table.Row{}
		for _, cell := range week {
			row = append(row, calendarCellText(cell))
		}
		t.AppendRow(row)
	}

	t.AppendFooter(table.Row{"", "", "", "", "", text.Bold.Sprint("Monthly spend"), text.Bold.Sprint(total)})

	t.SetStyle(table.StyleRounded)
	t.Style().Options.SeparateRows = true
	t.Style().Format.Header = text.FormatDefault
	t.Style().Format.Footer = text.FormatDefault

	configs := make([]table.ColumnConfig, 0, len(WeekdayNames))
	for i := range WeekdayNames {
		configs = append(configs, table.ColumnConfig{Number: i + 1, Align: text.AlignCenter, WidthMin: 6})
	}
	t.SetColumnConfigs(configs)

	t.Render()
}

// calendarCellText renders the label for one grid cell
func calendarCellText(cell CalendarCell) string {
	if !cell.Valid {
		return ""
	}
	label := strconv.Itoa(cell.Day)
	if badge := cell.Badge(); badge > 0 {
		label += fmt.Sprintf(" (%d)", badge)
	}
	if len(cell.Subscriptions) == 0 {
		return label
	}
	return colorize(cell.Color(), " "+label+" ")
}

// PrintPopover lists the subscriptions of a hovered day or record
func PrintPopover(w io.Writer, title string, subs []Subscription, currency Currency) {
	if len(subs) == 0 {
		fmt.Fprintf(w, "%s: no subscriptions\n", title)
		return
	}
	fmt.Fprintf(w, "%s\n", text.Bold.Sprint(title))
	for _, sub := range subs {
		fmt.Fprintf(w, "  %s  %s\n", colorize(sub.Color, " "+sub.Name+" "), currency.FormatDecimal(sub.Amount))
	}
}

// PrintTotal prints the monthly spend line
func PrintTotal(w io.Writer, subs []Subscription, currency Currency) {
	fmt.Fprintf(w, "Monthly spend: %s (%d subscriptions)\n", currency.FormatDecimal(MonthlySpend(subs)), len(subs))
}
