package internal

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// SheetName is the sheet written by ExportXLSX
const SheetName = "Subscriptions"

var exportHeader = []any{"ID", "Name", "Amount", "Day", "Color"}

// ExportXLSX writes the subscriptions, sorted by due day, to an Excel file
func ExportXLSX(path string, subs []Subscription) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}
	if err := f.SetSheetRow(SheetName, "A1", &exportHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, sub := range SortByDate(subs) {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("locating row %d: %w", i+2, err)
		}
		amount, _ := sub.Amount.Float64()
		row := []any{sub.ID, sub.Name, amount, sub.Date, string(sub.Color)}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving file: %w", err)
	}
	return nil
}

// ImportRow is one spreadsheet row as an unvalidated draft
type ImportRow struct {
	Row   int // 1-based sheet row
	Draft Draft
	Color Color
}

// ReadXLSX reads drafts from the first sheet of an Excel file. The header
// row must contain Name, Amount and Day columns; Color is optional. Rows
// with every field empty are skipped.
func ReadXLSX(path string) ([]ImportRow, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets found in file")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet: %w", err)
	}

	// Find header row and column indices
	nameCol, amountCol, dayCol, colorCol := -1, -1, -1, -1
	dataStartRow := -1
	for i, row := range rows {
		for j, cell := range row {
			switch strings.ToLower(strings.TrimSpace(cell)) {
			case "name":
				nameCol = j
			case "amount":
				amountCol = j
			case "day", "date", "due":
				dayCol = j
			case "color":
				colorCol = j
			}
		}
		if nameCol >= 0 && amountCol >= 0 && dayCol >= 0 {
			dataStartRow = i + 1
			break
		}
		nameCol, amountCol, dayCol, colorCol = -1, -1, -1, -1
	}
	if dataStartRow < 0 {
		return nil, fmt.Errorf("could not find required columns (Name, Amount, Day)")
	}

	cellAt := func(row []string, col int) string {
		if col < 0 || col >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[col])
	}

	var result []ImportRow
	for i := dataStartRow; i < len(rows); i++ {
		row := rows[i]
		d := Draft{
			Name:   cellAt(row, nameCol),
			Amount: cellAt(row, amountCol),
			Date:   cellAt(row, dayCol),
		}
		if d.IsEmpty() {
			continue
		}
		result = append(result, ImportRow{
			Row:   i + 1,
			Draft: d,
			Color: Color(strings.ToLower(cellAt(row, colorCol))),
		})
	}

	return result, nil
}
