package report

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"
)

const (
	sheetName      = "Report"
	cellDateFormat = "02.01.2006 15:04"
)

var identityHeaders = []string{"Особовий рахунок", "ПІБ", "Адреса", "Телефон"}

// Export flattens report entries into a workbook with four identity
// columns plus four columns per counter slot. Counters fill slots in
// creation order, so renaming a counter cannot drop its column. The
// file is written into dir with a timestamped name; the caller owns
// deleting it after delivery.
func Export(entries []Entry, dir string) (string, error) {
	slots := maxSlots(entries)

	headers := append([]string{}, identityHeaders...)
	for i := 1; i <= slots; i++ {
		headers = append(headers,
			fmt.Sprintf("Лічильник-%d поточні", i),
			fmt.Sprintf("Лічильник-%d дата", i),
			fmt.Sprintf("Лічильник-%d попередні", i),
			fmt.Sprintf("Лічильник-%d дата попередніх", i),
		)
	}

	f := excelize.NewFile()
	defer f.Close()
	f.SetSheetName("Sheet1", sheetName)

	widths := make([]int, len(headers))

	setCell := func(col, row int, value interface{}) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		if n := len([]rune(fmt.Sprint(value))); n > widths[col-1] {
			widths[col-1] = n
		}
		return f.SetCellValue(sheetName, cell, value)
	}

	for i, h := range headers {
		if err := setCell(i+1, 1, h); err != nil {
			return "", fmt.Errorf("failed to write header: %w", err)
		}
	}

	for rowIdx, entry := range entries {
		row := rowIdx + 2
		identity := []interface{}{entry.AccountNumber, entry.FullName, entry.Address, entry.Phone}
		for i, v := range identity {
			if err := setCell(i+1, row, v); err != nil {
				return "", fmt.Errorf("failed to write row: %w", err)
			}
		}

		for _, counter := range entry.Counters {
			if counter.Slot < 1 || counter.Slot > slots {
				continue
			}
			base := len(identityHeaders) + (counter.Slot-1)*4 + 1

			cells := []interface{}{
				counter.Current.Value,
				counter.Current.Date.Format(cellDateFormat),
			}
			if counter.Previous != nil {
				cells = append(cells, counter.Previous.Value, counter.Previous.Date.Format(cellDateFormat))
			}

			for i, v := range cells {
				if err := setCell(base+i, row, v); err != nil {
					return "", fmt.Errorf("failed to write row: %w", err)
				}
			}
		}
	}

	for i, width := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return "", fmt.Errorf("failed to size column: %w", err)
		}
		if err := f.SetColWidth(sheetName, col, col, float64(width+2)*1.2); err != nil {
			return "", fmt.Errorf("failed to size column: %w", err)
		}
	}

	filename := fmt.Sprintf("readings_report_%s.xlsx", time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, filename)
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save workbook: %w", err)
	}

	return path, nil
}

// maxSlots returns the widest column layout the entries need: the
// largest declared meter count, or the highest occupied slot when a
// user has more counters than declared.
func maxSlots(entries []Entry) int {
	slots := 0
	for _, entry := range entries {
		if entry.MetersCount > slots {
			slots = entry.MetersCount
		}
		for _, counter := range entry.Counters {
			if counter.Slot > slots {
				slots = counter.Slot
			}
		}
	}
	return slots
}
