// Package sheetgrid turns the raw revenue spreadsheet grid into aggregated
// company-month totals. It is deliberately free of any API or database
// dependency so the header and amount heuristics stay testable.
package sheetgrid

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrHeadersNotFound is returned when the first rows of the grid contain
// neither a recognizable month row nor a REALISASI header row.
var ErrHeadersNotFound = errors.New("could not find month and REALISASI header rows")

// ErrNoMonthColumns is returned when REALISASI columns exist but none can be
// matched to a month token.
var ErrNoMonthColumns = errors.New("could not map REALISASI columns to months")

// Spreadsheets arrive with month rows in either Indonesian or English, short
// or full names. All three sets are tried in order on each cell.
var (
	monthsID      = []string{"JAN", "FEB", "MAR", "APR", "MEI", "JUN", "JUL", "AGU", "SEP", "OKT", "NOV", "DES"}
	monthsEN      = []string{"JAN", "FEB", "MAR", "APR", "MAY", "JUN", "JUL", "AUG", "SEP", "OCT", "NOV", "DEC"}
	monthsENLong  = []string{"JANUARY", "FEBRUARY", "MARCH", "APRIL", "MAY", "JUNE", "JULY", "AUGUST", "SEPTEMBER", "OCTOBER", "NOVEMBER", "DECEMBER"}
	monthNameSets = [][]string{monthsID, monthsEN, monthsENLong}
)

// headerScanRows caps how deep into the grid the header search looks.
const headerScanRows = 10

// CompanyMonthKey identifies one aggregation bucket.
type CompanyMonthKey struct {
	CompanyCode string
	Month       int
}

// Result is the outcome of a successful parse.
type Result struct {
	Totals       map[CompanyMonthKey]decimal.Decimal
	MonthsMapped []int
	RowsScanned  int
}

// Parse extracts per-company monthly totals from a formatted spreadsheet grid.
// companyCodes are the recognized code substrings (upper-cased matching); rows
// whose first cell contains none of them, or contains TOTAL, are skipped. An
// empty grid (fewer than five rows) yields an empty result without error.
func Parse(grid [][]string, companyCodes []string) (*Result, error) {
	result := &Result{Totals: make(map[CompanyMonthKey]decimal.Decimal)}
	if len(grid) < 5 {
		return result, nil
	}

	monthRowIdx, headerRowIdx := findHeaderRows(grid)
	if monthRowIdx < 0 || headerRowIdx < 0 {
		return nil, ErrHeadersNotFound
	}

	columns := mapRealisasiColumns(grid[monthRowIdx], grid[headerRowIdx])
	if len(columns) == 0 {
		return nil, ErrNoMonthColumns
	}
	for _, c := range columns {
		result.MonthsMapped = append(result.MonthsMapped, c.month)
	}

	dataStart := findRupiahSection(grid, headerRowIdx)

	for i := dataStart; i < len(grid); i++ {
		row := grid[i]
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		itemName := strings.ToUpper(strings.TrimSpace(row[0]))
		if strings.Contains(itemName, "TOTAL") {
			continue
		}

		code := matchCompanyCode(itemName, companyCodes)
		if code == "" {
			continue
		}
		result.RowsScanned++

		for _, c := range columns {
			amount, ok := ParseAmount(cellAt(row, c.col))
			if !ok || amount.IsZero() {
				continue
			}
			key := CompanyMonthKey{CompanyCode: code, Month: c.month}
			result.Totals[key] = result.Totals[key].Add(amount)
		}
	}
	return result, nil
}

type monthColumn struct {
	month int
	col   int
}

// findHeaderRows scans the top of the grid for the row carrying month tokens
// and the row carrying REALISASI column headers. The two may be the same row.
func findHeaderRows(grid [][]string) (monthRow, headerRow int) {
	monthRow, headerRow = -1, -1
	limit := headerScanRows
	if len(grid) < limit {
		limit = len(grid)
	}
	for i := 0; i < limit; i++ {
		rowStr := strings.ToUpper(strings.Join(grid[i], " "))
		if monthRow == -1 && rowContainsMonth(rowStr) {
			monthRow = i
		}
		if strings.Contains(rowStr, "REALISASI") {
			headerRow = i
		}
	}
	return monthRow, headerRow
}

func rowContainsMonth(rowStr string) bool {
	for _, set := range monthNameSets {
		for _, m := range set {
			if strings.Contains(rowStr, m) {
				return true
			}
		}
	}
	return false
}

// mapRealisasiColumns pairs each REALISASI header cell with the nearest month
// token at or left of it. Merged month cells span several columns, hence the
// leftward search. Only the first REALISASI column per month is kept so a
// target/realisasi column pair does not double-count.
func mapRealisasiColumns(monthRow, headerRow []string) []monthColumn {
	var columns []monthColumn
	mapped := make(map[int]bool)
	for col := 0; col < len(headerRow); col++ {
		if strings.ToUpper(strings.TrimSpace(headerRow[col])) != "REALISASI" {
			continue
		}
		month := monthLeftOf(monthRow, col)
		if month == 0 || mapped[month] {
			continue
		}
		mapped[month] = true
		columns = append(columns, monthColumn{month: month, col: col})
	}
	return columns
}

func monthLeftOf(monthRow []string, col int) int {
	for searchCol := col; searchCol >= 0; searchCol-- {
		cell := strings.ToUpper(strings.TrimSpace(cellAt(monthRow, searchCol)))
		if cell == "" {
			continue
		}
		for _, set := range monthNameSets {
			for idx, m := range set {
				if strings.Contains(cell, m) {
					return idx + 1
				}
			}
		}
	}
	return 0
}

// findRupiahSection returns the first data row index. Data begins after the
// row whose first cell mentions "rupiah"; without that marker it begins right
// after the column headers.
func findRupiahSection(grid [][]string, headerRowIdx int) int {
	for i := headerRowIdx + 1; i < len(grid); i++ {
		if len(grid[i]) == 0 {
			continue
		}
		if strings.Contains(strings.ToLower(grid[i][0]), "rupiah") {
			return i + 1
		}
	}
	return headerRowIdx + 1
}

func matchCompanyCode(itemName string, companyCodes []string) string {
	for _, code := range companyCodes {
		if strings.Contains(itemName, strings.ToUpper(code)) {
			return strings.ToUpper(code)
		}
	}
	return ""
}

func cellAt(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

// ParseAmount interprets a display-formatted money cell. Cells mix Indonesian
// and international conventions, so the separator roles are inferred:
//   - both "." and "," present: the separator appearing last is the decimal
//     mark, the other one marks thousands
//   - dots only: thousand separators when there are several, or when the
//     single trailing group is exactly three digits; otherwise a decimal point
//   - commas only: a decimal mark when a single comma is followed by at most
//     two digits; otherwise thousand separators
//
// An "Rp" prefix and spaces are discarded. The second return is false for
// empty or unparseable cells.
func ParseAmount(value string) (decimal.Decimal, bool) {
	s := strings.TrimSpace(value)
	if s == "" {
		return decimal.Zero, false
	}
	s = strings.ReplaceAll(s, "Rp", "")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return decimal.Zero, false
	}

	hasDot := strings.Contains(s, ".")
	hasComma := strings.Contains(s, ",")

	var cleaned string
	switch {
	case hasDot && hasComma:
		if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			cleaned = strings.ReplaceAll(s, ".", "")
			cleaned = strings.ReplaceAll(cleaned, ",", ".")
		} else {
			cleaned = strings.ReplaceAll(s, ",", "")
		}
	case hasDot:
		parts := strings.Split(s, ".")
		if len(parts) > 2 || len(parts[len(parts)-1]) == 3 {
			cleaned = strings.ReplaceAll(s, ".", "")
		} else {
			cleaned = s
		}
	case hasComma:
		parts := strings.Split(s, ",")
		if len(parts) == 2 && len(parts[1]) <= 2 {
			cleaned = strings.ReplaceAll(s, ",", ".")
		} else {
			cleaned = strings.ReplaceAll(s, ",", "")
		}
	default:
		cleaned = s
	}

	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, false
	}
	return amount, true
}
