package repositories

import "context"

// SheetSource fetches the raw cell grid of the external revenue workbook.
// Implementations hide the transport (Google Sheets API); parsing is done
// by the caller on the returned grid.
type SheetSource interface {
	// FetchGrid returns the title of the matched sheet and its cells as
	// formatted strings, row-major.
	FetchGrid(ctx context.Context) (string, [][]string, error)
}
