package dto

import "time"

// SheetsWebhookRequest is the notification body posted by the spreadsheet-side
// script when the source workbook changes.
type SheetsWebhookRequest struct {
	SpreadsheetID string `json:"spreadsheetId" binding:"required"`
	SheetName     string `json:"sheetName"`
	Range         string `json:"range"`
	Timestamp     string `json:"timestamp"`
}

// SyncResultResponse reports the outcome of one ingestion run.
type SyncResultResponse struct {
	Success          bool     `json:"success"`
	Message          string   `json:"message"`
	RealizationCount int      `json:"realisasiCount"`
	Errors           []string `json:"errors,omitempty"`
}

// SyncStatusResponse is the payload of GET /sheets/status.
type SyncStatusResponse struct {
	Enabled        bool       `json:"enabled"`
	State          string     `json:"state"`
	LastSync       *time.Time `json:"lastSync"`
	LastSyncStatus string     `json:"lastSyncStatus"`
	NextSync       *time.Time `json:"nextSync"`
	SpreadsheetID  string     `json:"spreadsheetId,omitempty"`
}
