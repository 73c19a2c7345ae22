// Package googlesheets reads the revenue spreadsheet through the Sheets API
// using a service account.
package googlesheets

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/dharmawan/portledger/internal/platform/config"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Source fetches the revenue sheet as a grid of display strings. Values.Get
// with FORMATTED_VALUE returns cells the way the sheet renders them, which is
// what the grid parser expects.
type Source struct {
	service       *sheets.Service
	spreadsheetID string
}

// NewSource builds the API client from the service account credentials. A
// credentials file takes precedence; otherwise the client email and private
// key from the environment are assembled into an equivalent key.
func NewSource(ctx context.Context, cfg config.SheetsConfig) (*Source, error) {
	jsonKey, err := credentialsJSON(cfg)
	if err != nil {
		return nil, err
	}

	jwtConfig, err := google.JWTConfigFromJSON(jsonKey, sheets.SpreadsheetsReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse service account key: %w", err)
	}

	httpClient := oauth2.NewClient(ctx, jwtConfig.TokenSource(ctx))
	srv, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}

	return &Source{service: srv, spreadsheetID: cfg.SpreadsheetID}, nil
}

func credentialsJSON(cfg config.SheetsConfig) ([]byte, error) {
	if cfg.CredentialsFile != "" {
		jsonKey, err := os.ReadFile(cfg.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("unable to read service account key file: %w", err)
		}
		return jsonKey, nil
	}
	if cfg.ClientEmail == "" || cfg.PrivateKey == "" {
		return nil, fmt.Errorf("sheets credentials missing: need a credentials file or client email and private key")
	}
	key := map[string]string{
		"type":         "service_account",
		"client_email": cfg.ClientEmail,
		// Keys pasted into env files usually carry literal \n sequences.
		"private_key": strings.ReplaceAll(cfg.PrivateKey, `\n`, "\n"),
		"token_uri":   "https://oauth2.googleapis.com/token",
	}
	jsonKey, err := json.Marshal(key)
	if err != nil {
		return nil, fmt.Errorf("unable to assemble service account key: %w", err)
	}
	return jsonKey, nil
}

// FetchGrid locates the revenue tab and returns its formatted cell values.
// The tab whose title contains "REVENUE" (case-insensitive) wins; if none
// matches, the first tab is used.
func (s *Source) FetchGrid(ctx context.Context) (string, [][]string, error) {
	meta, err := s.service.Spreadsheets.Get(s.spreadsheetID).
		Fields("sheets.properties.title").
		Context(ctx).Do()
	if err != nil {
		return "", nil, fmt.Errorf("unable to access spreadsheet %s: %w", s.spreadsheetID, err)
	}
	if len(meta.Sheets) == 0 {
		return "", nil, fmt.Errorf("spreadsheet %s has no sheets", s.spreadsheetID)
	}

	title := meta.Sheets[0].Properties.Title
	for _, sh := range meta.Sheets {
		if strings.Contains(strings.ToUpper(sh.Properties.Title), "REVENUE") {
			title = sh.Properties.Title
			break
		}
	}

	resp, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, fmt.Sprintf("'%s'", title)).
		ValueRenderOption("FORMATTED_VALUE").
		Context(ctx).Do()
	if err != nil {
		return "", nil, fmt.Errorf("unable to read sheet %q: %w", title, err)
	}

	grid := make([][]string, 0, len(resp.Values))
	for _, row := range resp.Values {
		cells := make([]string, 0, len(row))
		for _, cell := range row {
			cells = append(cells, fmt.Sprintf("%v", cell))
		}
		grid = append(grid, cells)
	}
	return title, grid, nil
}
