package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dharmawan/portledger/internal/core/domain"
	portsrepo "github.com/dharmawan/portledger/internal/core/ports/repositories"
	portssvc "github.com/dharmawan/portledger/internal/core/ports/services"
	"github.com/dharmawan/portledger/internal/dto"
	"github.com/dharmawan/portledger/internal/platform/config"
	"github.com/dharmawan/portledger/internal/utils/sheetgrid"
	"github.com/google/uuid"
)

// Ingestion states. Disabled is terminal; the others cycle Ready <-> Syncing.
const (
	SheetsStateDisabled     = "disabled"
	SheetsStateInitializing = "initializing"
	SheetsStateReady        = "ready"
	SheetsStateSyncing      = "syncing"
)

// ImportMarker tags realizations written by the spreadsheet sync so a later
// run can replace exactly its own rows and nothing entered by hand.
const ImportMarker = "Monthly Total (Google Sheets)"

// tickInterval is how often the background loop wakes up to check whether the
// configured sync interval has elapsed.
const tickInterval = time.Minute

type sheetsService struct {
	BaseService
	cfg             config.SheetsConfig
	companyRepo     portsrepo.CompanyRepository
	realizationRepo portsrepo.RevenueRealizationRepository
	newSource       func(ctx context.Context) (portsrepo.SheetSource, error)

	mu             sync.Mutex
	state          string
	source         portsrepo.SheetSource
	companyCodes   map[string]int64
	lastSync       *time.Time
	lastSyncStatus string
}

// NewSheetsService creates the spreadsheet ingestion service. The source
// factory is deferred until initialization so a misconfigured credential
// never prevents the rest of the application from starting.
func NewSheetsService(
	cfg config.SheetsConfig,
	companyRepo portsrepo.CompanyRepository,
	realizationRepo portsrepo.RevenueRealizationRepository,
	newSource func(ctx context.Context) (portsrepo.SheetSource, error),
) portssvc.SheetsSvcFacade {
	return &sheetsService{
		cfg:             cfg,
		companyRepo:     companyRepo,
		realizationRepo: realizationRepo,
		newSource:       newSource,
		state:           SheetsStateDisabled,
		lastSyncStatus:  "never",
	}
}

var _ portssvc.SheetsSvcFacade = (*sheetsService)(nil)

// Run initializes the integration and drives the periodic sync until ctx is
// cancelled. It is meant to be launched as a goroutine from main.
func (s *sheetsService) Run(ctx context.Context) {
	if !s.initialize(ctx) {
		return
	}

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if s.intervalElapsed() {
				s.LogDebug(ctx, "Running scheduled spreadsheet sync")
				s.SyncNow(ctx)
			}
		}
	}
}

func (s *sheetsService) initialize(ctx context.Context) bool {
	if !s.cfg.Enabled {
		s.LogInfo(ctx, "Spreadsheet ingestion is disabled")
		return false
	}
	if s.cfg.SpreadsheetID == "" {
		s.LogWarn(ctx, "SHEETS_SPREADSHEET_ID not configured, disabling ingestion")
		return false
	}

	s.setState(SheetsStateInitializing)

	source, err := s.newSource(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to build spreadsheet source, disabling ingestion")
		s.setState(SheetsStateDisabled)
		return false
	}

	codes, err := s.loadCompanyCodes(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load company mapping, disabling ingestion")
		s.setState(SheetsStateDisabled)
		return false
	}

	s.mu.Lock()
	s.source = source
	s.companyCodes = codes
	s.state = SheetsStateReady
	s.mu.Unlock()

	s.LogInfo(ctx, "Spreadsheet ingestion initialized",
		slog.Int("companies", len(codes)),
		slog.String("spreadsheet_id", s.cfg.SpreadsheetID))

	s.SyncNow(ctx)
	return true
}

func (s *sheetsService) loadCompanyCodes(ctx context.Context) (map[string]int64, error) {
	companies, err := s.companyRepo.ListActiveCompanies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	codes := make(map[string]int64, len(companies))
	for _, c := range companies {
		codes[strings.ToUpper(c.Code)] = c.CompanyID
	}
	return codes, nil
}

func (s *sheetsService) Status() dto.SyncStatusResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := dto.SyncStatusResponse{
		Enabled:        s.state != SheetsStateDisabled,
		State:          s.state,
		LastSync:       s.lastSync,
		LastSyncStatus: s.lastSyncStatus,
	}
	if status.Enabled {
		status.SpreadsheetID = s.cfg.SpreadsheetID
		if s.lastSync != nil {
			next := s.lastSync.Add(s.cfg.SyncInterval)
			status.NextSync = &next
		}
	}
	return status
}

func (s *sheetsService) HandleWebhook(ctx context.Context, req dto.SheetsWebhookRequest) dto.SyncResultResponse {
	s.mu.Lock()
	disabled := s.state == SheetsStateDisabled
	s.mu.Unlock()
	if disabled {
		return dto.SyncResultResponse{Success: false, Message: "Spreadsheet ingestion is disabled"}
	}
	if req.SpreadsheetID != s.cfg.SpreadsheetID {
		return dto.SyncResultResponse{Success: false, Message: "Invalid spreadsheet ID"}
	}

	s.LogInfo(ctx, "Spreadsheet webhook received",
		slog.String("sheet", req.SheetName),
		slog.String("range", req.Range))
	return s.SyncNow(ctx)
}

// SyncNow runs one ingestion pass. Every failure lands in the result; the
// only effect on the process is a log line and a "failed" status.
func (s *sheetsService) SyncNow(ctx context.Context) dto.SyncResultResponse {
	s.mu.Lock()
	switch s.state {
	case SheetsStateDisabled, SheetsStateInitializing:
		s.mu.Unlock()
		return dto.SyncResultResponse{Success: false, Message: "Spreadsheet ingestion is disabled"}
	case SheetsStateSyncing:
		s.mu.Unlock()
		return dto.SyncResultResponse{Success: false, Message: "Sync already in progress"}
	}
	s.state = SheetsStateSyncing
	source := s.source
	codes := s.companyCodes
	s.mu.Unlock()

	result := s.syncOnce(ctx, source, codes)

	now := time.Now()
	s.mu.Lock()
	s.state = SheetsStateReady
	s.lastSync = &now
	switch {
	case !result.Success:
		s.lastSyncStatus = "failed"
	case len(result.Errors) > 0:
		s.lastSyncStatus = "partial"
	default:
		s.lastSyncStatus = "success"
	}
	s.mu.Unlock()

	return result
}

func (s *sheetsService) syncOnce(ctx context.Context, source portsrepo.SheetSource, codes map[string]int64) dto.SyncResultResponse {
	sheetTitle, grid, err := source.FetchGrid(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch spreadsheet grid")
		return dto.SyncResultResponse{
			Success: false,
			Message: "Failed to fetch spreadsheet",
			Errors:  []string{err.Error()},
		}
	}
	s.LogDebug(ctx, "Fetched spreadsheet grid",
		slog.String("sheet", sheetTitle),
		slog.Int("rows", len(grid)))

	codeList := make([]string, 0, len(codes))
	for code := range codes {
		codeList = append(codeList, code)
	}
	sort.Strings(codeList)

	parsed, err := sheetgrid.Parse(grid, codeList)
	if err != nil {
		s.LogError(ctx, err, "Failed to parse spreadsheet grid", slog.String("sheet", sheetTitle))
		return dto.SyncResultResponse{
			Success: false,
			Message: "Failed to parse spreadsheet",
			Errors:  []string{err.Error()},
		}
	}

	year := time.Now().Year()

	// Replace only rows written by a previous sync; hand-entered
	// realizations survive.
	removed, err := s.realizationRepo.DeleteByDescriptionForYear(ctx, year, ImportMarker)
	if err != nil {
		s.LogError(ctx, err, "Failed to clear previous sheet import")
		return dto.SyncResultResponse{
			Success: false,
			Message: "Failed to clear previous import",
			Errors:  []string{err.Error()},
		}
	}
	s.LogInfo(ctx, "Cleared previous sheet import",
		slog.Int64("removed", removed),
		slog.Int("year", year))

	var errs []string
	count := 0
	for key, total := range parsed.Totals {
		companyID, ok := codes[key.CompanyCode]
		if !ok {
			errs = append(errs, fmt.Sprintf("company %s not found in database", key.CompanyCode))
			continue
		}

		_, err := s.realizationRepo.UpsertRealization(ctx, domain.RevenueRealization{
			RealizationID: uuid.NewString(),
			CompanyID:     companyID,
			Date:          time.Date(year, time.Month(key.Month), 1, 0, 0, 0, 0, time.UTC),
			Amount:        total,
			Description:   ImportMarker,
		})
		if err != nil {
			errs = append(errs, fmt.Sprintf("failed to save %s month %d: %v", key.CompanyCode, key.Month, err))
			continue
		}
		count++
	}

	s.LogInfo(ctx, "Spreadsheet sync completed",
		slog.Int("saved", count),
		slog.Int("errors", len(errs)),
		slog.Any("months", parsed.MonthsMapped))

	return dto.SyncResultResponse{
		Success:          true,
		Message:          fmt.Sprintf("Synced %d monthly totals", count),
		RealizationCount: count,
		Errors:           errs,
	}
}

func (s *sheetsService) intervalElapsed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != SheetsStateReady {
		return false
	}
	return s.lastSync == nil || time.Since(*s.lastSync) >= s.cfg.SyncInterval
}

func (s *sheetsService) setState(state string) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}
