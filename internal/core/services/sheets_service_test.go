package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/dharmawan/portledger/internal/core/domain"
	portsrepo "github.com/dharmawan/portledger/internal/core/ports/repositories"
	portssvc "github.com/dharmawan/portledger/internal/core/ports/services"
	"github.com/dharmawan/portledger/internal/core/services"
	"github.com/dharmawan/portledger/internal/dto"
	"github.com/dharmawan/portledger/internal/platform/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const testSpreadsheetID = "sheet-123"

// fakeSheetSource serves a canned grid and counts fetches.
type fakeSheetSource struct {
	grid    [][]string
	err     error
	fetches int
}

func (f *fakeSheetSource) FetchGrid(ctx context.Context) (string, [][]string, error) {
	f.fetches++
	if f.err != nil {
		return "", nil, f.err
	}
	return "REVENUE 2025", f.grid, nil
}

func revenueGrid() [][]string {
	return [][]string{
		{"LAPORAN REVENUE 2025"},
		{"", "JAN", ""},
		{"ITEM", "TARGET", "REALISASI"},
		{"(Rupiah)"},
		{"Jasa Tambat BBI", "1.000.000", "2.500.000"},
		{"Sewa Alat BBA", "500.000", "750.000"},
	}
}

// --- Test Suite ---
type SheetsServiceTestSuite struct {
	suite.Suite
	mockCompanyRepo     *MockCompanyRepository
	mockRealizationRepo *MockRevenueRealizationRepository
	source              *fakeSheetSource
}

func (suite *SheetsServiceTestSuite) SetupTest() {
	suite.mockCompanyRepo = new(MockCompanyRepository)
	suite.mockRealizationRepo = new(MockRevenueRealizationRepository)
	suite.source = &fakeSheetSource{grid: revenueGrid()}
}

func (suite *SheetsServiceTestSuite) newService(cfg config.SheetsConfig) portssvc.SheetsSvcFacade {
	return services.NewSheetsService(cfg, suite.mockCompanyRepo, suite.mockRealizationRepo,
		func(ctx context.Context) (portsrepo.SheetSource, error) {
			return suite.source, nil
		})
}

func enabledSheetsConfig() config.SheetsConfig {
	return config.SheetsConfig{
		Enabled:       true,
		SpreadsheetID: testSpreadsheetID,
		SyncInterval:  time.Hour,
	}
}

// runToReady drives initialization (including the initial sync) and returns
// once the background loop observes the cancelled context.
func (suite *SheetsServiceTestSuite) runToReady(svc portssvc.SheetsSvcFacade) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	svc.Run(ctx)
}

func (suite *SheetsServiceTestSuite) expectCompanies() {
	suite.mockCompanyRepo.On("ListActiveCompanies", mock.Anything).Return([]domain.Company{
		{CompanyID: 1, Name: "Bosowa Bandar Indonesia", Code: "BBI", IsActive: true},
		{CompanyID: 2, Name: "Bosowa Bandar Agency", Code: "BBA", IsActive: true},
		{CompanyID: 3, Name: "Jasa Pelabuhan Indonesia", Code: "JAPELIN", IsActive: true},
	}, nil)
}

// --- Disabled Tests ---
func (suite *SheetsServiceTestSuite) TestSyncNow_DisabledByDefault() {
	svc := suite.newService(config.SheetsConfig{})

	result := svc.SyncNow(context.Background())

	suite.False(result.Success)
	suite.Equal("Spreadsheet ingestion is disabled", result.Message)

	status := svc.Status()
	suite.False(status.Enabled)
	suite.Equal(services.SheetsStateDisabled, status.State)
	suite.Equal("never", status.LastSyncStatus)
	suite.Nil(status.LastSync)
}

func (suite *SheetsServiceTestSuite) TestRun_StaysDisabledWithoutSpreadsheetID() {
	cfg := enabledSheetsConfig()
	cfg.SpreadsheetID = ""
	svc := suite.newService(cfg)

	suite.runToReady(svc)

	status := svc.Status()
	suite.False(status.Enabled)
	suite.Zero(suite.source.fetches)
}

// --- Sync Tests ---
func (suite *SheetsServiceTestSuite) TestRun_IngestsMonthlyTotals() {
	year := time.Now().Year()
	suite.expectCompanies()
	suite.mockRealizationRepo.On("DeleteByDescriptionForYear", mock.Anything, year, services.ImportMarker).
		Return(int64(0), nil).Once()
	suite.mockRealizationRepo.On("UpsertRealization", mock.Anything, mock.MatchedBy(func(r domain.RevenueRealization) bool {
		return r.CompanyID == 1 &&
			r.Description == services.ImportMarker &&
			r.Date.Equal(time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)) &&
			r.Amount.Equal(decimal.NewFromInt(2_500_000))
	})).Return(&domain.RevenueRealization{}, nil).Once()
	suite.mockRealizationRepo.On("UpsertRealization", mock.Anything, mock.MatchedBy(func(r domain.RevenueRealization) bool {
		return r.CompanyID == 2 && r.Amount.Equal(decimal.NewFromInt(750_000))
	})).Return(&domain.RevenueRealization{}, nil).Once()

	svc := suite.newService(enabledSheetsConfig())
	suite.runToReady(svc)

	status := svc.Status()
	suite.True(status.Enabled)
	suite.Equal(services.SheetsStateReady, status.State)
	suite.Equal("success", status.LastSyncStatus)
	suite.Require().NotNil(status.LastSync)
	suite.Require().NotNil(status.NextSync)
	suite.Equal(status.LastSync.Add(time.Hour), *status.NextSync)
	suite.Equal(testSpreadsheetID, status.SpreadsheetID)
	suite.Equal(1, suite.source.fetches)
	suite.mockRealizationRepo.AssertExpectations(suite.T())
}

func (suite *SheetsServiceTestSuite) TestSyncNow_FetchFailure() {
	suite.expectCompanies()
	suite.source.err = context.DeadlineExceeded

	svc := suite.newService(enabledSheetsConfig())
	suite.runToReady(svc)

	result := svc.SyncNow(context.Background())

	suite.False(result.Success)
	suite.Equal("Failed to fetch spreadsheet", result.Message)
	suite.NotEmpty(result.Errors)
	suite.Equal("failed", svc.Status().LastSyncStatus)
	suite.mockRealizationRepo.AssertNotCalled(suite.T(), "DeleteByDescriptionForYear",
		mock.Anything, mock.Anything, mock.Anything)
}

// --- Webhook Tests ---
func (suite *SheetsServiceTestSuite) TestHandleWebhook_RejectsForeignSpreadsheet() {
	suite.expectCompanies()
	suite.mockRealizationRepo.On("DeleteByDescriptionForYear", mock.Anything, mock.Anything, mock.Anything).
		Return(int64(0), nil)
	suite.mockRealizationRepo.On("UpsertRealization", mock.Anything, mock.Anything).
		Return(&domain.RevenueRealization{}, nil)

	svc := suite.newService(enabledSheetsConfig())
	suite.runToReady(svc)
	fetchesAfterInit := suite.source.fetches

	result := svc.HandleWebhook(context.Background(), dto.SheetsWebhookRequest{
		SpreadsheetID: "somebody-elses-sheet",
	})

	suite.False(result.Success)
	suite.Equal("Invalid spreadsheet ID", result.Message)
	suite.Equal(fetchesAfterInit, suite.source.fetches)
}

func (suite *SheetsServiceTestSuite) TestHandleWebhook_MatchingIDTriggersSync() {
	suite.expectCompanies()
	suite.mockRealizationRepo.On("DeleteByDescriptionForYear", mock.Anything, mock.Anything, mock.Anything).
		Return(int64(2), nil)
	suite.mockRealizationRepo.On("UpsertRealization", mock.Anything, mock.Anything).
		Return(&domain.RevenueRealization{}, nil)

	svc := suite.newService(enabledSheetsConfig())
	suite.runToReady(svc)
	fetchesAfterInit := suite.source.fetches

	result := svc.HandleWebhook(context.Background(), dto.SheetsWebhookRequest{
		SpreadsheetID: testSpreadsheetID,
		SheetName:     "REVENUE 2025",
	})

	suite.True(result.Success)
	suite.Equal(2, result.RealizationCount)
	suite.Equal(fetchesAfterInit+1, suite.source.fetches)
}

func (suite *SheetsServiceTestSuite) TestHandleWebhook_DisabledIntegration() {
	svc := suite.newService(config.SheetsConfig{})

	result := svc.HandleWebhook(context.Background(), dto.SheetsWebhookRequest{
		SpreadsheetID: testSpreadsheetID,
	})

	suite.False(result.Success)
	suite.Equal("Spreadsheet ingestion is disabled", result.Message)
}

// --- Run Suite ---
func TestSheetsService(t *testing.T) {
	suite.Run(t, new(SheetsServiceTestSuite))
}
