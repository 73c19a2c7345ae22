package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/dharmawan/portledger/internal/apperrors"
	"github.com/dharmawan/portledger/internal/core/domain"
	portsrepo "github.com/dharmawan/portledger/internal/core/ports/repositories"
	portssvc "github.com/dharmawan/portledger/internal/core/ports/services"
	"github.com/dharmawan/portledger/internal/core/services"
	"github.com/dharmawan/portledger/internal/dto"
	"github.com/dharmawan/portledger/internal/platform/config"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const testTimezone = "Asia/Makassar"

// --- Mock StockRepository ---
type MockStockRepository struct {
	mock.Mock
}

func (m *MockStockRepository) InsertTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockStockRepository) InsertOutWithBalanceCheck(ctx context.Context, txn domain.Transaction) (decimal.Decimal, error) {
	args := m.Called(ctx, txn)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockStockRepository) GetSummary(ctx context.Context, tz string) (*domain.StockSummary, error) {
	args := m.Called(ctx, tz)
	var summary *domain.StockSummary
	if args.Get(0) != nil {
		summary = args.Get(0).(*domain.StockSummary)
	}
	return summary, args.Error(1)
}

func (m *MockStockRepository) BalanceBefore(ctx context.Context, t time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, t)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockStockRepository) DailyMovements(ctx context.Context, tz string, start time.Time) ([]domain.DailyMovement, error) {
	args := m.Called(ctx, tz, start)
	var movements []domain.DailyMovement
	if args.Get(0) != nil {
		movements = args.Get(0).([]domain.DailyMovement)
	}
	return movements, args.Error(1)
}

func (m *MockStockRepository) ListTransactions(ctx context.Context, filter portsrepo.TransactionFilter) ([]domain.TransactionWithUser, int64, error) {
	args := m.Called(ctx, filter)
	var rows []domain.TransactionWithUser
	if args.Get(0) != nil {
		rows = args.Get(0).([]domain.TransactionWithUser)
	}
	return rows, args.Get(1).(int64), args.Error(2)
}

var _ portsrepo.StockRepository = (*MockStockRepository)(nil)

// --- Test Suite ---
type StockServiceTestSuite struct {
	suite.Suite
	mockStockRepo *MockStockRepository
	service       portssvc.StockSvcFacade
	location      *time.Location
}

func (suite *StockServiceTestSuite) SetupTest() {
	suite.mockStockRepo = new(MockStockRepository)
	suite.service = services.NewStockService(suite.mockStockRepo, &config.Config{ReportTimezone: testTimezone})

	loc, err := time.LoadLocation(testTimezone)
	suite.Require().NoError(err)
	suite.location = loc
}

// --- RecordStockIn / RecordStockOut Tests ---
func (suite *StockServiceTestSuite) TestRecordStockIn_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	req := dto.CreateStockEntryRequest{
		Amount:      decimal.NewFromInt(500),
		Description: "fuel delivery",
	}

	suite.mockStockRepo.On("InsertTransaction", ctx, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.Type == domain.StockIn &&
			txn.Amount.Equal(decimal.NewFromInt(500)) &&
			txn.UserID == userID &&
			txn.TransactionID != ""
	})).Return(nil).Once()

	txn, err := suite.service.RecordStockIn(ctx, req, userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.Equal(domain.StockIn, txn.Type)
	suite.False(txn.Timestamp.IsZero())
	suite.mockStockRepo.AssertExpectations(suite.T())
}

func (suite *StockServiceTestSuite) TestRecordStockIn_KeepsExplicitTimestamp() {
	ctx := context.Background()
	ts := time.Date(2025, 3, 10, 8, 30, 0, 0, time.UTC)
	req := dto.CreateStockEntryRequest{
		Amount:    decimal.NewFromInt(100),
		Timestamp: &ts,
	}

	suite.mockStockRepo.On("InsertTransaction", ctx, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.Timestamp.Equal(ts)
	})).Return(nil).Once()

	txn, err := suite.service.RecordStockIn(ctx, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.True(txn.Timestamp.Equal(ts))
	suite.mockStockRepo.AssertExpectations(suite.T())
}

func (suite *StockServiceTestSuite) TestRecordStockIn_RejectsNonPositiveAmount() {
	ctx := context.Background()
	req := dto.CreateStockEntryRequest{Amount: decimal.Zero}

	txn, err := suite.service.RecordStockIn(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockStockRepo.AssertNotCalled(suite.T(), "InsertTransaction", mock.Anything, mock.Anything)
}

func (suite *StockServiceTestSuite) TestRecordStockOut_Success() {
	ctx := context.Background()
	userID := uuid.NewString()
	req := dto.CreateStockEntryRequest{Amount: decimal.NewFromInt(30)}

	suite.mockStockRepo.On("InsertOutWithBalanceCheck", ctx, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.Type == domain.StockOut && txn.Amount.Equal(decimal.NewFromInt(30))
	})).Return(decimal.NewFromInt(200), nil).Once()

	txn, err := suite.service.RecordStockOut(ctx, req, userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.Equal(domain.StockOut, txn.Type)
	suite.mockStockRepo.AssertExpectations(suite.T())
}

func (suite *StockServiceTestSuite) TestRecordStockOut_InsufficientStock() {
	ctx := context.Background()
	req := dto.CreateStockEntryRequest{Amount: decimal.NewFromInt(500)}

	suite.mockStockRepo.On("InsertOutWithBalanceCheck", ctx, mock.AnythingOfType("domain.Transaction")).
		Return(decimal.NewFromInt(50), apperrors.ErrInsufficientStock).Once()

	txn, err := suite.service.RecordStockOut(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrInsufficientStock)
	suite.mockStockRepo.AssertExpectations(suite.T())
}

// --- GetSummary Tests ---
func (suite *StockServiceTestSuite) TestGetSummary_MapsFigures() {
	ctx := context.Background()
	summary := &domain.StockSummary{
		CurrentStock:      decimal.NewFromInt(380),
		TodayOpeningStock: decimal.NewFromInt(350),
		TodayStockIn:      decimal.NewFromInt(100),
		TodayStockOut:     decimal.NewFromInt(70),
		TodayClosingStock: decimal.NewFromInt(380),
	}

	suite.mockStockRepo.On("GetSummary", ctx, testTimezone).Return(summary, nil).Once()

	resp, err := suite.service.GetSummary(ctx)

	suite.Require().NoError(err)
	suite.True(resp.CurrentStock.Equal(decimal.NewFromInt(380)))
	suite.True(resp.TodayInitialStock.Equal(decimal.NewFromInt(350)))
	// TodayUsage mirrors TodayStockOut for older clients.
	suite.True(resp.TodayUsage.Equal(resp.TodayStockOut))
	// closing = opening + in - out
	suite.True(resp.TodayClosingStock.Equal(
		resp.TodayInitialStock.Add(resp.TodayStockIn).Sub(resp.TodayStockOut)))
	suite.mockStockRepo.AssertExpectations(suite.T())
}

// --- GetHistory Tests ---
func (suite *StockServiceTestSuite) TestGetHistory_OperationalRolePinnedToOut() {
	ctx := context.Background()
	params := dto.StockHistoryParams{Page: 1, Limit: 10, Type: "IN"}

	suite.mockStockRepo.On("ListTransactions", ctx, mock.MatchedBy(func(filter portsrepo.TransactionFilter) bool {
		return filter.Type != nil && *filter.Type == domain.StockOut
	})).Return([]domain.TransactionWithUser{}, int64(0), nil).Once()

	resp, err := suite.service.GetHistory(ctx, params, domain.RoleOperational)

	suite.Require().NoError(err)
	suite.Empty(resp.Data)
	suite.mockStockRepo.AssertExpectations(suite.T())
}

func (suite *StockServiceTestSuite) TestGetHistory_Pagination() {
	ctx := context.Background()
	params := dto.StockHistoryParams{Page: 2, Limit: 10}
	rows := []domain.TransactionWithUser{
		{
			Transaction: domain.Transaction{
				TransactionID: uuid.NewString(),
				Type:          domain.StockOut,
				Amount:        decimal.NewFromInt(20),
			},
			Username: "budi",
			Email:    "budi@example.com",
		},
	}

	suite.mockStockRepo.On("ListTransactions", ctx, mock.MatchedBy(func(filter portsrepo.TransactionFilter) bool {
		return filter.Limit == 10 && filter.Offset == 10 && filter.Type == nil
	})).Return(rows, int64(25), nil).Once()

	resp, err := suite.service.GetHistory(ctx, params, domain.RoleAdmin)

	suite.Require().NoError(err)
	suite.Len(resp.Data, 1)
	suite.Equal("budi", resp.Data[0].User.Username)
	suite.Equal(int64(25), resp.Meta.TotalItems)
	suite.Equal(2, resp.Meta.CurrentPage)
	suite.Equal(3, resp.Meta.TotalPages)
	suite.mockStockRepo.AssertExpectations(suite.T())
}

func (suite *StockServiceTestSuite) TestGetHistory_EndDateCoversWholeDay() {
	ctx := context.Background()
	params := dto.StockHistoryParams{Page: 1, Limit: 10, EndDate: "2025-03-10"}

	suite.mockStockRepo.On("ListTransactions", ctx, mock.MatchedBy(func(filter portsrepo.TransactionFilter) bool {
		if filter.EndDate == nil {
			return false
		}
		// The filter bound sits at the exclusive end of March 10 local time.
		nextMidnight := time.Date(2025, 3, 11, 0, 0, 0, 0, suite.location)
		return filter.EndDate.Before(nextMidnight) &&
			filter.EndDate.After(time.Date(2025, 3, 10, 23, 59, 59, 0, suite.location).Add(-time.Second))
	})).Return([]domain.TransactionWithUser{}, int64(0), nil).Once()

	_, err := suite.service.GetHistory(ctx, params, domain.RoleAdmin)

	suite.Require().NoError(err)
	suite.mockStockRepo.AssertExpectations(suite.T())
}

func (suite *StockServiceTestSuite) TestGetHistory_BadStartDate() {
	ctx := context.Background()
	params := dto.StockHistoryParams{Page: 1, Limit: 10, StartDate: "10-03-2025"}

	resp, err := suite.service.GetHistory(ctx, params, domain.RoleAdmin)

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockStockRepo.AssertNotCalled(suite.T(), "ListTransactions", mock.Anything, mock.Anything)
}

func (suite *StockServiceTestSuite) TestGetHistory_StartAfterEndDate() {
	ctx := context.Background()
	params := dto.StockHistoryParams{Page: 1, Limit: 10, StartDate: "2025-03-20", EndDate: "2025-03-10"}

	resp, err := suite.service.GetHistory(ctx, params, domain.RoleAdmin)

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockStockRepo.AssertNotCalled(suite.T(), "ListTransactions", mock.Anything, mock.Anything)
}

// --- Trend Tests ---
func (suite *StockServiceTestSuite) localToday() time.Time {
	now := time.Now().In(suite.location)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, suite.location)
}

func (suite *StockServiceTestSuite) TestGetDailyTrend_ChainsBalances() {
	ctx := context.Background()
	days := 3
	today := suite.localToday()
	movements := []domain.DailyMovement{
		{Date: today, TotalIn: decimal.NewFromInt(50), TotalOut: decimal.NewFromInt(20)},
	}

	suite.mockStockRepo.On("BalanceBefore", ctx, mock.AnythingOfType("time.Time")).
		Return(decimal.NewFromInt(100), nil).Once()
	suite.mockStockRepo.On("DailyMovements", ctx, testTimezone, mock.AnythingOfType("time.Time")).
		Return(movements, nil).Once()

	resp, err := suite.service.GetDailyTrend(ctx, days)

	suite.Require().NoError(err)
	suite.Require().Len(resp.Points, days)
	suite.Equal(testTimezone, resp.Timezone)

	// The window opens at the seeded balance and each day closes into the
	// next day's opening.
	suite.True(resp.Points[0].OpeningStock.Equal(decimal.NewFromInt(100)))
	for i := 0; i < days-1; i++ {
		suite.True(resp.Points[i].ClosingStock.Equal(resp.Points[i+1].OpeningStock))
	}
	last := resp.Points[days-1]
	suite.True(last.Delta.Equal(decimal.NewFromInt(30)))
	suite.True(last.ClosingStock.Equal(decimal.NewFromInt(130)))
	suite.Equal(today.Format("2006-01-02"), last.Date)
	suite.mockStockRepo.AssertExpectations(suite.T())
}

func (suite *StockServiceTestSuite) TestGetDailyInOutTrend_ZeroFillsQuietDays() {
	ctx := context.Background()
	days := 7
	today := suite.localToday()
	movements := []domain.DailyMovement{
		{Date: today, TotalIn: decimal.NewFromInt(200), TotalOut: decimal.NewFromInt(80)},
	}

	suite.mockStockRepo.On("DailyMovements", ctx, testTimezone, mock.AnythingOfType("time.Time")).
		Return(movements, nil).Once()

	resp, err := suite.service.GetDailyInOutTrend(ctx, days)

	suite.Require().NoError(err)
	suite.Require().Len(resp.Points, days)
	for _, p := range resp.Points[:days-1] {
		suite.True(p.TotalIn.IsZero())
		suite.True(p.TotalOut.IsZero())
	}
	last := resp.Points[days-1]
	suite.True(last.TotalIn.Equal(decimal.NewFromInt(200)))
	suite.True(last.TotalOut.Equal(decimal.NewFromInt(80)))
	suite.mockStockRepo.AssertExpectations(suite.T())
}

// --- Run Suite ---
func TestStockService(t *testing.T) {
	suite.Run(t, new(StockServiceTestSuite))
}
