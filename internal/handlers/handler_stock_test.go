package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dharmawan/portledger/internal/apperrors"
	"github.com/dharmawan/portledger/internal/core/domain"
	portssvc "github.com/dharmawan/portledger/internal/core/ports/services"
	"github.com/dharmawan/portledger/internal/dto"
	"github.com/dharmawan/portledger/internal/handlers"
	"github.com/dharmawan/portledger/internal/platform/config"
	"github.com/dharmawan/portledger/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock StockService ---
type MockStockService struct {
	mock.Mock
}

func (m *MockStockService) RecordStockIn(ctx context.Context, req dto.CreateStockEntryRequest, actingUserID string) (*domain.Transaction, error) {
	args := m.Called(ctx, req, actingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockStockService) RecordStockOut(ctx context.Context, req dto.CreateStockEntryRequest, actingUserID string) (*domain.Transaction, error) {
	args := m.Called(ctx, req, actingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockStockService) GetSummary(ctx context.Context) (*dto.StockSummaryResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.StockSummaryResponse), args.Error(1)
}
func (m *MockStockService) GetHistory(ctx context.Context, params dto.StockHistoryParams, actingRole string) (*dto.StockHistoryResponse, error) {
	args := m.Called(ctx, params, actingRole)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.StockHistoryResponse), args.Error(1)
}
func (m *MockStockService) GetDailyTrend(ctx context.Context, days int) (*dto.StockTrendResponse, error) {
	args := m.Called(ctx, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.StockTrendResponse), args.Error(1)
}
func (m *MockStockService) GetDailyInOutTrend(ctx context.Context, days int) (*dto.StockInOutTrendResponse, error) {
	args := m.Called(ctx, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.StockInOutTrendResponse), args.Error(1)
}

var _ portssvc.StockSvcFacade = (*MockStockService)(nil)

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) DeleteUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// --- Mock AuthService ---
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*dto.AuthSessionResponse, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AuthSessionResponse), args.Error(1)
}
func (m *MockAuthService) Refresh(ctx context.Context, rawToken string) (*dto.AuthSessionResponse, error) {
	args := m.Called(ctx, rawToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AuthSessionResponse), args.Error(1)
}
func (m *MockAuthService) Logout(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
func (m *MockAuthService) Profile(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

var _ portssvc.AuthSvcFacade = (*MockAuthService)(nil)

// --- Mock RevenueService ---
type MockRevenueService struct {
	mock.Mock
}

func (m *MockRevenueService) ListCompanies(ctx context.Context) ([]domain.Company, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Company), args.Error(1)
}
func (m *MockRevenueService) SeedCompanies(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockRevenueService) CreateOrUpdateTarget(ctx context.Context, req dto.CreateTargetRequest) (*domain.RevenueTarget, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RevenueTarget), args.Error(1)
}
func (m *MockRevenueService) ListTargets(ctx context.Context, params dto.RevenueQueryParams) ([]domain.RevenueTarget, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RevenueTarget), args.Error(1)
}
func (m *MockRevenueService) CreateOrUpdateRealization(ctx context.Context, req dto.CreateRealizationRequest, actingUserID string) (*domain.RevenueRealization, error) {
	args := m.Called(ctx, req, actingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RevenueRealization), args.Error(1)
}
func (m *MockRevenueService) ListRealizations(ctx context.Context, params dto.RevenueQueryParams) ([]domain.RevenueRealization, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RevenueRealization), args.Error(1)
}
func (m *MockRevenueService) GetSummary(ctx context.Context, year, month int) (*domain.RevenueSummary, error) {
	args := m.Called(ctx, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RevenueSummary), args.Error(1)
}
func (m *MockRevenueService) GetTrend(ctx context.Context, year, month int) (*domain.RevenueTrend, error) {
	args := m.Called(ctx, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RevenueTrend), args.Error(1)
}
func (m *MockRevenueService) GetYearlyComparison(ctx context.Context, year int) (*domain.YearlyComparison, error) {
	args := m.Called(ctx, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.YearlyComparison), args.Error(1)
}

var _ portssvc.RevenueSvcFacade = (*MockRevenueService)(nil)

// --- Mock SheetsService ---
type MockSheetsService struct {
	mock.Mock
}

func (m *MockSheetsService) Status() dto.SyncStatusResponse {
	args := m.Called()
	return args.Get(0).(dto.SyncStatusResponse)
}
func (m *MockSheetsService) SyncNow(ctx context.Context) dto.SyncResultResponse {
	args := m.Called(ctx)
	return args.Get(0).(dto.SyncResultResponse)
}
func (m *MockSheetsService) HandleWebhook(ctx context.Context, req dto.SheetsWebhookRequest) dto.SyncResultResponse {
	args := m.Called(ctx, req)
	return args.Get(0).(dto.SyncResultResponse)
}
func (m *MockSheetsService) Run(ctx context.Context) {
	m.Called(ctx)
}

var _ portssvc.SheetsSvcFacade = (*MockSheetsService)(nil)

// --- Test Suite ---
type StockHandlerTestSuite struct {
	suite.Suite
	router           *gin.Engine
	mockStockService *MockStockService
	jwtSecret        string
}

func (suite *StockHandlerTestSuite) generateTestToken(userID, role string) string {
	token, err := utils.GenerateJWT(userID, "tester", role, suite.jwtSecret, time.Hour, "portledger-test")
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return token
}

func (suite *StockHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.mockStockService = new(MockStockService)

	cfg := &config.Config{
		JWTSecret:    suite.jwtSecret,
		IsProduction: true, // skip swagger route registration
	}
	handlers.RegisterRoutes(suite.router, cfg, &portssvc.ServiceContainer{
		User:    new(MockUserService),
		Auth:    new(MockAuthService),
		Stock:   suite.mockStockService,
		Revenue: new(MockRevenueService),
		Sheets:  new(MockSheetsService),
	})
}

func (suite *StockHandlerTestSuite) postJSON(url, token string, body any) *httptest.ResponseRecorder {
	payload, err := json.Marshal(body)
	suite.Require().NoError(err)
	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *StockHandlerTestSuite) TestGetSummary_PublicEndpoint() {
	expected := &dto.StockSummaryResponse{
		CurrentStock:  decimal.NewFromInt(380),
		TodayStockOut: decimal.NewFromInt(70),
		TodayUsage:    decimal.NewFromInt(70),
	}
	suite.mockStockService.On("GetSummary", mock.Anything).Return(expected, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/stock/summary", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	var body dto.StockSummaryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.True(body.CurrentStock.Equal(expected.CurrentStock))
	suite.mockStockService.AssertExpectations(suite.T())
}

func (suite *StockHandlerTestSuite) TestRecordIn_RequiresAuth() {
	w := suite.postJSON("/api/v1/stock/in", "", gin.H{"amount": "100"})

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockStockService.AssertNotCalled(suite.T(), "RecordStockIn", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *StockHandlerTestSuite) TestRecordIn_OperationalRoleForbidden() {
	token := suite.generateTestToken(uuid.NewString(), domain.RoleOperational)

	w := suite.postJSON("/api/v1/stock/in", token, gin.H{"amount": "100"})

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockStockService.AssertNotCalled(suite.T(), "RecordStockIn", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *StockHandlerTestSuite) TestRecordIn_AdminSuccess() {
	userID := uuid.NewString()
	token := suite.generateTestToken(userID, domain.RoleAdmin)
	expected := &domain.Transaction{
		TransactionID: uuid.NewString(),
		Type:          domain.StockIn,
		Amount:        decimal.NewFromInt(100),
		UserID:        userID,
	}

	suite.mockStockService.On("RecordStockIn", mock.Anything,
		mock.MatchedBy(func(req dto.CreateStockEntryRequest) bool {
			return req.Amount.Equal(decimal.NewFromInt(100))
		}),
		userID, // acting user comes from the token subject
	).Return(expected, nil).Once()

	w := suite.postJSON("/api/v1/stock/in", token, gin.H{"amount": "100", "description": "delivery"})

	suite.Equal(http.StatusCreated, w.Code)
	var body domain.Transaction
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(expected.TransactionID, body.TransactionID)
	suite.mockStockService.AssertExpectations(suite.T())
}

func (suite *StockHandlerTestSuite) TestRecordOut_InsufficientStock() {
	userID := uuid.NewString()
	token := suite.generateTestToken(userID, domain.RoleOperational)

	suite.mockStockService.On("RecordStockOut", mock.Anything,
		mock.AnythingOfType("dto.CreateStockEntryRequest"), userID).
		Return(nil, apperrors.ErrInsufficientStock).Once()

	w := suite.postJSON("/api/v1/stock/out", token, gin.H{"amount": "99999"})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockStockService.AssertExpectations(suite.T())
}

func (suite *StockHandlerTestSuite) TestGetHistory_PassesRoleFromToken() {
	userID := uuid.NewString()
	token := suite.generateTestToken(userID, domain.RoleOperational)
	expected := &dto.StockHistoryResponse{
		Data: []dto.StockHistoryItem{},
		Meta: dto.PageMeta{CurrentPage: 1, ItemsPerPage: 10},
	}

	suite.mockStockService.On("GetHistory", mock.Anything,
		mock.MatchedBy(func(params dto.StockHistoryParams) bool {
			return params.Page == 1 && params.Limit == 10
		}),
		domain.RoleOperational,
	).Return(expected, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/stock/history", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockStockService.AssertExpectations(suite.T())
}

func (suite *StockHandlerTestSuite) TestGetTrend_DefaultsToSevenDays() {
	token := suite.generateTestToken(uuid.NewString(), domain.RoleAdmin)
	expected := &dto.StockTrendResponse{Days: 7, Points: []domain.StockTrendPoint{}}

	suite.mockStockService.On("GetDailyTrend", mock.Anything, 7).Return(expected, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/stock/trend", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockStockService.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestStockHandler(t *testing.T) {
	suite.Run(t, new(StockHandlerTestSuite))
}
