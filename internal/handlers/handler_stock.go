package handlers

import (
	"context"
	"net/http"

	"github.com/dharmawan/portledger/internal/core/domain"
	portssvc "github.com/dharmawan/portledger/internal/core/ports/services"
	"github.com/dharmawan/portledger/internal/dto"
	"github.com/dharmawan/portledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// stockHandler handles HTTP requests for the fuel stock ledger.
type stockHandler struct {
	stockService portssvc.StockSvcFacade
}

func newStockHandler(ss portssvc.StockSvcFacade) *stockHandler {
	return &stockHandler{stockService: ss}
}

// registerStockRoutes sets up the stock ledger routes. The summary is public
// for the dashboard; recording entries is role gated.
func registerStockRoutes(rg *gin.RouterGroup, stockService portssvc.StockSvcFacade, authMW gin.HandlerFunc) {
	h := newStockHandler(stockService)

	stock := rg.Group("/stock")
	{
		stock.GET("/summary", h.getSummary)
		stock.POST("/in", authMW, middleware.RequireRoles(domain.RoleAdmin), h.recordIn)
		stock.POST("/out", authMW, middleware.RequireRoles(domain.RoleOperational), h.recordOut)
		stock.GET("/history", authMW, middleware.RequireRoles(domain.RoleAdmin, domain.RoleOperational), h.getHistory)
		stock.GET("/trend", authMW, h.getTrend)
		stock.GET("/trend/in-out", authMW, h.getInOutTrend)
	}
}

// getSummary godoc
// @Summary Stock summary
// @Description Current balance plus today's opening, in, out and closing figures.
// @Tags stock
// @Produce json
// @Success 200 {object} dto.StockSummaryResponse
// @Router /stock/summary [get]
func (h *stockHandler) getSummary(c *gin.Context) {
	summary, err := h.stockService.GetSummary(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// recordIn godoc
// @Summary Record a stock-in entry
// @Tags stock
// @Accept json
// @Produce json
// @Param entry body dto.CreateStockEntryRequest true "Entry"
// @Success 201 {object} domain.Transaction
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /stock/in [post]
func (h *stockHandler) recordIn(c *gin.Context) {
	h.recordEntry(c, h.stockService.RecordStockIn)
}

// recordOut godoc
// @Summary Record a stock-out entry
// @Description Rejected when the requested amount exceeds the current balance.
// @Tags stock
// @Accept json
// @Produce json
// @Param entry body dto.CreateStockEntryRequest true "Entry"
// @Success 201 {object} domain.Transaction
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /stock/out [post]
func (h *stockHandler) recordOut(c *gin.Context) {
	h.recordEntry(c, h.stockService.RecordStockOut)
}

func (h *stockHandler) recordEntry(c *gin.Context, record func(ctx context.Context, req dto.CreateStockEntryRequest, actingUserID string) (*domain.Transaction, error)) {
	var req dto.CreateStockEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	txn, err := record(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, txn)
}

// getHistory godoc
// @Summary Paginated transaction history
// @Description Operational users only see stock-out entries regardless of filters.
// @Tags stock
// @Produce json
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(10)
// @Param type query string false "IN or OUT"
// @Param startDate query string false "YYYY-MM-DD"
// @Param endDate query string false "YYYY-MM-DD"
// @Param search query string false "Description or username substring"
// @Success 200 {object} dto.StockHistoryResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /stock/history [get]
func (h *stockHandler) getHistory(c *gin.Context) {
	var params dto.StockHistoryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	role, _ := middleware.GetUserRoleFromContext(c)
	history, err := h.stockService.GetHistory(c.Request.Context(), params, role)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}

// getTrend godoc
// @Summary Daily running-balance trend
// @Tags stock
// @Produce json
// @Param days query int false "Window size in days (1-30)" default(7)
// @Success 200 {object} dto.StockTrendResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /stock/trend [get]
func (h *stockHandler) getTrend(c *gin.Context) {
	var params dto.TrendParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	trend, err := h.stockService.GetDailyTrend(c.Request.Context(), params.Days)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, trend)
}

// getInOutTrend godoc
// @Summary Daily in/out totals trend
// @Tags stock
// @Produce json
// @Param days query int false "Window size in days (1-30)" default(7)
// @Success 200 {object} dto.StockInOutTrendResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /stock/trend/in-out [get]
func (h *stockHandler) getInOutTrend(c *gin.Context) {
	var params dto.TrendParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	trend, err := h.stockService.GetDailyInOutTrend(c.Request.Context(), params.Days)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, trend)
}
