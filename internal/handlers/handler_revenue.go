package handlers

import (
	"net/http"

	"github.com/dharmawan/portledger/internal/core/domain"
	portssvc "github.com/dharmawan/portledger/internal/core/ports/services"
	"github.com/dharmawan/portledger/internal/dto"
	"github.com/dharmawan/portledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// revenueHandler handles HTTP requests for revenue monitoring.
type revenueHandler struct {
	revenueService portssvc.RevenueSvcFacade
}

func newRevenueHandler(rs portssvc.RevenueSvcFacade) *revenueHandler {
	return &revenueHandler{revenueService: rs}
}

// registerRevenueRoutes sets up the revenue routes. Reads feed the public
// dashboard; writes require a session.
func registerRevenueRoutes(rg *gin.RouterGroup, revenueService portssvc.RevenueSvcFacade, authMW gin.HandlerFunc) {
	h := newRevenueHandler(revenueService)

	revenue := rg.Group("/revenue")
	{
		revenue.GET("/companies", h.listCompanies)
		revenue.POST("/companies/seed", authMW, middleware.RequireRoles(domain.RoleAdmin), h.seedCompanies)
		revenue.GET("/targets", h.listTargets)
		revenue.POST("/targets", authMW, h.createTarget)
		revenue.GET("/realizations", h.listRealizations)
		revenue.POST("/realizations", authMW, h.createRealization)
		revenue.GET("/summary", h.getSummary)
		revenue.GET("/trend", h.getTrend)
		revenue.GET("/yearly-comparison", h.getYearlyComparison)
	}
}

// listCompanies godoc
// @Summary List active companies
// @Tags revenue
// @Produce json
// @Success 200 {array} domain.Company
// @Router /revenue/companies [get]
func (h *revenueHandler) listCompanies(c *gin.Context) {
	companies, err := h.revenueService.ListCompanies(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, companies)
}

// seedCompanies godoc
// @Summary Seed the default companies
// @Description Inserts the monitored companies if they are not present yet.
// @Tags revenue
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /revenue/companies/seed [post]
func (h *revenueHandler) seedCompanies(c *gin.Context) {
	if err := h.revenueService.SeedCompanies(c.Request.Context()); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Companies seeded successfully"})
}

// createTarget godoc
// @Summary Create or overwrite a monthly target
// @Tags revenue
// @Accept json
// @Produce json
// @Param target body dto.CreateTargetRequest true "Target"
// @Success 201 {object} domain.RevenueTarget
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /revenue/targets [post]
func (h *revenueHandler) createTarget(c *gin.Context) {
	var req dto.CreateTargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	target, err := h.revenueService.CreateOrUpdateTarget(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, target)
}

// listTargets godoc
// @Summary List monthly targets
// @Tags revenue
// @Produce json
// @Param year query int false "Year"
// @Param month query int false "Month (1-12)"
// @Param companyId query int false "Company ID"
// @Success 200 {array} domain.RevenueTarget
// @Router /revenue/targets [get]
func (h *revenueHandler) listTargets(c *gin.Context) {
	var params dto.RevenueQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	targets, err := h.revenueService.ListTargets(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, targets)
}

// createRealization godoc
// @Summary Create or overwrite a daily realization
// @Tags revenue
// @Accept json
// @Produce json
// @Param realization body dto.CreateRealizationRequest true "Realization"
// @Success 201 {object} domain.RevenueRealization
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /revenue/realizations [post]
func (h *revenueHandler) createRealization(c *gin.Context) {
	var req dto.CreateRealizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	realization, err := h.revenueService.CreateOrUpdateRealization(c.Request.Context(), req, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, realization)
}

// listRealizations godoc
// @Summary List daily realizations for a month
// @Tags revenue
// @Produce json
// @Param year query int false "Year (default current)"
// @Param month query int false "Month (default current)"
// @Param companyId query int false "Company ID"
// @Success 200 {array} domain.RevenueRealization
// @Router /revenue/realizations [get]
func (h *revenueHandler) listRealizations(c *gin.Context) {
	var params dto.RevenueQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	realizations, err := h.revenueService.ListRealizations(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, realizations)
}

// getSummary godoc
// @Summary Revenue dashboard summary
// @Description Per company today and month-to-date realization versus target.
// @Tags revenue
// @Produce json
// @Param year query int false "Year (default current)"
// @Param month query int false "Month (default current)"
// @Success 200 {object} domain.RevenueSummary
// @Router /revenue/summary [get]
func (h *revenueHandler) getSummary(c *gin.Context) {
	var params dto.RevenueQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	summary, err := h.revenueService.GetSummary(c.Request.Context(), params.Year, params.Month)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// getTrend godoc
// @Summary Daily realization trend for charting
// @Tags revenue
// @Produce json
// @Param year query int false "Year (default current)"
// @Param month query int false "Month (default current)"
// @Success 200 {object} domain.RevenueTrend
// @Router /revenue/trend [get]
func (h *revenueHandler) getTrend(c *gin.Context) {
	var params dto.RevenueQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	trend, err := h.revenueService.GetTrend(c.Request.Context(), params.Year, params.Month)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, trend)
}

// getYearlyComparison godoc
// @Summary Twelve-month target versus realized comparison
// @Tags revenue
// @Produce json
// @Param year query int false "Year (default current)"
// @Success 200 {object} domain.YearlyComparison
// @Router /revenue/yearly-comparison [get]
func (h *revenueHandler) getYearlyComparison(c *gin.Context) {
	var params dto.YearlyComparisonParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	comparison, err := h.revenueService.GetYearlyComparison(c.Request.Context(), params.Year)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, comparison)
}
