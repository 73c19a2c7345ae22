package handlers

import (
	"net/http"

	portssvc "github.com/dharmawan/portledger/internal/core/ports/services"
	"github.com/dharmawan/portledger/internal/dto"
	"github.com/gin-gonic/gin"
)

// sheetsHandler handles HTTP requests for the spreadsheet ingestion.
type sheetsHandler struct {
	sheetsService portssvc.SheetsSvcFacade
}

func newSheetsHandler(ss portssvc.SheetsSvcFacade) *sheetsHandler {
	return &sheetsHandler{sheetsService: ss}
}

// registerSheetsRoutes sets up the ingestion routes. The webhook is public
// because the spreadsheet-side script cannot hold a session; it is validated
// against the configured spreadsheet id instead.
func registerSheetsRoutes(rg *gin.RouterGroup, sheetsService portssvc.SheetsSvcFacade, authMW gin.HandlerFunc) {
	h := newSheetsHandler(sheetsService)

	sheets := rg.Group("/sheets")
	{
		sheets.GET("/status", h.getStatus)
		sheets.POST("/sync", authMW, h.syncNow)
		sheets.POST("/webhook", h.webhook)
	}
}

// getStatus godoc
// @Summary Ingestion status
// @Tags sheets
// @Produce json
// @Success 200 {object} dto.SyncStatusResponse
// @Router /sheets/status [get]
func (h *sheetsHandler) getStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.sheetsService.Status())
}

// syncNow godoc
// @Summary Trigger a sync now
// @Description Runs one ingestion pass; failures are reported in the result body.
// @Tags sheets
// @Produce json
// @Success 200 {object} dto.SyncResultResponse
// @Security BearerAuth
// @Router /sheets/sync [post]
func (h *sheetsHandler) syncNow(c *gin.Context) {
	c.JSON(http.StatusOK, h.sheetsService.SyncNow(c.Request.Context()))
}

// webhook godoc
// @Summary Spreadsheet change notification
// @Description Called by the sheet-side script; a mismatched spreadsheet id yields a failed result, not an error status.
// @Tags sheets
// @Accept json
// @Produce json
// @Param notification body dto.SheetsWebhookRequest true "Change notification"
// @Success 200 {object} dto.SyncResultResponse
// @Failure 400 {object} ErrorResponse
// @Router /sheets/webhook [post]
func (h *sheetsHandler) webhook(c *gin.Context) {
	var req dto.SheetsWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.sheetsService.HandleWebhook(c.Request.Context(), req))
}
