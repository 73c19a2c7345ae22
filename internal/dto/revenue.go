package dto

import "github.com/shopspring/decimal"

// CreateTargetRequest is the payload for POST /revenue/targets.
type CreateTargetRequest struct {
	CompanyID    int64           `json:"companyId" binding:"required"`
	Year         int             `json:"year" binding:"required,min=2020,max=2100"`
	Month        int             `json:"month" binding:"required,min=1,max=12"`
	TargetAmount decimal.Decimal `json:"targetAmount" binding:"required"`
}

// CreateRealizationRequest is the payload for POST /revenue/realizations.
// Date is a calendar day in YYYY-MM-DD form.
type CreateRealizationRequest struct {
	CompanyID   int64           `json:"companyId" binding:"required"`
	Date        string          `json:"date" binding:"required,datetime=2006-01-02"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description"`
}

// RevenueQueryParams filters listings, summary and trend by period.
type RevenueQueryParams struct {
	Year      int   `form:"year" binding:"omitempty,min=2020,max=2100"`
	Month     int   `form:"month" binding:"omitempty,min=1,max=12"`
	CompanyID int64 `form:"companyId" binding:"omitempty,min=1"`
}

// YearlyComparisonParams filters the year-over-year chart.
type YearlyComparisonParams struct {
	Year int `form:"year" binding:"omitempty,min=2020,max=2100"`
}
