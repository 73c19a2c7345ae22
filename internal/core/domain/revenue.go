package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RevenueTarget is the planned monthly revenue for a company.
// Unique per (company, year, month); creating it again overwrites the amount.
type RevenueTarget struct {
	TargetID     string          `json:"id"`
	CompanyID    int64           `json:"companyId"`
	Year         int             `json:"year"`
	Month        int             `json:"month"`
	TargetAmount decimal.Decimal `json:"targetAmount"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
	Company      *Company        `json:"company,omitempty"`
}

// RevenueRealization is the revenue actually recorded for a company on a
// calendar day. Unique per (company, date) with upsert semantics.
type RevenueRealization struct {
	RealizationID string          `json:"id"`
	CompanyID     int64           `json:"companyId"`
	Date          time.Time       `json:"date"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description,omitempty"`
	UserID        string          `json:"userId,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
	Company       *Company        `json:"company,omitempty"`
}

// RevenueFigures pairs a realized amount with its target and attainment.
type RevenueFigures struct {
	Realisasi  decimal.Decimal `json:"realisasi"`
	Target     decimal.Decimal `json:"target"`
	Percentage float64         `json:"percentage"`
}

// CompanyRevenueSummary is one company's row on the revenue dashboard.
type CompanyRevenueSummary struct {
	Company Company        `json:"company"`
	Today   RevenueFigures `json:"today"`
	Month   RevenueFigures `json:"month"`
}

// RevenueSummary is the full dashboard payload for a month.
type RevenueSummary struct {
	Year      int                     `json:"year"`
	Month     int                     `json:"month"`
	Date      string                  `json:"date"`
	Companies []CompanyRevenueSummary `json:"companies"`
}

// RevenueTrendDataset is one company's zero-filled daily series for a month,
// scaled to millions for charting.
type RevenueTrendDataset struct {
	Company     string    `json:"company"`
	CompanyName string    `json:"companyName"`
	Data        []float64 `json:"data"`
}

// RevenueTrend is the per-day realization chart payload.
type RevenueTrend struct {
	Year     int                   `json:"year"`
	Month    int                   `json:"month"`
	Labels   []string              `json:"labels"`
	Datasets []RevenueTrendDataset `json:"datasets"`
}

// MonthlyComparisonPoint is one month of the year-over-year chart.
type MonthlyComparisonPoint struct {
	Month    int             `json:"month"`
	Target   decimal.Decimal `json:"target"`
	Realized decimal.Decimal `json:"realized"`
}

// CompanyYearlyComparison is one company's twelve-point target-vs-realized series.
type CompanyYearlyComparison struct {
	Company     string                   `json:"company"`
	CompanyName string                   `json:"companyName"`
	Months      []MonthlyComparisonPoint `json:"months"`
}

// YearlyComparison is the full year-over-year chart payload.
type YearlyComparison struct {
	Year      int                       `json:"year"`
	Companies []CompanyYearlyComparison `json:"companies"`
}
