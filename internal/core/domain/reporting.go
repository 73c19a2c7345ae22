package domain

import "github.com/shopspring/decimal"

// CompanyDayAmount is one (company, day-of-month) realization cell of the
// monthly trend query.
type CompanyDayAmount struct {
	CompanyID int64
	Day       int
	Amount    decimal.Decimal
}

// CompanyMonthAmount is one (company, month) aggregate of the yearly
// comparison queries.
type CompanyMonthAmount struct {
	CompanyID int64
	Month     int
	Amount    decimal.Decimal
}
