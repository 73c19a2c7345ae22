package domain

// Company is a static reference entity that targets and realizations
// point at. Companies are soft-disabled via IsActive, never hard-deleted
// while referenced.
type Company struct {
	CompanyID int64  `json:"id"`
	Name      string `json:"name"`
	Code      string `json:"code"`
	IsActive  bool   `json:"isActive"`
}
