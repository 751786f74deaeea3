package models

// UserAnalytics carries per-user marketplace counters, recomputed on demand
// rather than maintained incrementally.
type UserAnalytics struct {
	Base
	UserID string `json:"user_id" gorm:"type:uuid;uniqueIndex;not null"`

	TotalProperties int     `json:"total_properties"`
	ActiveContracts int     `json:"active_contracts"`
	TotalPayments   float64 `json:"total_payments"`
}
