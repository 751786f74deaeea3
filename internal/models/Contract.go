package models

import "time"

// Contract states.
const (
	ContractPending = "pending"
	ContractActive  = "active"
	ContractExpired = "expired"
)

// ContractStatuses enumerates the accepted status values.
var ContractStatuses = []string{ContractPending, ContractActive, ContractExpired}

// Contract is a lease between a property and a tenant user. Deleting the
// property deletes its contracts; purging the tenant user only nulls TenantID.
type Contract struct {
	Base
	ContractNumber string  `json:"contract_number" gorm:"uniqueIndex;not null"`
	PropertyID     string  `json:"property_id" gorm:"type:uuid;index;not null"`
	TenantID       *string `json:"tenant_id" gorm:"type:uuid;index"`

	Status      string  `json:"status" gorm:"index;default:pending"`
	Content     string  `json:"content" gorm:"type:text;not null"`
	MonthlyRent float64 `json:"monthly_rent"`

	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
}
