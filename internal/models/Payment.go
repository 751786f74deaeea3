package models

// Payment states.
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
)

// PaymentStatuses enumerates the accepted status values.
var PaymentStatuses = []string{PaymentPending, PaymentCompleted, PaymentFailed}

// Payment records one gateway charge for a user. TransactionID is the
// external gateway reference and must be unique when present.
type Payment struct {
	Base
	UserID        string  `json:"user_id" gorm:"type:uuid;index;not null"`
	Amount        float64 `json:"amount" gorm:"not null"`
	Status        string  `json:"status" gorm:"index;default:pending"`
	TransactionID *string `json:"transaction_id" gorm:"uniqueIndex"`
	QRCodeURL     string  `json:"qr_code_url"`
	Description   string  `json:"description"`
}
