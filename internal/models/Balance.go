package models

// Balance is the 1:1 wallet for a user. Amount never goes below zero and is
// only mutated through payment settlement.
type Balance struct {
	Base
	UserID   string  `json:"user_id" gorm:"type:uuid;uniqueIndex;not null"`
	Amount   float64 `json:"amount" gorm:"not null;default:0"`
	Currency string  `json:"currency" gorm:"size:3;default:PHP"`
}
