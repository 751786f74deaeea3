package store

import (
	"atuna_estate/internal/models"

	"gorm.io/gorm"
)

func (s *Store) CreatePayment(payment *models.Payment) error {
	if payment.Amount <= 0 {
		return constraintErr("payment amount must be positive, got %v", payment.Amount)
	}
	if payment.Status == "" {
		payment.Status = models.PaymentPending
	}
	if !contains(models.PaymentStatuses, payment.Status) {
		return constraintErr("unknown payment status %q", payment.Status)
	}
	return translate(s.db.Create(payment).Error)
}

func (s *Store) GetPayment(id string) (*models.Payment, error) {
	var payment models.Payment
	if err := s.db.First(&payment, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &payment, nil
}

func (s *Store) ListPayments(userID string, offset, limit int) ([]models.Payment, error) {
	offset, limit = clampPage(offset, limit)
	query := s.db.Order("created_at").Offset(offset).Limit(limit)
	if userID != "" {
		query = query.Where("user_id = ?", userID)
	}
	var payments []models.Payment
	if err := query.Find(&payments).Error; err != nil {
		return nil, translate(err)
	}
	return payments, nil
}

// SettlePayment finalizes a pending payment. On success it flips the status
// to completed and credits the payer's balance in the same transaction; on
// failure it only marks the payment failed. Settling twice is a constraint
// violation so a balance can never be credited twice for one charge.
func (s *Store) SettlePayment(id string, success bool) (*models.Payment, error) {
	var payment models.Payment
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&payment, "id = ?", id).Error; err != nil {
			return err
		}
		if payment.Status != models.PaymentPending {
			return constraintErr("payment %s already settled as %s", id, payment.Status)
		}
		if !success {
			payment.Status = models.PaymentFailed
			return tx.Save(&payment).Error
		}
		payment.Status = models.PaymentCompleted
		if err := tx.Save(&payment).Error; err != nil {
			return err
		}
		var balance models.Balance
		if err := tx.First(&balance, "user_id = ?", payment.UserID).Error; err != nil {
			return err
		}
		balance.Amount += payment.Amount
		if balance.Amount < 0 {
			return constraintErr("balance for user %s would go negative", payment.UserID)
		}
		return tx.Save(&balance).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return &payment, nil
}
