package store

import (
	"errors"

	"atuna_estate/internal/models"

	"gorm.io/gorm"
)

// RecomputeAnalytics rebuilds the counters for one user from the live
// tables and upserts the analytics row.
func (s *Store) RecomputeAnalytics(userID string) (*models.UserAnalytics, error) {
	var analytics models.UserAnalytics
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}

		var properties, contracts int64
		if err := tx.Model(&models.Property{}).
			Where("owner_id = ?", userID).Count(&properties).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Contract{}).
			Where("tenant_id = ? AND status = ?", userID, models.ContractActive).
			Count(&contracts).Error; err != nil {
			return err
		}
		var volume float64
		err := tx.Model(&models.Payment{}).
			Where("user_id = ? AND status = ?", userID, models.PaymentCompleted).
			Select("COALESCE(SUM(amount), 0)").Scan(&volume).Error
		if err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", userID).First(&analytics).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			analytics = models.UserAnalytics{UserID: userID}
		}
		analytics.TotalProperties = int(properties)
		analytics.ActiveContracts = int(contracts)
		analytics.TotalPayments = volume
		return tx.Save(&analytics).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return &analytics, nil
}

func (s *Store) ListAnalytics(offset, limit int) ([]models.UserAnalytics, error) {
	offset, limit = clampPage(offset, limit)
	var rows []models.UserAnalytics
	err := s.db.Order("created_at").Offset(offset).Limit(limit).Find(&rows).Error
	if err != nil {
		return nil, translate(err)
	}
	return rows, nil
}
