package store

import (
	"atuna_estate/internal/models"

	"gorm.io/gorm"
)

var userRoles = []string{
	models.RoleAdmin, models.RoleSubAdmin, models.RoleAgent, models.RoleClient,
}

// UserPatch carries partial user updates. Role is deliberately absent: it is
// fixed at creation.
type UserPatch struct {
	Email         *string `json:"email"`
	PasswordHash  *string `json:"-"`
	FirstName     *string `json:"first_name"`
	LastName      *string `json:"last_name"`
	Phone         *string `json:"phone"`
	LicenseNumber *string `json:"license_number"`
	CompanyName   *string `json:"company_name"`
}

// CreateUser stores a new user together with a zero balance, in one
// transaction so the balance is available the moment the user exists.
func (s *Store) CreateUser(user *models.User) error {
	if !contains(userRoles, user.Role) {
		return constraintErr("unknown role %q", user.Role)
	}
	if user.Status == "" {
		user.Status = models.StatusActive
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		balance := models.Balance{UserID: user.ID, Amount: 0}
		return tx.Create(&balance).Error
	})
	return translate(err)
}

func (s *Store) GetUser(id string) (*models.User, error) {
	var user models.User
	if err := s.db.Preload("Balance").First(&user, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// GetActiveUserByEmail is the login lookup; deactivated and suspended
// accounts are invisible to it.
func (s *Store) GetActiveUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.db.Where("email = ? AND status = ?", email, models.StatusActive).
		First(&user).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *Store) ListUsers(offset, limit int) ([]models.User, error) {
	offset, limit = clampPage(offset, limit)
	var users []models.User
	err := s.db.Order("created_at").Offset(offset).Limit(limit).Find(&users).Error
	if err != nil {
		return nil, translate(err)
	}
	return users, nil
}

func (s *Store) UpdateUser(id string, patch UserPatch) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	if patch.Email != nil {
		user.Email = *patch.Email
	}
	if patch.PasswordHash != nil {
		user.PasswordHash = *patch.PasswordHash
	}
	if patch.FirstName != nil {
		user.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		user.LastName = *patch.LastName
	}
	if patch.Phone != nil {
		user.Phone = *patch.Phone
	}
	if patch.LicenseNumber != nil {
		user.LicenseNumber = *patch.LicenseNumber
	}
	if patch.CompanyName != nil {
		user.CompanyName = *patch.CompanyName
	}
	if err := s.db.Save(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// DeactivateUser is the public delete: a lifecycle transition that keeps
// the row and every reference to it intact.
func (s *Store) DeactivateUser(id string) error {
	res := s.db.Model(&models.User{}).Where("id = ?", id).
		Update("status", models.StatusDeactivated)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// PurgeUser hard-deletes a user. References survive with nulled pointers:
// contracts keep running without a tenant, messages lose their sender, and
// owned properties become unowned rather than disappearing.
func (s *Store) PurgeUser(id string) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, "id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Contract{}).Where("tenant_id = ?", id).
			Update("tenant_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Message{}).Where("sender_id = ?", id).
			Update("sender_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Property{}).Where("owner_id = ?", id).
			Update("owner_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Balance{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
	return translate(err)
}

func (s *Store) GetBalance(userID string) (*models.Balance, error) {
	var balance models.Balance
	if err := s.db.First(&balance, "user_id = ?", userID).Error; err != nil {
		return nil, translate(err)
	}
	return &balance, nil
}
