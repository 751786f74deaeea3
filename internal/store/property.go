package store

import (
	"atuna_estate/internal/models"

	"gorm.io/gorm"
)

// PropertyPatch carries partial property updates.
type PropertyPatch struct {
	Title         *string  `json:"title"`
	Description   *string  `json:"description"`
	Price         *float64 `json:"price"`
	Location      *string  `json:"location"`
	Type          *string  `json:"type"`
	Status        *string  `json:"status"`
	Geometry      []byte   `json:"-"`
	ARModelURL    *string  `json:"ar_model_url"`
	ARSceneConfig *string  `json:"-"`
}

// PropertyFilter narrows listings.
type PropertyFilter struct {
	OwnerID string
	Type    string
	Status  string
}

func validateProperty(price float64, ptype, status string) error {
	if price <= 0 {
		return constraintErr("price must be positive, got %v", price)
	}
	if ptype != "" && !contains(models.PropertyTypes, ptype) {
		return constraintErr("unknown property type %q", ptype)
	}
	if status != "" && !contains(models.PropertyStatuses, status) {
		return constraintErr("unknown property status %q", status)
	}
	return nil
}

func (s *Store) CreateProperty(property *models.Property) error {
	if property.Status == "" {
		property.Status = models.PropertyAvailable
	}
	if err := validateProperty(property.Price, property.Type, property.Status); err != nil {
		return err
	}
	return translate(s.db.Create(property).Error)
}

func (s *Store) GetProperty(id string) (*models.Property, error) {
	var property models.Property
	if err := s.db.First(&property, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &property, nil
}

func (s *Store) ListProperties(filter PropertyFilter, offset, limit int) ([]models.Property, error) {
	offset, limit = clampPage(offset, limit)
	query := s.db.Order("created_at").Offset(offset).Limit(limit)
	if filter.OwnerID != "" {
		query = query.Where("owner_id = ?", filter.OwnerID)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	var properties []models.Property
	if err := query.Find(&properties).Error; err != nil {
		return nil, translate(err)
	}
	return properties, nil
}

func (s *Store) UpdateProperty(id string, patch PropertyPatch) (*models.Property, error) {
	var property models.Property
	if err := s.db.First(&property, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	if patch.Title != nil {
		property.Title = *patch.Title
	}
	if patch.Description != nil {
		property.Description = *patch.Description
	}
	if patch.Price != nil {
		property.Price = *patch.Price
	}
	if patch.Location != nil {
		property.Location = *patch.Location
	}
	if patch.Type != nil {
		property.Type = *patch.Type
	}
	if patch.Status != nil {
		property.Status = *patch.Status
	}
	if patch.Geometry != nil {
		property.Geometry = patch.Geometry
	}
	if patch.ARModelURL != nil {
		property.ARModelURL = *patch.ARModelURL
	}
	if patch.ARSceneConfig != nil {
		property.ARSceneConfig = *patch.ARSceneConfig
	}
	if err := validateProperty(property.Price, property.Type, property.Status); err != nil {
		return nil, err
	}
	if err := s.db.Save(&property).Error; err != nil {
		return nil, translate(err)
	}
	return &property, nil
}

// DeleteProperty removes a property and cascades to its contracts inside
// one transaction.
func (s *Store) DeleteProperty(id string) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var property models.Property
		if err := tx.First(&property, "id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Where("property_id = ?", id).Delete(&models.Contract{}).Error; err != nil {
			return err
		}
		return tx.Delete(&property).Error
	})
	return translate(err)
}
