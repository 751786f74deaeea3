package store

import (
	"time"

	"atuna_estate/internal/models"
)

// ContractPatch carries partial contract updates.
type ContractPatch struct {
	TenantID    *string    `json:"tenant_id"`
	Content     *string    `json:"content"`
	Status      *string    `json:"status"`
	MonthlyRent *float64   `json:"monthly_rent"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
}

// ContractFilter narrows listings. TenantID is how the access layer scopes
// a client to their own leases.
type ContractFilter struct {
	TenantID   string
	PropertyID string
	Status     string
}

func (s *Store) CreateContract(contract *models.Contract) error {
	if contract.Status == "" {
		contract.Status = models.ContractPending
	}
	if !contains(models.ContractStatuses, contract.Status) {
		return constraintErr("unknown contract status %q", contract.Status)
	}
	if contract.ContractNumber == "" {
		return validationErr("contract number is required")
	}
	// The referenced property must exist; the SQLite test backend does not
	// enforce the foreign key for us.
	var count int64
	if err := s.db.Model(&models.Property{}).
		Where("id = ?", contract.PropertyID).Count(&count).Error; err != nil {
		return translate(err)
	}
	if count == 0 {
		return constraintErr("property %s does not exist", contract.PropertyID)
	}
	return translate(s.db.Create(contract).Error)
}

func (s *Store) GetContract(id string) (*models.Contract, error) {
	var contract models.Contract
	if err := s.db.First(&contract, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &contract, nil
}

func (s *Store) ListContracts(filter ContractFilter, offset, limit int) ([]models.Contract, error) {
	offset, limit = clampPage(offset, limit)
	query := s.db.Order("created_at").Offset(offset).Limit(limit)
	if filter.TenantID != "" {
		query = query.Where("tenant_id = ?", filter.TenantID)
	}
	if filter.PropertyID != "" {
		query = query.Where("property_id = ?", filter.PropertyID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	var contracts []models.Contract
	if err := query.Find(&contracts).Error; err != nil {
		return nil, translate(err)
	}
	return contracts, nil
}

func (s *Store) UpdateContract(id string, patch ContractPatch) (*models.Contract, error) {
	var contract models.Contract
	if err := s.db.First(&contract, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	if patch.TenantID != nil {
		contract.TenantID = patch.TenantID
	}
	if patch.Content != nil {
		contract.Content = *patch.Content
	}
	if patch.Status != nil {
		if !contains(models.ContractStatuses, *patch.Status) {
			return nil, constraintErr("unknown contract status %q", *patch.Status)
		}
		contract.Status = *patch.Status
	}
	if patch.MonthlyRent != nil {
		contract.MonthlyRent = *patch.MonthlyRent
	}
	if patch.StartDate != nil {
		contract.StartDate = patch.StartDate
	}
	if patch.EndDate != nil {
		contract.EndDate = patch.EndDate
	}
	if err := s.db.Save(&contract).Error; err != nil {
		return nil, translate(err)
	}
	return &contract, nil
}

func (s *Store) DeleteContract(id string) error {
	res := s.db.Where("id = ?", id).Delete(&models.Contract{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
