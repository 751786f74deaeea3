package access

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"atuna_estate/internal/models"
	"atuna_estate/internal/policy"
	"atuna_estate/internal/store"
)

func (s *Service) CreateContract(actor Actor, contract *models.Contract) error {
	if err := decide(actor, policy.Create, policy.Contract, policy.Relationship{}); err != nil {
		return err
	}
	if contract.ContractNumber == "" {
		contract.ContractNumber = newContractNumber()
	}
	return s.store.CreateContract(contract)
}

func (s *Service) GetContract(actor Actor, id string) (*models.Contract, error) {
	if err := guard(actor, policy.Read, policy.Contract); err != nil {
		return nil, err
	}
	contract, err := s.store.GetContract(id)
	if err != nil {
		return nil, err
	}
	rel := policy.Relationship{Tenant: isTenant(actor, contract)}
	if err := decide(actor, policy.Read, policy.Contract, rel); err != nil {
		// A lease the caller has no right to read looks exactly like a
		// missing one, so contract ids cannot be probed.
		return nil, store.ErrNotFound
	}
	return contract, nil
}

// ListContracts scopes rather than denies: staff and agents see everything
// the filter matches, a client's listing is forced onto their own tenancy.
func (s *Service) ListContracts(actor Actor, filter store.ContractFilter, offset, limit int) ([]models.Contract, error) {
	switch {
	case policy.Decide(actor.Role, policy.List, policy.Contract, policy.Relationship{}):
		// unrestricted listing
	case policy.Decide(actor.Role, policy.List, policy.Contract, policy.Relationship{Tenant: true}):
		filter.TenantID = actor.ID
	default:
		return nil, ErrPermissionDenied
	}
	return s.store.ListContracts(filter, offset, limit)
}

func (s *Service) UpdateContract(actor Actor, id string, patch store.ContractPatch) (*models.Contract, error) {
	if err := decide(actor, policy.Update, policy.Contract, policy.Relationship{}); err != nil {
		return nil, err
	}
	return s.store.UpdateContract(id, patch)
}

func (s *Service) DeleteContract(actor Actor, id string) error {
	if err := decide(actor, policy.Delete, policy.Contract, policy.Relationship{}); err != nil {
		return err
	}
	return s.store.DeleteContract(id)
}

func isTenant(actor Actor, contract *models.Contract) bool {
	return contract.TenantID != nil && *contract.TenantID == actor.ID
}

func newContractNumber() string {
	return fmt.Sprintf("CT-%s", strings.ToUpper(uuid.NewString()[:8]))
}
