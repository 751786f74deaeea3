package access

import (
	"atuna_estate/internal/models"
	"atuna_estate/internal/policy"
	"atuna_estate/internal/store"
)

// CreateProperty stores a new listing. Agents always become the owner of
// what they create; staff may list on behalf of another user.
func (s *Service) CreateProperty(actor Actor, property *models.Property) error {
	if err := decide(actor, policy.Create, policy.Property, policy.Relationship{}); err != nil {
		return err
	}
	if actor.Role == policy.Agent || property.OwnerID == nil {
		id := actor.ID
		property.OwnerID = &id
	}
	return s.store.CreateProperty(property)
}

func (s *Service) GetProperty(actor Actor, id string) (*models.Property, error) {
	if err := decide(actor, policy.Read, policy.Property, policy.Relationship{}); err != nil {
		return nil, err
	}
	return s.store.GetProperty(id)
}

func (s *Service) ListProperties(actor Actor, filter store.PropertyFilter, offset, limit int) ([]models.Property, error) {
	if err := decide(actor, policy.List, policy.Property, policy.Relationship{}); err != nil {
		return nil, err
	}
	return s.store.ListProperties(filter, offset, limit)
}

// AuthorizePropertyUpdate loads the property and checks the update right
// without mutating anything. Controllers use it before invoking external
// collaborators (AI description generation) so unauthorized callers never
// trigger the collaborator.
func (s *Service) AuthorizePropertyUpdate(actor Actor, id string) (*models.Property, error) {
	if err := guard(actor, policy.Update, policy.Property); err != nil {
		return nil, err
	}
	property, err := s.store.GetProperty(id)
	if err != nil {
		return nil, err
	}
	rel := policy.Relationship{Owner: owns(actor, property)}
	if err := decide(actor, policy.Update, policy.Property, rel); err != nil {
		return nil, err
	}
	return property, nil
}

func (s *Service) UpdateProperty(actor Actor, id string, patch store.PropertyPatch) (*models.Property, error) {
	if _, err := s.AuthorizePropertyUpdate(actor, id); err != nil {
		return nil, err
	}
	return s.store.UpdateProperty(id, patch)
}

func (s *Service) DeleteProperty(actor Actor, id string) error {
	if err := guard(actor, policy.Delete, policy.Property); err != nil {
		return err
	}
	property, err := s.store.GetProperty(id)
	if err != nil {
		return err
	}
	rel := policy.Relationship{Owner: owns(actor, property)}
	if err := decide(actor, policy.Delete, policy.Property, rel); err != nil {
		return err
	}
	return s.store.DeleteProperty(id)
}

func owns(actor Actor, property *models.Property) bool {
	return property.OwnerID != nil && *property.OwnerID == actor.ID
}
