package access

import (
	"atuna_estate/internal/models"
	"atuna_estate/internal/policy"
	"atuna_estate/internal/store"
)

// CreateUser is the staff path for provisioning accounts. Self-registration
// goes through the auth controller and never consults the policy.
func (s *Service) CreateUser(actor Actor, user *models.User) error {
	if err := decide(actor, policy.Create, policy.User, policy.Relationship{}); err != nil {
		return err
	}
	return s.store.CreateUser(user)
}

func (s *Service) GetUser(actor Actor, id string) (*models.User, error) {
	rel := policy.Relationship{Self: actor.ID == id}
	if err := decide(actor, policy.Read, policy.User, rel); err != nil {
		return nil, err
	}
	return s.store.GetUser(id)
}

func (s *Service) ListUsers(actor Actor, offset, limit int) ([]models.User, error) {
	if err := decide(actor, policy.List, policy.User, policy.Relationship{}); err != nil {
		return nil, err
	}
	return s.store.ListUsers(offset, limit)
}

func (s *Service) UpdateUser(actor Actor, id string, patch store.UserPatch) (*models.User, error) {
	rel := policy.Relationship{Self: actor.ID == id}
	if err := decide(actor, policy.Update, policy.User, rel); err != nil {
		return nil, err
	}
	return s.store.UpdateUser(id, patch)
}

// DeleteUser deactivates: the account row and everything referencing it
// stay in place.
func (s *Service) DeleteUser(actor Actor, id string) error {
	rel := policy.Relationship{Self: actor.ID == id}
	if err := decide(actor, policy.Delete, policy.User, rel); err != nil {
		return err
	}
	return s.store.DeactivateUser(id)
}

// PurgeUser hard-deletes an account. Only staff qualify: the decision is
// taken without the Self relationship, which rules everyone else out.
func (s *Service) PurgeUser(actor Actor, id string) error {
	if err := decide(actor, policy.Delete, policy.User, policy.Relationship{}); err != nil {
		return err
	}
	return s.store.PurgeUser(id)
}

func (s *Service) GetBalance(actor Actor, userID string) (*models.Balance, error) {
	rel := policy.Relationship{Self: actor.ID == userID}
	if err := decide(actor, policy.Read, policy.Balance, rel); err != nil {
		return nil, err
	}
	return s.store.GetBalance(userID)
}

// GetAnalytics recomputes and returns one user's marketplace counters.
// Analytics are aggregated user data, so they carry the user-list gate.
func (s *Service) GetAnalytics(actor Actor, userID string) (*models.UserAnalytics, error) {
	if err := decide(actor, policy.List, policy.User, policy.Relationship{}); err != nil {
		return nil, err
	}
	return s.store.RecomputeAnalytics(userID)
}

func (s *Service) ListAnalytics(actor Actor, offset, limit int) ([]models.UserAnalytics, error) {
	if err := decide(actor, policy.List, policy.User, policy.Relationship{}); err != nil {
		return nil, err
	}
	return s.store.ListAnalytics(offset, limit)
}
