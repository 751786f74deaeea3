package access

import (
	"atuna_estate/internal/models"
	"atuna_estate/internal/policy"
	"atuna_estate/internal/store"
)

// CreatePayment records a charge for the actor. Payments are always made in
// one's own name.
func (s *Service) CreatePayment(actor Actor, payment *models.Payment) error {
	payment.UserID = actor.ID
	if err := decide(actor, policy.Create, policy.Payment, policy.Relationship{Self: true}); err != nil {
		return err
	}
	return s.store.CreatePayment(payment)
}

func (s *Service) GetPayment(actor Actor, id string) (*models.Payment, error) {
	if err := guard(actor, policy.Read, policy.Payment); err != nil {
		return nil, err
	}
	payment, err := s.store.GetPayment(id)
	if err != nil {
		return nil, err
	}
	rel := policy.Relationship{Self: payment.UserID == actor.ID}
	if err := decide(actor, policy.Read, policy.Payment, rel); err != nil {
		// Someone else's payment looks exactly like a missing one, so
		// payment ids cannot be probed.
		return nil, store.ErrNotFound
	}
	return payment, nil
}

// ListPayments lists for userID; an empty userID means the actor's own.
func (s *Service) ListPayments(actor Actor, userID string, offset, limit int) ([]models.Payment, error) {
	if userID == "" {
		userID = actor.ID
	}
	rel := policy.Relationship{Self: userID == actor.ID}
	if err := decide(actor, policy.List, policy.Payment, rel); err != nil {
		return nil, err
	}
	return s.store.ListPayments(userID, offset, limit)
}

// SettlePayment finalizes a pending charge; back office only.
func (s *Service) SettlePayment(actor Actor, id string, success bool) (*models.Payment, error) {
	if err := decide(actor, policy.Update, policy.Payment, policy.Relationship{}); err != nil {
		return nil, err
	}
	return s.store.SettlePayment(id, success)
}
