package access

import (
	"errors"

	"atuna_estate/internal/policy"
	"atuna_estate/internal/store"
)

// ErrPermissionDenied means the policy refused the action. It deliberately
// carries no hint of whether the target exists.
var ErrPermissionDenied = errors.New("permission denied")

// Actor is the authenticated identity attached to every protected request
// by the JWT middleware.
type Actor struct {
	ID   string
	Role policy.Role
}

// Service composes the authorization policy with the entity store: load the
// target when the decision needs it, ask the policy, then delegate. Store
// failures are surfaced verbatim; nothing is retried.
type Service struct {
	store *store.Store
}

func New(st *store.Store) *Service {
	return &Service{store: st}
}

// guard refuses up front when no relationship could ever allow the action,
// before the store is touched. A caller denied here cannot distinguish an
// existing target from a missing one.
func guard(actor Actor, action policy.Action, resource policy.Resource) error {
	if !policy.CouldAllow(actor.Role, action, resource) {
		return ErrPermissionDenied
	}
	return nil
}

func decide(actor Actor, action policy.Action, resource policy.Resource, rel policy.Relationship) error {
	if !policy.Decide(actor.Role, action, resource, rel) {
		return ErrPermissionDenied
	}
	return nil
}
