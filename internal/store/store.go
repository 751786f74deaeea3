package store

import "gorm.io/gorm"

// Store is the entity store: constraint-enforcing CRUD over the relational
// schema. It knows nothing about roles or actors; authorization happens in
// the access layer before any call lands here.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying handle for migrations and test setup.
func (s *Store) DB() *gorm.DB {
	return s.db
}

const (
	defaultLimit = 100
	maxLimit     = 500
)

// clampPage normalizes offset/limit so lists stay finite.
func clampPage(offset, limit int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return offset, limit
}
