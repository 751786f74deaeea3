package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// The store surfaces exactly three failure kinds. Callers branch with
// errors.Is; none of them is retryable.
var (
	ErrNotFound            = errors.New("record not found")
	ErrConstraintViolation = errors.New("constraint violation")
	ErrValidation          = errors.New("invalid input")
)

// translate maps driver errors onto the store taxonomy. Postgres reports
// constraint breaches with SQLSTATE codes (23505 unique, 23514 check,
// 23503 foreign key); the SQLite test backend only gives message text.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505", "23514", "23503":
			return fmt.Errorf("%w: %s", ErrConstraintViolation, pqErr.Message)
		}
	}
	msg := err.Error()
	if strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "CHECK constraint failed") ||
		strings.Contains(msg, "FOREIGN KEY constraint failed") {
		return fmt.Errorf("%w: %s", ErrConstraintViolation, msg)
	}
	return err
}

func constraintErr(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrConstraintViolation, fmt.Sprintf(format, args...))
}

func validationErr(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
