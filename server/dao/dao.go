// Package dao provides data access objects for the transpiler daemon's
// translation history.
//
// Grounded on server/dao/dao.go (teacher): the sentinel-error vars, the
// Store-as-repository-bundle interface, and a single timestamped record type
// per repository. Trimmed to the one repository this domain needs.
package dao

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned by a repository method when the requested
	// record does not exist.
	ErrNotFound = errors.New("the requested resource was not found")

	// ErrConstraintViolation is returned when a write would violate a
	// uniqueness constraint (a duplicate ID, in practice).
	ErrConstraintViolation = errors.New("a uniqueness constraint was violated")
)

// Store holds all the repositories the daemon persists through.
type Store interface {
	Translations() TranslationRepository
	Close() error
}

// Translation is one recorded source-to-target translation.
type Translation struct {
	ID        uuid.UUID `json:"id"`
	Source    string    `json:"source"`
	Target    string    `json:"target"`
	Err       string    `json:"error"`
	CreatedAt time.Time `json:"created_at"`
}

// TranslationRepository persists and retrieves Translation records.
type TranslationRepository interface {
	Create(ctx context.Context, t Translation) (Translation, error)
	GetByID(ctx context.Context, id uuid.UUID) (Translation, error)
	GetAll(ctx context.Context, limit int) ([]Translation, error)
	Close() error
}
