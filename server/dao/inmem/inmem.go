// Package inmem is a process-memory dao.Store implementation for the
// transpiler daemon's translation history, used for local runs and tests
// where a sqlite file is unwanted.
//
// Grounded on server/dao/inmem/inmem.go and server/dao/inmem/users.go
// (teacher): a map plus a newest-first listing, with creation/lookup errors
// using the same dao sentinel errors the sqlite implementation uses.
package inmem

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/wrenfield/transpas/server/dao"
)

type store struct {
	trans *TranslationsRepository
}

// NewDatastore returns an in-memory dao.Store.
func NewDatastore() dao.Store {
	return &store{trans: NewTranslationsRepository()}
}

func (s *store) Translations() dao.TranslationRepository {
	return s.trans
}

func (s *store) Close() error {
	return nil
}

// TranslationsRepository is a dao.TranslationRepository backed by a map.
type TranslationsRepository struct {
	translations map[uuid.UUID]dao.Translation
}

// NewTranslationsRepository returns an empty in-memory
// TranslationsRepository.
func NewTranslationsRepository() *TranslationsRepository {
	return &TranslationsRepository{translations: make(map[uuid.UUID]dao.Translation)}
}

func (r *TranslationsRepository) Create(ctx context.Context, t dao.Translation) (dao.Translation, error) {
	newUUID, err := uuid.NewRandom()
	if err != nil {
		return dao.Translation{}, fmt.Errorf("could not generate ID: %w", err)
	}
	t.ID = newUUID
	t.CreatedAt = time.Now()

	r.translations[t.ID] = t

	return t, nil
}

func (r *TranslationsRepository) GetByID(ctx context.Context, id uuid.UUID) (dao.Translation, error) {
	t, ok := r.translations[id]
	if !ok {
		return dao.Translation{}, dao.ErrNotFound
	}
	return t, nil
}

func (r *TranslationsRepository) GetAll(ctx context.Context, limit int) ([]dao.Translation, error) {
	all := make([]dao.Translation, 0, len(r.translations))
	for _, t := range r.translations {
		all = append(all, t)
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}

	return all, nil
}

func (r *TranslationsRepository) Close() error {
	return nil
}
