// Package sqlite is a modernc.org/sqlite-backed dao.Store implementation
// for the transpiler daemon's translation history.
//
// Grounded on server/dao/sqlite/sqlite.go and server/dao/sqlite/users.go
// (teacher): the store-of-repositories constructor, the schema-creation
// embedded in the repository constructor, and wrapDBError's unique-
// constraint translation.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"modernc.org/sqlite"

	"github.com/wrenfield/transpas/server/dao"
)

type store struct {
	dbFilename string
	db         *sql.DB
	trans      *TranslationsDB
}

// NewDatastore opens (creating if necessary) a sqlite database under
// storageDir and returns a dao.Store backed by it.
func NewDatastore(storageDir string) (dao.Store, error) {
	st := &store{dbFilename: "history.db"}

	fileName := filepath.Join(storageDir, st.dbFilename)

	var err error
	st.db, err = sql.Open("sqlite", fileName)
	if err != nil {
		return nil, wrapDBError(err)
	}

	st.trans = &TranslationsDB{db: st.db}
	if err := st.trans.init(); err != nil {
		return nil, err
	}

	return st, nil
}

func (s *store) Translations() dao.TranslationRepository {
	return s.trans
}

func (s *store) Close() error {
	return s.db.Close()
}

// TranslationsDB is a dao.TranslationRepository backed by a sqlite table.
type TranslationsDB struct {
	db *sql.DB
}

// NewTranslationsDBConn opens its own connection to file and ensures the
// translations table exists. Used directly by callers that want only this
// repository, without the rest of a store.
func NewTranslationsDBConn(file string) (*TranslationsDB, error) {
	repo := &TranslationsDB{}

	var err error
	repo.db, err = sql.Open("sqlite", file)
	if err != nil {
		return nil, wrapDBError(err)
	}
	if err := repo.init(); err != nil {
		return nil, err
	}

	return repo, nil
}

func (repo *TranslationsDB) init() error {
	_, err := repo.db.Exec(`CREATE TABLE IF NOT EXISTS translations (
		id TEXT NOT NULL PRIMARY KEY,
		source TEXT NOT NULL,
		target TEXT NOT NULL,
		error TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);`)
	if err != nil {
		return wrapDBError(err)
	}
	return nil
}

func (repo *TranslationsDB) Create(ctx context.Context, t dao.Translation) (dao.Translation, error) {
	newUUID, err := uuid.NewRandom()
	if err != nil {
		return dao.Translation{}, fmt.Errorf("could not generate ID: %w", err)
	}
	t.ID = newUUID
	t.CreatedAt = time.Now()

	_, err = repo.db.ExecContext(ctx,
		`INSERT INTO translations (id, source, target, error, created_at) VALUES (?, ?, ?, ?, ?)`,
		t.ID.String(), t.Source, t.Target, t.Err, t.CreatedAt.Unix(),
	)
	if err != nil {
		return dao.Translation{}, wrapDBError(err)
	}

	return repo.GetByID(ctx, t.ID)
}

func (repo *TranslationsDB) GetByID(ctx context.Context, id uuid.UUID) (dao.Translation, error) {
	t := dao.Translation{ID: id}
	var created int64

	row := repo.db.QueryRowContext(ctx,
		`SELECT source, target, error, created_at FROM translations WHERE id = ?;`,
		id.String(),
	)
	if err := row.Scan(&t.Source, &t.Target, &t.Err, &created); err != nil {
		return t, wrapDBError(err)
	}
	t.CreatedAt = time.Unix(created, 0)

	return t, nil
}

func (repo *TranslationsDB) GetAll(ctx context.Context, limit int) ([]dao.Translation, error) {
	rows, err := repo.db.QueryContext(ctx,
		`SELECT id, source, target, error, created_at FROM translations ORDER BY created_at DESC LIMIT ?;`,
		limit,
	)
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()

	var all []dao.Translation
	for rows.Next() {
		var t dao.Translation
		var id string
		var created int64

		if err := rows.Scan(&id, &t.Source, &t.Target, &t.Err, &created); err != nil {
			return nil, wrapDBError(err)
		}
		t.ID, err = uuid.Parse(id)
		if err != nil {
			return all, fmt.Errorf("stored UUID %q is invalid", id)
		}
		t.CreatedAt = time.Unix(created, 0)
		all = append(all, t)
	}
	if err := rows.Err(); err != nil {
		return all, wrapDBError(err)
	}

	return all, nil
}

func (repo *TranslationsDB) Close() error {
	return repo.db.Close()
}

func wrapDBError(err error) error {
	sqliteErr := &sqlite.Error{}
	if errors.As(err, &sqliteErr) {
		if sqliteErr.Code() == 19 {
			return fmt.Errorf("%w", dao.ErrConstraintViolation)
		}
	}
	if errors.Is(err, sql.ErrNoRows) {
		return dao.ErrNotFound
	}
	return err
}
