package readstore

import (
	"context"

	"roombooking/internal/infra"
	"roombooking/internal/infra/db"
	"roombooking/internal/pkg/pgconv"
	"roombooking/internal/usecase/queries"

	"github.com/google/uuid"
)

type UserReadStore struct {
	db db.DBTX
}

func NewUserReadStore(db db.DBTX) *UserReadStore {
	return &UserReadStore{db: db}
}

const findUserByIDSQL = `
SELECT id, email, role, is_active
FROM users
WHERE id = $1
`

func (s *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	var v queries.AuthorizedUserView
	err := s.db.QueryRow(ctx, findUserByIDSQL, id).Scan(&v.ID, &v.Email, &v.Role, &v.IsActive)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}

	return &v, nil
}

const findUserByEmailSQL = `
SELECT id, email, role, is_active, password_hash
FROM users
WHERE email = $1
`

// FindByEmail also returns the stored password hash for credential checks.
func (s *UserReadStore) FindByEmail(ctx context.Context, email string) (*queries.AuthorizedUserView, string, error) {
	var (
		v    queries.AuthorizedUserView
		hash string
	)
	err := s.db.QueryRow(ctx, findUserByEmailSQL, email).Scan(&v.ID, &v.Email, &v.Role, &v.IsActive, &hash)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, "", infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, "", infra.WrapRepoErr("failed to find user by email", err)
	}

	return &v, hash, nil
}
