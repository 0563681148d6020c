package readstore

import (
	"context"

	"roombooking/internal/infra"
	"roombooking/internal/infra/db"
	"roombooking/internal/pkg/pgconv"
	"roombooking/internal/usecase/queries"

	"github.com/google/uuid"
)

type RoomReadStore struct {
	db db.DBTX
}

func NewRoomReadStore(db db.DBTX) *RoomReadStore {
	return &RoomReadStore{db: db}
}

const findRoomByIDSQL = `
SELECT id, name, description, capacity, is_active, created_at, updated_at
FROM rooms
WHERE id = $1
`

func (s *RoomReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.RoomView, error) {
	var v queries.RoomView
	err := s.db.QueryRow(ctx, findRoomByIDSQL, id).Scan(
		&v.ID, &v.Name, &v.Description, &v.Capacity, &v.IsActive, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("room not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find room by ID", err)
	}

	return &v, nil
}

const findRoomByNameSQL = `
SELECT id, name, description, capacity, is_active, created_at, updated_at
FROM rooms
WHERE name = $1
`

func (s *RoomReadStore) FindByName(ctx context.Context, name string) (*queries.RoomView, error) {
	var v queries.RoomView
	err := s.db.QueryRow(ctx, findRoomByNameSQL, name).Scan(
		&v.ID, &v.Name, &v.Description, &v.Capacity, &v.IsActive, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("room not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find room by name", err)
	}

	return &v, nil
}

const findAllRoomsSQL = `
SELECT id, name, description, capacity, is_active, created_at, updated_at
FROM rooms
WHERE ($1::boolean = false OR is_active = true)
  AND ($2::int IS NULL OR capacity >= $2)
ORDER BY name ASC
`

func (s *RoomReadStore) FindAll(ctx context.Context, filter queries.RoomFilter) ([]*queries.RoomView, error) {
	rows, err := s.db.Query(ctx, findAllRoomsSQL, filter.ActiveOnly, filter.MinCapacity)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list rooms", err)
	}
	defer rows.Close()

	result := make([]*queries.RoomView, 0)
	for rows.Next() {
		var v queries.RoomView
		if err := rows.Scan(&v.ID, &v.Name, &v.Description, &v.Capacity, &v.IsActive, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan room row", err)
		}
		result = append(result, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read room rows", err)
	}

	return result, nil
}
