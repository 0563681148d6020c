package repository

import (
	"context"

	"roombooking/internal/domain/room"
	"roombooking/internal/infra"
	"roombooking/internal/infra/db"

	"github.com/google/uuid"
)

type RoomRepository struct{}

func NewRoomRepository() *RoomRepository {
	return &RoomRepository{}
}

const createRoomSQL = `
INSERT INTO rooms (id, name, description, capacity, is_active)
VALUES ($1, $2, $3, $4, $5)
RETURNING id
`

func (r *RoomRepository) Create(ctx context.Context, tx db.DBTX, rm *room.Room) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, createRoomSQL,
		rm.ID(),
		rm.Name(),
		rm.Description(),
		rm.Capacity(),
		rm.IsActive(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create room", err)
	}

	return id, nil
}

const updateRoomSQL = `
UPDATE rooms
SET name = $2, description = $3, capacity = $4, is_active = $5, updated_at = now()
WHERE id = $1
`

func (r *RoomRepository) Update(ctx context.Context, tx db.DBTX, rm *room.Room) error {
	tag, err := tx.Exec(ctx, updateRoomSQL,
		rm.ID(),
		rm.Name(),
		rm.Description(),
		rm.Capacity(),
		rm.IsActive(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update room", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("room not found", nil, infra.KindNotFound)
	}

	return nil
}
