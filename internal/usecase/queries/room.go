package queries

import (
	"context"

	"github.com/google/uuid"

	"roombooking/internal/infra"
)

type RoomFilter struct {
	ActiveOnly  bool
	MinCapacity *int32
}

type RoomQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*RoomView, error)
	List(ctx context.Context, filter RoomFilter) ([]*RoomView, error)
}

type RoomReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*RoomView, error)
	FindAll(ctx context.Context, filter RoomFilter) ([]*RoomView, error)
}

type roomQueriesImpl struct {
	readStore RoomReadStore
}

func NewRoomQueries(readStore RoomReadStore) RoomQueries {
	return &roomQueriesImpl{readStore: readStore}
}

func (q *roomQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*RoomView, error) {
	room, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return room, nil
}

func (q *roomQueriesImpl) List(ctx context.Context, filter RoomFilter) ([]*RoomView, error) {
	return q.readStore.FindAll(ctx, filter)
}
