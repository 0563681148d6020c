package commands

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"roombooking/internal/domain/room"
	reqdto "roombooking/internal/handler/dto/request"
	"roombooking/internal/infra"
	"roombooking/internal/pkg/clock"
	"roombooking/internal/pkg/errs"
	"roombooking/internal/pkg/patch"
	"roombooking/internal/usecase/shared"
)

var (
	ErrDuplicateRoomName     = errs.New("room name already exists")
	ErrRoomHasActiveBookings = errs.New("room has active bookings")
	ErrInvalidRoom           = errs.New("invalid room attributes")
)

type RoomCommands interface {
	CreateRoom(ctx context.Context, req reqdto.CreateRoomRequest) (uuid.UUID, error)
	UpdateRoom(ctx context.Context, roomID uuid.UUID, req reqdto.UpdateRoomRequest) error
	SetRoomActive(ctx context.Context, roomID uuid.UUID, active bool) error
}

type roomCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewRoomCommands(uow shared.UnitOfWork, clock clock.Clock) RoomCommands {
	return &roomCommandsImpl{
		uow:   uow,
		clock: clock,
	}
}

func (c *roomCommandsImpl) CreateRoom(ctx context.Context, req reqdto.CreateRoomRequest) (uuid.UUID, error) {
	entity, err := room.NewRoom(req.Name, req.Description, req.Capacity)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrInvalidRoom)
	}

	var roomID uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		roomID, err = tx.Rooms().Create(ctx, tx.DB(), entity)
		if err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return ErrDuplicateRoomName
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	return roomID, nil
}

func (c *roomCommandsImpl) UpdateRoom(ctx context.Context, roomID uuid.UUID, req reqdto.UpdateRoomRequest) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		entity, err := c.findRoom(ctx, tx, roomID)
		if err != nil {
			return err
		}

		if err := entity.Rename(patch.Coalesce(req.Name, entity.Name())); err != nil {
			return errs.Mark(err, ErrInvalidRoom)
		}
		if err := entity.ChangeCapacity(patch.Coalesce(req.Capacity, entity.Capacity())); err != nil {
			return errs.Mark(err, ErrInvalidRoom)
		}
		entity.ChangeDescription(patch.Coalesce(req.Description, entity.Description()))

		if err := tx.Rooms().Update(ctx, tx.DB(), entity); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return ErrDuplicateRoomName
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
}

// SetRoomActive deactivation is refused while the room still has active
// bookings that have not finished yet.
func (c *roomCommandsImpl) SetRoomActive(ctx context.Context, roomID uuid.UUID, active bool) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		entity, err := c.findRoom(ctx, tx, roomID)
		if err != nil {
			return err
		}

		if !active {
			hasActive, err := tx.Reads().HasActiveBookingsFrom(ctx, roomID, c.clock.Now())
			if err != nil {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
			if hasActive {
				return ErrRoomHasActiveBookings
			}
		}

		if err := entity.SetActive(active); err != nil {
			if errors.Is(err, room.ErrStatusUnchanged) {
				return ErrStatusConflict
			}
			return errs.Mark(err, ErrInvalidRoom)
		}

		if err := tx.Rooms().Update(ctx, tx.DB(), entity); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
}

func (c *roomCommandsImpl) findRoom(ctx context.Context, tx shared.Tx, roomID uuid.UUID) (*room.Room, error) {
	snapshot, err := tx.Reads().RoomByID(ctx, roomID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return room.ReconstructRoom(
		snapshot.ID,
		snapshot.Name,
		snapshot.Description,
		snapshot.Capacity,
		snapshot.IsActive,
		c.clock.Now(),
		c.clock.Now(),
	), nil
}
