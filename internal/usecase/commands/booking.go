package commands

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"roombooking/internal/domain/booking"
	reqdto "roombooking/internal/handler/dto/request"
	"roombooking/internal/infra"
	"roombooking/internal/pkg/clock"
	"roombooking/internal/pkg/errs"
	"roombooking/internal/usecase/queries"
	"roombooking/internal/usecase/shared"
)

var (
	ErrRoomNotFound            = errs.New("room not found")
	ErrInvalidInterval         = errs.New("invalid booking interval")
	ErrRoomNotAvailable        = errs.New("room not available for requested time")
	ErrBookingNotFound         = errs.New("booking not found")
	ErrBookingAccessDenied     = errs.New("booking access denied")
	ErrPastBooking             = errs.New("booking has already started")
	ErrAlreadyCancelled        = errs.New("booking already cancelled")
	ErrStatusConflict          = errs.New("status already set")
	ErrInvalidStatus           = errs.New("invalid booking status")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

type BookingCommands interface {
	CreateBooking(ctx context.Context, req reqdto.CreateBookingRequest, userID uuid.UUID) (*queries.BookingView, error)
	CancelBooking(ctx context.Context, bookingID, requesterID uuid.UUID, isAdmin bool) error
	UpdateBookingStatus(ctx context.Context, bookingID uuid.UUID, rawStatus string) error
}

type bookingCommandsImpl struct {
	uow       shared.UnitOfWork
	factory   *booking.Factory
	readStore queries.BookingReadStore
	publisher shared.EventPublisher
	clock     clock.Clock
}

func NewBookingCommands(
	uow shared.UnitOfWork,
	factory *booking.Factory,
	readStore queries.BookingReadStore,
	publisher shared.EventPublisher,
	clock clock.Clock,
) BookingCommands {
	return &bookingCommandsImpl{
		uow:       uow,
		factory:   factory,
		readStore: readStore,
		publisher: publisher,
		clock:     clock,
	}
}

// CreateBooking validates and inserts a booking in one transaction. Checks
// run in a fixed order: room existence, interval validity, then
// availability. The insert re-runs the availability check through the
// overlap exclusion constraint, so a concurrent create for the same slot
// loses with ErrRoomNotAvailable instead of double-booking.
func (c *bookingCommandsImpl) CreateBooking(ctx context.Context, req reqdto.CreateBookingRequest, userID uuid.UUID) (*queries.BookingView, error) {
	var bookingID uuid.UUID

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		room, err := tx.Reads().RoomByID(ctx, req.RoomID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrRoomNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		// An inactive room is indistinguishable from a missing one to callers.
		if !room.IsActive {
			return ErrRoomNotFound
		}

		slot, err := req.ToDomain()
		if err != nil {
			return errs.Mark(err, ErrInvalidInterval)
		}

		entity, err := c.factory.NewBooking(room.ID, userID, slot)
		if err != nil {
			return errs.Mark(err, ErrInvalidInterval)
		}

		overlapping, err := tx.Reads().CountOverlappingActive(ctx, room.ID, slot.Start(), slot.End())
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if overlapping > 0 {
			return ErrRoomNotAvailable
		}

		bookingID, err = tx.Bookings().Create(ctx, tx.DB(), entity)
		if err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return ErrRoomNotAvailable
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	// Read-after-write: return the full view from the read store.
	view, err := c.readStore.FindByID(ctx, bookingID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	c.publish(ctx, shared.EventBookingCreated, view)

	return view, nil
}

// CancelBooking marks the booking cancelled. Members can only cancel their
// own future bookings; admins can cancel any future booking.
func (c *bookingCommandsImpl) CancelBooking(ctx context.Context, bookingID, requesterID uuid.UUID, isAdmin bool) error {
	var cancelled *booking.Booking

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		entity, err := tx.Reads().BookingByID(ctx, bookingID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrBookingNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if !isAdmin && !entity.IsOwnedBy(requesterID) {
			return ErrBookingAccessDenied
		}

		if err := entity.Cancel(c.clock.Now()); err != nil {
			switch {
			case errors.Is(err, booking.ErrBookingInPast):
				return ErrPastBooking
			case errors.Is(err, booking.ErrAlreadyCancelled):
				return ErrAlreadyCancelled
			default:
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
		}

		if err := tx.Bookings().UpdateStatus(ctx, tx.DB(), bookingID, entity.Status()); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		cancelled = entity
		return nil
	})
	if err != nil {
		return err
	}

	c.publishEntity(ctx, shared.EventBookingCancelled, cancelled)

	return nil
}

// UpdateBookingStatus is the administrative transition. Moving a booking back
// into an active status goes through the overlap constraint again, so a slot
// taken in the meantime surfaces as ErrRoomNotAvailable.
func (c *bookingCommandsImpl) UpdateBookingStatus(ctx context.Context, bookingID uuid.UUID, rawStatus string) error {
	status, err := booking.NewStatus(rawStatus)
	if err != nil {
		return errs.Mark(err, ErrInvalidStatus)
	}

	var updated *booking.Booking

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		entity, err := tx.Reads().BookingByID(ctx, bookingID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrBookingNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if err := entity.ForceStatus(status); err != nil {
			if errors.Is(err, booking.ErrStatusUnchanged) {
				return ErrStatusConflict
			}
			return errs.Mark(err, ErrInvalidStatus)
		}

		if err := tx.Bookings().UpdateStatus(ctx, tx.DB(), bookingID, status); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return ErrRoomNotAvailable
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		updated = entity
		return nil
	})
	if err != nil {
		return err
	}

	c.publishEntity(ctx, shared.EventBookingStatusChanged, updated)

	return nil
}

func (c *bookingCommandsImpl) publish(ctx context.Context, eventType string, view *queries.BookingView) {
	event := shared.BookingEvent{
		Type:       eventType,
		BookingID:  view.ID,
		RoomID:     view.RoomID,
		UserID:     view.UserID,
		StartTime:  view.StartTime,
		EndTime:    view.EndTime,
		Status:     view.Status,
		OccurredAt: c.clock.Now(),
	}
	if err := c.publisher.PublishBookingEvent(ctx, event); err != nil {
		slog.Warn("failed to publish booking event", "type", eventType, "booking_id", event.BookingID, "error", err.Error())
	}
}

func (c *bookingCommandsImpl) publishEntity(ctx context.Context, eventType string, entity *booking.Booking) {
	event := shared.BookingEvent{
		Type:       eventType,
		BookingID:  entity.ID(),
		RoomID:     entity.RoomID(),
		UserID:     entity.UserID(),
		StartTime:  entity.TimeSlot().Start(),
		EndTime:    entity.TimeSlot().End(),
		Status:     entity.Status().String(),
		OccurredAt: c.clock.Now(),
	}
	if err := c.publisher.PublishBookingEvent(ctx, event); err != nil {
		slog.Warn("failed to publish booking event", "type", eventType, "booking_id", event.BookingID, "error", err.Error())
	}
}
