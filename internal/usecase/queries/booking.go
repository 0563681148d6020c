package queries

import (
	"context"
	"time"

	"github.com/google/uuid"

	"roombooking/internal/domain/booking"
	"roombooking/internal/infra"
	"roombooking/internal/pkg/errs"
)

var (
	ErrBookingNotFound     = errs.New("booking not found")
	ErrBookingAccess       = errs.New("booking access denied")
	ErrInvalidCursor       = errs.New("invalid cursor")
	ErrInvalidStatusFilter = errs.New("invalid status filter")
)

type BookingQueries interface {
	GetByID(ctx context.Context, requesterID uuid.UUID, isAdmin bool, id uuid.UUID) (*BookingView, error)
	ListByUser(ctx context.Context, userID uuid.UUID, status *string, after *Cursor, limit int) ([]*BookingListItem, *Cursor, error)
	ListByStatus(ctx context.Context, status string, after *Cursor, limit int) ([]*BookingView, *Cursor, error)
}

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	FindByUserFirstPage(ctx context.Context, userID uuid.UUID, status *string, limit int32) ([]*BookingListItem, error)
	FindByUserKeyset(ctx context.Context, userID uuid.UUID, status *string, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*BookingListItem, error)
	FindByStatusFirstPage(ctx context.Context, status string, limit int32) ([]*BookingView, error)
	FindByStatusKeyset(ctx context.Context, status string, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*BookingView, error)
	BusySlotsForRange(ctx context.Context, roomID uuid.UUID, from, to time.Time) ([]BusySlot, error)
	ExistsOverlappingActive(ctx context.Context, roomID uuid.UUID, start, end time.Time) (bool, error)
}

type bookingQueriesImpl struct {
	readStore BookingReadStore
}

func NewBookingQueries(readStore BookingReadStore) BookingQueries {
	return &bookingQueriesImpl{readStore: readStore}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, requesterID uuid.UUID, isAdmin bool, id uuid.UUID) (*BookingView, error) {
	view, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	if !isAdmin && view.UserID != requesterID {
		return nil, ErrBookingAccess
	}

	return view, nil
}

func (q *bookingQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID, status *string, after *Cursor, limit int) ([]*BookingListItem, *Cursor, error) {
	if status != nil {
		if _, err := booking.NewStatus(*status); err != nil {
			return nil, nil, errs.Mark(err, ErrInvalidStatusFilter)
		}
	}

	limit = ValidateLimit(limit)

	// Fetch one extra row to decide whether a next page exists.
	fetchLimit := int32(limit + 1)

	var (
		rows []*BookingListItem
		err  error
	)
	if after == nil || after.After == "" {
		rows, err = q.readStore.FindByUserFirstPage(ctx, userID, status, fetchLimit)
	} else {
		lastCreatedAt, lastID, decodeErr := DecodeAfterCursor(after.After)
		if decodeErr != nil {
			return nil, nil, errs.Mark(decodeErr, ErrInvalidCursor)
		}
		rows, err = q.readStore.FindByUserKeyset(ctx, userID, status, lastCreatedAt, lastID, fetchLimit)
	}
	if err != nil {
		return nil, nil, err
	}

	var next *Cursor
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[limit-1]
		next = &Cursor{After: EncodeAfterCursor(last.CreatedAt, last.ID)}
	}

	return rows, next, nil
}

func (q *bookingQueriesImpl) ListByStatus(ctx context.Context, status string, after *Cursor, limit int) ([]*BookingView, *Cursor, error) {
	if _, err := booking.NewStatus(status); err != nil {
		return nil, nil, errs.Mark(err, ErrInvalidStatusFilter)
	}

	limit = ValidateLimit(limit)
	fetchLimit := int32(limit + 1)

	var (
		rows []*BookingView
		err  error
	)
	if after == nil || after.After == "" {
		rows, err = q.readStore.FindByStatusFirstPage(ctx, status, fetchLimit)
	} else {
		lastCreatedAt, lastID, decodeErr := DecodeAfterCursor(after.After)
		if decodeErr != nil {
			return nil, nil, errs.Mark(decodeErr, ErrInvalidCursor)
		}
		rows, err = q.readStore.FindByStatusKeyset(ctx, status, lastCreatedAt, lastID, fetchLimit)
	}
	if err != nil {
		return nil, nil, err
	}

	var next *Cursor
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[limit-1]
		next = &Cursor{After: EncodeAfterCursor(last.CreatedAt, last.ID)}
	}

	return rows, next, nil
}
