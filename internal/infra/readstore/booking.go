package readstore

import (
	"context"
	"time"

	"roombooking/internal/infra"
	"roombooking/internal/infra/db"
	"roombooking/internal/pkg/pgconv"
	"roombooking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(db db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: db}
}

const findBookingByIDSQL = `
SELECT b.id, b.room_id, r.name AS room_name, b.user_id, u.email AS user_email,
       b.start_time, b.end_time, b.status, b.created_at, b.updated_at
FROM bookings b
JOIN rooms r ON r.id = b.room_id
JOIN users u ON u.id = b.user_id
WHERE b.id = $1
`

func (s *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	var v queries.BookingView
	err := s.db.QueryRow(ctx, findBookingByIDSQL, id).Scan(
		&v.ID, &v.RoomID, &v.RoomName, &v.UserID, &v.UserEmail,
		&v.StartTime, &v.EndTime, &v.Status, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}

	return &v, nil
}

const findBookingsByUserFirstPageSQL = `
SELECT b.id, b.room_id, r.name AS room_name, b.start_time, b.end_time, b.status, b.created_at
FROM bookings b
JOIN rooms r ON r.id = b.room_id
WHERE b.user_id = $1
  AND ($2::text IS NULL OR b.status = $2)
ORDER BY b.created_at DESC, b.id DESC
LIMIT $3
`

func (s *BookingReadStore) FindByUserFirstPage(ctx context.Context, userID uuid.UUID, status *string, limit int32) ([]*queries.BookingListItem, error) {
	rows, err := s.db.Query(ctx, findBookingsByUserFirstPageSQL, userID, status, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find bookings first page", err)
	}
	defer rows.Close()

	return scanBookingListItems(rows)
}

const findBookingsByUserKeysetSQL = `
SELECT b.id, b.room_id, r.name AS room_name, b.start_time, b.end_time, b.status, b.created_at
FROM bookings b
JOIN rooms r ON r.id = b.room_id
WHERE b.user_id = $1
  AND ($2::text IS NULL OR b.status = $2)
  AND (b.created_at, b.id) < ($3, $4)
ORDER BY b.created_at DESC, b.id DESC
LIMIT $5
`

func (s *BookingReadStore) FindByUserKeyset(ctx context.Context, userID uuid.UUID, status *string, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.BookingListItem, error) {
	rows, err := s.db.Query(ctx, findBookingsByUserKeysetSQL, userID, status, lastCreatedAt, lastID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find bookings keyset", err)
	}
	defer rows.Close()

	return scanBookingListItems(rows)
}

const findBookingsByStatusFirstPageSQL = `
SELECT b.id, b.room_id, r.name AS room_name, b.user_id, u.email AS user_email,
       b.start_time, b.end_time, b.status, b.created_at, b.updated_at
FROM bookings b
JOIN rooms r ON r.id = b.room_id
JOIN users u ON u.id = b.user_id
WHERE b.status = $1
ORDER BY b.created_at DESC, b.id DESC
LIMIT $2
`

func (s *BookingReadStore) FindByStatusFirstPage(ctx context.Context, status string, limit int32) ([]*queries.BookingView, error) {
	rows, err := s.db.Query(ctx, findBookingsByStatusFirstPageSQL, status, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find bookings by status", err)
	}
	defer rows.Close()

	return scanBookingViews(rows)
}

const findBookingsByStatusKeysetSQL = `
SELECT b.id, b.room_id, r.name AS room_name, b.user_id, u.email AS user_email,
       b.start_time, b.end_time, b.status, b.created_at, b.updated_at
FROM bookings b
JOIN rooms r ON r.id = b.room_id
JOIN users u ON u.id = b.user_id
WHERE b.status = $1
  AND (b.created_at, b.id) < ($2, $3)
ORDER BY b.created_at DESC, b.id DESC
LIMIT $4
`

func (s *BookingReadStore) FindByStatusKeyset(ctx context.Context, status string, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.BookingView, error) {
	rows, err := s.db.Query(ctx, findBookingsByStatusKeysetSQL, status, lastCreatedAt, lastID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find bookings by status keyset", err)
	}
	defer rows.Close()

	return scanBookingViews(rows)
}

// The day projection selects by start time only: a booking belongs to the day
// it starts on, so a slot spilling over from the previous midnight does not
// show up in the schedule.
const busySlotsForRangeSQL = `
SELECT b.start_time, b.end_time, b.status
FROM bookings b
WHERE b.room_id = $1
  AND b.status IN ('confirmed', 'pending')
  AND b.start_time >= $2
  AND b.start_time < $3
ORDER BY b.start_time ASC, b.id ASC
`

func (s *BookingReadStore) BusySlotsForRange(ctx context.Context, roomID uuid.UUID, from, to time.Time) ([]queries.BusySlot, error) {
	rows, err := s.db.Query(ctx, busySlotsForRangeSQL, roomID, from, to)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find busy slots", err)
	}
	defer rows.Close()

	slots := make([]queries.BusySlot, 0)
	for rows.Next() {
		var slot queries.BusySlot
		if err := rows.Scan(&slot.StartTime, &slot.EndTime, &slot.Status); err != nil {
			return nil, infra.WrapRepoErr("failed to scan busy slot", err)
		}
		slots = append(slots, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read busy slots", err)
	}

	return slots, nil
}

const existsOverlappingActiveSQL = `
SELECT EXISTS (
    SELECT 1
    FROM bookings b
    WHERE b.room_id = $1
      AND b.status IN ('confirmed', 'pending')
      AND b.start_time < $3
      AND b.end_time > $2
)
`

func (s *BookingReadStore) ExistsOverlappingActive(ctx context.Context, roomID uuid.UUID, start, end time.Time) (bool, error) {
	var exists bool
	if err := s.db.QueryRow(ctx, existsOverlappingActiveSQL, roomID, start, end).Scan(&exists); err != nil {
		return false, infra.WrapRepoErr("failed to check overlapping bookings", err)
	}
	return exists, nil
}

const countOverlappingActiveSQL = `
SELECT count(*)
FROM bookings b
WHERE b.room_id = $1
  AND b.status IN ('confirmed', 'pending')
  AND b.start_time < $3
  AND b.end_time > $2
`

func (s *BookingReadStore) CountOverlappingActive(ctx context.Context, roomID uuid.UUID, start, end time.Time) (int64, error) {
	var count int64
	if err := s.db.QueryRow(ctx, countOverlappingActiveSQL, roomID, start, end).Scan(&count); err != nil {
		return 0, infra.WrapRepoErr("failed to count overlapping bookings", err)
	}
	return count, nil
}

const hasActiveBookingsFromSQL = `
SELECT EXISTS (
    SELECT 1
    FROM bookings b
    WHERE b.room_id = $1
      AND b.status IN ('confirmed', 'pending')
      AND b.end_time >= $2
)
`

func (s *BookingReadStore) HasActiveBookingsFrom(ctx context.Context, roomID uuid.UUID, from time.Time) (bool, error) {
	var exists bool
	if err := s.db.QueryRow(ctx, hasActiveBookingsFromSQL, roomID, from).Scan(&exists); err != nil {
		return false, infra.WrapRepoErr("failed to check active bookings", err)
	}
	return exists, nil
}

func scanBookingViews(rows pgx.Rows) ([]*queries.BookingView, error) {
	views := make([]*queries.BookingView, 0)
	for rows.Next() {
		var v queries.BookingView
		if err := rows.Scan(&v.ID, &v.RoomID, &v.RoomName, &v.UserID, &v.UserEmail,
			&v.StartTime, &v.EndTime, &v.Status, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking view", err)
		}
		views = append(views, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read booking views", err)
	}

	return views, nil
}

func scanBookingListItems(rows pgx.Rows) ([]*queries.BookingListItem, error) {
	items := make([]*queries.BookingListItem, 0)
	for rows.Next() {
		var item queries.BookingListItem
		if err := rows.Scan(&item.ID, &item.RoomID, &item.RoomName, &item.StartTime, &item.EndTime, &item.Status, &item.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read booking rows", err)
	}

	return items, nil
}
