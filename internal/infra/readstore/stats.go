package readstore

import (
	"context"
	"time"

	"roombooking/internal/infra"
	"roombooking/internal/infra/db"
	"roombooking/internal/usecase/queries"
)

type StatsReadStore struct {
	db db.DBTX
}

func NewStatsReadStore(db db.DBTX) *StatsReadStore {
	return &StatsReadStore{db: db}
}

const countByStatusSQL = `
SELECT status, count(*)
FROM bookings
WHERE ($1::timestamptz IS NULL OR start_time >= $1)
  AND ($2::timestamptz IS NULL OR start_time <= $2)
GROUP BY status
ORDER BY status ASC
`

func (s *StatsReadStore) CountByStatus(ctx context.Context, from, to *time.Time) ([]*queries.StatusCountView, error) {
	rows, err := s.db.Query(ctx, countByStatusSQL, from, to)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to count bookings by status", err)
	}
	defer rows.Close()

	result := make([]*queries.StatusCountView, 0)
	for rows.Next() {
		var v queries.StatusCountView
		if err := rows.Scan(&v.Status, &v.Count); err != nil {
			return nil, infra.WrapRepoErr("failed to scan status count row", err)
		}
		result = append(result, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read status count rows", err)
	}

	return result, nil
}

// to_char with 'Day' pads to 9 chars; trim keeps the plain weekday name.
const countByDayOfWeekSQL = `
SELECT trim(to_char(start_time AT TIME ZONE 'UTC', 'Day')) AS day_of_week, count(*)
FROM bookings
WHERE ($1::timestamptz IS NULL OR start_time >= $1)
  AND ($2::timestamptz IS NULL OR start_time <= $2)
GROUP BY day_of_week, extract(isodow FROM start_time AT TIME ZONE 'UTC')
ORDER BY extract(isodow FROM start_time AT TIME ZONE 'UTC') ASC
`

func (s *StatsReadStore) CountByDayOfWeek(ctx context.Context, from, to *time.Time) ([]*queries.DayOfWeekCountView, error) {
	rows, err := s.db.Query(ctx, countByDayOfWeekSQL, from, to)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to count bookings by day of week", err)
	}
	defer rows.Close()

	result := make([]*queries.DayOfWeekCountView, 0)
	for rows.Next() {
		var v queries.DayOfWeekCountView
		if err := rows.Scan(&v.DayOfWeek, &v.Count); err != nil {
			return nil, infra.WrapRepoErr("failed to scan day of week row", err)
		}
		result = append(result, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read day of week rows", err)
	}

	return result, nil
}

const topRoomsByBookingCountSQL = `
SELECT r.id, r.name, count(b.id) AS booking_count
FROM rooms r
JOIN bookings b ON b.room_id = r.id
WHERE ($1::timestamptz IS NULL OR b.start_time >= $1)
  AND ($2::timestamptz IS NULL OR b.start_time <= $2)
GROUP BY r.id, r.name
ORDER BY booking_count DESC, r.name ASC
LIMIT $3
`

func (s *StatsReadStore) TopRoomsByBookingCount(ctx context.Context, from, to *time.Time, limit int32) ([]*queries.RoomUsageView, error) {
	rows, err := s.db.Query(ctx, topRoomsByBookingCountSQL, from, to, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to rank rooms by booking count", err)
	}
	defer rows.Close()

	result := make([]*queries.RoomUsageView, 0)
	for rows.Next() {
		var v queries.RoomUsageView
		if err := rows.Scan(&v.RoomID, &v.RoomName, &v.BookingCount); err != nil {
			return nil, infra.WrapRepoErr("failed to scan room usage row", err)
		}
		result = append(result, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read room usage rows", err)
	}

	return result, nil
}
