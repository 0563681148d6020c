package queries

import (
	"context"
	"time"
)

// StatsQueries are admin-facing aggregate projections over the booking set.
// The optional from/to bounds restrict every aggregate to bookings starting
// within [from, to]; a nil bound leaves that side open.
type StatsQueries interface {
	BookingsByStatus(ctx context.Context, from, to *time.Time) ([]*StatusCountView, error)
	BookingsByDayOfWeek(ctx context.Context, from, to *time.Time) ([]*DayOfWeekCountView, error)
	PopularRooms(ctx context.Context, from, to *time.Time, limit int) ([]*RoomUsageView, error)
}

type StatsReadStore interface {
	CountByStatus(ctx context.Context, from, to *time.Time) ([]*StatusCountView, error)
	CountByDayOfWeek(ctx context.Context, from, to *time.Time) ([]*DayOfWeekCountView, error)
	TopRoomsByBookingCount(ctx context.Context, from, to *time.Time, limit int32) ([]*RoomUsageView, error)
}

type statsQueriesImpl struct {
	readStore StatsReadStore
}

func NewStatsQueries(readStore StatsReadStore) StatsQueries {
	return &statsQueriesImpl{readStore: readStore}
}

func (q *statsQueriesImpl) BookingsByStatus(ctx context.Context, from, to *time.Time) ([]*StatusCountView, error) {
	return q.readStore.CountByStatus(ctx, from, to)
}

func (q *statsQueriesImpl) BookingsByDayOfWeek(ctx context.Context, from, to *time.Time) ([]*DayOfWeekCountView, error) {
	return q.readStore.CountByDayOfWeek(ctx, from, to)
}

func (q *statsQueriesImpl) PopularRooms(ctx context.Context, from, to *time.Time, limit int) ([]*RoomUsageView, error) {
	return q.readStore.TopRoomsByBookingCount(ctx, from, to, int32(ValidateLimit(limit)))
}
