//go:build unit

package commands_test

import (
	"context"
	"sync"
	"time"

	"roombooking/internal/domain/booking"
	"roombooking/internal/domain/room"
	"roombooking/internal/infra"
	"roombooking/internal/infra/db"
	"roombooking/internal/usecase/shared"

	"github.com/google/uuid"
)

// In-memory unit of work. Within runs the function against shared fake
// state with no transactional isolation; command ordering and error mapping
// are what these tests exercise, serialization is covered end to end.
type fakeUoW struct {
	tx *fakeTx
}

func newFakeUoW() *fakeUoW {
	reads := &fakeReads{
		rooms:    make(map[uuid.UUID]*shared.RoomSnapshot),
		bookings: make(map[uuid.UUID]*booking.Booking),
	}
	return &fakeUoW{
		tx: &fakeTx{
			reads:    reads,
			bookings: &fakeBookingRepo{statuses: make(map[uuid.UUID]booking.Status)},
			rooms:    &fakeRoomRepo{},
		},
	}
}

func (u *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, u.tx)
}

func (u *fakeUoW) WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error {
	return fn(ctx, nil)
}

func (u *fakeUoW) CommandReads() shared.CommandReads {
	return u.tx.reads
}

type fakeTx struct {
	reads    *fakeReads
	bookings *fakeBookingRepo
	rooms    *fakeRoomRepo
}

func (t *fakeTx) Bookings() shared.BookingRepository { return t.bookings }
func (t *fakeTx) Rooms() shared.RoomRepository       { return t.rooms }
func (t *fakeTx) Users() shared.UserRepository       { return nil }
func (t *fakeTx) Reads() shared.CommandReads         { return t.reads }
func (t *fakeTx) DB() db.DBTX                        { return nil }

type fakeReads struct {
	rooms        map[uuid.UUID]*shared.RoomSnapshot
	bookings     map[uuid.UUID]*booking.Booking
	overlapCount int64
	hasActive    bool

	overlapErr error
}

func (r *fakeReads) RoomByID(_ context.Context, id uuid.UUID) (*shared.RoomSnapshot, error) {
	snapshot, ok := r.rooms[id]
	if !ok {
		return nil, infra.WrapRepoErr("room not found", nil, infra.KindNotFound)
	}
	return snapshot, nil
}

func (r *fakeReads) RoomByName(_ context.Context, name string) (*shared.RoomSnapshot, error) {
	for _, snapshot := range r.rooms {
		if snapshot.Name == name {
			return snapshot, nil
		}
	}
	return nil, infra.WrapRepoErr("room not found", nil, infra.KindNotFound)
}

func (r *fakeReads) BookingByID(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	entity, ok := r.bookings[id]
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return entity, nil
}

func (r *fakeReads) CountOverlappingActive(_ context.Context, _ uuid.UUID, _, _ time.Time) (int64, error) {
	return r.overlapCount, r.overlapErr
}

func (r *fakeReads) HasActiveBookingsFrom(_ context.Context, _ uuid.UUID, _ time.Time) (bool, error) {
	return r.hasActive, nil
}

type fakeBookingRepo struct {
	created   []*booking.Booking
	statuses  map[uuid.UUID]booking.Status
	createErr error
	updateErr error
}

func (r *fakeBookingRepo) Create(_ context.Context, _ db.DBTX, b *booking.Booking) (uuid.UUID, error) {
	if r.createErr != nil {
		return uuid.Nil, r.createErr
	}
	r.created = append(r.created, b)
	return b.ID(), nil
}

func (r *fakeBookingRepo) UpdateStatus(_ context.Context, _ db.DBTX, id uuid.UUID, status booking.Status) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.statuses[id] = status
	return nil
}

type fakeRoomRepo struct {
	created   []*room.Room
	updated   []*room.Room
	createErr error
	updateErr error
}

func (r *fakeRoomRepo) Create(_ context.Context, _ db.DBTX, entity *room.Room) (uuid.UUID, error) {
	if r.createErr != nil {
		return uuid.Nil, r.createErr
	}
	r.created = append(r.created, entity)
	return entity.ID(), nil
}

func (r *fakeRoomRepo) Update(_ context.Context, _ db.DBTX, entity *room.Room) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	r.updated = append(r.updated, entity)
	return nil
}

// Records published events for assertions.
type recordingPublisher struct {
	mu     sync.Mutex
	events []shared.BookingEvent
	err    error
}

func (p *recordingPublisher) PublishBookingEvent(_ context.Context, event shared.BookingEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Events() []shared.BookingEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]shared.BookingEvent(nil), p.events...)
}
