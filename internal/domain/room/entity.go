package room

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyRoomName   = errors.New("room name cannot be empty")
	ErrRoomNameTooLong = errors.New("room name is too long (max 255 characters)")
	ErrInvalidCapacity = errors.New("room capacity must be positive")
	ErrStatusUnchanged = errors.New("room already has requested status")
)

const MaxRoomNameLength = 255

type Room struct {
	id          uuid.UUID
	name        string
	description string
	capacity    int
	isActive    bool
	createdAt   time.Time
	updatedAt   time.Time
}

func NewRoom(name, description string, capacity int) (*Room, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if capacity < 1 {
		return nil, ErrInvalidCapacity
	}

	return &Room{
		id:          uuid.New(),
		name:        strings.TrimSpace(name),
		description: strings.TrimSpace(description),
		capacity:    capacity,
		isActive:    true,
	}, nil
}

func ReconstructRoom(id uuid.UUID, name, description string, capacity int, isActive bool, createdAt, updatedAt time.Time) *Room {
	return &Room{
		id:          id,
		name:        name,
		description: description,
		capacity:    capacity,
		isActive:    isActive,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (r *Room) Rename(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	r.name = strings.TrimSpace(name)
	return nil
}

func (r *Room) ChangeCapacity(capacity int) error {
	if capacity < 1 {
		return ErrInvalidCapacity
	}
	r.capacity = capacity
	return nil
}

func (r *Room) ChangeDescription(description string) {
	r.description = strings.TrimSpace(description)
}

func (r *Room) SetActive(active bool) error {
	if r.isActive == active {
		return ErrStatusUnchanged
	}
	r.isActive = active
	return nil
}

func validateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyRoomName
	}
	if len(name) > MaxRoomNameLength {
		return ErrRoomNameTooLong
	}
	return nil
}

func (r *Room) ID() uuid.UUID        { return r.id }
func (r *Room) Name() string         { return r.name }
func (r *Room) Description() string  { return r.description }
func (r *Room) Capacity() int        { return r.capacity }
func (r *Room) IsActive() bool       { return r.isActive }
func (r *Room) CreatedAt() time.Time { return r.createdAt }
func (r *Room) UpdatedAt() time.Time { return r.updatedAt }
