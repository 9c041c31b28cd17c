package space

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidCapacity    = errors.New("capacity must be positive")
	ErrInvalidMaxDuration = errors.New("max booking duration must be positive")
	ErrInvalidAdvance     = errors.New("advance notice cannot be negative")
	ErrEmptyName          = errors.New("space name cannot be empty")
)

// Rules are the per-space booking constraints the interval engine
// validates candidate windows against. Read-only from the engine's
// point of view.
type Rules struct {
	Capacity         int
	MaxDurationMin   int
	AdvanceNoticeMin int
	RequiresApproval bool
}

func NewRules(capacity, maxDurationMin, advanceNoticeMin int, requiresApproval bool) (Rules, error) {
	if capacity < 1 {
		return Rules{}, ErrInvalidCapacity
	}
	if maxDurationMin < 1 {
		return Rules{}, ErrInvalidMaxDuration
	}
	if advanceNoticeMin < 0 {
		return Rules{}, ErrInvalidAdvance
	}
	return Rules{
		Capacity:         capacity,
		MaxDurationMin:   maxDurationMin,
		AdvanceNoticeMin: advanceNoticeMin,
		RequiresApproval: requiresApproval,
	}, nil
}

func (r Rules) MaxDuration() time.Duration {
	return time.Duration(r.MaxDurationMin) * time.Minute
}

func (r Rules) AdvanceNotice() time.Duration {
	return time.Duration(r.AdvanceNoticeMin) * time.Minute
}

type Space struct {
	id              uuid.UUID
	name            string
	description     string
	hourlyRateCents int64
	rules           Rules
	createdAt       time.Time
	updatedAt       time.Time
}

func NewSpace(name, description string, hourlyRateCents int64, rules Rules) (*Space, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	return &Space{
		id:              uuid.New(),
		name:            name,
		description:     description,
		hourlyRateCents: hourlyRateCents,
		rules:           rules,
	}, nil
}

func ReconstructSpace(
	id uuid.UUID,
	name, description string,
	hourlyRateCents int64,
	rules Rules,
	createdAt, updatedAt time.Time,
) *Space {
	return &Space{
		id:              id,
		name:            name,
		description:     description,
		hourlyRateCents: hourlyRateCents,
		rules:           rules,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

func (s *Space) ID() uuid.UUID          { return s.id }
func (s *Space) Name() string           { return s.name }
func (s *Space) Description() string    { return s.description }
func (s *Space) HourlyRateCents() int64 { return s.hourlyRateCents }
func (s *Space) Rules() Rules           { return s.rules }
func (s *Space) CreatedAt() time.Time   { return s.createdAt }
func (s *Space) UpdatedAt() time.Time   { return s.updatedAt }
