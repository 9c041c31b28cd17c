package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type BookingView struct {
	ID               uuid.UUID  `json:"id"`
	SpaceID          uuid.UUID  `json:"space_id"`
	SpaceName        string     `json:"space_name"`
	UserID           uuid.UUID  `json:"user_id"`
	UserEmail        string     `json:"user_email"`
	StartAt          time.Time  `json:"start_at"`
	EndAt            time.Time  `json:"end_at"`
	Status           string     `json:"status"`
	CheckInAt        *time.Time `json:"check_in_at,omitempty"`
	CheckOutAt       *time.Time `json:"check_out_at,omitempty"`
	ParticipantCount int        `json:"participant_count"`
	RecurrenceType   string     `json:"recurrence_type"`
	RecurrenceEvery  int        `json:"recurrence_every"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

type BookingListItem struct {
	ID               uuid.UUID `json:"id"`
	SpaceID          uuid.UUID `json:"space_id"`
	SpaceName        string    `json:"space_name"`
	StartAt          time.Time `json:"start_at"`
	EndAt            time.Time `json:"end_at"`
	Status           string    `json:"status"`
	ParticipantCount int       `json:"participant_count"`
	CreatedAt        time.Time `json:"created_at"`
}

type SpaceView struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	Capacity         int       `json:"capacity"`
	HourlyRateCents  int64     `json:"hourly_rate_cents"`
	MaxDurationMin   int       `json:"max_duration_min"`
	AdvanceNoticeMin int       `json:"advance_notice_min"`
	RequiresApproval bool      `json:"requires_approval"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type AvailabilityView struct {
	SpaceID     uuid.UUID   `json:"space_id"`
	From        time.Time   `json:"from"`
	To          time.Time   `json:"to"`
	Available   bool        `json:"available"`
	ConflictIDs []uuid.UUID `json:"conflict_ids,omitempty"`
}

type UtilizationView struct {
	SpaceID         uuid.UUID `json:"space_id"`
	From            time.Time `json:"from"`
	To              time.Time `json:"to"`
	BookingCount    int       `json:"booking_count"`
	UtilizationRate float64   `json:"utilization_rate"`
}

type AuthorizedUserView struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	Role        string    `json:"role"`
	IsActive    bool      `json:"is_active"`
}
