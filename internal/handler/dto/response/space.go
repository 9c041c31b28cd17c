package response

import (
	"time"

	"coworkhub/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type SpaceResponse struct {
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

type AvailabilityResponse struct {
	SpaceID     uuid.UUID   `json:"space_id"`
	From        time.Time   `json:"from"`
	To          time.Time   `json:"to"`
	Available   bool        `json:"available"`
	ConflictIDs []uuid.UUID `json:"conflict_ids,omitempty"`
}

type UtilizationResponse struct {
	SpaceID         uuid.UUID `json:"space_id"`
	From            time.Time `json:"from"`
	To              time.Time `json:"to"`
	BookingCount    int       `json:"booking_count"`
	UtilizationRate float64   `json:"utilization_rate"`
}

func FromSpaceView(rm *queries.SpaceView) *SpaceResponse {
	var resp SpaceResponse
	_ = copier.Copy(&resp, rm)
	return &resp
}

func FromSpaceList(views []*queries.SpaceView) []*SpaceResponse {
	resp := make([]*SpaceResponse, len(views))
	for i, v := range views {
		resp[i] = FromSpaceView(v)
	}
	return resp
}

func FromAvailabilityView(rm *queries.AvailabilityView) *AvailabilityResponse {
	var resp AvailabilityResponse
	_ = copier.Copy(&resp, rm)
	return &resp
}

func FromUtilizationView(rm *queries.UtilizationView) *UtilizationResponse {
	var resp UtilizationResponse
	_ = copier.Copy(&resp, rm)
	return &resp
}
