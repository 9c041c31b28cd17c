package response

import (
	"time"

	"coworkhub/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type BookingResponse struct {
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

type BookingListItemResponse struct {
	ID               uuid.UUID `json:"id"`
	SpaceID          uuid.UUID `json:"space_id"`
	SpaceName        string    `json:"space_name"`
	StartAt          time.Time `json:"start_at"`
	EndAt            time.Time `json:"end_at"`
	Status           string    `json:"status"`
	ParticipantCount int       `json:"participant_count"`
	CreatedAt        time.Time `json:"created_at"`
}

type BookingListResponse struct {
	Bookings   []*BookingListItemResponse `json:"bookings"`
	NextCursor string                     `json:"next_cursor,omitempty"`
}

func FromBookingView(rm *queries.BookingView) *BookingResponse {
	var resp BookingResponse
	_ = copier.Copy(&resp, rm)
	return &resp
}

func FromBookingList(items []*queries.BookingListItem, next *queries.Cursor) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]*BookingListItemResponse, len(items)),
	}
	for i, it := range items {
		var item BookingListItemResponse
		_ = copier.Copy(&item, it)
		resp.Bookings[i] = &item
	}
	if next != nil {
		resp.NextCursor = queries.EncodeCursor(*next)
	}
	return resp
}
