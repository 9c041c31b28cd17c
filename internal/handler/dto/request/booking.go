package request

import (
	"time"

	"coworkhub/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	SpaceID          uuid.UUID `json:"space_id" binding:"required"`
	StartAt          time.Time `json:"start_at" binding:"required"`
	EndAt            time.Time `json:"end_at" binding:"required"`
	ParticipantCount int       `json:"participant_count" binding:"required,min=1"`
	RecurrenceType   string    `json:"recurrence_type,omitempty"`
	RecurrenceEvery  int       `json:"recurrence_every,omitempty"`
}

func (r CreateBookingRequest) ToInput() commands.CreateBookingInput {
	return commands.CreateBookingInput{
		SpaceID:          r.SpaceID,
		StartAt:          r.StartAt,
		EndAt:            r.EndAt,
		ParticipantCount: r.ParticipantCount,
		RecurrenceType:   r.RecurrenceType,
		RecurrenceEvery:  r.RecurrenceEvery,
	}
}

type ModifyBookingRequest struct {
	StartAt          time.Time `json:"start_at" binding:"required"`
	EndAt            time.Time `json:"end_at" binding:"required"`
	ParticipantCount int       `json:"participant_count" binding:"required,min=1"`
}

func (r ModifyBookingRequest) ToInput() commands.ModifyBookingInput {
	return commands.ModifyBookingInput{
		StartAt:          r.StartAt,
		EndAt:            r.EndAt,
		ParticipantCount: r.ParticipantCount,
	}
}

type ListBookingsQuery struct {
	Cursor string `form:"cursor"`
	Limit  int    `form:"limit,default=50"`
}

type SpaceWindowQuery struct {
	From time.Time `form:"from" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	To   time.Time `form:"to" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
}
