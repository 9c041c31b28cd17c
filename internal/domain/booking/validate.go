package booking

import (
	"errors"
	"time"

	"coworkhub/internal/domain/space"
)

var (
	ErrStartInPast               = errors.New("booking start is in the past")
	ErrEndBeforeStart            = errors.New("booking end must be after start")
	ErrDurationExceeded          = errors.New("booking exceeds the space's maximum duration")
	ErrDurationTooShort          = errors.New("booking is shorter than the minimum duration")
	ErrParticipantCountInvalid   = errors.New("participant count must be between 1 and the space capacity")
	ErrAdvanceNoticeInsufficient = errors.New("booking does not meet the space's advance notice")
)

// MinDuration is the fixed floor for any booking, independent of
// per-space rules.
const MinDuration = 15 * time.Minute

// Validate checks a candidate window against the space rules. Checks
// run in a fixed order and the first failure wins, so callers always
// get a single deterministic reason. Pure: no store access, no ambient
// clock. Conflict detection is a separate, composable step.
//
// Advance notice is enforced as a hard rule here (last check); see
// DESIGN.md for the decision record.
func Validate(start, end time.Time, participantCount int, rules space.Rules, now time.Time) error {
	if start.Before(now) {
		return ErrStartInPast
	}
	if !end.After(start) {
		return ErrEndBeforeStart
	}
	duration := end.Sub(start)
	if duration > rules.MaxDuration() {
		return ErrDurationExceeded
	}
	if duration < MinDuration {
		return ErrDurationTooShort
	}
	if participantCount < 1 || participantCount > rules.Capacity {
		return ErrParticipantCountInvalid
	}
	if start.Sub(now) < rules.AdvanceNotice() {
		return ErrAdvanceNoticeInsufficient
	}
	return nil
}

// InitialStatus is the policy for new bookings: spaces that require
// approval start pending, everything else is confirmed immediately.
func InitialStatus(rules space.Rules) Status {
	if rules.RequiresApproval {
		return StatusPending
	}
	return StatusConfirmed
}
