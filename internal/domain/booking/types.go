package booking

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
	StatusRejected  Status = "rejected"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted, StatusRejected:
		return true
	default:
		return false
	}
}

// Active reports whether a booking in this status blocks other bookings
// on the same space. Cancelled and rejected bookings never block;
// completed ones are historical.
func (s Status) Active() bool {
	return s == StatusPending || s == StatusConfirmed
}

type RecurrenceType string

const (
	RecurNone    RecurrenceType = "none"
	RecurDaily   RecurrenceType = "daily"
	RecurWeekly  RecurrenceType = "weekly"
	RecurMonthly RecurrenceType = "monthly"
)

func (t RecurrenceType) IsValid() bool {
	switch t {
	case RecurNone, RecurDaily, RecurWeekly, RecurMonthly:
		return true
	default:
		return false
	}
}

// Recurrence describes how a template booking repeats. The zero value
// means a single occurrence.
type Recurrence struct {
	Type     RecurrenceType
	Interval int
}

func (r Recurrence) IsRecurring() bool {
	return r.Type != "" && r.Type != RecurNone && r.Interval > 0
}
