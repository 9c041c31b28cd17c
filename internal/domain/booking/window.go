package booking

import (
	"errors"
	"time"
)

var ErrInvalidWindow = errors.New("window end must be after start")

// Window is a half-open time span [start, end). Two windows touching
// end-to-start do not overlap, so back-to-back bookings are allowed.
type Window struct {
	start time.Time
	end   time.Time
}

func NewWindow(start, end time.Time) (Window, error) {
	if !end.After(start) {
		return Window{}, ErrInvalidWindow
	}
	return Window{start: start, end: end}, nil
}

func (w Window) Start() time.Time {
	return w.start
}

func (w Window) End() time.Time {
	return w.end
}

func (w Window) Duration() time.Duration {
	return w.end.Sub(w.start)
}

func (w Window) Minutes() int {
	return int(w.Duration() / time.Minute)
}

func (w Window) Overlaps(other Window) bool {
	return w.start.Before(other.end) && other.start.Before(w.end)
}

func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.start) && t.Before(w.end)
}
