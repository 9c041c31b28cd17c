package booking

// Conflicts returns every member of existing that blocks the candidate:
// same space, still active (pending or confirmed), and overlapping on
// the half-open window comparison. A booking never conflicts with
// itself, which lets reschedules reuse the same scan. Result order
// follows the input; a linear scan is all the engine promises.
func Conflicts(candidate *Booking, existing []*Booking) []*Booking {
	var conflicts []*Booking
	for _, other := range existing {
		if other.ID() == candidate.ID() {
			continue
		}
		if other.SpaceID() != candidate.SpaceID() {
			continue
		}
		if !other.Status().Active() {
			continue
		}
		if candidate.Window().Overlaps(other.Window()) {
			conflicts = append(conflicts, other)
		}
	}
	return conflicts
}

// HasConflict is a short-circuit variant of Conflicts for callers that
// only need a yes/no answer.
func HasConflict(candidate *Booking, existing []*Booking) bool {
	for _, other := range existing {
		if other.ID() == candidate.ID() || other.SpaceID() != candidate.SpaceID() {
			continue
		}
		if other.Status().Active() && candidate.Window().Overlaps(other.Window()) {
			return true
		}
	}
	return false
}
