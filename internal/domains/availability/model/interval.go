package model

import (
	"time"

	"hotel/config"
	"hotel/shared/failure"
	"hotel/shared/timezone"
)

// Interval is a stay [Start, End). Under an inclusive policy End is also occupied.
type Interval struct {
	Start time.Time
	End   time.Time
}

// ValidateInterval requires start to be strictly before end.
func ValidateInterval(start, end time.Time) error {
	if !start.Before(end) {
		return failure.ErrInvalidRange
	}

	return nil
}

// Policy decides how stays are compared. The zero value compares calendar
// dates in the application timezone with an exclusive check-out day.
type Policy struct {
	// InclusiveCheckout treats the check-out day as occupied, so back-to-back stays conflict.
	InclusiveCheckout bool
	// KeepTimeOfDay compares timestamps as given instead of truncating them to dates.
	KeepTimeOfDay bool
}

func NewPolicy(cfg *config.Config) Policy {
	return Policy{
		InclusiveCheckout: cfg.Availability.InclusiveCheckout,
		KeepTimeOfDay:     cfg.Availability.KeepTimeOfDay,
	}
}

// Normalize maps a timestamp onto the granularity the policy compares at.
func (p Policy) Normalize(t time.Time) time.Time {
	if p.KeepTimeOfDay {
		return t
	}

	local := timezone.ToAppTime(t)
	year, month, day := local.Date()

	return time.Date(year, month, day, 0, 0, 0, 0, local.Location())
}

// NewInterval normalizes both ends and validates the result.
func (p Policy) NewInterval(start, end time.Time) (Interval, error) {
	interval := Interval{Start: p.Normalize(start), End: p.Normalize(end)}

	if err := ValidateInterval(interval.Start, interval.End); err != nil {
		return Interval{}, err
	}

	return interval, nil
}

// Overlaps reports whether two already normalized intervals share an occupied instant.
func (p Policy) Overlaps(a, b Interval) bool {
	if p.InclusiveCheckout {
		return !a.Start.After(b.End) && !b.Start.After(a.End)
	}

	return a.Start.Before(b.End) && b.Start.Before(a.End)
}
