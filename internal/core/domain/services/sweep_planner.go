package services

import (
	"fmt"
	"time"

	"shoporder/internal/pkg/errs"
)

// SweepAction is the decision the payment reconciler takes for one
// outstanding order during a time sweep.
type SweepAction int

const (
	// SweepNone means the order needs no attention this run.
	SweepNone SweepAction = iota

	// SweepCancel means the order waited past the cancel threshold and must
	// be transitioned to the terminal cancelled status.
	SweepCancel

	// SweepPing means the order passed the reminder threshold, has not been
	// reminded yet, and should receive exactly one payment reminder.
	SweepPing
)

// String returns the action name for logging.
func (a SweepAction) String() string {
	switch a {
	case SweepCancel:
		return "cancel"
	case SweepPing:
		return "ping"
	default:
		return "none"
	}
}

// SweepPlanner decides the cancel/ping/auto-complete sweeps as pure functions
// of time and order flags. It holds no clock itself; callers inject "now", so
// every decision is testable without real time passing.
type SweepPlanner struct {
	cancelAfter   time.Duration
	pingAfter     time.Duration
	completeAfter time.Duration
}

// NewSweepPlanner creates a planner with the three sweep thresholds.
// The reminder threshold must come before the cancel threshold, otherwise an
// order could be cancelled without ever being reminded.
func NewSweepPlanner(cancelAfter, pingAfter, completeAfter time.Duration) (SweepPlanner, error) {
	if cancelAfter <= 0 {
		return SweepPlanner{}, errs.NewValueIsInvalidError("cancelAfter")
	}
	if pingAfter <= 0 || pingAfter >= cancelAfter {
		return SweepPlanner{}, errs.NewValueIsInvalidErrorWithCause("pingAfter",
			fmt.Errorf("%s must be positive and shorter than cancelAfter %s", pingAfter, cancelAfter))
	}
	if completeAfter <= 0 {
		return SweepPlanner{}, errs.NewValueIsInvalidError("completeAfter")
	}

	return SweepPlanner{
		cancelAfter:   cancelAfter,
		pingAfter:     pingAfter,
		completeAfter: completeAfter,
	}, nil
}

// PlanOutstanding decides what to do with one outstanding (unpaid, "new")
// order. Cancellation wins over the reminder when both thresholds have
// passed. The pinged flag makes the reminder at-most-once no matter how many
// times the sweep re-runs.
func (p SweepPlanner) PlanOutstanding(now, insertedAt time.Time, pinged bool) SweepAction {
	age := now.Sub(insertedAt)

	switch {
	case age > p.cancelAfter:
		return SweepCancel
	case !pinged && age > p.pingAfter:
		return SweepPing
	default:
		return SweepNone
	}
}

// ShouldComplete reports whether a sent order has been idle long enough to be
// auto-completed to "done".
func (p SweepPlanner) ShouldComplete(now, updatedAt time.Time) bool {
	return now.Sub(updatedAt) > p.completeAfter
}

// CompleteCutoff returns the updatedAt cutoff matching ShouldComplete, for
// repositories that filter candidates in the database.
func (p SweepPlanner) CompleteCutoff(now time.Time) time.Time {
	return now.Add(-p.completeAfter)
}
