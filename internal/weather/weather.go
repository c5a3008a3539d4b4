// Package weather resolves a forecast condition for a class date. The
// lookup is best-effort: callers treat failures as non-fatal and fall
// back to an overcast default.
package weather

import (
	"context"
	"fmt"
	"time"

	"github.com/ecarvalho/aulaplan/internal/plan"
)

// DefaultCity is where the program's classes are held.
const DefaultCity = "Pedro Osório, RS"

// Forecaster resolves the expected condition for a date and location.
type Forecaster interface {
	Forecast(ctx context.Context, date string, city string) (plan.Condition, error)
}

// ErrLookupFailed reports a failed forecast lookup. Non-fatal: callers
// substitute plan.Cloudy and show an inline notice.
type ErrLookupFailed struct {
	Date string
	Err  error
}

func (e *ErrLookupFailed) Error() string {
	return fmt.Sprintf("weather lookup for %s failed: %v", e.Date, e.Err)
}

func (e *ErrLookupFailed) Unwrap() error { return e.Err }

// Simulated is a deterministic Forecaster that derives the condition from
// the day of the month. It stands in for a real forecast API, which cannot
// predict class dates weeks out anyway.
type Simulated struct {
	// Delay imitates network latency. Zero means resolve immediately.
	Delay time.Duration
}

// Forecast derives a pseudo-random condition from the date.
func (s *Simulated) Forecast(ctx context.Context, date string, city string) (plan.Condition, error) {
	t, err := time.Parse(plan.DateFormat, date)
	if err != nil {
		return plan.Cloudy, &ErrLookupFailed{Date: date, Err: err}
	}

	if s.Delay > 0 {
		select {
		case <-ctx.Done():
			return plan.Cloudy, &ErrLookupFailed{Date: date, Err: ctx.Err()}
		case <-time.After(s.Delay):
		}
	}

	switch t.Day() % 3 {
	case 0:
		return plan.Rainy, nil
	case 1:
		return plan.Cloudy, nil
	default:
		return plan.Sunny, nil
	}
}
