package challenge

import (
	"context"
	"time"
)

// Decision is a judge's verdict on a single event
type Decision int

const (
	// DecisionAccept resolves the wait with the current event
	DecisionAccept Decision = iota

	// DecisionReject skips the event and keeps waiting. The judge is
	// expected to have told the rejected participant why.
	DecisionReject
)

// Await consumes events until the judge accepts one, the timeout elapses,
// the event source closes, or the context is cancelled. The first accepted
// event wins; events arriving after that are never read. It returns
// ErrExpired when the wait ends without an accepted event.
func Await[E any](ctx context.Context, events <-chan E, timeout time.Duration, judge func(E) Decision) (E, error) {
	var zero E

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-timer.C:
			return zero, ErrExpired
		case event, ok := <-events:
			if !ok {
				return zero, ErrExpired
			}

			if judge(event) == DecisionAccept {
				return event, nil
			}
		}
	}
}
