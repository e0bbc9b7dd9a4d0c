package model

import (
	"errors"
	"fmt"
	"time"
)

var ErrUnknownState = errors.New("unknown party state")

// TransitionExtras carries the optional inputs a state change may take.
type TransitionExtras struct {
	TableID      *int
	CancelReason string
}

// TransitionFields computes the column changes for moving a party into the
// target state. Timestamps already stamped on the party are never cleared:
// re-seating overwrites seatedAt, but leaving seated keeps it, so wait-time
// metrics survive later transitions.
func TransitionFields(target string, extras TransitionExtras, now time.Time) (map[string]any, error) {
	fields := map[string]any{FieldState: target}

	switch target {
	case StateSeated:
		fields[FieldSeatedAt] = now
		if extras.TableID != nil {
			fields[FieldTableID] = *extras.TableID
		}
	case StateCompleted:
		fields[FieldCompletedAt] = now
		fields[FieldTableID] = nil
	case StateCancelled:
		fields[FieldCancelledAt] = now
		fields[FieldTableID] = nil
		if extras.CancelReason != "" {
			fields[FieldCancelReason] = extras.CancelReason
		}
	case StateWaiting:
		fields[FieldTableID] = nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownState, target)
	}

	return fields, nil
}
