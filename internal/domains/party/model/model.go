package model

import (
	"time"

	"cohost/shared/model"
)

const (
	TableName  = "parties"
	EntityName = "party"

	FieldID            = "id"
	FieldUserID        = "user_id"
	FieldName          = "name"
	FieldSize          = "size"
	FieldPhone         = "phone"
	FieldNotes         = "notes"
	FieldRoomKey       = "room_key"
	FieldState         = "state"
	FieldTableID       = "table_id"
	FieldQuotedMinutes = "quoted_minutes"
	FieldRequestedTime = "requested_time"
	FieldHandicap      = "handicap"
	FieldHighchair     = "highchair"
	FieldWindow        = "window_seat"
	FieldAddedAt       = "added_at"
	FieldSeatedAt      = "seated_at"
	FieldCompletedAt   = "completed_at"
	FieldCancelledAt   = "cancelled_at"
	FieldCancelReason  = "cancel_reason"
	FieldVersion       = "version"
)

// Party states.
const (
	StateWaiting   = "waiting"
	StateSeated    = "seated"
	StateCompleted = "completed"
	StateCancelled = "cancelled"
)

// CurrentStates are the states shown on the live waitlist board.
var CurrentStates = []string{StateWaiting, StateSeated}

// HistoryStates are the terminal states shown in (and purged from) history.
var HistoryStates = []string{StateCompleted, StateCancelled}

func IsValidState(state string) bool {
	switch state {
	case StateWaiting, StateSeated, StateCompleted, StateCancelled:
		return true
	default:
		return false
	}
}

type Party struct {
	ID            string     `db:"id"`
	UserID        string     `db:"user_id"`
	Name          string     `db:"name"`
	Size          int        `db:"size"`
	Phone         string     `db:"phone"`
	Notes         string     `db:"notes"`
	RoomKey       string     `db:"room_key"`
	State         string     `db:"state"`
	TableID       *int       `db:"table_id"`
	QuotedMinutes *int       `db:"quoted_minutes"`
	RequestedTime *time.Time `db:"requested_time"`
	Handicap      bool       `db:"handicap"`
	Highchair     bool       `db:"highchair"`
	Window        bool       `db:"window_seat"`
	AddedAt       time.Time  `db:"added_at"`
	SeatedAt      *time.Time `db:"seated_at"`
	CompletedAt   *time.Time `db:"completed_at"`
	CancelledAt   *time.Time `db:"cancelled_at"`
	CancelReason  string     `db:"cancel_reason"`
	Version       int        `db:"version"`
	model.Metadata
}
