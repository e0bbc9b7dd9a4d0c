package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"cohost/shared/model"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID     = "id"
	FieldUserID = "user_id"
	FieldName   = "name"
	FieldKey    = "key"
	FieldTables = "tables"
	FieldImage  = "image"

	// DefaultKey is the conventional room every account starts with.
	DefaultKey = "main"
)

// Table display states. Seated is never stored; it is derived from the
// party occupying the table.
const (
	TableStateReady    = "ready"
	TableStateSeated   = "seated"
	TableStateNotReady = "not-ready"
)

// Table is a seating unit embedded in a room layout. Tables are not
// independently addressable; their ids are unique within the room only.
type Table struct {
	ID        int    `json:"id"`
	Section   string `json:"section"`
	Number    int    `json:"number"`
	Capacity  int    `json:"capacity"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Shape     string `json:"shape"`
	Handicap  bool   `json:"handicap"`
	Highchair bool   `json:"highchair"`
	Window    bool   `json:"window"`
	State     string `json:"state"`
}

// Tables is stored as a JSONB column.
type Tables []Table

func (t Tables) Value() (driver.Value, error) {
	value, err := json.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tables: %w", err)
	}

	return value, nil
}

func (t *Tables) Scan(src any) error {
	var raw []byte

	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	case nil:
		*t = Tables{}

		return nil
	default:
		return fmt.Errorf("unsupported type for tables column: %T", src)
	}

	if err := json.Unmarshal(raw, t); err != nil {
		return fmt.Errorf("failed to unmarshal tables: %w", err)
	}

	return nil
}

type Room struct {
	ID     string `db:"id"`
	UserID string `db:"user_id"`
	Name   string `db:"name"`
	Key    string `db:"key"`
	Tables Tables `db:"tables"`
	Image  string `db:"image"`
	model.Metadata
}
