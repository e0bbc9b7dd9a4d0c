package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cohost/internal/domains/party/model"
	roomModel "cohost/internal/domains/room/model"
)

func intPtr(v int) *int {
	return &v
}

func TestEffectiveTableStates(t *testing.T) {
	tables := roomModel.Tables{
		{ID: 1, State: roomModel.TableStateReady},
		{ID: 2, State: roomModel.TableStateNotReady},
		{ID: 3, State: roomModel.TableStateSeated},
	}

	parties := []model.Party{
		{State: model.StateSeated, RoomKey: "main", TableID: intPtr(1)},
		{State: model.StateWaiting, RoomKey: "main", TableID: intPtr(2)},
		{State: model.StateSeated, RoomKey: "patio", TableID: intPtr(3)},
	}

	derived := model.EffectiveTableStates(tables, "main", parties)

	// Seated party claims table 1.
	assert.Equal(t, roomModel.TableStateSeated, derived[0].State)

	// Waiting party never claims a table.
	assert.Equal(t, roomModel.TableStateNotReady, derived[1].State)

	// A stored seated flag with no party behind it in this room is stale.
	assert.Equal(t, roomModel.TableStateNotReady, derived[2].State)

	// The stored layout is untouched.
	assert.Equal(t, roomModel.TableStateReady, tables[0].State)
	assert.Equal(t, roomModel.TableStateSeated, tables[2].State)
}
