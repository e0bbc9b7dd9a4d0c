package model

import (
	roomModel "cohost/internal/domains/room/model"
)

// EffectiveTableStates derives the display state of each table in a room
// from the parties currently seated there. A table shows seated iff some
// party in the room is in state seated with a matching table id; otherwise
// the table's own stored state (ready or not-ready) is authoritative. The
// result is a new slice; the stored layout is never mutated.
func EffectiveTableStates(tables roomModel.Tables, roomKey string, parties []Party) roomModel.Tables {
	occupied := make(map[int]bool, len(parties))

	for _, party := range parties {
		if party.State == StateSeated && party.TableID != nil && party.RoomKey == roomKey {
			occupied[*party.TableID] = true
		}
	}

	derived := make(roomModel.Tables, len(tables))

	for i, table := range tables {
		derived[i] = table

		if occupied[table.ID] {
			derived[i].State = roomModel.TableStateSeated
		} else if table.State == roomModel.TableStateSeated {
			// A stored seated flag with no party behind it is stale.
			derived[i].State = roomModel.TableStateNotReady
		}
	}

	return derived
}
