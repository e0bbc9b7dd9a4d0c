package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cohost/internal/domains/party/model"
	roomModel "cohost/internal/domains/room/model"
)

func TestAssignTable(t *testing.T) {
	tests := []struct {
		name       string
		party      model.Party
		candidates []roomModel.Table
		wantID     int
		wantNone   bool
	}{
		{
			name:     "no ready tables",
			party:    model.Party{Size: 2},
			wantNone: true,
			candidates: []roomModel.Table{
				{ID: 1, Capacity: 4, State: roomModel.TableStateSeated},
				{ID: 2, Capacity: 4, State: roomModel.TableStateNotReady},
			},
		},
		{
			name:  "full match preferred",
			party: model.Party{Size: 2, Window: true},
			candidates: []roomModel.Table{
				{ID: 1, Capacity: 4, State: roomModel.TableStateReady},
				{ID: 2, Capacity: 2, Window: true, State: roomModel.TableStateReady},
			},
			wantID: 2,
		},
		{
			name:  "window relaxed before highchair",
			party: model.Party{Size: 2, Window: true, Highchair: true},
			candidates: []roomModel.Table{
				{ID: 1, Capacity: 4, State: roomModel.TableStateReady},
				{ID: 2, Capacity: 4, Highchair: true, State: roomModel.TableStateReady},
			},
			wantID: 2,
		},
		{
			name:  "handicap never relaxed for a bigger table",
			party: model.Party{Size: 2, Handicap: true, Window: true},
			candidates: []roomModel.Table{
				{ID: 1, Capacity: 8, Window: true, State: roomModel.TableStateReady},
				{ID: 2, Capacity: 2, Handicap: true, State: roomModel.TableStateReady},
			},
			wantID: 2,
		},
		{
			name:  "undersized ready table as last resort",
			party: model.Party{Size: 6},
			candidates: []roomModel.Table{
				{ID: 1, Capacity: 2, State: roomModel.TableStateReady},
				{ID: 2, Capacity: 8, State: roomModel.TableStateSeated},
			},
			wantID: 1,
		},
		{
			name:  "first table wins within a tier",
			party: model.Party{Size: 2},
			candidates: []roomModel.Table{
				{ID: 3, Capacity: 4, State: roomModel.TableStateReady},
				{ID: 4, Capacity: 4, State: roomModel.TableStateReady},
			},
			wantID: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := model.AssignTable(tt.party, tt.candidates)

			if tt.wantNone {
				assert.Nil(t, table)

				return
			}

			if assert.NotNil(t, table) {
				assert.Equal(t, tt.wantID, table.ID)
			}
		})
	}
}
