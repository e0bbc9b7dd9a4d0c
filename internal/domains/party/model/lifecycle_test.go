package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"cohost/internal/domains/party/model"
)

func TestTransitionFields(t *testing.T) {
	now := time.Date(2026, 3, 14, 19, 30, 0, 0, time.UTC)
	tableID := 5

	tests := []struct {
		name    string
		target  string
		extras  model.TransitionExtras
		want    map[string]any
		wantErr bool
	}{
		{
			name:   "seated with table",
			target: model.StateSeated,
			extras: model.TransitionExtras{TableID: &tableID},
			want: map[string]any{
				model.FieldState:    model.StateSeated,
				model.FieldSeatedAt: now,
				model.FieldTableID:  5,
			},
		},
		{
			name:   "seated without table leaves table untouched",
			target: model.StateSeated,
			want: map[string]any{
				model.FieldState:    model.StateSeated,
				model.FieldSeatedAt: now,
			},
		},
		{
			name:   "completed clears table",
			target: model.StateCompleted,
			want: map[string]any{
				model.FieldState:       model.StateCompleted,
				model.FieldCompletedAt: now,
				model.FieldTableID:     nil,
			},
		},
		{
			name:   "cancelled with reason",
			target: model.StateCancelled,
			extras: model.TransitionExtras{CancelReason: "no show"},
			want: map[string]any{
				model.FieldState:        model.StateCancelled,
				model.FieldCancelledAt:  now,
				model.FieldTableID:      nil,
				model.FieldCancelReason: "no show",
			},
		},
		{
			name:   "cancelled without reason keeps existing reason",
			target: model.StateCancelled,
			want: map[string]any{
				model.FieldState:       model.StateCancelled,
				model.FieldCancelledAt: now,
				model.FieldTableID:     nil,
			},
		},
		{
			name:   "back to waiting clears table but never seatedAt",
			target: model.StateWaiting,
			want: map[string]any{
				model.FieldState:   model.StateWaiting,
				model.FieldTableID: nil,
			},
		},
		{
			name:    "unknown target rejected",
			target:  "teleported",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields, err := model.TransitionFields(tt.target, tt.extras, now)

			if tt.wantErr {
				assert.ErrorIs(t, err, model.ErrUnknownState)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, fields)

			// seatedAt is stamped only by the seated transition, never
			// cleared by any other.
			if tt.target != model.StateSeated {
				_, touched := fields[model.FieldSeatedAt]
				assert.False(t, touched)
			}
		})
	}
}

func TestIsValidState(t *testing.T) {
	for _, state := range []string{model.StateWaiting, model.StateSeated, model.StateCompleted, model.StateCancelled} {
		assert.True(t, model.IsValidState(state))
	}

	assert.False(t, model.IsValidState(""))
	assert.False(t, model.IsValidState("WAITING"))
	assert.False(t, model.IsValidState("done"))
}
