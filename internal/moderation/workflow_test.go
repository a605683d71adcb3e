package moderation

import (
	"testing"

	"rewear-service/internal/apperr"
	"rewear-service/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestApprove(t *testing.T) {
	tests := []struct {
		name      string
		actorRole string
		current   string
		wantErr   error
	}{
		{
			name:      "admin approves pending listing",
			actorRole: model.RoleAdmin,
			current:   model.StatusPending,
		},
		{
			name:      "re-approving an approved listing succeeds",
			actorRole: model.RoleAdmin,
			current:   model.StatusApproved,
		},
		{
			name:      "admin approves a rejected listing",
			actorRole: model.RoleAdmin,
			current:   model.StatusRejected,
		},
		{
			name:      "regular user may not approve",
			actorRole: model.RoleUser,
			current:   model.StatusPending,
			wantErr:   apperr.ErrForbidden,
		},
		{
			name:      "no transition out of sold",
			actorRole: model.RoleAdmin,
			current:   model.StatusSold,
			wantErr:   apperr.ErrConflict,
		},
		{
			name:      "unknown status is rejected",
			actorRole: model.RoleAdmin,
			current:   "archived",
			wantErr:   apperr.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome, err := Approve(tt.actorRole, tt.current)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, model.StatusApproved, outcome.Status)
			assert.Empty(t, outcome.RejectionReason, "approval must clear the rejection reason")
		})
	}
}

func TestReject(t *testing.T) {
	t.Run("reason is recorded", func(t *testing.T) {
		outcome, err := Reject(model.RoleAdmin, model.StatusPending, "Low-quality photos")
		assert.NoError(t, err)
		assert.Equal(t, model.StatusRejected, outcome.Status)
		assert.Equal(t, "Low-quality photos", outcome.RejectionReason)
	})

	t.Run("empty reason falls back to the default", func(t *testing.T) {
		outcome, err := Reject(model.RoleAdmin, model.StatusPending, "")
		assert.NoError(t, err)
		assert.Equal(t, DefaultRejectionReason, outcome.RejectionReason)
	})

	t.Run("rejecting an approved listing overwrites the decision", func(t *testing.T) {
		outcome, err := Reject(model.RoleAdmin, model.StatusApproved, "")
		assert.NoError(t, err)
		assert.Equal(t, model.StatusRejected, outcome.Status)
		assert.Equal(t, DefaultRejectionReason, outcome.RejectionReason)
	})

	t.Run("regular user may not reject", func(t *testing.T) {
		_, err := Reject(model.RoleUser, model.StatusPending, "nope")
		assert.ErrorIs(t, err, apperr.ErrForbidden)
	})

	t.Run("no transition out of sold", func(t *testing.T) {
		_, err := Reject(model.RoleAdmin, model.StatusSold, "late")
		assert.ErrorIs(t, err, apperr.ErrConflict)
	})
}

func TestReviseDecision(t *testing.T) {
	t.Run("non-admin edit forces re-review", func(t *testing.T) {
		for _, current := range []string{model.StatusPending, model.StatusApproved, model.StatusRejected} {
			status, resetReason := ReviseDecision(model.RoleUser, current)
			assert.Equal(t, model.StatusPending, status)
			assert.True(t, resetReason)
		}
	})

	t.Run("admin edit preserves the current status", func(t *testing.T) {
		status, resetReason := ReviseDecision(model.RoleAdmin, model.StatusApproved)
		assert.Equal(t, model.StatusApproved, status)
		assert.False(t, resetReason)
	})
}
