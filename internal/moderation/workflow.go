// Package moderation holds the listing moderation state machine: which
// status transitions exist and which role may trigger them. All decisions
// are pure; persistence is the repository's job, so an unauthorized attempt
// can never leave a partial mutation behind.
package moderation

import (
	"rewear-service/internal/apperr"
	"rewear-service/internal/model"
)

// DefaultRejectionReason is recorded when an admin rejects a listing
// without supplying a reason.
const DefaultRejectionReason = "No reason provided"

// Outcome is the resolved result of an admin moderation decision
type Outcome struct {
	Status          string
	RejectionReason string
}

// Approve resolves an approval attempt by actorRole on a listing currently
// in the given status. Re-approving an approved listing is a no-op
// state-wise but still succeeds, so the caller refreshes the timestamp.
func Approve(actorRole, current string) (Outcome, error) {
	if err := checkDecision(actorRole, current); err != nil {
		return Outcome{}, err
	}

	// Approval always clears any previous rejection reason
	return Outcome{Status: model.StatusApproved, RejectionReason: ""}, nil
}

// Reject resolves a rejection attempt. An empty reason falls back to
// DefaultRejectionReason; re-rejecting overwrites the stored reason.
func Reject(actorRole, current, reason string) (Outcome, error) {
	if err := checkDecision(actorRole, current); err != nil {
		return Outcome{}, err
	}

	if reason == "" {
		reason = DefaultRejectionReason
	}
	return Outcome{Status: model.StatusRejected, RejectionReason: reason}, nil
}

// ReviseDecision resolves the implicit transition caused by a content edit:
// a non-admin edit sends an already-moderated listing back to review and
// invalidates any stored rejection reason. Admin edits preserve the current
// status.
func ReviseDecision(editorRole, current string) (status string, resetReason bool) {
	if editorRole == model.RoleAdmin {
		return current, false
	}
	return model.StatusPending, true
}

// checkDecision validates role and current state before any transition is
// attempted. Authorization is checked first so a non-admin never learns
// anything about the listing's state.
func checkDecision(actorRole, current string) error {
	if actorRole != model.RoleAdmin {
		return apperr.ErrForbidden
	}
	if !model.ValidStatus(current) {
		return apperr.Validationf("unknown listing status %q", current)
	}
	if current == model.StatusSold {
		// sold is terminal; no transition out of it exists
		return apperr.ErrConflict
	}
	return nil
}
