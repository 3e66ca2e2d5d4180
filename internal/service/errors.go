package service

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound             = errors.New("record not found")
	ErrAlreadyResolved      = errors.New("request already resolved")
	ErrMissingAdminIdentity = errors.New("admin identity is required")
	ErrInvalidAction        = errors.New("action must be approve or reject")
	ErrInvalidRecipient     = errors.New("invalid recipient address")
	ErrInvalidSubmission    = errors.New("invalid submission")
	ErrNoProfileFound       = errors.New("no contact profile found for organization")
	ErrSnapshotInsertFailed = errors.New("pending registration snapshot insert failed")
)

// DeletedItem summarizes one resource class removed by the unapprove cascade.
type DeletedItem struct {
	Resource string `json:"resource"`
	Count    int64  `json:"count"`
}

func (d DeletedItem) String() string {
	return fmt.Sprintf("%d %s", d.Count, d.Resource)
}

// UnapproveSummary is returned after a fully successful cascade.
type UnapproveSummary struct {
	PendingRegistrationID string        `json:"pending_registration_id"`
	OrganizationName      string        `json:"organization_name"`
	ContactEmail          string        `json:"contact_email"`
	Deleted               []DeletedItem `json:"deleted"`
}

// CascadeError reports a failure partway through the unapprove cascade. The
// deletes are not transactional across the store and the identity provider,
// so the error carries which step failed and everything that already
// succeeded, for manual reconciliation.
type CascadeError struct {
	Step      string
	Completed []DeletedItem
	Err       error
}

func (e *CascadeError) Error() string {
	return fmt.Sprintf("unapprove cascade failed at step %q after %d completed deletions: %v", e.Step, len(e.Completed), e.Err)
}

func (e *CascadeError) Unwrap() error {
	return e.Err
}
