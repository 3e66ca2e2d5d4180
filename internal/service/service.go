package service

import (
	"context"

	"hess-portal-backend/internal/diff"
	"hess-portal-backend/internal/domain"
)

// ResolveAction is an admin decision on a pending registration update request.
type ResolveAction string

const (
	ActionApprove ResolveAction = "approve"
	ActionReject  ResolveAction = "reject"
)

type ApprovalService interface {
	// Resolve transitions a pending request to approved or rejected. Approval
	// of a member update applies the submitted fields to the target
	// organization and its contact profile before the status flip.
	Resolve(ctx context.Context, requestID string, action ResolveAction, adminUserID, adminNotes string) (*domain.RegistrationUpdateRequest, error)
	ListPending(ctx context.Context) ([]domain.RegistrationUpdateRequest, error)
	// Changes computes the grouped field-level diff an admin reviews before
	// resolving a request.
	Changes(ctx context.Context, requestID string) ([]diff.Section, error)
}

type UnapproveService interface {
	UnapproveOrganization(ctx context.Context, orgID, adminUserID string) (*UnapproveSummary, error)
}

type RegistrationService interface {
	Submit(ctx context.Context, input SubmissionInput) (*domain.RegistrationUpdateRequest, error)
	ApproveNewMemberRequest(ctx context.Context, requestID, adminUserID string) (string, error)
	ApprovePendingRegistration(ctx context.Context, pendingID, adminUserID string) (string, error)
}

type EmailService interface {
	// Send renders the named template with data and delivers it to recipient.
	// Every attempt, successful or not, is recorded in the delivery log.
	Send(ctx context.Context, emailType, recipient string, data map[string]string) error
}

// IdentityService wraps the external authentication identity provider.
type IdentityService interface {
	CreateUser(ctx context.Context, email, displayName string) (string, error)
	DeleteUser(ctx context.Context, uid string) error
	UpdateUserEmail(ctx context.Context, uid, email string) error
	PasswordResetLink(ctx context.Context, email string) (string, error)
	VerifyIDToken(ctx context.Context, idToken string) (*IdentityClaims, error)
}

// IdentityClaims is the subset of provider token claims the portal uses.
type IdentityClaims struct {
	UID   string
	Email string
	Admin bool
}
