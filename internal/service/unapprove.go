package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"hess-portal-backend/internal/domain"
	"hess-portal-backend/internal/logger"
	"hess-portal-backend/internal/repository"
)

type unapproveService struct {
	orgRepo     repository.OrganizationRepository
	profileRepo repository.ProfileRepository
	pendingRepo repository.PendingRegistrationRepository
	invoiceRepo repository.InvoiceRepository
	inviteRepo  repository.InvitationRepository
	memberRepo  repository.MemberRequestRepository
	auditRepo   repository.AuditLogRepository
	identity    IdentityService
	emailSvc    EmailService
}

func NewUnapproveService(
	orgRepo repository.OrganizationRepository,
	profileRepo repository.ProfileRepository,
	pendingRepo repository.PendingRegistrationRepository,
	invoiceRepo repository.InvoiceRepository,
	inviteRepo repository.InvitationRepository,
	memberRepo repository.MemberRequestRepository,
	auditRepo repository.AuditLogRepository,
	identity IdentityService,
	emailSvc EmailService,
) UnapproveService {
	return &unapproveService{
		orgRepo:     orgRepo,
		profileRepo: profileRepo,
		pendingRepo: pendingRepo,
		invoiceRepo: invoiceRepo,
		inviteRepo:  inviteRepo,
		memberRepo:  memberRepo,
		auditRepo:   auditRepo,
		identity:    identity,
		emailSvc:    emailSvc,
	}
}

// UnapproveOrganization reverses an approval: it snapshots the organization
// and its contact back into the pending-registration queue, then deletes
// every row referencing the organization, in a fixed order, finishing with
// the auth identity. Referencing rows go first so no step leaves an orphaned
// foreign key behind.
//
// The snapshot insert is the last non-destructive step; everything after it
// mutates shared state with no transaction spanning the store and the
// identity provider, so a mid-cascade failure returns a *CascadeError naming
// the failed step and the deletions that already happened.
func (s *unapproveService) UnapproveOrganization(ctx context.Context, orgID, adminUserID string) (*UnapproveSummary, error) {
	if adminUserID == "" {
		return nil, ErrMissingAdminIdentity
	}

	// Step 1: the organization must exist.
	org, err := s.orgRepo.GetByID(ctx, orgID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}

	// Step 2: resolve the contact profile, falling back to a lookup by
	// organization name for legacy rows without contact_person_id.
	profile, err := s.resolveProfile(ctx, org)
	if err != nil {
		return nil, err
	}

	// Step 3: idempotent cleanup of any previous snapshot for this email.
	if _, err := s.pendingRepo.DeleteByEmail(ctx, profile.Email); err != nil {
		return nil, fmt.Errorf("failed to clear existing pending registration: %w", err)
	}

	// Step 4: insert the snapshot. A failure here aborts the whole operation
	// before any destructive delete runs.
	pending := &domain.PendingRegistration{
		Email:          profile.Email,
		ApprovalStatus: domain.RequestStatusPending,
		Data:           buildSnapshot(org, profile),
	}
	if err := s.pendingRepo.Create(ctx, pending); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSnapshotInsertFailed, err)
	}

	// Step 5: fixed-order deletes.
	var completed []DeletedItem
	record := func(resource string, count int64) {
		completed = append(completed, DeletedItem{Resource: resource, Count: count})
	}

	type deleteStep struct {
		name string
		run  func() (int64, error)
	}
	steps := []deleteStep{
		{"invoices", func() (int64, error) { return s.invoiceRepo.DeleteByOrganization(ctx, orgID) }},
		{"invitations", func() (int64, error) { return s.inviteRepo.DeleteByOrganization(ctx, orgID) }},
		{"transfer_requests", func() (int64, error) { return s.memberRepo.DeleteTransfersByOrganization(ctx, orgID) }},
		{"reassignment_requests", func() (int64, error) { return s.memberRepo.DeleteReassignmentsByOrganization(ctx, orgID) }},
	}
	if profile.UserID != "" {
		steps = append(steps, deleteStep{"user_roles", func() (int64, error) { return s.profileRepo.DeleteRolesByUser(ctx, profile.UserID) }})
	}
	steps = append(steps,
		deleteStep{"organizations", func() (int64, error) { return s.orgRepo.Delete(ctx, orgID) }},
		// The organization FK is configured to cascade the profile, but the
		// profile is deleted explicitly as well in case the FK is missing on
		// an older schema. A zero count here is normal.
		deleteStep{"profiles", func() (int64, error) { return s.profileRepo.Delete(ctx, profile.ID) }},
	)

	for _, step := range steps {
		count, err := step.run()
		if err != nil {
			return nil, &CascadeError{Step: step.name, Completed: completed, Err: err}
		}
		record(step.name, count)
	}

	if profile.UserID != "" {
		if err := s.identity.DeleteUser(ctx, profile.UserID); err != nil {
			return nil, &CascadeError{Step: "auth_identity", Completed: completed, Err: err}
		}
		record("auth_identity", 1)
	}

	// Step 6: audit trail.
	details := map[string]any{
		"organization_name":       org.Name,
		"contact_email":           profile.Email,
		"pending_registration_id": pending.ID,
		"deleted":                 completed,
	}
	if err := s.auditRepo.Insert(ctx, &domain.AuditLogEntry{
		Action:     "organization_unapproved",
		EntityType: "organization",
		EntityID:   orgID,
		ActorID:    adminUserID,
		Details:    details,
	}); err != nil {
		return nil, &CascadeError{Step: "audit_log", Completed: completed, Err: err}
	}

	// Best-effort notice to the contact; the cascade already succeeded.
	if err := s.emailSvc.Send(ctx, EmailTypeMembershipPending, profile.Email, map[string]string{
		"first_name": profile.FirstName,
		"org_name":   org.Name,
	}); err != nil {
		logger.Warn("Failed to send membership-pending email", "recipient", profile.Email, "error", err)
	}

	logger.Info("Organization unapproved",
		"organization_id", orgID, "organization_name", org.Name,
		"pending_registration_id", pending.ID, "deleted_resources", len(completed))

	return &UnapproveSummary{
		PendingRegistrationID: pending.ID,
		OrganizationName:      org.Name,
		ContactEmail:          profile.Email,
		Deleted:               completed,
	}, nil
}

func (s *unapproveService) resolveProfile(ctx context.Context, org *domain.Organization) (*domain.Profile, error) {
	if org.ContactPersonID != nil {
		profile, err := s.profileRepo.GetByID(ctx, *org.ContactPersonID)
		if err == nil {
			return profile, nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("failed to get contact profile: %w", err)
		}
	}

	profile, err := s.profileRepo.GetByOrganizationName(ctx, org.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoProfileFound
		}
		return nil, fmt.Errorf("failed to look up profile by organization name: %w", err)
	}
	return profile, nil
}

// buildSnapshot merges profile fields over organization fields into the
// free-form map a pending registration carries. Profile wins for
// contact-shaped keys, organization for everything else.
func buildSnapshot(org *domain.Organization, profile *domain.Profile) map[string]any {
	return organizationFieldMap(org, profile)
}
