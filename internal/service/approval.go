package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"hess-portal-backend/internal/diff"
	"hess-portal-backend/internal/domain"
	"hess-portal-backend/internal/logger"
	"hess-portal-backend/internal/repository"
)

type approvalService struct {
	reqRepo     repository.UpdateRequestRepository
	orgRepo     repository.OrganizationRepository
	profileRepo repository.ProfileRepository
	auditRepo   repository.AuditLogRepository
	emailSvc    EmailService
	tx          repository.Transactor
}

func NewApprovalService(
	reqRepo repository.UpdateRequestRepository,
	orgRepo repository.OrganizationRepository,
	profileRepo repository.ProfileRepository,
	auditRepo repository.AuditLogRepository,
	emailSvc EmailService,
	tx repository.Transactor,
) ApprovalService {
	return &approvalService{
		reqRepo:     reqRepo,
		orgRepo:     orgRepo,
		profileRepo: profileRepo,
		auditRepo:   auditRepo,
		emailSvc:    emailSvc,
		tx:          tx,
	}
}

func (s *approvalService) Resolve(ctx context.Context, requestID string, action ResolveAction, adminUserID, adminNotes string) (*domain.RegistrationUpdateRequest, error) {
	if adminUserID == "" {
		return nil, ErrMissingAdminIdentity
	}
	if action != ActionApprove && action != ActionReject {
		return nil, ErrInvalidAction
	}

	req, err := s.reqRepo.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get update request: %w", err)
	}
	if req.Status != domain.RequestStatusPending {
		return nil, ErrAlreadyResolved
	}

	status := domain.RequestStatusApproved
	if action == ActionReject {
		status = domain.RequestStatusRejected
	}

	var notes *string
	if adminNotes != "" {
		notes = &adminNotes
	}
	now := time.Now()

	if action == ActionApprove && req.ExistingOrganizationID != nil {
		// The guarded status flip and the field application share one
		// transaction. The conditional update runs first: a session that
		// loses it rolls back without touching the organization, and a
		// failed application leaves the request pending.
		err = s.tx.WithinTx(ctx, func(r repository.TxRepositories) error {
			ok, err := r.UpdateRequests.Resolve(ctx, req.ID, status, adminUserID, notes, now)
			if err != nil {
				return fmt.Errorf("failed to resolve update request: %w", err)
			}
			if !ok {
				return ErrAlreadyResolved
			}
			return applyUpdate(ctx, r.Organizations, r.Profiles, req)
		})
		if err != nil {
			return nil, err
		}
	} else {
		// Rejections and new-member approvals only flip the request;
		// organization and profile creation is the registration flow's job.
		// The conditional update re-checks status so a concurrent resolution
		// by another admin session loses cleanly instead of double-applying.
		ok, err := s.reqRepo.Resolve(ctx, req.ID, status, adminUserID, notes, now)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve update request: %w", err)
		}
		if !ok {
			return nil, ErrAlreadyResolved
		}
	}

	req.Status = status
	req.AdminNotes = notes
	req.ReviewedBy = &adminUserID
	req.ReviewedAt = &now

	if err := s.auditRepo.Insert(ctx, &domain.AuditLogEntry{
		Action:     "update_request_" + string(status),
		EntityType: "registration_update_request",
		EntityID:   req.ID,
		ActorID:    adminUserID,
		Details: map[string]any{
			"submitted_email": req.SubmittedEmail,
			"submission_type": string(req.SubmissionType),
			"admin_notes":     adminNotes,
		},
	}); err != nil {
		logger.Error("Failed to write audit entry for resolution", "request_id", req.ID, "error", err)
	}

	s.notifySubmitter(ctx, req)

	return req, nil
}

// applyUpdate writes the submitted fields onto the target organization and,
// for contact-shaped fields, onto the linked profile. Keys absent from the
// submission leave the stored values untouched. Runs against the
// transaction-bound repositories so it commits or rolls back with the
// guarded status flip.
func applyUpdate(ctx context.Context, orgRepo repository.OrganizationRepository, profileRepo repository.ProfileRepository, req *domain.RegistrationUpdateRequest) error {
	org, err := orgRepo.GetByID(ctx, *req.ExistingOrganizationID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get organization: %w", err)
	}

	merged := mergeSubmission(req)

	applyOrganizationFields(org, merged)
	if err := orgRepo.Update(ctx, org); err != nil {
		return fmt.Errorf("failed to update organization: %w", err)
	}

	if org.ContactPersonID == nil {
		return nil
	}
	profile, err := profileRepo.GetByID(ctx, *org.ContactPersonID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.Warn("Organization has dangling contact_person_id, skipping profile update",
				"organization_id", org.ID, "contact_person_id", *org.ContactPersonID)
			return nil
		}
		return fmt.Errorf("failed to get contact profile: %w", err)
	}
	if applyProfileFields(profile, merged) {
		if err := profileRepo.Update(ctx, profile); err != nil {
			return fmt.Errorf("failed to update contact profile: %w", err)
		}
	}
	return nil
}

// notifySubmitter is best-effort. A delivery failure never rolls back the
// resolution; the email service records the failed attempt in its own log.
func (s *approvalService) notifySubmitter(ctx context.Context, req *domain.RegistrationUpdateRequest) {
	emailType := EmailTypeUpdateApproved
	if req.Status == domain.RequestStatusRejected {
		emailType = EmailTypeUpdateRejected
	}
	data := map[string]string{"submission_type": string(req.SubmissionType)}
	if req.AdminNotes != nil {
		data["admin_notes"] = *req.AdminNotes
	}
	if err := s.emailSvc.Send(ctx, emailType, req.SubmittedEmail, data); err != nil {
		logger.Error("Failed to send resolution notification", "request_id", req.ID, "error", err)
	}
}

func (s *approvalService) ListPending(ctx context.Context) ([]domain.RegistrationUpdateRequest, error) {
	return s.reqRepo.ListByStatus(ctx, domain.RequestStatusPending)
}

func (s *approvalService) Changes(ctx context.Context, requestID string) ([]diff.Section, error) {
	req, err := s.reqRepo.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get update request: %w", err)
	}

	original := map[string]any{}
	if req.ExistingOrganizationID != nil {
		org, err := s.orgRepo.GetByID(ctx, *req.ExistingOrganizationID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, ErrNotFound
			}
			return nil, fmt.Errorf("failed to get organization: %w", err)
		}
		var profile *domain.Profile
		if org.ContactPersonID != nil {
			profile, _ = s.profileRepo.GetByID(ctx, *org.ContactPersonID)
		}
		original = organizationFieldMap(org, profile)
	}

	return diff.BuildSections(original, mergeSubmission(req)), nil
}
