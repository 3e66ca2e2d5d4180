package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"hess-portal-backend/internal/domain"
	"hess-portal-backend/internal/logger"
	"hess-portal-backend/internal/repository"

	"github.com/go-playground/validator/v10"
)

// SubmissionInput is the public registration/update submission payload.
type SubmissionInput struct {
	SubmittedEmail         string                `json:"submitted_email" validate:"required,email"`
	SubmissionType         domain.SubmissionType `json:"submission_type" validate:"required,oneof=new_member member_update primary_contact_change"`
	ExistingOrganizationID *string               `json:"existing_organization_id" validate:"omitempty,uuid"`
	RegistrationData       map[string]any        `json:"registration_data"`
	OrganizationData       map[string]any        `json:"organization_data"`
}

type registrationService struct {
	reqRepo     repository.UpdateRequestRepository
	pendingRepo repository.PendingRegistrationRepository
	orgRepo     repository.OrganizationRepository
	profileRepo repository.ProfileRepository
	auditRepo   repository.AuditLogRepository
	identity    IdentityService
	emailSvc    EmailService
	validate    *validator.Validate
}

func NewRegistrationService(
	reqRepo repository.UpdateRequestRepository,
	pendingRepo repository.PendingRegistrationRepository,
	orgRepo repository.OrganizationRepository,
	profileRepo repository.ProfileRepository,
	auditRepo repository.AuditLogRepository,
	identity IdentityService,
	emailSvc EmailService,
) RegistrationService {
	return &registrationService{
		reqRepo:     reqRepo,
		pendingRepo: pendingRepo,
		orgRepo:     orgRepo,
		profileRepo: profileRepo,
		auditRepo:   auditRepo,
		identity:    identity,
		emailSvc:    emailSvc,
		validate:    validator.New(),
	}
}

// Submit records an unauthenticated public submission as a pending update
// request for admin review.
func (s *registrationService) Submit(ctx context.Context, input SubmissionInput) (*domain.RegistrationUpdateRequest, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSubmission, err)
	}
	if input.SubmissionType != domain.SubmissionTypeNewMember && input.ExistingOrganizationID == nil {
		return nil, fmt.Errorf("%w: %s requires existing_organization_id", ErrInvalidSubmission, input.SubmissionType)
	}

	req := &domain.RegistrationUpdateRequest{
		SubmittedEmail:         input.SubmittedEmail,
		Status:                 domain.RequestStatusPending,
		RegistrationData:       input.RegistrationData,
		OrganizationData:       input.OrganizationData,
		ExistingOrganizationID: input.ExistingOrganizationID,
		SubmissionType:         input.SubmissionType,
	}
	if err := s.reqRepo.Create(ctx, req); err != nil {
		return nil, fmt.Errorf("failed to create update request: %w", err)
	}

	// Confirmation is best-effort; the submission stands either way.
	if err := s.emailSvc.Send(ctx, EmailTypeRegistrationReceived, req.SubmittedEmail, map[string]string{
		"submission_type": string(req.SubmissionType),
	}); err != nil {
		logger.Error("Failed to send submission confirmation", "request_id", req.ID, "error", err)
	}

	return req, nil
}

// ApproveNewMemberRequest turns an approved new-member submission into a live
// Organization, Profile and auth identity. This is the hand-off target for
// new_member requests, which the generic resolution path does not create
// records for.
func (s *registrationService) ApproveNewMemberRequest(ctx context.Context, requestID, adminUserID string) (string, error) {
	if adminUserID == "" {
		return "", ErrMissingAdminIdentity
	}

	req, err := s.reqRepo.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to get update request: %w", err)
	}
	if req.SubmissionType != domain.SubmissionTypeNewMember {
		return "", fmt.Errorf("request %s is not a new-member submission", requestID)
	}
	if req.Status != domain.RequestStatusPending {
		return "", ErrAlreadyResolved
	}

	data := mergeSubmission(req)
	if _, ok := data["email"]; !ok {
		data["email"] = req.SubmittedEmail
	}

	orgID, profile, err := s.createMember(ctx, data)
	if err != nil {
		return "", err
	}

	// Cascade-unapproved members re-enter through this flow; clear any
	// snapshot row for the email now that the membership is live again.
	if _, err := s.pendingRepo.DeleteByEmail(ctx, profile.Email); err != nil {
		logger.Error("Failed to clear pending registration after approval", "email", profile.Email, "error", err)
	}

	ok, err := s.reqRepo.Resolve(ctx, req.ID, domain.RequestStatusApproved, adminUserID, nil, time.Now())
	if err != nil {
		return "", fmt.Errorf("failed to resolve update request: %w", err)
	}
	if !ok {
		return "", ErrAlreadyResolved
	}

	s.recordApproval(ctx, adminUserID, orgID, profile, "new_member_approved", map[string]any{
		"request_id": req.ID,
	})
	return orgID, nil
}

// ApprovePendingRegistration promotes a pending-registration snapshot (the
// re-entry queue written by the unapprove cascade) back into a live
// membership.
func (s *registrationService) ApprovePendingRegistration(ctx context.Context, pendingID, adminUserID string) (string, error) {
	if adminUserID == "" {
		return "", ErrMissingAdminIdentity
	}

	pending, err := s.pendingRepo.GetByID(ctx, pendingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to get pending registration: %w", err)
	}

	data := pending.Data
	if data == nil {
		data = map[string]any{}
	}
	if _, ok := data["email"]; !ok {
		data["email"] = pending.Email
	}

	orgID, profile, err := s.createMember(ctx, data)
	if err != nil {
		return "", err
	}

	if _, err := s.pendingRepo.DeleteByEmail(ctx, pending.Email); err != nil {
		logger.Error("Failed to delete pending registration after approval", "pending_id", pending.ID, "error", err)
	}

	s.recordApproval(ctx, adminUserID, orgID, profile, "pending_registration_approved", map[string]any{
		"pending_registration_id": pending.ID,
	})
	return orgID, nil
}

// createMember provisions the auth identity, the contact profile and the
// organization record, in that order, from a merged submission map.
func (s *registrationService) createMember(ctx context.Context, data map[string]any) (string, *domain.Profile, error) {
	email := toString(data["email"])
	if email == "" {
		return "", nil, fmt.Errorf("submission has no contact email")
	}
	orgName := toString(data["org_name"])
	firstName := toString(data["first_name"])
	lastName := toString(data["last_name"])

	uid, err := s.identity.CreateUser(ctx, email, firstName+" "+lastName)
	if err != nil {
		return "", nil, err
	}

	profile := &domain.Profile{
		UserID:           uid,
		FirstName:        firstName,
		LastName:         lastName,
		Email:            email,
		Phone:            toString(data["contact_phone"]),
		Title:            toString(data["title"]),
		OrganizationName: orgName,
	}
	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return "", nil, fmt.Errorf("failed to create profile: %w", err)
	}

	org := &domain.Organization{
		Status:          domain.MembershipStatusActive,
		MemberSince:     time.Now().Format("2006-01-02"),
		ContactPersonID: &profile.ID,
	}
	applyOrganizationFields(org, data)
	org.Status = domain.MembershipStatusActive
	if err := s.orgRepo.Create(ctx, org); err != nil {
		return "", nil, fmt.Errorf("failed to create organization: %w", err)
	}

	return org.ID, profile, nil
}

func (s *registrationService) recordApproval(ctx context.Context, adminUserID, orgID string, profile *domain.Profile, action string, details map[string]any) {
	details["contact_email"] = profile.Email
	if err := s.auditRepo.Insert(ctx, &domain.AuditLogEntry{
		Action:     action,
		EntityType: "organization",
		EntityID:   orgID,
		ActorID:    adminUserID,
		Details:    details,
	}); err != nil {
		logger.Error("Failed to write audit entry for approval", "organization_id", orgID, "error", err)
	}

	// Welcome email with a password-reset link is best-effort.
	data := map[string]string{
		"first_name": profile.FirstName,
		"org_name":   profile.OrganizationName,
	}
	if link, err := s.identity.PasswordResetLink(ctx, profile.Email); err == nil {
		data["reset_link"] = link
	} else {
		logger.Error("Failed to generate password reset link", "email", profile.Email, "error", err)
	}
	if err := s.emailSvc.Send(ctx, EmailTypeWelcome, profile.Email, data); err != nil {
		logger.Error("Failed to send welcome email", "email", profile.Email, "error", err)
	}
}
