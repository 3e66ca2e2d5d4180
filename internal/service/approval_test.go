package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"hess-portal-backend/internal/domain"
	"hess-portal-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// approvalTx binds the same mocks used outside the transaction to the
// transactional function.
func approvalTx(reqRepo *MockUpdateRequestRepo, orgRepo *MockOrganizationRepo, profileRepo *MockProfileRepo) *passthroughTransactor {
	return &passthroughTransactor{repos: repository.TxRepositories{
		Organizations:  orgRepo,
		Profiles:       profileRepo,
		UpdateRequests: reqRepo,
	}}
}

func pendingUpdateRequest(orgID string) *domain.RegistrationUpdateRequest {
	return &domain.RegistrationUpdateRequest{
		ID:                     "req-1",
		SubmittedEmail:         "contact@alpha.edu",
		Status:                 domain.RequestStatusPending,
		SubmissionType:         domain.SubmissionTypeMemberUpdate,
		ExistingOrganizationID: &orgID,
		OrganizationData: map[string]any{
			"city":         "Shelbyville",
			"managed_wifi": true,
			"annual_fee":   float64(1750),
		},
		RegistrationData: map[string]any{
			"contact_phone": "555-0100",
		},
	}
}

func TestApprovalService_Approve_AppliesUpdate(t *testing.T) {
	mockReqRepo := new(MockUpdateRequestRepo)
	mockOrgRepo := new(MockOrganizationRepo)
	mockProfileRepo := new(MockProfileRepo)
	mockAuditRepo := new(MockAuditLogRepo)
	mockEmailSvc := new(MockEmailService)
	svc := NewApprovalService(mockReqRepo, mockOrgRepo, mockProfileRepo, mockAuditRepo, mockEmailSvc,
		approvalTx(mockReqRepo, mockOrgRepo, mockProfileRepo))
	ctx := context.Background()

	profileID := "profile-1"
	req := pendingUpdateRequest("org-1")
	org := &domain.Organization{
		ID:              "org-1",
		Name:            "Alpha College",
		City:            "Springfield",
		ManagedWifi:     false,
		AnnualFeeCents:  150000,
		ContactPersonID: &profileID,
	}
	profile := &domain.Profile{ID: profileID, Email: "contact@alpha.edu", Phone: "555-9999"}

	mockReqRepo.On("GetByID", ctx, "req-1").Return(req, nil).Once()
	mockOrgRepo.On("GetByID", ctx, "org-1").Return(org, nil).Once()
	mockOrgRepo.On("Update", ctx, mock.MatchedBy(func(o *domain.Organization) bool {
		return o.City == "Shelbyville" && o.ManagedWifi && o.AnnualFeeCents == 175000
	})).Return(nil).Once()
	mockProfileRepo.On("GetByID", ctx, profileID).Return(profile, nil).Once()
	mockProfileRepo.On("Update", ctx, mock.MatchedBy(func(p *domain.Profile) bool {
		return p.Phone == "555-0100"
	})).Return(nil).Once()
	mockReqRepo.On("Resolve", ctx, "req-1", domain.RequestStatusApproved, "admin-1", (*string)(nil), mock.AnythingOfType("time.Time")).
		Return(true, nil).Once()
	mockAuditRepo.On("Insert", ctx, mock.MatchedBy(func(e *domain.AuditLogEntry) bool {
		return e.Action == "update_request_approved" && e.EntityID == "req-1" && e.ActorID == "admin-1"
	})).Return(nil).Once()
	mockEmailSvc.On("Send", ctx, EmailTypeUpdateApproved, "contact@alpha.edu", mock.Anything).Return(nil).Once()

	result, err := svc.Resolve(ctx, "req-1", ActionApprove, "admin-1", "")
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusApproved, result.Status)
	require.NotNil(t, result.ReviewedBy)
	assert.Equal(t, "admin-1", *result.ReviewedBy)
	assert.NotNil(t, result.ReviewedAt)

	mockReqRepo.AssertExpectations(t)
	mockOrgRepo.AssertExpectations(t)
	mockProfileRepo.AssertExpectations(t)
	mockAuditRepo.AssertExpectations(t)
	mockEmailSvc.AssertExpectations(t)
}

func TestApprovalService_Reject_DoesNotTouchOrganization(t *testing.T) {
	mockReqRepo := new(MockUpdateRequestRepo)
	mockOrgRepo := new(MockOrganizationRepo)
	mockProfileRepo := new(MockProfileRepo)
	mockAuditRepo := new(MockAuditLogRepo)
	mockEmailSvc := new(MockEmailService)
	svc := NewApprovalService(mockReqRepo, mockOrgRepo, mockProfileRepo, mockAuditRepo, mockEmailSvc,
		approvalTx(mockReqRepo, mockOrgRepo, mockProfileRepo))
	ctx := context.Background()

	req := pendingUpdateRequest("org-1")
	mockReqRepo.On("GetByID", ctx, "req-1").Return(req, nil).Once()
	mockReqRepo.On("Resolve", ctx, "req-1", domain.RequestStatusRejected, "admin-1", mock.AnythingOfType("*string"), mock.AnythingOfType("time.Time")).
		Return(true, nil).Once()
	mockAuditRepo.On("Insert", ctx, mock.Anything).Return(nil).Once()
	mockEmailSvc.On("Send", ctx, EmailTypeUpdateRejected, "contact@alpha.edu", mock.MatchedBy(func(data map[string]string) bool {
		return data["admin_notes"] == "fee figure looks wrong"
	})).Return(nil).Once()

	result, err := svc.Resolve(ctx, "req-1", ActionReject, "admin-1", "fee figure looks wrong")
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusRejected, result.Status)
	require.NotNil(t, result.AdminNotes)
	assert.Equal(t, "fee figure looks wrong", *result.AdminNotes)

	// Rejection never reads or writes the organization.
	mockOrgRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	mockOrgRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	mockReqRepo.AssertExpectations(t)
	mockEmailSvc.AssertExpectations(t)
}

func TestApprovalService_Resolve_Preconditions(t *testing.T) {
	mockReqRepo := new(MockUpdateRequestRepo)
	svc := NewApprovalService(mockReqRepo, nil, nil, nil, nil, &passthroughTransactor{})
	ctx := context.Background()

	t.Run("missing admin identity", func(t *testing.T) {
		_, err := svc.Resolve(ctx, "req-1", ActionApprove, "", "")
		assert.ErrorIs(t, err, ErrMissingAdminIdentity)
	})

	t.Run("invalid action", func(t *testing.T) {
		_, err := svc.Resolve(ctx, "req-1", ResolveAction("defer"), "admin-1", "")
		assert.ErrorIs(t, err, ErrInvalidAction)
	})

	t.Run("not found", func(t *testing.T) {
		mockReqRepo.On("GetByID", ctx, "missing").Return(nil, sql.ErrNoRows).Once()
		_, err := svc.Resolve(ctx, "missing", ActionApprove, "admin-1", "")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("already resolved", func(t *testing.T) {
		resolved := pendingUpdateRequest("org-1")
		resolved.Status = domain.RequestStatusApproved
		mockReqRepo.On("GetByID", ctx, "req-1").Return(resolved, nil).Once()
		_, err := svc.Resolve(ctx, "req-1", ActionApprove, "admin-1", "")
		assert.ErrorIs(t, err, ErrAlreadyResolved)
	})
}

func TestApprovalService_Resolve_LosesConcurrentRace(t *testing.T) {
	mockReqRepo := new(MockUpdateRequestRepo)
	svc := NewApprovalService(mockReqRepo, nil, nil, nil, nil, &passthroughTransactor{})
	ctx := context.Background()

	// The request reads as pending, but another admin resolves it between the
	// read and the guarded write. The conditional update reports zero rows.
	req := pendingUpdateRequest("org-1")
	mockReqRepo.On("GetByID", ctx, "req-1").Return(req, nil).Once()
	mockReqRepo.On("Resolve", ctx, "req-1", domain.RequestStatusRejected, "admin-2", (*string)(nil), mock.AnythingOfType("time.Time")).
		Return(false, nil).Once()

	_, err := svc.Resolve(ctx, "req-1", ActionReject, "admin-2", "")
	assert.ErrorIs(t, err, ErrAlreadyResolved)
	mockReqRepo.AssertExpectations(t)
}

func TestApprovalService_Approve_LosingGuardLeavesOrganizationUntouched(t *testing.T) {
	mockReqRepo := new(MockUpdateRequestRepo)
	mockOrgRepo := new(MockOrganizationRepo)
	mockProfileRepo := new(MockProfileRepo)
	svc := NewApprovalService(mockReqRepo, mockOrgRepo, mockProfileRepo, nil, nil,
		approvalTx(mockReqRepo, mockOrgRepo, mockProfileRepo))
	ctx := context.Background()

	// An approve that loses the guarded update to a concurrent rejection must
	// not apply the submitted fields. The guard runs before any write inside
	// the transaction.
	req := pendingUpdateRequest("org-1")
	mockReqRepo.On("GetByID", ctx, "req-1").Return(req, nil).Once()
	mockReqRepo.On("Resolve", ctx, "req-1", domain.RequestStatusApproved, "admin-2", (*string)(nil), mock.AnythingOfType("time.Time")).
		Return(false, nil).Once()

	_, err := svc.Resolve(ctx, "req-1", ActionApprove, "admin-2", "")
	assert.ErrorIs(t, err, ErrAlreadyResolved)

	mockOrgRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	mockOrgRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	mockProfileRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	mockReqRepo.AssertExpectations(t)
}

func TestApprovalService_Approve_ApplyFailureAbortsResolution(t *testing.T) {
	mockReqRepo := new(MockUpdateRequestRepo)
	mockOrgRepo := new(MockOrganizationRepo)
	mockProfileRepo := new(MockProfileRepo)
	mockAuditRepo := new(MockAuditLogRepo)
	mockEmailSvc := new(MockEmailService)
	svc := NewApprovalService(mockReqRepo, mockOrgRepo, mockProfileRepo, mockAuditRepo, mockEmailSvc,
		approvalTx(mockReqRepo, mockOrgRepo, mockProfileRepo))
	ctx := context.Background()

	req := pendingUpdateRequest("org-1")
	org := &domain.Organization{ID: "org-1", Name: "Alpha College"}
	mockReqRepo.On("GetByID", ctx, "req-1").Return(req, nil).Once()
	mockReqRepo.On("Resolve", ctx, "req-1", domain.RequestStatusApproved, "admin-1", (*string)(nil), mock.AnythingOfType("time.Time")).
		Return(true, nil).Once()
	mockOrgRepo.On("GetByID", ctx, "org-1").Return(org, nil).Once()
	mockOrgRepo.On("Update", ctx, mock.Anything).Return(errors.New("connection reset")).Once()

	_, err := svc.Resolve(ctx, "req-1", ActionApprove, "admin-1", "")
	require.Error(t, err)

	// The transaction rolls back; no audit entry or notification goes out for
	// a resolution that did not land.
	mockAuditRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	mockEmailSvc.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestApprovalService_Resolve_EmailFailureIsNotFatal(t *testing.T) {
	mockReqRepo := new(MockUpdateRequestRepo)
	mockAuditRepo := new(MockAuditLogRepo)
	mockEmailSvc := new(MockEmailService)
	svc := NewApprovalService(mockReqRepo, nil, nil, mockAuditRepo, mockEmailSvc, &passthroughTransactor{})
	ctx := context.Background()

	req := pendingUpdateRequest("org-1")
	mockReqRepo.On("GetByID", ctx, "req-1").Return(req, nil).Once()
	mockReqRepo.On("Resolve", ctx, "req-1", domain.RequestStatusRejected, "admin-1", (*string)(nil), mock.AnythingOfType("time.Time")).
		Return(true, nil).Once()
	mockAuditRepo.On("Insert", ctx, mock.Anything).Return(nil).Once()
	mockEmailSvc.On("Send", ctx, EmailTypeUpdateRejected, "contact@alpha.edu", mock.Anything).
		Return(errors.New("smtp unreachable")).Once()

	result, err := svc.Resolve(ctx, "req-1", ActionReject, "admin-1", "")
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusRejected, result.Status)
}

func TestApprovalService_Approve_SkipsDanglingContact(t *testing.T) {
	mockReqRepo := new(MockUpdateRequestRepo)
	mockOrgRepo := new(MockOrganizationRepo)
	mockProfileRepo := new(MockProfileRepo)
	mockAuditRepo := new(MockAuditLogRepo)
	mockEmailSvc := new(MockEmailService)
	svc := NewApprovalService(mockReqRepo, mockOrgRepo, mockProfileRepo, mockAuditRepo, mockEmailSvc,
		approvalTx(mockReqRepo, mockOrgRepo, mockProfileRepo))
	ctx := context.Background()

	danglingID := "profile-gone"
	req := pendingUpdateRequest("org-1")
	org := &domain.Organization{ID: "org-1", Name: "Alpha College", ContactPersonID: &danglingID}

	mockReqRepo.On("GetByID", ctx, "req-1").Return(req, nil).Once()
	mockOrgRepo.On("GetByID", ctx, "org-1").Return(org, nil).Once()
	mockOrgRepo.On("Update", ctx, mock.Anything).Return(nil).Once()
	mockProfileRepo.On("GetByID", ctx, danglingID).Return(nil, sql.ErrNoRows).Once()
	mockReqRepo.On("Resolve", ctx, "req-1", domain.RequestStatusApproved, "admin-1", (*string)(nil), mock.AnythingOfType("time.Time")).
		Return(true, nil).Once()
	mockAuditRepo.On("Insert", ctx, mock.Anything).Return(nil).Once()
	mockEmailSvc.On("Send", ctx, EmailTypeUpdateApproved, "contact@alpha.edu", mock.Anything).Return(nil).Once()

	_, err := svc.Resolve(ctx, "req-1", ActionApprove, "admin-1", "")
	require.NoError(t, err)
	mockProfileRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestApprovalService_Approve_NewMemberOnlyFlipsStatus(t *testing.T) {
	mockReqRepo := new(MockUpdateRequestRepo)
	mockOrgRepo := new(MockOrganizationRepo)
	mockAuditRepo := new(MockAuditLogRepo)
	mockEmailSvc := new(MockEmailService)
	svc := NewApprovalService(mockReqRepo, mockOrgRepo, nil, mockAuditRepo, mockEmailSvc, &passthroughTransactor{})
	ctx := context.Background()

	req := &domain.RegistrationUpdateRequest{
		ID:             "req-2",
		SubmittedEmail: "new@beta.edu",
		Status:         domain.RequestStatusPending,
		SubmissionType: domain.SubmissionTypeNewMember,
	}
	mockReqRepo.On("GetByID", ctx, "req-2").Return(req, nil).Once()
	mockReqRepo.On("Resolve", ctx, "req-2", domain.RequestStatusApproved, "admin-1", (*string)(nil), mock.AnythingOfType("time.Time")).
		Return(true, nil).Once()
	mockAuditRepo.On("Insert", ctx, mock.Anything).Return(nil).Once()
	mockEmailSvc.On("Send", ctx, EmailTypeUpdateApproved, "new@beta.edu", mock.Anything).Return(nil).Once()

	_, err := svc.Resolve(ctx, "req-2", ActionApprove, "admin-1", "")
	require.NoError(t, err)
	mockOrgRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	mockOrgRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestApprovalService_Changes(t *testing.T) {
	mockReqRepo := new(MockUpdateRequestRepo)
	mockOrgRepo := new(MockOrganizationRepo)
	mockProfileRepo := new(MockProfileRepo)
	svc := NewApprovalService(mockReqRepo, mockOrgRepo, mockProfileRepo, nil, nil, &passthroughTransactor{})
	ctx := context.Background()

	profileID := "profile-1"
	req := &domain.RegistrationUpdateRequest{
		ID:                     "req-1",
		Status:                 domain.RequestStatusPending,
		SubmissionType:         domain.SubmissionTypeMemberUpdate,
		ExistingOrganizationID: strPtr("org-1"),
		OrganizationData: map[string]any{
			"org_name":    "Alpha College",
			"city":        "Shelbyville",
			"student_fte": "500",
		},
	}
	org := &domain.Organization{
		ID:              "org-1",
		Name:            "Alpha College",
		City:            "Springfield",
		StudentFTE:      500,
		ContactPersonID: &profileID,
	}
	mockReqRepo.On("GetByID", ctx, "req-1").Return(req, nil).Once()
	mockOrgRepo.On("GetByID", ctx, "org-1").Return(org, nil).Once()
	mockProfileRepo.On("GetByID", ctx, profileID).Return(&domain.Profile{ID: profileID}, nil).Once()

	sections, err := svc.Changes(ctx, "req-1")
	require.NoError(t, err)

	// Name matches, FTE "500" normalizes equal to the stored 500; only the
	// city change surfaces in the organization group.
	var cityFound, fteFound bool
	for _, section := range sections {
		for _, entry := range section.Entries {
			switch entry.Field {
			case "city":
				cityFound = true
				assert.Equal(t, "Springfield", entry.OldValue)
				assert.Equal(t, "Shelbyville", entry.NewValue)
			case "student_fte", "org_name":
				fteFound = true
			}
		}
	}
	assert.True(t, cityFound)
	assert.False(t, fteFound)
}

func TestApprovalService_ListPending(t *testing.T) {
	mockReqRepo := new(MockUpdateRequestRepo)
	svc := NewApprovalService(mockReqRepo, nil, nil, nil, nil, &passthroughTransactor{})
	ctx := context.Background()

	mockReqRepo.On("ListByStatus", ctx, domain.RequestStatusPending).
		Return([]domain.RegistrationUpdateRequest{{ID: "req-1"}, {ID: "req-2"}}, nil).Once()

	reqs, err := svc.ListPending(ctx)
	require.NoError(t, err)
	assert.Len(t, reqs, 2)
}

func strPtr(s string) *string { return &s }
