package http

import (
	"context"

	"hess-portal-backend/internal/diff"
	"hess-portal-backend/internal/domain"
	"hess-portal-backend/internal/service"

	"github.com/stretchr/testify/mock"
)

// MockApprovalService
type MockApprovalService struct {
	mock.Mock
}

func (m *MockApprovalService) Resolve(ctx context.Context, requestID string, action service.ResolveAction, adminUserID, adminNotes string) (*domain.RegistrationUpdateRequest, error) {
	args := m.Called(ctx, requestID, action, adminUserID, adminNotes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RegistrationUpdateRequest), args.Error(1)
}
func (m *MockApprovalService) ListPending(ctx context.Context) ([]domain.RegistrationUpdateRequest, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.RegistrationUpdateRequest), args.Error(1)
}
func (m *MockApprovalService) Changes(ctx context.Context, requestID string) ([]diff.Section, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]diff.Section), args.Error(1)
}

// MockUnapproveService
type MockUnapproveService struct {
	mock.Mock
}

func (m *MockUnapproveService) UnapproveOrganization(ctx context.Context, orgID, adminUserID string) (*service.UnapproveSummary, error) {
	args := m.Called(ctx, orgID, adminUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.UnapproveSummary), args.Error(1)
}

// MockRegistrationService
type MockRegistrationService struct {
	mock.Mock
}

func (m *MockRegistrationService) Submit(ctx context.Context, input service.SubmissionInput) (*domain.RegistrationUpdateRequest, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RegistrationUpdateRequest), args.Error(1)
}
func (m *MockRegistrationService) ApproveNewMemberRequest(ctx context.Context, requestID, adminUserID string) (string, error) {
	args := m.Called(ctx, requestID, adminUserID)
	return args.String(0), args.Error(1)
}
func (m *MockRegistrationService) ApprovePendingRegistration(ctx context.Context, pendingID, adminUserID string) (string, error) {
	args := m.Called(ctx, pendingID, adminUserID)
	return args.String(0), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) Send(ctx context.Context, emailType, recipient string, data map[string]string) error {
	args := m.Called(ctx, emailType, recipient, data)
	return args.Error(0)
}
