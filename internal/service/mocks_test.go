package service

import (
	"context"
	"time"

	"hess-portal-backend/internal/domain"
	"hess-portal-backend/internal/repository"

	"github.com/stretchr/testify/mock"
)

// passthroughTransactor hands the supplied repositories straight to the
// transactional function, with no real transaction underneath.
type passthroughTransactor struct {
	repos    repository.TxRepositories
	beginErr error
}

func (p *passthroughTransactor) WithinTx(ctx context.Context, fn func(repository.TxRepositories) error) error {
	if p.beginErr != nil {
		return p.beginErr
	}
	return fn(p.repos)
}

// MockOrganizationRepo
type MockOrganizationRepo struct {
	mock.Mock
}

func (m *MockOrganizationRepo) Create(ctx context.Context, org *domain.Organization) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}
func (m *MockOrganizationRepo) GetByID(ctx context.Context, id string) (*domain.Organization, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organization), args.Error(1)
}
func (m *MockOrganizationRepo) List(ctx context.Context) ([]domain.Organization, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Organization), args.Error(1)
}
func (m *MockOrganizationRepo) Update(ctx context.Context, org *domain.Organization) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}
func (m *MockOrganizationRepo) Delete(ctx context.Context, id string) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

// MockProfileRepo
type MockProfileRepo struct {
	mock.Mock
}

func (m *MockProfileRepo) Create(ctx context.Context, p *domain.Profile) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockProfileRepo) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}
func (m *MockProfileRepo) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}
func (m *MockProfileRepo) GetByOrganizationName(ctx context.Context, orgName string) (*domain.Profile, error) {
	args := m.Called(ctx, orgName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}
func (m *MockProfileRepo) Update(ctx context.Context, p *domain.Profile) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockProfileRepo) Delete(ctx context.Context, id string) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockProfileRepo) DeleteRolesByUser(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// MockUpdateRequestRepo
type MockUpdateRequestRepo struct {
	mock.Mock
}

func (m *MockUpdateRequestRepo) Create(ctx context.Context, req *domain.RegistrationUpdateRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
func (m *MockUpdateRequestRepo) GetByID(ctx context.Context, id string) (*domain.RegistrationUpdateRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RegistrationUpdateRequest), args.Error(1)
}
func (m *MockUpdateRequestRepo) ListByStatus(ctx context.Context, status domain.RequestStatus) ([]domain.RegistrationUpdateRequest, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]domain.RegistrationUpdateRequest), args.Error(1)
}
func (m *MockUpdateRequestRepo) CountByStatus(ctx context.Context, status domain.RequestStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockUpdateRequestRepo) Resolve(ctx context.Context, id string, status domain.RequestStatus, reviewedBy string, adminNotes *string, reviewedAt time.Time) (bool, error) {
	args := m.Called(ctx, id, status, reviewedBy, adminNotes, reviewedAt)
	return args.Bool(0), args.Error(1)
}

// MockPendingRegistrationRepo
type MockPendingRegistrationRepo struct {
	mock.Mock
}

func (m *MockPendingRegistrationRepo) Create(ctx context.Context, reg *domain.PendingRegistration) error {
	args := m.Called(ctx, reg)
	return args.Error(0)
}
func (m *MockPendingRegistrationRepo) GetByID(ctx context.Context, id string) (*domain.PendingRegistration, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PendingRegistration), args.Error(1)
}
func (m *MockPendingRegistrationRepo) List(ctx context.Context) ([]domain.PendingRegistration, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.PendingRegistration), args.Error(1)
}
func (m *MockPendingRegistrationRepo) CountByStatus(ctx context.Context, status domain.RequestStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockPendingRegistrationRepo) DeleteByEmail(ctx context.Context, email string) (int64, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(int64), args.Error(1)
}

// MockInvoiceRepo
type MockInvoiceRepo struct {
	mock.Mock
}

func (m *MockInvoiceRepo) Create(ctx context.Context, inv *domain.Invoice) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}
func (m *MockInvoiceRepo) ListByOrganization(ctx context.Context, orgID string) ([]domain.Invoice, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).([]domain.Invoice), args.Error(1)
}
func (m *MockInvoiceRepo) DeleteByOrganization(ctx context.Context, orgID string) (int64, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockInvoiceRepo) MarkOverdue(ctx context.Context, asOf string) (int64, error) {
	args := m.Called(ctx, asOf)
	return args.Get(0).(int64), args.Error(1)
}

// MockInvitationRepo
type MockInvitationRepo struct {
	mock.Mock
}

func (m *MockInvitationRepo) Create(ctx context.Context, inv *domain.Invitation) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}
func (m *MockInvitationRepo) DeleteByOrganization(ctx context.Context, orgID string) (int64, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).(int64), args.Error(1)
}

// MockMemberRequestRepo
type MockMemberRequestRepo struct {
	mock.Mock
}

func (m *MockMemberRequestRepo) DeleteTransfersByOrganization(ctx context.Context, orgID string) (int64, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockMemberRequestRepo) DeleteReassignmentsByOrganization(ctx context.Context, orgID string) (int64, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).(int64), args.Error(1)
}

// MockAuditLogRepo
type MockAuditLogRepo struct {
	mock.Mock
}

func (m *MockAuditLogRepo) Insert(ctx context.Context, entry *domain.AuditLogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}
func (m *MockAuditLogRepo) ListRecent(ctx context.Context, limit int32) ([]domain.AuditLogEntry, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.AuditLogEntry), args.Error(1)
}

// MockEmailLogRepo
type MockEmailLogRepo struct {
	mock.Mock
}

func (m *MockEmailLogRepo) Insert(ctx context.Context, log *domain.EmailLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}
func (m *MockEmailLogRepo) ListRecent(ctx context.Context, limit int32) ([]domain.EmailLog, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.EmailLog), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) Send(ctx context.Context, emailType, recipient string, data map[string]string) error {
	args := m.Called(ctx, emailType, recipient, data)
	return args.Error(0)
}

// MockEmailSender
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) Send(ctx context.Context, to, subject, plainText, htmlContent string) (string, error) {
	args := m.Called(ctx, to, subject, plainText, htmlContent)
	return args.String(0), args.Error(1)
}

// MockIdentityService
type MockIdentityService struct {
	mock.Mock
}

func (m *MockIdentityService) CreateUser(ctx context.Context, email, displayName string) (string, error) {
	args := m.Called(ctx, email, displayName)
	return args.String(0), args.Error(1)
}
func (m *MockIdentityService) DeleteUser(ctx context.Context, uid string) error {
	args := m.Called(ctx, uid)
	return args.Error(0)
}
func (m *MockIdentityService) UpdateUserEmail(ctx context.Context, uid, email string) error {
	args := m.Called(ctx, uid, email)
	return args.Error(0)
}
func (m *MockIdentityService) PasswordResetLink(ctx context.Context, email string) (string, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.Error(1)
}
func (m *MockIdentityService) VerifyIDToken(ctx context.Context, idToken string) (*IdentityClaims, error) {
	args := m.Called(ctx, idToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*IdentityClaims), args.Error(1)
}
