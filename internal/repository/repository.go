package repository

import (
	"context"
	"time"

	"hess-portal-backend/internal/domain"
)

// TxRepositories bundles the repositories bound to a single database
// transaction.
type TxRepositories struct {
	Organizations  OrganizationRepository
	Profiles       ProfileRepository
	UpdateRequests UpdateRequestRepository
}

// Transactor runs a function inside one transaction. Any error returned by
// the function rolls back everything it wrote.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(TxRepositories) error) error
}

type OrganizationRepository interface {
	Create(ctx context.Context, org *domain.Organization) error
	GetByID(ctx context.Context, id string) (*domain.Organization, error)
	List(ctx context.Context) ([]domain.Organization, error)
	Update(ctx context.Context, org *domain.Organization) error
	Delete(ctx context.Context, id string) (int64, error)
}

type ProfileRepository interface {
	Create(ctx context.Context, p *domain.Profile) error
	GetByID(ctx context.Context, id string) (*domain.Profile, error)
	GetByEmail(ctx context.Context, email string) (*domain.Profile, error)
	GetByOrganizationName(ctx context.Context, orgName string) (*domain.Profile, error)
	Update(ctx context.Context, p *domain.Profile) error
	Delete(ctx context.Context, id string) (int64, error)

	// User roles
	DeleteRolesByUser(ctx context.Context, userID string) (int64, error)
}

type UpdateRequestRepository interface {
	Create(ctx context.Context, req *domain.RegistrationUpdateRequest) error
	GetByID(ctx context.Context, id string) (*domain.RegistrationUpdateRequest, error)
	ListByStatus(ctx context.Context, status domain.RequestStatus) ([]domain.RegistrationUpdateRequest, error)
	CountByStatus(ctx context.Context, status domain.RequestStatus) (int64, error)

	// Resolve flips a pending request to approved/rejected and stamps the
	// reviewer, guarded by WHERE status = 'pending'. Returns false when the
	// request was already resolved by someone else.
	Resolve(ctx context.Context, id string, status domain.RequestStatus, reviewedBy string, adminNotes *string, reviewedAt time.Time) (bool, error)
}

type PendingRegistrationRepository interface {
	Create(ctx context.Context, reg *domain.PendingRegistration) error
	GetByID(ctx context.Context, id string) (*domain.PendingRegistration, error)
	List(ctx context.Context) ([]domain.PendingRegistration, error)
	CountByStatus(ctx context.Context, status domain.RequestStatus) (int64, error)
	DeleteByEmail(ctx context.Context, email string) (int64, error)
}

type InvoiceRepository interface {
	Create(ctx context.Context, inv *domain.Invoice) error
	ListByOrganization(ctx context.Context, orgID string) ([]domain.Invoice, error)
	DeleteByOrganization(ctx context.Context, orgID string) (int64, error)
	MarkOverdue(ctx context.Context, asOf string) (int64, error)
}

type InvitationRepository interface {
	Create(ctx context.Context, inv *domain.Invitation) error
	DeleteByOrganization(ctx context.Context, orgID string) (int64, error)
}

type MemberRequestRepository interface {
	DeleteTransfersByOrganization(ctx context.Context, orgID string) (int64, error)
	DeleteReassignmentsByOrganization(ctx context.Context, orgID string) (int64, error)
}

type AuditLogRepository interface {
	Insert(ctx context.Context, entry *domain.AuditLogEntry) error
	ListRecent(ctx context.Context, limit int32) ([]domain.AuditLogEntry, error)
}

type EmailLogRepository interface {
	Insert(ctx context.Context, log *domain.EmailLog) error
	ListRecent(ctx context.Context, limit int32) ([]domain.EmailLog, error)
}
