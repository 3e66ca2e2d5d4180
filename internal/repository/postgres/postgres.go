package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"hess-portal-backend/internal/logger"
	"hess-portal-backend/internal/repository"

	_ "github.com/lib/pq"
)

// dbtx is the handle subset shared by *sql.DB and *sql.Tx, so a repository
// can run against either.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db *sql.DB
	repository.OrganizationRepository
	repository.ProfileRepository
	repository.UpdateRequestRepository
	repository.PendingRegistrationRepository
	repository.InvoiceRepository
	repository.InvitationRepository
	repository.MemberRequestRepository
	repository.AuditLogRepository
	repository.EmailLogRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                            db,
		OrganizationRepository:        NewOrganizationRepository(db),
		ProfileRepository:             NewProfileRepository(db),
		UpdateRequestRepository:       NewUpdateRequestRepository(db),
		PendingRegistrationRepository: NewPendingRegistrationRepository(db),
		InvoiceRepository:             NewInvoiceRepository(db),
		InvitationRepository:          NewInvitationRepository(db),
		MemberRequestRepository:       NewMemberRequestRepository(db),
		AuditLogRepository:            NewAuditLogRepository(db),
		EmailLogRepository:            NewEmailLogRepository(db),
	}
}

// WithinTx runs fn with repositories bound to a single transaction and
// commits only when fn succeeds.
func (s *Store) WithinTx(ctx context.Context, fn func(repository.TxRepositories) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(repository.TxRepositories{
		Organizations:  &organizationRepository{db: tx},
		Profiles:       &profileRepository{db: tx},
		UpdateRequests: &updateRequestRepository{db: tx},
	}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			logger.Error("Failed to roll back transaction", "error", rbErr)
		}
		return err
	}
	return tx.Commit()
}
