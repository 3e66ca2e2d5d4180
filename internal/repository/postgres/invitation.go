package postgres

import (
	"context"
	"database/sql"
	"time"

	"hess-portal-backend/internal/domain"
	"hess-portal-backend/internal/repository"

	"github.com/google/uuid"
)

type invitationRepository struct {
	db *sql.DB
}

func NewInvitationRepository(db *sql.DB) repository.InvitationRepository {
	return &invitationRepository{db: db}
}

func (r *invitationRepository) Create(ctx context.Context, inv *domain.Invitation) error {
	if inv.ID == "" {
		inv.ID = uuid.NewString()
	}
	if inv.Token == "" {
		inv.Token = uuid.NewString()
	}
	query := `INSERT INTO invitations (id, organization_id, email, token, created_on)
	          VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.ExecContext(ctx, query, inv.ID, inv.OrganizationID, inv.Email, inv.Token, time.Now())
	return err
}

func (r *invitationRepository) DeleteByOrganization(ctx context.Context, orgID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM invitations WHERE organization_id = $1`, orgID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
