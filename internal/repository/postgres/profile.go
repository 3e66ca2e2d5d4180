package postgres

import (
	"context"
	"database/sql"
	"time"

	"hess-portal-backend/internal/domain"
	"hess-portal-backend/internal/repository"

	"github.com/google/uuid"
)

type profileRepository struct {
	db dbtx
}

func NewProfileRepository(db *sql.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

const profileColumns = `id, user_id, first_name, last_name, email, phone, title, organization_name, created_on`

func (r *profileRepository) Create(ctx context.Context, p *domain.Profile) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	query := `INSERT INTO profiles (` + profileColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.UserID, p.FirstName, p.LastName, p.Email, p.Phone, p.Title, p.OrganizationName, time.Now())
	return err
}

func (r *profileRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	return r.getOne(ctx, `SELECT `+profileColumns+` FROM profiles WHERE id = $1`, id)
}

func (r *profileRepository) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	return r.getOne(ctx, `SELECT `+profileColumns+` FROM profiles WHERE lower(email) = lower($1)`, email)
}

func (r *profileRepository) GetByOrganizationName(ctx context.Context, orgName string) (*domain.Profile, error) {
	return r.getOne(ctx, `SELECT `+profileColumns+` FROM profiles WHERE organization_name = $1`, orgName)
}

func (r *profileRepository) getOne(ctx context.Context, query string, arg any) (*domain.Profile, error) {
	p := &domain.Profile{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&p.ID, &p.UserID, &p.FirstName, &p.LastName, &p.Email, &p.Phone, &p.Title, &p.OrganizationName, &p.CreatedOn)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *profileRepository) Update(ctx context.Context, p *domain.Profile) error {
	query := `UPDATE profiles SET first_name = $1, last_name = $2, email = $3, phone = $4, title = $5,
	          organization_name = $6 WHERE id = $7`
	_, err := r.db.ExecContext(ctx, query, p.FirstName, p.LastName, p.Email, p.Phone, p.Title, p.OrganizationName, p.ID)
	return err
}

func (r *profileRepository) Delete(ctx context.Context, id string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM profiles WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *profileRepository) DeleteRolesByUser(ctx context.Context, userID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM user_roles WHERE user_id = $1`, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
