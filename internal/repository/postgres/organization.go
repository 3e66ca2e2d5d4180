package postgres

import (
	"context"
	"database/sql"
	"time"

	"hess-portal-backend/internal/domain"
	"hess-portal-backend/internal/repository"

	"github.com/google/uuid"
)

type organizationRepository struct {
	db dbtx
}

func NewOrganizationRepository(db *sql.DB) repository.OrganizationRepository {
	return &organizationRepository{db: db}
}

const orgColumns = `id, org_name, address, city, state, zip, phone, website, institution_type,
	student_fte, annual_fee_cents, membership_status, member_since, renewal_date,
	erp_system, sis_system, crm_system, lms_system,
	on_prem_servers, managed_wifi, classroom_av, contact_person_id, created_on`

func (r *organizationRepository) Create(ctx context.Context, o *domain.Organization) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	query := `INSERT INTO organizations (` + orgColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)`
	_, err := r.db.ExecContext(ctx, query,
		o.ID, o.Name, o.Address, o.City, o.State, o.Zip, o.Phone, o.Website, o.InstitutionType,
		o.StudentFTE, o.AnnualFeeCents, o.Status, o.MemberSince, o.RenewalDate,
		o.ERPSystem, o.SISSystem, o.CRMSystem, o.LMSSystem,
		o.OnPremServers, o.ManagedWifi, o.ClassroomAV, o.ContactPersonID, time.Now())
	return err
}

func (r *organizationRepository) GetByID(ctx context.Context, id string) (*domain.Organization, error) {
	o := &domain.Organization{}
	query := `SELECT ` + orgColumns + ` FROM organizations WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&o.ID, &o.Name, &o.Address, &o.City, &o.State, &o.Zip, &o.Phone, &o.Website, &o.InstitutionType,
		&o.StudentFTE, &o.AnnualFeeCents, &o.Status, &o.MemberSince, &o.RenewalDate,
		&o.ERPSystem, &o.SISSystem, &o.CRMSystem, &o.LMSSystem,
		&o.OnPremServers, &o.ManagedWifi, &o.ClassroomAV, &o.ContactPersonID, &o.CreatedOn)
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *organizationRepository) List(ctx context.Context) ([]domain.Organization, error) {
	query := `SELECT ` + orgColumns + ` FROM organizations ORDER BY org_name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orgs []domain.Organization
	for rows.Next() {
		var o domain.Organization
		if err := rows.Scan(
			&o.ID, &o.Name, &o.Address, &o.City, &o.State, &o.Zip, &o.Phone, &o.Website, &o.InstitutionType,
			&o.StudentFTE, &o.AnnualFeeCents, &o.Status, &o.MemberSince, &o.RenewalDate,
			&o.ERPSystem, &o.SISSystem, &o.CRMSystem, &o.LMSSystem,
			&o.OnPremServers, &o.ManagedWifi, &o.ClassroomAV, &o.ContactPersonID, &o.CreatedOn); err != nil {
			return nil, err
		}
		orgs = append(orgs, o)
	}
	return orgs, rows.Err()
}

func (r *organizationRepository) Update(ctx context.Context, o *domain.Organization) error {
	query := `UPDATE organizations SET org_name = $1, address = $2, city = $3, state = $4, zip = $5,
	          phone = $6, website = $7, institution_type = $8, student_fte = $9, annual_fee_cents = $10,
	          membership_status = $11, member_since = $12, renewal_date = $13,
	          erp_system = $14, sis_system = $15, crm_system = $16, lms_system = $17,
	          on_prem_servers = $18, managed_wifi = $19, classroom_av = $20, contact_person_id = $21
	          WHERE id = $22`
	_, err := r.db.ExecContext(ctx, query,
		o.Name, o.Address, o.City, o.State, o.Zip,
		o.Phone, o.Website, o.InstitutionType, o.StudentFTE, o.AnnualFeeCents,
		o.Status, o.MemberSince, o.RenewalDate,
		o.ERPSystem, o.SISSystem, o.CRMSystem, o.LMSSystem,
		o.OnPremServers, o.ManagedWifi, o.ClassroomAV, o.ContactPersonID, o.ID)
	return err
}

func (r *organizationRepository) Delete(ctx context.Context, id string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM organizations WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
