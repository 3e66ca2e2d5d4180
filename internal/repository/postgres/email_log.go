package postgres

import (
	"context"
	"database/sql"
	"time"

	"hess-portal-backend/internal/domain"
	"hess-portal-backend/internal/repository"

	"github.com/google/uuid"
)

type emailLogRepository struct {
	db *sql.DB
}

func NewEmailLogRepository(db *sql.DB) repository.EmailLogRepository {
	return &emailLogRepository{db: db}
}

func (r *emailLogRepository) Insert(ctx context.Context, log *domain.EmailLog) error {
	if log.ID == "" {
		log.ID = uuid.NewString()
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now()
	}
	query := `INSERT INTO email_log (id, email_type, recipient, subject, success, response, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query,
		log.ID, log.EmailType, log.Recipient, log.Subject, log.Success, log.Response, log.CreatedAt)
	return err
}

func (r *emailLogRepository) ListRecent(ctx context.Context, limit int32) ([]domain.EmailLog, error) {
	query := `SELECT id, email_type, recipient, subject, success, response, created_at
	          FROM email_log ORDER BY created_at DESC LIMIT $1`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []domain.EmailLog
	for rows.Next() {
		var l domain.EmailLog
		if err := rows.Scan(&l.ID, &l.EmailType, &l.Recipient, &l.Subject, &l.Success, &l.Response, &l.CreatedAt); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
