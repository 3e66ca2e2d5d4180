package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"hess-portal-backend/internal/domain"
	"hess-portal-backend/internal/logger"
	"hess-portal-backend/internal/repository"

	"github.com/google/uuid"
)

type auditLogRepository struct {
	db *sql.DB
}

func NewAuditLogRepository(db *sql.DB) repository.AuditLogRepository {
	return &auditLogRepository{db: db}
}

func (r *auditLogRepository) Insert(ctx context.Context, entry *domain.AuditLogEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	details, err := json.Marshal(entry.Details)
	if err != nil {
		return err
	}

	query := `INSERT INTO audit_log (id, action, entity_type, entity_id, actor_id, details, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	logger.DatabaseCall("INSERT", "audit_log", "action", entry.Action, "entity_id", entry.EntityID)
	_, err = r.db.ExecContext(ctx, query,
		entry.ID, entry.Action, entry.EntityType, entry.EntityID, entry.ActorID, details, entry.CreatedAt)
	logger.DatabaseResult("INSERT", 1, err, "action", entry.Action)
	return err
}

func (r *auditLogRepository) ListRecent(ctx context.Context, limit int32) ([]domain.AuditLogEntry, error) {
	query := `SELECT id, action, entity_type, entity_id, actor_id, details, created_at
	          FROM audit_log ORDER BY created_at DESC LIMIT $1`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.AuditLogEntry
	for rows.Next() {
		var entry domain.AuditLogEntry
		var details []byte
		if err := rows.Scan(&entry.ID, &entry.Action, &entry.EntityType, &entry.EntityID, &entry.ActorID, &details, &entry.CreatedAt); err != nil {
			return nil, err
		}
		if len(details) > 0 {
			if err := json.Unmarshal(details, &entry.Details); err != nil {
				return nil, err
			}
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
