package postgres

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"

	"creator-crm/internal/core/domain"
)

// AuditSink appends mutation records to the audit_log table. Rows are never
// updated or deleted.
type AuditSink struct {
	pool *pgxpool.Pool
}

// NewAuditSink returns a new sink instance.
func NewAuditSink(pool *pgxpool.Pool) *AuditSink {
	return &AuditSink{pool: pool}
}

// Record inserts one audit entry. The caller treats failures as non-fatal.
func (s *AuditSink) Record(ctx context.Context, entry domain.AuditEntry) error {
	details, err := json.Marshal(entry.Details)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO audit_log
             (event_id, entity_type, entity_id, action, user_email, old_value, new_value, details, created_at)
         VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		entry.EventID, entry.EntityType, entry.EntityID, string(entry.Action),
		entry.UserEmail, entry.OldValue, entry.NewValue, details, entry.CreatedAt)
	return err
}
