package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/campusops/tpo-api/internal/models"
)

// AuditRepository stores and reads append-only audit events.
type AuditRepository struct {
	db *sqlx.DB
}

// NewAuditRepository constructs an AuditRepository.
func NewAuditRepository(db *sqlx.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Insert appends one audit event. Events are never updated or deleted.
func (r *AuditRepository) Insert(ctx context.Context, event *models.AuditEvent) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO audit_events (id, actor_id, actor_role, action, target_table, target_id, target_role, details, created_at)
        VALUES (:id, :actor_id, :actor_role, :action, :target_table, :target_id, :target_role, :details, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, event); err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

// List returns events matching all provided filters, newest first, joined
// with a denormalised actor summary.
func (r *AuditRepository) List(ctx context.Context, filter models.AuditFilter) ([]models.AuditEventDetail, error) {
	base := `FROM audit_events e LEFT JOIN profiles p ON p.id = e.actor_id`
	conditions := []string{"1=1"}
	var args []interface{}

	if filter.TargetTable != "" {
		conditions = append(conditions, fmt.Sprintf("e.target_table = $%d", len(args)+1))
		args = append(args, filter.TargetTable)
	}
	if filter.TargetID != "" {
		conditions = append(conditions, fmt.Sprintf("e.target_id = $%d", len(args)+1))
		args = append(args, filter.TargetID)
	}
	if filter.TargetRole != "" {
		conditions = append(conditions, fmt.Sprintf("e.target_role = $%d", len(args)+1))
		args = append(args, filter.TargetRole)
	}

	limit := filter.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`SELECT e.id, e.actor_id, e.actor_role, e.action, e.target_table, e.target_id, e.target_role, e.details, e.created_at,
        p.full_name AS actor_name, p.email AS actor_email
        %s WHERE %s ORDER BY e.created_at DESC LIMIT %d OFFSET %d`,
		base, strings.Join(conditions, " AND "), limit, offset)

	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	defer rows.Close()

	var details []models.AuditEventDetail
	for rows.Next() {
		var row struct {
			models.AuditEvent
			ActorName  *string `db:"actor_name"`
			ActorEmail *string `db:"actor_email"`
		}
		if err := rows.StructScan(&row); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		details = append(details, models.AuditEventDetail{
			AuditEvent: row.AuditEvent,
			Actor: models.AuditActor{
				ID:       row.ActorID,
				FullName: row.ActorName,
				Email:    row.ActorEmail,
			},
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit events: %w", err)
	}
	return details, nil
}
