package postgres

import (
	"context"
	"fmt"

	"github.com/LerianStudio/lib-device-license-go/model"
	"github.com/google/uuid"
)

// AuditRepository appends to and reads the license_audit_logs table.
type AuditRepository struct {
	db *DB
}

func (r *AuditRepository) Append(ctx context.Context, entry *model.AuditLogEntry) error {
	details := entry.Details
	if details == nil {
		details = map[string]any{}
	}

	_, err := r.db.Pool.Exec(ctx, `
		INSERT INTO license_audit_logs (id, license_id, event_type, details, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, entry.ID, entry.LicenseID, string(entry.EventType), details, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("append audit entry: %w", err)
	}

	return nil
}

func (r *AuditRepository) ListByLicense(ctx context.Context, licenseID uuid.UUID, limit, offset int) ([]*model.AuditLogEntry, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, license_id, event_type, details, created_at
		FROM license_audit_logs
		WHERE license_id = $1
		ORDER BY created_at DESC, id
		LIMIT $2 OFFSET $3
	`, licenseID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	defer rows.Close()

	out := make([]*model.AuditLogEntry, 0)

	for rows.Next() {
		var (
			e         model.AuditLogEntry
			eventType string
		)

		if err := rows.Scan(&e.ID, &e.LicenseID, &eventType, &e.Details, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}

		e.EventType = model.AuditEventType(eventType)
		out = append(out, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit entries: %w", err)
	}

	return out, nil
}
