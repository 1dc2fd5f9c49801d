package service

import (
	"context"

	"github.com/LerianStudio/lib-device-license-go/constant"
	"github.com/LerianStudio/lib-device-license-go/model"
	"github.com/google/uuid"
)

const maxAuditPageSize = 500

// logEvent appends an audit entry. Failures are logged and swallowed so they
// never block the operation being recorded.
func (s *Service) logEvent(ctx context.Context, licenseID uuid.UUID, eventType model.AuditEventType, details map[string]any) {
	entry := &model.AuditLogEntry{
		ID:        uuid.New(),
		LicenseID: licenseID,
		EventType: eventType,
		Details:   details,
		CreatedAt: s.now().UTC(),
	}

	if err := s.audits.Append(ctx, entry); err != nil {
		s.logger.Warnf("Error logging license event %s for license %s: %v", eventType, licenseID, err)
	}
}

// ListAuditLogs pages through a license's audit trail, newest first.
func (s *Service) ListAuditLogs(ctx context.Context, licenseID uuid.UUID, limit, offset int) ([]*model.AuditLogEntry, error) {
	if _, err := s.GetLicense(ctx, licenseID); err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = constant.DefaultAuditPageSize
	}

	if limit > maxAuditPageSize {
		limit = maxAuditPageSize
	}

	if offset < 0 {
		offset = 0
	}

	entries, err := s.audits.ListByLicense(ctx, licenseID, limit, offset)
	if err != nil {
		return nil, s.readError(err, constant.ErrLicenseNotFound, "AuditLogEntry")
	}

	return entries, nil
}
