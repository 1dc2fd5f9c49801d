package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/LerianStudio/lib-device-license-go/constant"
	"github.com/LerianStudio/lib-device-license-go/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const deviceColumns = `id, license_id, device_fingerprint, ip_address, last_verified_at, created_at, metadata`

// DeviceRepository stores registrations in the device_registrations table.
type DeviceRepository struct {
	db *DB
}

// RegisterDevice locks the license row so concurrent validations of the same
// license serialize on the count-then-insert.
func (r *DeviceRepository) RegisterDevice(ctx context.Context, reg *model.DeviceRegistration, maxDevices int) (model.DeviceOutcome, error) {
	var outcome model.DeviceOutcome

	err := r.db.ExecTx(ctx, func(tx pgx.Tx) error {
		var locked uuid.UUID
		if err := tx.QueryRow(ctx, `SELECT id FROM licenses WHERE id = $1 FOR UPDATE`, reg.LicenseID).Scan(&locked); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return constant.ErrLicenseNotFound
			}

			return fmt.Errorf("lock license: %w", err)
		}

		tag, err := tx.Exec(ctx, `
			UPDATE device_registrations SET last_verified_at = $3, ip_address = $4
			WHERE license_id = $1 AND device_fingerprint = $2
		`, reg.LicenseID, reg.DeviceFingerprint, reg.LastVerifiedAt, reg.IPAddress)
		if err != nil {
			return fmt.Errorf("refresh device: %w", err)
		}

		if tag.RowsAffected() > 0 {
			outcome = model.DeviceRefreshed
			return nil
		}

		var count int
		if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM device_registrations WHERE license_id = $1`, reg.LicenseID).Scan(&count); err != nil {
			return fmt.Errorf("count devices: %w", err)
		}

		if count >= maxDevices {
			outcome = model.DeviceLimitReached
			return nil
		}

		metadata := reg.Metadata
		if metadata == nil {
			metadata = map[string]any{}
		}

		if _, err := tx.Exec(ctx, `
			INSERT INTO device_registrations (`+deviceColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, reg.ID, reg.LicenseID, reg.DeviceFingerprint, reg.IPAddress, reg.LastVerifiedAt, reg.CreatedAt, metadata); err != nil {
			return fmt.Errorf("insert device: %w", err)
		}

		outcome = model.DeviceRegistered

		return nil
	})
	if err != nil {
		return "", err
	}

	return outcome, nil
}

func (r *DeviceRepository) Delete(ctx context.Context, id uuid.UUID) (*model.DeviceRegistration, error) {
	row := r.db.Pool.QueryRow(ctx, `DELETE FROM device_registrations WHERE id = $1 RETURNING `+deviceColumns, id)

	return scanDevice(row)
}

func (r *DeviceRepository) ListByLicense(ctx context.Context, licenseID uuid.UUID) ([]*model.DeviceRegistration, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT `+deviceColumns+` FROM device_registrations
		WHERE license_id = $1
		ORDER BY created_at
	`, licenseID)
	if err != nil {
		return nil, fmt.Errorf("list devices: %w", err)
	}
	defer rows.Close()

	out := make([]*model.DeviceRegistration, 0)

	for rows.Next() {
		d, err := scanDevice(rows)
		if err != nil {
			return nil, err
		}

		out = append(out, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate devices: %w", err)
	}

	return out, nil
}

func scanDevice(row pgx.Row) (*model.DeviceRegistration, error) {
	var d model.DeviceRegistration

	err := row.Scan(&d.ID, &d.LicenseID, &d.DeviceFingerprint, &d.IPAddress, &d.LastVerifiedAt, &d.CreatedAt, &d.Metadata)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, constant.ErrDeviceNotFound
		}

		return nil, fmt.Errorf("scan device: %w", err)
	}

	return &d, nil
}
