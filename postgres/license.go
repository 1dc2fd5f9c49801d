package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/LerianStudio/lib-device-license-go/constant"
	"github.com/LerianStudio/lib-device-license-go/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

const licenseColumns = `id, license_key, user_id, status, created_at, expires_at, max_devices, metadata`

// LicenseRepository stores licenses in the licenses table.
type LicenseRepository struct {
	db *DB
}

func (r *LicenseRepository) Create(ctx context.Context, license *model.License) error {
	metadata := license.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}

	_, err := r.db.Pool.Exec(ctx, `
		INSERT INTO licenses (`+licenseColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, license.ID, license.LicenseKey, license.UserID, string(license.Status), license.CreatedAt,
		license.ExpiresAt, license.MaxDevices, metadata)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return constant.ErrDuplicateLicenseKey
		}

		return fmt.Errorf("create license: %w", err)
	}

	return nil
}

func (r *LicenseRepository) FindByKey(ctx context.Context, licenseKey string) (*model.License, error) {
	row := r.db.Pool.QueryRow(ctx, `SELECT `+licenseColumns+` FROM licenses WHERE license_key = $1`, licenseKey)

	return scanLicense(row)
}

func (r *LicenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.License, error) {
	row := r.db.Pool.QueryRow(ctx, `SELECT `+licenseColumns+` FROM licenses WHERE id = $1`, id)

	return scanLicense(row)
}

func (r *LicenseRepository) List(ctx context.Context, userID string) ([]*model.License, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT `+licenseColumns+` FROM licenses
		WHERE $1 = '' OR user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list licenses: %w", err)
	}
	defer rows.Close()

	return collectLicenses(rows)
}

func (r *LicenseRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.LicenseStatus) error {
	tag, err := r.db.Pool.Exec(ctx, `UPDATE licenses SET status = $2 WHERE id = $1`, id, string(status))
	if err != nil {
		return fmt.Errorf("update license status: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return constant.ErrLicenseNotFound
	}

	return nil
}

func (r *LicenseRepository) ListLapsed(ctx context.Context, now time.Time) ([]*model.License, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT `+licenseColumns+` FROM licenses
		WHERE status = 'active' AND expires_at IS NOT NULL AND expires_at < $1
		ORDER BY expires_at
	`, now)
	if err != nil {
		return nil, fmt.Errorf("list lapsed licenses: %w", err)
	}
	defer rows.Close()

	return collectLicenses(rows)
}

func scanLicense(row pgx.Row) (*model.License, error) {
	var (
		l      model.License
		status string
	)

	err := row.Scan(&l.ID, &l.LicenseKey, &l.UserID, &status, &l.CreatedAt, &l.ExpiresAt, &l.MaxDevices, &l.Metadata)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, constant.ErrLicenseNotFound
		}

		return nil, fmt.Errorf("scan license: %w", err)
	}

	l.Status = model.LicenseStatus(status)

	return &l, nil
}

func collectLicenses(rows pgx.Rows) ([]*model.License, error) {
	out := make([]*model.License, 0)

	for rows.Next() {
		l, err := scanLicense(rows)
		if err != nil {
			return nil, err
		}

		out = append(out, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate licenses: %w", err)
	}

	return out, nil
}
