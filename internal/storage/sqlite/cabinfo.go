package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/thalha/cabslip/internal/models"
	"github.com/thalha/cabslip/internal/storage"
)

// CabInfo retrieves the singleton operator profile.
// Returns nil without error when first-run setup has not happened yet.
func (s *SQLiteStore) CabInfo(ctx context.Context) (*models.CabInfo, error) {
	query := `
		SELECT id, cab_name, cab_address, primary_contact, secondary_contact,
		       email, logo_path, owner_signature_path, created_at, updated_at
		FROM cab_info
		WHERE id = ?
	`

	info := &models.CabInfo{}
	var secondaryContact, logoPath, signaturePath sql.NullString

	err := s.db.QueryRowContext(ctx, query, models.CabInfoID).Scan(
		&info.ID,
		&info.CabName,
		&info.CabAddress,
		&info.PrimaryContact,
		&secondaryContact,
		&info.Email,
		&logoPath,
		&signaturePath,
		&info.CreatedAt,
		&info.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil // Profile not created yet
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cab info: %w", err)
	}

	info.SecondaryContact = nullableString(secondaryContact)
	info.LogoPath = nullableString(logoPath)
	info.OwnerSignaturePath = nullableString(signaturePath)

	return info, nil
}

// UpsertCabInfo replaces the singleton profile row, creating it on first use.
func (s *SQLiteStore) UpsertCabInfo(ctx context.Context, info *models.CabInfo) error {
	query := `
		INSERT INTO cab_info (id, cab_name, cab_address, primary_contact, secondary_contact,
		                      email, logo_path, owner_signature_path, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			cab_name = excluded.cab_name,
			cab_address = excluded.cab_address,
			primary_contact = excluded.primary_contact,
			secondary_contact = excluded.secondary_contact,
			email = excluded.email,
			logo_path = excluded.logo_path,
			owner_signature_path = excluded.owner_signature_path,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at
	`

	_, err := s.db.ExecContext(ctx, query,
		models.CabInfoID,
		info.CabName,
		info.CabAddress,
		info.PrimaryContact,
		nullString(info.SecondaryContact),
		info.Email,
		nullString(info.LogoPath),
		nullString(info.OwnerSignaturePath),
		info.CreatedAt,
		info.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert cab info: %w", err)
	}

	s.notifier.Publish(storage.TableCabInfo)
	return nil
}

// nullString converts an optional field to its driver value.
func nullString(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

// nullableString converts a scanned nullable column back to an optional field.
func nullableString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}
