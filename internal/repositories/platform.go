package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/gamedex/internal/models"
)

// PlatformRepository persists the platform graph: platforms plus their
// dependent family, type, and logo rows, all keyed by IGDB remote id.
//
// Every write is an upsert-by-remote-id executed as a single statement,
// so concurrent resolutions of the same platform converge on one row
// without any in-process locking. Merges never regress a populated
// column to NULL: the ON CONFLICT clause coalesces each incoming value
// with the existing one.
type PlatformRepository struct {
	db *sql.DB
}

// NewPlatformRepository creates a new PlatformRepository with the given database connection
func NewPlatformRepository(db *sql.DB) *PlatformRepository {
	return &PlatformRepository{db: db}
}

// UpsertFamily inserts or merges a platform family row.
func (r *PlatformRepository) UpsertFamily(family *models.PlatformFamily) error {
	if family.RemoteID <= 0 {
		return fmt.Errorf("family remote id must be positive, got %d", family.RemoteID)
	}

	query := `
		INSERT INTO platform_families (remote_id, name)
		VALUES (?, ?)
		ON CONFLICT(remote_id) DO UPDATE SET
			name = COALESCE(excluded.name, name),
			updated_at = CURRENT_TIMESTAMP
	`

	if _, err := r.db.Exec(query, family.RemoteID, family.Name); err != nil {
		return fmt.Errorf("failed to upsert platform family %d: %w", family.RemoteID, err)
	}
	return nil
}

// UpsertType inserts or merges a platform type row.
func (r *PlatformRepository) UpsertType(pt *models.PlatformType) error {
	if pt.RemoteID <= 0 {
		return fmt.Errorf("type remote id must be positive, got %d", pt.RemoteID)
	}

	query := `
		INSERT INTO platform_types (remote_id, name)
		VALUES (?, ?)
		ON CONFLICT(remote_id) DO UPDATE SET
			name = COALESCE(excluded.name, name),
			updated_at = CURRENT_TIMESTAMP
	`

	if _, err := r.db.Exec(query, pt.RemoteID, pt.Name); err != nil {
		return fmt.Errorf("failed to upsert platform type %d: %w", pt.RemoteID, err)
	}
	return nil
}

// UpsertLogo inserts or merges a platform logo row.
func (r *PlatformRepository) UpsertLogo(logo *models.PlatformLogo) error {
	if logo.RemoteID <= 0 {
		return fmt.Errorf("logo remote id must be positive, got %d", logo.RemoteID)
	}

	query := `
		INSERT INTO platform_logos (remote_id, image_id, url, width, height)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(remote_id) DO UPDATE SET
			image_id = COALESCE(excluded.image_id, image_id),
			url = COALESCE(excluded.url, url),
			width = COALESCE(excluded.width, width),
			height = COALESCE(excluded.height, height),
			updated_at = CURRENT_TIMESTAMP
	`

	if _, err := r.db.Exec(query, logo.RemoteID, logo.ImageID, logo.URL, logo.Width, logo.Height); err != nil {
		return fmt.Errorf("failed to upsert platform logo %d: %w", logo.RemoteID, err)
	}
	return nil
}

// UpsertPlatform inserts or merges a platform row. Dependent rows
// referenced by FamilyID/TypeID/LogoID must already exist; callers
// write dependents first.
func (r *PlatformRepository) UpsertPlatform(platform *models.Platform) error {
	if err := platform.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO platforms (remote_id, name, abbreviation, generation, family_remote_id, type_remote_id, logo_remote_id)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(remote_id) DO UPDATE SET
			name = excluded.name,
			abbreviation = COALESCE(excluded.abbreviation, abbreviation),
			generation = COALESCE(excluded.generation, generation),
			family_remote_id = COALESCE(excluded.family_remote_id, family_remote_id),
			type_remote_id = COALESCE(excluded.type_remote_id, type_remote_id),
			logo_remote_id = COALESCE(excluded.logo_remote_id, logo_remote_id),
			updated_at = CURRENT_TIMESTAMP
	`

	_, err := r.db.Exec(query,
		platform.RemoteID,
		platform.Name,
		platform.Abbreviation,
		platform.Generation,
		platform.FamilyID,
		platform.TypeID,
		platform.LogoID,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert platform %d: %w", platform.RemoteID, err)
	}
	return nil
}

// GetByRemoteID retrieves a platform by its IGDB remote id.
func (r *PlatformRepository) GetByRemoteID(remoteID int) (*models.Platform, error) {
	query := `
		SELECT remote_id, name, abbreviation, generation, family_remote_id, type_remote_id, logo_remote_id, created_at, updated_at
		FROM platforms
		WHERE remote_id = ?
	`

	return r.scanPlatform(r.db.QueryRow(query, remoteID))
}

// GetFamily retrieves a platform family by remote id.
func (r *PlatformRepository) GetFamily(remoteID int) (*models.PlatformFamily, error) {
	var (
		family models.PlatformFamily
		name   sql.NullString
	)

	query := `SELECT remote_id, name, created_at, updated_at FROM platform_families WHERE remote_id = ?`
	err := r.db.QueryRow(query, remoteID).Scan(&family.RemoteID, &name, &family.CreatedAt, &family.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("platform family %d not found", remoteID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan platform family: %w", err)
	}

	if name.Valid {
		family.Name = &name.String
	}
	return &family, nil
}

// GetType retrieves a platform type by remote id.
func (r *PlatformRepository) GetType(remoteID int) (*models.PlatformType, error) {
	var (
		pt   models.PlatformType
		name sql.NullString
	)

	query := `SELECT remote_id, name, created_at, updated_at FROM platform_types WHERE remote_id = ?`
	err := r.db.QueryRow(query, remoteID).Scan(&pt.RemoteID, &name, &pt.CreatedAt, &pt.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("platform type %d not found", remoteID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan platform type: %w", err)
	}

	if name.Valid {
		pt.Name = &name.String
	}
	return &pt, nil
}

// GetLogo retrieves a platform logo by remote id.
func (r *PlatformRepository) GetLogo(remoteID int) (*models.PlatformLogo, error) {
	var (
		logo          models.PlatformLogo
		imageID, url  sql.NullString
		width, height sql.NullInt64
	)

	query := `SELECT remote_id, image_id, url, width, height, created_at, updated_at FROM platform_logos WHERE remote_id = ?`
	err := r.db.QueryRow(query, remoteID).Scan(&logo.RemoteID, &imageID, &url, &width, &height, &logo.CreatedAt, &logo.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("platform logo %d not found", remoteID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan platform logo: %w", err)
	}

	if imageID.Valid {
		logo.ImageID = &imageID.String
	}
	if url.Valid {
		logo.URL = &url.String
	}
	if width.Valid {
		w := int(width.Int64)
		logo.Width = &w
	}
	if height.Valid {
		h := int(height.Int64)
		logo.Height = &h
	}
	return &logo, nil
}

// List retrieves platforms matching the given criteria, ordered by name.
func (r *PlatformRepository) List(criteria map[string]any) ([]*models.Platform, error) {
	query := `
		SELECT remote_id, name, abbreviation, generation, family_remote_id, type_remote_id, logo_remote_id, created_at, updated_at
		FROM platforms
		WHERE 1 = 1
	`

	args := []any{}

	if name, ok := criteria["name"].(string); ok && name != "" {
		query += " AND name LIKE ?"
		args = append(args, "%"+name+"%")
	}

	if familyID, ok := criteria["family_remote_id"].(int); ok && familyID > 0 {
		query += " AND family_remote_id = ?"
		args = append(args, familyID)
	}

	query += " ORDER BY name ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query platforms: %w", err)
	}
	defer rows.Close()

	var platforms []*models.Platform
	for rows.Next() {
		platform, err := r.scanPlatformRow(rows)
		if err != nil {
			return nil, err
		}
		platforms = append(platforms, platform)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return platforms, nil
}

// Count returns the number of rows in the named catalog table.
// Used by sync reporting and idempotence checks.
func (r *PlatformRepository) Count(table string) (int, error) {
	switch table {
	case "platforms", "platform_families", "platform_types", "platform_logos":
	default:
		return 0, fmt.Errorf("unknown catalog table %q", table)
	}

	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}
	return count, nil
}

// scanPlatform scans a single [sql.Row] into a [models.Platform]
func (r *PlatformRepository) scanPlatform(row *sql.Row) (*models.Platform, error) {
	var (
		platform             models.Platform
		abbreviation         sql.NullString
		generation           sql.NullInt64
		familyID, typeID     sql.NullInt64
		logoID               sql.NullInt64
		createdAt, updatedAt time.Time
	)

	err := row.Scan(&platform.RemoteID, &platform.Name, &abbreviation, &generation, &familyID, &typeID, &logoID, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("platform not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan platform: %w", err)
	}

	platform.CreatedAt = createdAt
	platform.UpdatedAt = updatedAt
	applyPlatformNulls(&platform, abbreviation, generation, familyID, typeID, logoID)
	return &platform, nil
}

// scanPlatformRow scans a row from [sql.Rows] into a [models.Platform]
func (r *PlatformRepository) scanPlatformRow(rows *sql.Rows) (*models.Platform, error) {
	var (
		platform             models.Platform
		abbreviation         sql.NullString
		generation           sql.NullInt64
		familyID, typeID     sql.NullInt64
		logoID               sql.NullInt64
		createdAt, updatedAt time.Time
	)

	err := rows.Scan(&platform.RemoteID, &platform.Name, &abbreviation, &generation, &familyID, &typeID, &logoID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to scan platform: %w", err)
	}

	platform.CreatedAt = createdAt
	platform.UpdatedAt = updatedAt
	applyPlatformNulls(&platform, abbreviation, generation, familyID, typeID, logoID)
	return &platform, nil
}

func applyPlatformNulls(p *models.Platform, abbreviation sql.NullString, generation, familyID, typeID, logoID sql.NullInt64) {
	if abbreviation.Valid {
		p.Abbreviation = &abbreviation.String
	}
	if generation.Valid {
		g := int(generation.Int64)
		p.Generation = &g
	}
	if familyID.Valid {
		f := int(familyID.Int64)
		p.FamilyID = &f
	}
	if typeID.Valid {
		t := int(typeID.Int64)
		p.TypeID = &t
	}
	if logoID.Valid {
		l := int(logoID.Int64)
		p.LogoID = &l
	}
}
