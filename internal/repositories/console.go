package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/gamedex/internal/models"
	"github.com/desertthunder/gamedex/internal/shared"
)

// ConsoleRepository handles CRUD for consoles in the collection, with
// soft delete support and sequence generation.
type ConsoleRepository struct {
	db *sql.DB
}

// NewConsoleRepository creates a new ConsoleRepository with the given database connection
func NewConsoleRepository(db *sql.DB) *ConsoleRepository {
	return &ConsoleRepository{db: db}
}

// Create inserts a new [models.Console] into the database with generated ID and sequence
func (r *ConsoleRepository) Create(console *models.Console) error {
	sequence, err := NextSequence(r.db, "consoles")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	console.ID = shared.GenerateID()
	console.Sequence = sequence

	if err := console.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO consoles (id, sequence, igdb_platform_id, nickname, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	var notes any = console.Notes
	if console.Notes == "" {
		notes = nil
	}

	_, err = r.db.Exec(query,
		console.ID,
		console.Sequence,
		console.IGDBPlatformID,
		console.Nickname,
		notes,
		console.CreatedAt,
		console.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert console: %w", err)
	}

	return nil
}

// Get retrieves a console by ID, excluding soft-deleted consoles
func (r *ConsoleRepository) Get(id string) (*models.Console, error) {
	query := `
		SELECT id, sequence, igdb_platform_id, nickname, notes, created_at, updated_at, deleted_at
		FROM consoles
		WHERE id = ? AND deleted_at IS NULL
	`

	var (
		console   models.Console
		notes     sql.NullString
		deletedAt sql.NullTime
	)

	err := r.db.QueryRow(query, id).Scan(
		&console.ID, &console.Sequence, &console.IGDBPlatformID,
		&console.Nickname, &notes, &console.CreatedAt, &console.UpdatedAt, &deletedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("console not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan console: %w", err)
	}

	if notes.Valid {
		console.Notes = notes.String
	}
	if deletedAt.Valid {
		console.DeletedAt = &deletedAt.Time
	}

	return &console, nil
}

// Update modifies an existing console in the database
func (r *ConsoleRepository) Update(console *models.Console) error {
	if err := console.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	console.UpdatedAt = now

	query := `
		UPDATE consoles
		SET nickname = ?, notes = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	var notes any = console.Notes
	if console.Notes == "" {
		notes = nil
	}

	result, err := r.db.Exec(query, console.Nickname, notes, now, console.ID)
	if err != nil {
		return fmt.Errorf("failed to update console: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("console not found or already deleted: %s", console.ID)
	}

	return nil
}

// Delete soft-deletes a console by ID
func (r *ConsoleRepository) Delete(id string) error {
	now := time.Now()

	query := `
		UPDATE consoles
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, now, id)
	if err != nil {
		return fmt.Errorf("failed to delete console: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("console not found or already deleted: %s", id)
	}

	return nil
}

// List retrieves all consoles matching the given criteria, excluding soft-deleted consoles
func (r *ConsoleRepository) List(criteria map[string]any) ([]*models.Console, error) {
	query := `
		SELECT id, sequence, igdb_platform_id, nickname, notes, created_at, updated_at, deleted_at
		FROM consoles
		WHERE deleted_at IS NULL
	`

	args := []any{}

	if platformID, ok := criteria["igdb_platform_id"].(int); ok && platformID > 0 {
		query += " AND igdb_platform_id = ?"
		args = append(args, platformID)
	}

	query += " ORDER BY sequence ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query consoles: %w", err)
	}
	defer rows.Close()

	var consoles []*models.Console
	for rows.Next() {
		var (
			console   models.Console
			notes     sql.NullString
			deletedAt sql.NullTime
		)

		err := rows.Scan(
			&console.ID, &console.Sequence, &console.IGDBPlatformID,
			&console.Nickname, &notes, &console.CreatedAt, &console.UpdatedAt, &deletedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan console: %w", err)
		}

		if notes.Valid {
			console.Notes = notes.String
		}
		if deletedAt.Valid {
			console.DeletedAt = &deletedAt.Time
		}

		consoles = append(consoles, &console)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return consoles, nil
}
