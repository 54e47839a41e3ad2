package repositories

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/gamedex/internal/models"
	"github.com/desertthunder/gamedex/internal/shared"
)

// GameRepository handles CRUD for tracked games, with soft delete
// support and per-console deduplication via the (console_id,
// igdb_game_id) unique constraint.
type GameRepository struct {
	db *sql.DB
}

// NewGameRepository creates a new GameRepository with the given database connection
func NewGameRepository(db *sql.DB) *GameRepository {
	return &GameRepository{db: db}
}

// Create inserts a new [models.Game] into the database with generated ID and sequence.
// Adding the same IGDB game to the same console twice is a no-op.
func (r *GameRepository) Create(game *models.Game) error {
	sequence, err := NextSequence(r.db, "games")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	game.ID = shared.GenerateID()
	game.Sequence = sequence

	if err := game.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO games (id, sequence, console_id, igdb_game_id, name, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		game.ID,
		game.Sequence,
		game.ConsoleID,
		game.IGDBGameID,
		game.Name,
		game.Status,
		game.CreatedAt,
		game.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return nil
		}
		return fmt.Errorf("failed to insert game: %w", err)
	}

	return nil
}

// Get retrieves a game by ID, excluding soft-deleted games
func (r *GameRepository) Get(id string) (*models.Game, error) {
	query := `
		SELECT id, sequence, console_id, igdb_game_id, name, status, created_at, updated_at, deleted_at
		FROM games
		WHERE id = ? AND deleted_at IS NULL
	`

	return r.scanOne(r.db.QueryRow(query, id))
}

// Update modifies an existing game's name and status
func (r *GameRepository) Update(game *models.Game) error {
	if err := game.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	game.UpdatedAt = now

	query := `
		UPDATE games
		SET name = ?, status = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, game.Name, game.Status, now, game.ID)
	if err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("game not found or already deleted: %s", game.ID)
	}

	return nil
}

// Delete soft-deletes a game by ID
func (r *GameRepository) Delete(id string) error {
	now := time.Now()

	query := `
		UPDATE games
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, now, id)
	if err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("game not found or already deleted: %s", id)
	}

	return nil
}

// List retrieves all games matching the given criteria, excluding soft-deleted games
func (r *GameRepository) List(criteria map[string]any) ([]*models.Game, error) {
	query := `
		SELECT id, sequence, console_id, igdb_game_id, name, status, created_at, updated_at, deleted_at
		FROM games
		WHERE deleted_at IS NULL
	`

	args := []any{}

	if consoleID, ok := criteria["console_id"].(string); ok && consoleID != "" {
		query += " AND console_id = ?"
		args = append(args, consoleID)
	}

	if status, ok := criteria["status"].(string); ok && status != "" {
		query += " AND status = ?"
		args = append(args, status)
	}

	query += " ORDER BY sequence ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query games: %w", err)
	}
	defer rows.Close()

	var games []*models.Game
	for rows.Next() {
		game, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		games = append(games, game)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return games, nil
}

// scanOne scans a single [sql.Row] into a [models.Game]
func (r *GameRepository) scanOne(row *sql.Row) (*models.Game, error) {
	var (
		game      models.Game
		deletedAt sql.NullTime
	)

	err := row.Scan(
		&game.ID, &game.Sequence, &game.ConsoleID, &game.IGDBGameID,
		&game.Name, &game.Status, &game.CreatedAt, &game.UpdatedAt, &deletedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("game not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan game: %w", err)
	}

	if deletedAt.Valid {
		game.DeletedAt = &deletedAt.Time
	}

	return &game, nil
}

// scanRow scans a row from [sql.Rows] into a [models.Game]
func (r *GameRepository) scanRow(rows *sql.Rows) (*models.Game, error) {
	var (
		game      models.Game
		deletedAt sql.NullTime
	)

	err := rows.Scan(
		&game.ID, &game.Sequence, &game.ConsoleID, &game.IGDBGameID,
		&game.Name, &game.Status, &game.CreatedAt, &game.UpdatedAt, &deletedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan game: %w", err)
	}

	if deletedAt.Valid {
		game.DeletedAt = &deletedAt.Time
	}

	return &game, nil
}
