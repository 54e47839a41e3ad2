package models

import (
	"fmt"
	"time"
)

// Platform is a locally persisted game platform, keyed by its IGDB
// remote id. Family/type/logo references, when set, point at rows in
// the dependent tables; they are written before the platform row so a
// reader never observes a dangling reference.
type Platform struct {
	RemoteID     int       `json:"remote_id"`
	Name         string    `json:"name"`
	Abbreviation *string   `json:"abbreviation,omitempty"`
	Generation   *int      `json:"generation,omitempty"`
	FamilyID     *int      `json:"family_remote_id,omitempty"`
	TypeID       *int      `json:"type_remote_id,omitempty"`
	LogoID       *int      `json:"logo_remote_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Validate checks required platform fields.
func (p *Platform) Validate() error {
	if p.RemoteID <= 0 {
		return fmt.Errorf("platform remote id must be positive, got %d", p.RemoteID)
	}
	if p.Name == "" {
		return fmt.Errorf("platform name is required")
	}
	return nil
}

// PlatformFamily is a dependent row grouping related platforms
// (e.g. PlayStation), keyed by IGDB remote id.
type PlatformFamily struct {
	RemoteID  int       `json:"remote_id"`
	Name      *string   `json:"name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PlatformType is a dependent row classifying a platform
// (console, arcade, computer), keyed by IGDB remote id.
type PlatformType struct {
	RemoteID  int       `json:"remote_id"`
	Name      *string   `json:"name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PlatformLogo is a dependent row holding platform artwork metadata,
// keyed by IGDB remote id.
type PlatformLogo struct {
	RemoteID  int       `json:"remote_id"`
	ImageID   *string   `json:"image_id,omitempty"`
	URL       *string   `json:"url,omitempty"`
	Width     *int      `json:"width,omitempty"`
	Height    *int      `json:"height,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Console is a user-owned console in the collection. It references a
// resolved platform row by IGDB platform id and is only created after
// the platform has been synced locally.
type Console struct {
	ID             string     `json:"id"`
	Sequence       int        `json:"sequence"`
	IGDBPlatformID int        `json:"igdb_platform_id"`
	Nickname       string     `json:"nickname"`
	Notes          string     `json:"notes,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	DeletedAt      *time.Time `json:"deleted_at,omitempty"`
}

// Validate checks required console fields.
func (c *Console) Validate() error {
	if c.IGDBPlatformID <= 0 {
		return fmt.Errorf("console platform id must be positive, got %d", c.IGDBPlatformID)
	}
	if c.Nickname == "" {
		return fmt.Errorf("console nickname is required")
	}
	return nil
}

// NewConsole creates a console for the given platform with timestamps set.
func NewConsole(igdbPlatformID int, nickname, notes string) *Console {
	now := time.Now()
	return &Console{
		IGDBPlatformID: igdbPlatformID,
		Nickname:       nickname,
		Notes:          notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// GameStatus enumerates collection states for a tracked game.
const (
	GameOwned    = "owned"
	GameWishlist = "wishlist"
	GameLent     = "lent"
)

// Game is a tracked game in the collection, attached to a console and
// referencing the IGDB game id for metadata.
type Game struct {
	ID         string     `json:"id"`
	Sequence   int        `json:"sequence"`
	ConsoleID  string     `json:"console_id"`
	IGDBGameID int        `json:"igdb_game_id"`
	Name       string     `json:"name"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	DeletedAt  *time.Time `json:"deleted_at,omitempty"`
}

// Validate checks required game fields.
func (g *Game) Validate() error {
	if g.ConsoleID == "" {
		return fmt.Errorf("game console id is required")
	}
	if g.IGDBGameID <= 0 {
		return fmt.Errorf("game igdb id must be positive, got %d", g.IGDBGameID)
	}
	if g.Name == "" {
		return fmt.Errorf("game name is required")
	}
	switch g.Status {
	case GameOwned, GameWishlist, GameLent:
	default:
		return fmt.Errorf("unknown game status %q", g.Status)
	}
	return nil
}

// NewGame creates a game entry with timestamps set. An empty status
// defaults to owned.
func NewGame(consoleID string, igdbGameID int, name, status string) *Game {
	if status == "" {
		status = GameOwned
	}
	now := time.Now()
	return &Game{
		ConsoleID:  consoleID,
		IGDBGameID: igdbGameID,
		Name:       name,
		Status:     status,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
