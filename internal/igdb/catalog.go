package igdb

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/desertthunder/gamedex/internal/shared"
)

// Executor transports an Apicalypse query to a resource endpoint.
// Implemented by [Client]; test doubles stand in for it in tests.
type Executor interface {
	Execute(ctx context.Context, resource, query string) ([]byte, error)
}

// Catalog provides typed search and lookup operations against IGDB.
// It composes queries, decodes responses, and passes executor errors
// through unchanged. It holds no cache and no state.
type Catalog struct {
	exec Executor
}

// NewCatalog creates a Catalog backed by the given executor.
func NewCatalog(exec Executor) *Catalog {
	return &Catalog{exec: exec}
}

// SearchPlatforms searches platforms by name using IGDB's own fuzzy
// search. No match is an empty slice, not an error.
func (c *Catalog) SearchPlatforms(ctx context.Context, term string) ([]RemotePlatform, error) {
	if strings.TrimSpace(term) == "" {
		return nil, fmt.Errorf("%w: empty search term", shared.ErrInvalidArgument)
	}

	query := fmt.Sprintf(
		`search "%s"; fields id,name,abbreviation,generation,platform_family,platform_type,platform_logo; limit 10;`,
		escapeQuery(term),
	)

	var platforms []RemotePlatform
	if err := c.run(ctx, "platforms", query, &platforms); err != nil {
		return nil, err
	}
	return platforms, nil
}

// SearchGames searches games by name scoped to a platform. The
// platform id is trusted as supplied; an unknown id simply yields an
// empty result.
func (c *Catalog) SearchGames(ctx context.Context, term string, platformID int) ([]RemoteGame, error) {
	if strings.TrimSpace(term) == "" {
		return nil, fmt.Errorf("%w: empty search term", shared.ErrInvalidArgument)
	}
	if platformID <= 0 {
		return nil, fmt.Errorf("%w: platform id must be positive, got %d", shared.ErrInvalidArgument, platformID)
	}

	query := fmt.Sprintf(
		`search "%s"; fields id,name,summary,first_release_date,rating; where platforms = (%d); limit 20;`,
		escapeQuery(term), platformID,
	)

	var games []RemoteGame
	if err := c.run(ctx, "games", query, &games); err != nil {
		return nil, err
	}
	return games, nil
}

// ListGenres returns all genres ordered by name ascending.
func (c *Catalog) ListGenres(ctx context.Context) ([]Genre, error) {
	query := `fields id,name; sort name asc; limit 500;`

	var genres []Genre
	if err := c.run(ctx, "genres", query, &genres); err != nil {
		return nil, err
	}
	return genres, nil
}

// PlatformFamily looks up a platform family by id. A missing record
// returns (nil, nil); the pipeline records it as absent.
func (c *Catalog) PlatformFamily(ctx context.Context, id int) (*RemoteFamily, error) {
	var families []RemoteFamily
	if err := c.run(ctx, "platform_families", byIDQuery("id,name", id), &families); err != nil {
		return nil, err
	}
	if len(families) == 0 {
		return nil, nil
	}
	return &families[0], nil
}

// PlatformType looks up a platform type by id. A missing record
// returns (nil, nil).
func (c *Catalog) PlatformType(ctx context.Context, id int) (*RemoteType, error) {
	var types []RemoteType
	if err := c.run(ctx, "platform_types", byIDQuery("id,name", id), &types); err != nil {
		return nil, err
	}
	if len(types) == 0 {
		return nil, nil
	}
	return &types[0], nil
}

// PlatformLogo looks up a platform logo by id. A missing record
// returns (nil, nil).
func (c *Catalog) PlatformLogo(ctx context.Context, id int) (*RemoteLogo, error) {
	var logos []RemoteLogo
	if err := c.run(ctx, "platform_logos", byIDQuery("id,image_id,url,width,height", id), &logos); err != nil {
		return nil, err
	}
	if len(logos) == 0 {
		return nil, nil
	}
	return &logos[0], nil
}

// run executes a query and decodes the JSON array response into dst.
func (c *Catalog) run(ctx context.Context, resource, query string, dst any) error {
	body, err := c.exec.Execute(ctx, resource, query)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("%s: failed to decode response: %w", resource, err)
	}
	return nil
}

func byIDQuery(fields string, id int) string {
	return fmt.Sprintf(`fields %s; where id = %d; limit 1;`, fields, id)
}

// escapeQuery escapes a string for interpolation into an Apicalypse
// query literal.
func escapeQuery(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}
