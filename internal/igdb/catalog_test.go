package igdb

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/desertthunder/gamedex/internal/shared"
)

// stubExecutor records the last request and returns a canned response.
type stubExecutor struct {
	resource string
	query    string
	body     []byte
	err      error
}

func (s *stubExecutor) Execute(ctx context.Context, resource, query string) ([]byte, error) {
	s.resource = resource
	s.query = query
	return s.body, s.err
}

func TestCatalog(t *testing.T) {
	t.Run("SearchPlatforms", func(t *testing.T) {
		t.Run("Decodes Results", func(t *testing.T) {
			exec := &stubExecutor{body: []byte(`[
				{"id":18,"name":"Nintendo Entertainment System","abbreviation":"NES","generation":3,"platform_family":5,"platform_logo":99},
				{"id":19,"name":"Super Nintendo"}
			]`)}
			catalog := NewCatalog(exec)

			platforms, err := catalog.SearchPlatforms(context.Background(), "Nintendo")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if exec.resource != "platforms" {
				t.Errorf("expected resource platforms, got %s", exec.resource)
			}
			if !strings.Contains(exec.query, `search "Nintendo";`) {
				t.Errorf("query missing search clause: %s", exec.query)
			}
			if len(platforms) != 2 {
				t.Fatalf("expected 2 platforms, got %d", len(platforms))
			}
			if platforms[0].Abbreviation != "NES" || platforms[0].FamilyID != 5 {
				t.Errorf("unexpected first platform %+v", platforms[0])
			}
		})

		t.Run("Empty Result Is Not An Error", func(t *testing.T) {
			exec := &stubExecutor{body: []byte(`[]`)}
			catalog := NewCatalog(exec)

			platforms, err := catalog.SearchPlatforms(context.Background(), "Not A Platform")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(platforms) != 0 {
				t.Errorf("expected empty result, got %d", len(platforms))
			}
		})

		t.Run("Escapes Quotes In Term", func(t *testing.T) {
			exec := &stubExecutor{body: []byte(`[]`)}
			catalog := NewCatalog(exec)

			if _, err := catalog.SearchPlatforms(context.Background(), `Odd "Name"`); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.Contains(exec.query, `search "Odd \"Name\"";`) {
				t.Errorf("quotes not escaped: %s", exec.query)
			}
		})

		t.Run("Rejects Empty Term", func(t *testing.T) {
			catalog := NewCatalog(&stubExecutor{})

			_, err := catalog.SearchPlatforms(context.Background(), "   ")
			if !errors.Is(err, shared.ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}
		})
	})

	t.Run("SearchGames", func(t *testing.T) {
		t.Run("Scopes To Platform", func(t *testing.T) {
			exec := &stubExecutor{body: []byte(`[{"id":1068,"name":"Super Mario Bros."}]`)}
			catalog := NewCatalog(exec)

			games, err := catalog.SearchGames(context.Background(), "Mario", 18)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if exec.resource != "games" {
				t.Errorf("expected resource games, got %s", exec.resource)
			}
			if !strings.Contains(exec.query, `where platforms = (18);`) {
				t.Errorf("query missing platform filter: %s", exec.query)
			}
			if len(games) != 1 || games[0].Name != "Super Mario Bros." {
				t.Errorf("unexpected games %+v", games)
			}
		})

		t.Run("Rejects Non-Positive Platform ID", func(t *testing.T) {
			catalog := NewCatalog(&stubExecutor{})

			_, err := catalog.SearchGames(context.Background(), "Mario", 0)
			if !errors.Is(err, shared.ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}
		})
	})

	t.Run("ListGenres Sorts By Name", func(t *testing.T) {
		exec := &stubExecutor{body: []byte(`[{"id":2,"name":"Adventure"},{"id":5,"name":"Shooter"}]`)}
		catalog := NewCatalog(exec)

		genres, err := catalog.ListGenres(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if exec.resource != "genres" {
			t.Errorf("expected resource genres, got %s", exec.resource)
		}
		if !strings.Contains(exec.query, "sort name asc;") {
			t.Errorf("query missing sort clause: %s", exec.query)
		}
		if len(genres) != 2 || genres[0].Name != "Adventure" {
			t.Errorf("unexpected genres %+v", genres)
		}
	})

	t.Run("Dependent Lookups", func(t *testing.T) {
		t.Run("Missing Record Returns Nil", func(t *testing.T) {
			exec := &stubExecutor{body: []byte(`[]`)}
			catalog := NewCatalog(exec)

			family, err := catalog.PlatformFamily(context.Background(), 404)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if family != nil {
				t.Errorf("expected nil family, got %+v", family)
			}
		})

		t.Run("Logo Fields Decoded", func(t *testing.T) {
			exec := &stubExecutor{body: []byte(`[{"id":99,"image_id":"pl99","url":"//images.igdb.com/pl99.png","width":400,"height":200}]`)}
			catalog := NewCatalog(exec)

			logo, err := catalog.PlatformLogo(context.Background(), 99)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if logo == nil || logo.ImageID != "pl99" || logo.Width != 400 {
				t.Errorf("unexpected logo %+v", logo)
			}
			if !strings.Contains(exec.query, "where id = 99;") {
				t.Errorf("query missing id filter: %s", exec.query)
			}
		})
	})

	t.Run("Passes Executor Errors Through Unchanged", func(t *testing.T) {
		execErr := fmt.Errorf("platforms: %w after 3 attempts", shared.ErrRateLimited)
		catalog := NewCatalog(&stubExecutor{err: execErr})

		_, err := catalog.SearchPlatforms(context.Background(), "Nintendo")
		if !errors.Is(err, shared.ErrRateLimited) {
			t.Errorf("expected ErrRateLimited passthrough, got %v", err)
		}
	})
}
