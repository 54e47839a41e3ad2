package tasks

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/desertthunder/gamedex/internal/igdb"
	"github.com/desertthunder/gamedex/internal/models"
	"github.com/desertthunder/gamedex/internal/shared"
)

type mockCatalog struct {
	results   map[string][]igdb.RemotePlatform
	families  map[int]*igdb.RemoteFamily
	types     map[int]*igdb.RemoteType
	logos     map[int]*igdb.RemoteLogo
	searchErr error
	familyErr error
	typeErr   error
	logoErr   error
}

func (m *mockCatalog) SearchPlatforms(ctx context.Context, term string) ([]igdb.RemotePlatform, error) {
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	return m.results[term], nil
}

func (m *mockCatalog) PlatformFamily(ctx context.Context, id int) (*igdb.RemoteFamily, error) {
	if m.familyErr != nil {
		return nil, m.familyErr
	}
	return m.families[id], nil
}

func (m *mockCatalog) PlatformType(ctx context.Context, id int) (*igdb.RemoteType, error) {
	if m.typeErr != nil {
		return nil, m.typeErr
	}
	return m.types[id], nil
}

func (m *mockCatalog) PlatformLogo(ctx context.Context, id int) (*igdb.RemoteLogo, error) {
	if m.logoErr != nil {
		return nil, m.logoErr
	}
	return m.logos[id], nil
}

// mockStore records writes in order so tests can assert dependents land
// before the platform row. Safe for concurrent workers.
type mockStore struct {
	mu                sync.Mutex
	writes            []string
	families          map[int]*models.PlatformFamily
	types             map[int]*models.PlatformType
	logos             map[int]*models.PlatformLogo
	platforms         map[int]*models.Platform
	upsertLogoErr     error
	upsertPlatformErr error
}

func newMockStore() *mockStore {
	return &mockStore{
		families:  map[int]*models.PlatformFamily{},
		types:     map[int]*models.PlatformType{},
		logos:     map[int]*models.PlatformLogo{},
		platforms: map[int]*models.Platform{},
	}
}

func (m *mockStore) UpsertFamily(family *models.PlatformFamily) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes = append(m.writes, fmt.Sprintf("family:%d", family.RemoteID))
	m.families[family.RemoteID] = family
	return nil
}

func (m *mockStore) UpsertType(pt *models.PlatformType) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes = append(m.writes, fmt.Sprintf("type:%d", pt.RemoteID))
	m.types[pt.RemoteID] = pt
	return nil
}

func (m *mockStore) UpsertLogo(logo *models.PlatformLogo) error {
	if m.upsertLogoErr != nil {
		return m.upsertLogoErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes = append(m.writes, fmt.Sprintf("logo:%d", logo.RemoteID))
	m.logos[logo.RemoteID] = logo
	return nil
}

func (m *mockStore) UpsertPlatform(platform *models.Platform) error {
	if m.upsertPlatformErr != nil {
		return m.upsertPlatformErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes = append(m.writes, fmt.Sprintf("platform:%d", platform.RemoteID))
	m.platforms[platform.RemoteID] = platform
	return nil
}

func (m *mockStore) GetByRemoteID(remoteID int) (*models.Platform, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	platform, ok := m.platforms[remoteID]
	if !ok {
		return nil, fmt.Errorf("platform not found")
	}
	return platform, nil
}

func nesCatalog() *mockCatalog {
	return &mockCatalog{
		results: map[string][]igdb.RemotePlatform{
			"NES": {
				{ID: 18, Name: "Nintendo Entertainment System", Abbreviation: "NES", Generation: 3, FamilyID: 5, TypeID: 1, LogoID: 99},
			},
		},
		families: map[int]*igdb.RemoteFamily{5: {ID: 5, Name: "Nintendo"}},
		types:    map[int]*igdb.RemoteType{1: {ID: 1, Name: "console"}},
		logos:    map[int]*igdb.RemoteLogo{99: {ID: 99, ImageID: "pl99", URL: "//images.igdb.com/pl99.png", Width: 500, Height: 500}},
	}
}

func TestResolvePlatform(t *testing.T) {
	ctx := context.Background()

	t.Run("Resolves Platform With All Dependents", func(t *testing.T) {
		store := newMockStore()
		resolver := NewResolver(nesCatalog(), store)

		result, err := resolver.ResolvePlatform(ctx, nil, "NES")
		if err != nil {
			t.Fatalf("resolution failed: %v", err)
		}

		if result.Platform.RemoteID != 18 {
			t.Errorf("unexpected remote id %d", result.Platform.RemoteID)
		}
		if result.Platform.FamilyID == nil || *result.Platform.FamilyID != 5 {
			t.Errorf("family reference not set: %v", result.Platform.FamilyID)
		}
		if result.Platform.LogoID == nil || *result.Platform.LogoID != 99 {
			t.Errorf("logo reference not set: %v", result.Platform.LogoID)
		}

		for _, name := range []string{"family", "type", "logo"} {
			if result.Dependents[name].Status != DependentOK {
				t.Errorf("dependent %s: expected ok, got %s", name, result.Dependents[name].Status)
			}
		}
	})

	t.Run("Writes Dependents Before Platform", func(t *testing.T) {
		store := newMockStore()
		resolver := NewResolver(nesCatalog(), store)

		if _, err := resolver.ResolvePlatform(ctx, nil, "NES"); err != nil {
			t.Fatalf("resolution failed: %v", err)
		}

		last := store.writes[len(store.writes)-1]
		if last != "platform:18" {
			t.Errorf("platform row must be written last, write order was %v", store.writes)
		}
	})

	t.Run("No Match Is Not Partial Data", func(t *testing.T) {
		catalog := &mockCatalog{results: map[string][]igdb.RemotePlatform{}}
		resolver := NewResolver(catalog, newMockStore())

		_, err := resolver.ResolvePlatform(ctx, nil, "Panasonic Q")
		if !errors.Is(err, shared.ErrNoMatch) {
			t.Errorf("expected ErrNoMatch, got %v", err)
		}
		if errors.Is(err, shared.ErrPartialData) {
			t.Error("no match must never surface as partial data")
		}
	})

	t.Run("Search Errors Pass Through", func(t *testing.T) {
		catalog := &mockCatalog{searchErr: fmt.Errorf("%w: status 429", shared.ErrRateLimited)}
		resolver := NewResolver(catalog, newMockStore())

		_, err := resolver.ResolvePlatform(ctx, nil, "NES")
		if !errors.Is(err, shared.ErrRateLimited) {
			t.Errorf("expected ErrRateLimited, got %v", err)
		}
	})

	t.Run("Exact Name Beats Search Order", func(t *testing.T) {
		catalog := &mockCatalog{
			results: map[string][]igdb.RemotePlatform{
				"Nintendo Entertainment System": {
					{ID: 19, Name: "Super Nintendo Entertainment System", Abbreviation: "SNES"},
					{ID: 18, Name: "Nintendo Entertainment System", Abbreviation: "NES"},
				},
			},
		}
		store := newMockStore()
		resolver := NewResolver(catalog, store)

		result, err := resolver.ResolvePlatform(ctx, nil, "Nintendo Entertainment System")
		if err != nil {
			t.Fatalf("resolution failed: %v", err)
		}
		if result.Platform.RemoteID != 18 {
			t.Errorf("expected exact name match id 18, got %d", result.Platform.RemoteID)
		}
	})

	t.Run("Abbreviation Beats Search Order", func(t *testing.T) {
		catalog := &mockCatalog{
			results: map[string][]igdb.RemotePlatform{
				"nes": {
					{ID: 19, Name: "Super Nintendo Entertainment System", Abbreviation: "SNES"},
					{ID: 18, Name: "Nintendo Entertainment System", Abbreviation: "NES"},
				},
			},
		}
		resolver := NewResolver(catalog, newMockStore())

		result, err := resolver.ResolvePlatform(ctx, nil, "nes")
		if err != nil {
			t.Fatalf("resolution failed: %v", err)
		}
		if result.Platform.RemoteID != 18 {
			t.Errorf("expected abbreviation match id 18, got %d", result.Platform.RemoteID)
		}
	})

	t.Run("Falls Back To First Result", func(t *testing.T) {
		catalog := &mockCatalog{
			results: map[string][]igdb.RemotePlatform{
				"nintendo": {
					{ID: 19, Name: "Super Nintendo Entertainment System", Abbreviation: "SNES"},
					{ID: 18, Name: "Nintendo Entertainment System", Abbreviation: "NES"},
				},
			},
		}
		resolver := NewResolver(catalog, newMockStore())

		result, err := resolver.ResolvePlatform(ctx, nil, "nintendo")
		if err != nil {
			t.Fatalf("resolution failed: %v", err)
		}
		if result.Platform.RemoteID != 19 {
			t.Errorf("expected first result id 19, got %d", result.Platform.RemoteID)
		}
	})

	t.Run("Logo Fetch Failure Is Partial", func(t *testing.T) {
		catalog := nesCatalog()
		catalog.logoErr = fmt.Errorf("%w: status 502", shared.ErrRemoteUnavailable)
		store := newMockStore()
		resolver := NewResolver(catalog, store)

		result, err := resolver.ResolvePlatform(ctx, nil, "NES")
		if !errors.Is(err, shared.ErrPartialData) {
			t.Fatalf("expected ErrPartialData, got %v", err)
		}
		if result == nil || result.Platform == nil {
			t.Fatal("partial resolution must still return the persisted platform")
		}

		if result.Platform.LogoID != nil {
			t.Errorf("failed logo must leave a null reference, got %v", result.Platform.LogoID)
		}
		if result.Platform.FamilyID == nil || *result.Platform.FamilyID != 5 {
			t.Errorf("family should still be synced: %v", result.Platform.FamilyID)
		}

		if result.Dependents["logo"].Status != DependentFailed {
			t.Errorf("expected logo failed, got %s", result.Dependents["logo"].Status)
		}
		if result.Dependents["family"].Status != DependentOK {
			t.Errorf("expected family ok, got %s", result.Dependents["family"].Status)
		}
	})

	t.Run("Logo Write Failure Is Partial", func(t *testing.T) {
		store := newMockStore()
		store.upsertLogoErr = errors.New("disk full")
		resolver := NewResolver(nesCatalog(), store)

		result, err := resolver.ResolvePlatform(ctx, nil, "NES")
		if !errors.Is(err, shared.ErrPartialData) {
			t.Fatalf("expected ErrPartialData, got %v", err)
		}
		if result.Platform.LogoID != nil {
			t.Errorf("unwritten logo must leave a null reference, got %v", result.Platform.LogoID)
		}
	})

	t.Run("Absent Dependent Is Not Partial", func(t *testing.T) {
		catalog := nesCatalog()
		delete(catalog.logos, 99)
		store := newMockStore()
		resolver := NewResolver(catalog, store)

		result, err := resolver.ResolvePlatform(ctx, nil, "NES")
		if err != nil {
			t.Fatalf("absent dependent should not be an error: %v", err)
		}
		if result.Dependents["logo"].Status != DependentAbsent {
			t.Errorf("expected logo absent, got %s", result.Dependents["logo"].Status)
		}
		if result.Platform.LogoID != nil {
			t.Errorf("absent logo must leave a null reference, got %v", result.Platform.LogoID)
		}
	})

	t.Run("Platform Without Dependent References", func(t *testing.T) {
		catalog := &mockCatalog{
			results: map[string][]igdb.RemotePlatform{
				"Arcade": {{ID: 52, Name: "Arcade"}},
			},
		}
		resolver := NewResolver(catalog, newMockStore())

		result, err := resolver.ResolvePlatform(ctx, nil, "Arcade")
		if err != nil {
			t.Fatalf("resolution failed: %v", err)
		}
		if len(result.Dependents) != 0 {
			t.Errorf("expected no dependent outcomes, got %v", result.Dependents)
		}
	})

	t.Run("Platform Write Failure Is Fatal", func(t *testing.T) {
		store := newMockStore()
		store.upsertPlatformErr = errors.New("database locked")
		resolver := NewResolver(nesCatalog(), store)

		if _, err := resolver.ResolvePlatform(ctx, nil, "NES"); err == nil {
			t.Error("expected error when platform write fails")
		}
	})

	t.Run("Reports Progress", func(t *testing.T) {
		progress := make(chan ProgressUpdate, 32)
		resolver := NewResolver(nesCatalog(), newMockStore())

		if _, err := resolver.ResolvePlatform(ctx, progress, "NES"); err != nil {
			t.Fatalf("resolution failed: %v", err)
		}
		close(progress)

		phases := map[Phase]bool{}
		for update := range progress {
			phases[update.Phase] = true
		}
		for _, phase := range []Phase{SearchCatalog, SelectMatch, FetchDependents, WritePlatform, ResolveDone} {
			if !phases[phase] {
				t.Errorf("missing progress phase %s", phase)
			}
		}
	})
}
