package tasks

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/gamedex/internal/igdb"
	"github.com/desertthunder/gamedex/internal/models"
	"github.com/desertthunder/gamedex/internal/shared"
)

// ResolvePlatform resolves a search term into a locally persisted
// platform. It searches the remote catalog, selects the best match,
// syncs the match's family, type, and logo records, then writes the
// platform row referencing whichever dependents landed.
//
// Dependent rows are written before the platform row, so a concurrent
// reader never observes a reference to a row that does not exist. A
// dependent that fails to sync leaves a null reference on the platform
// and the call returns the result alongside [shared.ErrPartialData];
// a later resolution of the same platform fills the gap, since merges
// never null out populated fields.
func (r *Resolver) ResolvePlatform(ctx context.Context, progress chan<- ProgressUpdate, term string) (*ResolvedPlatform, error) {
	r.sendProgress(progress, searchCatalogUpdate(term))

	candidates, err := r.catalog.SearchPlatforms(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("platform search failed: %w", err)
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: no platform matches %q", shared.ErrNoMatch, term)
	}

	remote := selectMatch(term, candidates)
	r.sendProgress(progress, selectMatchUpdate(remote, len(candidates)))

	result := &ResolvedPlatform{
		Remote:     remote,
		Dependents: map[string]DependentOutcome{},
	}

	platform := &models.Platform{
		RemoteID: remote.ID,
		Name:     remote.Name,
	}
	if remote.Abbreviation != "" {
		platform.Abbreviation = &remote.Abbreviation
	}
	if remote.Generation > 0 {
		platform.Generation = &remote.Generation
	}

	// Dependents first. A reference is only set on the platform row
	// when its dependent row was actually written.
	deps := []struct {
		name string
		id   int
		sync func(context.Context, int) (DependentStatus, error)
		ref  **int
	}{
		{"family", remote.FamilyID, r.syncFamily, &platform.FamilyID},
		{"type", remote.TypeID, r.syncType, &platform.TypeID},
		{"logo", remote.LogoID, r.syncLogo, &platform.LogoID},
	}

	for i, dep := range deps {
		if dep.id <= 0 {
			continue
		}

		r.sendProgress(progress, fetchDependentUpdate(dep.name, i+1, len(deps)))

		status, err := dep.sync(ctx, dep.id)
		result.Dependents[dep.name] = DependentOutcome{Status: status, Error: err}
		if status == DependentOK {
			id := dep.id
			*dep.ref = &id
		}
	}

	r.sendProgress(progress, writePlatformUpdate(remote))

	if err := r.store.UpsertPlatform(platform); err != nil {
		return nil, fmt.Errorf("failed to persist platform %d: %w", remote.ID, err)
	}

	persisted, err := r.store.GetByRemoteID(remote.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to read back platform %d: %w", remote.ID, err)
	}
	result.Platform = persisted

	r.sendProgress(progress, resolveDoneUpdate(persisted, result.Partial()))

	if result.Partial() {
		return result, fmt.Errorf("%w: platform %d synced with missing dependents", shared.ErrPartialData, remote.ID)
	}
	return result, nil
}

// selectMatch picks the best candidate for a term: an exact
// (case- and whitespace-insensitive) name match wins, then an
// abbreviation match, then the catalog's own first result.
func selectMatch(term string, candidates []igdb.RemotePlatform) igdb.RemotePlatform {
	normalized := shared.NormalizeName(term)

	for _, c := range candidates {
		if shared.NormalizeName(c.Name) == normalized {
			return c
		}
	}
	for _, c := range candidates {
		if c.Abbreviation != "" && strings.EqualFold(c.Abbreviation, strings.TrimSpace(term)) {
			return c
		}
	}
	return candidates[0]
}

// syncFamily fetches and persists a platform family record.
func (r *Resolver) syncFamily(ctx context.Context, id int) (DependentStatus, error) {
	remote, err := r.catalog.PlatformFamily(ctx, id)
	if err != nil {
		return DependentFailed, fmt.Errorf("failed to fetch family %d: %w", id, err)
	}
	if remote == nil {
		return DependentAbsent, nil
	}

	family := &models.PlatformFamily{RemoteID: remote.ID}
	if remote.Name != "" {
		family.Name = &remote.Name
	}
	if err := r.store.UpsertFamily(family); err != nil {
		return DependentFailed, fmt.Errorf("failed to persist family %d: %w", id, err)
	}
	return DependentOK, nil
}

// syncType fetches and persists a platform type record.
func (r *Resolver) syncType(ctx context.Context, id int) (DependentStatus, error) {
	remote, err := r.catalog.PlatformType(ctx, id)
	if err != nil {
		return DependentFailed, fmt.Errorf("failed to fetch type %d: %w", id, err)
	}
	if remote == nil {
		return DependentAbsent, nil
	}

	pt := &models.PlatformType{RemoteID: remote.ID}
	if remote.Name != "" {
		pt.Name = &remote.Name
	}
	if err := r.store.UpsertType(pt); err != nil {
		return DependentFailed, fmt.Errorf("failed to persist type %d: %w", id, err)
	}
	return DependentOK, nil
}

// syncLogo fetches and persists a platform logo record.
func (r *Resolver) syncLogo(ctx context.Context, id int) (DependentStatus, error) {
	remote, err := r.catalog.PlatformLogo(ctx, id)
	if err != nil {
		return DependentFailed, fmt.Errorf("failed to fetch logo %d: %w", id, err)
	}
	if remote == nil {
		return DependentAbsent, nil
	}

	logo := &models.PlatformLogo{RemoteID: remote.ID}
	if remote.ImageID != "" {
		logo.ImageID = &remote.ImageID
	}
	if remote.URL != "" {
		logo.URL = &remote.URL
	}
	if remote.Width > 0 {
		logo.Width = &remote.Width
	}
	if remote.Height > 0 {
		logo.Height = &remote.Height
	}
	if err := r.store.UpsertLogo(logo); err != nil {
		return DependentFailed, fmt.Errorf("failed to persist logo %d: %w", id, err)
	}
	return DependentOK, nil
}
