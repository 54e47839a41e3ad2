// package tasks implements catalog resolution and sync operations.
//
// The core abstraction is Resolver, which turns a platform search term
// into persisted local rows: it searches the remote catalog, selects a
// match, fetches the platform's dependent records, and writes everything
// through the merge-upsert store in dependency order. Operations emit
// progress updates via channels for non-blocking status reporting to
// CLI/UI layers.
package tasks

import (
	"context"

	"github.com/desertthunder/gamedex/internal/igdb"
	"github.com/desertthunder/gamedex/internal/models"
)

// CatalogService defines the remote catalog operations the resolver
// depends on. Implemented by [igdb.Catalog]; test doubles stand in for
// it in tests.
type CatalogService interface {
	SearchPlatforms(ctx context.Context, term string) ([]igdb.RemotePlatform, error)
	PlatformFamily(ctx context.Context, id int) (*igdb.RemoteFamily, error)
	PlatformType(ctx context.Context, id int) (*igdb.RemoteType, error)
	PlatformLogo(ctx context.Context, id int) (*igdb.RemoteLogo, error)
}

// PlatformStore defines the persistence operations the resolver writes
// through. Implemented by [repositories.PlatformRepository].
type PlatformStore interface {
	UpsertFamily(family *models.PlatformFamily) error
	UpsertType(pt *models.PlatformType) error
	UpsertLogo(logo *models.PlatformLogo) error
	UpsertPlatform(platform *models.Platform) error
	GetByRemoteID(remoteID int) (*models.Platform, error)
}

// DependentStatus records the outcome of syncing one dependent record.
type DependentStatus string

const (
	// DependentOK means the record was fetched and persisted.
	DependentOK DependentStatus = "ok"
	// DependentAbsent means the remote catalog has no such record; the
	// platform keeps a null reference.
	DependentAbsent DependentStatus = "absent"
	// DependentFailed means the fetch or write failed; the platform
	// keeps a null reference and the resolution is partial.
	DependentFailed DependentStatus = "failed"
)

// DependentOutcome pairs a dependent's status with the error that
// caused a failure, if any.
type DependentOutcome struct {
	Status DependentStatus `json:"status"`
	Error  error           `json:"-"`
}

// ResolvedPlatform is the result of a platform resolution: the local
// row as read back after the upsert, the remote record it was built
// from, and the per-dependent outcomes.
type ResolvedPlatform struct {
	Platform   *models.Platform            `json:"platform"`
	Remote     igdb.RemotePlatform         `json:"remote"`
	Dependents map[string]DependentOutcome `json:"dependents"`
}

// Partial reports whether any dependent failed to sync.
func (r *ResolvedPlatform) Partial() bool {
	for _, outcome := range r.Dependents {
		if outcome.Status == DependentFailed {
			return true
		}
	}
	return false
}

// Resolver implements the platform resolution pipeline.
// Contains dependencies on the remote catalog and the local store.
type Resolver struct {
	catalog CatalogService
	store   PlatformStore
}

// NewResolver creates a new Resolver with the provided catalog and store.
func NewResolver(catalog CatalogService, store PlatformStore) *Resolver {
	return &Resolver{
		catalog: catalog,
		store:   store,
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (r *Resolver) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
		// Sent successfully
	default:
		// Channel full or closed, skip this update
	}
}
