package tasks

import (
	"fmt"

	"github.com/desertthunder/gamedex/internal/igdb"
	"github.com/desertthunder/gamedex/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	SearchCatalog Phase = iota
	SelectMatch
	FetchDependents
	WritePlatform
	ResolveDone
	SyncCandidates
)

func (p Phase) String() string {
	switch p {
	case SearchCatalog:
		return "search_catalog"
	case SelectMatch:
		return "select_match"
	case FetchDependents:
		return "fetch_dependents"
	case WritePlatform:
		return "write_platform"
	case ResolveDone:
		return "resolve_done"
	case SyncCandidates:
		return "sync_candidates"
	default:
		return ""
	}
}

func searchCatalogUpdate(term string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SearchCatalog,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Searching catalog for %q...", term),
	}
}

func selectMatchUpdate(remote igdb.RemotePlatform, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SelectMatch,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Matched %s (id %d) from %d candidates", remote.Name, remote.ID, total),
		Data:    remote,
	}
}

func fetchDependentUpdate(name string, step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchDependents,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Syncing platform %s...", step, total, name),
	}
}

func writePlatformUpdate(remote igdb.RemotePlatform) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WritePlatform,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Writing %s locally...", remote.Name),
	}
}

func resolveDoneUpdate(platform *models.Platform, partial bool) ProgressUpdate {
	msg := fmt.Sprintf("Resolved %s (id %d)", platform.Name, platform.RemoteID)
	if partial {
		msg += " with missing dependents"
	}
	return ProgressUpdate{
		Phase:   ResolveDone,
		Step:    1,
		Total:   1,
		Message: msg,
		Data:    platform,
	}
}

func syncCandidateUpdate(step, total int, term string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SyncCandidates,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Resolving %q...", step, total, term),
	}
}

func syncCompletedUpdate(step, total int, term string, err error) ProgressUpdate {
	if err != nil {
		return ProgressUpdate{
			Phase:   SyncCandidates,
			Step:    step,
			Total:   total,
			Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, term, err),
		}
	}
	return ProgressUpdate{
		Phase:   SyncCandidates,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s", step, total, term),
	}
}
