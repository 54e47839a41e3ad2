package tasks

import (
	"context"
	"errors"
	"sync"

	"github.com/desertthunder/gamedex/internal/models"
	"github.com/desertthunder/gamedex/internal/shared"
	"golang.org/x/time/rate"
)

// SyncOpts contains configuration for bulk platform syncs.
type SyncOpts struct {
	NumWorkers int     // Concurrent workers (default: 4)
	RateLimit  float64 // Resolutions started per second (default: 4)
}

// CandidateResult is the outcome of resolving one search term.
type CandidateResult struct {
	Term     string           `json:"term"`
	Platform *models.Platform `json:"platform,omitempty"`
	Partial  bool             `json:"partial,omitempty"`
	Error    error            `json:"-"`
}

// SyncResult summarizes a bulk platform sync.
type SyncResult struct {
	Total    int               `json:"total"`
	Resolved int               `json:"resolved"`
	Partial  int               `json:"partial"`
	Failed   int               `json:"failed"`
	Results  []CandidateResult `json:"results"`
}

type candidateJob struct {
	index int
	term  string
}

// SyncPlatforms resolves multiple search terms concurrently with rate
// limiting and progress tracking.
//
// This method implements a worker pool pattern over [Resolver.ResolvePlatform].
// Terms that resolve with missing dependents count as partial; terms
// with no catalog match or a transport failure count as failed. One
// term's failure never aborts the rest of the batch.
func (r *Resolver) SyncPlatforms(ctx context.Context, progress chan<- ProgressUpdate, terms []string, opts SyncOpts) (*SyncResult, error) {
	if len(terms) == 0 {
		return nil, errors.New("no search terms to sync")
	}

	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 4
	}
	if opts.NumWorkers > 8 {
		opts.NumWorkers = 8
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 4.0
	}

	result := &SyncResult{
		Total:   len(terms),
		Results: make([]CandidateResult, len(terms)),
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	jobs := make(chan candidateJob, len(terms))
	var wg sync.WaitGroup

	var done int
	var doneMu sync.Mutex

	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				select {
				case <-ctx.Done():
					result.Results[job.index] = CandidateResult{Term: job.term, Error: ctx.Err()}
					continue
				default:
				}

				if err := limiter.Wait(ctx); err != nil {
					result.Results[job.index] = CandidateResult{Term: job.term, Error: err}
					continue
				}

				res := r.resolveCandidate(ctx, job.term)
				result.Results[job.index] = res

				doneMu.Lock()
				done++
				step := done
				doneMu.Unlock()
				r.sendProgress(progress, syncCompletedUpdate(step, len(terms), job.term, res.Error))
			}
		}()
	}

	for i, term := range terms {
		r.sendProgress(progress, syncCandidateUpdate(i+1, len(terms), term))
		jobs <- candidateJob{index: i, term: term}
	}
	close(jobs)

	wg.Wait()

	for _, res := range result.Results {
		switch {
		case res.Partial:
			result.Partial++
		case res.Error != nil:
			result.Failed++
		default:
			result.Resolved++
		}
	}

	return result, nil
}

// resolveCandidate resolves one term, folding partial success into the
// candidate result rather than an error.
func (r *Resolver) resolveCandidate(ctx context.Context, term string) CandidateResult {
	res := CandidateResult{Term: term}

	resolved, err := r.ResolvePlatform(ctx, nil, term)
	if err != nil && !errors.Is(err, shared.ErrPartialData) {
		res.Error = err
		return res
	}

	res.Platform = resolved.Platform
	res.Partial = errors.Is(err, shared.ErrPartialData)
	return res
}
