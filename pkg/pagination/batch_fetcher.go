package pagination

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// BatchConfig holds batch fetcher configuration
type BatchConfig struct {
	// MaxConcurrency is the maximum number of sessions running in parallel.
	// Each session still issues its own calls one at a time.
	MaxConcurrency int
	// Buffer size for the request queue
	BufferSize int
}

// DefaultBatchConfig returns a conservative batch configuration
func DefaultBatchConfig() BatchConfig {
	return BatchConfig{
		MaxConcurrency: 4,
		BufferSize:     64,
	}
}

// Request names one pagination session of a batch
type Request struct {
	Operation string
	Args      Args
	Options   []SessionOption
}

// BatchResult is the outcome of one session of a batch
type BatchResult struct {
	Index   int
	Request Request
	// Pages holds every page fetched, including those before a failure
	Pages []*Page
	Err   error
}

// BatchFetcher runs independent pagination sessions on a worker pool
type BatchFetcher struct {
	paginator *Paginator
	config    BatchConfig
}

// NewBatchFetcher creates a new batch fetcher
func NewBatchFetcher(paginator *Paginator, config BatchConfig) *BatchFetcher {
	if config.MaxConcurrency <= 0 {
		config.MaxConcurrency = 4
	}
	if config.BufferSize <= 0 {
		config.BufferSize = 64
	}

	return &BatchFetcher{
		paginator: paginator,
		config:    config,
	}
}

// FetchAll paginates every request to completion and returns one result per
// request, in request order. Sessions share no state; a failing session
// does not stop the others. The returned error joins the errors of all
// failed sessions.
func (bf *BatchFetcher) FetchAll(ctx context.Context, requests []Request) ([]BatchResult, error) {
	start := time.Now()
	results := make([]BatchResult, len(requests))
	if len(requests) == 0 {
		return results, nil
	}

	log.Info().
		Int("sessions", len(requests)).
		Int("workers", bf.config.MaxConcurrency).
		Msg("Starting batch pagination")

	queue := make(chan int, bf.config.BufferSize)
	go func() {
		defer close(queue)
		for i := range requests {
			select {
			case queue <- i:
			case <-ctx.Done():
				return
			}
		}
	}()

	workers := min(bf.config.MaxConcurrency, len(requests))
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go bf.worker(ctx, requests, queue, results, &wg, w)
	}
	wg.Wait()

	var errs []error
	for i := range results {
		results[i].Index = i
		results[i].Request = requests[i]
		if results[i].Err == nil && results[i].Pages == nil && ctx.Err() != nil {
			// never dequeued
			results[i].Err = &Error{
				Kind:      KindCancelled,
				Operation: requests[i].Operation,
				Err:       fmt.Errorf("%w: %w", ErrCancelled, ctx.Err()),
			}
		}
		if results[i].Err != nil {
			errs = append(errs, results[i].Err)
		}
	}

	log.Info().
		Int("sessions", len(requests)).
		Int("failed", len(errs)).
		Dur("duration", time.Since(start)).
		Msg("Batch pagination complete")

	if len(errs) > 0 {
		return results, fmt.Errorf("%d of %d sessions failed: %w", len(errs), len(requests), errors.Join(errs...))
	}
	return results, nil
}

// worker runs sessions from the queue. Each result slot is written by
// exactly one worker.
func (bf *BatchFetcher) worker(ctx context.Context, requests []Request, queue <-chan int, results []BatchResult, wg *sync.WaitGroup, workerID int) {
	defer wg.Done()
	processed := 0

	for i := range queue {
		req := requests[i]
		pages, err := bf.paginator.Collect(ctx, req.Operation, req.Args, req.Options...)
		results[i].Pages = pages
		results[i].Err = err
		processed++

		if err != nil {
			log.Warn().
				Err(err).
				Int("worker_id", workerID).
				Str("operation", req.Operation).
				Int("pages", len(pages)).
				Msg("Session failed")
		}
	}

	log.Debug().
		Int("worker_id", workerID).
		Int("sessions_processed", processed).
		Msg("Worker completed")
}
