// Package pipeline fans read groups out to classification workers and
// funnels the results back in input order, so output is byte-identical
// across runs regardless of scheduling.
package pipeline

import (
	"context"
	"sync"

	"ontdemux/internal/classify"
)

// Config controls the classification pipeline.
type Config struct {
	Threads int // number of worker goroutines (>=1)
}

// ForEachClassification classifies every group and calls visit with the
// results in the original group order. It returns the first error
// encountered (including context cancellation).
func ForEachClassification(
	ctx context.Context,
	cfg Config,
	groups []classify.Group,
	eng *classify.Engine,
	visit func(classify.Classification) error,
) error {
	if cfg.Threads < 1 {
		cfg.Threads = 1
	}

	type job struct {
		idx int
		g   classify.Group
	}
	type result struct {
		idx int
		c   classify.Classification
	}
	jobs := make(chan job, cfg.Threads*2)
	results := make(chan result, cfg.Threads*2)

	var wg sync.WaitGroup
	wg.Add(cfg.Threads)
	for w := 0; w < cfg.Threads; w++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case j, ok := <-jobs:
					if !ok {
						return
					}
					select {
					case results <- result{idx: j.idx, c: eng.Classify(j.g)}:
					case <-ctx.Done():
						return
					}
				}
			}
		}()
	}

	// Collector: restore input order before visiting.
	var (
		cerr error
		cwg  sync.WaitGroup
	)
	cwg.Add(1)
	go func() {
		defer cwg.Done()
		pending := make(map[int]classify.Classification)
		next := 0
		for r := range results {
			pending[r.idx] = r.c
			for {
				c, ok := pending[next]
				if !ok {
					break
				}
				delete(pending, next)
				next++
				if cerr != nil {
					continue
				}
				if err := visit(c); err != nil && cerr == nil {
					cerr = err
				}
			}
		}
	}()

feed:
	for i, g := range groups {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- job{idx: i, g: g}:
		}
	}

	close(jobs)
	wg.Wait()
	close(results)
	cwg.Wait()

	if ctx.Err() != nil {
		return ctx.Err()
	}
	return cerr
}
