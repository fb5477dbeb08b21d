// Package pipeline provides the concurrent batch driver around the pure
// per-title extraction.Extract function: a fixed-size worker pool fans out
// over an input slice of titles and fans back in to an output slice,
// indexed so output order matches input order even though completion
// order does not (§5: "output order is allowed to diverge from input
// order").
package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/titlex/engine/internal/extraction"
	"github.com/titlex/engine/internal/patterns"
)

// Pool runs extraction.Extract over many titles concurrently against one
// shared, immutable pattern library.
type Pool struct {
	maxWorkers int
	timeout    time.Duration
}

// NewPool creates a batch pool. maxWorkers defaults to 5 and timeout to
// 30s when given non-positive values, matching the teacher's
// BatchProcessor defaults.
func NewPool(maxWorkers int, timeout time.Duration) *Pool {
	if maxWorkers <= 0 {
		maxWorkers = 5
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Pool{maxWorkers: maxWorkers, timeout: timeout}
}

// Run extracts every title in titles concurrently, returning results in
// the same order as the input. It never returns a partial result slice on
// timeout — unfinished slots are filled with a zero-confidence result
// carrying a diagnostic note, consistent with §7's "every title produces a
// result" rule.
func (p *Pool) Run(ctx context.Context, titles []string, library patterns.Library, cfg extraction.Config) ([]*extraction.Result, error) {
	if len(titles) == 0 {
		return nil, nil
	}

	runCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	type workItem struct {
		index int
		title string
	}

	workChan := make(chan workItem, len(titles))
	results := make([]*extraction.Result, len(titles))

	for i, t := range titles {
		workChan <- workItem{index: i, title: t}
	}
	close(workChan)

	var wg sync.WaitGroup
	workers := p.maxWorkers
	if workers > len(titles) {
		workers = len(titles)
	}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range workChan {
				results[item.index] = extraction.Extract(item.title, library, cfg)
			}
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return results, nil
	case <-runCtx.Done():
		fillTimeouts(results, titles)
		return results, fmt.Errorf("batch extraction timeout after %v", p.timeout)
	}
}

func fillTimeouts(results []*extraction.Result, titles []string) {
	for i, r := range results {
		if r == nil {
			results[i] = &extraction.Result{
				OriginalTitle: titles[i],
				MarketTermType: extraction.MarketTermStandard,
				DateStatus:     extraction.DateStatusDatesMissed,
				Notes:          "batch timeout before this title was processed",
			}
		}
	}
}
