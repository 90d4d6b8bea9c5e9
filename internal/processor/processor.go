// Package processor runs per-file extraction across a worker pool and folds
// the partial aggregates into the run-wide totals.
package processor

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime"
	"sync"

	"fwdash/core"
	"fwdash/internal/logger"
	"fwdash/parsers"
)

// FileError records a file that could not be processed. The run continues
// past such files; the failures surface in the completion summary instead of
// aborting the batch.
type FileError struct {
	Path string
	Err  error
}

func (fe FileError) Error() string {
	return fmt.Sprintf("%s: %v", fe.Path, fe.Err)
}

// MarshalJSON renders the failure for the JSON status block.
func (fe FileError) MarshalJSON() ([]byte, error) {
	reason := ""
	if fe.Err != nil {
		reason = fe.Err.Error()
	}
	return json.Marshal(struct {
		Path  string `json:"path"`
		Error string `json:"error"`
	}{fe.Path, reason})
}

// failedFiles is a thread-safe collector for per-file failures.
type failedFiles struct {
	mu    sync.Mutex
	files []FileError
}

func (ff *failedFiles) add(path string, err error) {
	ff.mu.Lock()
	defer ff.mu.Unlock()
	ff.files = append(ff.files, FileError{Path: path, Err: err})
}

func (ff *failedFiles) list() []FileError {
	ff.mu.Lock()
	defer ff.mu.Unlock()
	return ff.files
}

// Processor extracts aggregates from dump files concurrently. Extraction is
// embarrassingly parallel; partials are folded by a single collector, and the
// fold is commutative, so the result is independent of both worker count and
// completion order.
type Processor struct {
	parser     *parsers.FwdumpParser
	numWorkers int
}

// NewProcessor creates a processor around the given parser. numWorkers <= 0
// selects one worker per CPU core.
func NewProcessor(parser *parsers.FwdumpParser, numWorkers int) *Processor {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &Processor{
		parser:     parser,
		numWorkers: numWorkers,
	}
}

// Run processes every file and returns the folded global aggregate together
// with the list of files that failed. The global aggregate starts with the
// seeded priority labels, so an empty file list still yields a complete
// priority axis. Run only errors on context cancellation.
func (p *Processor) Run(ctx context.Context, files []string) (*core.AggregatedData, []FileError, error) {
	global := core.NewGlobalAggregates()
	failed := &failedFiles{}

	filesChan := make(chan string)
	partials := make(chan *core.AggregatedData)

	workerCtx, cancelWorkers := context.WithCancel(ctx)
	defer cancelWorkers()

	var wg sync.WaitGroup
	for i := 0; i < p.numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-workerCtx.Done():
					return
				case filePath, ok := <-filesChan:
					if !ok {
						return
					}

					logger.Info("Processing file: %s", filePath)

					partial, err := p.parser.Parse(filePath)
					if err != nil {
						logger.Error("Failed to process %s: %v", filePath, err)
						failed.add(filePath, err)
						continue
					}

					select {
					case partials <- partial:
					case <-workerCtx.Done():
						return
					}
				}
			}
		}()
	}

	// Feed the pool, then close the partials channel once every worker has
	// drained out.
	go func() {
		defer close(filesChan)
		for _, filePath := range files {
			select {
			case filesChan <- filePath:
			case <-workerCtx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(partials)
	}()

	// Sequential fold. The global aggregate is owned exclusively by this
	// loop; no locking is needed.
	for partial := range partials {
		global.Merge(partial)
	}

	if ctx.Err() != nil {
		return nil, nil, ctx.Err()
	}

	return global, failed.list(), nil
}
