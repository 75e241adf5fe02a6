package renderer

import (
	"fmt"
	"runtime"
	"time"
)

// RowError reports the first row that failed to render
type RowError struct {
	Row int
	Err error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// ResolveWorkers returns the worker count used for an image of the given height
func ResolveWorkers(numWorkers, height int) int {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return max(1, min(numWorkers, height))
}

// RenderRows renders rows [0, height) with rr.
//
// With a single worker rows run in order on the calling goroutine. Otherwise
// every row is handed to the worker pool. When rows fail, the error of the
// lowest failing row is returned so the outcome does not depend on scheduling.
func RenderRows(rr RowRenderer, width, height, numWorkers int) (RenderStats, error) {
	start := time.Now()
	numWorkers = ResolveWorkers(numWorkers, height)

	stats := RenderStats{
		Width:      width,
		Height:     height,
		NumWorkers: numWorkers,
	}

	var totals RowStats
	var firstErr *RowError

	if numWorkers == 1 {
		for row := 0; row < height; row++ {
			rowStats, err := rr.RenderRow(row)
			if err != nil {
				firstErr = &RowError{Row: row, Err: err}
				break
			}
			totals.Add(rowStats)
		}
	} else {
		pool := NewWorkerPool(rr, height, numWorkers)
		pool.Start()
		for row := 0; row < height; row++ {
			pool.SubmitTask(RowTask{Row: row, TaskID: row})
		}

		for i := 0; i < height; i++ {
			result, ok := pool.GetResult()
			if !ok {
				break
			}
			if result.Error != nil {
				if firstErr == nil || result.Row < firstErr.Row {
					firstErr = &RowError{Row: result.Row, Err: result.Error}
				}
				continue
			}
			totals.Add(result.Stats)
		}
		pool.Stop()
	}

	stats.TotalPixels = totals.Pixels
	stats.WrittenPixels = totals.WrittenPixels
	stats.PixelWrites = totals.PixelWrites
	stats.Duration = time.Since(start)

	if firstErr != nil {
		return stats, firstErr
	}
	return stats, nil
}
