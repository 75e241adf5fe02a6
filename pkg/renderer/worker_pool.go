package renderer

import (
	"runtime"
	"sync"
)

// RowRenderer renders every pixel of one image row.
// Implementations must be safe to call concurrently for different rows.
type RowRenderer interface {
	RenderRow(row int) (RowStats, error)
}

// RowTask represents a row rendering task for the worker pool
type RowTask struct {
	Row    int
	TaskID int // For deterministic ordering
}

// RowResult contains the result from rendering a row
type RowResult struct {
	TaskID int
	Row    int
	Stats  RowStats
	Error  error
}

// WorkerPool manages parallel row rendering
type WorkerPool struct {
	taskQueue   chan RowTask
	resultQueue chan RowResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
}

// Worker handles individual row rendering tasks
type Worker struct {
	ID          int
	renderer    RowRenderer
	taskQueue   chan RowTask
	resultQueue chan RowResult
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// maxTasks sizes the queues so submitting never blocks.
func NewWorkerPool(rr RowRenderer, maxTasks, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if maxTasks < 1 {
		maxTasks = 1
	}

	wp := &WorkerPool{
		taskQueue:   make(chan RowTask, maxTasks),
		resultQueue: make(chan RowResult, maxTasks),
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{
			ID:          i,
			renderer:    rr,
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		})
	}

	return wp
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(&wp.wg)
	}
}

// Stop gracefully shuts down all workers
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue) // No more tasks
	wp.wg.Wait()        // Wait for workers to finish
	close(wp.resultQueue)
}

// SubmitTask submits a row task to the worker pool
func (wp *WorkerPool) SubmitTask(task RowTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed row result
func (wp *WorkerPool) GetResult() (RowResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (w *Worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		stats, err := w.renderer.RenderRow(task.Row)
		w.resultQueue <- RowResult{
			TaskID: task.TaskID,
			Row:    task.Row,
			Stats:  stats,
			Error:  err,
		}
	}
}
