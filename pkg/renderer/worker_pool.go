package renderer

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// TileTask represents a tile rendering task for the worker pool
type TileTask struct {
	Tile   *Tile
	TaskID int    // For deterministic ordering
	Frame  *Frame // Shared frame to write to
}

// TileResult contains the result from rendering a tile
type TileResult struct {
	TaskID   int
	WorkerID int
	Pixels   int
}

// WorkerPool manages parallel tile rendering
type WorkerPool struct {
	taskQueue   chan TileTask
	resultQueue chan TileResult
	workers     []*Worker
	numWorkers  int
	group       *errgroup.Group
	ctx         context.Context
}

// Worker handles individual tile rendering tasks
type Worker struct {
	ID       int
	renderer *TileRenderer
	pool     *WorkerPool
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// Both queues hold maxTasks entries so submitting and reporting never block.
func NewWorkerPool(ctx context.Context, renderer *TileRenderer, numWorkers, maxTasks int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = 1
	}

	group, groupCtx := errgroup.WithContext(ctx)
	wp := &WorkerPool{
		taskQueue:   make(chan TileTask, maxTasks),
		resultQueue: make(chan TileResult, maxTasks),
		numWorkers:  numWorkers,
		group:       group,
		ctx:         groupCtx,
	}

	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{ID: i, renderer: renderer, pool: wp})
	}

	return wp
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for _, worker := range wp.workers {
		wp.group.Go(worker.run)
	}
}

// Stop closes the task queue, waits for workers to drain it and closes the result queue.
// It returns the first worker error, if any.
func (wp *WorkerPool) Stop() error {
	close(wp.taskQueue)
	err := wp.group.Wait()
	close(wp.resultQueue)
	return err
}

// SubmitTask submits a tile task to the worker pool
func (wp *WorkerPool) SubmitTask(task TileTask) {
	wp.taskQueue <- task
}

// Results returns the channel of completed tiles; it is closed by Stop
func (wp *WorkerPool) Results() <-chan TileResult {
	return wp.resultQueue
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (w *Worker) run() error {
	for task := range w.pool.taskQueue {
		if err := w.pool.ctx.Err(); err != nil {
			return err
		}

		w.renderer.RenderTileBounds(task.Tile.Bounds, task.Frame)

		w.pool.resultQueue <- TileResult{
			TaskID:   task.TaskID,
			WorkerID: w.ID,
			Pixels:   task.Tile.Bounds.Dx() * task.Tile.Bounds.Dy(),
		}
	}
	return nil
}
