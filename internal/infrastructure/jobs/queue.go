package jobs

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Queue errors
var (
	ErrQueueNotRunning = errors.New("job queue is not running")
	ErrQueueFull       = errors.New("job queue is full")
)

// Job is a unit of background work, typically an outgoing email or a
// price-list import run.
type Job struct {
	ID         uuid.UUID
	Name       string
	Run        func(ctx context.Context) error
	RetryCount int
	MaxRetries int
}

// NewJob creates a named background job
func NewJob(name string, run func(ctx context.Context) error) *Job {
	return &Job{
		ID:   uuid.New(),
		Name: name,
		Run:  run,
	}
}

// Enqueuer submits jobs for asynchronous execution
type Enqueuer interface {
	Enqueue(job *Job) error
}

// QueueConfig holds worker pool configuration
type QueueConfig struct {
	Workers    int
	QueueSize  int
	JobTimeout time.Duration
	RetryDelay time.Duration
}

// DefaultQueueConfig returns defaults suitable for a single instance
func DefaultQueueConfig() QueueConfig {
	return QueueConfig{
		Workers:    4,
		QueueSize:  256,
		JobTimeout: time.Minute,
		RetryDelay: 10 * time.Second,
	}
}

// Queue is a bounded in-process job queue backed by a worker pool
type Queue struct {
	config QueueConfig
	logger *zap.Logger

	// jobs is never closed; shutdown is signaled through done so that
	// concurrent Enqueue calls can never send on a closed channel.
	jobs      chan *Job
	done      chan struct{}
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// NewQueue creates a new job queue
func NewQueue(config QueueConfig, logger *zap.Logger) *Queue {
	if config.Workers <= 0 {
		config.Workers = DefaultQueueConfig().Workers
	}
	if config.QueueSize <= 0 {
		config.QueueSize = DefaultQueueConfig().QueueSize
	}
	if config.JobTimeout <= 0 {
		config.JobTimeout = DefaultQueueConfig().JobTimeout
	}
	return &Queue{
		config: config,
		logger: logger,
		jobs:   make(chan *Job, config.QueueSize),
	}
}

// Start launches the worker pool
func (q *Queue) Start(ctx context.Context) error {
	q.mu.Lock()
	if q.isRunning {
		q.mu.Unlock()
		return nil
	}
	q.isRunning = true
	q.done = make(chan struct{})
	done := q.done
	q.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	q.cancel = cancel

	for i := 0; i < q.config.Workers; i++ {
		q.wg.Add(1)
		go q.worker(ctx, done, i)
	}

	q.logger.Info("job queue started",
		zap.Int("workers", q.config.Workers),
		zap.Int("queue_size", q.config.QueueSize),
	)

	return nil
}

// Stop drains the queue and stops the workers. The context bounds how long
// the drain may take.
func (q *Queue) Stop(ctx context.Context) error {
	q.mu.Lock()
	if !q.isRunning {
		q.mu.Unlock()
		return nil
	}
	q.isRunning = false
	close(q.done)
	q.mu.Unlock()

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		if q.cancel != nil {
			q.cancel()
		}
		q.logger.Info("job queue stopped gracefully")
		return nil
	case <-ctx.Done():
		if q.cancel != nil {
			q.cancel()
		}
		q.logger.Warn("job queue stop timed out")
		return ctx.Err()
	}
}

// Enqueue submits a job for execution. Returns ErrQueueFull when the
// bounded queue has no room.
func (q *Queue) Enqueue(job *Job) error {
	q.mu.Lock()
	if !q.isRunning {
		q.mu.Unlock()
		return ErrQueueNotRunning
	}
	q.mu.Unlock()

	select {
	case q.jobs <- job:
		q.logger.Debug("job enqueued",
			zap.String("job_id", job.ID.String()),
			zap.String("job", job.Name),
		)
		return nil
	default:
		return ErrQueueFull
	}
}

func (q *Queue) worker(ctx context.Context, done <-chan struct{}, workerID int) {
	defer q.wg.Done()

	for {
		select {
		case <-done:
			q.drain(ctx, workerID)
			return
		case job := <-q.jobs:
			q.processJob(ctx, job, workerID)
		}
	}
}

// drain runs the jobs still buffered at shutdown, then returns
func (q *Queue) drain(ctx context.Context, workerID int) {
	for {
		select {
		case job := <-q.jobs:
			q.processJob(ctx, job, workerID)
		default:
			return
		}
	}
}

func (q *Queue) processJob(ctx context.Context, job *Job, workerID int) {
	jobCtx, cancel := context.WithTimeout(ctx, q.config.JobTimeout)
	defer cancel()

	err := job.Run(jobCtx)
	if err == nil {
		q.logger.Debug("job completed",
			zap.Int("worker_id", workerID),
			zap.String("job_id", job.ID.String()),
			zap.String("job", job.Name),
		)
		return
	}

	q.logger.Error("job failed",
		zap.Int("worker_id", workerID),
		zap.String("job_id", job.ID.String()),
		zap.String("job", job.Name),
		zap.Int("retry_count", job.RetryCount),
		zap.Error(err),
	)

	if job.RetryCount < job.MaxRetries {
		q.mu.Lock()
		running := q.isRunning
		q.mu.Unlock()
		if !running {
			// Queue is draining; drop instead of re-queueing.
			return
		}
		job.RetryCount++
		if q.config.RetryDelay > 0 {
			select {
			case <-time.After(q.config.RetryDelay):
			case <-ctx.Done():
				return
			}
		}
		select {
		case q.jobs <- job:
		default:
			q.logger.Warn("failed to re-queue job for retry",
				zap.String("job_id", job.ID.String()),
				zap.String("job", job.Name),
			)
		}
	}
}

var _ Enqueuer = (*Queue)(nil)
