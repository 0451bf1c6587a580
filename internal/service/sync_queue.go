package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	jobMaxAttempts = 3
	jobRetryDelay  = 2 * time.Second
)

type syncJob struct {
	ID        uuid.UUID
	ProductID int64
}

// SyncQueue serializes webhook-triggered product syncs: a bounded buffer
// drained by a single worker, so a burst of product-creation events queues
// up instead of stampeding the store.
type SyncQueue struct {
	jobs    chan syncJob
	service *CollectionService
	logger  *zap.Logger
}

// NewSyncQueue creates a queue with the given buffer size.
func NewSyncQueue(svc *CollectionService, size int, logger *zap.Logger) *SyncQueue {
	if size <= 0 {
		size = 64
	}
	return &SyncQueue{
		jobs:    make(chan syncJob, size),
		service: svc,
		logger:  logger,
	}
}

// Enqueue queues a product sync. Returns the job ID and false when the
// buffer is full (callers should signal the sender to retry later).
func (q *SyncQueue) Enqueue(productID int64) (uuid.UUID, bool) {
	job := syncJob{ID: uuid.New(), ProductID: productID}
	select {
	case q.jobs <- job:
		q.logger.Info("Queued product sync",
			zap.String("job_id", job.ID.String()),
			zap.Int64("product_id", productID),
		)
		return job.ID, true
	default:
		q.logger.Warn("Sync queue full, rejecting job", zap.Int64("product_id", productID))
		return uuid.Nil, false
	}
}

// Pending reports how many jobs are waiting in the buffer.
func (q *SyncQueue) Pending() int {
	return len(q.jobs)
}

// Start runs the single worker until ctx is canceled. Call from a goroutine.
func (q *SyncQueue) Start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case job := <-q.jobs:
			q.run(ctx, job)
		}
	}
}

// run executes one job with bounded retries. A job that fails all attempts
// is logged and dropped; it does not block the queue.
func (q *SyncQueue) run(ctx context.Context, job syncJob) {
	var err error
	for attempt := 1; attempt <= jobMaxAttempts; attempt++ {
		err = q.service.SyncProduct(ctx, job.ProductID)
		if err == nil {
			return
		}
		q.logger.Warn("Product sync attempt failed",
			zap.String("job_id", job.ID.String()),
			zap.Int64("product_id", job.ProductID),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		if attempt < jobMaxAttempts {
			select {
			case <-ctx.Done():
				return
			case <-time.After(jobRetryDelay):
			}
		}
	}
	q.logger.Error("Product sync failed, dropping job",
		zap.String("job_id", job.ID.String()),
		zap.Int64("product_id", job.ProductID),
		zap.Error(err),
	)
}
