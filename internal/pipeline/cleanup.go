package pipeline

import (
	"context"
	"sync"
	"time"

	"folio-backend/internal/shared/metrics"
	"folio-backend/internal/shared/storage/object"
	"folio-backend/internal/shared/telemetry"
)

const cleanupTimeout = 10 * time.Second

// Cleanup deletes superseded blobs in the background. Deletion failures
// are logged and counted but never surfaced to the request path.
type Cleanup struct {
	store object.ObjectStore
	tasks chan string
	wg    sync.WaitGroup

	closeOnce sync.Once
}

// NewCleanup starts a cleanup worker with the given queue capacity.
func NewCleanup(store object.ObjectStore, buffer int) *Cleanup {
	if buffer <= 0 {
		buffer = 64
	}
	c := &Cleanup{
		store: store,
		tasks: make(chan string, buffer),
	}
	c.wg.Add(1)
	go c.run()
	return c
}

// Schedule enqueues a storage key for deletion. When the queue is full the
// key is dropped and counted as a failed cleanup.
func (c *Cleanup) Schedule(storageKey string) {
	if storageKey == "" {
		return
	}
	select {
	case c.tasks <- storageKey:
	default:
		metrics.IncBlobCleanupFailed()
		telemetry.Error("cleanup.queue_full", map[string]any{
			"storage_key": storageKey,
		})
	}
}

// Close drains pending deletions and stops the worker.
func (c *Cleanup) Close() {
	c.closeOnce.Do(func() {
		close(c.tasks)
	})
	c.wg.Wait()
}

func (c *Cleanup) run() {
	defer c.wg.Done()
	for key := range c.tasks {
		c.delete(key)
	}
}

func (c *Cleanup) delete(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), cleanupTimeout)
	defer cancel()

	err := c.store.Delete(ctx, key)
	if err == nil {
		return
	}
	// One retry covers transient store errors.
	if err = c.store.Delete(ctx, key); err != nil {
		metrics.IncBlobCleanupFailed()
		telemetry.Error("cleanup.delete_failed", map[string]any{
			"storage_key": key,
			"err":         err.Error(),
		})
	}
}
