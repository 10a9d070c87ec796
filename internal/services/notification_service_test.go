package services_test

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"storefront/internal/services"
)

// fakeJobQueue records enqueued jobs. Shared by the cart, order and
// notification tests in this package.
type fakeJobQueue struct {
	mu      sync.Mutex
	err     error
	entries []queueEntry
}

type queueEntry struct {
	kind    string
	payload interface{}
}

func (q *fakeJobQueue) Enqueue(kind string, payload interface{}) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return q.err
	}
	q.entries = append(q.entries, queueEntry{kind: kind, payload: payload})
	return nil
}

func (q *fakeJobQueue) recorded() []queueEntry {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]queueEntry(nil), q.entries...)
}

func TestNotificationServiceDeliversLowStockJob(t *testing.T) {
	queue := &fakeJobQueue{}
	notifier := services.NewNotificationService(queue, "admin@ecommerce.test", 16)

	notifier.DispatchLowStock(lowStockProduct("prod-1", "Laptop"), 7)
	notifier.Close()

	entries := queue.recorded()
	assert.Len(t, entries, 1)
	assert.Equal(t, services.JobLowStock, entries[0].kind)

	payload, ok := entries[0].payload.(services.LowStockPayload)
	assert.True(t, ok)
	assert.Equal(t, "prod-1", payload.ProductID)
	assert.Equal(t, "Laptop", payload.ProductName)
	assert.Equal(t, 7, payload.CurrentStock)
	assert.Equal(t, "admin@ecommerce.test", payload.Recipient)
	assert.False(t, payload.Timestamp.IsZero())
}

func TestNotificationServiceSwallowsEnqueueFailure(t *testing.T) {
	queue := &fakeJobQueue{err: errors.New("broker down")}
	notifier := services.NewNotificationService(queue, "admin@ecommerce.test", 16)

	// Dispatch has no error return; a failing queue must not panic or block.
	notifier.DispatchLowStock(lowStockProduct("prod-1", "Laptop"), 3)
	notifier.Close()

	assert.Empty(t, queue.recorded())
}

// blockingQueue parks every Enqueue until released, to simulate a slow
// broker.
type blockingQueue struct {
	release   chan struct{}
	delivered int32
}

func (q *blockingQueue) Enqueue(kind string, payload interface{}) error {
	<-q.release
	atomic.AddInt32(&q.delivered, 1)
	return nil
}

func TestNotificationServiceNeverBlocksCaller(t *testing.T) {
	queue := &blockingQueue{release: make(chan struct{})}
	notifier := services.NewNotificationService(queue, "admin@ecommerce.test", 1)

	// With the worker parked and a buffer of one, the overflow is dropped;
	// every dispatch call still returns immediately.
	for i := 0; i < 3; i++ {
		notifier.DispatchLowStock(lowStockProduct("prod-1", "Laptop"), i)
	}

	close(queue.release)
	notifier.Close()

	delivered := atomic.LoadInt32(&queue.delivered)
	assert.GreaterOrEqual(t, delivered, int32(1))
	assert.LessOrEqual(t, delivered, int32(2))
}
