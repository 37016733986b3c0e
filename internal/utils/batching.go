package utils

import (
	"log/slog"
	"sync"
	"time"
)

const (
	BATCH_SIZE    = 25
	BATCH_TIMEOUT = time.Second * 5
)

// BatchBuffer collects items until the caller drains them.
type BatchBuffer[T any] struct {
	buffer     []T
	limit      int
	bufferLock sync.Mutex
}

func NewBatchBuffer[T any](limit int) *BatchBuffer[T] {
	if limit <= 0 {
		limit = BATCH_SIZE
	}
	return &BatchBuffer[T]{
		buffer: make([]T, 0, limit),
		limit:  limit,
	}
}

// Add appends item and reports whether the buffer reached its limit.
func (b *BatchBuffer[T]) Add(item T) bool {
	b.bufferLock.Lock()
	defer b.bufferLock.Unlock()

	b.buffer = append(b.buffer, item)
	return len(b.buffer) >= b.limit
}

func (b *BatchBuffer[T]) GetAndClear() []T {
	b.bufferLock.Lock()
	defer b.bufferLock.Unlock()

	if len(b.buffer) == 0 {
		return nil
	}

	batch := b.buffer
	b.buffer = make([]T, 0, b.limit)
	return batch
}

func (b *BatchBuffer[T]) Size() int {
	b.bufferLock.Lock()
	defer b.bufferLock.Unlock()
	return len(b.buffer)
}

func LogBatchProcessing(batchType string, size int) {
	slog.Info("[BatchBuffer] Processing batch",
		slog.String("type", batchType),
		slog.Int("batch_size", size))
}
