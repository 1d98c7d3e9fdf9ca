package tools

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type batchRecorder struct {
	mu      sync.Mutex
	batches [][]interface{}
}

func (r *batchRecorder) handle(batch []interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.batches = append(r.batches, batch)
	return nil
}

func (r *batchRecorder) total() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, b := range r.batches {
		n += len(b)
	}
	return n
}

func TestBatchProcessorFlushesOnMaxBatch(t *testing.T) {
	recorder := &batchRecorder{}
	p := NewBatchProcessor("test", &BatchConfig{
		MaxBatch:                  2,
		FlushIntervalMilliSeconds: 60000,
		QueueSize:                 16,
	}, recorder.handle)
	p.Start()
	defer p.Stop()

	require.True(t, p.Submit("a"))
	require.True(t, p.Submit("b"))

	assert.Eventually(t, func() bool { return recorder.total() == 2 }, 2*time.Second, 10*time.Millisecond)
}

func TestBatchProcessorStopFlushesRemainder(t *testing.T) {
	recorder := &batchRecorder{}
	p := NewBatchProcessor("test", &BatchConfig{
		MaxBatch:                  100,
		FlushIntervalMilliSeconds: 60000,
		QueueSize:                 16,
	}, recorder.handle)
	p.Start()

	require.True(t, p.Submit("a"))
	require.True(t, p.Submit("b"))
	require.True(t, p.Submit("c"))
	p.Stop()

	assert.Equal(t, 3, recorder.total())
}

func TestBatchProcessorSubmitWhenStopped(t *testing.T) {
	p := NewBatchProcessor("test", nil, func(batch []interface{}) error { return nil })
	assert.False(t, p.Submit("a"))

	p.Start()
	p.Stop()
	assert.False(t, p.Submit("b"))
}

func TestBatchProcessorStartIsIdempotent(t *testing.T) {
	recorder := &batchRecorder{}
	p := NewBatchProcessor("test", &BatchConfig{
		MaxBatch:                  10,
		FlushIntervalMilliSeconds: 60000,
		QueueSize:                 16,
	}, recorder.handle)
	p.Start()
	p.Start()
	require.True(t, p.Submit("a"))
	p.Stop()

	assert.Equal(t, 1, recorder.total())
}
