package tools

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// BatchConfig tunes a BatchProcessor.
type BatchConfig struct {
	// MaxBatch is the number of buffered items that triggers a flush.
	MaxBatch int
	// FlushIntervalMilliSeconds flushes a non-empty buffer even when MaxBatch
	// was not reached.
	FlushIntervalMilliSeconds int64
	// QueueSize bounds the submit channel; Submit drops when full.
	QueueSize int
}

func GetDefaultBatchConfig() *BatchConfig {
	return &BatchConfig{
		MaxBatch:                  20,
		FlushIntervalMilliSeconds: 500,
		QueueSize:                 1024,
	}
}

// BatchProcessor collects items and hands them to a handler in batches.
// Used for write paths where per-item round trips are too expensive, e.g.
// persisting chat message logs.
type BatchProcessor struct {
	Name string

	config      *BatchConfig
	handler     func(batch []interface{}) error
	messageChan chan interface{}

	buffer []interface{}

	serviceLock sync.Mutex
	isOpen      bool
	ctx         context.Context
	cancelFunc  context.CancelFunc
	doneChan    chan struct{}
}

func NewBatchProcessor(name string, config *BatchConfig, handler func(batch []interface{}) error) *BatchProcessor {
	if config == nil {
		config = GetDefaultBatchConfig()
	}
	return &BatchProcessor{
		Name:        name,
		config:      config,
		handler:     handler,
		messageChan: make(chan interface{}, config.QueueSize),
	}
}

func (p *BatchProcessor) Start() {
	p.serviceLock.Lock()
	defer p.serviceLock.Unlock()

	if p.isOpen {
		return
	}

	p.ctx, p.cancelFunc = context.WithCancel(context.Background())
	p.doneChan = make(chan struct{})
	p.buffer = make([]interface{}, 0, p.config.MaxBatch)

	go p.loop()

	p.isOpen = true
}

// Stop flushes the remaining buffer and waits for the loop to exit.
func (p *BatchProcessor) Stop() {
	p.serviceLock.Lock()
	defer p.serviceLock.Unlock()

	if !p.isOpen {
		return
	}

	p.cancelFunc()
	<-p.doneChan
	p.isOpen = false
}

// Submit queues an item for batched processing. Returns false when the queue
// is full or the processor is stopped; the item is dropped in that case.
func (p *BatchProcessor) Submit(item interface{}) bool {
	p.serviceLock.Lock()
	open := p.isOpen
	p.serviceLock.Unlock()
	if !open {
		return false
	}

	select {
	case p.messageChan <- item:
		return true
	default:
		logrus.Warnf("batch processor %s queue full, dropping item", p.Name)
		return false
	}
}

func (p *BatchProcessor) loop() {
	defer close(p.doneChan)

	interval := time.Duration(p.config.FlushIntervalMilliSeconds) * time.Millisecond
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-p.ctx.Done():
			p.drain()
			p.flush()
			return
		case item := <-p.messageChan:
			p.buffer = append(p.buffer, item)
			if len(p.buffer) >= p.config.MaxBatch {
				p.flush()
			}
		case <-ticker.C:
			p.flush()
		}
	}
}

func (p *BatchProcessor) drain() {
	for {
		select {
		case item := <-p.messageChan:
			p.buffer = append(p.buffer, item)
		default:
			return
		}
	}
}

func (p *BatchProcessor) flush() {
	if len(p.buffer) == 0 {
		return
	}

	batch := p.buffer
	p.buffer = make([]interface{}, 0, p.config.MaxBatch)

	if err := p.handler(batch); err != nil {
		logrus.Errorf("batch processor %s handler error for %d items: %v", p.Name, len(batch), err)
	}
}
