package middleware

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bounswe/bounswe2025group9-sub004/internal/domain/model"
	"github.com/bounswe/bounswe2025group9-sub004/internal/logger"
	"github.com/bounswe/bounswe2025group9-sub004/internal/service"
)

// AsyncLoggerConfig sizes the buffered log pipeline.
type AsyncLoggerConfig struct {
	// BufferSize caps how many entries can wait for a worker.
	BufferSize int
	// NumWorkers is the number of goroutines draining the buffer.
	NumWorkers int
	// WriteTimeout bounds each Mongo write.
	WriteTimeout time.Duration
}

// DefaultAsyncLoggerConfig returns the production defaults.
func DefaultAsyncLoggerConfig() AsyncLoggerConfig {
	return AsyncLoggerConfig{
		BufferSize:   1000,
		NumWorkers:   4,
		WriteTimeout: 5 * time.Second,
	}
}

// asyncLoggerCounters tracks pipeline throughput. All fields are accessed
// atomically.
type asyncLoggerCounters struct {
	enqueued int64
	dropped  int64
	written  int64
	errors   int64
}

// AsyncLogger moves request-log writes off the handler path: handlers
// enqueue, a fixed worker pool writes. A full buffer drops entries instead
// of blocking responses or spawning goroutines.
type AsyncLogger struct {
	loggingService service.LoggingService
	entries        chan *model.LogEntry
	wg             sync.WaitGroup
	quit           chan struct{}
	writeTimeout   time.Duration
	counters       asyncLoggerCounters
}

// NewAsyncLogger creates the logger and starts its worker pool. Returns nil
// when no logging service is configured, which disables async logging.
func NewAsyncLogger(loggingService service.LoggingService, cfg AsyncLoggerConfig) *AsyncLogger {
	if loggingService == nil {
		return nil
	}

	al := &AsyncLogger{
		loggingService: loggingService,
		entries:        make(chan *model.LogEntry, cfg.BufferSize),
		quit:           make(chan struct{}),
		writeTimeout:   cfg.WriteTimeout,
	}

	for i := 0; i < cfg.NumWorkers; i++ {
		al.wg.Add(1)
		go al.drain()
	}

	return al
}

// drain consumes entries until stopped, flushing whatever is still buffered
// on shutdown.
func (al *AsyncLogger) drain() {
	defer al.wg.Done()

	for {
		select {
		case entry, ok := <-al.entries:
			if !ok {
				return
			}
			al.write(entry)
		case <-al.quit:
			for {
				select {
				case entry := <-al.entries:
					al.write(entry)
				default:
					return
				}
			}
		}
	}
}

func (al *AsyncLogger) write(entry *model.LogEntry) {
	ctx, cancel := context.WithTimeout(context.Background(), al.writeTimeout)
	defer cancel()

	if err := al.loggingService.CreateLog(ctx, entry); err != nil {
		atomic.AddInt64(&al.counters.errors, 1)
		// A lost audit entry is not worth failing the request over.
		l := logger.Logger()
		l.Warn().Err(err).Msg("Failed to write async log entry")
		return
	}
	atomic.AddInt64(&al.counters.written, 1)
}

// Log enqueues an entry. Returns false when the buffer is full and the
// entry was dropped.
func (al *AsyncLogger) Log(entry *model.LogEntry) bool {
	select {
	case al.entries <- entry:
		atomic.AddInt64(&al.counters.enqueued, 1)
		return true
	default:
		atomic.AddInt64(&al.counters.dropped, 1)
		return false
	}
}

// Stop flushes the buffer and waits for the workers to exit.
func (al *AsyncLogger) Stop() {
	close(al.quit)
	al.wg.Wait()
	close(al.entries)
}

// Stats returns the pipeline counters.
func (al *AsyncLogger) Stats() (enqueued, dropped, written, errors int64) {
	return atomic.LoadInt64(&al.counters.enqueued),
		atomic.LoadInt64(&al.counters.dropped),
		atomic.LoadInt64(&al.counters.written),
		atomic.LoadInt64(&al.counters.errors)
}

var (
	globalAsyncLogger   *AsyncLogger
	globalAsyncLoggerMu sync.RWMutex
)

// InitAsyncLogger installs the process-wide async logger, stopping any
// previous one. Called once during startup.
func InitAsyncLogger(loggingService service.LoggingService, cfg AsyncLoggerConfig) {
	globalAsyncLoggerMu.Lock()
	defer globalAsyncLoggerMu.Unlock()

	if globalAsyncLogger != nil {
		globalAsyncLogger.Stop()
	}
	globalAsyncLogger = NewAsyncLogger(loggingService, cfg)
}

// GetAsyncLogger returns the process-wide async logger, or nil before
// InitAsyncLogger.
func GetAsyncLogger() *AsyncLogger {
	globalAsyncLoggerMu.RLock()
	defer globalAsyncLoggerMu.RUnlock()
	return globalAsyncLogger
}

// StopAsyncLogger flushes and clears the process-wide async logger.
func StopAsyncLogger() {
	globalAsyncLoggerMu.Lock()
	defer globalAsyncLoggerMu.Unlock()

	if globalAsyncLogger != nil {
		globalAsyncLogger.Stop()
		globalAsyncLogger = nil
	}
}
