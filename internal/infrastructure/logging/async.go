package logging

import (
	"io"
	"sync"
	"sync/atomic"
)

// DefaultBufferSize is the number of pending lines an AsyncWriter holds.
const DefaultBufferSize = 1024

// AsyncWriter decouples log producers from a slow destination.
//
// Write copies p into a bounded queue and returns immediately. A single
// goroutine drains the queue into the destination. When the queue is full the
// line is dropped and counted, so the frame loop never waits on disk.
type AsyncWriter struct {
	dst     io.Writer
	lines   chan []byte
	done    chan struct{}
	dropped atomic.Uint64

	mu     sync.RWMutex
	closed bool
	once   sync.Once
}

// NewAsyncWriter starts draining into dst. size <= 0 uses DefaultBufferSize.
func NewAsyncWriter(dst io.Writer, size int) *AsyncWriter {
	if size <= 0 {
		size = DefaultBufferSize
	}
	w := &AsyncWriter{
		dst:   dst,
		lines: make(chan []byte, size),
		done:  make(chan struct{}),
	}
	go w.drain()
	return w
}

func (w *AsyncWriter) drain() {
	defer close(w.done)
	for line := range w.lines {
		// Write errors have nowhere to go; the logger must not fail the game.
		_, _ = w.dst.Write(line)
	}
}

// Write queues a copy of p. It never blocks and always reports len(p).
func (w *AsyncWriter) Write(p []byte) (int, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.closed {
		w.dropped.Add(1)
		return len(p), nil
	}

	line := make([]byte, len(p))
	copy(line, p)
	select {
	case w.lines <- line:
	default:
		w.dropped.Add(1)
	}
	return len(p), nil
}

// Dropped reports how many lines were discarded.
func (w *AsyncWriter) Dropped() uint64 {
	return w.dropped.Load()
}

// Close flushes queued lines and stops the drain goroutine.
// Writes after Close are dropped. If dst is an io.Closer it is not closed.
func (w *AsyncWriter) Close() error {
	w.once.Do(func() {
		w.mu.Lock()
		w.closed = true
		close(w.lines)
		w.mu.Unlock()
	})
	<-w.done
	return nil
}
