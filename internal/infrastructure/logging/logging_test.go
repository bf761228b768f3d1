package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{" DEBUG ", slog.LevelDebug},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNew_RespectsLevelVar(t *testing.T) {
	var buf bytes.Buffer
	lv := new(slog.LevelVar)
	lv.Set(slog.LevelInfo)
	logger := New(Options{Writer: &buf, Level: lv, NoColor: true})

	logger.Debug("hidden")
	assert.NotContains(t, buf.String(), "hidden")

	lv.Set(slog.LevelDebug)
	logger.Debug("shown", "frame", 3)
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "frame=3")
}

func TestToggle(t *testing.T) {
	lv := new(slog.LevelVar)
	lv.Set(slog.LevelWarn)

	assert.True(t, Toggle(lv, slog.LevelWarn))
	assert.Equal(t, slog.LevelDebug, lv.Level())

	assert.False(t, Toggle(lv, slog.LevelWarn))
	assert.Equal(t, slog.LevelWarn, lv.Level())
}

func TestOrDiscard(t *testing.T) {
	assert.NotNil(t, OrDiscard(nil))

	l := Discard()
	assert.Same(t, l, OrDiscard(l))
}

func TestOpenFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	now := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)

	f, err := OpenFile(dir, now)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, filepath.Join(dir, "game_2026-03-04_05-06-07.log"), f.Name())
	_, err = os.Stat(f.Name())
	assert.NoError(t, err)
}

// syncBuffer is a bytes.Buffer safe for the drain goroutine and the test.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestAsyncWriter_FlushesOnClose(t *testing.T) {
	dst := &syncBuffer{}
	w := NewAsyncWriter(dst, 16)

	for i := 0; i < 10; i++ {
		n, err := w.Write([]byte("line\n"))
		require.NoError(t, err)
		assert.Equal(t, 5, n)
	}
	require.NoError(t, w.Close())

	assert.Equal(t, 10, strings.Count(dst.String(), "line\n"))
	assert.Zero(t, w.Dropped())
}

// blockingWriter stalls until release is closed.
type blockingWriter struct {
	release chan struct{}
	dst     syncBuffer
}

func (b *blockingWriter) Write(p []byte) (int, error) {
	<-b.release
	return b.dst.Write(p)
}

func TestAsyncWriter_DropsWhenFull(t *testing.T) {
	slow := &blockingWriter{release: make(chan struct{})}
	w := NewAsyncWriter(slow, 2)

	start := time.Now()
	for i := 0; i < 50; i++ {
		_, _ = w.Write([]byte("x"))
	}
	assert.Less(t, time.Since(start), time.Second, "writes must not block on a stalled sink")
	assert.Positive(t, w.Dropped())

	close(slow.release)
	require.NoError(t, w.Close())
}

func TestAsyncWriter_WriteAfterClose(t *testing.T) {
	dst := &syncBuffer{}
	w := NewAsyncWriter(dst, 4)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	n, err := w.Write([]byte("late"))
	assert.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, uint64(1), w.Dropped())
	assert.Empty(t, dst.String())
}

func TestAsyncWriter_WithLogger(t *testing.T) {
	dst := &syncBuffer{}
	w := NewAsyncWriter(dst, 0)
	logger := New(Options{Writer: w, NoColor: true})

	logger.Warn("asset missing", "name", "menu_music")
	require.NoError(t, w.Close())

	assert.Contains(t, dst.String(), "asset missing")
	assert.Contains(t, dst.String(), "name=menu_music")
}
