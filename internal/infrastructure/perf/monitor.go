// Package perf tracks frame rate and per-section timings for the engine.
//
// A Monitor is an ordinary owned value; the engine constructs one and hands it
// to whoever needs it. Nothing here is process-global.
package perf

import (
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"sort"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Section names used by the engine frame loop.
const (
	SectionInput   = "input"
	SectionAdvance = "advance"
	SectionDraw    = "draw"
)

const (
	// DefaultMaxSamples is 2 seconds at 60 FPS.
	DefaultMaxSamples = 120
	fpsWindow         = 60
)

// Stats summarizes one section, in milliseconds.
type Stats struct {
	Min float64
	Max float64
	Avg float64
}

// Monitor records frame start times and named section durations over a
// rolling window.
type Monitor struct {
	now        func() time.Time
	maxSamples int

	frames   []time.Time
	sections map[string][]float64 // seconds

	current      string
	sectionStart time.Time

	visible bool
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(m *Monitor) { m.now = now }
}

// WithMaxSamples sets the rolling window length.
func WithMaxSamples(n int) Option {
	return func(m *Monitor) {
		if n > 0 {
			m.maxSamples = n
		}
	}
}

// New creates a Monitor with the overlay hidden.
func New(opts ...Option) *Monitor {
	m := &Monitor{
		now:        time.Now,
		maxSamples: DefaultMaxSamples,
		sections:   make(map[string][]float64),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// StartFrame stamps the start of a new frame.
func (m *Monitor) StartFrame() {
	m.frames = append(m.frames, m.now())
	if len(m.frames) > m.maxSamples {
		m.frames = m.frames[1:]
	}
}

// StartSection begins timing name. Only one section is open at a time;
// starting a new one discards an unfinished one.
func (m *Monitor) StartSection(name string) {
	m.current = name
	m.sectionStart = m.now()
}

// EndSection closes the open section. It is a no-op when none is open.
func (m *Monitor) EndSection() {
	if m.current == "" {
		return
	}

	elapsed := m.now().Sub(m.sectionStart).Seconds()
	times := append(m.sections[m.current], elapsed)
	if len(times) > m.maxSamples {
		times = times[1:]
	}
	m.sections[m.current] = times
	m.current = ""
}

// Measure times fn as section name.
func (m *Monitor) Measure(name string, fn func()) {
	m.StartSection(name)
	fn()
	m.EndSection()
}

// FPS is the frame rate over the last 60 frame stamps, or 0 with fewer than two.
func (m *Monitor) FPS() float64 {
	recent := m.frames
	if len(recent) > fpsWindow {
		recent = recent[len(recent)-fpsWindow:]
	}
	if len(recent) < 2 {
		return 0
	}

	span := recent[len(recent)-1].Sub(recent[0]).Seconds()
	if span <= 0 {
		return 0
	}
	return float64(len(recent)-1) / span
}

// SectionStats returns min, max and mean of a section in milliseconds.
// Unknown or empty sections yield zero Stats.
func (m *Monitor) SectionStats(name string) Stats {
	times := m.sections[name]
	if len(times) == 0 {
		return Stats{}
	}
	return Stats{
		Min: floats.Min(times) * 1000,
		Max: floats.Max(times) * 1000,
		Avg: stat.Mean(times, nil) * 1000,
	}
}

// Sections returns the recorded section names in sorted order.
func (m *Monitor) Sections() []string {
	names := make([]string, 0, len(m.sections))
	for name := range m.sections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Toggle flips overlay visibility and returns the new state.
func (m *Monitor) Toggle() bool {
	m.visible = !m.visible
	return m.visible
}

// Visible reports whether the overlay is drawn.
func (m *Monitor) Visible() bool {
	return m.visible
}

// Clear drops all recorded data.
func (m *Monitor) Clear() {
	m.frames = m.frames[:0]
	m.sections = make(map[string][]float64)
	m.current = ""
}

var overlayBG = color.RGBA{0, 0, 0, 160}

// Lines renders the overlay text, one entry per line.
func (m *Monitor) Lines() []string {
	lines := []string{fmt.Sprintf("FPS: %.1f", m.FPS())}
	for _, name := range m.Sections() {
		lines = append(lines, fmt.Sprintf("%s: %.1fms", name, m.SectionStats(name).Avg))
	}
	return lines
}

// Draw paints the overlay in the top-left corner when visible.
func (m *Monitor) Draw(screen *ebiten.Image) {
	if !m.visible {
		return
	}

	lines := m.Lines()
	vector.DrawFilledRect(screen, 4, 4, 180, float32(8+len(lines)*16), overlayBG, false)
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, 10, 8+i*16)
	}
}

// SectionRecord is one CSV row of section statistics.
type SectionRecord struct {
	Section string  `csv:"section"`
	Samples int     `csv:"samples"`
	MinMS   float64 `csv:"min_ms"`
	MaxMS   float64 `csv:"max_ms"`
	AvgMS   float64 `csv:"avg_ms"`
	FPS     float64 `csv:"fps"`
}

// Records snapshots every section as a SectionRecord.
func (m *Monitor) Records() []*SectionRecord {
	fps := m.FPS()
	names := m.Sections()
	records := make([]*SectionRecord, 0, len(names))
	for _, name := range names {
		s := m.SectionStats(name)
		records = append(records, &SectionRecord{
			Section: name,
			Samples: len(m.sections[name]),
			MinMS:   s.Min,
			MaxMS:   s.Max,
			AvgMS:   s.Avg,
			FPS:     fps,
		})
	}
	return records
}

// WriteCSV writes Records to w with a header row.
func (m *Monitor) WriteCSV(w io.Writer) error {
	if err := gocsv.Marshal(m.Records(), w); err != nil {
		return fmt.Errorf("writing perf csv: %w", err)
	}
	return nil
}

// LogValue implements slog.LogValuer.
func (m *Monitor) LogValue() slog.Value {
	attrs := []slog.Attr{slog.Float64("fps", m.FPS())}
	for _, name := range m.Sections() {
		attrs = append(attrs, slog.Float64(name+"_avg_ms", m.SectionStats(name).Avg))
	}
	return slog.GroupValue(attrs...)
}
