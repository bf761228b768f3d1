package resource

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/younwookim/pongkit/internal/infrastructure/config"
)

// DefaultPreloadWorkers bounds concurrent decodes during Preload.
const DefaultPreloadWorkers = 4

// Report summarizes a Preload run.
type Report struct {
	Loaded   int
	Missing  int
	Skipped  int // not attempted because ctx was cancelled
	Duration time.Duration
}

// Total is the number of manifest entries the report covers.
func (r Report) Total() int {
	return r.Loaded + r.Missing + r.Skipped
}

// Preload loads every manifest entry with up to workers concurrent loads.
// Failed entries are counted as missing; they never abort the run.
func (m *Manager) Preload(ctx context.Context, manifest *config.Manifest, workers int) Report {
	start := time.Now()
	if manifest == nil {
		return Report{}
	}
	if workers <= 0 {
		workers = DefaultPreloadWorkers
	}

	var loaded, missing, skipped atomic.Int64
	count := func(ok bool) {
		if ok {
			loaded.Add(1)
		} else {
			missing.Add(1)
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	submit := func(load func() bool) {
		g.Go(func() error {
			if ctx.Err() != nil {
				skipped.Add(1)
				return nil
			}
			count(load())
			return nil
		})
	}

	for _, a := range manifest.Images {
		submit(func() bool { return m.LoadImage(a.Name, a.Path, a.HasAlpha()) != nil })
	}
	for _, a := range manifest.Sounds {
		submit(func() bool { return m.LoadSound(a.Name, a.Path) != nil })
	}
	for _, a := range manifest.Fonts {
		for _, size := range a.Sizes {
			submit(func() bool { return m.LoadFont(a.Name, a.Path, size) != nil })
		}
	}
	_ = g.Wait()

	r := Report{
		Loaded:   int(loaded.Load()),
		Missing:  int(missing.Load()),
		Skipped:  int(skipped.Load()),
		Duration: time.Since(start),
	}
	m.logger.Info("assets preloaded",
		"loaded", r.Loaded,
		"missing", r.Missing,
		"skipped", r.Skipped,
		"duration", r.Duration,
	)
	return r
}
