// Package collect orchestrates the probe set: every probe runs concurrently
// under its own deadline, and the results are assembled into one
// FingerprintRecord whose key order is fixed by the pipeline version, never
// by probe completion order.
package collect

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tusharlock10/envseed/internal/probe"
	"github.com/tusharlock10/envseed/internal/raster"
	"github.com/tusharlock10/envseed/internal/signal"
)

// Collector runs a probe set and assembles records. Safe for concurrent use;
// each Collect call owns its record exclusively.
type Collector struct {
	probes  []probe.Probe
	timeout time.Duration
	log     zerolog.Logger
}

// New builds a Collector. The probe slice order is the record's key order.
// A non-positive timeout selects probe.DefaultTimeout per probe.
func New(probes []probe.Probe, timeout time.Duration, log zerolog.Logger) *Collector {
	return &Collector{probes: probes, timeout: timeout, log: log}
}

// DefaultProbes returns the version-1 probe set, in field order, reading
// through env and src. A nil src legitimately reports every raster facet as
// absent.
func DefaultProbes(env probe.Environment, src raster.Source) []probe.Probe {
	return []probe.Probe{
		probe.UserAgent(env),
		probe.Platform(env),
		probe.Language(env),
		probe.Timezone(env),
		probe.TimezoneOffset(env),
		probe.ScreenWidth(env),
		probe.ScreenHeight(env),
		probe.ColorDepth(env),
		probe.PixelDepth(env),
		probe.HardwareConcurrency(env),
		raster.WebGLInfo(src),
		raster.Canvas(src),
		raster.WebGL(src),
		probe.Extensions(env, nil),
		probe.Math(),
	}
}

// Disable replaces the named probes with static not-available sentinels. The
// field set and order are part of the format contract, so a disabled probe
// keeps its record slot; only its value degrades.
func Disable(probes []probe.Probe, names ...string) []probe.Probe {
	if len(names) == 0 {
		return probes
	}
	disabled := make(map[string]bool, len(names))
	for _, name := range names {
		disabled[name] = true
	}
	out := make([]probe.Probe, len(probes))
	for i, p := range probes {
		if disabled[p.Name()] {
			out[i] = probe.New(p.Name(), func(context.Context) signal.Value {
				return signal.Sentinel(probe.SentinelNotAvailable)
			})
			continue
		}
		out[i] = p
	}
	return out
}

// Collect runs every probe and returns the assembled record. The record has
// the same key set and key order on every host and every run: a probe that
// failed, hung or found nothing still occupies its slot with a sentinel.
func (c *Collector) Collect(ctx context.Context) *signal.Record {
	results := make([]signal.Value, len(c.probes))

	var wg sync.WaitGroup
	for i, p := range c.probes {
		wg.Add(1)
		go func(i int, p probe.Probe) {
			defer wg.Done()
			start := time.Now()
			v := probe.Run(ctx, p, c.timeout)
			results[i] = v
			c.log.Debug().
				Str("probe", p.Name()).
				Dur("took", time.Since(start)).
				Bool("sentinel", v.IsSentinel()).
				Msg("probe collected")
		}(i, p)
	}
	wg.Wait()

	rec := signal.NewRecord()
	for i, p := range c.probes {
		rec.Set(p.Name(), results[i])
	}
	return rec
}
