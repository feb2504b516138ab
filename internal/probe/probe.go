// Package probe defines the probe contract and the built-in signal
// collectors that read host facets through the Environment boundary.
//
// A probe is a pure read of one environment facet. It never propagates a
// failure: anything that goes wrong inside a probe becomes a sentinel Value
// with a stable, probe-specific error code. The Run wrapper adds the two
// guarantees no probe body can be trusted with: a recover barrier and a
// hard per-probe deadline.
package probe

import (
	"context"
	"errors"
	"time"

	"github.com/tusharlock10/envseed/internal/signal"
)

// Probe is the shared contract of every signal collector.
type Probe interface {
	// Name returns the record field this probe fills. Fixed per pipeline
	// version.
	Name() string
	// Collect reads the probe's facet. It must return a sentinel rather
	// than fail, and must honor ctx cancellation when it awaits anything.
	Collect(ctx context.Context) signal.Value
}

// Sentinel codes shared across probes. Raster-specific codes live in the
// raster package.
const (
	SentinelNotAvailable = "not-available"
	SentinelTimeout      = "probe-timeout"
	SentinelPanic        = "probe-panic"
)

// ErrNotSupported is returned by Environment methods for facets the host
// legitimately does not have. Probes map it to SentinelNotAvailable.
var ErrNotSupported = errors.New("capability not supported")

// DefaultTimeout bounds a single probe's run when the collector is not
// configured otherwise.
const DefaultTimeout = 2 * time.Second

// Run executes p with a recover barrier and a deadline. A probe that panics
// yields SentinelPanic; one that outlives the deadline yields
// SentinelTimeout and its goroutine is abandoned (its context is cancelled,
// so a well-behaved probe unwinds on its own).
func Run(ctx context.Context, p Probe, timeout time.Duration) signal.Value {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ch := make(chan signal.Value, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- signal.Sentinel(SentinelPanic)
			}
		}()
		ch <- p.Collect(ctx)
	}()

	select {
	case v := <-ch:
		return v
	case <-ctx.Done():
		return signal.Sentinel(SentinelTimeout)
	}
}

// funcProbe adapts a closure to the Probe contract.
type funcProbe struct {
	name string
	fn   func(ctx context.Context) signal.Value
}

func (p funcProbe) Name() string                             { return p.name }
func (p funcProbe) Collect(ctx context.Context) signal.Value { return p.fn(ctx) }

// New builds a Probe from a name and a collect function.
func New(name string, fn func(ctx context.Context) signal.Value) Probe {
	return funcProbe{name: name, fn: fn}
}
