// Package envseed derives a stable, host-distinct seed string from the
// execution environment with no persisted state: a set of fail-soft probes
// samples the host, the results are canonicalized into one deterministic
// string, and the string is reduced to a hex digest usable as a seed for a
// downstream deterministic generator.
//
// Two invocations on identical environment state yield bit-identical
// records, canonical strings and digests. Nothing aborts the pipeline: an
// absent or failing capability degrades to a documented sentinel inside a
// well-formed digest.
package envseed

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tusharlock10/envseed/internal/canonical"
	"github.com/tusharlock10/envseed/internal/collect"
	"github.com/tusharlock10/envseed/internal/digest"
	"github.com/tusharlock10/envseed/internal/hostenv"
	"github.com/tusharlock10/envseed/internal/probe"
	"github.com/tusharlock10/envseed/internal/raster"
	"github.com/tusharlock10/envseed/internal/signal"
)

// Boundary types callers implement or consume. Aliased here so embedders
// never import internal packages.
type (
	// Environment is the host facet boundary read by the identity,
	// display, hardware and extension probes.
	Environment = probe.Environment
	// PermissionQuerier is the permission capability of an Environment.
	PermissionQuerier = probe.PermissionQuerier
	// Display holds the raster display facets of a host.
	Display = probe.Display
	// RasterSource is the external drawing/shader surface capability.
	RasterSource = raster.Source
	// Hasher is the cryptographic digest capability.
	Hasher = digest.Hasher
	// Record is the ordered fingerprint record.
	Record = signal.Record
	// Value is a single probe result.
	Value = signal.Value
)

// Version is the pipeline version governing the record's field set, field
// order and canonical format.
const Version = canonical.Version

// Fingerprint is the full pipeline output.
type Fingerprint struct {
	Record          *Record `json:"record"`
	CanonicalString string  `json:"canonicalString"`
	Digest          string  `json:"digest"`
}

// Client runs the pipeline. Construct with New; the zero value is not
// usable. Safe for concurrent use.
type Client struct {
	env      Environment
	src      RasterSource
	engine   *digest.Engine
	timeout  time.Duration
	disabled []string
	log      zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithEnvironment replaces the default host environment.
func WithEnvironment(env Environment) Option {
	return func(c *Client) { c.env = env }
}

// WithRasterSource supplies a raster surface capability. Without one, every
// raster facet reports its "not supported" sentinel.
func WithRasterSource(src RasterSource) Option {
	return func(c *Client) { c.src = src }
}

// WithHasher replaces the digest capability. A Hasher reporting itself
// unavailable routes the pipeline onto the deterministic fallback hash.
func WithHasher(h Hasher) Option {
	return func(c *Client) { c.engine = digest.NewEngine(h) }
}

// WithDisabledProbes turns the named probes off. A disabled probe keeps its
// record field, reporting the not-available sentinel, so the field order
// contract holds.
func WithDisabledProbes(names ...string) Option {
	return func(c *Client) { c.disabled = append(c.disabled, names...) }
}

// WithProbeTimeout bounds each probe's run. Default probe.DefaultTimeout.
func WithProbeTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithLogger enables per-probe debug logging. Default is a disabled logger.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// New builds a Client. Defaults: the local host environment, no raster
// source, SHA-256 digest, disabled logging.
func New(opts ...Option) *Client {
	c := &Client{
		env:    hostenv.New(),
		engine: digest.NewEngine(nil),
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SeedString runs the full pipeline and returns the digest. The pipeline is
// re-run on every call, with no caching, and always produces a digest; degraded
// probes surface as sentinel field values, never as an error. Callers
// wanting an overall deadline impose it through ctx.
func (c *Client) SeedString(ctx context.Context) string {
	return c.FullFingerprint(ctx).Digest
}

// FullFingerprint runs the full pipeline and returns the record, its
// canonical string and the digest.
func (c *Client) FullFingerprint(ctx context.Context) *Fingerprint {
	probes := collect.Disable(collect.DefaultProbes(c.env, c.src), c.disabled...)
	collector := collect.New(probes, c.timeout, c.log)
	rec := collector.Collect(ctx)
	canon := canonical.Canonicalize(rec)
	return &Fingerprint{
		Record:          rec,
		CanonicalString: canon,
		Digest:          c.engine.Digest(canon),
	}
}
