package probe

import "context"

// Display holds the raster display facets of a host. All values are in the
// host's native units.
type Display struct {
	Width      int
	Height     int
	ColorDepth int
	PixelDepth int
}

// Environment is the host boundary the identity, display, hardware and
// extension probes read through. Implementations must be safe for concurrent
// use; probes may run in parallel.
//
// Methods returning (value, error) report a legitimately absent facet with
// ErrNotSupported; any other error is a capability failure. Both map to
// sentinels, never to an aborted collection.
type Environment interface {
	UserAgent() (string, error)
	Platform() (string, error)
	Language() (string, error)

	// Timezone returns the zone name; TimezoneOffset the minutes between
	// UTC and local time, positive west of UTC.
	Timezone() (string, error)
	TimezoneOffset() (int, error)

	Display() (Display, error)

	// LogicalCores returns the logical core count. Best effort.
	LogicalCores() (int, error)

	// Capability lookups for the extension-detection battery. All are
	// best-effort: an unsupported lookup returns false / nil, never panics.
	HasGlobal(name string) bool
	QueryNodes(selector string) []string
	InjectedSources() []string
	HasCustomProperty(name string) bool

	// Permissions returns the permission query capability, or nil when the
	// host has none (treated as every permission being unsupported).
	Permissions() PermissionQuerier
}

// PermissionState is the outcome of a permission query.
type PermissionState int

const (
	PermissionDenied PermissionState = iota
	PermissionGranted
	PermissionUnsupported
)

// PermissionQuerier queries a named permission. Unsupported permissions are
// treated identically to denied by the extension probe.
type PermissionQuerier interface {
	Query(ctx context.Context, name string) (PermissionState, error)
}
