package probe

import (
	"context"
	"sync"

	"github.com/tusharlock10/envseed/internal/canonical"
	"github.com/tusharlock10/envseed/internal/signal"
)

// SentinelExtensionsError is produced when the extension battery fails as a
// whole. Individual sub-checks never produce it; they contribute an empty
// list instead.
const SentinelExtensionsError = "extensions-error"

// LookupKind selects the strategy a capability descriptor uses.
type LookupKind int

const (
	// LookupGlobal tests for presence of named host globals.
	LookupGlobal LookupKind = iota
	// LookupNode matches host nodes against fixed selectors.
	LookupNode
	// LookupSource matches injected source locations against fixed
	// URL-scheme prefixes.
	LookupSource
	// LookupProperty tests for named custom properties.
	LookupProperty
	// LookupPermission queries named permissions and records the granted
	// ones. Unsupported counts as denied.
	LookupPermission
)

// Descriptor is one declarative capability check: a stable name plus the
// lookup strategy and its arguments. The battery is iterated uniformly; no
// per-name branching.
type Descriptor struct {
	Name string
	Kind LookupKind
	Args []string
}

// DefaultBattery is the version-1 extension-detection battery. Order is part
// of the record contract.
var DefaultBattery = []Descriptor{
	{Name: "globals", Kind: LookupGlobal, Args: []string{
		"__REACT_DEVTOOLS_GLOBAL_HOOK__", "DarkReader", "AdBlock", "grammarly",
	}},
	{Name: "nodes", Kind: LookupNode, Args: []string{
		"grammarly-desktop-integration", "[data-gr-ext-installed]", "[data-adblockkey]",
	}},
	{Name: "injectedSources", Kind: LookupSource, Args: []string{
		"chrome-extension://", "moz-extension://", "safari-extension://",
	}},
	{Name: "customProperties", Kind: LookupProperty, Args: []string{
		"--darkreader-inline-bgcolor", "--darkreader-inline-color",
	}},
	{Name: "permissions", Kind: LookupPermission, Args: []string{
		"clipboard-read", "notifications", "geolocation", "camera", "microphone",
	}},
}

// Extensions probes the capability battery and aggregates the findings into
// one nested record, keyed by descriptor name in battery order. Every
// sub-check is fail-soft: a failing check contributes an empty list and
// never aborts its siblings.
func Extensions(env Environment, battery []Descriptor) Probe {
	if battery == nil {
		battery = DefaultBattery
	}
	return New(canonical.FieldExtensions, func(ctx context.Context) (out signal.Value) {
		defer func() {
			if r := recover(); r != nil {
				out = signal.Sentinel(SentinelExtensionsError)
			}
		}()

		rec := signal.NewRecord()
		for _, d := range battery {
			rec.Set(d.Name, signal.Strings(runLookup(ctx, env, d)...))
		}
		return signal.FromRecord(rec)
	})
}

// runLookup executes one descriptor. The returned matches preserve the
// descriptor's argument order so the aggregate stays deterministic.
func runLookup(ctx context.Context, env Environment, d Descriptor) []string {
	defer func() {
		// A misbehaving Environment must not take down sibling checks; the
		// outer record simply records no findings for this descriptor.
		_ = recover()
	}()

	switch d.Kind {
	case LookupGlobal:
		var found []string
		for _, name := range d.Args {
			if env.HasGlobal(name) {
				found = append(found, name)
			}
		}
		return found

	case LookupNode:
		var found []string
		for _, sel := range d.Args {
			found = append(found, env.QueryNodes(sel)...)
		}
		return found

	case LookupSource:
		var found []string
		for _, src := range env.InjectedSources() {
			for _, prefix := range d.Args {
				if len(src) >= len(prefix) && src[:len(prefix)] == prefix {
					found = append(found, src)
					break
				}
			}
		}
		return found

	case LookupProperty:
		var found []string
		for _, name := range d.Args {
			if env.HasCustomProperty(name) {
				found = append(found, name)
			}
		}
		return found

	case LookupPermission:
		return grantedPermissions(ctx, env.Permissions(), d.Args)
	}
	return nil
}

// grantedPermissions queries each named permission concurrently and returns
// the granted names in argument order. Each lookup is isolated: a failing or
// unsupported query reads as denied.
func grantedPermissions(ctx context.Context, q PermissionQuerier, names []string) []string {
	if q == nil {
		return nil
	}

	granted := make([]bool, len(names))
	var wg sync.WaitGroup
	for i, name := range names {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			defer func() { _ = recover() }()
			state, err := q.Query(ctx, name)
			if err == nil && state == PermissionGranted {
				granted[i] = true
			}
		}(i, name)
	}
	wg.Wait()

	var found []string
	for i, name := range names {
		if granted[i] {
			found = append(found, name)
		}
	}
	return found
}
