// Package hostenv is the default Environment implementation: it samples the
// facets a plain Go process can see. Facets that only exist behind a real
// display or document surface report ErrNotSupported, which the probes turn
// into their documented sentinels; embedders with such a surface supply
// their own Environment instead.
package hostenv

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/tusharlock10/envseed/internal/probe"
)

// Host samples the local process environment. Non-empty override fields win
// over sampling; they exist so the CLI config can pin identity facets.
type Host struct {
	UserAgentOverride string
	PlatformOverride  string
	LanguageOverride  string
}

// New returns a Host with no overrides.
func New() *Host {
	return &Host{}
}

// UserAgent reports the runtime identity: Go version, OS, architecture and
// short hostname.
func (h *Host) UserAgent() (string, error) {
	if h.UserAgentOverride != "" {
		return h.UserAgentOverride, nil
	}
	return fmt.Sprintf("Go/%s (%s; %s; %s)",
		runtime.Version(), runtime.GOOS, runtime.GOARCH, shortHostname()), nil
}

// Platform reports GOOS/GOARCH.
func (h *Host) Platform() (string, error) {
	if h.PlatformOverride != "" {
		return h.PlatformOverride, nil
	}
	return runtime.GOOS + "/" + runtime.GOARCH, nil
}

// Language reports the locale tag from the POSIX locale variables, checked
// in override order: LC_ALL, LC_MESSAGES, LANG. Encoding suffixes are
// stripped ("en_US.UTF-8" → "en_US").
func (h *Host) Language() (string, error) {
	if h.LanguageOverride != "" {
		return h.LanguageOverride, nil
	}
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(key); v != "" && v != "C" && v != "POSIX" {
			if i := strings.IndexByte(v, '.'); i > 0 {
				v = v[:i]
			}
			return v, nil
		}
	}
	return "", probe.ErrNotSupported
}

// Timezone reports the zone name: TZ if set, the loaded IANA name when the
// runtime knows it, otherwise the zone abbreviation.
func (h *Host) Timezone() (string, error) {
	if tz := os.Getenv("TZ"); tz != "" {
		return tz, nil
	}
	if name := time.Local.String(); name != "" && name != "Local" {
		return name, nil
	}
	abbrev, _ := time.Now().Zone()
	if abbrev == "" {
		return "", probe.ErrNotSupported
	}
	return abbrev, nil
}

// TimezoneOffset reports minutes between UTC and local time, positive west
// of UTC (UTC-5 → 300).
func (h *Host) TimezoneOffset() (int, error) {
	_, offsetSeconds := time.Now().Zone()
	return -offsetSeconds / 60, nil
}

// Display is not available to a headless process.
func (h *Host) Display() (probe.Display, error) {
	return probe.Display{}, probe.ErrNotSupported
}

// LogicalCores reports the logical CPU count.
func (h *Host) LogicalCores() (int, error) {
	n := runtime.NumCPU()
	if n <= 0 {
		return 0, probe.ErrNotSupported
	}
	return n, nil
}

// HasGlobal treats process environment variables as the host's named
// globals.
func (h *Host) HasGlobal(name string) bool {
	_, ok := os.LookupEnv(name)
	return ok
}

// QueryNodes has no document to query.
func (h *Host) QueryNodes(string) []string { return nil }

// InjectedSources has no injected scripts to report.
func (h *Host) InjectedSources() []string { return nil }

// HasCustomProperty has no style system.
func (h *Host) HasCustomProperty(string) bool { return false }

// Permissions reports no permission capability; the extension probe treats
// that as every permission being unsupported.
func (h *Host) Permissions() probe.PermissionQuerier { return nil }

// shortHostname returns the first label of the hostname, or "unknown".
func shortHostname() string {
	name, err := os.Hostname()
	if err != nil || name == "" {
		return "unknown"
	}
	return strings.Split(name, ".")[0]
}
