package probe

import (
	"context"

	"github.com/tusharlock10/envseed/internal/canonical"
	"github.com/tusharlock10/envseed/internal/signal"
)

// stringFacet adapts an Environment string getter to a probe.
func stringFacet(name string, get func() (string, error)) Probe {
	return New(name, func(context.Context) signal.Value {
		s, err := get()
		if err != nil {
			return signal.Sentinel(SentinelNotAvailable)
		}
		return signal.String(s)
	})
}

// intFacet adapts an Environment integer getter to a probe.
func intFacet(name string, get func() (int, error)) Probe {
	return New(name, func(context.Context) signal.Value {
		n, err := get()
		if err != nil {
			return signal.Sentinel(SentinelNotAvailable)
		}
		return signal.Int(n)
	})
}

// UserAgent probes the host's user-agent string.
func UserAgent(env Environment) Probe {
	return stringFacet(canonical.FieldUserAgent, env.UserAgent)
}

// Platform probes the host's platform string.
func Platform(env Environment) Probe {
	return stringFacet(canonical.FieldPlatform, env.Platform)
}

// Language probes the host's locale/language tag.
func Language(env Environment) Probe {
	return stringFacet(canonical.FieldLanguage, env.Language)
}

// Timezone probes the host's timezone name.
func Timezone(env Environment) Probe {
	return stringFacet(canonical.FieldTimezone, env.Timezone)
}

// TimezoneOffset probes the host's UTC offset in minutes.
func TimezoneOffset(env Environment) Probe {
	return intFacet(canonical.FieldTimezoneOffset, env.TimezoneOffset)
}

// displayFacet reads one field of the Display facet. Each display probe
// fails independently even though they share one Environment call.
func displayFacet(name string, pick func(Display) int, env Environment) Probe {
	return New(name, func(context.Context) signal.Value {
		d, err := env.Display()
		if err != nil {
			return signal.Sentinel(SentinelNotAvailable)
		}
		return signal.Int(pick(d))
	})
}

// ScreenWidth probes the display width.
func ScreenWidth(env Environment) Probe {
	return displayFacet(canonical.FieldScreenWidth, func(d Display) int { return d.Width }, env)
}

// ScreenHeight probes the display height.
func ScreenHeight(env Environment) Probe {
	return displayFacet(canonical.FieldScreenHeight, func(d Display) int { return d.Height }, env)
}

// ColorDepth probes the display color depth.
func ColorDepth(env Environment) Probe {
	return displayFacet(canonical.FieldColorDepth, func(d Display) int { return d.ColorDepth }, env)
}

// PixelDepth probes the display pixel depth.
func PixelDepth(env Environment) Probe {
	return displayFacet(canonical.FieldPixelDepth, func(d Display) int { return d.PixelDepth }, env)
}

// HardwareConcurrency probes the logical core count. Absence is a sentinel,
// never a crash.
func HardwareConcurrency(env Environment) Probe {
	return intFacet(canonical.FieldHardwareConcurrency, env.LogicalCores)
}
