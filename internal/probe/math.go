package probe

import (
	"context"
	"math"

	"github.com/tusharlock10/envseed/internal/canonical"
	"github.com/tusharlock10/envseed/internal/signal"
)

// SentinelMathError is produced when the math battery fails internally.
const SentinelMathError = "math-error"

// seededSequence returns a deterministic float generator with a fixed start
// state. Same sequence on every host, every run.
func seededSequence() func() float64 {
	state := uint32(1)
	return func() float64 {
		state = state*1664525 + 1013904223
		return float64(state) / (1 << 32)
	}
}

// mathEntry is one evaluation of the battery, in record order. Entries that
// draw randomness take it from rnd; the rest ignore it.
type mathEntry struct {
	name string
	eval func(rnd func() float64) float64
}

// mathBattery is the fixed set of transcendental and arithmetic evaluations.
// The inputs never change: numeric differences in the recorded results, and
// the behavior of the edge cases (log of a non-positive number, 0^0, the .5
// rounding family, NaN and the infinities), are the signal.
var mathBattery = []mathEntry{
	{"acos", func(func() float64) float64 { return math.Acos(0.123456789) }},
	{"asin", func(func() float64) float64 { return math.Asin(0.123456789) }},
	{"atan", func(func() float64) float64 { return math.Atan(0.5) }},
	{"atan2", func(func() float64) float64 { return math.Atan2(90.23, 15.9) }},
	{"sin", func(func() float64) float64 { return math.Sin(-1e300) }},
	{"cos", func(func() float64) float64 { return math.Cos(10.000000000123) }},
	{"tan", func(func() float64) float64 { return math.Tan(-1e300) }},
	{"sinh", func(func() float64) float64 { return math.Sinh(1) }},
	{"cosh", func(func() float64) float64 { return math.Cosh(1) }},
	{"tanh", func(func() float64) float64 { return math.Tanh(1) }},
	{"exp", func(func() float64) float64 { return math.Exp(1) }},
	{"expm1", func(func() float64) float64 { return math.Expm1(1) }},
	{"log", func(func() float64) float64 { return math.Log(-1) }},
	{"logZero", func(func() float64) float64 { return math.Log(0) }},
	{"log1p", func(func() float64) float64 { return math.Log1p(10) }},
	{"log10", func(func() float64) float64 { return math.Log10(0.5) }},
	{"sqrtNeg", func(func() float64) float64 { return math.Sqrt(-1) }},
	{"cbrt", func(func() float64) float64 { return math.Cbrt(100) }},
	{"powZeroZero", func(func() float64) float64 { return math.Pow(0, 0) }},
	{"powPi", func(func() float64) float64 { return math.Pow(math.Pi, -100) }},
	{"roundHalf", func(func() float64) float64 { return math.Round(0.5) }},
	{"roundNegHalf", func(func() float64) float64 { return math.Round(-0.5) }},
	{"roundTwoHalf", func(func() float64) float64 { return math.Round(2.5) }},
	{"truncNeg", func(func() float64) float64 { return math.Trunc(-2.5) }},
	{"infinity", func(func() float64) float64 { return math.Inf(1) }},
	{"negInfinity", func(func() float64) float64 { return math.Inf(-1) }},
	{"nan", func(func() float64) float64 { return math.NaN() }},
	{"seededRandom", func(rnd func() float64) float64 { return rnd() }},
}

// Math probes numeric-runtime consistency by evaluating the fixed battery
// and recording the literal results. Every collection owns a fresh seeded
// generator, so concurrent collections share no state.
func Math() Probe {
	return New(canonical.FieldMath, func(context.Context) (out signal.Value) {
		defer func() {
			if r := recover(); r != nil {
				out = signal.Sentinel(SentinelMathError)
			}
		}()

		rnd := seededSequence()
		rec := signal.NewRecord()
		for _, entry := range mathBattery {
			rec.Set(entry.name, signal.Number(entry.eval(rnd)))
		}
		return signal.FromRecord(rec)
	})
}
