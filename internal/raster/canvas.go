package raster

import (
	"context"
	"errors"
	"math"

	"github.com/tusharlock10/envseed/internal/canonical"
	"github.com/tusharlock10/envseed/internal/probe"
	"github.com/tusharlock10/envseed/internal/signal"
)

// Sentinel codes of the 2D raster probe.
const (
	SentinelNoCanvas    = "no-canvas"
	SentinelCanvasError = "canvas-error"
)

// Fixed text drawn by the 2D procedure. The pangram plus emoji exercises
// font rasterization, kerning and color blending in one pass.
const canvasText = "Cwm fjordbank glyphs vext quiz, \U0001F603"

// Canvas probes the 2D raster surface. The drawing procedure is fixed and
// literal: same geometry, same styles, same text on every run. Only the
// host's rasterization of it varies.
func Canvas(src Source) probe.Probe {
	return probe.New(canonical.FieldCanvas, func(ctx context.Context) (out signal.Value) {
		defer func() {
			if r := recover(); r != nil {
				out = signal.Sentinel(SentinelCanvasError)
			}
		}()

		if src == nil {
			return signal.Sentinel(SentinelNoCanvas)
		}
		surf, err := src.Acquire(Context2D)
		if errors.Is(err, ErrNotSupported) {
			return signal.Sentinel(SentinelNoCanvas)
		}
		if err != nil {
			return signal.Sentinel(SentinelCanvasError)
		}
		c, ok := surf.(Canvas2D)
		if !ok {
			surf.Release()
			return signal.Sentinel(SentinelCanvasError)
		}
		defer c.Release()

		c.SetTextBaseline("top")
		c.SetFont("14px 'Arial'")
		c.SetFillStyle("#f60")
		c.FillRect(125, 1, 62, 20)
		c.SetFillStyle("#069")
		c.FillText(canvasText, 2, 15)
		c.SetFillStyle("rgba(102, 204, 0, 0.7)")
		c.FillText(canvasText, 4, 17)

		// Overlapping translucent circles with multiply compositing, a
		// second rasterization path besides text.
		c.SetGlobalCompositeOperation("multiply")
		c.SetFillStyle("rgb(255,0,255)")
		c.BeginPath()
		c.Arc(50, 50, 50, 0, 2*math.Pi)
		c.Fill()
		c.SetFillStyle("rgb(0,255,255)")
		c.BeginPath()
		c.Arc(100, 50, 50, 0, 2*math.Pi)
		c.Fill()
		c.SetFillStyle("rgb(255,255,0)")
		c.BeginPath()
		c.Arc(75, 100, 50, 0, 2*math.Pi)
		c.Fill()

		encoded, err := c.Export()
		if err != nil {
			return signal.Sentinel(SentinelCanvasError)
		}
		return signal.String(encoded)
	})
}
