package raster

import (
	"context"
	"errors"

	"github.com/tusharlock10/envseed/internal/canonical"
	"github.com/tusharlock10/envseed/internal/probe"
	"github.com/tusharlock10/envseed/internal/signal"
)

// Sentinel codes of the shader raster and metadata probes.
const (
	SentinelNoWebGL    = "no-webgl"
	SentinelWebGLError = "webgl-error"
)

// Fixed shader sources. The fragment stage leans on transcendental functions
// whose rounding differs across shader compilers; u_time is bound to a
// constant so the output depends only on the host, never on the clock.
const (
	vertexShaderSrc = `attribute vec2 a_position;
varying vec2 v_uv;
void main() {
  v_uv = a_position * 0.5 + 0.5;
  gl_Position = vec4(a_position, 0.0, 1.0);
}`

	fragmentShaderSrc = `precision highp float;
varying vec2 v_uv;
uniform float u_time;
void main() {
  float r = sin(v_uv.x * 97.0 + u_time) * cos(v_uv.y * 41.0);
  float g = pow(v_uv.x + 0.001, 2.2) * exp(v_uv.y - 0.5);
  float b = atan(v_uv.y * 13.0, v_uv.x + 0.1) / 3.14159265;
  gl_FragColor = vec4(r * 0.5 + 0.5, g, b, 1.0);
}`
)

// Fixed draw parameters.
const (
	viewportWidth  = 256
	viewportHeight = 128
	uniformTime    = 0.0
)

// WebGL probes the shader raster surface: acquire in fixed preference order,
// compile the fixed program, bind a full-surface quad, one draw call, export.
// An absent surface type is a legitimate "no-webgl"; a compile/link or
// export failure is a "webgl-error" sentinel carrying the host diagnostic.
func WebGL(src Source) probe.Probe {
	return probe.New(canonical.FieldWebGL, func(ctx context.Context) (out signal.Value) {
		defer func() {
			if r := recover(); r != nil {
				out = signal.Sentinel(SentinelWebGLError)
			}
		}()

		gl, err := acquireGL(src)
		if errors.Is(err, ErrNotSupported) {
			return signal.Sentinel(SentinelNoWebGL)
		}
		if err != nil {
			return signal.Sentinel(SentinelWebGLError)
		}
		defer gl.Release()

		if err := gl.CompileProgram(vertexShaderSrc, fragmentShaderSrc); err != nil {
			// Keep the host-reported diagnostic: compiler error text is
			// itself host-dependent signal.
			return signal.Sentinel(SentinelWebGLError + ": " + err.Error())
		}

		gl.BindQuad()
		gl.Viewport(viewportWidth, viewportHeight)
		gl.ClearColor(0.25, 0.5, 0.75, 1.0)
		gl.Clear()
		gl.SetUniform1f("u_time", uniformTime)
		gl.Draw()

		encoded, err := gl.Export()
		if err != nil {
			return signal.Sentinel(SentinelWebGLError + ": " + err.Error())
		}
		return signal.String(encoded)
	})
}

// WebGLInfo probes the shader surface's implementation metadata: vendor,
// renderer and version strings as a nested record.
func WebGLInfo(src Source) probe.Probe {
	return probe.New(canonical.FieldWebGLInfo, func(ctx context.Context) (out signal.Value) {
		defer func() {
			if r := recover(); r != nil {
				out = signal.Sentinel(SentinelWebGLError)
			}
		}()

		gl, err := acquireGL(src)
		if errors.Is(err, ErrNotSupported) {
			return signal.Sentinel(SentinelNoWebGL)
		}
		if err != nil {
			return signal.Sentinel(SentinelWebGLError)
		}
		defer gl.Release()

		info, err := gl.VendorInfo()
		if err != nil {
			return signal.Sentinel(SentinelWebGLError + ": " + err.Error())
		}

		rec := signal.NewRecord()
		rec.Set("vendor", signal.String(info.Vendor))
		rec.Set("renderer", signal.String(info.Renderer))
		rec.Set("version", signal.String(info.Version))
		return signal.FromRecord(rec)
	})
}
