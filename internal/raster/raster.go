// Package raster drives an external raster surface through fixed, literal
// drawing and shader procedures and captures its native export encoding as a
// signal. The probes never inspect pixel values: the exported string itself
// is the signal, and low-level numeric non-portability across hosts (driver,
// GPU, shader compiler rounding) is the intended payload, while repeated
// runs on the same host must stay byte-identical.
package raster

import "errors"

// ErrNotSupported reports a legitimately absent surface type. It routes the
// raster probes to their "not supported" sentinels rather than error ones.
var ErrNotSupported = errors.New("raster: surface type not supported")

// ContextKind names a surface type in the acquisition preference order.
type ContextKind string

const (
	Context2D  ContextKind = "2d"
	ContextGL2 ContextKind = "webgl2"
	ContextGL  ContextKind = "webgl"
)

// glPreference is the fixed fallback order for shader-capable surfaces:
// higher-capability first.
var glPreference = []ContextKind{ContextGL2, ContextGL}

// Source is the external raster capability. Acquire returns ErrNotSupported
// for surface types the host does not have; any other error is a capability
// failure at call time.
type Source interface {
	Acquire(kind ContextKind) (Surface, error)
}

// Surface is the common part of every acquired surface.
type Surface interface {
	// Export returns the surface content in its native deterministic
	// string encoding.
	Export() (string, error)
	// Release frees transient resources. Safe to call exactly once.
	Release()
}

// Canvas2D is a 2D drawing surface.
type Canvas2D interface {
	Surface
	SetFillStyle(style string)
	FillRect(x, y, w, h float64)
	SetFont(font string)
	SetTextBaseline(baseline string)
	FillText(text string, x, y float64)
	BeginPath()
	Arc(x, y, radius, start, end float64)
	Fill()
	SetGlobalCompositeOperation(op string)
}

// Info is the metadata a shader surface reports about its implementation.
type Info struct {
	Vendor   string
	Renderer string
	Version  string
}

// GLSurface is a shader-driven surface. CompileProgram must report compile
// or link failure through its error, carrying the host diagnostic text.
type GLSurface interface {
	Surface
	CompileProgram(vertexSrc, fragmentSrc string) error
	BindQuad()
	Viewport(width, height int)
	ClearColor(r, g, b, a float64)
	Clear()
	SetUniform1f(name string, value float64)
	Draw()
	VendorInfo() (Info, error)
}

// acquireGL walks the fixed preference order and returns the first
// shader-capable surface, or ErrNotSupported when none exists.
func acquireGL(src Source) (GLSurface, error) {
	if src == nil {
		return nil, ErrNotSupported
	}
	for _, kind := range glPreference {
		surf, err := src.Acquire(kind)
		if errors.Is(err, ErrNotSupported) {
			continue
		}
		if err != nil {
			return nil, err
		}
		gl, ok := surf.(GLSurface)
		if !ok {
			surf.Release()
			return nil, errors.New("raster: surface is not shader-capable")
		}
		return gl, nil
	}
	return nil, ErrNotSupported
}
