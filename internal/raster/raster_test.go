package raster

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// fakeCanvas records the operations applied to it and exports a fixed
// encoding.
type fakeCanvas struct {
	ops       []string
	exported  string
	exportErr error
	released  bool
}

func (f *fakeCanvas) op(name string)                     { f.ops = append(f.ops, name) }
func (f *fakeCanvas) SetFillStyle(string)                { f.op("fillStyle") }
func (f *fakeCanvas) FillRect(_, _, _, _ float64)        { f.op("fillRect") }
func (f *fakeCanvas) SetFont(string)                     { f.op("font") }
func (f *fakeCanvas) SetTextBaseline(string)             { f.op("textBaseline") }
func (f *fakeCanvas) FillText(_ string, _, _ float64)    { f.op("fillText") }
func (f *fakeCanvas) BeginPath()                         { f.op("beginPath") }
func (f *fakeCanvas) Arc(_, _, _, _, _ float64)          { f.op("arc") }
func (f *fakeCanvas) Fill()                              { f.op("fill") }
func (f *fakeCanvas) SetGlobalCompositeOperation(string) { f.op("composite") }
func (f *fakeCanvas) Export() (string, error)            { return f.exported, f.exportErr }
func (f *fakeCanvas) Release()                           { f.released = true }

// fakeGL is a shader surface with scriptable failure points.
type fakeGL struct {
	compileErr error
	exported   string
	exportErr  error
	info       Info
	infoErr    error

	released bool
	drawn    int
	uniforms map[string]float64
}

func (f *fakeGL) CompileProgram(v, fs string) error {
	if f.compileErr != nil {
		return f.compileErr
	}
	if v == "" || fs == "" {
		return errors.New("empty shader source")
	}
	return nil
}
func (f *fakeGL) BindQuad()                     {}
func (f *fakeGL) Viewport(_, _ int)             {}
func (f *fakeGL) ClearColor(_, _, _, _ float64) {}
func (f *fakeGL) Clear()                        {}
func (f *fakeGL) SetUniform1f(name string, v float64) {
	if f.uniforms == nil {
		f.uniforms = map[string]float64{}
	}
	f.uniforms[name] = v
}
func (f *fakeGL) Draw()                     { f.drawn++ }
func (f *fakeGL) Export() (string, error)   { return f.exported, f.exportErr }
func (f *fakeGL) Release()                  { f.released = true }
func (f *fakeGL) VendorInfo() (Info, error) { return f.info, f.infoErr }

// fakeSource hands out surfaces per context kind, recording acquisition
// order.
type fakeSource struct {
	surfaces map[ContextKind]Surface
	errs     map[ContextKind]error
	acquired []ContextKind
}

func (f *fakeSource) Acquire(kind ContextKind) (Surface, error) {
	f.acquired = append(f.acquired, kind)
	if err, ok := f.errs[kind]; ok {
		return nil, err
	}
	if s, ok := f.surfaces[kind]; ok {
		return s, nil
	}
	return nil, ErrNotSupported
}

// --- Canvas probe ---

func TestCanvasProbeExportsFixedProcedure(t *testing.T) {
	canvas := &fakeCanvas{exported: "data:image/png;base64,AAAA"}
	src := &fakeSource{surfaces: map[ContextKind]Surface{Context2D: canvas}}

	v := Canvas(src).Collect(context.Background())
	if v.Text() != "data:image/png;base64,AAAA" {
		t.Fatalf("canvas = %v, want exported encoding", v)
	}
	if !canvas.released {
		t.Fatal("canvas surface was not released")
	}
	// The procedure must touch every drawing facility it claims to use.
	joined := strings.Join(canvas.ops, ",")
	for _, op := range []string{"textBaseline", "font", "fillStyle", "fillRect", "fillText", "composite", "arc", "fill"} {
		if !strings.Contains(joined, op) {
			t.Fatalf("procedure never performed %q: %v", op, canvas.ops)
		}
	}
}

func TestCanvasProbeDeterministicOps(t *testing.T) {
	run := func() []string {
		canvas := &fakeCanvas{exported: "x"}
		src := &fakeSource{surfaces: map[ContextKind]Surface{Context2D: canvas}}
		Canvas(src).Collect(context.Background())
		return canvas.ops
	}
	if a, b := strings.Join(run(), ","), strings.Join(run(), ","); a != b {
		t.Fatalf("drawing procedure not fixed:\n%s\n%s", a, b)
	}
}

func TestCanvasProbeAbsentSurface(t *testing.T) {
	v := Canvas(&fakeSource{}).Collect(context.Background())
	if v.SentinelCode() != SentinelNoCanvas {
		t.Fatalf("canvas = %v, want %s", v, SentinelNoCanvas)
	}
	if v := Canvas(nil).Collect(context.Background()); v.SentinelCode() != SentinelNoCanvas {
		t.Fatalf("canvas with nil source = %v, want %s", v, SentinelNoCanvas)
	}
}

func TestCanvasProbeFailure(t *testing.T) {
	src := &fakeSource{errs: map[ContextKind]error{Context2D: errors.New("context lost")}}
	if v := Canvas(src).Collect(context.Background()); v.SentinelCode() != SentinelCanvasError {
		t.Fatalf("canvas = %v, want %s", v, SentinelCanvasError)
	}

	canvas := &fakeCanvas{exportErr: errors.New("export refused")}
	src = &fakeSource{surfaces: map[ContextKind]Surface{Context2D: canvas}}
	if v := Canvas(src).Collect(context.Background()); v.SentinelCode() != SentinelCanvasError {
		t.Fatalf("canvas = %v, want %s", v, SentinelCanvasError)
	}
	if !canvas.released {
		t.Fatal("surface leaked on export failure")
	}
}

// --- Shader probe ---

func TestWebGLProbePrefersHigherCapabilitySurface(t *testing.T) {
	gl2 := &fakeGL{exported: "gl2-pixels"}
	gl1 := &fakeGL{exported: "gl1-pixels"}
	src := &fakeSource{surfaces: map[ContextKind]Surface{ContextGL2: gl2, ContextGL: gl1}}

	v := WebGL(src).Collect(context.Background())
	if v.Text() != "gl2-pixels" {
		t.Fatalf("webgl = %v, want gl2 export", v)
	}
	if src.acquired[0] != ContextGL2 {
		t.Fatalf("acquisition order = %v, want webgl2 first", src.acquired)
	}
	if gl2.drawn != 1 {
		t.Fatalf("draw calls = %d, want exactly 1", gl2.drawn)
	}
	if got := gl2.uniforms["u_time"]; got != uniformTime {
		t.Fatalf("u_time = %v, want fixed constant %v", got, uniformTime)
	}
	if !gl2.released {
		t.Fatal("gl2 surface was not released")
	}
}

func TestWebGLProbeFallsBackInPreferenceOrder(t *testing.T) {
	gl1 := &fakeGL{exported: "gl1-pixels"}
	src := &fakeSource{surfaces: map[ContextKind]Surface{ContextGL: gl1}}

	v := WebGL(src).Collect(context.Background())
	if v.Text() != "gl1-pixels" {
		t.Fatalf("webgl = %v, want gl1 export", v)
	}
	if len(src.acquired) != 2 || src.acquired[0] != ContextGL2 || src.acquired[1] != ContextGL {
		t.Fatalf("acquisition order = %v, want [webgl2 webgl]", src.acquired)
	}
}

func TestWebGLProbeAbsentSurface(t *testing.T) {
	if v := WebGL(&fakeSource{}).Collect(context.Background()); v.SentinelCode() != SentinelNoWebGL {
		t.Fatalf("webgl = %v, want %s", v, SentinelNoWebGL)
	}
	if v := WebGL(nil).Collect(context.Background()); v.SentinelCode() != SentinelNoWebGL {
		t.Fatalf("webgl with nil source = %v, want %s", v, SentinelNoWebGL)
	}
}

func TestWebGLProbeCompileFailureCarriesDiagnostic(t *testing.T) {
	gl := &fakeGL{compileErr: errors.New("0:12: 'atan' : no matching overload")}
	src := &fakeSource{surfaces: map[ContextKind]Surface{ContextGL2: gl}}

	v := WebGL(src).Collect(context.Background())
	code := v.SentinelCode()
	if !strings.HasPrefix(code, SentinelWebGLError) {
		t.Fatalf("webgl = %v, want %s sentinel", v, SentinelWebGLError)
	}
	if !strings.Contains(code, "no matching overload") {
		t.Fatalf("sentinel lost the host diagnostic: %q", code)
	}
	if !gl.released {
		t.Fatal("surface leaked on compile failure")
	}
}

// --- Metadata probe ---

func TestWebGLInfoProbe(t *testing.T) {
	gl := &fakeGL{info: Info{Vendor: "X", Renderer: "Y", Version: "WebGL 2.0"}}
	src := &fakeSource{surfaces: map[ContextKind]Surface{ContextGL2: gl}}

	v := WebGLInfo(src).Collect(context.Background())
	want := `{"vendor":"X","renderer":"Y","version":"WebGL 2.0"}`
	if got := v.Encode(); got != want {
		t.Fatalf("webglInfo = %s, want %s", got, want)
	}
	if !gl.released {
		t.Fatal("surface was not released")
	}
}

func TestWebGLInfoProbeAbsent(t *testing.T) {
	if v := WebGLInfo(&fakeSource{}).Collect(context.Background()); v.SentinelCode() != SentinelNoWebGL {
		t.Fatalf("webglInfo = %v, want %s", v, SentinelNoWebGL)
	}
}
