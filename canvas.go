package sketch

import (
	"fmt"

	"github.com/gogpu/sketch/mesh"
)

// Canvas is an opaque handle to a drawable surface owned by a Context.
type Canvas uint64

// transient tracks one drawable spawned by the previous flush together
// with the batch-owned assets destroyed when it is retired. Zero mesh
// or material handles mark caller-owned assets that must survive.
type transient struct {
	drawable DrawableHandle
	mesh     MeshHandle
	material MaterialHandle
}

// canvasState is everything a canvas owns: its command log, paint
// state, backing texture, render layer, and the transient drawables of
// the last flush.
type canvasState struct {
	width, height int
	format        TextureFormat
	texture       TextureHandle
	layer         uint8
	log           []Command
	state         renderState
	transients    []transient
}

// Context owns an arena of canvases and the references to the external
// collaborators (asset registry, GPU device). All operations take the
// canvas handle explicitly; there is no hidden global state.
//
// A Context is single-threaded per canvas: all Record/BeginDraw/Flush
// and pixel operations for one canvas must come from the goroutine that
// owns the rendering context. There is no internal locking. Multiple
// canvases may be driven independently, but the Context does not
// provide cross-canvas synchronization.
type Context struct {
	registry Registry
	device   Device
	opts     contextOptions

	nextID   uint64
	canvases map[Canvas]*canvasState
	layers   layerAllocator

	geometries map[Geometry]*mesh.Builder
	layouts    map[LayoutHandle]mesh.Layout
	nextHandle uint64
}

// NewContext creates a context backed by the given collaborators.
func NewContext(reg Registry, dev Device, opts ...ContextOption) *Context {
	o := defaultContextOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Context{
		registry:   reg,
		device:     dev,
		opts:       o,
		canvases:   make(map[Canvas]*canvasState),
		geometries: make(map[Geometry]*mesh.Builder),
		layouts:    make(map[LayoutHandle]mesh.Layout),
	}
}

// canvas resolves a canvas handle.
func (ctx *Context) canvas(c Canvas) (*canvasState, error) {
	cs, ok := ctx.canvases[c]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrCanvasNotFound, c)
	}
	return cs, nil
}

// CreateCanvas allocates a canvas with a backing texture of the given
// size. Exactly one canvas should exist per logical output surface.
func (ctx *Context) CreateCanvas(width, height int, opts ...CanvasOption) (Canvas, error) {
	if width <= 0 || height <= 0 {
		return 0, fmt.Errorf("%w: canvas size %dx%d", ErrInvalidArgument, width, height)
	}
	o := canvasOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	format := o.format
	if format == 0 {
		format = ctx.opts.format
	}
	if _, err := PixelSize(format); err != nil {
		return 0, err
	}

	tex, err := ctx.device.CreateTexture(width, height, format)
	if err != nil {
		return 0, fmt.Errorf("create canvas texture: %w", err)
	}

	ctx.nextID++
	c := Canvas(ctx.nextID)
	ctx.canvases[c] = &canvasState{
		width:  width,
		height: height,
		format: format,
		texture: tex,
		layer:  ctx.layers.allocate(),
		state:  defaultRenderState(),
	}
	Logger().Debug("sketch: canvas created", "canvas", uint64(c), "size", fmt.Sprintf("%dx%d", width, height), "format", format)
	return c, nil
}

// DestroyCanvas retires the canvas's transient drawables, frees its
// backing texture, and releases its render layer.
func (ctx *Context) DestroyCanvas(c Canvas) error {
	cs, err := ctx.canvas(c)
	if err != nil {
		return err
	}
	ctx.retire(cs)
	if err := ctx.device.DestroyTexture(cs.texture); err != nil {
		Logger().Warn("sketch: destroy canvas texture", "canvas", uint64(c), "error", err)
	}
	ctx.layers.release(cs.layer)
	delete(ctx.canvases, c)
	return nil
}

// ResizeCanvas recreates the backing texture at the new size. Pending
// commands and paint state are kept; the next readback reflects the new
// dimensions.
func (ctx *Context) ResizeCanvas(c Canvas, width, height int) error {
	cs, err := ctx.canvas(c)
	if err != nil {
		return err
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: canvas size %dx%d", ErrInvalidArgument, width, height)
	}
	if width == cs.width && height == cs.height {
		return nil
	}
	tex, err := ctx.device.CreateTexture(width, height, cs.format)
	if err != nil {
		return fmt.Errorf("resize canvas texture: %w", err)
	}
	if err := ctx.device.DestroyTexture(cs.texture); err != nil {
		Logger().Warn("sketch: destroy old canvas texture", "canvas", uint64(c), "error", err)
	}
	cs.texture = tex
	cs.width, cs.height = width, height
	return nil
}

// Size returns the canvas dimensions in pixels.
func (ctx *Context) Size(c Canvas) (int, int, error) {
	cs, err := ctx.canvas(c)
	if err != nil {
		return 0, 0, err
	}
	return cs.width, cs.height, nil
}

// Format returns the canvas backing-texture format.
func (ctx *Context) Format(c Canvas) (TextureFormat, error) {
	cs, err := ctx.canvas(c)
	if err != nil {
		return 0, err
	}
	return cs.format, nil
}

// Texture returns the canvas's backing texture handle, for callers that
// bind it to an external surface.
func (ctx *Context) Texture(c Canvas) (TextureHandle, error) {
	cs, err := ctx.canvas(c)
	if err != nil {
		return 0, err
	}
	return cs.texture, nil
}

// Record appends a command to the canvas's log. Recording is O(1) and
// never touches the GPU; all work happens at flush.
func (ctx *Context) Record(c Canvas, cmd Command) error {
	cs, err := ctx.canvas(c)
	if err != nil {
		return err
	}
	cs.log = append(cs.log, cmd)
	return nil
}

// BeginDraw resets the canvas's paint and transform state to the
// defaults (white fill, black stroke, weight 1, identity transform).
// This is the only operation that resets render state; Flush does not.
func (ctx *Context) BeginDraw(c Canvas) error {
	cs, err := ctx.canvas(c)
	if err != nil {
		return err
	}
	cs.state = defaultRenderState()
	return nil
}

// EndDraw flushes any commands still recorded so the frame is complete
// before it is presented.
func (ctx *Context) EndDraw(c Canvas) error {
	return ctx.Flush(c)
}

// ReadPixels copies the canvas's current texture contents into linear
// colors, row-major with the origin at the top left. The copy blocks
// until the GPU readback completes (see Device.ReadTexture).
func (ctx *Context) ReadPixels(c Canvas) ([]Color, error) {
	cs, err := ctx.canvas(c)
	if err != nil {
		return nil, err
	}
	data, pitch, err := ctx.device.ReadTexture(cs.texture)
	if err != nil {
		return nil, fmt.Errorf("read canvas texture: %w", err)
	}
	return BytesToColors(data, cs.format, cs.width, cs.height, pitch)
}

// WritePixels writes a rectangular region of linear colors into the
// canvas texture. pixels must hold exactly width*height colors in
// row-major order and the region must lie within the canvas bounds.
func (ctx *Context) WritePixels(c Canvas, x, y, width, height int, pixels []Color) error {
	cs, err := ctx.canvas(c)
	if err != nil {
		return err
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: region size %dx%d", ErrInvalidArgument, width, height)
	}
	if x < 0 || y < 0 || x+width > cs.width || y+height > cs.height {
		return fmt.Errorf("%w: region %d,%d %dx%d outside canvas %dx%d",
			ErrInvalidArgument, x, y, width, height, cs.width, cs.height)
	}
	if len(pixels) != width*height {
		return fmt.Errorf("%w: %d pixels for %dx%d region",
			ErrInvalidArgument, len(pixels), width, height)
	}
	data, err := ColorsToBytes(pixels, cs.format)
	if err != nil {
		return err
	}
	return ctx.device.WriteTexture(cs.texture, x, y, width, height, data)
}

// retire despawns the transient drawables of the previous flush and
// destroys the batch-owned meshes and materials behind them.
func (ctx *Context) retire(cs *canvasState) {
	for _, t := range cs.transients {
		if err := ctx.registry.Despawn(t.drawable); err != nil {
			Logger().Warn("sketch: despawn transient", "drawable", uint64(t.drawable), "error", err)
		}
		if t.mesh != 0 {
			if err := ctx.registry.DestroyMesh(t.mesh); err != nil {
				Logger().Warn("sketch: destroy batch mesh", "mesh", uint64(t.mesh), "error", err)
			}
		}
		if t.material != 0 {
			if err := ctx.registry.DestroyMaterial(t.material); err != nil {
				Logger().Warn("sketch: destroy batch material", "material", uint64(t.material), "error", err)
			}
		}
	}
	cs.transients = cs.transients[:0]
}

// layerAllocator hands out render-layer tags so each canvas's drawables
// are visible only to that canvas's camera. Released layers are reused.
type layerAllocator struct {
	free []uint8
	next uint8
}

func (a *layerAllocator) allocate() uint8 {
	if n := len(a.free); n > 0 {
		l := a.free[n-1]
		a.free = a.free[:n-1]
		return l
	}
	if a.next == 255 {
		Logger().Warn("sketch: render layers exhausted, reusing layer 255")
		return 255
	}
	a.next++
	return a.next
}

func (a *layerAllocator) release(l uint8) {
	if l != 0 && l != 255 {
		a.free = append(a.free, l)
	}
}
