package sketch

// ContextOption configures a Context during creation.
//
// Example:
//
//	ctx := sketch.NewContext(reg, dev,
//	    sketch.WithTextureFormat(sketch.TextureFormatRGBA16Float),
//	    sketch.WithDepthEpsilon(0.0005))
type ContextOption func(*contextOptions)

// contextOptions holds optional configuration for Context creation.
type contextOptions struct {
	format       TextureFormat
	depthEpsilon float32
}

// defaultContextOptions returns the default context options.
func defaultContextOptions() contextOptions {
	return contextOptions{
		format:       TextureFormatRGBA8UnormSRGB,
		depthEpsilon: 0.001,
	}
}

// WithTextureFormat sets the default backing-texture format for
// canvases created by the context.
func WithTextureFormat(f TextureFormat) ContextOption {
	return func(o *contextOptions) {
		o.format = f
	}
}

// WithDepthEpsilon sets the per-batch depth offset step. Batch n of a
// flush is spawned at Z = -n * epsilon so later batches render on top
// of earlier ones under a depth test.
func WithDepthEpsilon(eps float32) ContextOption {
	return func(o *contextOptions) {
		if eps > 0 {
			o.depthEpsilon = eps
		}
	}
}

// CanvasOption configures a single canvas during creation.
type CanvasOption func(*canvasOptions)

// canvasOptions holds optional configuration for canvas creation.
type canvasOptions struct {
	format TextureFormat // zero means "use the context default"
}

// WithCanvasFormat overrides the context's default backing-texture
// format for one canvas.
func WithCanvasFormat(f TextureFormat) CanvasOption {
	return func(o *canvasOptions) {
		o.format = f
	}
}
