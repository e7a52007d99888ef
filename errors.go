package sketch

import "errors"

// Package errors. Lookup failures surface immediately to the caller of
// the failing operation and never corrupt canvas state; during a flush,
// commands referencing missing handles are logged and skipped instead.
var (
	// ErrCanvasNotFound is returned when a Canvas handle is invalid.
	ErrCanvasNotFound = errors.New("sketch: canvas not found")

	// ErrGeometryNotFound is returned when a geometry or mesh handle
	// does not reference a live asset.
	ErrGeometryNotFound = errors.New("sketch: geometry not found")

	// ErrMaterialNotFound is returned when a material handle does not
	// reference a live asset.
	ErrMaterialNotFound = errors.New("sketch: material not found")

	// ErrLayoutNotFound is returned when a vertex layout handle is
	// invalid.
	ErrLayoutNotFound = errors.New("sketch: layout not found")

	// ErrUnsupportedPixelFormat is returned for texture formats the
	// pixel codec does not handle.
	ErrUnsupportedPixelFormat = errors.New("sketch: unsupported pixel format")

	// ErrInvalidArgument is returned for malformed inputs such as
	// pixel-buffer length mismatches or out-of-bounds regions. It is
	// always wrapped with detail.
	ErrInvalidArgument = errors.New("sketch: invalid argument")
)
