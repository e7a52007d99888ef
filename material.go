package sketch

import "fmt"

// MaterialKind discriminates the MaterialKey union.
type MaterialKind uint8

const (
	// MaterialColor is an unlit flat-color material, optionally
	// textured with a background image.
	MaterialColor MaterialKind = iota

	// MaterialPbr is a lit material with scalar/color PBR properties.
	MaterialPbr

	// MaterialCustom references an explicitly created material.
	MaterialCustom
)

// MaterialKey describes what a piece of geometry would be rendered
// with, prior to any GPU resource allocation. Keys are comparable;
// equality across all fields drives batch splitting during a flush.
//
// For MaterialColor, Transparent is derived from the paint color's
// alpha at the time the key is built, never stored independently.
// PBR properties are quantized to bytes so the key stays comparable.
type MaterialKey struct {
	Kind        MaterialKind
	Transparent bool
	Background  ImageHandle // MaterialColor only; 0 means untextured

	Albedo    [4]uint8 // MaterialPbr only
	Roughness uint8
	Metallic  uint8
	Emissive  [4]uint8
	Unlit     bool

	Custom MaterialHandle // MaterialCustom only
}

// DefaultMaterialKey returns the render-state default: opaque white,
// untextured flat color.
func DefaultMaterialKey() MaterialKey {
	return MaterialKey{Kind: MaterialColor}
}

// defaultPbrKey mirrors a stock lit material: white albedo, mid
// roughness, no metalness, black emissive.
func defaultPbrKey() MaterialKey {
	return MaterialKey{
		Kind:      MaterialPbr,
		Albedo:    [4]uint8{255, 255, 255, 255},
		Roughness: 128,
		Emissive:  [4]uint8{0, 0, 0, 255},
	}
}

// shapeKey derives the key for one shape pass drawn with the given
// paint color. Flat-color keys pick up the pass color's transparency;
// PBR and custom keys pass through unchanged so explicit materials
// batch as-is.
func (k MaterialKey) shapeKey(c Color) MaterialKey {
	if k.Kind != MaterialColor {
		return k
	}
	return MaterialKey{
		Kind:        MaterialColor,
		Transparent: !c.Opaque(),
		Background:  k.Background,
	}
}

// withBackground returns a flat-color key textured with the image.
func (k MaterialKey) withBackground(img ImageHandle, transparent bool) MaterialKey {
	return MaterialKey{Kind: MaterialColor, Transparent: transparent, Background: img}
}

// applyProperty sets one named PBR property, switching the key to the
// PBR kind if it is not already. Unknown names and mismatched value
// types are errors; the flush engine logs and skips them.
func (k MaterialKey) applyProperty(name string, value MaterialValue) (MaterialKey, error) {
	if k.Kind != MaterialPbr {
		k = defaultPbrKey()
	}
	switch name {
	case "base_color", "color":
		c, ok := value.(ColorValue)
		if !ok {
			return k, fmt.Errorf("%w: %q expects a color", ErrInvalidArgument, name)
		}
		k.Albedo = quantizeRGBA(Color(c))
	case "emissive":
		c, ok := value.(ColorValue)
		if !ok {
			return k, fmt.Errorf("%w: %q expects a color", ErrInvalidArgument, name)
		}
		k.Emissive = quantizeRGBA(Color(c))
	case "roughness", "perceptual_roughness":
		f, ok := value.(FloatValue)
		if !ok {
			return k, fmt.Errorf("%w: %q expects a float", ErrInvalidArgument, name)
		}
		k.Roughness = quantize(float32(f))
	case "metallic":
		f, ok := value.(FloatValue)
		if !ok {
			return k, fmt.Errorf("%w: %q expects a float", ErrInvalidArgument, name)
		}
		k.Metallic = quantize(float32(f))
	case "unlit":
		b, ok := value.(BoolValue)
		if !ok {
			return k, fmt.Errorf("%w: %q expects a bool", ErrInvalidArgument, name)
		}
		k.Unlit = bool(b)
	default:
		return k, fmt.Errorf("%w: unknown material property %q", ErrInvalidArgument, name)
	}
	return k, nil
}

// quantizeRGBA maps a linear color to per-channel bytes for key storage.
func quantizeRGBA(c Color) [4]uint8 {
	return [4]uint8{quantize(c.R), quantize(c.G), quantize(c.B), quantize(c.A)}
}

// materialize turns the key into a renderable material handle through
// the registry. Custom keys return the referenced handle without
// allocating; the returned bool reports whether the caller owns the
// handle and must destroy it when the batch is retired. Materializing
// may allocate a GPU resource, so the flush engine calls it once per
// batch, not once per shape.
func (k MaterialKey) materialize(reg Registry) (MaterialHandle, bool, error) {
	if k.Kind == MaterialCustom {
		return k.Custom, false, nil
	}
	h, err := reg.CreateMaterial(k)
	if err != nil {
		return 0, false, err
	}
	return h, true, nil
}
