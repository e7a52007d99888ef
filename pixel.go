package sketch

import "fmt"

// TextureFormat identifies the texel encoding of a canvas backing
// texture. Only formats the pixel codec understands are listed; a
// Device may support fewer.
type TextureFormat uint8

const (
	// TextureFormatRGBA8Unorm is 8 bits per channel, linear.
	TextureFormatRGBA8Unorm TextureFormat = iota + 1

	// TextureFormatRGBA8UnormSRGB is 8 bits per channel with sRGB
	// sampling semantics on the GPU. The codec treats the bytes the
	// same as RGBA8Unorm; the transfer function is applied by texture
	// hardware, not by the codec.
	TextureFormatRGBA8UnormSRGB

	// TextureFormatRGBA16Float is an IEEE half-float per channel.
	TextureFormatRGBA16Float

	// TextureFormatRGBA32Float is an IEEE single-float per channel.
	TextureFormatRGBA32Float
)

// String returns the WebGPU-style name of the format.
func (f TextureFormat) String() string {
	switch f {
	case TextureFormatRGBA8Unorm:
		return "rgba8unorm"
	case TextureFormatRGBA8UnormSRGB:
		return "rgba8unorm-srgb"
	case TextureFormatRGBA16Float:
		return "rgba16float"
	case TextureFormatRGBA32Float:
		return "rgba32float"
	default:
		return fmt.Sprintf("TextureFormat(%d)", uint8(f))
	}
}

// PixelSize returns the number of bytes per texel for the format.
func PixelSize(f TextureFormat) (int, error) {
	switch f {
	case TextureFormatRGBA8Unorm, TextureFormatRGBA8UnormSRGB:
		return 4, nil
	case TextureFormatRGBA16Float:
		return 8, nil
	case TextureFormatRGBA32Float:
		return 16, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedPixelFormat, f)
	}
}
