package sketch

import (
	"encoding/binary"
	"fmt"
	"math"
)

// ColorsToBytes encodes linear colors into the texel layout of the
// given format, tightly packed with no row padding. This is the
// encoding used for writes to a texture region.
func ColorsToBytes(colors []Color, format TextureFormat) ([]byte, error) {
	size, err := PixelSize(format)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(colors)*size)

	switch format {
	case TextureFormatRGBA8Unorm, TextureFormatRGBA8UnormSRGB:
		for i, c := range colors {
			o := i * 4
			out[o] = quantize(c.R)
			out[o+1] = quantize(c.G)
			out[o+2] = quantize(c.B)
			out[o+3] = quantize(c.A)
		}
	case TextureFormatRGBA16Float:
		for i, c := range colors {
			o := i * 8
			binary.LittleEndian.PutUint16(out[o:], float32ToHalf(c.R))
			binary.LittleEndian.PutUint16(out[o+2:], float32ToHalf(c.G))
			binary.LittleEndian.PutUint16(out[o+4:], float32ToHalf(c.B))
			binary.LittleEndian.PutUint16(out[o+6:], float32ToHalf(c.A))
		}
	case TextureFormatRGBA32Float:
		for i, c := range colors {
			o := i * 16
			binary.LittleEndian.PutUint32(out[o:], math.Float32bits(c.R))
			binary.LittleEndian.PutUint32(out[o+4:], math.Float32bits(c.G))
			binary.LittleEndian.PutUint32(out[o+8:], math.Float32bits(c.B))
			binary.LittleEndian.PutUint32(out[o+12:], math.Float32bits(c.A))
		}
	}
	return out, nil
}

// BytesToColors decodes a GPU readback buffer into linear colors,
// stripping per-row padding. Readback buffers pad each row up to a
// device-specific alignment, so the decoder walks height rows of
// paddedBytesPerRow bytes and decodes only the first
// width*PixelSize(format) bytes of each.
func BytesToColors(data []byte, format TextureFormat, width, height, paddedBytesPerRow int) ([]Color, error) {
	size, err := PixelSize(format)
	if err != nil {
		return nil, err
	}
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("%w: negative dimensions %dx%d", ErrInvalidArgument, width, height)
	}
	rowBytes := width * size
	if paddedBytesPerRow < rowBytes {
		return nil, fmt.Errorf("%w: padded row %d shorter than row data %d",
			ErrInvalidArgument, paddedBytesPerRow, rowBytes)
	}
	if height > 0 && len(data) < (height-1)*paddedBytesPerRow+rowBytes {
		return nil, fmt.Errorf("%w: buffer %d bytes, need %d for %dx%d rows of %d",
			ErrInvalidArgument, len(data), (height-1)*paddedBytesPerRow+rowBytes,
			width, height, paddedBytesPerRow)
	}

	out := make([]Color, 0, width*height)
	for row := 0; row < height; row++ {
		line := data[row*paddedBytesPerRow:]
		switch format {
		case TextureFormatRGBA8Unorm, TextureFormatRGBA8UnormSRGB:
			for x := 0; x < width; x++ {
				o := x * 4
				out = append(out, Color{
					R: float32(line[o]) / 255,
					G: float32(line[o+1]) / 255,
					B: float32(line[o+2]) / 255,
					A: float32(line[o+3]) / 255,
				})
			}
		case TextureFormatRGBA16Float:
			for x := 0; x < width; x++ {
				o := x * 8
				out = append(out, Color{
					R: halfToFloat32(binary.LittleEndian.Uint16(line[o:])),
					G: halfToFloat32(binary.LittleEndian.Uint16(line[o+2:])),
					B: halfToFloat32(binary.LittleEndian.Uint16(line[o+4:])),
					A: halfToFloat32(binary.LittleEndian.Uint16(line[o+6:])),
				})
			}
		case TextureFormatRGBA32Float:
			for x := 0; x < width; x++ {
				o := x * 16
				out = append(out, Color{
					R: math.Float32frombits(binary.LittleEndian.Uint32(line[o:])),
					G: math.Float32frombits(binary.LittleEndian.Uint32(line[o+4:])),
					B: math.Float32frombits(binary.LittleEndian.Uint32(line[o+8:])),
					A: math.Float32frombits(binary.LittleEndian.Uint32(line[o+12:])),
				})
			}
		}
	}
	return out, nil
}
