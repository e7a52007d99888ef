package sketch

import (
	"fmt"
	"image"

	xdraw "golang.org/x/image/draw"
)

// ImageColors converts a standard image into linear colors suitable for
// WritePixels, decoding the sRGB transfer function per pixel. Returns
// the colors row-major along with the image width and height.
func ImageColors(img image.Image) ([]Color, int, int) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := make([]Color, 0, w*h)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			out = append(out, FromColor(img.At(x, y)))
		}
	}
	return out, w, h
}

// ColorsImage converts linear colors back into a standard NRGBA image,
// applying sRGB encoding. len(colors) must equal width*height.
func ColorsImage(colors []Color, width, height int) (*image.NRGBA, error) {
	if len(colors) != width*height {
		return nil, fmt.Errorf("%w: %d colors for %dx%d image",
			ErrInvalidArgument, len(colors), width, height)
	}
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i, c := range colors {
		o := i * 4
		img.Pix[o] = quantize(linearToSRGB(c.R))
		img.Pix[o+1] = quantize(linearToSRGB(c.G))
		img.Pix[o+2] = quantize(linearToSRGB(c.B))
		img.Pix[o+3] = quantize(c.A)
	}
	return img, nil
}

// ScaleImage resamples an image to the given size with Catmull-Rom
// interpolation. Used to fit background images to canvas dimensions
// before conversion with ImageColors.
func ScaleImage(img image.Image, width, height int) (*image.NRGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: scale target %dx%d", ErrInvalidArgument, width, height)
	}
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return dst, nil
}

// DrawImage writes an image into the canvas at the given position,
// converting to linear colors and clipping against the canvas bounds.
func (ctx *Context) DrawImage(c Canvas, img image.Image, x, y int) error {
	cs, err := ctx.canvas(c)
	if err != nil {
		return err
	}
	colors, w, h := ImageColors(img)

	// Clip the region to the canvas.
	srcX, srcY := 0, 0
	if x < 0 {
		srcX, w, x = -x, w+x, 0
	}
	if y < 0 {
		srcY, h, y = -y, h+y, 0
	}
	if x+w > cs.width {
		w = cs.width - x
	}
	if y+h > cs.height {
		h = cs.height - y
	}
	if w <= 0 || h <= 0 {
		return nil
	}

	stride := img.Bounds().Dx()
	clipped := make([]Color, 0, w*h)
	for row := 0; row < h; row++ {
		o := (srcY+row)*stride + srcX
		clipped = append(clipped, colors[o:o+w]...)
	}
	return ctx.WritePixels(c, x, y, w, h, clipped)
}
