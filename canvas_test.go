package sketch

import (
	"errors"
	"testing"
)

func TestCreateCanvasValidation(t *testing.T) {
	ctx := NewContext(newFakeRegistry(), newFakeDevice())

	if _, err := ctx.CreateCanvas(0, 10); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("zero width err = %v", err)
	}
	if _, err := ctx.CreateCanvas(10, -1); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("negative height err = %v", err)
	}
	if _, err := ctx.CreateCanvas(10, 10, WithCanvasFormat(TextureFormat(99))); !errors.Is(err, ErrUnsupportedPixelFormat) {
		t.Fatalf("bad format err = %v", err)
	}
}

func TestCanvasLifecycle(t *testing.T) {
	reg, dev := newFakeRegistry(), newFakeDevice()
	ctx := NewContext(reg, dev)

	c, err := ctx.CreateCanvas(64, 32, WithCanvasFormat(TextureFormatRGBA8Unorm))
	if err != nil {
		t.Fatal(err)
	}
	w, h, err := ctx.Size(c)
	if err != nil || w != 64 || h != 32 {
		t.Fatalf("Size = %d,%d (%v), want 64,32", w, h, err)
	}
	f, err := ctx.Format(c)
	if err != nil || f != TextureFormatRGBA8Unorm {
		t.Fatalf("Format = %v (%v)", f, err)
	}
	if len(dev.textures) != 1 {
		t.Fatalf("%d device textures, want 1", len(dev.textures))
	}

	if err := ctx.DestroyCanvas(c); err != nil {
		t.Fatal(err)
	}
	if len(dev.textures) != 0 {
		t.Fatal("backing texture not freed on destroy")
	}
	if err := ctx.DestroyCanvas(c); !errors.Is(err, ErrCanvasNotFound) {
		t.Fatalf("double destroy err = %v", err)
	}
	if err := ctx.Record(c, Rect{}); !errors.Is(err, ErrCanvasNotFound) {
		t.Fatalf("record on dead canvas err = %v", err)
	}
}

func TestDestroyCanvasRetiresTransients(t *testing.T) {
	ctx, reg, _, c := newTestContext(t)

	record(t, ctx, c, ClearStroke{}, Rect{X: 0, Y: 0, W: 10, H: 10})
	if err := ctx.Flush(c); err != nil {
		t.Fatal(err)
	}
	if err := ctx.DestroyCanvas(c); err != nil {
		t.Fatal(err)
	}
	if len(reg.live) != 0 || len(reg.meshes) != 0 || len(reg.materials) != 0 {
		t.Fatalf("destroy leaked: %d drawables, %d meshes, %d materials",
			len(reg.live), len(reg.meshes), len(reg.materials))
	}
}

func TestReadWritePixelsRoundTrip(t *testing.T) {
	reg, dev := newFakeRegistry(), newFakeDevice()
	ctx := NewContext(reg, dev, WithTextureFormat(TextureFormatRGBA32Float))

	c, err := ctx.CreateCanvas(8, 4)
	if err != nil {
		t.Fatal(err)
	}

	region := make([]Color, 3*2)
	for i := range region {
		region[i] = Color{R: float32(i) * 0.125, G: 1, B: 0.5, A: 1}
	}
	if err := ctx.WritePixels(c, 2, 1, 3, 2, region); err != nil {
		t.Fatal(err)
	}

	got, err := ctx.ReadPixels(c)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 8*4 {
		t.Fatalf("ReadPixels returned %d colors, want 32", len(got))
	}
	for row := 0; row < 2; row++ {
		for col := 0; col < 3; col++ {
			want := region[row*3+col]
			if gotC := got[(1+row)*8+2+col]; gotC != want {
				t.Fatalf("pixel (%d,%d) = %+v, want %+v", 2+col, 1+row, gotC, want)
			}
		}
	}
	// Untouched pixels stay zero.
	if got[0] != (Color{}) {
		t.Fatalf("pixel (0,0) = %+v, want zero", got[0])
	}
}

func TestWritePixelsValidation(t *testing.T) {
	ctx, _, _, c := newTestContext(t) // 200x100 canvas

	px4 := make([]Color, 4)
	tests := []struct {
		name          string
		x, y, w, h    int
		pixels        []Color
	}{
		{"zero size", 0, 0, 0, 2, px4},
		{"out of bounds x", 199, 0, 2, 2, px4},
		{"out of bounds y", 0, 99, 2, 2, px4},
		{"negative origin", -1, 0, 2, 2, px4},
		{"length mismatch", 0, 0, 3, 3, px4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ctx.WritePixels(c, tt.x, tt.y, tt.w, tt.h, tt.pixels)
			if !errors.Is(err, ErrInvalidArgument) {
				t.Fatalf("err = %v, want ErrInvalidArgument", err)
			}
		})
	}
}

func TestResizeCanvasRecreatesTexture(t *testing.T) {
	reg, dev := newFakeRegistry(), newFakeDevice()
	ctx := NewContext(reg, dev)

	c, err := ctx.CreateCanvas(10, 10)
	if err != nil {
		t.Fatal(err)
	}
	before, _ := ctx.Texture(c)

	if err := ctx.ResizeCanvas(c, 20, 30); err != nil {
		t.Fatal(err)
	}
	after, _ := ctx.Texture(c)
	if before == after {
		t.Fatal("resize kept the old backing texture")
	}
	if len(dev.textures) != 1 {
		t.Fatalf("%d device textures after resize, want 1", len(dev.textures))
	}
	w, h, _ := ctx.Size(c)
	if w != 20 || h != 30 {
		t.Fatalf("Size after resize = %d,%d", w, h)
	}

	// Readback matches the new dimensions.
	got, err := ctx.ReadPixels(c)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 20*30 {
		t.Fatalf("ReadPixels returned %d colors, want %d", len(got), 20*30)
	}

	// Same-size resize is a no-op.
	if err := ctx.ResizeCanvas(c, 20, 30); err != nil {
		t.Fatal(err)
	}
	still, _ := ctx.Texture(c)
	if still != after {
		t.Fatal("same-size resize recreated the texture")
	}
	if err := ctx.ResizeCanvas(c, 0, 5); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("invalid resize err = %v", err)
	}
}

func TestCanvasLayersAreDistinctAndReused(t *testing.T) {
	reg, dev := newFakeRegistry(), newFakeDevice()
	ctx := NewContext(reg, dev)

	a, _ := ctx.CreateCanvas(4, 4)
	b, _ := ctx.CreateCanvas(4, 4)
	la := ctx.canvases[a].layer
	lb := ctx.canvases[b].layer
	if la == lb {
		t.Fatalf("canvases share render layer %d", la)
	}

	if err := ctx.DestroyCanvas(a); err != nil {
		t.Fatal(err)
	}
	cNew, _ := ctx.CreateCanvas(4, 4)
	if got := ctx.canvases[cNew].layer; got != la {
		t.Fatalf("released layer not reused: got %d, want %d", got, la)
	}
}
