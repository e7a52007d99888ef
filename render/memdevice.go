// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"
	"sync"

	"github.com/gogpu/sketch"
)

// rowAlignment mirrors the WebGPU buffer copy row pitch requirement so
// that code exercised against MemDevice sees the same padded readback
// layout a GPU backend produces.
const rowAlignment = 256

// MemDevice is an in-memory implementation of sketch.Device. Textures
// are plain byte slices with rows padded to rowAlignment, matching the
// layout returned by GPU readback.
//
// MemDevice is safe for concurrent use.
type MemDevice struct {
	mu       sync.Mutex
	next     sketch.TextureHandle
	textures map[sketch.TextureHandle]*memTexture
}

type memTexture struct {
	width, height int
	format        sketch.TextureFormat
	pitch         int
	data          []byte
}

// NewMemDevice creates an empty in-memory device.
func NewMemDevice() *MemDevice {
	return &MemDevice{textures: make(map[sketch.TextureHandle]*memTexture)}
}

// CreateTexture allocates a zero-filled texture.
func (d *MemDevice) CreateTexture(width, height int, format sketch.TextureFormat) (sketch.TextureHandle, error) {
	size, err := sketch.PixelSize(format)
	if err != nil {
		return 0, err
	}
	if width <= 0 || height <= 0 {
		return 0, fmt.Errorf("%w: texture size %dx%d", sketch.ErrInvalidArgument, width, height)
	}
	pitch := (width*size + rowAlignment - 1) &^ (rowAlignment - 1)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.next++
	d.textures[d.next] = &memTexture{
		width:  width,
		height: height,
		format: format,
		pitch:  pitch,
		data:   make([]byte, pitch*height),
	}
	return d.next, nil
}

// DestroyTexture releases a texture.
func (d *MemDevice) DestroyTexture(h sketch.TextureHandle) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.textures[h]; !ok {
		return fmt.Errorf("%w: texture %d", sketch.ErrInvalidArgument, h)
	}
	delete(d.textures, h)
	return nil
}

// ReadTexture returns a copy of the texture contents with padded rows.
func (d *MemDevice) ReadTexture(h sketch.TextureHandle) ([]byte, int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	t, ok := d.textures[h]
	if !ok {
		return nil, 0, fmt.Errorf("%w: texture %d", sketch.ErrInvalidArgument, h)
	}
	out := make([]byte, len(t.data))
	copy(out, t.data)
	return out, t.pitch, nil
}

// WriteTexture writes tightly packed texel data into a texture region.
func (d *MemDevice) WriteTexture(h sketch.TextureHandle, x, y, width, height int, data []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	t, ok := d.textures[h]
	if !ok {
		return fmt.Errorf("%w: texture %d", sketch.ErrInvalidArgument, h)
	}
	size, err := sketch.PixelSize(t.format)
	if err != nil {
		return err
	}
	if x < 0 || y < 0 || width <= 0 || height <= 0 || x+width > t.width || y+height > t.height {
		return fmt.Errorf("%w: region %d,%d %dx%d outside %dx%d texture",
			sketch.ErrInvalidArgument, x, y, width, height, t.width, t.height)
	}
	rowBytes := width * size
	if len(data) != rowBytes*height {
		return fmt.Errorf("%w: %d bytes for %dx%d region, want %d",
			sketch.ErrInvalidArgument, len(data), width, height, rowBytes*height)
	}
	for row := 0; row < height; row++ {
		dst := (y+row)*t.pitch + x*size
		copy(t.data[dst:dst+rowBytes], data[row*rowBytes:(row+1)*rowBytes])
	}
	return nil
}

// TextureCount reports how many textures are currently alive.
func (d *MemDevice) TextureCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.textures)
}

var _ sketch.Device = (*MemDevice)(nil)
