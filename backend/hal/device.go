// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package hal

import (
	"fmt"
	"sync"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/sketch"
	"github.com/gogpu/sketch/render"

	// Register the Vulkan backend for standalone device creation.
	_ "github.com/gogpu/wgpu/hal/vulkan"
)

// WebGPU (and DX12) requires BytesPerRow aligned to 256 bytes.
const copyPitchAlignment = 256

const fenceTimeout = 5 * time.Second

// Device implements sketch.Device over the wgpu HAL.
//
// Device is safe for concurrent use, but texture readback serializes on
// the GPU queue.
type Device struct {
	mu       sync.Mutex
	instance hal.Instance // non-nil only when the device is standalone
	device   hal.Device
	queue    hal.Queue
	next     sketch.TextureHandle
	textures map[sketch.TextureHandle]*texture
}

type texture struct {
	tex       hal.Texture
	width     int
	height    int
	format    sketch.TextureFormat
	pixelSize int

	// staging is the persistent readback buffer, created on the first
	// ReadTexture and reused until the texture is destroyed. Resizing a
	// canvas recreates its texture, so the buffer always matches the
	// texture dimensions.
	staging hal.Buffer
}

// alignedBytesPerRow returns the row stride of the readback buffer,
// padded to the copy pitch alignment.
func (t *texture) alignedBytesPerRow() uint32 {
	row := uint32(t.width * t.pixelSize)
	return (row + copyPitchAlignment - 1) &^ (copyPitchAlignment - 1)
}

// stagingSize returns the byte size of the readback buffer.
func (t *texture) stagingSize() uint64 {
	return uint64(t.alignedBytesPerRow()) * uint64(t.height)
}

// New creates a Device with its own standalone Vulkan device. The
// fallback path when no host application provides one.
func New() (*Device, error) {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return nil, fmt.Errorf("hal: vulkan backend not available")
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("hal: create instance: %w", err)
	}

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		return nil, fmt.Errorf("hal: no GPU adapters found")
	}
	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		return nil, fmt.Errorf("hal: open device: %w", err)
	}
	sketch.Logger().Info("hal: GPU initialized (standalone)", "adapter", selected.Info.Name)

	return &Device{
		instance: instance,
		device:   openDev.Device,
		queue:    openDev.Queue,
		textures: make(map[sketch.TextureHandle]*texture),
	}, nil
}

// NewWithProvider creates a Device sharing the host application's GPU
// device. The provider must expose HalDevice() any and HalQueue() any
// returning hal.Device and hal.Queue.
func NewWithProvider(p render.DeviceHandle) (*Device, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := p.(halProvider)
	if !ok {
		return nil, fmt.Errorf("hal: provider does not expose HAL types")
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("hal: provider HalDevice is not hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("hal: provider HalQueue is not hal.Queue")
	}
	return &Device{
		device:   device,
		queue:    queue,
		textures: make(map[sketch.TextureHandle]*texture),
	}, nil
}

// halFormat maps a canvas pixel format onto the HAL texture format.
// The sRGB variant shares the unorm storage layout; the transfer
// function only affects sampling, not copies.
func halFormat(f sketch.TextureFormat) (gputypes.TextureFormat, error) {
	switch f {
	case sketch.TextureFormatRGBA8Unorm, sketch.TextureFormatRGBA8UnormSRGB:
		return gputypes.TextureFormatRGBA8Unorm, nil
	default:
		return gputypes.TextureFormatUndefined,
			fmt.Errorf("%w: %s has no HAL mapping", sketch.ErrUnsupportedPixelFormat, f)
	}
}

// CreateTexture allocates a GPU texture usable as a render target and
// copy source/destination.
func (d *Device) CreateTexture(width, height int, format sketch.TextureFormat) (sketch.TextureHandle, error) {
	if width <= 0 || height <= 0 {
		return 0, fmt.Errorf("%w: texture size %dx%d", sketch.ErrInvalidArgument, width, height)
	}
	halFmt, err := halFormat(format)
	if err != nil {
		return 0, err
	}
	size, err := sketch.PixelSize(format)
	if err != nil {
		return 0, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.next++
	tex, err := d.device.CreateTexture(&hal.TextureDescriptor{
		Label:         fmt.Sprintf("sketch_canvas_%d", d.next),
		Size:          hal.Extent3D{Width: uint32(width), Height: uint32(height), DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        halFmt,
		Usage: gputypes.TextureUsageCopySrc | gputypes.TextureUsageCopyDst |
			gputypes.TextureUsageTextureBinding | gputypes.TextureUsageRenderAttachment,
	})
	if err != nil {
		return 0, fmt.Errorf("hal: create texture: %w", err)
	}
	d.textures[d.next] = &texture{
		tex:       tex,
		width:     width,
		height:    height,
		format:    format,
		pixelSize: size,
	}
	return d.next, nil
}

// DestroyTexture releases a GPU texture.
func (d *Device) DestroyTexture(h sketch.TextureHandle) error {
	d.mu.Lock()
	t, ok := d.textures[h]
	if ok {
		delete(d.textures, h)
	}
	d.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: texture %d", sketch.ErrInvalidArgument, h)
	}
	if t.staging != nil {
		d.device.DestroyBuffer(t.staging)
	}
	d.device.DestroyTexture(t.tex)
	return nil
}

// stagingFor returns the texture's persistent readback buffer, creating
// it on first use. Caller holds d.mu.
func (d *Device) stagingFor(t *texture) (hal.Buffer, error) {
	if t.staging != nil {
		return t.staging, nil
	}
	buf, err := d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "sketch_staging",
		Size:  t.stagingSize(),
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("hal: create staging buffer: %w", err)
	}
	t.staging = buf
	return buf, nil
}

// ReadTexture copies the texture into its persistent staging buffer and
// blocks until the GPU finishes. The buffer is allocated on the first
// read and reused every frame after that. Rows in the returned data are
// padded to the 256-byte copy pitch.
func (d *Device) ReadTexture(h sketch.TextureHandle) ([]byte, int, error) {
	d.mu.Lock()
	t, ok := d.textures[h]
	if !ok {
		d.mu.Unlock()
		return nil, 0, fmt.Errorf("%w: texture %d", sketch.ErrInvalidArgument, h)
	}
	stagingBuf, err := d.stagingFor(t)
	d.mu.Unlock()
	if err != nil {
		return nil, 0, err
	}

	w, hgt := uint32(t.width), uint32(t.height)
	alignedBytesPerRow := t.alignedBytesPerRow()
	stagingSize := t.stagingSize()

	encoder, err := d.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "sketch_readback",
	})
	if err != nil {
		return nil, 0, fmt.Errorf("hal: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("sketch_readback"); err != nil {
		return nil, 0, fmt.Errorf("hal: begin encoding: %w", err)
	}

	// Vulkan and DX12 need the texture in TRANSFER_SRC layout before
	// CopyTextureToBuffer; a no-op on Metal, GLES, software backends.
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: t.tex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageRenderAttachment,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})

	encoder.CopyTextureToBuffer(t.tex, stagingBuf, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: alignedBytesPerRow, RowsPerImage: hgt},
		TextureBase:  hal.ImageCopyTexture{Texture: t.tex, MipLevel: 0},
		Size:         hal.Extent3D{Width: w, Height: hgt, DepthOrArrayLayers: 1},
	}})

	// Back to RenderAttachment so the next frame's resolve barrier sees
	// the layout it expects.
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: t.tex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageCopySrc,
			NewUsage: gputypes.TextureUsageRenderAttachment,
		},
	}})

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return nil, 0, fmt.Errorf("hal: end encoding: %w", err)
	}
	defer d.device.FreeCommandBuffer(cmdBuf)

	fence, err := d.device.CreateFence()
	if err != nil {
		return nil, 0, fmt.Errorf("hal: create fence: %w", err)
	}
	defer d.device.DestroyFence(fence)

	if err := d.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return nil, 0, fmt.Errorf("hal: submit: %w", err)
	}
	fenceOK, err := d.device.Wait(fence, 1, fenceTimeout)
	if err != nil || !fenceOK {
		return nil, 0, fmt.Errorf("hal: wait for GPU: ok=%v err=%w", fenceOK, err)
	}

	readback := make([]byte, stagingSize)
	if err := d.queue.ReadBuffer(stagingBuf, 0, readback); err != nil {
		return nil, 0, fmt.Errorf("hal: readback: %w", err)
	}
	return readback, int(alignedBytesPerRow), nil
}

// WriteTexture writes tightly packed texel data into a texture region.
func (d *Device) WriteTexture(h sketch.TextureHandle, x, y, width, height int, data []byte) error {
	d.mu.Lock()
	t, ok := d.textures[h]
	d.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: texture %d", sketch.ErrInvalidArgument, h)
	}
	if x < 0 || y < 0 || width <= 0 || height <= 0 || x+width > t.width || y+height > t.height {
		return fmt.Errorf("%w: region %d,%d %dx%d outside %dx%d texture",
			sketch.ErrInvalidArgument, x, y, width, height, t.width, t.height)
	}
	rowBytes := width * t.pixelSize
	if len(data) != rowBytes*height {
		return fmt.Errorf("%w: %d bytes for %dx%d region, want %d",
			sketch.ErrInvalidArgument, len(data), width, height, rowBytes*height)
	}

	d.queue.WriteTexture(
		&hal.ImageCopyTexture{
			Texture:  t.tex,
			MipLevel: 0,
			Origin:   hal.Origin3D{X: uint32(x), Y: uint32(y), Z: 0},
			Aspect:   gputypes.TextureAspectAll,
		},
		data,
		&hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  uint32(rowBytes),
			RowsPerImage: uint32(height),
		},
		&hal.Extent3D{Width: uint32(width), Height: uint32(height), DepthOrArrayLayers: 1},
	)
	return nil
}

// Close destroys all remaining textures and, for a standalone device,
// the device and instance.
func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for h, t := range d.textures {
		if t.staging != nil {
			d.device.DestroyBuffer(t.staging)
		}
		d.device.DestroyTexture(t.tex)
		delete(d.textures, h)
	}
	if d.instance != nil {
		d.device.Destroy()
		d.instance.Destroy()
		d.instance = nil
	}
	d.device = nil
	d.queue = nil
	return nil
}

var _ sketch.Device = (*Device)(nil)
