// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package hal

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/sketch"
	"github.com/gogpu/sketch/render"
)

// mockHALDevice is a test double for hal.Device.
type mockHALDevice struct {
	buffersCreated    int32
	buffersDestroyed  int32
	texturesCreated   int32
	texturesDestroyed int32

	lastBufferSize uint64
}

func (d *mockHALDevice) CreateBuffer(desc *hal.BufferDescriptor) (hal.Buffer, error) {
	atomic.AddInt32(&d.buffersCreated, 1)
	d.lastBufferSize = desc.Size
	return &mockHALBuffer{size: desc.Size}, nil
}

func (d *mockHALDevice) DestroyBuffer(_ hal.Buffer) {
	atomic.AddInt32(&d.buffersDestroyed, 1)
}

func (d *mockHALDevice) CreateTexture(desc *hal.TextureDescriptor) (hal.Texture, error) {
	atomic.AddInt32(&d.texturesCreated, 1)
	return &mockHALTexture{
		width:  desc.Size.Width,
		height: desc.Size.Height,
	}, nil
}

func (d *mockHALDevice) DestroyTexture(_ hal.Texture) {
	atomic.AddInt32(&d.texturesDestroyed, 1)
}

// Remaining hal.Device methods are no-ops; readback tests never reach
// them.

//nolint:nilnil // Mock: unused interface methods.
func (d *mockHALDevice) CreateTextureView(_ hal.Texture, _ *hal.TextureViewDescriptor) (hal.TextureView, error) {
	return nil, nil
}
func (d *mockHALDevice) DestroyTextureView(_ hal.TextureView) {}

//nolint:nilnil // Mock: unused interface methods.
func (d *mockHALDevice) CreateSampler(_ *hal.SamplerDescriptor) (hal.Sampler, error) {
	return nil, nil
}
func (d *mockHALDevice) DestroySampler(_ hal.Sampler) {}

//nolint:nilnil // Mock: unused interface methods.
func (d *mockHALDevice) CreateBindGroupLayout(_ *hal.BindGroupLayoutDescriptor) (hal.BindGroupLayout, error) {
	return nil, nil
}
func (d *mockHALDevice) DestroyBindGroupLayout(_ hal.BindGroupLayout) {}

//nolint:nilnil // Mock: unused interface methods.
func (d *mockHALDevice) CreateBindGroup(_ *hal.BindGroupDescriptor) (hal.BindGroup, error) {
	return nil, nil
}
func (d *mockHALDevice) DestroyBindGroup(_ hal.BindGroup) {}

//nolint:nilnil // Mock: unused interface methods.
func (d *mockHALDevice) CreatePipelineLayout(_ *hal.PipelineLayoutDescriptor) (hal.PipelineLayout, error) {
	return nil, nil
}
func (d *mockHALDevice) DestroyPipelineLayout(_ hal.PipelineLayout) {}

//nolint:nilnil // Mock: unused interface methods.
func (d *mockHALDevice) CreateShaderModule(_ *hal.ShaderModuleDescriptor) (hal.ShaderModule, error) {
	return nil, nil
}
func (d *mockHALDevice) DestroyShaderModule(_ hal.ShaderModule) {}

//nolint:nilnil // Mock: unused interface methods.
func (d *mockHALDevice) CreateRenderPipeline(_ *hal.RenderPipelineDescriptor) (hal.RenderPipeline, error) {
	return nil, nil
}
func (d *mockHALDevice) DestroyRenderPipeline(_ hal.RenderPipeline) {}

//nolint:nilnil // Mock: unused interface methods.
func (d *mockHALDevice) CreateComputePipeline(_ *hal.ComputePipelineDescriptor) (hal.ComputePipeline, error) {
	return nil, nil
}
func (d *mockHALDevice) DestroyComputePipeline(_ hal.ComputePipeline) {}

//nolint:nilnil // Mock: unused interface methods.
func (d *mockHALDevice) CreateQuerySet(_ *hal.QuerySetDescriptor) (hal.QuerySet, error) {
	return nil, nil
}
func (d *mockHALDevice) DestroyQuerySet(_ hal.QuerySet) {}

//nolint:nilnil // Mock: unused interface methods.
func (d *mockHALDevice) CreateCommandEncoder(_ *hal.CommandEncoderDescriptor) (hal.CommandEncoder, error) {
	return nil, nil
}

//nolint:nilnil // Mock: unused interface methods.
func (d *mockHALDevice) CreateRenderBundleEncoder(_ *hal.RenderBundleEncoderDescriptor) (hal.RenderBundleEncoder, error) {
	return nil, nil
}
func (d *mockHALDevice) DestroyRenderBundle(_ hal.RenderBundle)   {}
func (d *mockHALDevice) FreeCommandBuffer(_ hal.CommandBuffer)    {}
func (d *mockHALDevice) CreateFence() (hal.Fence, error)          { return nil, nil } //nolint:nilnil
func (d *mockHALDevice) DestroyFence(_ hal.Fence)                 {}
func (d *mockHALDevice) ResetFence(_ hal.Fence) error             { return nil }
func (d *mockHALDevice) GetFenceStatus(_ hal.Fence) (bool, error) { return true, nil }
func (d *mockHALDevice) Wait(_ hal.Fence, _ uint64, _ time.Duration) (bool, error) {
	return true, nil
}
func (d *mockHALDevice) WaitIdle() error { return nil }
func (d *mockHALDevice) Destroy()        {}

// mockHALBuffer is a test double for hal.Buffer.
type mockHALBuffer struct {
	size uint64
}

func (b *mockHALBuffer) Destroy()              {}
func (b *mockHALBuffer) NativeHandle() uintptr { return 0 }

// mockHALTexture is a test double for hal.Texture.
type mockHALTexture struct {
	width  uint32
	height uint32
}

func (t *mockHALTexture) Destroy()                            {}
func (t *mockHALTexture) NativeHandle() uintptr               { return 0 }
func (t *mockHALTexture) CurrentUsage() gputypes.TextureUsage { return 0 }
func (t *mockHALTexture) AddPendingRef()                      {}
func (t *mockHALTexture) DecPendingRef()                      {}

func newMockDevice() (*Device, *mockHALDevice) {
	mock := &mockHALDevice{}
	return &Device{
		device:   mock,
		textures: make(map[sketch.TextureHandle]*texture),
	}, mock
}

func TestHalFormatMapping(t *testing.T) {
	for _, f := range []sketch.TextureFormat{
		sketch.TextureFormatRGBA8Unorm,
		sketch.TextureFormatRGBA8UnormSRGB,
	} {
		got, err := halFormat(f)
		if err != nil {
			t.Fatalf("halFormat(%s) err = %v", f, err)
		}
		if got != gputypes.TextureFormatRGBA8Unorm {
			t.Fatalf("halFormat(%s) = %v", f, got)
		}
	}
	if _, err := halFormat(sketch.TextureFormatRGBA32Float); !errors.Is(err, sketch.ErrUnsupportedPixelFormat) {
		t.Fatalf("float format err = %v", err)
	}
}

func TestNewWithProviderRejectsNullHandle(t *testing.T) {
	if _, err := NewWithProvider(render.NullDeviceHandle{}); err == nil {
		t.Fatal("expected error for provider without HAL types")
	}
}

func TestReadbackBufferPersistsAcrossReads(t *testing.T) {
	d, mock := newMockDevice()

	h, err := d.CreateTexture(300, 200, sketch.TextureFormatRGBA8Unorm)
	if err != nil {
		t.Fatal(err)
	}
	tex := d.textures[h]

	// 300 texels * 4 bytes = 1200, padded up to the 256-byte pitch.
	if got := tex.alignedBytesPerRow(); got != 1280 {
		t.Fatalf("alignedBytesPerRow = %d, want 1280", got)
	}
	if got := tex.stagingSize(); got != 1280*200 {
		t.Fatalf("stagingSize = %d, want %d", got, 1280*200)
	}

	first, err := d.stagingFor(tex)
	if err != nil {
		t.Fatal(err)
	}
	second, err := d.stagingFor(tex)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Fatal("second read allocated a new staging buffer")
	}
	if n := atomic.LoadInt32(&mock.buffersCreated); n != 1 {
		t.Fatalf("buffers created = %d, want 1", n)
	}
	if mock.lastBufferSize != tex.stagingSize() {
		t.Fatalf("staging buffer size = %d, want %d", mock.lastBufferSize, tex.stagingSize())
	}

	// Destroying the texture releases its staging buffer with it.
	if err := d.DestroyTexture(h); err != nil {
		t.Fatal(err)
	}
	if n := atomic.LoadInt32(&mock.buffersDestroyed); n != 1 {
		t.Fatalf("buffers destroyed = %d, want 1", n)
	}

	// A recreated texture (the resize path) starts without a buffer and
	// allocates one sized for the new dimensions.
	h2, err := d.CreateTexture(600, 400, sketch.TextureFormatRGBA8Unorm)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := d.stagingFor(d.textures[h2]); err != nil {
		t.Fatal(err)
	}
	if mock.lastBufferSize != 2560*400 {
		t.Fatalf("resized staging buffer size = %d, want %d", mock.lastBufferSize, 2560*400)
	}
}

func TestCloseReleasesReadbackBuffers(t *testing.T) {
	d, mock := newMockDevice()

	h1, err := d.CreateTexture(64, 64, sketch.TextureFormatRGBA8Unorm)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := d.CreateTexture(32, 32, sketch.TextureFormatRGBA8Unorm); err != nil {
		t.Fatal(err)
	}
	if _, err := d.stagingFor(d.textures[h1]); err != nil {
		t.Fatal(err)
	}

	if err := d.Close(); err != nil {
		t.Fatal(err)
	}
	if n := atomic.LoadInt32(&mock.texturesDestroyed); n != 2 {
		t.Fatalf("textures destroyed = %d, want 2", n)
	}
	// Only the texture that was read back had a buffer to release.
	if n := atomic.LoadInt32(&mock.buffersDestroyed); n != 1 {
		t.Fatalf("buffers destroyed = %d, want 1", n)
	}
}
