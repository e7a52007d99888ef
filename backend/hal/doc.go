// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package hal implements sketch.Device on top of the wgpu HAL,
// backing canvas textures with real GPU memory.
//
// Use New to create a standalone Vulkan device, or NewWithProvider to
// share a device owned by a host application (e.g. a gogpu.App) via
// render.DeviceHandle.
package hal
