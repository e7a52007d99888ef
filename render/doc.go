// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render provides backend plumbing for the sketch draw pipeline.
//
// It defines the DeviceHandle integration point for host applications
// that already own a GPU device, plus in-memory implementations of
// sketch.Registry and sketch.Device (MemRegistry, MemDevice) for
// headless use and tests. GPU-backed devices live in backend/hal.
package render
