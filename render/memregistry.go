// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"
	"slices"
	"sync"

	"github.com/gogpu/sketch"
	"github.com/gogpu/sketch/mesh"
)

// Drawable is a spawned entity held by MemRegistry: a mesh/material
// pair under a world transform, tagged with its owning canvas's layer.
type Drawable struct {
	Mesh      sketch.MeshHandle
	Material  sketch.MaterialHandle
	Transform sketch.Affine
	Layer     uint8
	Owner     sketch.Canvas
}

// MemRegistry is an in-memory implementation of sketch.Registry. It
// stores uploaded meshes and materials by handle and tracks spawned
// drawables, making the flush output inspectable without a GPU.
//
// MemRegistry is safe for concurrent use.
type MemRegistry struct {
	mu        sync.Mutex
	next      uint64
	meshes    map[sketch.MeshHandle]*mesh.Builder
	materials map[sketch.MaterialHandle]sketch.MaterialKey
	drawables map[sketch.DrawableHandle]Drawable
}

// NewMemRegistry creates an empty in-memory registry.
func NewMemRegistry() *MemRegistry {
	return &MemRegistry{
		meshes:    make(map[sketch.MeshHandle]*mesh.Builder),
		materials: make(map[sketch.MaterialHandle]sketch.MaterialKey),
		drawables: make(map[sketch.DrawableHandle]Drawable),
	}
}

// CreateMesh stores the builder and returns its handle.
func (r *MemRegistry) CreateMesh(b *mesh.Builder) (sketch.MeshHandle, error) {
	if b == nil || b.Empty() {
		return 0, fmt.Errorf("%w: empty mesh", sketch.ErrInvalidArgument)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	h := sketch.MeshHandle(r.next)
	r.meshes[h] = b
	return h, nil
}

// DestroyMesh releases a stored mesh.
func (r *MemRegistry) DestroyMesh(h sketch.MeshHandle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.meshes[h]; !ok {
		return fmt.Errorf("%w: mesh %d", sketch.ErrGeometryNotFound, h)
	}
	delete(r.meshes, h)
	return nil
}

// CreateMaterial stores the key and returns a material handle.
func (r *MemRegistry) CreateMaterial(key sketch.MaterialKey) (sketch.MaterialHandle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	h := sketch.MaterialHandle(r.next)
	r.materials[h] = key
	return h, nil
}

// DestroyMaterial releases a stored material.
func (r *MemRegistry) DestroyMaterial(h sketch.MaterialHandle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.materials[h]; !ok {
		return fmt.Errorf("%w: material %d", sketch.ErrMaterialNotFound, h)
	}
	delete(r.materials, h)
	return nil
}

// Spawn creates a drawable referencing the given mesh and material.
// Both handles must be alive.
func (r *MemRegistry) Spawn(meshH sketch.MeshHandle, materialH sketch.MaterialHandle, transform sketch.Affine, layer uint8, owner sketch.Canvas) (sketch.DrawableHandle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.meshes[meshH]; !ok {
		return 0, fmt.Errorf("%w: mesh %d", sketch.ErrGeometryNotFound, meshH)
	}
	if _, ok := r.materials[materialH]; !ok {
		return 0, fmt.Errorf("%w: material %d", sketch.ErrMaterialNotFound, materialH)
	}
	r.next++
	h := sketch.DrawableHandle(r.next)
	r.drawables[h] = Drawable{
		Mesh:      meshH,
		Material:  materialH,
		Transform: transform,
		Layer:     layer,
		Owner:     owner,
	}
	return h, nil
}

// Despawn retires a drawable.
func (r *MemRegistry) Despawn(h sketch.DrawableHandle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.drawables[h]; !ok {
		return fmt.Errorf("%w: drawable %d", sketch.ErrInvalidArgument, h)
	}
	delete(r.drawables, h)
	return nil
}

// Mesh returns a stored mesh builder.
func (r *MemRegistry) Mesh(h sketch.MeshHandle) (*mesh.Builder, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.meshes[h]
	return b, ok
}

// Material returns a stored material key.
func (r *MemRegistry) Material(h sketch.MaterialHandle) (sketch.MaterialKey, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k, ok := r.materials[h]
	return k, ok
}

// Drawables returns the live drawables owned by the given canvas, in
// spawn order.
func (r *MemRegistry) Drawables(owner sketch.Canvas) []Drawable {
	r.mu.Lock()
	defer r.mu.Unlock()
	handles := make([]sketch.DrawableHandle, 0, len(r.drawables))
	for h, d := range r.drawables {
		if d.Owner == owner {
			handles = append(handles, h)
		}
	}
	// Handles come from one counter, so sorted order is spawn order.
	slices.Sort(handles)
	out := make([]Drawable, len(handles))
	for i, h := range handles {
		out[i] = r.drawables[h]
	}
	return out
}

// Counts reports how many meshes, materials and drawables are alive.
func (r *MemRegistry) Counts() (meshes, materials, drawables int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.meshes), len(r.materials), len(r.drawables)
}

var _ sketch.Registry = (*MemRegistry)(nil)
