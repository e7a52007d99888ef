// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package mesh builds vertex and index data for GPU meshes.
//
// A Builder accumulates per-vertex position, normal, color, and UV
// attributes (plus optional custom attributes) together with an index
// list. Normals, colors, and UVs follow the "current attribute" model:
// setting one affects every vertex emitted afterwards until it is set
// again. The accumulated data is consumed by an asset registry that
// uploads it to the GPU.
package mesh

import (
	"errors"
	"fmt"
)

// Topology describes how indices are assembled into primitives.
type Topology uint8

const (
	// TriangleList assembles every three indices into one triangle.
	TriangleList Topology = iota

	// TriangleStrip assembles each index with the previous two.
	TriangleStrip

	// LineList assembles every two indices into one line segment.
	LineList

	// LineStrip assembles each index with the previous one.
	LineStrip

	// PointList renders each index as an isolated point.
	PointList
)

// Package errors. Callers wrap these into their own error vocabulary.
var (
	ErrIndexRange       = errors.New("mesh: index out of range")
	ErrUnknownAttribute = errors.New("mesh: unknown attribute")
	ErrAttributeExists  = errors.New("mesh: attribute already declared")
)

// customAttr holds one declared custom vertex attribute.
type customAttr struct {
	name    string
	comps   int
	current []float32
	data    []float32
}

// Builder accumulates mesh data vertex by vertex.
//
// The zero value is not usable; create builders with NewBuilder.
// A Builder is not safe for concurrent use.
type Builder struct {
	topology  Topology
	positions []float32 // x,y,z triples
	normals   []float32 // x,y,z triples
	colors    []float32 // r,g,b,a quads, linear space
	uvs       []float32 // u,v pairs
	indices   []uint32
	custom    []customAttr

	curNormal [3]float32
	curColor  [4]float32
	curUV     [2]float32
}

// NewBuilder creates an empty builder with the given topology.
// The current normal starts as +Z, the current color as opaque white.
func NewBuilder(t Topology) *Builder {
	return &Builder{
		topology:  t,
		curNormal: [3]float32{0, 0, 1},
		curColor:  [4]float32{1, 1, 1, 1},
	}
}

// Topology returns the primitive topology.
func (b *Builder) Topology() Topology { return b.topology }

// VertexCount returns the number of vertices emitted so far.
func (b *Builder) VertexCount() int { return len(b.positions) / 3 }

// IndexCount returns the number of indices emitted so far.
func (b *Builder) IndexCount() int { return len(b.indices) }

// Empty reports whether no vertices have been emitted.
func (b *Builder) Empty() bool { return len(b.positions) == 0 }

// Positions returns the accumulated x,y,z position triples.
func (b *Builder) Positions() []float32 { return b.positions }

// Normals returns the accumulated x,y,z normal triples.
func (b *Builder) Normals() []float32 { return b.normals }

// Colors returns the accumulated r,g,b,a color quads.
func (b *Builder) Colors() []float32 { return b.colors }

// UVs returns the accumulated u,v texture coordinate pairs.
func (b *Builder) UVs() []float32 { return b.uvs }

// Indices returns the accumulated index list.
func (b *Builder) Indices() []uint32 { return b.indices }

// Normal sets the current normal applied to subsequent vertices.
func (b *Builder) Normal(x, y, z float32) {
	b.curNormal = [3]float32{x, y, z}
}

// Color sets the current vertex color applied to subsequent vertices.
// Components are linear-space RGBA in [0, 1].
func (b *Builder) Color(r, g, bl, a float32) {
	b.curColor = [4]float32{r, g, bl, a}
}

// UV sets the current texture coordinate applied to subsequent vertices.
func (b *Builder) UV(u, v float32) {
	b.curUV = [2]float32{u, v}
}

// Vertex emits one vertex at the given position, capturing the current
// normal, color, UV, and custom attribute values.
func (b *Builder) Vertex(x, y, z float32) {
	b.positions = append(b.positions, x, y, z)
	b.normals = append(b.normals, b.curNormal[0], b.curNormal[1], b.curNormal[2])
	b.colors = append(b.colors, b.curColor[0], b.curColor[1], b.curColor[2], b.curColor[3])
	b.uvs = append(b.uvs, b.curUV[0], b.curUV[1])
	for i := range b.custom {
		b.custom[i].data = append(b.custom[i].data, b.custom[i].current...)
	}
}

// Index appends indices, validating each against the current vertex count.
func (b *Builder) Index(idxs ...uint32) error {
	n := uint32(b.VertexCount())
	for _, ix := range idxs {
		if ix >= n {
			return fmt.Errorf("%w: %d with %d vertices", ErrIndexRange, ix, n)
		}
	}
	b.indices = append(b.indices, idxs...)
	return nil
}

// DeclareAttribute registers a custom per-vertex attribute with the given
// component count (1-4). Must be called before the first vertex using it;
// vertices emitted earlier receive zero values for the attribute.
func (b *Builder) DeclareAttribute(name string, comps int) error {
	if comps < 1 || comps > 4 {
		return fmt.Errorf("mesh: attribute %q component count %d out of range", name, comps)
	}
	for i := range b.custom {
		if b.custom[i].name == name {
			return fmt.Errorf("%w: %q", ErrAttributeExists, name)
		}
	}
	b.custom = append(b.custom, customAttr{
		name:    name,
		comps:   comps,
		current: make([]float32, comps),
		data:    make([]float32, comps*b.VertexCount()),
	})
	return nil
}

// Attr sets the current value of a declared custom attribute.
func (b *Builder) Attr(name string, vals ...float32) error {
	for i := range b.custom {
		if b.custom[i].name != name {
			continue
		}
		if len(vals) != b.custom[i].comps {
			return fmt.Errorf("mesh: attribute %q expects %d components, got %d",
				name, b.custom[i].comps, len(vals))
		}
		copy(b.custom[i].current, vals)
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownAttribute, name)
}

// Attribute returns the accumulated data and component count for a
// declared custom attribute. The bool reports whether it exists.
func (b *Builder) Attribute(name string) ([]float32, int, bool) {
	for i := range b.custom {
		if b.custom[i].name == name {
			return b.custom[i].data, b.custom[i].comps, true
		}
	}
	return nil, 0, false
}

// AttributeNames returns the declared custom attribute names in
// declaration order.
func (b *Builder) AttributeNames() []string {
	names := make([]string, len(b.custom))
	for i := range b.custom {
		names[i] = b.custom[i].name
	}
	return names
}
