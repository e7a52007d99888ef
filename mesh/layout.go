// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package mesh

import "fmt"

// AttributeFormat describes the component layout of one vertex attribute.
type AttributeFormat uint8

const (
	Float32 AttributeFormat = iota + 1
	Float32x2
	Float32x3
	Float32x4
)

// Components returns the number of float32 components for the format.
func (f AttributeFormat) Components() int {
	switch f {
	case Float32:
		return 1
	case Float32x2:
		return 2
	case Float32x3:
		return 3
	case Float32x4:
		return 4
	default:
		return 0
	}
}

// LayoutAttribute names one attribute within a vertex layout.
type LayoutAttribute struct {
	Name   string
	Format AttributeFormat
}

// Standard attribute names shared by every layout.
const (
	AttrPosition = "position"
	AttrNormal   = "normal"
	AttrColor    = "color"
	AttrUV       = "uv"
)

// Layout is a validated set of vertex attributes. Builders created
// against a layout reject custom attributes the layout does not declare.
type Layout struct {
	attrs []LayoutAttribute
}

// NewLayout builds a layout from the given custom attributes. The
// standard position/normal/color/uv attributes are implicit and must not
// be redeclared.
func NewLayout(attrs ...LayoutAttribute) (Layout, error) {
	seen := map[string]bool{
		AttrPosition: true, AttrNormal: true, AttrColor: true, AttrUV: true,
	}
	for _, a := range attrs {
		if a.Format.Components() == 0 {
			return Layout{}, fmt.Errorf("mesh: attribute %q has invalid format", a.Name)
		}
		if seen[a.Name] {
			return Layout{}, fmt.Errorf("%w: %q", ErrAttributeExists, a.Name)
		}
		seen[a.Name] = true
	}
	return Layout{attrs: attrs}, nil
}

// Attributes returns the custom attributes in declaration order.
func (l Layout) Attributes() []LayoutAttribute { return l.attrs }

// NewBuilderWithLayout creates a builder with every custom attribute of
// the layout pre-declared.
func NewBuilderWithLayout(t Topology, l Layout) *Builder {
	b := NewBuilder(t)
	for _, a := range l.attrs {
		// Names were validated by NewLayout; declaration cannot fail.
		_ = b.DeclareAttribute(a.Name, a.Format.Components())
	}
	return b
}
