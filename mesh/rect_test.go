// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package mesh

import "testing"

// checkIndices verifies every index references an emitted vertex.
func checkIndices(t *testing.T, b *Builder) {
	t.Helper()
	n := uint32(b.VertexCount())
	for i, ix := range b.Indices() {
		if ix >= n {
			t.Fatalf("index %d = %d out of range (%d vertices)", i, ix, n)
		}
	}
}

// checkBounds verifies all positions stay within the given box.
func checkBounds(t *testing.T, b *Builder, x0, y0, x1, y1 float32) {
	t.Helper()
	pos := b.Positions()
	const eps = 1e-4
	for i := 0; i < len(pos); i += 3 {
		if pos[i] < x0-eps || pos[i] > x1+eps || pos[i+1] < y0-eps || pos[i+1] > y1+eps {
			t.Fatalf("vertex (%g,%g) outside [%g,%g]x[%g,%g]",
				pos[i], pos[i+1], x0, x1, y0, y1)
		}
	}
}

func TestQuad(t *testing.T) {
	b := NewBuilder(TriangleList)
	b.Quad(10, 20, 30, 40, [4]float32{1, 0, 0, 1})

	if got := b.VertexCount(); got != 4 {
		t.Fatalf("VertexCount = %d, want 4", got)
	}
	if got := b.IndexCount(); got != 6 {
		t.Fatalf("IndexCount = %d, want 6", got)
	}
	checkIndices(t, b)
	checkBounds(t, b, 10, 20, 40, 60)
}

func TestRoundedRectSquareCorners(t *testing.T) {
	b := NewBuilder(TriangleList)
	b.RoundedRect(0, 0, 10, 10, [4]float32{0, 0, 0, 0}, [4]float32{1, 1, 1, 1})

	// Center plus two contour points per square corner.
	if got := b.VertexCount(); got != 9 {
		t.Fatalf("VertexCount = %d, want 9", got)
	}
	checkIndices(t, b)
	checkBounds(t, b, 0, 0, 10, 10)
}

func TestRoundedRectArcCorners(t *testing.T) {
	b := NewBuilder(TriangleList)
	b.RoundedRect(0, 0, 20, 20, [4]float32{5, 5, 5, 5}, [4]float32{1, 1, 1, 1})

	// Center plus (cornerSegments+1) points per rounded corner.
	want := 1 + 4*(cornerSegments+1)
	if got := b.VertexCount(); got != want {
		t.Fatalf("VertexCount = %d, want %d", got, want)
	}
	checkIndices(t, b)
	checkBounds(t, b, 0, 0, 20, 20)
}

func TestRoundedRectRadiusClamp(t *testing.T) {
	b := NewBuilder(TriangleList)
	// Radius far larger than the rectangle: must clamp to min(w,h)/2.
	b.RoundedRect(0, 0, 10, 4, [4]float32{100, 100, 100, 100}, [4]float32{1, 1, 1, 1})
	checkIndices(t, b)
	checkBounds(t, b, 0, 0, 10, 4)
}

func TestRoundedRectStroke(t *testing.T) {
	b := NewBuilder(TriangleList)
	b.RoundedRectStroke(0, 0, 10, 10, 2, [4]float32{0, 0, 0, 0}, [4]float32{0, 0, 0, 1})

	if b.VertexCount() == 0 {
		t.Fatal("stroke emitted no vertices")
	}
	if b.VertexCount()%2 != 0 {
		t.Fatalf("stroke vertices must pair outer/inner, got %d", b.VertexCount())
	}
	checkIndices(t, b)
	// Stroke extends half the weight beyond the rectangle.
	checkBounds(t, b, -1, -1, 11, 11)
}

func TestRoundedRectStrokeZeroWeight(t *testing.T) {
	b := NewBuilder(TriangleList)
	b.RoundedRectStroke(0, 0, 10, 10, 0, [4]float32{0, 0, 0, 0}, [4]float32{0, 0, 0, 1})
	if !b.Empty() {
		t.Fatal("zero-weight stroke must emit nothing")
	}
}
