// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package mesh

import (
	"testing"

	"github.com/chewxy/math32"
)

func TestBox(t *testing.T) {
	b := NewBuilder(TriangleList)
	b.Box(2, 4, 6, [4]float32{1, 1, 1, 1})

	if got := b.VertexCount(); got != 24 {
		t.Fatalf("VertexCount = %d, want 24", got)
	}
	if got := b.IndexCount(); got != 36 {
		t.Fatalf("IndexCount = %d, want 36", got)
	}
	checkIndices(t, b)

	// Every vertex sits on the surface of the centered box.
	pos := b.Positions()
	for i := 0; i < len(pos); i += 3 {
		x, y, z := math32.Abs(pos[i]), math32.Abs(pos[i+1]), math32.Abs(pos[i+2])
		if x > 1 || y > 2 || z > 3 {
			t.Fatalf("vertex (%g,%g,%g) outside box", pos[i], pos[i+1], pos[i+2])
		}
		if x != 1 && y != 2 && z != 3 {
			t.Fatalf("vertex (%g,%g,%g) not on any face", pos[i], pos[i+1], pos[i+2])
		}
	}

	// Face normals must be unit axis vectors.
	nrm := b.Normals()
	for i := 0; i < len(nrm); i += 3 {
		sum := math32.Abs(nrm[i]) + math32.Abs(nrm[i+1]) + math32.Abs(nrm[i+2])
		if sum != 1 {
			t.Fatalf("normal (%g,%g,%g) not axis-aligned", nrm[i], nrm[i+1], nrm[i+2])
		}
	}
}

func TestSphere(t *testing.T) {
	const radius = 3.0
	sectors, stacks := 12, 6

	b := NewBuilder(TriangleList)
	b.Sphere(radius, sectors, stacks, [4]float32{1, 1, 1, 1})

	wantVerts := (sectors + 1) * (stacks + 1)
	if got := b.VertexCount(); got != wantVerts {
		t.Fatalf("VertexCount = %d, want %d", got, wantVerts)
	}
	// Pole rows each drop one triangle per sector.
	wantTris := sectors * (2*stacks - 2)
	if got := b.IndexCount(); got != wantTris*3 {
		t.Fatalf("IndexCount = %d, want %d", got, wantTris*3)
	}
	checkIndices(t, b)

	pos := b.Positions()
	for i := 0; i < len(pos); i += 3 {
		r := math32.Sqrt(pos[i]*pos[i] + pos[i+1]*pos[i+1] + pos[i+2]*pos[i+2])
		if math32.Abs(r-radius) > 1e-4 {
			t.Fatalf("vertex radius %g, want %g", r, radius)
		}
	}
}

func TestSphereClampsSubdivisions(t *testing.T) {
	b := NewBuilder(TriangleList)
	b.Sphere(1, 0, 0, [4]float32{1, 1, 1, 1})

	// Clamped to 3 sectors / 2 stacks.
	if got := b.VertexCount(); got != 4*3 {
		t.Fatalf("VertexCount = %d, want 12", got)
	}
	checkIndices(t, b)
}
