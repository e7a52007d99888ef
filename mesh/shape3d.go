// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package mesh

import "github.com/chewxy/math32"

// Box appends an axis-aligned box centered at the origin with the given
// extents. Each of the six faces has its own four vertices so normals
// stay flat per face; UVs span each face.
func (b *Builder) Box(w, h, d float32, color [4]float32) {
	hw, hh, hd := w/2, h/2, d/2

	// Per face: normal, then the four corners counterclockwise as seen
	// from outside (origin corner, +u corner, +u+v corner, +v corner).
	faces := [6]struct {
		n [3]float32
		v [4][3]float32
	}{
		{[3]float32{0, 0, 1}, [4][3]float32{{-hw, -hh, hd}, {hw, -hh, hd}, {hw, hh, hd}, {-hw, hh, hd}}},
		{[3]float32{0, 0, -1}, [4][3]float32{{hw, -hh, -hd}, {-hw, -hh, -hd}, {-hw, hh, -hd}, {hw, hh, -hd}}},
		{[3]float32{1, 0, 0}, [4][3]float32{{hw, -hh, hd}, {hw, -hh, -hd}, {hw, hh, -hd}, {hw, hh, hd}}},
		{[3]float32{-1, 0, 0}, [4][3]float32{{-hw, -hh, -hd}, {-hw, -hh, hd}, {-hw, hh, hd}, {-hw, hh, -hd}}},
		{[3]float32{0, 1, 0}, [4][3]float32{{-hw, hh, hd}, {hw, hh, hd}, {hw, hh, -hd}, {-hw, hh, -hd}}},
		{[3]float32{0, -1, 0}, [4][3]float32{{-hw, -hh, -hd}, {hw, -hh, -hd}, {hw, -hh, hd}, {-hw, -hh, hd}}},
	}
	uvs := [4][2]float32{{0, 1}, {1, 1}, {1, 0}, {0, 0}}

	b.Color(color[0], color[1], color[2], color[3])
	for _, f := range faces {
		base := uint32(b.VertexCount())
		b.Normal(f.n[0], f.n[1], f.n[2])
		for i, p := range f.v {
			b.UV(uvs[i][0], uvs[i][1])
			b.Vertex(p[0], p[1], p[2])
		}
		_ = b.Index(base, base+1, base+2)
		_ = b.Index(base, base+2, base+3)
	}
}

// Sphere appends a UV sphere of the given radius centered at the origin.
// sectors is the longitudinal subdivision count (minimum 3), stacks the
// latitudinal count (minimum 2). Degenerate triangles at the poles are
// skipped.
func (b *Builder) Sphere(radius float32, sectors, stacks int, color [4]float32) {
	if sectors < 3 {
		sectors = 3
	}
	if stacks < 2 {
		stacks = 2
	}

	b.Color(color[0], color[1], color[2], color[3])

	base := uint32(b.VertexCount())
	for st := 0; st <= stacks; st++ {
		elev := math32.Pi * float32(st) / float32(stacks)
		sinE, cosE := math32.Sin(elev), math32.Cos(elev)
		for se := 0; se <= sectors; se++ {
			ang := 2 * math32.Pi * float32(se) / float32(sectors)
			nx := sinE * math32.Cos(ang)
			ny := cosE
			nz := sinE * math32.Sin(ang)
			b.Normal(nx, ny, nz)
			b.UV(float32(se)/float32(sectors), float32(st)/float32(stacks))
			b.Vertex(radius*nx, radius*ny, radius*nz)
		}
	}

	ring := uint32(sectors + 1)
	for st := 0; st < stacks; st++ {
		for se := 0; se < sectors; se++ {
			a := base + uint32(st)*ring + uint32(se)
			c := a + ring
			if st != 0 {
				_ = b.Index(a, c, a+1)
			}
			if st != stacks-1 {
				_ = b.Index(a+1, c, c+1)
			}
		}
	}
}
