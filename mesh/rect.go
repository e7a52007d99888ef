// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package mesh

import "github.com/chewxy/math32"

// cornerSegments is the number of arc subdivisions per rounded corner.
const cornerSegments = 8

// contourPoint is one point on a rectangle outline together with its
// outward unit normal. Square corners appear twice, once per adjacent
// edge normal, so stroke expansion produces a clean corner joint.
type contourPoint struct {
	px, py float32
	nx, ny float32
}

// clampRadii limits each corner radius to half the shorter rectangle
// side and floors negatives at zero. Radii order is top-left, top-right,
// bottom-right, bottom-left.
func clampRadii(w, h float32, radii [4]float32) [4]float32 {
	limit := w
	if h < w {
		limit = h
	}
	limit /= 2
	for i := range radii {
		if radii[i] < 0 {
			radii[i] = 0
		}
		if radii[i] > limit {
			radii[i] = limit
		}
	}
	return radii
}

// roundedRectContour walks the outline of an axis-aligned rectangle
// clockwise in screen coordinates (y down), starting at the top-left
// corner. Rounded corners contribute cornerSegments+1 arc points each;
// square corners contribute two coincident points with the two edge
// normals.
func roundedRectContour(x, y, w, h float32, radii [4]float32) []contourPoint {
	radii = clampRadii(w, h, radii)

	// Corner arc parameters: center and outward-normal angle range.
	// Angles measured with y pointing down, so the sweep runs clockwise.
	corners := [4]struct {
		cx, cy     float32
		from, to   float32
		nxa, nya   float32 // first edge normal for a square corner
		nxb, nyb   float32 // second edge normal for a square corner
		px, py     float32 // corner point when radius is zero
	}{
		{x + radii[0], y + radii[0], math32.Pi, math32.Pi * 3 / 2, -1, 0, 0, -1, x, y},
		{x + w - radii[1], y + radii[1], math32.Pi * 3 / 2, math32.Pi * 2, 0, -1, 1, 0, x + w, y},
		{x + w - radii[2], y + h - radii[2], 0, math32.Pi / 2, 1, 0, 0, 1, x + w, y + h},
		{x + radii[3], y + h - radii[3], math32.Pi / 2, math32.Pi, 0, 1, -1, 0, x, y + h},
	}

	pts := make([]contourPoint, 0, 4*(cornerSegments+1))
	for i, c := range corners {
		r := radii[i]
		if r == 0 {
			pts = append(pts,
				contourPoint{c.px, c.py, c.nxa, c.nya},
				contourPoint{c.px, c.py, c.nxb, c.nyb})
			continue
		}
		for s := 0; s <= cornerSegments; s++ {
			t := float32(s) / cornerSegments
			a := c.from + (c.to-c.from)*t
			nx, ny := math32.Cos(a), math32.Sin(a)
			pts = append(pts, contourPoint{c.cx + r*nx, c.cy + r*ny, nx, ny})
		}
	}
	return pts
}

// Quad appends a filled axis-aligned rectangle as two triangles with
// UVs spanning [0,1] and normals facing +Z.
func (b *Builder) Quad(x, y, w, h float32, color [4]float32) {
	b.Normal(0, 0, 1)
	b.Color(color[0], color[1], color[2], color[3])

	base := uint32(b.VertexCount())
	corners := [4][4]float32{
		{x, y, 0, 0},
		{x + w, y, 1, 0},
		{x + w, y + h, 1, 1},
		{x, y + h, 0, 1},
	}
	for _, c := range corners {
		b.UV(c[2], c[3])
		b.Vertex(c[0], c[1], 0)
	}
	_ = b.Index(base, base+1, base+2)
	_ = b.Index(base, base+2, base+3)
}

// RoundedRect appends a filled axis-aligned rounded rectangle as a
// triangle fan around the rectangle center. Radii order is top-left,
// top-right, bottom-right, bottom-left; each radius is clamped to half
// of min(w, h). UVs span the rectangle bounds; normals face +Z.
func (b *Builder) RoundedRect(x, y, w, h float32, radii [4]float32, color [4]float32) {
	contour := roundedRectContour(x, y, w, h, radii)
	n := len(contour)

	b.Normal(0, 0, 1)
	b.Color(color[0], color[1], color[2], color[3])

	base := uint32(b.VertexCount())
	b.UV(0.5, 0.5)
	b.Vertex(x+w/2, y+h/2, 0)
	for _, p := range contour {
		b.UV((p.px-x)/w, (p.py-y)/h)
		b.Vertex(p.px, p.py, 0)
	}
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		// Fan triangles; indices are freshly emitted so Index cannot fail.
		_ = b.Index(base, base+1+uint32(i), base+1+uint32(j))
	}
}

// RoundedRectStroke appends the outline of an axis-aligned rounded
// rectangle as a closed quad strip of the given stroke weight, centered
// on the rectangle edge. Radii apply identically to the inner and outer
// contours.
func (b *Builder) RoundedRectStroke(x, y, w, h, weight float32, radii [4]float32, color [4]float32) {
	if weight <= 0 {
		return
	}
	contour := roundedRectContour(x, y, w, h, radii)
	n := len(contour)
	half := weight / 2

	b.Normal(0, 0, 1)
	b.Color(color[0], color[1], color[2], color[3])

	base := uint32(b.VertexCount())
	for _, p := range contour {
		b.UV((p.px-x)/w, (p.py-y)/h)
		b.Vertex(p.px+p.nx*half, p.py+p.ny*half, 0) // outer
		b.Vertex(p.px-p.nx*half, p.py-p.ny*half, 0) // inner
	}
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		o0, i0 := base+2*uint32(i), base+2*uint32(i)+1
		o1, i1 := base+2*uint32(j), base+2*uint32(j)+1
		_ = b.Index(o0, i0, o1)
		_ = b.Index(i0, i1, o1)
	}
}
