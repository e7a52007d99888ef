package sketch

import "github.com/chewxy/math32"

// Affine is a 3D affine transformation stored as a 3x4 matrix in
// row-major order:
//
//	| m0  m1  m2  m3  |
//	| m4  m5  m6  m7  |
//	| m8  m9  m10 m11 |
//
// representing the transformation:
//
//	x' = m0*x + m1*y + m2*z  + m3
//	y' = m4*x + m5*y + m6*z  + m7
//	z' = m8*x + m9*y + m10*z + m11
//
// Affine is comparable; batch-splitting uses exact equality.
type Affine struct {
	M [12]float32
}

// AffineIdentity returns the identity transformation.
func AffineIdentity() Affine {
	return Affine{M: [12]float32{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
	}}
}

// Translation creates a translation transform.
func Translation(x, y, z float32) Affine {
	return Affine{M: [12]float32{
		1, 0, 0, x,
		0, 1, 0, y,
		0, 0, 1, z,
	}}
}

// Scaling creates a scaling transform about the origin.
func Scaling(x, y, z float32) Affine {
	return Affine{M: [12]float32{
		x, 0, 0, 0,
		0, y, 0, 0,
		0, 0, z, 0,
	}}
}

// RotationZ creates a rotation about the Z axis (angle in radians).
func RotationZ(angle float32) Affine {
	cos := math32.Cos(angle)
	sin := math32.Sin(angle)
	return Affine{M: [12]float32{
		cos, -sin, 0, 0,
		sin, cos, 0, 0,
		0, 0, 1, 0,
	}}
}

// ShearingX creates a shear of the X axis by the given angle: x is
// displaced proportionally to y.
func ShearingX(angle float32) Affine {
	t := math32.Tan(angle)
	return Affine{M: [12]float32{
		1, t, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
	}}
}

// ShearingY creates a shear of the Y axis by the given angle: y is
// displaced proportionally to x.
func ShearingY(angle float32) Affine {
	t := math32.Tan(angle)
	return Affine{M: [12]float32{
		1, 0, 0, 0,
		t, 1, 0, 0,
		0, 0, 1, 0,
	}}
}

// Mul composes two transforms (a then, in a's local frame, other):
// the result applies other first, then a.
func (a Affine) Mul(other Affine) Affine {
	var r Affine
	for row := 0; row < 3; row++ {
		ar := a.M[row*4:]
		for col := 0; col < 4; col++ {
			v := ar[0]*other.M[col] + ar[1]*other.M[4+col] + ar[2]*other.M[8+col]
			if col == 3 {
				v += ar[3]
			}
			r.M[row*4+col] = v
		}
	}
	return r
}

// TransformPoint applies the transformation to a point.
func (a Affine) TransformPoint(x, y, z float32) (float32, float32, float32) {
	return a.M[0]*x + a.M[1]*y + a.M[2]*z + a.M[3],
		a.M[4]*x + a.M[5]*y + a.M[6]*z + a.M[7],
		a.M[8]*x + a.M[9]*y + a.M[10]*z + a.M[11]
}

// IsIdentity reports whether the transform is exactly the identity.
func (a Affine) IsIdentity() bool {
	return a == AffineIdentity()
}
