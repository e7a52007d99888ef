package sketch

// TransformStack is the coordinate-system stack driving every drawn
// primitive. Each operation composes a delta transform onto the current
// transform via right-multiplication, so deltas apply in the local
// frame established by prior operations, matching the nested coordinate
// systems of a conventional 2D graphics API.
type TransformStack struct {
	current Affine
	saved   []Affine
}

// NewTransformStack creates a stack with the identity transform.
func NewTransformStack() TransformStack {
	return TransformStack{current: AffineIdentity()}
}

// Current returns the composed transform.
func (s *TransformStack) Current() Affine { return s.current }

// Push saves the current transform.
func (s *TransformStack) Push() {
	s.saved = append(s.saved, s.current)
}

// Pop restores the most recently pushed transform. Popping an empty
// stack is a no-op and returns false; this leniency is intentional so
// unbalanced sketches keep running.
func (s *TransformStack) Pop() bool {
	if len(s.saved) == 0 {
		return false
	}
	s.current = s.saved[len(s.saved)-1]
	s.saved = s.saved[:len(s.saved)-1]
	return true
}

// Reset restores the identity transform. Saved transforms are kept, so
// a Pop after Reset still restores the matching Push.
func (s *TransformStack) Reset() {
	s.current = AffineIdentity()
}

// Depth returns the number of saved transforms.
func (s *TransformStack) Depth() int { return len(s.saved) }

// Translate composes a translation in the local frame.
func (s *TransformStack) Translate(x, y float32) {
	s.current = s.current.Mul(Translation(x, y, 0))
}

// Rotate composes a rotation about the local Z axis (radians).
func (s *TransformStack) Rotate(angle float32) {
	s.current = s.current.Mul(RotationZ(angle))
}

// Scale composes a scale in the local frame.
func (s *TransformStack) Scale(x, y float32) {
	s.current = s.current.Mul(Scaling(x, y, 1))
}

// ShearX composes a shear of the local X axis by the given angle.
func (s *TransformStack) ShearX(angle float32) {
	s.current = s.current.Mul(ShearingX(angle))
}

// ShearY composes a shear of the local Y axis by the given angle.
func (s *TransformStack) ShearY(angle float32) {
	s.current = s.current.Mul(ShearingY(angle))
}
