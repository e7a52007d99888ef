package sketch

// renderState is the per-canvas paint and transform state consulted
// during replay. It persists across frames; BeginDraw is the only
// operation that resets it.
type renderState struct {
	fill      Color
	hasFill   bool
	stroke    Color
	hasStroke bool
	weight    float32
	key       MaterialKey
	transform TransformStack
}

// defaultRenderState returns the BeginDraw defaults: white fill, black
// stroke, weight 1, flat-color material, identity transform.
func defaultRenderState() renderState {
	return renderState{
		fill:      White,
		hasFill:   true,
		stroke:    Black,
		hasStroke: true,
		weight:    1,
		key:       DefaultMaterialKey(),
		transform: NewTransformStack(),
	}
}

// apply mutates the state for a state-only command and reports whether
// the command was one. Shape and background commands return false and
// are handled by the flush engine.
func (s *renderState) apply(cmd Command) bool {
	switch c := cmd.(type) {
	case SetFill:
		s.fill, s.hasFill = c.Color, true
	case ClearFill:
		s.hasFill = false
	case SetStroke:
		s.stroke, s.hasStroke = c.Color, true
	case ClearStroke:
		s.hasStroke = false
	case SetStrokeWeight:
		s.weight = c.Weight
	case UseMaterial:
		s.key = MaterialKey{Kind: MaterialCustom, Custom: c.Material}
	case SetMaterialProperty:
		key, err := s.key.applyProperty(c.Name, c.Value)
		if err != nil {
			Logger().Warn("sketch: skipping material property", "name", c.Name, "error", err)
			return true
		}
		s.key = key
	case PushTransform:
		s.transform.Push()
	case PopTransform:
		s.transform.Pop()
	case ResetTransform:
		s.transform.Reset()
	case Translate:
		s.transform.Translate(c.X, c.Y)
	case Rotate:
		s.transform.Rotate(c.Angle)
	case Scale:
		s.transform.Scale(c.X, c.Y)
	case ShearX:
		s.transform.ShearX(c.Angle)
	case ShearY:
		s.transform.ShearY(c.Angle)
	default:
		return false
	}
	return true
}
