package sketch

// Command is one recorded drawing operation. Commands are cheap values
// appended to a canvas's log by Record and replayed in order by Flush;
// recording never touches the GPU.
//
// The set of commands is closed: only the types in this file implement
// the interface, and the flush engine switches over them exhaustively.
type Command interface {
	isCommand()
}

// SetFill sets the fill color for subsequent shapes.
type SetFill struct{ Color Color }

// ClearFill disables fill geometry for subsequent shapes.
type ClearFill struct{}

// SetStroke sets the stroke color for subsequent shapes.
type SetStroke struct{ Color Color }

// ClearStroke disables stroke geometry for subsequent shapes.
type ClearStroke struct{}

// SetStrokeWeight sets the stroke width in canvas units.
type SetStrokeWeight struct{ Weight float32 }

// SetMaterialProperty switches the material to a lit PBR material and
// sets one of its properties by name. Recognized names: "base_color"
// (alias "color"), "metallic", "roughness" (alias
// "perceptual_roughness"), "emissive", "unlit". An unrecognized name is
// logged and skipped during replay.
type SetMaterialProperty struct {
	Name  string
	Value MaterialValue
}

// UseMaterial switches subsequent shapes to an explicitly created
// material. The handle is resolved at flush time; a dead handle is
// logged and skipped.
type UseMaterial struct{ Material MaterialHandle }

// Rect draws an axis-aligned rectangle with independently rounded
// corners. Radii order is top-left, top-right, bottom-right,
// bottom-left; each is clamped to half of min(W, H). Emits a fill pass
// if a fill color is set and a stroke pass if a stroke color is set.
type Rect struct {
	X, Y, W, H float32
	Radii      [4]float32
}

// DrawMesh draws a standalone mesh previously created through the
// registry (for example with FinishGeometry). The mesh is caller-owned
// and survives the flush.
type DrawMesh struct{ Mesh MeshHandle }

// DrawBox draws a box of the given extents centered on the local
// origin.
type DrawBox struct{ W, H, D float32 }

// DrawSphere draws a UV sphere with the given subdivision counts.
type DrawSphere struct {
	Radius          float32
	Sectors, Stacks int
}

// BackgroundColor fills the whole canvas with a color, underneath
// everything drawn afterwards in the same flush.
type BackgroundColor struct{ Color Color }

// BackgroundImage fills the whole canvas with an image.
type BackgroundImage struct{ Image ImageHandle }

// PushTransform saves the current transform.
type PushTransform struct{}

// PopTransform restores the most recently saved transform; a pop with
// nothing saved is a no-op.
type PopTransform struct{}

// ResetTransform restores the identity transform.
type ResetTransform struct{}

// Translate composes a translation in the local frame.
type Translate struct{ X, Y float32 }

// Rotate composes a rotation about the local Z axis (radians).
type Rotate struct{ Angle float32 }

// Scale composes a scale in the local frame.
type Scale struct{ X, Y float32 }

// ShearX composes a shear of the local X axis by the given angle.
type ShearX struct{ Angle float32 }

// ShearY composes a shear of the local Y axis by the given angle.
type ShearY struct{ Angle float32 }

func (SetFill) isCommand()             {}
func (ClearFill) isCommand()           {}
func (SetStroke) isCommand()           {}
func (ClearStroke) isCommand()         {}
func (SetStrokeWeight) isCommand()     {}
func (SetMaterialProperty) isCommand() {}
func (UseMaterial) isCommand()         {}
func (Rect) isCommand()                {}
func (DrawMesh) isCommand()            {}
func (DrawBox) isCommand()             {}
func (DrawSphere) isCommand()          {}
func (BackgroundColor) isCommand()     {}
func (BackgroundImage) isCommand()     {}
func (PushTransform) isCommand()       {}
func (PopTransform) isCommand()        {}
func (ResetTransform) isCommand()      {}
func (Translate) isCommand()           {}
func (Rotate) isCommand()              {}
func (Scale) isCommand()               {}
func (ShearX) isCommand()              {}
func (ShearY) isCommand()              {}

// MaterialValue is the value of a SetMaterialProperty command: a
// float, a color, or a boolean depending on the property.
type MaterialValue interface {
	isMaterialValue()
}

// FloatValue carries scalar properties such as "metallic".
type FloatValue float32

// ColorValue carries color properties such as "base_color".
type ColorValue Color

// BoolValue carries flag properties such as "unlit".
type BoolValue bool

func (FloatValue) isMaterialValue() {}
func (ColorValue) isMaterialValue() {}
func (BoolValue) isMaterialValue()  {}
