package sketch

import (
	"fmt"

	"github.com/gogpu/sketch/mesh"
)

// Geometry is an opaque handle to an in-progress standalone geometry.
// Standalone geometries are built vertex by vertex, finished into a
// registry mesh, and drawn with DrawMesh. Unlike batch meshes they are
// caller-owned and survive flushes until explicitly destroyed.
type Geometry uint64

// RegisterLayout registers a vertex layout describing custom attributes
// beyond the built-in position/normal/color/uv set. Geometries created
// against the layout have the custom attributes pre-declared.
func (ctx *Context) RegisterLayout(attrs ...mesh.LayoutAttribute) (LayoutHandle, error) {
	l, err := mesh.NewLayout(attrs...)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	ctx.nextHandle++
	h := LayoutHandle(ctx.nextHandle)
	ctx.layouts[h] = l
	return h, nil
}

// CreateGeometry starts an empty standalone geometry with the given
// topology and only the built-in attributes.
func (ctx *Context) CreateGeometry(t mesh.Topology) (Geometry, error) {
	ctx.nextHandle++
	g := Geometry(ctx.nextHandle)
	ctx.geometries[g] = mesh.NewBuilder(t)
	return g, nil
}

// CreateGeometryWithLayout starts an empty standalone geometry whose
// custom attributes follow a registered layout.
func (ctx *Context) CreateGeometryWithLayout(t mesh.Topology, layout LayoutHandle) (Geometry, error) {
	l, ok := ctx.layouts[layout]
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrLayoutNotFound, layout)
	}
	ctx.nextHandle++
	g := Geometry(ctx.nextHandle)
	ctx.geometries[g] = mesh.NewBuilderWithLayout(t, l)
	return g, nil
}

// geometry resolves a geometry handle.
func (ctx *Context) geometry(g Geometry) (*mesh.Builder, error) {
	b, ok := ctx.geometries[g]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrGeometryNotFound, g)
	}
	return b, nil
}

// GeometryVertex emits one vertex, capturing the current normal, color,
// UV, and custom attribute values.
func (ctx *Context) GeometryVertex(g Geometry, x, y, z float32) error {
	b, err := ctx.geometry(g)
	if err != nil {
		return err
	}
	b.Vertex(x, y, z)
	return nil
}

// GeometryNormal sets the current normal for subsequent vertices.
func (ctx *Context) GeometryNormal(g Geometry, x, y, z float32) error {
	b, err := ctx.geometry(g)
	if err != nil {
		return err
	}
	b.Normal(x, y, z)
	return nil
}

// GeometryColor sets the current vertex color for subsequent vertices.
func (ctx *Context) GeometryColor(g Geometry, c Color) error {
	b, err := ctx.geometry(g)
	if err != nil {
		return err
	}
	b.Color(c.R, c.G, c.B, c.A)
	return nil
}

// GeometryUV sets the current texture coordinate for subsequent
// vertices.
func (ctx *Context) GeometryUV(g Geometry, u, v float32) error {
	b, err := ctx.geometry(g)
	if err != nil {
		return err
	}
	b.UV(u, v)
	return nil
}

// GeometryAttr sets the current value of a custom attribute declared by
// the geometry's layout.
func (ctx *Context) GeometryAttr(g Geometry, name string, vals ...float32) error {
	b, err := ctx.geometry(g)
	if err != nil {
		return err
	}
	if err := b.Attr(name, vals...); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	return nil
}

// GeometryIndex appends triangle/line indices, validated against the
// vertices emitted so far.
func (ctx *Context) GeometryIndex(g Geometry, idxs ...uint32) error {
	b, err := ctx.geometry(g)
	if err != nil {
		return err
	}
	if err := b.Index(idxs...); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	return nil
}

// FinishGeometry uploads the geometry through the registry and returns
// the resulting mesh handle for use with DrawMesh. The geometry handle
// is consumed.
func (ctx *Context) FinishGeometry(g Geometry) (MeshHandle, error) {
	b, err := ctx.geometry(g)
	if err != nil {
		return 0, err
	}
	if b.Empty() {
		return 0, fmt.Errorf("%w: geometry has no vertices", ErrInvalidArgument)
	}
	h, err := ctx.registry.CreateMesh(b)
	if err != nil {
		return 0, fmt.Errorf("upload geometry: %w", err)
	}
	delete(ctx.geometries, g)
	return h, nil
}

// DiscardGeometry drops an unfinished geometry without uploading it.
func (ctx *Context) DiscardGeometry(g Geometry) error {
	if _, err := ctx.geometry(g); err != nil {
		return err
	}
	delete(ctx.geometries, g)
	return nil
}

// DestroyMesh releases a mesh previously returned by FinishGeometry.
func (ctx *Context) DestroyMesh(h MeshHandle) error {
	return ctx.registry.DestroyMesh(h)
}

// CreatePBRMaterial allocates an explicit lit material with stock
// defaults, for use with the UseMaterial command. The caller owns the
// handle; flushes never destroy it.
func (ctx *Context) CreatePBRMaterial() (MaterialHandle, error) {
	return ctx.registry.CreateMaterial(defaultPbrKey())
}

// DestroyMaterial releases an explicitly created material.
func (ctx *Context) DestroyMaterial(h MaterialHandle) error {
	return ctx.registry.DestroyMaterial(h)
}
