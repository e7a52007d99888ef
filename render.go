package sketch

import "github.com/gogpu/sketch/mesh"

// Opaque handles for assets owned by the external collaborators.
type (
	// MeshHandle references an uploaded mesh in the registry.
	MeshHandle uint64

	// MaterialHandle references a material in the registry.
	MaterialHandle uint64

	// ImageHandle references an image asset usable as a background
	// texture.
	ImageHandle uint64

	// DrawableHandle references a spawned drawable entity.
	DrawableHandle uint64

	// TextureHandle references a texture owned by a Device.
	TextureHandle uint64

	// LayoutHandle references a registered vertex layout.
	LayoutHandle uint64
)

// Registry is the asset/scene collaborator: it owns meshes, materials,
// and drawable entities. The flush engine spawns one drawable per batch
// and despawns it before the next flush.
//
// Implementations are expected to be used from the canvas-owning
// goroutine only; see the package concurrency notes on Context.
type Registry interface {
	// CreateMesh uploads the builder's vertex and index data and
	// returns a handle to the stored mesh.
	CreateMesh(b *mesh.Builder) (MeshHandle, error)

	// DestroyMesh releases a mesh. Returns ErrGeometryNotFound (or an
	// error wrapping it) for a dead handle.
	DestroyMesh(h MeshHandle) error

	// CreateMaterial allocates a renderable material described by the
	// key. Treated as expensive; called once per batch.
	CreateMaterial(key MaterialKey) (MaterialHandle, error)

	// DestroyMaterial releases a material. Returns ErrMaterialNotFound
	// (or an error wrapping it) for a dead handle.
	DestroyMaterial(h MaterialHandle) error

	// Spawn creates a drawable entity rendering the mesh with the
	// material under the given world transform, tagged with the
	// owning canvas's render layer.
	Spawn(meshH MeshHandle, materialH MaterialHandle, transform Affine, layer uint8, owner Canvas) (DrawableHandle, error)

	// Despawn retires a drawable entity.
	Despawn(h DrawableHandle) error
}

// Device is the GPU collaborator backing canvas textures. It must
// support creating textures, blocking readback of a whole texture, and
// writing a texture sub-region.
type Device interface {
	// CreateTexture allocates a width x height texture in the given
	// format, usable as a render target and copy source/destination.
	CreateTexture(width, height int, format TextureFormat) (TextureHandle, error)

	// DestroyTexture releases a texture.
	DestroyTexture(h TextureHandle) error

	// ReadTexture copies the texture into CPU-accessible memory and
	// blocks until the copy completes. Rows in the returned buffer may
	// be padded to a device-specific alignment; paddedBytesPerRow
	// reports the actual row stride.
	ReadTexture(h TextureHandle) (data []byte, paddedBytesPerRow int, err error)

	// WriteTexture writes tightly packed texel data (no row padding)
	// into the given region of the texture.
	WriteTexture(h TextureHandle, x, y, width, height int, data []byte) error
}
