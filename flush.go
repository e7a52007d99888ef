package sketch

import "github.com/gogpu/sketch/mesh"

// Flush drains the canvas's command log into GPU batches for the
// current frame.
//
// Consecutive shape commands sharing a material key and transform are
// merged into one mesh; every batch becomes one drawable entity spawned
// through the registry, offset in depth by -batchIndex*epsilon so later
// batches render on top of earlier ones. Transient drawables from the
// previous flush are retired first, and the log is cleared atomically
// before replay.
//
// Commands referencing dead handles are logged and skipped; a flush
// never aborts halfway because of one bad reference.
func (ctx *Context) Flush(c Canvas) error {
	cs, err := ctx.canvas(c)
	if err != nil {
		return err
	}
	ctx.retire(cs)

	log := cs.log
	cs.log = nil
	if len(log) == 0 {
		return nil
	}

	f := flusher{ctx: ctx, canvas: c, cs: cs}
	for _, cmd := range log {
		if cs.state.apply(cmd) {
			continue
		}
		switch cmd := cmd.(type) {
		case Rect:
			f.rect(cmd)
		case DrawMesh:
			f.drawMesh(cmd)
		case DrawBox:
			b := mesh.NewBuilder(mesh.TriangleList)
			b.Box(cmd.W, cmd.H, cmd.D, f.shapeColor().Array())
			f.spawnStandalone(b)
		case DrawSphere:
			b := mesh.NewBuilder(mesh.TriangleList)
			b.Sphere(cmd.Radius, cmd.Sectors, cmd.Stacks, f.shapeColor().Array())
			f.spawnStandalone(b)
		case BackgroundColor:
			key := cs.state.key.withBackground(0, !cmd.Color.Opaque())
			f.background(key, cmd.Color)
		case BackgroundImage:
			key := cs.state.key.withBackground(cmd.Image, false)
			f.background(key, White)
		}
	}
	f.closeBatch()

	Logger().Debug("sketch: flush complete",
		"canvas", uint64(c), "commands", len(log), "batches", f.drawIndex)
	return nil
}

// flusher is the per-flush batching state machine. It lives for exactly
// one Flush call.
type flusher struct {
	ctx    *Context
	canvas Canvas
	cs     *canvasState

	batch     *mesh.Builder // nil when no batch is open
	key       MaterialKey
	transform Affine
	drawIndex uint32
}

// shapeColor is the paint color for whole-mesh draws (box, sphere,
// standalone meshes): the fill color when set, otherwise white.
func (f *flusher) shapeColor() Color {
	if f.cs.state.hasFill {
		return f.cs.state.fill
	}
	return White
}

// rect emits up to two tessellation passes for one Rect command. Fill
// and stroke each derive their own material key from their own color,
// so a single Rect can legitimately split a batch between its passes.
func (f *flusher) rect(cmd Rect) {
	st := &f.cs.state
	if st.hasFill {
		key := st.key.shapeKey(st.fill)
		f.ensureBatch(key)
		f.batch.RoundedRect(cmd.X, cmd.Y, cmd.W, cmd.H, cmd.Radii, st.fill.Array())
	}
	if st.hasStroke {
		key := st.key.shapeKey(st.stroke)
		f.ensureBatch(key)
		f.batch.RoundedRectStroke(cmd.X, cmd.Y, cmd.W, cmd.H, st.weight, cmd.Radii, st.stroke.Array())
	}
}

// ensureBatch keeps the open batch when its key and transform match the
// current state, and otherwise closes it and opens a fresh one. This is
// the central batching invariant: merging only ever groups adjacent
// compatible shapes and never reorders commands.
func (f *flusher) ensureBatch(key MaterialKey) {
	tf := f.cs.state.transform.Current()
	if f.batch != nil && key == f.key && tf == f.transform {
		return
	}
	f.closeBatch()
	f.batch = mesh.NewBuilder(mesh.TriangleList)
	f.key = key
	f.transform = tf
}

// closeBatch spawns the open batch as one drawable entity and advances
// the draw index. Empty batches are discarded.
func (f *flusher) closeBatch() {
	if f.batch == nil {
		return
	}
	b := f.batch
	f.batch = nil
	if b.Empty() {
		return
	}
	f.spawn(0, b, f.key, f.transform, true)
}

// spawnStandalone force-closes the open batch and spawns a whole mesh
// as its own drawable under the current state key and transform.
func (f *flusher) spawnStandalone(b *mesh.Builder) {
	f.closeBatch()
	key := f.cs.state.key.shapeKey(f.shapeColor())
	f.spawn(0, b, key, f.cs.state.transform.Current(), true)
}

// drawMesh force-closes the open batch and spawns a caller-owned mesh.
// A dead mesh handle is logged and skipped without aborting the flush.
func (f *flusher) drawMesh(cmd DrawMesh) {
	f.closeBatch()
	key := f.cs.state.key.shapeKey(f.shapeColor())
	f.spawn(cmd.Mesh, nil, key, f.cs.state.transform.Current(), false)
}

// background force-closes the open batch and spawns a full-canvas quad
// in canvas space (identity transform), then leaves no batch open.
// Backgrounds never participate in shape merging.
func (f *flusher) background(key MaterialKey, color Color) {
	f.closeBatch()
	b := mesh.NewBuilder(mesh.TriangleList)
	b.Quad(0, 0, float32(f.cs.width), float32(f.cs.height), color.Array())
	f.spawn(0, b, key, AffineIdentity(), true)
}

// spawn materializes the key, uploads the builder when one is given,
// and spawns the drawable with the batch's depth offset. Errors are
// logged and the batch is skipped; partially created resources are
// released. The draw index advances even for skipped batches so depth
// offsets stay stable.
func (f *flusher) spawn(meshH MeshHandle, b *mesh.Builder, key MaterialKey, tf Affine, ownMesh bool) {
	index := f.drawIndex
	f.drawIndex++

	reg := f.ctx.registry
	materialH, ownMaterial, err := key.materialize(reg)
	if err != nil {
		Logger().Warn("sketch: skipping batch, material failed",
			"canvas", uint64(f.canvas), "error", err)
		return
	}
	cleanupMaterial := func() {
		if ownMaterial {
			if derr := reg.DestroyMaterial(materialH); derr != nil {
				Logger().Warn("sketch: destroy material after failed batch", "error", derr)
			}
		}
	}

	if b != nil {
		meshH, err = reg.CreateMesh(b)
		if err != nil {
			Logger().Warn("sketch: skipping batch, mesh upload failed",
				"canvas", uint64(f.canvas), "error", err)
			cleanupMaterial()
			return
		}
	}

	world := Translation(0, 0, -float32(index)*f.ctx.opts.depthEpsilon).Mul(tf)
	drawable, err := reg.Spawn(meshH, materialH, world, f.cs.layer, f.canvas)
	if err != nil {
		Logger().Warn("sketch: skipping batch, spawn failed",
			"canvas", uint64(f.canvas), "error", err)
		if ownMesh && b != nil {
			if derr := reg.DestroyMesh(meshH); derr != nil {
				Logger().Warn("sketch: destroy mesh after failed batch", "error", derr)
			}
		}
		cleanupMaterial()
		return
	}

	t := transient{drawable: drawable}
	if ownMesh && b != nil {
		t.mesh = meshH
	}
	if ownMaterial {
		t.material = materialH
	}
	f.cs.transients = append(f.cs.transients, t)
}
