// Package render draws meshes with caller-built model matrices under one
// shared directional-light shader.
package render

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"tank-maze/internal/bounds"
	"tank-maze/internal/vmath"
)

// Built-in mesh keys.
const (
	Cube   = "cube"   // 2x2x2, centered: a unit half-extent cell cube
	Sphere = "sphere" // radius 1
	Disc   = "disc"   // radius 1, DiscThickness thick along Y, centered
)

// DiscThickness is the height of the Disc mesh.
const DiscThickness = 0.2

const (
	sphereRings  = 16
	sphereSlices = 16
	discSlices   = 24
)

type cached struct {
	mesh   rl.Mesh
	offset vmath.Matrix4
}

// shape is a mesh not yet uploaded, plus the model-space offset applied
// before the caller's model matrix.
type shape struct {
	gen    func() rl.Mesh
	offset vmath.Matrix4
}

// Registry maps mesh keys to GPU meshes. Meshes and the shader are created
// on first Draw, after the window and GL context exist.
type Registry struct {
	shapes map[string]shape
	cache  map[string]cached
	mtl    rl.Material
	loaded bool

	viewPos  [3]float32
	lightDir [3]float32
}

func NewRegistry() *Registry {
	r := &Registry{
		shapes:   make(map[string]shape),
		cache:    make(map[string]cached),
		lightDir: [3]float32{0.5, 1, 0.3},
	}
	r.shapes[Cube] = shape{gen: func() rl.Mesh { return rl.GenMeshCube(2, 2, 2) }, offset: vmath.Identity()}
	r.shapes[Sphere] = shape{gen: func() rl.Mesh { return rl.GenMeshSphere(1, sphereRings, sphereSlices) }, offset: vmath.Identity()}
	// raylib's cylinder stands on y=0
	r.shapes[Disc] = shape{
		gen:    func() rl.Mesh { return rl.GenMeshCylinder(1, DiscThickness, discSlices) },
		offset: vmath.Translation(0, -DiscThickness/2, 0),
	}
	return r
}

// AddBox registers key as a box filling b in model space. Use it for
// models whose local extents are known but whose mesh is not uploaded,
// e.g. the tank's stand-in hull.
func (r *Registry) AddBox(key string, b bounds.Box) {
	size := b.Size()
	c := b.Center()
	r.shapes[key] = shape{
		gen:    func() rl.Mesh { return rl.GenMeshCube(size.X, size.Y, size.Z) },
		offset: vmath.Translation(c.X, c.Y, c.Z),
	}
	delete(r.cache, key)
}

// SetView sets the eye position and direction to light for this frame.
func (r *Registry) SetView(eye vmath.Vector3, lightDir [3]float32) {
	r.viewPos = [3]float32{eye.X, eye.Y, eye.Z}
	r.lightDir = lightDir
}

func (r *Registry) ensure(key string) (cached, bool) {
	if c, ok := r.cache[key]; ok {
		return c, true
	}
	s, ok := r.shapes[key]
	if !ok {
		return cached{}, false
	}
	if !r.loaded {
		r.mtl = rl.LoadMaterialDefault()
		if shader := rl.LoadShaderFromMemory(litVS, litFS); rl.IsShaderValid(shader) {
			r.mtl.Shader = shader
		}
		r.loaded = true
	}
	c := cached{mesh: s.gen(), offset: s.offset}
	r.cache[key] = c
	return c, true
}

// Draw draws mesh key with the given model matrix and tint. Must be called
// between BeginMode3D and EndMode3D. Unknown keys are skipped.
func (r *Registry) Draw(key string, model vmath.Matrix4, color rl.Color) {
	c, ok := r.ensure(key)
	if !ok {
		return
	}
	if albedo := r.mtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = color
	}
	r.setUniforms(r.mtl.Shader)
	rl.DrawMesh(c.mesh, r.mtl, Matrix(model.Mul(c.offset)))
}

// Unload frees GPU meshes and the shader.
func (r *Registry) Unload() {
	for key, c := range r.cache {
		rl.UnloadMesh(&c.mesh)
		delete(r.cache, key)
	}
	if r.loaded {
		rl.UnloadMaterial(r.mtl)
		r.loaded = false
	}
}
