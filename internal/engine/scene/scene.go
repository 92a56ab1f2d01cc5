// Package scene owns the castle's render items, materials and animated
// water, and writes their per-frame constants into the frame resource ring.
package scene

import (
	"math/rand"

	"github.com/Faultbox/donut-castle/internal/engine/lighting"
	"github.com/Faultbox/donut-castle/internal/engine/waves"
	"github.com/Faultbox/donut-castle/pkg/geometry"
	"github.com/Faultbox/donut-castle/pkg/math"
)

// Layer groups render items by the pipeline state they draw with.
type Layer int

const (
	LayerOpaque Layer = iota
	LayerTransparent
	LayerBillboard

	layerCount
)

// Material describes a surface. The dirty countdown starts at the ring depth
// whenever the material changes so the change reaches every frame slot.
type Material struct {
	Name        string
	CBIndex     int
	TextureSlot int

	DiffuseAlbedo math.Vec4
	FresnelR0     math.Vec3
	Roughness     float32
	Transform     math.Mat4

	NumFramesDirty int
}

// RenderItem ties a submesh to a material and a world transform.
type RenderItem struct {
	Name         string
	World        math.Mat4
	TexTransform math.Mat4
	CBIndex      int
	Material     *Material
	Geometry     string
	Mesh         geometry.Submesh
	Layer        Layer

	NumFramesDirty int
}

// TreeVertex is one billboard point: the sprite's base position and its
// world-space extent, expanded to a quad in the geometry shader.
type TreeVertex struct {
	Position math.Vec3
	Size     math.Vec2
}

// Scene holds every registry the renderer draws from. Registries live here,
// on an explicit context, rather than in package-level maps.
type Scene struct {
	Shapes *geometry.Buffer

	Waves        *waves.Waves
	WaterIndices []uint32
	WaterItem    *RenderItem

	Trees []TreeVertex

	Materials []*Material
	Items     []*RenderItem
	layers    [layerCount][]*RenderItem

	Ambient math.Vec4
	Lights  []lighting.Light

	// Distance fog, matched to the sky clear color so far geometry fades
	// into the background.
	FogColor math.Vec4
	FogStart float32
	FogRange float32

	ringDepth int
	rng       *rand.Rand

	// Wave disturbance scheduling.
	nextDisturb float32
}

// Layer returns the render items assigned to one draw layer.
func (s *Scene) Layer(l Layer) []*RenderItem {
	return s.layers[l]
}

// ObjectCount returns the number of render items, which sizes the per-frame
// object constant buffers.
func (s *Scene) ObjectCount() int {
	return len(s.Items)
}

// MaterialCount returns the number of materials.
func (s *Scene) MaterialCount() int {
	return len(s.Materials)
}

func (s *Scene) addMaterial(m *Material) *Material {
	m.CBIndex = len(s.Materials)
	m.NumFramesDirty = s.ringDepth
	if m.Transform == (math.Mat4{}) {
		m.Transform = math.Identity()
	}
	s.Materials = append(s.Materials, m)
	return m
}

func (s *Scene) addItem(it *RenderItem) *RenderItem {
	it.CBIndex = len(s.Items)
	it.NumFramesDirty = s.ringDepth
	if it.World == (math.Mat4{}) {
		it.World = math.Identity()
	}
	if it.TexTransform == (math.Mat4{}) {
		it.TexTransform = math.Identity()
	}
	if it.Geometry == "" {
		it.Geometry = "shapes"
	}
	s.Items = append(s.Items, it)
	s.layers[it.Layer] = append(s.layers[it.Layer], it)
	return it
}

// submesh looks a shape up in the shared geometry buffer. Construction is the
// only caller, so a missing shape is a programming error, not a runtime one.
func (s *Scene) submesh(shape string) geometry.Submesh {
	sub, ok := s.Shapes.Submesh(shape)
	if !ok {
		panic("scene: unknown shape " + shape)
	}
	return sub
}
