package scene

import (
	"fmt"
	"math/rand"

	"github.com/chewxy/math32"

	"github.com/Faultbox/donut-castle/internal/engine/lighting"
	"github.com/Faultbox/donut-castle/internal/engine/waves"
	"github.com/Faultbox/donut-castle/pkg/geometry"
	"github.com/Faultbox/donut-castle/pkg/math"
)

// Texture slots, in the order the renderer binds them.
const (
	TexGrass = iota
	TexBricks
	TexBricks2
	TexBricks3
	TexIce
	TexCheckboard
	TexWater
	TexWood
	TexTreeArray
)

// BuildCastle constructs the whole scene: the shared shape buffer, the nine
// materials, the moat simulation, the billboard trees and all render items.
// rng drives tree placement and later wave disturbances; ringDepth sizes the
// dirty countdowns.
func BuildCastle(rng *rand.Rand, ringDepth int) (*Scene, error) {
	shapes, err := buildShapeBuffer()
	if err != nil {
		return nil, err
	}

	moat, err := waves.New(128, 128, 1.0, 0.03, 4.0, 0.2)
	if err != nil {
		return nil, err
	}

	s := &Scene{
		Shapes:    shapes,
		Waves:     moat,
		Ambient:   math.Vec4{X: 0.25, Y: 0.25, Z: 0.35, W: 1},
		Lights:    lighting.CastleRig(),
		FogColor:  math.Vec4{X: 0.53, Y: 0.68, Z: 0.85, W: 1},
		FogStart:  25,
		FogRange:  150,
		ringDepth: ringDepth,
		rng:       rng,
	}
	s.WaterIndices = buildWaterIndices(moat.RowCount(), moat.ColumnCount())
	s.buildMaterials()
	s.buildTrees()
	s.buildItems()
	return s, nil
}

// buildShapeBuffer generates every castle shape and concatenates them into
// one vertex/index buffer pair.
func buildShapeBuffer() (*geometry.Buffer, error) {
	buf := geometry.NewBuffer()

	type gen struct {
		name string
		mesh func() (geometry.MeshData, error)
	}
	gens := []gen{
		{"box", func() (geometry.MeshData, error) { return geometry.Box(1, 1, 1, 0) }},
		{"grid", func() (geometry.MeshData, error) { return geometry.Grid(20, 30, 60, 40) }},
		{"sphere", func() (geometry.MeshData, error) { return geometry.Sphere(0.5, 20, 20) }},
		{"cylinder", func() (geometry.MeshData, error) { return geometry.Cylinder(0.7, 0.3, 3, 20, 20) }},
		{"cone", func() (geometry.MeshData, error) { return geometry.Cone(0.5, 1.5, 20, 20) }},
		{"pyramid", func() (geometry.MeshData, error) { return geometry.Pyramid(1.5, 1.5, 0) }},
		{"pyramidFrustum", func() (geometry.MeshData, error) { return geometry.PyramidFrustum(1.5, 0.5, 1.0, 0) }},
		{"squarePyramid", func() (geometry.MeshData, error) { return geometry.SquarePyramid(1.5, 1.0, 0) }},
		{"triangularPrism", func() (geometry.MeshData, error) { return geometry.TriangularPrism(1.0, 0.5, 0) }},
		{"donut", func() (geometry.MeshData, error) { return geometry.Torus(2.0, 1.0, 20, 20) }},
	}
	for _, g := range gens {
		mesh, err := g.mesh()
		if err != nil {
			return nil, fmt.Errorf("generate %s: %w", g.name, err)
		}
		buf.Append(g.name, mesh)
	}
	return buf, nil
}

// buildWaterIndices triangulates the wave grid. The water vertex buffer is
// dynamic and lives in the frame resources; only the index pattern is fixed.
func buildWaterIndices(rows, cols int) []uint32 {
	indices := make([]uint32, 0, (rows-1)*(cols-1)*6)
	for i := 0; i < rows-1; i++ {
		for j := 0; j < cols-1; j++ {
			a := uint32(i*cols + j)
			b := uint32(i*cols + j + 1)
			c := uint32((i+1)*cols + j)
			d := uint32((i+1)*cols + j + 1)
			indices = append(indices, a, b, c, c, b, d)
		}
	}
	return indices
}

func (s *Scene) buildMaterials() {
	white := math.Vec4{X: 1, Y: 1, Z: 1, W: 1}
	dim := math.Vec3{X: 0.01, Y: 0.01, Z: 0.01}

	s.addMaterial(&Material{Name: "grass", TextureSlot: TexGrass, DiffuseAlbedo: white, FresnelR0: dim, Roughness: 0.125})
	s.addMaterial(&Material{Name: "bricks", TextureSlot: TexBricks, DiffuseAlbedo: white, FresnelR0: dim, Roughness: 0.125})
	s.addMaterial(&Material{Name: "bricks2", TextureSlot: TexBricks2, DiffuseAlbedo: white, FresnelR0: dim, Roughness: 0.225})
	s.addMaterial(&Material{Name: "bricks3", TextureSlot: TexBricks3, DiffuseAlbedo: white, FresnelR0: dim, Roughness: 0.325})
	s.addMaterial(&Material{Name: "ice", TextureSlot: TexIce, DiffuseAlbedo: white, FresnelR0: dim, Roughness: 0.015})
	s.addMaterial(&Material{Name: "checkboard", TextureSlot: TexCheckboard, DiffuseAlbedo: white, FresnelR0: dim, Roughness: 0.325})
	s.addMaterial(&Material{
		Name:          "water",
		TextureSlot:   TexWater,
		DiffuseAlbedo: math.Vec4{X: 1, Y: 1, Z: 1, W: 0.5},
		FresnelR0:     math.Vec3{X: 0.1, Y: 0.1, Z: 0.1},
		Roughness:     0,
	})
	s.addMaterial(&Material{Name: "wood", TextureSlot: TexWood, DiffuseAlbedo: white, FresnelR0: dim, Roughness: 0.325})
	s.addMaterial(&Material{Name: "treeSprites", TextureSlot: TexTreeArray, DiffuseAlbedo: white, FresnelR0: dim, Roughness: 0.125})
}

func (s *Scene) material(name string) *Material {
	for _, m := range s.Materials {
		if m.Name == name {
			return m
		}
	}
	panic("scene: unknown material " + name)
}

// buildTrees scatters billboard sprites on a ring around the castle, outside
// the walls but inside the lawn.
func (s *Scene) buildTrees() {
	const treeCount = 16
	s.Trees = make([]TreeVertex, 0, treeCount)
	for i := 0; i < treeCount; i++ {
		theta := s.rng.Float32() * 2 * math32.Pi
		radius := 12 + s.rng.Float32()*8
		s.Trees = append(s.Trees, TreeVertex{
			Position: math.Vec3{
				X: radius * math32.Cos(theta),
				Y: 3.9,
				Z: radius * math32.Sin(theta),
			},
			Size: math.Vec2{X: 10, Y: 10},
		})
	}
}

func (s *Scene) buildItems() {
	// Lawn.
	s.addItem(&RenderItem{
		Name:         "lawn",
		Mesh:         s.submesh("grid"),
		Material:     s.material("grass"),
		TexTransform: math.Scale(2, 1, 2),
	})

	// Four corner towers, each topped by a frustum parapet and a sphere.
	for _, p := range [][2]float32{{-7, 7}, {7, 7}, {-7, -7}, {7, -7}} {
		x, z := p[0], p[1]
		s.addItem(&RenderItem{
			Name:     "tower",
			Mesh:     s.submesh("cylinder"),
			Material: s.material("bricks"),
			World:    math.Translate(x, 0.5, z).Mul(math.Scale(2, 2, 2)),
		})
		s.addItem(&RenderItem{
			Name:     "parapet",
			Mesh:     s.submesh("pyramidFrustum"),
			Material: s.material("bricks3"),
			World:    math.Translate(x, 3.7, z).Mul(math.Scale(2, 2, 2)),
		})
		s.addItem(&RenderItem{
			Name:     "towerTop",
			Mesh:     s.submesh("sphere"),
			Material: s.material("ice"),
			World:    math.Translate(x, 4.5, z),
		})
	}

	// Curtain walls. North and south walls run along x; east and west are
	// the same box rotated a quarter turn.
	wallTex := math.Scale(2.5, 0.5, 1)
	for _, z := range []float32{7, -7} {
		s.addItem(&RenderItem{
			Name:         "wall",
			Mesh:         s.submesh("box"),
			Material:     s.material("bricks2"),
			World:        math.Translate(0, 1, z).Mul(math.Scale(13, 3, 1.5)),
			TexTransform: wallTex,
		})
	}
	for _, x := range []float32{7, -7} {
		s.addItem(&RenderItem{
			Name:         "wall",
			Mesh:         s.submesh("box"),
			Material:     s.material("bricks2"),
			World:        math.Translate(x, 1, 0).Mul(math.RotateY(math32.Pi / 2)).Mul(math.Scale(13, 3, 1.5)),
			TexTransform: wallTex,
		})
	}

	// Merlons along each wall top. Each side gets its own cap shape.
	for _, ofs := range []float32{-4.5, -2.5, 2.5, 4.5} {
		s.addItem(&RenderItem{
			Name:     "merlonEast",
			Mesh:     s.submesh("squarePyramid"),
			Material: s.material("bricks"),
			World:    math.Translate(7, 3, ofs),
		})
		s.addItem(&RenderItem{
			Name:     "merlonWest",
			Mesh:     s.submesh("squarePyramid"),
			Material: s.material("bricks2"),
			World:    math.Translate(-7, 3, ofs),
		})
		s.addItem(&RenderItem{
			Name:     "merlonNorth",
			Mesh:     s.submesh("cone"),
			Material: s.material("bricks2"),
			World:    math.Translate(ofs, 3, 7),
		})
		s.addItem(&RenderItem{
			Name:     "merlonSouth",
			Mesh:     s.submesh("pyramid"),
			Material: s.material("bricks"),
			World:    math.Translate(ofs, 3, -7),
		})
	}

	// The keep and its crowning donut.
	s.addItem(&RenderItem{
		Name:     "keep",
		Mesh:     s.submesh("triangularPrism"),
		Material: s.material("checkboard"),
		World:    math.Translate(0, 1, 0).Mul(math.Scale(7.5, 2.5, 7.5)),
	})
	s.addItem(&RenderItem{
		Name:     "donut",
		Mesh:     s.submesh("donut"),
		Material: s.material("ice"),
		World:    math.Translate(0, 3, 0).Mul(math.RotateX(math32.Pi / 2 * 1.3)).Mul(math.Scale(0.7, 0.7, 0.7)),
	})

	// Courtyard floor and gate.
	s.addItem(&RenderItem{
		Name:     "floor",
		Mesh:     s.submesh("box"),
		Material: s.material("bricks2"),
		World:    math.Translate(0, -0.2, 0).Mul(math.Scale(13, 0.7, 13)),
	})
	s.addItem(&RenderItem{
		Name:     "gate",
		Mesh:     s.submesh("box"),
		Material: s.material("wood"),
		World:    math.Translate(0, 0.7, -7).Mul(math.Scale(5, 3, 2)),
	})

	// Moat. The vertex data streams from the frame resources; the submesh
	// spans the whole water index buffer.
	s.WaterItem = s.addItem(&RenderItem{
		Name:         "water",
		Geometry:     "water",
		Mesh:         geometry.Submesh{IndexCount: uint32(len(s.WaterIndices))},
		Material:     s.material("water"),
		World:        math.Translate(0, 0.1, 0),
		TexTransform: math.Scale(5, 5, 1),
		Layer:        LayerTransparent,
	})

	// Trees draw as point sprites expanded in the geometry shader.
	s.addItem(&RenderItem{
		Name:     "trees",
		Geometry: "trees",
		Mesh:     geometry.Submesh{IndexCount: uint32(len(s.Trees))},
		Material: s.material("treeSprites"),
		Layer:    LayerBillboard,
	})
}
