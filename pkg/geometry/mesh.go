// Package geometry builds procedural triangle meshes for the castle scene
// and packs them into shared vertex/index buffers.
//
// Every generator is a pure function of its parameters: calling one twice
// with the same arguments yields identical output. Generated meshes are
// triangle lists with counter-clockwise front faces and outward normals.
package geometry

import (
	"errors"
	"fmt"

	"github.com/Faultbox/donut-castle/pkg/math"
)

// ErrNonPositive is returned when a size parameter (radius, edge, height)
// is zero or negative.
var ErrNonPositive = errors.New("geometry: size parameter must be positive")

// Vertex is a generated mesh vertex. Tangent is produced by some generators
// and dropped when packing into the shared buffer layout.
type Vertex struct {
	Position math.Vec3
	Normal   math.Vec3
	Tangent  math.Vec3
	TexCoord math.Vec2
}

// MeshData holds one generated shape: vertices plus a 32-bit triangle list.
type MeshData struct {
	Vertices []Vertex
	Indices  []uint32

	indices16 []uint16
}

// VertexCount returns the number of vertices.
func (m *MeshData) VertexCount() int { return len(m.Vertices) }

// TriangleCount returns the number of triangles.
func (m *MeshData) TriangleCount() int { return len(m.Indices) / 3 }

// Indices16 narrows the index list to 16 bits. The narrowed slice is cached
// on first use. Panics if the mesh has too many vertices to address.
func (m *MeshData) Indices16() []uint16 {
	if m.indices16 == nil {
		if len(m.Vertices) > 0xffff {
			panic(fmt.Sprintf("geometry: %d vertices cannot be indexed with 16 bits", len(m.Vertices)))
		}
		m.indices16 = make([]uint16, len(m.Indices))
		for i, idx := range m.Indices {
			m.indices16[i] = uint16(idx)
		}
	}
	return m.indices16
}

// checkSize validates that a named size parameter is strictly positive.
func checkSize(shape, name string, v float32) error {
	if v <= 0 {
		return fmt.Errorf("%s: %s = %v: %w", shape, name, v, ErrNonPositive)
	}
	return nil
}

func addVertex(m *MeshData, pos, normal math.Vec3, u, v float32) {
	m.Vertices = append(m.Vertices, Vertex{
		Position: pos,
		Normal:   normal,
		TexCoord: math.Vec2{X: u, Y: v},
	})
}

// addTriangle appends one CCW triangle.
func addTriangle(m *MeshData, a, b, c uint32) {
	m.Indices = append(m.Indices, a, b, c)
}
