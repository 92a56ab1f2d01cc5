package geometry

import (
	"fmt"

	"github.com/Faultbox/donut-castle/pkg/math"
)

// PackedVertex is the GPU vertex layout shared by every static draw:
// position at offset 0, normal at 12, texcoord at 24 (32 bytes). Tangents
// produced by the generators are dropped at packing time.
type PackedVertex struct {
	Position math.Vec3
	Normal   math.Vec3
	TexCoord math.Vec2
}

// Submesh is a view into a shared buffer identifying one appended shape.
// Indices stay shape-local: the draw call applies BaseVertexLocation, it is
// never baked into the stored index values.
type Submesh struct {
	IndexCount         uint32
	StartIndexLocation uint32
	BaseVertexLocation int32
}

// Buffer concatenates generated meshes into one vertex array and one index
// array suitable for a single GPU allocation, recording a Submesh per shape.
type Buffer struct {
	Vertices []PackedVertex
	Indices  []uint32

	submeshes map[string]Submesh
	order     []string
}

// NewBuffer returns an empty geometry buffer.
func NewBuffer() *Buffer {
	return &Buffer{submeshes: make(map[string]Submesh)}
}

// Append copies mesh into the shared buffers and records its submesh view
// under name, using the offsets in effect before the copy. The mesh must be
// well formed (index count a multiple of 3, every index in range) and the
// name unused; violations are programming errors and panic.
func (b *Buffer) Append(name string, mesh MeshData) Submesh {
	if _, exists := b.submeshes[name]; exists {
		panic(fmt.Sprintf("geometry: submesh %q appended twice", name))
	}
	if len(mesh.Indices)%3 != 0 {
		panic(fmt.Sprintf("geometry: submesh %q has %d indices, not a multiple of 3", name, len(mesh.Indices)))
	}
	for _, idx := range mesh.Indices {
		if int(idx) >= len(mesh.Vertices) {
			panic(fmt.Sprintf("geometry: submesh %q index %d out of range (%d vertices)", name, idx, len(mesh.Vertices)))
		}
	}

	sub := Submesh{
		IndexCount:         uint32(len(mesh.Indices)),
		StartIndexLocation: uint32(len(b.Indices)),
		BaseVertexLocation: int32(len(b.Vertices)),
	}

	for _, v := range mesh.Vertices {
		b.Vertices = append(b.Vertices, PackedVertex{
			Position: v.Position,
			Normal:   v.Normal,
			TexCoord: v.TexCoord,
		})
	}
	// Indices are copied as-is; they remain local to the shape.
	b.Indices = append(b.Indices, mesh.Indices...)

	b.submeshes[name] = sub
	b.order = append(b.order, name)
	return sub
}

// Submesh returns the recorded view for name.
func (b *Buffer) Submesh(name string) (Submesh, bool) {
	sub, ok := b.submeshes[name]
	return sub, ok
}

// Names returns the submesh names in append order.
func (b *Buffer) Names() []string {
	out := make([]string, len(b.order))
	copy(out, b.order)
	return out
}
