package geometry

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/donut-castle/pkg/math"
)

// Cone returns a cone with the given base radius and height, centered at the
// origin along the y-axis (base at -height/2, apex at +height/2).
//
// The lateral surface is a ring grid whose radius shrinks linearly to zero
// at the top, so the apex is closed by the collapsed final ring; a center
// vertex fans the bottom cap out of the base ring. Vertex normals follow the
// cone's analytic slope rather than the triangle planes, giving smooth
// shading around the hull.
//
// Vertex count is (stackCount+1)*(sliceCount+1)+2 and triangle count is
// sliceCount*stackCount*2 + sliceCount.
func Cone(bottomRadius, height float32, sliceCount, stackCount uint32) (MeshData, error) {
	if err := checkSize("cone", "bottomRadius", bottomRadius); err != nil {
		return MeshData{}, err
	}
	if err := checkSize("cone", "height", height); err != nil {
		return MeshData{}, err
	}
	sliceCount, stackCount = clampTessellation(sliceCount, stackCount)

	var mesh MeshData

	stackHeight := height / float32(stackCount)
	// Radius shrinks by this much per stack, reaching zero at the top ring.
	radiusStep := -bottomRadius / float32(stackCount)

	for i := uint32(0); i <= stackCount; i++ {
		y := -0.5*height + float32(i)*stackHeight
		r := bottomRadius + float32(i)*radiusStep

		for j := uint32(0); j <= sliceCount; j++ {
			theta := float32(j) * 2 * math32.Pi / float32(sliceCount)
			c := math32.Cos(theta)
			s := math32.Sin(theta)

			// Analytic slope normal: tangent along the ring crossed with
			// the bitangent running down the hull.
			tangent := math.Vec3{X: -s, Z: c}
			bitangent := math.Vec3{X: bottomRadius * c, Y: -height, Z: bottomRadius * s}

			mesh.Vertices = append(mesh.Vertices, Vertex{
				Position: math.Vec3{X: r * c, Y: y, Z: r * s},
				Normal:   tangent.Cross(bitangent).Normalize(),
				Tangent:  tangent,
				TexCoord: math.Vec2{
					X: float32(j) / float32(sliceCount),
					Y: 1 - float32(i)/float32(stackCount),
				},
			})
		}
	}

	ringVertexCount := sliceCount + 1
	for i := uint32(0); i < stackCount; i++ {
		for j := uint32(0); j < sliceCount; j++ {
			addTriangle(&mesh, i*ringVertexCount+j, (i+1)*ringVertexCount+j, (i+1)*ringVertexCount+j+1)
			addTriangle(&mesh, i*ringVertexCount+j, (i+1)*ringVertexCount+j+1, i*ringVertexCount+j+1)
		}
	}

	// Apex marker vertex. The hull is already closed by the collapsed top
	// ring; the apex carries the averaged up normal for the fan-less tip.
	addVertex(&mesh, math.Vec3{Y: 0.5 * height}, math.Vec3{Y: 1}, 0.5, 0)

	// Bottom cap: center vertex fanned against the base ring.
	addVertex(&mesh, math.Vec3{Y: -0.5 * height}, math.Vec3{Y: -1}, 0.5, 0.5)
	centerIndex := uint32(len(mesh.Vertices)) - 1
	for j := uint32(0); j < sliceCount; j++ {
		addTriangle(&mesh, centerIndex, j, j+1)
	}

	return mesh, nil
}
