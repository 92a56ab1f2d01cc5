package geometry

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/donut-castle/pkg/math"
)

// Torus returns a torus in the xz-plane centered at the origin: a tube of
// radius tubeRadius swept around a major circle of radius torusRadius.
// sliceCount subdivides the major circle, stackCount the tube circle; both
// directions duplicate their seam column so texture coordinates wrap without
// special-case stitching.
//
// Normals are exact: each vertex normal is the unit vector from the swept
// tube-circle center to the vertex. Vertex count is
// (stackCount+1)*(sliceCount+1).
func Torus(torusRadius, tubeRadius float32, sliceCount, stackCount uint32) (MeshData, error) {
	if err := checkSize("torus", "torusRadius", torusRadius); err != nil {
		return MeshData{}, err
	}
	if err := checkSize("torus", "tubeRadius", tubeRadius); err != nil {
		return MeshData{}, err
	}
	sliceCount, stackCount = clampTessellation(sliceCount, stackCount)
	if stackCount < 3 {
		stackCount = 3
	}

	var mesh MeshData

	for i := uint32(0); i <= stackCount; i++ {
		// Angle around the tube circle.
		phi := float32(i) * 2 * math32.Pi / float32(stackCount)
		cosPhi := math32.Cos(phi)
		sinPhi := math32.Sin(phi)

		for j := uint32(0); j <= sliceCount; j++ {
			// Angle around the major circle.
			theta := float32(j) * 2 * math32.Pi / float32(sliceCount)
			cosTheta := math32.Cos(theta)
			sinTheta := math32.Sin(theta)

			// Center of the tube circle at this slice.
			center := math.Vec3{
				X: torusRadius * cosTheta,
				Z: torusRadius * sinTheta,
			}
			pos := math.Vec3{
				X: (torusRadius + tubeRadius*cosPhi) * cosTheta,
				Y: tubeRadius * sinPhi,
				Z: (torusRadius + tubeRadius*cosPhi) * sinTheta,
			}

			mesh.Vertices = append(mesh.Vertices, Vertex{
				Position: pos,
				Normal:   pos.Sub(center).Scale(1 / tubeRadius),
				Tangent:  math.Vec3{X: -sinTheta, Z: cosTheta},
				TexCoord: math.Vec2{
					X: float32(j) / float32(sliceCount),
					Y: float32(i) / float32(stackCount),
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

	return mesh, nil
}
