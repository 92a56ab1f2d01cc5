package geometry

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/donut-castle/pkg/math"
)

// maxSubdivisions caps recursive quadrisection so a careless parameter
// cannot explode the vertex count.
const maxSubdivisions = 6

// Box returns an axis-aligned box centered at the origin with the given
// dimensions. numSubdivisions quadrisects each face triangle recursively.
func Box(width, height, depth float32, numSubdivisions uint32) (MeshData, error) {
	if err := checkSize("box", "width", width); err != nil {
		return MeshData{}, err
	}
	if err := checkSize("box", "height", height); err != nil {
		return MeshData{}, err
	}
	if err := checkSize("box", "depth", depth); err != nil {
		return MeshData{}, err
	}

	w2 := 0.5 * width
	h2 := 0.5 * height
	d2 := 0.5 * depth

	v := func(px, py, pz, nx, ny, nz, tx, ty, tz, u, tv float32) Vertex {
		return Vertex{
			Position: math.Vec3{X: px, Y: py, Z: pz},
			Normal:   math.Vec3{X: nx, Y: ny, Z: nz},
			Tangent:  math.Vec3{X: tx, Y: ty, Z: tz},
			TexCoord: math.Vec2{X: u, Y: tv},
		}
	}

	mesh := MeshData{
		Vertices: []Vertex{
			// Front face (-z).
			v(-w2, -h2, -d2, 0, 0, -1, -1, 0, 0, 0, 1),
			v(-w2, +h2, -d2, 0, 0, -1, -1, 0, 0, 0, 0),
			v(+w2, +h2, -d2, 0, 0, -1, -1, 0, 0, 1, 0),
			v(+w2, -h2, -d2, 0, 0, -1, -1, 0, 0, 1, 1),
			// Back face (+z).
			v(-w2, -h2, +d2, 0, 0, 1, 1, 0, 0, 1, 1),
			v(+w2, -h2, +d2, 0, 0, 1, 1, 0, 0, 0, 1),
			v(+w2, +h2, +d2, 0, 0, 1, 1, 0, 0, 0, 0),
			v(-w2, +h2, +d2, 0, 0, 1, 1, 0, 0, 1, 0),
			// Top face (+y).
			v(-w2, +h2, -d2, 0, 1, 0, 1, 0, 0, 0, 1),
			v(-w2, +h2, +d2, 0, 1, 0, 1, 0, 0, 0, 0),
			v(+w2, +h2, +d2, 0, 1, 0, 1, 0, 0, 1, 0),
			v(+w2, +h2, -d2, 0, 1, 0, 1, 0, 0, 1, 1),
			// Bottom face (-y).
			v(-w2, -h2, -d2, 0, -1, 0, -1, 0, 0, 1, 1),
			v(+w2, -h2, -d2, 0, -1, 0, -1, 0, 0, 0, 1),
			v(+w2, -h2, +d2, 0, -1, 0, -1, 0, 0, 0, 0),
			v(-w2, -h2, +d2, 0, -1, 0, -1, 0, 0, 1, 0),
			// Left face (-x).
			v(-w2, -h2, +d2, -1, 0, 0, 0, 0, -1, 0, 1),
			v(-w2, +h2, +d2, -1, 0, 0, 0, 0, -1, 0, 0),
			v(-w2, +h2, -d2, -1, 0, 0, 0, 0, -1, 1, 0),
			v(-w2, -h2, -d2, -1, 0, 0, 0, 0, -1, 1, 1),
			// Right face (+x).
			v(+w2, -h2, -d2, 1, 0, 0, 0, 0, 1, 0, 1),
			v(+w2, +h2, -d2, 1, 0, 0, 0, 0, 1, 0, 0),
			v(+w2, +h2, +d2, 1, 0, 0, 0, 0, 1, 1, 0),
			v(+w2, -h2, +d2, 1, 0, 0, 0, 0, 1, 1, 1),
		},
		Indices: []uint32{
			0, 1, 2, 0, 2, 3, // front
			4, 5, 6, 4, 6, 7, // back
			8, 9, 10, 8, 10, 11, // top
			12, 13, 14, 12, 14, 15, // bottom
			16, 17, 18, 16, 18, 19, // left
			20, 21, 22, 20, 22, 23, // right
		},
	}

	if numSubdivisions > maxSubdivisions {
		numSubdivisions = maxSubdivisions
	}
	for i := uint32(0); i < numSubdivisions; i++ {
		mesh = subdivide(mesh)
	}

	return mesh, nil
}

// Grid returns an m x n vertex grid in the xz-plane centered at the origin,
// normals up, texture coordinates spanning [0,1].
func Grid(width, depth float32, m, n uint32) (MeshData, error) {
	if err := checkSize("grid", "width", width); err != nil {
		return MeshData{}, err
	}
	if err := checkSize("grid", "depth", depth); err != nil {
		return MeshData{}, err
	}
	if m < 2 {
		m = 2
	}
	if n < 2 {
		n = 2
	}

	halfWidth := 0.5 * width
	halfDepth := 0.5 * depth

	dx := width / float32(n-1)
	dz := depth / float32(m-1)
	du := 1.0 / float32(n-1)
	dv := 1.0 / float32(m-1)

	mesh := MeshData{Vertices: make([]Vertex, 0, m*n)}
	for i := uint32(0); i < m; i++ {
		z := halfDepth - float32(i)*dz
		for j := uint32(0); j < n; j++ {
			x := -halfWidth + float32(j)*dx
			mesh.Vertices = append(mesh.Vertices, Vertex{
				Position: math.Vec3{X: x, Y: 0, Z: z},
				Normal:   math.Vec3{Y: 1},
				Tangent:  math.Vec3{X: 1},
				TexCoord: math.Vec2{X: float32(j) * du, Y: float32(i) * dv},
			})
		}
	}

	mesh.Indices = make([]uint32, 0, (m-1)*(n-1)*6)
	for i := uint32(0); i < m-1; i++ {
		for j := uint32(0); j < n-1; j++ {
			addTriangle(&mesh, i*n+j, i*n+j+1, (i+1)*n+j)
			addTriangle(&mesh, (i+1)*n+j, i*n+j+1, (i+1)*n+j+1)
		}
	}

	return mesh, nil
}

// Sphere returns a sphere of the given radius centered at the origin,
// built from sliceCount longitude lines and stackCount latitude rings.
func Sphere(radius float32, sliceCount, stackCount uint32) (MeshData, error) {
	if err := checkSize("sphere", "radius", radius); err != nil {
		return MeshData{}, err
	}
	sliceCount, stackCount = clampTessellation(sliceCount, stackCount)
	if stackCount < 2 {
		// One stack has no ring between the poles.
		stackCount = 2
	}

	var mesh MeshData

	// Poles are single vertices; rings in between duplicate the seam column
	// so texture coordinates wrap cleanly.
	addVertex(&mesh, math.Vec3{Y: radius}, math.Vec3{Y: 1}, 0, 0)

	phiStep := math32.Pi / float32(stackCount)
	thetaStep := 2 * math32.Pi / float32(sliceCount)

	for i := uint32(1); i < stackCount; i++ {
		phi := float32(i) * phiStep
		for j := uint32(0); j <= sliceCount; j++ {
			theta := float32(j) * thetaStep

			pos := math.Vec3{
				X: radius * math32.Sin(phi) * math32.Cos(theta),
				Y: radius * math32.Cos(phi),
				Z: radius * math32.Sin(phi) * math32.Sin(theta),
			}
			mesh.Vertices = append(mesh.Vertices, Vertex{
				Position: pos,
				Normal:   pos.Normalize(),
				Tangent: math.Vec3{
					X: -radius * math32.Sin(phi) * math32.Sin(theta),
					Z: radius * math32.Sin(phi) * math32.Cos(theta),
				}.Normalize(),
				TexCoord: math.Vec2{
					X: theta / (2 * math32.Pi),
					Y: phi / math32.Pi,
				},
			})
		}
	}

	addVertex(&mesh, math.Vec3{Y: -radius}, math.Vec3{Y: -1}, 0, 1)

	// Top fan.
	for j := uint32(1); j <= sliceCount; j++ {
		addTriangle(&mesh, 0, j+1, j)
	}

	// Interior quads.
	baseIndex := uint32(1)
	ringVertexCount := sliceCount + 1
	for i := uint32(0); i < stackCount-2; i++ {
		for j := uint32(0); j < sliceCount; j++ {
			addTriangle(&mesh,
				baseIndex+i*ringVertexCount+j,
				baseIndex+i*ringVertexCount+j+1,
				baseIndex+(i+1)*ringVertexCount+j)
			addTriangle(&mesh,
				baseIndex+(i+1)*ringVertexCount+j,
				baseIndex+i*ringVertexCount+j+1,
				baseIndex+(i+1)*ringVertexCount+j+1)
		}
	}

	// Bottom fan.
	southPoleIndex := uint32(len(mesh.Vertices)) - 1
	baseIndex = southPoleIndex - ringVertexCount
	for j := uint32(0); j < sliceCount; j++ {
		addTriangle(&mesh, southPoleIndex, baseIndex+j, baseIndex+j+1)
	}

	return mesh, nil
}

// Cylinder returns a cylinder (or truncated cone, when the radii differ)
// centered at the origin along the y-axis, with cap fans on both ends.
func Cylinder(bottomRadius, topRadius, height float32, sliceCount, stackCount uint32) (MeshData, error) {
	if err := checkSize("cylinder", "bottomRadius", bottomRadius); err != nil {
		return MeshData{}, err
	}
	if err := checkSize("cylinder", "topRadius", topRadius); err != nil {
		return MeshData{}, err
	}
	if err := checkSize("cylinder", "height", height); err != nil {
		return MeshData{}, err
	}
	sliceCount, stackCount = clampTessellation(sliceCount, stackCount)

	var mesh MeshData

	stackHeight := height / float32(stackCount)
	radiusStep := (topRadius - bottomRadius) / float32(stackCount)

	// Side rings bottom to top, seam column duplicated.
	for i := uint32(0); i <= stackCount; i++ {
		y := -0.5*height + float32(i)*stackHeight
		r := bottomRadius + float32(i)*radiusStep

		for j := uint32(0); j <= sliceCount; j++ {
			theta := float32(j) * 2 * math32.Pi / float32(sliceCount)
			c := math32.Cos(theta)
			s := math32.Sin(theta)

			tangent := math.Vec3{X: -s, Z: c}
			dr := bottomRadius - topRadius
			bitangent := math.Vec3{X: dr * c, Y: -height, Z: dr * s}

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

	buildCylinderCap(&mesh, topRadius, 0.5*height, sliceCount, true)
	buildCylinderCap(&mesh, bottomRadius, -0.5*height, sliceCount, false)

	return mesh, nil
}

// buildCylinderCap adds a cap ring plus a center vertex and fans it out.
// Cap vertices get axis-aligned normals and planar texture coordinates.
func buildCylinderCap(mesh *MeshData, radius, y float32, sliceCount uint32, top bool) {
	baseIndex := uint32(len(mesh.Vertices))

	ny := float32(1)
	if !top {
		ny = -1
	}

	for j := uint32(0); j <= sliceCount; j++ {
		theta := float32(j) * 2 * math32.Pi / float32(sliceCount)
		x := radius * math32.Cos(theta)
		z := radius * math32.Sin(theta)
		addVertex(mesh, math.Vec3{X: x, Y: y, Z: z}, math.Vec3{Y: ny}, x/radius*0.5+0.5, z/radius*0.5+0.5)
	}
	addVertex(mesh, math.Vec3{Y: y}, math.Vec3{Y: ny}, 0.5, 0.5)

	centerIndex := uint32(len(mesh.Vertices)) - 1
	for j := uint32(0); j < sliceCount; j++ {
		if top {
			addTriangle(mesh, centerIndex, baseIndex+j+1, baseIndex+j)
		} else {
			addTriangle(mesh, centerIndex, baseIndex+j, baseIndex+j+1)
		}
	}
}

// clampTessellation enforces the minimal valid tessellation: a tessellation
// count of 0 yields the smallest well-formed mesh rather than an error.
func clampTessellation(sliceCount, stackCount uint32) (uint32, uint32) {
	if sliceCount < 3 {
		sliceCount = 3
	}
	if stackCount < 1 {
		stackCount = 1
	}
	return sliceCount, stackCount
}
