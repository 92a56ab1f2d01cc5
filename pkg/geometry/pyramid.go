package geometry

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/donut-castle/pkg/math"
)

// Pyramid returns a pyramid with an equilateral triangular base of the given
// edge length, tapering to an apex. Centered at the origin along the y-axis.
// numSubdivisions quadrisects the lateral faces; the base stays a center fan.
func Pyramid(baseEdge, height float32, numSubdivisions uint32) (MeshData, error) {
	if err := checkSize("pyramid", "baseEdge", baseEdge); err != nil {
		return MeshData{}, err
	}
	if err := checkSize("pyramid", "height", height); err != nil {
		return MeshData{}, err
	}

	corners := polygonCorners(3, baseEdge/math32.Sqrt(3), -0.5*height)
	apex := math.Vec3{Y: 0.5 * height}

	mesh := lateralFans(corners, apex, numSubdivisions)
	appendCapFan(&mesh, corners, false)
	return mesh, nil
}

// SquarePyramid returns a pyramid with a square base of the given edge
// length, tapering to an apex. Centered at the origin along the y-axis.
func SquarePyramid(baseEdge, height float32, numSubdivisions uint32) (MeshData, error) {
	if err := checkSize("squarePyramid", "baseEdge", baseEdge); err != nil {
		return MeshData{}, err
	}
	if err := checkSize("squarePyramid", "height", height); err != nil {
		return MeshData{}, err
	}

	corners := polygonCorners(4, baseEdge/math32.Sqrt(2), -0.5*height)
	apex := math.Vec3{Y: 0.5 * height}

	mesh := lateralFans(corners, apex, numSubdivisions)
	appendCapFan(&mesh, corners, false)
	return mesh, nil
}

// PyramidFrustum returns a frustum between two parallel equilateral
// triangles of the given edge lengths, joined by three quad faces.
// Centered at the origin along the y-axis.
func PyramidFrustum(bottomEdge, topEdge, height float32, numSubdivisions uint32) (MeshData, error) {
	if err := checkSize("pyramidFrustum", "bottomEdge", bottomEdge); err != nil {
		return MeshData{}, err
	}
	if err := checkSize("pyramidFrustum", "topEdge", topEdge); err != nil {
		return MeshData{}, err
	}
	if err := checkSize("pyramidFrustum", "height", height); err != nil {
		return MeshData{}, err
	}

	bottom := polygonCorners(3, bottomEdge/math32.Sqrt(3), -0.5*height)
	top := polygonCorners(3, topEdge/math32.Sqrt(3), 0.5*height)

	var lateral MeshData
	n := len(bottom)
	for k := 0; k < n; k++ {
		b0 := bottom[k]
		b1 := bottom[(k+1)%n]
		t0 := top[k]
		t1 := top[(k+1)%n]

		normal := t0.Sub(b0).Cross(t1.Sub(b0)).Normalize()

		base := uint32(len(lateral.Vertices))
		addVertexN(&lateral, b0, normal, 0, 1)
		addVertexN(&lateral, t0, normal, 0, 0)
		addVertexN(&lateral, t1, normal, 1, 0)
		addVertexN(&lateral, b1, normal, 1, 1)

		addTriangle(&lateral, base+0, base+1, base+2)
		addTriangle(&lateral, base+0, base+2, base+3)
	}

	mesh := subdivideN(lateral, numSubdivisions)
	appendCapFan(&mesh, bottom, false)
	appendCapFan(&mesh, top, true)
	return mesh, nil
}

// TriangularPrism returns a prism with two parallel equilateral triangular
// caps of the given edge length joined by three rectangular faces.
// Centered at the origin along the y-axis.
func TriangularPrism(edge, height float32, numSubdivisions uint32) (MeshData, error) {
	if err := checkSize("triangularPrism", "edge", edge); err != nil {
		return MeshData{}, err
	}
	if err := checkSize("triangularPrism", "height", height); err != nil {
		return MeshData{}, err
	}

	bottom := polygonCorners(3, edge/math32.Sqrt(3), -0.5*height)
	top := polygonCorners(3, edge/math32.Sqrt(3), 0.5*height)

	var lateral MeshData
	n := len(bottom)
	for k := 0; k < n; k++ {
		b0 := bottom[k]
		b1 := bottom[(k+1)%n]
		t0 := top[k]
		t1 := top[(k+1)%n]

		normal := t0.Sub(b0).Cross(t1.Sub(b0)).Normalize()

		base := uint32(len(lateral.Vertices))
		addVertexN(&lateral, b0, normal, 0, 1)
		addVertexN(&lateral, t0, normal, 0, 0)
		addVertexN(&lateral, t1, normal, 1, 0)
		addVertexN(&lateral, b1, normal, 1, 1)

		addTriangle(&lateral, base+0, base+1, base+2)
		addTriangle(&lateral, base+0, base+2, base+3)
	}

	mesh := subdivideN(lateral, numSubdivisions)
	appendCapFan(&mesh, bottom, false)
	appendCapFan(&mesh, top, true)
	return mesh, nil
}

// polygonCorners returns the corners of a regular n-gon of the given
// circumradius at height y, walked with increasing angle so the lateral
// and cap windings below come out counter-clockwise from outside.
func polygonCorners(n int, circumradius, y float32) []math.Vec3 {
	corners := make([]math.Vec3, n)
	for k := 0; k < n; k++ {
		alpha := math32.Pi/2 + 2*math32.Pi*float32(k)/float32(n)
		corners[k] = math.Vec3{
			X: circumradius * math32.Cos(alpha),
			Y: y,
			Z: circumradius * math32.Sin(alpha),
		}
	}
	return corners
}

// lateralFans builds one flat-shaded triangle per base edge up to the apex,
// subdivided numSubdivisions times.
func lateralFans(corners []math.Vec3, apex math.Vec3, numSubdivisions uint32) MeshData {
	var lateral MeshData
	n := len(corners)
	for k := 0; k < n; k++ {
		a := corners[k]
		b := corners[(k+1)%n]

		normal := apex.Sub(a).Cross(b.Sub(a)).Normalize()

		base := uint32(len(lateral.Vertices))
		addVertexN(&lateral, a, normal, 0, 1)
		addVertexN(&lateral, apex, normal, 0.5, 0)
		addVertexN(&lateral, b, normal, 1, 1)
		addTriangle(&lateral, base+0, base+1, base+2)
	}
	return subdivideN(lateral, numSubdivisions)
}

// appendCapFan closes a polygon loop with a center-fan. top selects the
// winding and the axis-aligned normal direction (+y for top, -y for bottom).
func appendCapFan(mesh *MeshData, corners []math.Vec3, top bool) {
	normal := math.Vec3{Y: -1}
	if top {
		normal = math.Vec3{Y: 1}
	}

	y := corners[0].Y
	base := uint32(len(mesh.Vertices))
	addVertexN(mesh, math.Vec3{Y: y}, normal, 0.5, 0.5)

	// Planar texture mapping scaled so corners land on the [0,1] circle.
	radius := corners[0].Distance(math.Vec3{Y: y})
	for _, c := range corners {
		addVertexN(mesh, c, normal, c.X/radius*0.5+0.5, c.Z/radius*0.5+0.5)
	}

	n := uint32(len(corners))
	for j := uint32(0); j < n; j++ {
		next := (j + 1) % n
		if top {
			addTriangle(mesh, base, base+1+next, base+1+j)
		} else {
			addTriangle(mesh, base, base+1+j, base+1+next)
		}
	}
}

func addVertexN(m *MeshData, pos, normal math.Vec3, u, v float32) {
	m.Vertices = append(m.Vertices, Vertex{
		Position: pos,
		Normal:   normal,
		TexCoord: math.Vec2{X: u, Y: v},
	})
}

func subdivideN(m MeshData, n uint32) MeshData {
	if n > maxSubdivisions {
		n = maxSubdivisions
	}
	for i := uint32(0); i < n; i++ {
		m = subdivide(m)
	}
	return m
}
