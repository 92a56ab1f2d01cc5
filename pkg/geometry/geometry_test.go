package geometry

import (
	"errors"
	"reflect"
	"testing"

	"github.com/chewxy/math32"

	"github.com/Faultbox/donut-castle/pkg/math"
)

// allShapes builds every generator with representative parameters, matching
// the castle scene's calls.
func allShapes(t *testing.T) map[string]MeshData {
	t.Helper()

	shapes := make(map[string]MeshData)
	add := func(name string, m MeshData, err error) {
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}
		shapes[name] = m
	}

	m, err := Box(1, 1, 1, 0)
	add("box", m, err)
	m, err = Grid(20, 30, 60, 40)
	add("grid", m, err)
	m, err = Sphere(0.5, 20, 20)
	add("sphere", m, err)
	m, err = Cylinder(0.7, 0.3, 3, 20, 20)
	add("cylinder", m, err)
	m, err = Cone(0.5, 1.5, 20, 20)
	add("cone", m, err)
	m, err = Pyramid(1.5, 1.5, 0)
	add("pyramid", m, err)
	m, err = PyramidFrustum(1.5, 0.5, 1, 0)
	add("pyramidFrustum", m, err)
	m, err = SquarePyramid(1.5, 1, 0)
	add("squarePyramid", m, err)
	m, err = TriangularPrism(1, 0.5, 0)
	add("triangularPrism", m, err)
	m, err = Torus(2, 1, 20, 20)
	add("torus", m, err)

	return shapes
}

func TestGeneratorsProduceValidTriangleLists(t *testing.T) {
	for name, mesh := range allShapes(t) {
		if len(mesh.Vertices) == 0 {
			t.Errorf("%s: no vertices", name)
		}
		if len(mesh.Indices)%3 != 0 {
			t.Errorf("%s: %d indices, want multiple of 3", name, len(mesh.Indices))
		}
		for _, idx := range mesh.Indices {
			if int(idx) >= len(mesh.Vertices) {
				t.Fatalf("%s: index %d out of range (%d vertices)", name, idx, len(mesh.Vertices))
			}
		}
	}
}

func TestGeneratorsAreDeterministic(t *testing.T) {
	first := allShapes(t)
	second := allShapes(t)
	for name := range first {
		a, b := first[name], second[name]
		if !reflect.DeepEqual(a.Vertices, b.Vertices) {
			t.Errorf("%s: vertices differ between identical calls", name)
		}
		if !reflect.DeepEqual(a.Indices, b.Indices) {
			t.Errorf("%s: indices differ between identical calls", name)
		}
	}
}

func TestGeneratorsNormalsAreUnit(t *testing.T) {
	for name, mesh := range allShapes(t) {
		for i, v := range mesh.Vertices {
			l := v.Normal.Length()
			if l < 0.999 || l > 1.001 {
				t.Fatalf("%s: vertex %d normal length = %v, want ~1", name, i, l)
			}
		}
	}
}

func TestGeneratorsTexCoordsInRange(t *testing.T) {
	for name, mesh := range allShapes(t) {
		for i, v := range mesh.Vertices {
			if v.TexCoord.X < -0.001 || v.TexCoord.X > 1.001 ||
				v.TexCoord.Y < -0.001 || v.TexCoord.Y > 1.001 {
				t.Fatalf("%s: vertex %d texcoord = %v outside [0,1]", name, i, v.TexCoord)
			}
		}
	}
}

func TestGeneratorsRejectNonPositiveSizes(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"box", func() error { _, err := Box(0, 1, 1, 0); return err }()},
		{"grid", func() error { _, err := Grid(-1, 30, 60, 40); return err }()},
		{"sphere", func() error { _, err := Sphere(0, 20, 20); return err }()},
		{"cylinder", func() error { _, err := Cylinder(0.7, -0.3, 3, 20, 20); return err }()},
		{"cone radius", func() error { _, err := Cone(0, 1.5, 20, 20); return err }()},
		{"cone height", func() error { _, err := Cone(0.5, -1, 20, 20); return err }()},
		{"pyramid", func() error { _, err := Pyramid(-1.5, 1.5, 0); return err }()},
		{"frustum", func() error { _, err := PyramidFrustum(1.5, 0, 1, 0); return err }()},
		{"squarePyramid", func() error { _, err := SquarePyramid(1.5, 0, 0); return err }()},
		{"prism", func() error { _, err := TriangularPrism(0, 0.5, 0); return err }()},
		{"torus", func() error { _, err := Torus(2, 0, 20, 20); return err }()},
	}
	for _, tc := range cases {
		if !errors.Is(tc.err, ErrNonPositive) {
			t.Errorf("%s: err = %v, want ErrNonPositive", tc.name, tc.err)
		}
	}
}

func TestConeCounts(t *testing.T) {
	const slice, stack = 20, 20
	mesh, err := Cone(0.5, 1.5, slice, stack)
	if err != nil {
		t.Fatal(err)
	}

	wantVertices := (stack + 1) * (slice + 1) + 2 // grid + apex + bottom center
	if got := mesh.VertexCount(); got != wantVertices {
		t.Errorf("Cone vertex count = %d, want %d", got, wantVertices)
	}

	wantTriangles := slice*stack*2 + slice // lateral quads + bottom fan
	if got := mesh.TriangleCount(); got != wantTriangles {
		t.Errorf("Cone triangle count = %d, want %d", got, wantTriangles)
	}
}

func TestConeApexAndCap(t *testing.T) {
	mesh, err := Cone(0.5, 1.5, 8, 4)
	if err != nil {
		t.Fatal(err)
	}

	// Top ring collapses onto the apex position.
	ringVertexCount := 9
	top := mesh.Vertices[4*ringVertexCount]
	if top.Position.X != 0 || top.Position.Z != 0 || top.Position.Y != 0.75 {
		t.Errorf("top ring vertex at %v, want apex (0, 0.75, 0)", top.Position)
	}

	// Bottom center vertex faces down.
	center := mesh.Vertices[len(mesh.Vertices)-1]
	if center.Normal.Y != -1 {
		t.Errorf("bottom center normal = %v, want -y", center.Normal)
	}
}

func TestTorusVertexCountAndTubeRadius(t *testing.T) {
	const slice, stack = 20, 20
	const torusRadius, tubeRadius = 2.0, 1.0

	mesh, err := Torus(torusRadius, tubeRadius, slice, stack)
	if err != nil {
		t.Fatal(err)
	}

	wantVertices := (stack + 1) * (slice + 1)
	if got := mesh.VertexCount(); got != wantVertices {
		t.Errorf("Torus vertex count = %d, want %d", got, wantVertices)
	}

	// Every vertex sits exactly tubeRadius away from the nearest point on
	// the major circle.
	for i, v := range mesh.Vertices {
		p := v.Position
		planar := math32.Sqrt(p.X*p.X + p.Z*p.Z)
		nearest := math.Vec3{X: p.X / planar * torusRadius, Z: p.Z / planar * torusRadius}
		d := p.Distance(nearest)
		if d < tubeRadius-0.001 || d > tubeRadius+0.001 {
			t.Fatalf("vertex %d: distance to major circle = %v, want %v", i, d, tubeRadius)
		}
	}
}

func TestTorusSeamDuplication(t *testing.T) {
	mesh, err := Torus(2, 0.5, 8, 6)
	if err != nil {
		t.Fatal(err)
	}

	// First and last column of each ring coincide in position but differ
	// in texture u (0 vs 1).
	ringVertexCount := 9
	for i := 0; i <= 6; i++ {
		first := mesh.Vertices[i*ringVertexCount]
		last := mesh.Vertices[i*ringVertexCount+8]
		if first.Position.Distance(last.Position) > 1e-5 {
			t.Errorf("ring %d: seam positions differ: %v vs %v", i, first.Position, last.Position)
		}
		if first.TexCoord.X != 0 || last.TexCoord.X != 1 {
			t.Errorf("ring %d: seam u = %v and %v, want 0 and 1", i, first.TexCoord.X, last.TexCoord.X)
		}
	}
}

func TestSubdivisionGrowsTriangles(t *testing.T) {
	flat, err := SquarePyramid(1.5, 1, 0)
	if err != nil {
		t.Fatal(err)
	}
	smooth, err := SquarePyramid(1.5, 1, 2)
	if err != nil {
		t.Fatal(err)
	}

	// 4 lateral faces quadrisected twice: 4 -> 64. The base fan (4
	// triangles) is untouched.
	wantLateral := 4 * 16
	if got := smooth.TriangleCount() - 4; got != wantLateral {
		t.Errorf("subdivided lateral triangles = %d, want %d", got, wantLateral)
	}
	if flat.TriangleCount() != 4+4 {
		t.Errorf("unsubdivided triangle count = %d, want 8", flat.TriangleCount())
	}
}

func TestSubdivisionPreservesSilhouette(t *testing.T) {
	mesh, err := Pyramid(1.5, 1.5, 3)
	if err != nil {
		t.Fatal(err)
	}

	// All vertices stay within the original bounding volume.
	maxR := 1.5 / math32.Sqrt(3) * 1.001
	for i, v := range mesh.Vertices {
		planar := math32.Sqrt(v.Position.X*v.Position.X + v.Position.Z*v.Position.Z)
		if planar > maxR {
			t.Fatalf("vertex %d: planar radius %v exceeds base circumradius %v", i, planar, maxR)
		}
		if v.Position.Y < -0.751 || v.Position.Y > 0.751 {
			t.Fatalf("vertex %d: y = %v outside [-0.75, 0.75]", i, v.Position.Y)
		}
	}
}

func TestZeroTessellationIsMinimalNotError(t *testing.T) {
	mesh, err := Cone(1, 1, 0, 0)
	if err != nil {
		t.Fatalf("Cone with zero tessellation: %v", err)
	}
	if mesh.TriangleCount() == 0 {
		t.Error("Cone with zero tessellation produced no triangles")
	}

	mesh, err = Torus(2, 1, 0, 0)
	if err != nil {
		t.Fatalf("Torus with zero tessellation: %v", err)
	}
	if mesh.TriangleCount() == 0 {
		t.Error("Torus with zero tessellation produced no triangles")
	}

	mesh, err = Sphere(1, 0, 0)
	if err != nil {
		t.Fatalf("Sphere with zero tessellation: %v", err)
	}
	if mesh.TriangleCount() == 0 {
		t.Error("Sphere with zero tessellation produced no triangles")
	}
	for _, idx := range mesh.Indices {
		if int(idx) >= len(mesh.Vertices) {
			t.Fatalf("Sphere with zero tessellation: index %d out of range", idx)
		}
	}
}

func TestIndices16Narrowing(t *testing.T) {
	mesh, err := Box(1, 1, 1, 0)
	if err != nil {
		t.Fatal(err)
	}

	idx16 := mesh.Indices16()
	if len(idx16) != len(mesh.Indices) {
		t.Fatalf("Indices16 length = %d, want %d", len(idx16), len(mesh.Indices))
	}
	for i := range idx16 {
		if uint32(idx16[i]) != mesh.Indices[i] {
			t.Errorf("index %d: narrowed %d != original %d", i, idx16[i], mesh.Indices[i])
		}
	}
}

func TestNoZeroAreaLateralEdges(t *testing.T) {
	// The prism and pyramids are built from explicit faces; none of their
	// triangles may have a zero-length edge. The cone is deliberately not
	// here: its fixed vertex and triangle counts keep a full quad ring at
	// every stack, so the last ring's collapse onto the apex produces
	// zero-length edges by construction.
	shapes := map[string]MeshData{}
	m, _ := Pyramid(1.5, 1.5, 1)
	shapes["pyramid"] = m
	m, _ = PyramidFrustum(1.5, 0.5, 1, 1)
	shapes["pyramidFrustum"] = m
	m, _ = TriangularPrism(1, 0.5, 0)
	shapes["triangularPrism"] = m

	for name, mesh := range shapes {
		for i := 0; i < len(mesh.Indices); i += 3 {
			a := mesh.Vertices[mesh.Indices[i]].Position
			b := mesh.Vertices[mesh.Indices[i+1]].Position
			c := mesh.Vertices[mesh.Indices[i+2]].Position
			if a.Distance(b) < 1e-6 || b.Distance(c) < 1e-6 || c.Distance(a) < 1e-6 {
				t.Fatalf("%s: triangle %d has a zero-length edge", name, i/3)
			}
		}
	}
}
