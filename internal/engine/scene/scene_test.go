package scene

import (
	"math/rand"
	"testing"

	"github.com/Faultbox/donut-castle/internal/engine/camera"
	"github.com/Faultbox/donut-castle/internal/engine/frames"
)

func newTestScene(t *testing.T) *Scene {
	t.Helper()
	s, err := BuildCastle(rand.New(rand.NewSource(1)), 3)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func newTestRing(t *testing.T, s *Scene) *frames.Ring {
	t.Helper()
	r, err := frames.NewRing(3, s.ObjectCount(), s.MaterialCount(), s.Waves.VertexCount())
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestBuildCastleInventory(t *testing.T) {
	s := newTestScene(t)

	if got := s.ObjectCount(); got != 39 {
		t.Errorf("ObjectCount() = %d, want 39", got)
	}
	if got := s.MaterialCount(); got != 9 {
		t.Errorf("MaterialCount() = %d, want 9", got)
	}
	if got := len(s.Trees); got != 16 {
		t.Errorf("tree count = %d, want 16", got)
	}
	if got := len(s.Shapes.Names()); got != 10 {
		t.Errorf("shape count = %d, want 10", got)
	}

	if got := len(s.Layer(LayerTransparent)); got != 1 {
		t.Errorf("transparent layer has %d items, want 1 (water)", got)
	}
	if got := len(s.Layer(LayerBillboard)); got != 1 {
		t.Errorf("billboard layer has %d items, want 1 (trees)", got)
	}
	if got := len(s.Layer(LayerOpaque)); got != 37 {
		t.Errorf("opaque layer has %d items, want 37", got)
	}
}

func TestCBIndicesAreDenseAndUnique(t *testing.T) {
	s := newTestScene(t)

	seen := make(map[int]bool)
	for _, it := range s.Items {
		if it.CBIndex < 0 || it.CBIndex >= len(s.Items) {
			t.Fatalf("item %q CBIndex %d out of range", it.Name, it.CBIndex)
		}
		if seen[it.CBIndex] {
			t.Fatalf("item %q reuses CBIndex %d", it.Name, it.CBIndex)
		}
		seen[it.CBIndex] = true
	}
}

func TestTreesSitOutsideTheWalls(t *testing.T) {
	s := newTestScene(t)
	for i, tree := range s.Trees {
		p := tree.Position
		r := p.X*p.X + p.Z*p.Z
		if r < 12*12-0.01 || r > 20*20+0.01 {
			t.Errorf("tree %d at planar radius² %v, want ring [144, 400]", i, r)
		}
		if p.Y != 3.9 {
			t.Errorf("tree %d at y=%v, want 3.9", i, p.Y)
		}
	}
}

func TestTreePlacementIsSeedDeterministic(t *testing.T) {
	a, err := BuildCastle(rand.New(rand.NewSource(42)), 3)
	if err != nil {
		t.Fatal(err)
	}
	b, err := BuildCastle(rand.New(rand.NewSource(42)), 3)
	if err != nil {
		t.Fatal(err)
	}
	for i := range a.Trees {
		if a.Trees[i] != b.Trees[i] {
			t.Fatalf("tree %d differs across identical seeds: %+v vs %+v", i, a.Trees[i], b.Trees[i])
		}
	}
}

func TestDirtyCountdownReachesEverySlot(t *testing.T) {
	s := newTestScene(t)
	ring := newTestRing(t, s)

	item := s.Items[0]
	if item.NumFramesDirty != 3 {
		t.Fatalf("fresh item NumFramesDirty = %d, want 3", item.NumFramesDirty)
	}

	// Three updates push the data into all three slots and drain the
	// countdown.
	for frame := 0; frame < 3; frame++ {
		ring.Advance()
		s.UpdateObjects(ring.Current())
		v := ring.Submit()
		ring.Fence().Signal(v)
	}
	if item.NumFramesDirty != 0 {
		t.Errorf("NumFramesDirty = %d after one full revolution, want 0", item.NumFramesDirty)
	}

	// A clean item's constants exist in every slot.
	ring2 := newTestRing(t, s)
	item.NumFramesDirty = 3
	for frame := 0; frame < 3; frame++ {
		ring2.Advance()
		s.UpdateObjects(ring2.Current())
		if got := ring2.Current().Objects[item.CBIndex].World; got != item.World {
			t.Fatalf("frame %d: slot world constant not written", frame)
		}
		v := ring2.Submit()
		ring2.Fence().Signal(v)
	}
}

func TestWaterScrollMarksMaterialDirty(t *testing.T) {
	s := newTestScene(t)
	mat := s.WaterItem.Material

	// Drain the initial countdown.
	mat.NumFramesDirty = 0

	s.ScrollWater(0.016)
	if mat.NumFramesDirty != 3 {
		t.Errorf("NumFramesDirty = %d after scroll, want 3", mat.NumFramesDirty)
	}
	if mat.Transform[12] == 0 || mat.Transform[13] == 0 {
		t.Errorf("texture offsets = (%v, %v) after scroll, want nonzero", mat.Transform[12], mat.Transform[13])
	}
}

func TestWaterScrollWraps(t *testing.T) {
	s := newTestScene(t)
	mat := s.WaterItem.Material

	for i := 0; i < 1000; i++ {
		s.ScrollWater(0.05)
	}
	if u := mat.Transform[12]; u < 0 || u >= 1 {
		t.Errorf("u offset = %v after long scroll, want in [0, 1)", u)
	}
	if v := mat.Transform[13]; v < 0 || v >= 1 {
		t.Errorf("v offset = %v after long scroll, want in [0, 1)", v)
	}
}

func TestUpdateWavesFillsSlotBuffer(t *testing.T) {
	s := newTestScene(t)
	ring := newTestRing(t, s)
	ring.Advance()
	slot := ring.Current()

	s.UpdateWaves(slot, 0.3, 0.03)

	if len(slot.WavesVB) != s.Waves.VertexCount() {
		t.Fatalf("slot buffer has %d vertices, want %d", len(slot.WavesVB), s.Waves.VertexCount())
	}
	for i, v := range slot.WavesVB {
		if v.TexCoord.X < -0.001 || v.TexCoord.X > 1.001 || v.TexCoord.Y < -0.001 || v.TexCoord.Y > 1.001 {
			t.Fatalf("vertex %d texcoord %v outside [0,1]", i, v.TexCoord)
		}
	}
}

func TestUpdatePassMatricesInvert(t *testing.T) {
	s := newTestScene(t)
	ring := newTestRing(t, s)
	ring.Advance()
	slot := ring.Current()

	cam := camera.New()
	s.UpdatePass(slot, cam, 800, 600, 1.0, 0.016)

	pc := slot.Pass
	round := pc.ViewProj.Mul(pc.InvViewProj)
	for i, v := range round {
		want := float32(0)
		if i%5 == 0 {
			want = 1
		}
		if v < want-0.01 || v > want+0.01 {
			t.Fatalf("ViewProj * InvViewProj [%d] = %v, want %v", i, v, want)
		}
	}
	if pc.EyePos != cam.Position() {
		t.Errorf("EyePos = %v, want %v", pc.EyePos, cam.Position())
	}
	if pc.AmbientLight != s.Ambient {
		t.Errorf("AmbientLight = %v, want %v", pc.AmbientLight, s.Ambient)
	}
	if pc.FogColor != s.FogColor {
		t.Errorf("FogColor = %v, want %v", pc.FogColor, s.FogColor)
	}
	if pc.FogStart != s.FogStart || pc.FogRange != s.FogRange {
		t.Errorf("fog distances = (%v, %v), want (%v, %v)",
			pc.FogStart, pc.FogRange, s.FogStart, s.FogRange)
	}
	if s.FogStart <= 0 || s.FogRange <= 0 {
		t.Errorf("fog distances (%v, %v) not positive", s.FogStart, s.FogRange)
	}
}

func TestWaterIndicesCoverTheGrid(t *testing.T) {
	s := newTestScene(t)
	want := (s.Waves.RowCount() - 1) * (s.Waves.ColumnCount() - 1) * 6
	if len(s.WaterIndices) != want {
		t.Fatalf("water index count = %d, want %d", len(s.WaterIndices), want)
	}
	max := uint32(s.Waves.VertexCount())
	for i, idx := range s.WaterIndices {
		if idx >= max {
			t.Fatalf("water index %d = %d, out of range %d", i, idx, max)
		}
	}
}
