package waves

import "testing"

func newTestWaves(t *testing.T) *Waves {
	t.Helper()
	w, err := New(128, 128, 1.0, 0.03, 4.0, 0.2)
	if err != nil {
		t.Fatal(err)
	}
	return w
}

func TestNewRejectsBadGrids(t *testing.T) {
	if _, err := New(2, 128, 1, 0.03, 4, 0.2); err == nil {
		t.Error("New with 2 rows = nil error, want grid error")
	}
	if _, err := New(128, 1, 1, 0.03, 4, 0.2); err == nil {
		t.Error("New with 1 column = nil error, want grid error")
	}
}

func TestNewRejectsUnstableParameters(t *testing.T) {
	// Too large a time step for the wave speed.
	if _, err := New(128, 128, 1.0, 1.0, 4.0, 0.2); err == nil {
		t.Error("New with unstable dt = nil error, want stability error")
	}
}

func TestCounts(t *testing.T) {
	w := newTestWaves(t)
	if got := w.VertexCount(); got != 128*128 {
		t.Errorf("VertexCount() = %d, want %d", got, 128*128)
	}
	if got := w.TriangleCount(); got != 127*127*2 {
		t.Errorf("TriangleCount() = %d, want %d", got, 127*127*2)
	}
	if got := w.Width(); got != 127 {
		t.Errorf("Width() = %v, want 127", got)
	}
	if got := w.Depth(); got != 127 {
		t.Errorf("Depth() = %v, want 127", got)
	}
}

func TestFlatSurfaceStaysFlat(t *testing.T) {
	w := newTestWaves(t)
	w.Update(1.0)
	if h := w.MaxHeight(); h != 0 {
		t.Errorf("MaxHeight() = %v after updating an undisturbed surface, want 0", h)
	}
}

func TestDisturbSpreadsAndDecays(t *testing.T) {
	w := newTestWaves(t)
	w.Disturb(64, 64, 0.5)

	if h := w.MaxHeight(); h != 0.5 {
		t.Fatalf("MaxHeight() = %v right after Disturb, want 0.5", h)
	}

	// After a step the ripple reaches points the impulse never touched.
	w.Update(0.03)
	if y := w.Position(64*128 + 62).Y; y == 0 {
		t.Error("second-ring point still flat after one step, want ripple")
	}
	if h := w.MaxHeight(); h <= 0 {
		t.Errorf("MaxHeight() = %v after one step, want > 0", h)
	}

	// With damping the surface settles over time.
	for i := 0; i < 2000; i++ {
		w.Update(0.03)
	}
	if h := w.MaxHeight(); h > 0.05 {
		t.Errorf("MaxHeight() = %v after settling, want near 0", h)
	}
}

func TestBoundaryStaysPinned(t *testing.T) {
	w := newTestWaves(t)
	// The closest valid target; its neighbor writes reach row and column 1.
	w.Disturb(2, 2, 1.0)
	for i := 0; i < 100; i++ {
		w.Update(0.03)
	}

	n := w.ColumnCount()
	for j := 0; j < n; j++ {
		if y := w.Position(j).Y; y != 0 {
			t.Fatalf("boundary point (0, %d) has height %v, want 0", j, y)
		}
		if y := w.Position((w.RowCount()-1)*n + j).Y; y != 0 {
			t.Fatalf("boundary point (last, %d) has height %v, want 0", j, y)
		}
	}
	for i := 0; i < w.RowCount(); i++ {
		if y := w.Position(i * n).Y; y != 0 {
			t.Fatalf("boundary point (%d, 0) has height %v, want 0", i, y)
		}
		if y := w.Position(i*n + n - 1).Y; y != 0 {
			t.Fatalf("boundary point (%d, last) has height %v, want 0", i, y)
		}
	}
}

func TestDisturbIgnoresBoundaryAndEdgeNeighbors(t *testing.T) {
	w := newTestWaves(t)
	w.Disturb(0, 5, 1.0)
	w.Disturb(5, 0, 1.0)
	w.Disturb(127, 5, 1.0)
	// One cell inside is rejected too: its half impulse would land on a
	// boundary point the integrator never revisits.
	w.Disturb(1, 1, 1.0)
	w.Disturb(1, 64, 1.0)
	w.Disturb(64, 126, 1.0)
	if h := w.MaxHeight(); h != 0 {
		t.Errorf("MaxHeight() = %v after boundary-adjacent disturbs, want 0", h)
	}
}

func TestNormalsTiltTowardDisturbance(t *testing.T) {
	w := newTestWaves(t)
	w.Disturb(64, 64, 0.5)
	w.Update(0.03)

	n := w.Normal(64*128 + 63)
	if n.Y <= 0 {
		t.Errorf("normal next to peak = %v, want upward facing", n)
	}
	if n.X == 0 && n.Z == 0 {
		t.Errorf("normal next to peak = %v, want tilted", n)
	}

	l := n.Length()
	if l < 0.999 || l > 1.001 {
		t.Errorf("normal length = %v, want ~1", l)
	}
}
