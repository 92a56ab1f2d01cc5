package lighting

import "testing"

func TestCastleRig(t *testing.T) {
	rig := CastleRig()
	if len(rig) != 7 {
		t.Fatalf("CastleRig() returned %d lights, want 7", len(rig))
	}
	if len(rig) > MaxLights {
		t.Fatalf("CastleRig() returned %d lights, exceeds MaxLights %d", len(rig), MaxLights)
	}

	for i, l := range rig[:3] {
		if l.Direction.Length() < 0.99 || l.Direction.Length() > 1.01 {
			t.Errorf("directional %d: direction %v not unit length", i, l.Direction)
		}
		if l.FalloffEnd != 0 {
			t.Errorf("directional %d: falloff set, want none", i)
		}
	}

	for i, l := range rig[3:] {
		if l.Position.Y != 5.5 {
			t.Errorf("torch %d at y=%v, want tower top 5.5", i, l.Position.Y)
		}
		if l.FalloffStart >= l.FalloffEnd {
			t.Errorf("torch %d: falloff %v..%v, want start < end", i, l.FalloffStart, l.FalloffEnd)
		}
		if l.Strength.Z <= l.Strength.X {
			t.Errorf("torch %d: strength %v, want blue dominant", i, l.Strength)
		}
	}
}
