package scene

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/donut-castle/internal/engine/camera"
	"github.com/Faultbox/donut-castle/internal/engine/frames"
	"github.com/Faultbox/donut-castle/pkg/geometry"
	"github.com/Faultbox/donut-castle/pkg/math"
)

// UpdateObjects writes dirty render item constants into the current slot and
// decrements their countdowns. Clean items are skipped; their data already
// sits in every slot.
func (s *Scene) UpdateObjects(slot *frames.Resource) {
	for _, it := range s.Items {
		if it.NumFramesDirty == 0 {
			continue
		}
		slot.Objects[it.CBIndex] = frames.ObjectConstants{
			World:        it.World,
			TexTransform: it.TexTransform,
		}
		it.NumFramesDirty--
	}
}

// UpdateMaterials mirrors UpdateObjects for material constants.
func (s *Scene) UpdateMaterials(slot *frames.Resource) {
	for _, m := range s.Materials {
		if m.NumFramesDirty == 0 {
			continue
		}
		slot.Materials[m.CBIndex] = frames.MaterialConstants{
			DiffuseAlbedo: m.DiffuseAlbedo,
			FresnelR0:     m.FresnelR0,
			Roughness:     m.Roughness,
			Transform:     m.Transform,
		}
		m.NumFramesDirty--
	}
}

// UpdatePass fills the shared per-frame constants.
func (s *Scene) UpdatePass(slot *frames.Resource, cam *camera.OrbitCamera, width, height int, totalTime, deltaTime float32) {
	view := cam.ViewMatrix()
	proj := math.Perspective(0.25*math32.Pi, float32(width)/float32(height), 1, 1000)
	viewProj := proj.Mul(view)

	pc := &slot.Pass
	pc.View = view
	pc.InvView = view.Inverse()
	pc.Proj = proj
	pc.InvProj = proj.Inverse()
	pc.ViewProj = viewProj
	pc.InvViewProj = viewProj.Inverse()
	pc.EyePos = cam.Position()
	pc.RenderTargetSize = math.Vec2{X: float32(width), Y: float32(height)}
	pc.InvRenderTargetSize = math.Vec2{X: 1 / float32(width), Y: 1 / float32(height)}
	pc.NearZ = 1
	pc.FarZ = 1000
	pc.TotalTime = totalTime
	pc.DeltaTime = deltaTime
	pc.AmbientLight = s.Ambient
	pc.FogColor = s.FogColor
	pc.FogStart = s.FogStart
	pc.FogRange = s.FogRange
	for i, l := range s.Lights {
		pc.Lights[i] = l
	}
}

// ScrollWater slides the water texture a little each frame. The offsets live
// in the material transform's translation row, so the material goes dirty
// every frame and streams through all ring slots continuously.
func (s *Scene) ScrollWater(dt float32) {
	mat := s.WaterItem.Material

	tu := mat.Transform[12] + 0.1*dt
	tv := mat.Transform[13] + 0.02*dt
	if tu >= 1 {
		tu -= 1
	}
	if tv >= 1 {
		tv -= 1
	}
	mat.Transform[12] = tu
	mat.Transform[13] = tv
	mat.NumFramesDirty = s.ringDepth
}

// UpdateWaves kicks a random ripple every quarter second, steps the
// simulation and streams the surface into the slot's dynamic vertex buffer.
func (s *Scene) UpdateWaves(slot *frames.Resource, totalTime, deltaTime float32) {
	if totalTime-s.nextDisturb >= 0.25 {
		s.nextDisturb += 0.25

		i := 4 + s.rng.Intn(s.Waves.RowCount()-8)
		j := 4 + s.rng.Intn(s.Waves.ColumnCount()-8)
		r := 0.2 + s.rng.Float32()*0.3
		s.Waves.Disturb(i, j, r)
	}

	s.Waves.Update(deltaTime)

	width := s.Waves.Width()
	depth := s.Waves.Depth()
	for i := 0; i < s.Waves.VertexCount(); i++ {
		pos := s.Waves.Position(i)
		slot.WavesVB[i] = geometry.PackedVertex{
			Position: pos,
			Normal:   s.Waves.Normal(i),
			TexCoord: math.Vec2{
				X: 0.5 + pos.X/width,
				Y: 0.5 - pos.Z/depth,
			},
		}
	}
}

// Update runs one simulated frame against the given ring slot.
func (s *Scene) Update(slot *frames.Resource, cam *camera.OrbitCamera, width, height int, totalTime, deltaTime float32) {
	s.ScrollWater(deltaTime)
	s.UpdateObjects(slot)
	s.UpdateMaterials(slot)
	s.UpdatePass(slot, cam, width, height, totalTime, deltaTime)
	s.UpdateWaves(slot, totalTime, deltaTime)
}
