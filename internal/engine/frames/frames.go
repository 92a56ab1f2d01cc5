// Package frames implements the per-frame resource ring that lets the CPU
// build several frames ahead of the renderer without overwriting constants
// the in-flight frames still read.
package frames

import (
	"fmt"

	"github.com/Faultbox/donut-castle/internal/engine/lighting"
	"github.com/Faultbox/donut-castle/pkg/geometry"
	"github.com/Faultbox/donut-castle/pkg/math"
)

// ObjectConstants is the per-object slice of a frame's constant data.
type ObjectConstants struct {
	World        math.Mat4
	TexTransform math.Mat4
}

// MaterialConstants is the per-material slice of a frame's constant data.
type MaterialConstants struct {
	DiffuseAlbedo math.Vec4
	FresnelR0     math.Vec3
	Roughness     float32
	Transform     math.Mat4
}

// PassConstants holds the values shared by every draw in a frame.
type PassConstants struct {
	View        math.Mat4
	InvView     math.Mat4
	Proj        math.Mat4
	InvProj     math.Mat4
	ViewProj    math.Mat4
	InvViewProj math.Mat4

	EyePos              math.Vec3
	RenderTargetSize    math.Vec2
	InvRenderTargetSize math.Vec2
	NearZ               float32
	FarZ                float32
	TotalTime           float32
	DeltaTime           float32

	AmbientLight math.Vec4
	Lights       [lighting.MaxLights]lighting.Light

	FogColor math.Vec4
	FogStart float32
	FogRange float32
}

// Resource is one slot of the ring: a full copy of everything the CPU writes
// for a frame. WavesVB is the dynamic vertex buffer for the animated water
// surface, duplicated per slot for the same reason the constants are.
type Resource struct {
	Objects   []ObjectConstants
	Materials []MaterialConstants
	Pass      PassConstants
	WavesVB   []geometry.PackedVertex

	fence uint64
}

// Ring cycles through depth frame resources. Advance blocks only when the
// renderer is depth frames behind, which is the whole point: the CPU keeps
// working while earlier frames are still being drawn.
type Ring struct {
	resources []*Resource
	current   int
	fence     *Fence
	nextValue uint64
}

// NewRing builds a ring of depth slots, each sized for the given object,
// material and wave vertex counts. Depth must be at least 2; a single slot
// would serialize the CPU against the renderer every frame.
func NewRing(depth, objectCount, materialCount, waveVertexCount int) (*Ring, error) {
	if depth < 2 {
		return nil, fmt.Errorf("frame ring depth %d: need at least 2", depth)
	}

	r := &Ring{
		resources: make([]*Resource, depth),
		fence:     NewFence(),
	}
	for i := range r.resources {
		r.resources[i] = &Resource{
			Objects:   make([]ObjectConstants, objectCount),
			Materials: make([]MaterialConstants, materialCount),
			WavesVB:   make([]geometry.PackedVertex, waveVertexCount),
		}
	}
	return r, nil
}

// Depth returns the number of slots in the ring.
func (r *Ring) Depth() int {
	return len(r.resources)
}

// Fence exposes the completion fence so the renderer can signal finished
// frames.
func (r *Ring) Fence() *Fence {
	return r.fence
}

// Current returns the slot the CPU is allowed to write this frame. Only valid
// between Advance and Submit.
func (r *Ring) Current() *Resource {
	return r.resources[r.current]
}

// CurrentIndex returns the index of the current slot, for callers that keep
// per-slot GPU resources of their own.
func (r *Ring) CurrentIndex() int {
	return r.current
}

// NextFence returns the fence value stamped on the slot the next Advance will
// enter, or zero if that slot was never submitted. Callers that must perform
// the completion wait themselves (a GL sync object poll runs on the render
// thread) check this before advancing.
func (r *Ring) NextFence() uint64 {
	return r.resources[(r.current+1)%len(r.resources)].fence
}

// Advance steps to the next slot, blocking until the renderer has finished
// the frame that last used it. A zero fence stamp means the slot has never
// been submitted and is free immediately.
func (r *Ring) Advance() {
	r.current = (r.current + 1) % len(r.resources)
	slot := r.resources[r.current]
	if slot.fence != 0 && slot.fence > r.fence.Completed() {
		r.fence.WaitFor(slot.fence)
	}
}

// Submit stamps the current slot with the next fence value and returns it.
// The caller signals that value on the fence once the frame's work is done.
func (r *Ring) Submit() uint64 {
	r.nextValue++
	r.resources[r.current].fence = r.nextValue
	return r.nextValue
}
