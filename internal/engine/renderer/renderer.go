// Package renderer provides OpenGL rendering for the castle scene.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/donut-castle/internal/engine/frames"
	"github.com/Faultbox/donut-castle/internal/engine/scene"
	"github.com/Faultbox/donut-castle/internal/engine/shader"
	"github.com/Faultbox/donut-castle/internal/logger"
)

// packedVertexSize is the byte stride of geometry.PackedVertex.
const packedVertexSize = 32

// Config holds renderer configuration.
type Config struct {
	Width     int
	Height    int
	Wireframe bool
	RingDepth int
}

// litUniforms caches the uniform locations of the lit program.
type litUniforms struct {
	world        int32
	viewProj     int32
	texTransform int32
	matTransform int32

	diffuseMap    int32
	diffuseAlbedo int32
	fresnelR0     int32
	roughness     int32

	eyePos        int32
	ambientLight  int32
	numDirLights  int32
	numPointLight int32
	fogColor      int32
	fogStart      int32
	fogRange      int32

	lightStrength [16]int32
	lightFalloffS [16]int32
	lightDir      [16]int32
	lightFalloffE [16]int32
	lightPos      [16]int32
	lightSpot     [16]int32
}

// pendingSync is a GPU sync object stamped with a ring fence value.
type pendingSync struct {
	sync  uintptr
	value uint64
}

// Renderer owns all OpenGL objects: the two shader programs, the static
// shape buffers, the per-slot dynamic water buffers, the tree point buffer
// and the procedural textures.
type Renderer struct {
	config Config

	litProgram  uint32
	treeProgram uint32
	lit         litUniforms

	treeViewProj int32
	treeEyePos   int32
	treeDiffuse  int32
	treeAmbient  int32

	shapeVAO uint32
	shapeVBO uint32
	shapeEBO uint32

	waterVAOs []uint32
	waterVBOs []uint32
	waterEBO  uint32

	treeVAO uint32
	treeVBO uint32

	textures [9]uint32

	pending []pendingSync
}

// New creates a renderer and uploads the scene's static geometry.
// IMPORTANT: Must be called AFTER the OpenGL context is created!
func New(cfg Config, sc *scene.Scene) (*Renderer, error) {
	r := &Renderer{config: cfg}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	rendererName := gl.GoStr(gl.GetString(gl.RENDERER))
	logger.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("renderer", rendererName),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.ClearColor(0.53, 0.68, 0.85, 1.0) // Sky

	var err error
	r.litProgram, err = shader.CompileProgram(litVertexShader, litFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("lit program: %w", err)
	}
	r.treeProgram, err = shader.CompileProgramWithGeometry(treeVertexShader, treeGeometryShader, treeFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("tree program: %w", err)
	}
	r.lookupUniforms()

	r.uploadShapes(sc)
	r.uploadWater(sc)
	r.uploadTrees(sc)
	r.textures = buildTextures()

	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	logger.Info("renderer ready",
		zap.Int("shapes", len(sc.Shapes.Names())),
		zap.Int("renderItems", sc.ObjectCount()),
		zap.Int("waterVertices", sc.Waves.VertexCount()),
	)
	return r, nil
}

func (r *Renderer) lookupUniforms() {
	p := r.litProgram
	r.lit.world = shader.GetUniform(p, "uWorld")
	r.lit.viewProj = shader.GetUniform(p, "uViewProj")
	r.lit.texTransform = shader.GetUniform(p, "uTexTransform")
	r.lit.matTransform = shader.GetUniform(p, "uMatTransform")
	r.lit.diffuseMap = shader.GetUniform(p, "uDiffuseMap")
	r.lit.diffuseAlbedo = shader.GetUniform(p, "uDiffuseAlbedo")
	r.lit.fresnelR0 = shader.GetUniform(p, "uFresnelR0")
	r.lit.roughness = shader.GetUniform(p, "uRoughness")
	r.lit.eyePos = shader.GetUniform(p, "uEyePos")
	r.lit.ambientLight = shader.GetUniform(p, "uAmbientLight")
	r.lit.numDirLights = shader.GetUniform(p, "uNumDirLights")
	r.lit.numPointLight = shader.GetUniform(p, "uNumPointLights")
	r.lit.fogColor = shader.GetUniform(p, "uFogColor")
	r.lit.fogStart = shader.GetUniform(p, "uFogStart")
	r.lit.fogRange = shader.GetUniform(p, "uFogRange")
	for i := range r.lit.lightStrength {
		r.lit.lightStrength[i] = shader.GetUniform(p, fmt.Sprintf("uLights[%d].Strength", i))
		r.lit.lightFalloffS[i] = shader.GetUniform(p, fmt.Sprintf("uLights[%d].FalloffStart", i))
		r.lit.lightDir[i] = shader.GetUniform(p, fmt.Sprintf("uLights[%d].Direction", i))
		r.lit.lightFalloffE[i] = shader.GetUniform(p, fmt.Sprintf("uLights[%d].FalloffEnd", i))
		r.lit.lightPos[i] = shader.GetUniform(p, fmt.Sprintf("uLights[%d].Position", i))
		r.lit.lightSpot[i] = shader.GetUniform(p, fmt.Sprintf("uLights[%d].SpotPower", i))
	}

	r.treeViewProj = shader.GetUniform(r.treeProgram, "uViewProj")
	r.treeEyePos = shader.GetUniform(r.treeProgram, "uEyePos")
	r.treeDiffuse = shader.GetUniform(r.treeProgram, "uDiffuseMap")
	r.treeAmbient = shader.GetUniform(r.treeProgram, "uAmbientLight")
}

// uploadShapes pushes the aggregated shape buffer to the GPU once. It never
// changes afterwards.
func (r *Renderer) uploadShapes(sc *scene.Scene) {
	gl.GenVertexArrays(1, &r.shapeVAO)
	gl.GenBuffers(1, &r.shapeVBO)
	gl.GenBuffers(1, &r.shapeEBO)

	gl.BindVertexArray(r.shapeVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.shapeVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(sc.Shapes.Vertices)*packedVertexSize,
		gl.Ptr(sc.Shapes.Vertices), gl.STATIC_DRAW)

	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.shapeEBO)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(sc.Shapes.Indices)*4,
		gl.Ptr(sc.Shapes.Indices), gl.STATIC_DRAW)

	packedVertexAttribs()
	gl.BindVertexArray(0)
}

// uploadWater allocates one dynamic vertex buffer per ring slot, so the CPU
// can stream a slot's wave surface while the GPU still draws another's.
func (r *Renderer) uploadWater(sc *scene.Scene) {
	r.waterVAOs = make([]uint32, r.config.RingDepth)
	r.waterVBOs = make([]uint32, r.config.RingDepth)
	gl.GenVertexArrays(int32(r.config.RingDepth), &r.waterVAOs[0])
	gl.GenBuffers(int32(r.config.RingDepth), &r.waterVBOs[0])
	gl.GenBuffers(1, &r.waterEBO)

	for i := range r.waterVAOs {
		gl.BindVertexArray(r.waterVAOs[i])
		gl.BindBuffer(gl.ARRAY_BUFFER, r.waterVBOs[i])
		gl.BufferData(gl.ARRAY_BUFFER, sc.Waves.VertexCount()*packedVertexSize,
			nil, gl.DYNAMIC_DRAW)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.waterEBO)
		if i == 0 {
			gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(sc.WaterIndices)*4,
				gl.Ptr(sc.WaterIndices), gl.STATIC_DRAW)
		}
		packedVertexAttribs()
	}
	gl.BindVertexArray(0)
}

func packedVertexAttribs() {
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, packedVertexSize, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, packedVertexSize, gl.PtrOffset(12))
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 2, gl.FLOAT, false, packedVertexSize, gl.PtrOffset(24))
}

func (r *Renderer) uploadTrees(sc *scene.Scene) {
	gl.GenVertexArrays(1, &r.treeVAO)
	gl.GenBuffers(1, &r.treeVBO)

	gl.BindVertexArray(r.treeVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.treeVBO)
	const stride = 20 // vec3 position + vec2 size
	gl.BufferData(gl.ARRAY_BUFFER, len(sc.Trees)*stride, gl.Ptr(sc.Trees), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, stride, gl.PtrOffset(12))
	gl.BindVertexArray(0)
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	for _, p := range r.pending {
		gl.DeleteSync(p.sync)
	}
	gl.DeleteVertexArrays(1, &r.shapeVAO)
	gl.DeleteBuffers(1, &r.shapeVBO)
	gl.DeleteBuffers(1, &r.shapeEBO)
	if len(r.waterVAOs) > 0 {
		gl.DeleteVertexArrays(int32(len(r.waterVAOs)), &r.waterVAOs[0])
		gl.DeleteBuffers(int32(len(r.waterVBOs)), &r.waterVBOs[0])
	}
	gl.DeleteBuffers(1, &r.waterEBO)
	gl.DeleteVertexArrays(1, &r.treeVAO)
	gl.DeleteBuffers(1, &r.treeVBO)
	gl.DeleteTextures(int32(len(r.textures)), &r.textures[0])
	gl.DeleteProgram(r.litProgram)
	gl.DeleteProgram(r.treeProgram)
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// ToggleWireframe flips wireframe drawing.
func (r *Renderer) ToggleWireframe() {
	r.config.Wireframe = !r.config.Wireframe
}

// DrawFrame renders one frame from the given ring slot. slotIndex selects
// which dynamic water buffer receives this frame's surface.
func (r *Renderer) DrawFrame(sc *scene.Scene, slot *frames.Resource, slotIndex int) {
	if r.config.Wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	// Stream this slot's water surface.
	gl.BindBuffer(gl.ARRAY_BUFFER, r.waterVBOs[slotIndex])
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(slot.WavesVB)*packedVertexSize, gl.Ptr(slot.WavesVB))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	gl.UseProgram(r.litProgram)
	r.setPassUniforms(sc, slot)

	gl.BindVertexArray(r.shapeVAO)
	for _, it := range sc.Layer(scene.LayerOpaque) {
		r.drawItem(it, slot)
		gl.DrawElementsBaseVertexWithOffset(gl.TRIANGLES, int32(it.Mesh.IndexCount),
			gl.UNSIGNED_INT, uintptr(it.Mesh.StartIndexLocation*4), it.Mesh.BaseVertexLocation)
	}

	// Water draws blended, after everything opaque.
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.DepthMask(false)
	gl.BindVertexArray(r.waterVAOs[slotIndex])
	for _, it := range sc.Layer(scene.LayerTransparent) {
		r.drawItem(it, slot)
		gl.DrawElementsBaseVertexWithOffset(gl.TRIANGLES, int32(it.Mesh.IndexCount),
			gl.UNSIGNED_INT, uintptr(it.Mesh.StartIndexLocation*4), it.Mesh.BaseVertexLocation)
	}
	gl.DepthMask(true)
	gl.Disable(gl.BLEND)

	// Billboards last; they alpha-test instead of blending.
	gl.UseProgram(r.treeProgram)
	gl.UniformMatrix4fv(r.treeViewProj, 1, false, slot.Pass.ViewProj.Ptr())
	gl.Uniform3f(r.treeEyePos, slot.Pass.EyePos.X, slot.Pass.EyePos.Y, slot.Pass.EyePos.Z)
	gl.Uniform4f(r.treeAmbient, slot.Pass.AmbientLight.X, slot.Pass.AmbientLight.Y,
		slot.Pass.AmbientLight.Z, slot.Pass.AmbientLight.W)
	gl.Uniform1i(r.treeDiffuse, 0)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.textures[scene.TexTreeArray])
	gl.BindVertexArray(r.treeVAO)
	for _, it := range sc.Layer(scene.LayerBillboard) {
		gl.DrawArrays(gl.POINTS, 0, int32(it.Mesh.IndexCount))
	}
	gl.BindVertexArray(0)
}

func (r *Renderer) setPassUniforms(sc *scene.Scene, slot *frames.Resource) {
	pc := &slot.Pass
	gl.UniformMatrix4fv(r.lit.viewProj, 1, false, pc.ViewProj.Ptr())
	gl.Uniform3f(r.lit.eyePos, pc.EyePos.X, pc.EyePos.Y, pc.EyePos.Z)
	gl.Uniform4f(r.lit.ambientLight, pc.AmbientLight.X, pc.AmbientLight.Y,
		pc.AmbientLight.Z, pc.AmbientLight.W)
	gl.Uniform4f(r.lit.fogColor, pc.FogColor.X, pc.FogColor.Y,
		pc.FogColor.Z, pc.FogColor.W)
	gl.Uniform1f(r.lit.fogStart, pc.FogStart)
	gl.Uniform1f(r.lit.fogRange, pc.FogRange)

	dir, point := 0, 0
	for _, l := range sc.Lights {
		if l.FalloffEnd == 0 {
			dir++
		} else {
			point++
		}
	}
	gl.Uniform1i(r.lit.numDirLights, int32(dir))
	gl.Uniform1i(r.lit.numPointLight, int32(point))

	for i := range pc.Lights {
		l := &pc.Lights[i]
		gl.Uniform3f(r.lit.lightStrength[i], l.Strength.X, l.Strength.Y, l.Strength.Z)
		gl.Uniform1f(r.lit.lightFalloffS[i], l.FalloffStart)
		gl.Uniform3f(r.lit.lightDir[i], l.Direction.X, l.Direction.Y, l.Direction.Z)
		gl.Uniform1f(r.lit.lightFalloffE[i], l.FalloffEnd)
		gl.Uniform3f(r.lit.lightPos[i], l.Position.X, l.Position.Y, l.Position.Z)
		gl.Uniform1f(r.lit.lightSpot[i], l.SpotPower)
	}
}

// drawItem uploads one item's object and material constants from the slot.
func (r *Renderer) drawItem(it *scene.RenderItem, slot *frames.Resource) {
	oc := &slot.Objects[it.CBIndex]
	gl.UniformMatrix4fv(r.lit.world, 1, false, oc.World.Ptr())
	gl.UniformMatrix4fv(r.lit.texTransform, 1, false, oc.TexTransform.Ptr())

	mc := &slot.Materials[it.Material.CBIndex]
	gl.UniformMatrix4fv(r.lit.matTransform, 1, false, mc.Transform.Ptr())
	gl.Uniform4f(r.lit.diffuseAlbedo, mc.DiffuseAlbedo.X, mc.DiffuseAlbedo.Y,
		mc.DiffuseAlbedo.Z, mc.DiffuseAlbedo.W)
	gl.Uniform3f(r.lit.fresnelR0, mc.FresnelR0.X, mc.FresnelR0.Y, mc.FresnelR0.Z)
	gl.Uniform1f(r.lit.roughness, mc.Roughness)

	gl.Uniform1i(r.lit.diffuseMap, 0)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.textures[it.Material.TextureSlot])
}

// SubmitFence inserts a GPU sync point stamped with the ring fence value of
// the frame just recorded.
func (r *Renderer) SubmitFence(value uint64) {
	sync := gl.FenceSync(gl.SYNC_GPU_COMMANDS_COMPLETE, 0)
	r.pending = append(r.pending, pendingSync{sync: sync, value: value})
}

// PollFences signals every fence value whose GPU work has finished, without
// blocking.
func (r *Renderer) PollFences(f *frames.Fence) {
	for len(r.pending) > 0 {
		p := r.pending[0]
		status := gl.ClientWaitSync(p.sync, 0, 0)
		if status != gl.ALREADY_SIGNALED && status != gl.CONDITION_SATISFIED {
			return
		}
		gl.DeleteSync(p.sync)
		f.Signal(p.value)
		r.pending = r.pending[1:]
	}
}

// WaitFence blocks until the GPU passes the sync stamped with value, then
// signals the ring fence. Used when the frame ring is about to wrap onto a
// slot the GPU still reads.
func (r *Renderer) WaitFence(f *frames.Fence, value uint64) {
	for len(r.pending) > 0 && r.pending[0].value <= value {
		p := r.pending[0]
		gl.ClientWaitSync(p.sync, gl.SYNC_FLUSH_COMMANDS_BIT, ^uint64(0))
		gl.DeleteSync(p.sync)
		f.Signal(p.value)
		r.pending = r.pending[1:]
	}
}
