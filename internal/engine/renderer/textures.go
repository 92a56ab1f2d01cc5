package renderer

import (
	"math/rand"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/donut-castle/internal/engine/scene"
)

// rgba is one texel.
type rgba struct{ r, g, b, a uint8 }

// buildTextures generates one procedural texture per material slot. The demo
// ships no image assets; every surface is synthesized at startup.
func buildTextures() [9]uint32 {
	var textures [9]uint32

	textures[scene.TexGrass] = makeTexture(64, noiseTexel(rgba{60, 120, 40, 255}, 24, 7))
	textures[scene.TexBricks] = makeTexture(64, brickTexel(rgba{150, 75, 55, 255}, rgba{190, 180, 170, 255}))
	textures[scene.TexBricks2] = makeTexture(64, brickTexel(rgba{120, 110, 105, 255}, rgba{80, 72, 70, 255}))
	textures[scene.TexBricks3] = makeTexture(64, brickTexel(rgba{170, 120, 80, 255}, rgba{110, 80, 60, 255}))
	textures[scene.TexIce] = makeTexture(64, noiseTexel(rgba{185, 215, 240, 255}, 12, 13))
	textures[scene.TexCheckboard] = makeTexture(64, checkerTexel(rgba{235, 235, 235, 255}, rgba{40, 40, 40, 255}))
	textures[scene.TexWater] = makeTexture(64, noiseTexel(rgba{60, 110, 180, 255}, 18, 29))
	textures[scene.TexWood] = makeTexture(64, woodTexel(rgba{120, 80, 40, 255}))
	textures[scene.TexTreeArray] = makeTexture(64, treeTexel(rgba{40, 90, 35, 255}, rgba{90, 60, 30, 255}))

	return textures
}

func makeTexture(size int, texel func(x, y int) rgba) uint32 {
	pixels := make([]uint8, 0, size*size*4)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			p := texel(x, y)
			pixels = append(pixels, p.r, p.g, p.b, p.a)
		}
	}

	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(size), int32(size), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return tex
}

// noiseTexel jitters a base color. A fixed seed keeps every run identical.
func noiseTexel(base rgba, spread int, seed int64) func(x, y int) rgba {
	rng := rand.New(rand.NewSource(seed))
	return func(x, y int) rgba {
		d := rng.Intn(2*spread+1) - spread
		return rgba{clamp8(int(base.r) + d), clamp8(int(base.g) + d), clamp8(int(base.b) + d), base.a}
	}
}

func brickTexel(brick, mortar rgba) func(x, y int) rgba {
	return func(x, y int) rgba {
		const brickH, brickW, gap = 16, 32, 2
		row := y / brickH
		// Offset every other course by half a brick.
		bx := x
		if row%2 == 1 {
			bx += brickW / 2
		}
		if y%brickH < gap || bx%brickW < gap {
			return mortar
		}
		return brick
	}
}

func checkerTexel(a, b rgba) func(x, y int) rgba {
	return func(x, y int) rgba {
		if (x/8+y/8)%2 == 0 {
			return a
		}
		return b
	}
}

func woodTexel(base rgba) func(x, y int) rgba {
	return func(x, y int) rgba {
		// Vertical grain bands.
		band := (x / 4) % 3
		d := band * 12
		return rgba{clamp8(int(base.r) - d), clamp8(int(base.g) - d), clamp8(int(base.b) - d), base.a}
	}
}

// treeTexel draws a rough conifer silhouette with transparent background,
// for the alpha-tested billboards.
func treeTexel(leaves, trunk rgba) func(x, y int) rgba {
	return func(x, y int) rgba {
		const size = 64
		cx := size / 2

		// Trunk at the bottom quarter.
		if y > size*3/4 {
			if x > cx-3 && x < cx+3 {
				return trunk
			}
			return rgba{}
		}

		// Triangular canopy widening toward the bottom.
		halfWidth := (y + 6) * cx / (size * 3 / 4)
		if x > cx-halfWidth && x < cx+halfWidth {
			return leaves
		}
		return rgba{}
	}
}

func clamp8(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
