// Package lighting defines the light description shared between the scene
// and the shader constant uploads.
package lighting

import "github.com/Faultbox/donut-castle/pkg/math"

// MaxLights is the size of the light array in the pass constants. The shader
// declares the same bound.
const MaxLights = 16

// Light describes one light source. The field layout mirrors the std140
// uniform block in the lighting shader: three vec3s each padded with the
// scalar that follows.
type Light struct {
	Strength     math.Vec3
	FalloffStart float32
	Direction    math.Vec3
	FalloffEnd   float32
	Position     math.Vec3
	SpotPower    float32
}

// Directional returns a light with only direction and strength set.
func Directional(direction, strength math.Vec3) Light {
	return Light{Direction: direction, Strength: strength}
}

// Point returns a positional light with a linear falloff band.
func Point(position, strength math.Vec3, falloffStart, falloffEnd float32) Light {
	return Light{
		Position:     position,
		Strength:     strength,
		FalloffStart: falloffStart,
		FalloffEnd:   falloffEnd,
	}
}

// CastleRig returns the fixed light setup for the castle scene: three
// directional key/fill/back lights and four point torches, one at the top of
// each tower.
func CastleRig() []Light {
	lights := []Light{
		Directional(math.Vec3{X: 0.57735, Y: -0.57735, Z: 0.57735}, math.Vec3{X: 0.5, Y: 0.5, Z: 0.5}),
		Directional(math.Vec3{X: -0.57735, Y: -0.57735, Z: 0.57735}, math.Vec3{X: 0.3, Y: 0.3, Z: 0.3}),
		Directional(math.Vec3{X: 0, Y: -0.707, Z: -0.707}, math.Vec3{X: 0.15, Y: 0.15, Z: 0.15}),
	}

	torch := math.Vec3{X: 0.1, Y: 0.1, Z: 3.8}
	for _, p := range []math.Vec3{
		{X: -7, Y: 5.5, Z: 7},
		{X: 7, Y: 5.5, Z: 7},
		{X: -7, Y: 5.5, Z: -7},
		{X: 7, Y: 5.5, Z: -7},
	} {
		lights = append(lights, Point(p, torch, 1, 5))
	}
	return lights
}
