// Package app wires the window, input, frame ring, scene and renderer into
// the main loop.
package app

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/donut-castle/internal/config"
	"github.com/Faultbox/donut-castle/internal/engine/camera"
	"github.com/Faultbox/donut-castle/internal/engine/frames"
	"github.com/Faultbox/donut-castle/internal/engine/input"
	"github.com/Faultbox/donut-castle/internal/engine/renderer"
	"github.com/Faultbox/donut-castle/internal/engine/scene"
	"github.com/Faultbox/donut-castle/internal/engine/window"
	"github.com/Faultbox/donut-castle/internal/logger"
)

// App is the running demo instance.
type App struct {
	cfg     *config.Config
	running bool

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	camera   *camera.OrbitCamera
	scene    *scene.Scene
	ring     *frames.Ring

	width  int
	height int
}

// New builds the whole application. The window must come first; the renderer
// needs its OpenGL context.
func New(cfg *config.Config) (*App, error) {
	seed := cfg.Scene.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Info("initializing",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.Int("ringDepth", cfg.Scene.RingDepth),
		zap.Int64("seed", seed),
	)

	a := &App{
		cfg:    cfg,
		width:  cfg.Graphics.Width,
		height: cfg.Graphics.Height,
	}

	sc, err := scene.BuildCastle(rand.New(rand.NewSource(seed)), cfg.Scene.RingDepth)
	if err != nil {
		return nil, fmt.Errorf("failed to build scene: %w", err)
	}
	a.scene = sc

	a.ring, err = frames.NewRing(cfg.Scene.RingDepth, sc.ObjectCount(), sc.MaterialCount(), sc.Waves.VertexCount())
	if err != nil {
		return nil, fmt.Errorf("failed to create frame ring: %w", err)
	}

	a.window, err = window.New(window.Config{
		Title:      "Donut Castle",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	a.renderer, err = renderer.New(renderer.Config{
		Width:     cfg.Graphics.Width,
		Height:    cfg.Graphics.Height,
		Wireframe: cfg.Graphics.Wireframe,
		RingDepth: cfg.Scene.RingDepth,
	}, sc)
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	a.input = input.New()
	a.camera = camera.New()

	logger.Info("initialized",
		zap.Int("renderItems", sc.ObjectCount()),
		zap.Int("materials", sc.MaterialCount()),
	)
	return a, nil
}

// Run starts the main loop.
func (a *App) Run() error {
	a.running = true

	start := time.Now()
	lastTime := start
	frameCount := 0
	fpsTimer := start

	logger.Info("starting frame loop")

	for a.running {
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		totalTime := float32(now.Sub(start).Seconds())
		lastTime = now

		if a.input.Update() {
			a.running = false
			break
		}
		a.handleEvents()

		// Drain finished GPU work, then wait only if the ring is about
		// to wrap onto a frame the GPU still reads.
		a.renderer.PollFences(a.ring.Fence())
		if v := a.ring.NextFence(); v > a.ring.Fence().Completed() {
			a.renderer.WaitFence(a.ring.Fence(), v)
		}
		a.ring.Advance()

		slot := a.ring.Current()
		a.scene.Update(slot, a.camera, a.width, a.height, totalTime, dt)

		a.renderer.DrawFrame(a.scene, slot, a.ring.CurrentIndex())

		a.window.SwapBuffers()

		// Stamp the frame after presenting, mirroring a queued signal.
		value := a.ring.Submit()
		a.renderer.SubmitFence(value)

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			if a.cfg.Graphics.ShowFPS {
				a.window.SetTitle(fmt.Sprintf("Donut Castle    fps: %d   mspf: %.2f", frameCount, dt*1000))
			}
			logger.Debug("fps",
				zap.Int("count", frameCount),
				zap.Float32("mspf", dt*1000),
			)
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (a *App) handleEvents() {
	for _, e := range a.input.Events() {
		switch e.Type {
		case input.EventWindowResize:
			a.width, a.height = e.Width, e.Height
			a.renderer.Resize(e.Width, e.Height)

		case input.EventMouseMove:
			if a.input.Dragging() {
				a.camera.HandleDrag(float32(e.DeltaX), float32(e.DeltaY))
			}

		case input.EventMouseWheel:
			// A wheel notch zooms like a 20 pixel drag.
			a.camera.HandleZoom(float32(e.Wheel) * 20)

		case input.EventKeyDown:
			switch e.Key {
			case sdl.SCANCODE_ESCAPE:
				a.running = false
			case sdl.SCANCODE_1:
				a.renderer.ToggleWireframe()
			}
		}
	}
}

// Close cleans up. The ring needs no teardown; its slots are plain memory.
func (a *App) Close() {
	logger.Info("closing")

	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}
