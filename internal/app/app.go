// Package app owns the viewer session state and the event/render loop.
// All mutable session state (camera, drawing area, loaded tiles) lives on
// the App value; event handlers are methods on it rather than callbacks
// over ambient globals.
package app

import (
	"context"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/terravista/internal/config"
	"github.com/Faultbox/terravista/internal/engine/camera"
	"github.com/Faultbox/terravista/internal/engine/renderer"
	"github.com/Faultbox/terravista/internal/engine/terrain"
	"github.com/Faultbox/terravista/internal/engine/viewport"
	"github.com/Faultbox/terravista/internal/engine/window"
	"github.com/Faultbox/terravista/internal/logger"
	"github.com/Faultbox/terravista/internal/tileio"
	"github.com/Faultbox/terravista/pkg/frames"
	"github.com/Faultbox/terravista/pkg/geodesy"
)

// Clip distances for the terrain frustum, meters.
const (
	nearClip = 1.0
	farClip  = 1e7
)

// App is the viewer session: window, renderer, camera state, drawing area
// and the rewritten tile set.
type App struct {
	cfg *config.Config

	win  *window.Window
	rend *renderer.Renderer
	conv *geodesy.Converter

	cam    camera.State
	area   viewport.DrawingArea
	bounds terrain.Bounds
	tiles  []*terrain.Tile

	running bool
}

// New builds the full session from configuration: window and GL context,
// renderer, projection converter, tile set, and the initial camera pose.
func New(cfg *config.Config) (*App, error) {
	a := &App{cfg: cfg}

	conv, err := geodesy.NewConverter(cfg.Geodesy.UTMZone)
	if err != nil {
		return nil, err
	}
	a.conv = conv

	a.win, err = window.New(window.Config{
		Title:      "Terravista",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("creating window: %w", err)
	}

	a.rend, err = renderer.New(renderer.Config{
		ClearColor: [3]float32{0.08, 0.09, 0.11},
	})
	if err != nil {
		a.win.Close()
		return nil, fmt.Errorf("creating renderer: %w", err)
	}

	if err := a.loadTiles(context.Background()); err != nil {
		a.Close()
		return nil, err
	}

	a.applyPose(camera.GeodeticPose{
		X:     cfg.Pose.X,
		Y:     cfg.Pose.Y,
		Z:     cfg.Pose.Z,
		Yaw:   cfg.Pose.Yaw,
		Pitch: cfg.Pose.Pitch,
		Roll:  cfg.Pose.Roll,
		HFov:  cfg.Pose.HFov,
		VFov:  cfg.Pose.VFov,
	})

	return a, nil
}

// Close releases renderer and window resources.
func (a *App) Close() {
	if a.rend != nil {
		a.rend.Close()
	}
	if a.win != nil {
		a.win.Close()
	}
}

// loadTiles fetches, rewrites and uploads the configured tile set.
func (a *App) loadTiles(ctx context.Context) error {
	postRotation := mgl64.QuatIdent()
	if a.cfg.Pose.Geocentric {
		postRotation = frames.TileOrientation()
	}

	bounds, tiles, err := terrain.LoadTileSet(ctx, a.cfg.Tiles.URLs, tileio.NewLoader(), a.conv, postRotation)
	if err != nil {
		return fmt.Errorf("loading tile set: %w", err)
	}

	a.bounds = bounds
	a.tiles = tiles
	a.rend.UploadTileSet(bounds, tiles)

	logger.Info("tile set loaded",
		zap.Int("tiles", len(tiles)),
		zap.Bool("empty_bounds", bounds.IsEmpty()),
	)
	return nil
}

// applyPose resolves the pose into the camera and refits the drawing area
// to the (possibly changed) aspect ratio.
func (a *App) applyPose(pose camera.GeodeticPose) {
	camera.ApplyPose(&a.cam, pose, a.cfg.Pose.Geocentric)
	a.refitDrawingArea()

	logger.Info("camera pose applied",
		zap.Float64("yaw", pose.Yaw),
		zap.Float64("pitch", pose.Pitch),
		zap.Float64("roll", pose.Roll),
		zap.Float64("aspect", a.cam.Aspect),
	)
}

// refitDrawingArea recomputes the aspect-locked drawing area for the
// current window size and applies it as viewport and scissor.
func (a *App) refitDrawingArea() {
	w, h := a.win.GetSize()
	a.area = viewport.ComputeDrawingArea(a.cam.Aspect, w, h)
	a.area.Apply(a.win.PixelRatio())

	logger.Debug("drawing area updated",
		zap.Float64("x", a.area.X),
		zap.Float64("y", a.area.Y),
		zap.Float64("width", a.area.Width),
		zap.Float64("height", a.area.Height),
	)
}

// handlePointer gates picking on the drawing area: clicks in the
// letterbox/pillarbox margins are ignored.
func (a *App) handlePointer(px, py float64) {
	ndcX, ndcY := a.area.PointerToNDC(px, py)
	if !viewport.InArea(ndcX, ndcY) {
		logger.Debug("pointer outside drawing area",
			zap.Float64("ndc_x", ndcX),
			zap.Float64("ndc_y", ndcY),
		)
		return
	}

	logger.Info("pick",
		zap.Float64("ndc_x", ndcX),
		zap.Float64("ndc_y", ndcY),
	)
}

// viewProjection builds the matrix for the renderer, accounting for the
// rebase center the tile geometry was uploaded with.
func (a *App) viewProjection() mgl64.Mat4 {
	center := a.rend.Center()
	rebase := mgl64.Translate3D(center.X(), center.Y(), center.Z())
	return a.cam.ProjectionMatrix(nearClip, farClip).
		Mul4(a.cam.ViewMatrix()).
		Mul4(rebase)
}

// Run drives the event and render loop until quit.
func (a *App) Run() error {
	a.running = true

	for a.running {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			a.handleEvent(event)
		}

		a.rend.Begin()
		a.rend.DrawTiles(a.viewProjection())
		a.rend.End()
		a.win.SwapBuffers()
	}

	return nil
}

// handleEvent dispatches one SDL event.
func (a *App) handleEvent(event sdl.Event) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		a.running = false

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			a.refitDrawingArea()
		}

	case *sdl.MouseButtonEvent:
		if e.Type == sdl.MOUSEBUTTONDOWN && e.Button == sdl.BUTTON_LEFT {
			a.handlePointer(float64(e.X), float64(e.Y))
		}

	case *sdl.KeyboardEvent:
		if e.Type == sdl.KEYDOWN && e.Keysym.Sym == sdl.K_ESCAPE {
			a.running = false
		}
	}
}
