// Package ebitenhost runs a salinity scene in an Ebitengine window. It polls
// ebiten input into the renderer, draws through an ebiten-backed Surface and
// applies the resolved cursor.
package ebitenhost

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/salinity"
)

// maxFrameTime caps dt after stalls such as window drags.
const maxFrameTime = 0.1

// RunConfig configures Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool
}

// Game adapts a renderer, scene and camera to ebiten.Game.
type Game struct {
	Renderer *salinity.Renderer
	Scene    *salinity.Node
	Camera   *salinity.Camera

	// OnUpdate runs every tick after input is polled. A non-nil error stops
	// the game.
	OnUpdate func() error

	surface  *Surface
	input    *Input
	cursor   salinity.Cursor
	lastDraw time.Time
}

// NewGame builds a renderer for cfg drawing to an ebiten surface.
func NewGame(scene *salinity.Node, cam *salinity.Camera, cfg salinity.Config) (*Game, error) {
	s, err := NewSurface()
	if err != nil {
		return nil, err
	}
	if cam == nil {
		cam = salinity.NewCamera()
	}
	return &Game{
		Renderer: salinity.NewRenderer(s, cfg),
		Scene:    scene,
		Camera:   cam,
		surface:  s,
		input:    NewInput(),
	}, nil
}

// Surface returns the drawing surface.
func (g *Game) Surface() *Surface { return g.surface }

// Input returns the input poller.
func (g *Game) Input() *Input { return g.input }

// Update implements ebiten.Game.
func (g *Game) Update() error {
	w, h := g.surface.Size()
	if w == 0 {
		cfg := g.Renderer.Config()
		w, h = cfg.Width, cfg.Height
	}
	g.input.Poll(g.Renderer, w, h)
	if g.OnUpdate != nil {
		return g.OnUpdate()
	}
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	now := time.Now()
	dt := 1.0 / float64(ebiten.TPS())
	if !g.lastDraw.IsZero() {
		dt = min(now.Sub(g.lastDraw).Seconds(), maxFrameTime)
	}
	g.lastDraw = now

	g.surface.SetTarget(screen)
	g.Renderer.Render(g.Scene, g.Camera, float32(dt))

	if c := g.Renderer.Cursor(); c != g.cursor {
		ebiten.SetCursorShape(CursorShape(c))
		g.cursor = c
	}
	if g.Renderer.PendingScreenshots() {
		if err := g.Renderer.FlushScreenshots(screenshotImage(screen)); err != nil {
			salinity.Logger().Error("screenshot failed", "err", err)
		}
	}
}

// Layout implements ebiten.Game. The surface follows the window size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

// Run opens a window and runs g until it is closed or OnUpdate fails.
func Run(g *Game, rc RunConfig) error {
	if rc.Width <= 0 || rc.Height <= 0 {
		cfg := g.Renderer.Config()
		rc.Width, rc.Height = cfg.Width, cfg.Height
	}
	if rc.ShowFPS {
		g.Scene.Add(NewFPSWidget())
	}
	ebiten.SetWindowSize(rc.Width, rc.Height)
	ebiten.SetWindowTitle(rc.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(g)
}
