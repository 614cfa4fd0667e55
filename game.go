package main

import (
	"fmt"
	"math"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/pursuit/common"
	"github.com/milk9111/pursuit/prefabs"
	"github.com/milk9111/pursuit/sandbox"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/font/basicfont"
)

const (
	baseWidth  = 1280
	baseHeight = 720

	targetSpeed  = 6.0
	clickRadius  = 1.0
	clickDamage  = 25.0
	viewportFill = 0.94
)

type Game struct {
	frames int

	scenario string
	sb       *sandbox.Sandbox
	view     viewport
	face     ebtext.Face

	paused    bool
	quit      bool
	showCones bool
	showPaths bool
	ui        *ebitenui.UI

	watcher *prefabs.Watcher
	log     logrus.FieldLogger
}

func NewGame(scenario string, watch bool) (*Game, error) {
	g := &Game{
		scenario:  scenario,
		face:      ebtext.NewGoXFace(basicfont.Face7x13),
		showCones: true,
		showPaths: true,
		log:       common.Log.WithField("viewer", scenario),
	}
	if err := g.restart(); err != nil {
		return nil, err
	}
	g.ui = NewPauseUI(g)

	if watch {
		w, err := prefabs.NewWatcher("prefabs", "prefabs/scripts")
		if err != nil {
			g.log.WithError(err).Warn("hot reload disabled")
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

func (g *Game) restart() error {
	sb, err := sandbox.Load(g.scenario)
	if err != nil {
		return err
	}
	g.sb = sb
	g.view = newViewport(sb.Bounds(), baseWidth, baseHeight)
	return nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	g.frames++
	g.pollReload()

	if inpututil.IsKeyJustPressed(ebiten.KeyP) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if g.paused {
		g.ui.Update()
		if g.quit {
			return ebiten.Termination
		}
		return nil
	}

	g.handleInput()
	g.sb.Step()
	return nil
}

func (g *Game) handleInput() {
	var dir cp.Vector
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		dir.X--
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		dir.X++
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW) {
		dir.Y++
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS) {
		dir.Y--
	}
	if dir.LengthSq() > 0 {
		g.sb.MoveTarget(dir.Normalize().Mult(targetSpeed * g.sb.Timestep()))
	}

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.sb.ResumePatrol()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.showCones = !g.showCones
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyV) {
		g.showPaths = !g.showPaths
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.restart(); err != nil {
			g.log.WithError(err).Error("restart failed")
		}
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		at := g.view.toWorld(ebiten.CursorPosition())
		hits := g.sb.DamageAt(at, clickRadius, clickDamage)
		g.log.WithFields(logrus.Fields{"x": at.X, "y": at.Y, "hits": hits}).Debug("click damage")
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	g.drawObstacles(screen)
	for _, v := range g.sb.Agents() {
		g.drawAgent(screen, v)
	}
	g.drawTarget(screen)
	g.drawPopups(screen)

	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"%s  tick %d  FPS %.1f\narrows/WASD move target, space resume patrol, click damage\nC cones, V paths, R restart, P pause",
		g.sb.Name(), g.sb.Tick(), ebiten.ActualFPS()))

	if g.paused {
		g.ui.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

// viewport maps world units (Y up) to screen pixels (Y down).
type viewport struct {
	scale  float64
	offset cp.Vector
	height float64
}

func newViewport(bounds cp.BB, w, h float64) viewport {
	bw, bh := bounds.R-bounds.L, bounds.T-bounds.B
	scale := math.Min(w/bw, h/bh) * viewportFill
	return viewport{
		scale: scale,
		offset: cp.Vector{
			X: (w-bw*scale)/2 - bounds.L*scale,
			Y: (h-bh*scale)/2 - bounds.B*scale,
		},
		height: h,
	}
}

func (v viewport) toScreen(p cp.Vector) (float32, float32) {
	x := p.X*v.scale + v.offset.X
	y := v.height - (p.Y*v.scale + v.offset.Y)
	return float32(x), float32(y)
}

func (v viewport) toWorld(x, y int) cp.Vector {
	return cp.Vector{
		X: (float64(x) - v.offset.X) / v.scale,
		Y: (v.height - float64(y) - v.offset.Y) / v.scale,
	}
}

func (v viewport) length(d float64) float32 {
	return float32(d * v.scale)
}
