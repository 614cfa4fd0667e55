package main

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/pursuit/ai"
	"github.com/milk9111/pursuit/component"
	"github.com/milk9111/pursuit/sandbox"
	"github.com/milk9111/pursuit/spatial"
	"golang.org/x/image/colornames"
)

const (
	agentRadius  = 0.4
	targetRadius = 0.35
	coneSegments = 16
)

var (
	backgroundColor = color.RGBA{R: 0x18, G: 0x1a, B: 0x20, A: 0xff}
	obstacleFill    = color.RGBA{R: 0x5a, G: 0x5f, B: 0x6b, A: 0xff}
	coneIdle        = color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0x90}
	coneAlert       = color.RGBA{R: 0xff, G: 0x45, B: 0x00, A: 0xc0}
)

func stateColor(d ai.DebugInfo) color.Color {
	if d.Lifecycle != component.Alive {
		return colornames.Dimgray
	}
	switch d.State {
	case ai.Pursuing:
		return colornames.Orangered
	case ai.Searching:
		return colornames.Gold
	default:
		if d.Invulnerable {
			return colornames.Plum
		}
		return colornames.Mediumseagreen
	}
}

func (g *Game) drawObstacles(screen *ebiten.Image) {
	for _, o := range g.sb.Obstacles() {
		switch o.Kind {
		case spatial.KindBox:
			x, y := g.view.toScreen(cp.Vector{X: o.Box.L, Y: o.Box.T})
			w := g.view.length(o.Box.R - o.Box.L)
			h := g.view.length(o.Box.T - o.Box.B)
			vector.FillRect(screen, x, y, w, h, obstacleFill, false)
		case spatial.KindCircle:
			x, y := g.view.toScreen(o.Center)
			vector.FillCircle(screen, x, y, g.view.length(o.Radius), obstacleFill, true)
		case spatial.KindSegment:
			x0, y0 := g.view.toScreen(o.A)
			x1, y1 := g.view.toScreen(o.B)
			width := g.view.length(o.Radius * 2)
			if width < 1 {
				width = 1
			}
			vector.StrokeLine(screen, x0, y0, x1, y1, width, obstacleFill, true)
		}
	}
}

func (g *Game) drawAgent(screen *ebiten.Image, v sandbox.AgentView) {
	d := v.Agent.Debug()
	if g.showCones && d.Lifecycle == component.Alive {
		g.drawCone(screen, d)
	}
	if g.showPaths {
		g.drawPath(screen, d)
	}

	x, y := g.view.toScreen(d.Position)
	r := g.view.length(agentRadius)
	vector.FillCircle(screen, x, y, r, stateColor(d), true)
	fx, fy := g.view.toScreen(d.Position.Add(d.Facing.Mult(agentRadius * 1.6)))
	vector.StrokeLine(screen, x, y, fx, fy, 2, colornames.White, true)

	if d.MaxHealth > 0 && !d.Invulnerable {
		frac := float32(d.Health / d.MaxHealth)
		w := r * 2
		vector.FillRect(screen, x-r, y-r-6, w, 3, colornames.Darkred, false)
		vector.FillRect(screen, x-r, y-r-6, w*frac, 3, colornames.Limegreen, false)
	}
	g.drawLabel(screen, d.ID, x+r+2, y-r, colornames.Lightgray)
}

func (g *Game) drawCone(screen *ebiten.Image, d ai.DebugInfo) {
	clr := coneIdle
	if d.Detected {
		clr = coneAlert
	}
	heading := math.Atan2(d.Facing.Y, d.Facing.X)
	half := d.HalfAngle * math.Pi / 180
	cx, cy := g.view.toScreen(d.Position)

	prev := d.Position.Add(cp.ForAngle(heading - half).Mult(d.Range))
	px, py := g.view.toScreen(prev)
	vector.StrokeLine(screen, cx, cy, px, py, 1, clr, true)
	for i := 1; i <= coneSegments; i++ {
		a := heading - half + 2*half*float64(i)/coneSegments
		next := d.Position.Add(cp.ForAngle(a).Mult(d.Range))
		nx, ny := g.view.toScreen(next)
		vector.StrokeLine(screen, px, py, nx, ny, 1, clr, true)
		px, py = nx, ny
	}
	vector.StrokeLine(screen, cx, cy, px, py, 1, clr, true)
}

func (g *Game) drawPath(screen *ebiten.Image, d ai.DebugInfo) {
	if len(d.Path) > 0 && d.Cursor < len(d.Path) {
		px, py := g.view.toScreen(d.Position)
		for _, wp := range d.Path[d.Cursor:] {
			nx, ny := g.view.toScreen(wp)
			vector.StrokeLine(screen, px, py, nx, ny, 1, colornames.Deepskyblue, true)
			vector.FillCircle(screen, nx, ny, 2, colornames.Deepskyblue, true)
			px, py = nx, ny
		}
	}
	if d.Memory.Valid {
		mx, my := g.view.toScreen(d.Memory.Position)
		const s = 5
		vector.StrokeLine(screen, mx-s, my-s, mx+s, my+s, 2, colornames.Gold, true)
		vector.StrokeLine(screen, mx-s, my+s, mx+s, my-s, 2, colornames.Gold, true)
	}
	if d.Walking && d.State == ai.Wandering {
		wx, wy := g.view.toScreen(d.Wander)
		vector.StrokeCircle(screen, wx, wy, 4, 1, colornames.Mediumseagreen, true)
	}
}

func (g *Game) drawTarget(screen *ebiten.Image) {
	pos, ok := g.sb.Target()
	if !ok {
		return
	}
	x, y := g.view.toScreen(pos)
	r := g.view.length(targetRadius)
	vector.FillCircle(screen, x, y, r, colornames.Cornflowerblue, true)
	vector.StrokeCircle(screen, x, y, r+2, 1, colornames.White, true)
}

func (g *Game) drawPopups(screen *ebiten.Image) {
	for _, p := range g.sb.Popups() {
		x, y := g.view.toScreen(p.Position)
		g.drawLabel(screen, p.Text, x-8, y-g.view.length(agentRadius)-24, colornames.Yellow)
	}
}

func (g *Game) drawLabel(screen *ebiten.Image, s string, x, y float32, clr color.Color) {
	op := &ebtext.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(clr)
	ebtext.Draw(screen, s, g.face, op)
}
