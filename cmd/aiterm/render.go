package main

import (
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/jakecoffman/cp"
	"github.com/mattn/go-runewidth"
	"github.com/milk9111/pursuit/ai"
	"github.com/milk9111/pursuit/component"
	"github.com/milk9111/pursuit/sandbox"
)

const hudRows = 2

var (
	styleWall    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleCone    = tcell.StyleDefault.Foreground(tcell.ColorDarkSlateGray)
	styleAlert   = tcell.StyleDefault.Foreground(tcell.ColorOrangeRed)
	stylePath    = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	styleMemory  = tcell.StyleDefault.Foreground(tcell.ColorGold)
	styleTarget  = tcell.StyleDefault.Foreground(tcell.ColorBlue).Bold(true)
	stylePopup   = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleHUD     = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleWander  = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleRemoved = tcell.StyleDefault.Foreground(tcell.ColorDimGray)
)

// renderer rasterizes a sandbox onto a character grid. One cell covers
// cellW x cellH world units; world Y grows upward, rows grow downward.
type renderer struct {
	screen tcell.Screen
	bounds cp.BB
	cols   int
	rows   int
	cellW  float64
	cellH  float64
}

func newRenderer(screen tcell.Screen, bounds cp.BB) *renderer {
	r := &renderer{screen: screen, bounds: bounds}
	r.resize()
	return r
}

func (r *renderer) resize() {
	w, h := r.screen.Size()
	r.cols = max(w, 1)
	r.rows = max(h-hudRows, 1)
	r.cellW = (r.bounds.R - r.bounds.L) / float64(r.cols)
	r.cellH = (r.bounds.T - r.bounds.B) / float64(r.rows)
}

func (r *renderer) cellCenter(x, y int) cp.Vector {
	return cp.Vector{
		X: r.bounds.L + (float64(x)+0.5)*r.cellW,
		Y: r.bounds.T - (float64(y)+0.5)*r.cellH,
	}
}

func (r *renderer) toCell(p cp.Vector) (int, int, bool) {
	x := int(math.Floor((p.X - r.bounds.L) / r.cellW))
	y := int(math.Floor((r.bounds.T - p.Y) / r.cellH))
	return x, y, x >= 0 && y >= 0 && x < r.cols && y < r.rows
}

func (r *renderer) put(p cp.Vector, ch rune, st tcell.Style) {
	if x, y, ok := r.toCell(p); ok {
		r.screen.SetContent(x, y, ch, nil, st)
	}
}

// putText writes s at (x, y), stopping at the right edge. Wide runes take
// two columns.
func (r *renderer) putText(x, y int, s string, st tcell.Style) {
	sw, _ := r.screen.Size()
	for _, ch := range s {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			continue
		}
		if x+w > sw {
			return
		}
		r.screen.SetContent(x, y, ch, nil, st)
		if w == 2 {
			r.screen.SetContent(x+1, y, ' ', nil, st)
		}
		x += w
	}
}

func (r *renderer) draw(sb *sandbox.Sandbox, status string) {
	r.screen.Clear()
	agents := sb.Agents()

	world := sb.Spatial()
	half := math.Min(r.cellW, r.cellH) / 2
	for y := 0; y < r.rows; y++ {
		for x := 0; x < r.cols; x++ {
			c := r.cellCenter(x, y)
			if !world.RegionClear(c, half, ^uint(0)) {
				r.screen.SetContent(x, y, '#', nil, styleWall)
				continue
			}
			for _, v := range agents {
				d := v.Agent.Debug()
				if d.Lifecycle == component.Alive && inCone(d, c) {
					st := styleCone
					if d.Detected {
						st = styleAlert
					}
					r.screen.SetContent(x, y, '.', nil, st)
					break
				}
			}
		}
	}

	for _, v := range agents {
		d := v.Agent.Debug()
		if d.Cursor < len(d.Path) {
			for _, wp := range d.Path[d.Cursor:] {
				r.put(wp, '+', stylePath)
			}
		}
		if d.Memory.Valid {
			r.put(d.Memory.Position, '?', styleMemory)
		}
		if d.Walking && d.State == ai.Wandering {
			r.put(d.Wander, 'o', styleWander)
		}
	}
	if pos, ok := sb.Target(); ok {
		r.put(pos, '@', styleTarget)
	}
	for _, v := range agents {
		d := v.Agent.Debug()
		r.put(d.Position, agentGlyph(v.Archetype, d), agentStyle(d))
	}
	for _, p := range sb.Popups() {
		if x, y, ok := r.toCell(p.Position); ok && y > 0 {
			r.putText(x, y-1, p.Text, stylePopup)
		}
	}

	r.drawHUD(sb, agents, status)
	r.screen.Show()
}

func (r *renderer) drawHUD(sb *sandbox.Sandbox, agents []sandbox.AgentView, status string) {
	sw, _ := r.screen.Size()
	parts := make([]string, 0, len(agents))
	for _, v := range agents {
		d := v.Agent.Debug()
		parts = append(parts, fmt.Sprintf("%s:%s %.0f", d.ID, d.State, d.Health))
	}
	line1 := fmt.Sprintf("%s tick %d | %s", sb.Name(), sb.Tick(), strings.Join(parts, "  "))
	line2 := "arrows move @  space patrol  x damage near @  r restart  q quit"
	if status != "" {
		line2 = status
	}
	r.putText(0, r.rows, runewidth.Truncate(line1, sw, "…"), styleHUD)
	r.putText(0, r.rows+1, runewidth.Truncate(line2, sw, "…"), styleHUD)
}

func inCone(d ai.DebugInfo, p cp.Vector) bool {
	off := p.Sub(d.Position)
	dist := off.Length()
	if dist == 0 || dist > d.Range {
		return false
	}
	cos := off.Dot(d.Facing) / dist
	return cos >= math.Cos(d.HalfAngle*math.Pi/180)
}

func agentGlyph(archetype string, d ai.DebugInfo) rune {
	if d.Lifecycle != component.Alive {
		return 'x'
	}
	ch := 'a'
	for _, c := range archetype {
		ch = c
		break
	}
	if d.State == ai.Pursuing {
		return unicode.ToUpper(ch)
	}
	return unicode.ToLower(ch)
}

func agentStyle(d ai.DebugInfo) tcell.Style {
	switch {
	case d.Lifecycle != component.Alive:
		return styleRemoved
	case d.State == ai.Pursuing:
		return styleAlert
	case d.State == ai.Searching:
		return styleMemory
	default:
		return styleWander
	}
}
