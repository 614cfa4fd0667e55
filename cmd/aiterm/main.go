// Command aiterm renders a running scenario in the terminal.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/pursuit/common"
	"github.com/milk9111/pursuit/sandbox"
)

const (
	nudge        = 0.5
	damageRadius = 2.0
	damageAmount = 25.0
)

func main() {
	scenario := flag.String("scenario", "courtyard", "scenario name in prefabs/ (basename, .yaml optional)")
	speed := flag.Float64("speed", 1, "simulation speed multiplier")
	logLevel := flag.String("log-level", "warn", "log level; logs go to stderr so redirect it")
	flag.Parse()

	if err := common.ConfigureLogging(*logLevel, false); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	sb, err := sandbox.Load(*scenario)
	if err != nil {
		common.Log.WithError(err).Fatal("failed to load scenario")
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		common.Log.WithError(err).Fatal("terminal setup failed")
	}
	if err := screen.Init(); err != nil {
		common.Log.WithError(err).Fatal("screen init failed")
	}

	err = run(screen, sb, *scenario, *speed)
	screen.Fini()
	if err != nil {
		common.Log.WithError(err).Fatal("aiterm")
	}
}

func run(screen tcell.Screen, sb *sandbox.Sandbox, scenario string, speed float64) error {
	if speed <= 0 {
		speed = 1
	}
	r := newRenderer(screen, sb.Bounds())

	events := make(chan tcell.Event, 32)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(time.Duration(sb.Timestep() / speed * float64(time.Second)))
	defer ticker.Stop()

	status := ""
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
				r.resize()
			case *tcell.EventKey:
				switch ev.Key() {
				case tcell.KeyEscape, tcell.KeyCtrlC:
					return nil
				case tcell.KeyLeft:
					sb.MoveTarget(cp.Vector{X: -nudge})
				case tcell.KeyRight:
					sb.MoveTarget(cp.Vector{X: nudge})
				case tcell.KeyUp:
					sb.MoveTarget(cp.Vector{Y: nudge})
				case tcell.KeyDown:
					sb.MoveTarget(cp.Vector{Y: -nudge})
				}
				switch ev.Rune() {
				case 'q', 'Q':
					return nil
				case ' ':
					sb.ResumePatrol()
				case 'x', 'X':
					if pos, ok := sb.Target(); ok {
						hits := sb.DamageAt(pos, damageRadius, damageAmount)
						status = fmt.Sprintf("hit %d agent(s) for %.0f", hits, damageAmount)
					}
				case 'r', 'R':
					next, err := sandbox.Load(scenario)
					if err != nil {
						return err
					}
					sb = next
					r = newRenderer(screen, sb.Bounds())
					status = "restarted"
				}
			}
		case <-ticker.C:
			sb.Step()
			r.draw(sb, status)
		}
	}
}
