package main

import (
	"flag"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/pursuit/common"
)

func main() {
	scenario := flag.String("scenario", "courtyard", "scenario name in prefabs/ (basename, .yaml optional)")
	watch := flag.Bool("watch", false, "hot reload prefabs/ and prefabs/scripts/ on change")
	logLevel := flag.String("log-level", "info", "log level (trace, debug, info, warn, error)")
	logJSON := flag.Bool("log-json", false, "log as JSON")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	if err := common.ConfigureLogging(*logLevel, *logJSON); err != nil {
		common.Log.WithError(err).Fatal("bad logging flags")
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("pursuit - " + *scenario)

	game, err := NewGame(*scenario, *watch)
	if err != nil {
		common.Log.WithError(err).Fatal("failed to start")
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		common.Log.WithError(err).Error("game exited")
	}
}
