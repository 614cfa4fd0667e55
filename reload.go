package main

import (
	"github.com/milk9111/pursuit/prefabs"
	"github.com/sirupsen/logrus"
)

// pollReload applies pending hot reloads without blocking the frame.
func (g *Game) pollReload() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(path)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			g.log.WithError(err).Warn("watch error")
		default:
			return
		}
	}
}

func (g *Game) reload(path string) {
	log := g.log.WithField("file", path)
	switch {
	case prefabs.IsScriptFile(path):
		g.sb.ReloadScripts()
	case prefabs.IsSpecFile(path):
		name := prefabs.NameOf(path)
		if name == g.scenario {
			if err := g.restart(); err != nil {
				log.WithError(err).Warn("scenario reload failed, keeping the running one")
				return
			}
			log.Info("scenario reloaded")
			return
		}
		n, err := g.sb.ReloadArchetype(name)
		if err != nil {
			log.WithError(err).Warn("archetype reload failed, keeping the previous tuning")
			return
		}
		log.WithFields(logrus.Fields{"archetype": name, "agents": n}).Debug("applied")
	}
}
