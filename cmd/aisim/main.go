// Command aisim runs a scenario headless and prints a per-agent summary.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/milk9111/pursuit/ai"
	"github.com/milk9111/pursuit/common"
	"github.com/milk9111/pursuit/ecs/system"
	"github.com/milk9111/pursuit/sandbox"
	"github.com/sirupsen/logrus"
)

type tally struct {
	engaged int
	hurt    int
	states  map[ai.State]int
}

func main() {
	scenario := flag.String("scenario", "courtyard", "scenario name in prefabs/ (basename, .yaml optional)")
	ticks := flag.Int("ticks", 600, "number of fixed steps to simulate")
	logLevel := flag.String("log-level", "info", "log level (trace, debug, info, warn, error)")
	logJSON := flag.Bool("log-json", false, "log as JSON")
	flag.Parse()

	if err := common.ConfigureLogging(*logLevel, *logJSON); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	sb, err := sandbox.Load(*scenario)
	if err != nil {
		common.Log.WithError(err).Fatal("failed to load scenario")
	}

	tallies := map[string]*tally{}
	for _, v := range sb.Agents() {
		tallies[v.Agent.ID()] = &tally{states: map[ai.State]int{}}
	}

	for i := 0; i < *ticks; i++ {
		for _, evt := range sb.Step() {
			ae, ok := evt.Data.(system.AgentEvent)
			if !ok {
				continue
			}
			t := tallies[ae.Agent]
			if t == nil {
				continue
			}
			switch ae.Kind {
			case ai.EventEngaged:
				t.engaged++
			case ai.EventHurt:
				t.hurt++
			case ai.EventState:
				t.states[ae.State]++
			case ai.EventDied, ai.EventRemoved:
				common.Log.WithFields(logrus.Fields{"agent": ae.Agent, "tick": sb.Tick()}).Info(string(ae.Kind))
			}
		}
	}

	alive := map[string]bool{}
	fmt.Printf("scenario %s: %d ticks (%.2fs simulated)\n", sb.Name(), sb.Tick(), float64(sb.Tick())*sb.Timestep())
	fmt.Printf("%-10s %-9s %-10s %8s %8s %8s %8s %8s %s\n", "agent", "archetype", "state", "x", "y", "health", "hits", "engaged", "searches")
	for _, v := range sb.Agents() {
		d := v.Agent.Debug()
		t := tallies[d.ID]
		alive[d.ID] = true
		fmt.Printf("%-10s %-9s %-10s %8.2f %8.2f %8.1f %8d %8d %d\n",
			d.ID, v.Archetype, d.State, d.Position.X, d.Position.Y, d.Health, t.hurt, t.engaged, t.states[ai.Searching])
	}
	for _, id := range removedIDs(tallies, alive) {
		fmt.Printf("%-10s removed\n", id)
	}
}

// removedIDs lists the tallied agents missing from alive, sorted by id.
func removedIDs(tallies map[string]*tally, alive map[string]bool) []string {
	var ids []string
	for id := range tallies {
		if !alive[id] {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}
