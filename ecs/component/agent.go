package component

import "github.com/milk9111/pursuit/ai"

// Agent binds an AI agent to an entity.
type Agent struct {
	AI        *ai.Agent
	Archetype string
}

var AgentComponent = NewComponent[Agent]()
