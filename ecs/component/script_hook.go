package component

// ScriptHook runs a tengo script for every presentation event of the
// entity's agent.
type ScriptHook struct {
	// Path is the script name resolved through prefabs.LoadScript.
	Path string
	// Disabled is set after the script fails to compile or run.
	Disabled bool
}

var ScriptHookComponent = NewComponent[ScriptHook]()
