package component

// Popup is floating text spawned by script hooks, e.g. damage numbers.
// It lives for Duration seconds via a TTL.
type Popup struct {
	Text     string
	Source   string
	Duration float64
}

var PopupComponent = NewComponent[Popup]()
