package stage

// Element is a named, addressable scene-graph node. Only visibility, text
// and material are modelled; geometry belongs to the host renderer.
type Element interface {
	SetHidden(hidden bool)
	SetText(text string)
	SetMaterial(material string)
}

// Stage resolves elements by slash-separated path, e.g. "menu/createLobby".
type Stage interface {
	Element(path string) Element
}

// TapSource delivers tap events for named elements. Subscriptions last for
// the process lifetime; the engine binds each element at most once.
type TapSource interface {
	OnTap(path string, fn func())
}
