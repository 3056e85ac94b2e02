package stage

// ElementState is the recorded state of a Memory element.
type ElementState struct {
	Hidden   bool
	Text     string
	Material string
}

// Memory is an in-memory Stage and TapSource. It backs the console driver
// and lets tests observe what the engine rendered. Not safe for concurrent
// use; all access happens on the event loop.
type Memory struct {
	elements map[string]*ElementState
	handlers map[string][]func()

	// Listener, when set, observes every property write.
	Listener func(path, property, value string)
}

func NewMemory() *Memory {
	return &Memory{
		elements: make(map[string]*ElementState),
		handlers: make(map[string][]func()),
	}
}

func (m *Memory) Element(path string) Element {
	return &memElement{stage: m, path: path}
}

// Get returns the recorded state for path, creating it on first use.
func (m *Memory) Get(path string) *ElementState {
	st, ok := m.elements[path]
	if !ok {
		st = &ElementState{}
		m.elements[path] = st
	}
	return st
}

func (m *Memory) OnTap(path string, fn func()) {
	m.handlers[path] = append(m.handlers[path], fn)
}

// Tap simulates a tap on path, reporting whether any handler was bound.
func (m *Memory) Tap(path string) bool {
	handlers := m.handlers[path]
	for _, fn := range handlers {
		fn()
	}
	return len(handlers) > 0
}

// Bound reports how many handlers are attached to path.
func (m *Memory) Bound(path string) int {
	return len(m.handlers[path])
}

type memElement struct {
	stage *Memory
	path  string
}

func (e *memElement) SetHidden(hidden bool) {
	e.stage.Get(e.path).Hidden = hidden
	e.notify("hidden", boolValue(hidden))
}

func (e *memElement) SetText(text string) {
	e.stage.Get(e.path).Text = text
	e.notify("text", text)
}

func (e *memElement) SetMaterial(material string) {
	e.stage.Get(e.path).Material = material
	e.notify("material", material)
}

func (e *memElement) notify(property, value string) {
	if e.stage.Listener != nil {
		e.stage.Listener(e.path, property, value)
	}
}

func boolValue(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
