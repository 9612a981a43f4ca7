package input

import (
	"sync"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// Action is a logical control, decoupled from the physical key.
type Action int

const (
	ActionMoveForward Action = iota
	ActionMoveBackward
	ActionMoveLeft
	ActionMoveRight
	ActionJump
	ActionSprint
	ActionPause
	ActionRegenerate
	ActionToggleProfiling
	ActionRemoveBlock
	ActionPlaceBlock
	ActionCount
)

// Manager maps GLFW key and button events to actions and tracks per-frame
// edges plus the accumulated scroll and cursor position.
type Manager struct {
	mu sync.RWMutex

	keys    map[glfw.Key][]Action
	buttons map[glfw.MouseButton][]Action

	current      [ActionCount]bool
	justPressed  [ActionCount]bool
	justReleased [ActionCount]bool

	scroll           float64
	cursorX, cursorY float64
	cursorMoved      bool
}

// NewManager returns a manager with the default WASD layout.
func NewManager() *Manager {
	m := &Manager{
		keys:    make(map[glfw.Key][]Action),
		buttons: make(map[glfw.MouseButton][]Action),
	}

	m.BindKey(glfw.KeyW, ActionMoveForward)
	m.BindKey(glfw.KeyUp, ActionMoveForward)
	m.BindKey(glfw.KeyS, ActionMoveBackward)
	m.BindKey(glfw.KeyDown, ActionMoveBackward)
	m.BindKey(glfw.KeyA, ActionMoveLeft)
	m.BindKey(glfw.KeyLeft, ActionMoveLeft)
	m.BindKey(glfw.KeyD, ActionMoveRight)
	m.BindKey(glfw.KeyRight, ActionMoveRight)
	m.BindKey(glfw.KeySpace, ActionJump)
	m.BindKey(glfw.KeyLeftShift, ActionSprint)
	m.BindKey(glfw.KeyLeftControl, ActionSprint)
	m.BindKey(glfw.KeyEscape, ActionPause)
	m.BindKey(glfw.KeyR, ActionRegenerate)
	m.BindKey(glfw.KeyV, ActionToggleProfiling)

	m.BindMouseButton(glfw.MouseButtonLeft, ActionRemoveBlock)
	m.BindMouseButton(glfw.MouseButtonRight, ActionPlaceBlock)

	return m
}

// BindKey adds action to key. A key may drive several actions.
func (m *Manager) BindKey(key glfw.Key, action Action) {
	if action < 0 || action >= ActionCount {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keys[key] = append(m.keys[key], action)
}

// BindMouseButton adds action to button.
func (m *Manager) BindMouseButton(button glfw.MouseButton, action Action) {
	if action < 0 || action >= ActionCount {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.buttons[button] = append(m.buttons[button], action)
}

func (m *Manager) apply(actions []Action, pressed bool) {
	for _, act := range actions {
		if pressed && !m.current[act] {
			m.justPressed[act] = true
		}
		if !pressed && m.current[act] {
			m.justReleased[act] = true
		}
		m.current[act] = pressed
	}
}

// HandleKeyEvent records a key transition. Repeats count as held.
func (m *Manager) HandleKeyEvent(key glfw.Key, action glfw.Action) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if actions, ok := m.keys[key]; ok {
		m.apply(actions, action == glfw.Press || action == glfw.Repeat)
	}
}

// HandleMouseButtonEvent records a button transition.
func (m *Manager) HandleMouseButtonEvent(button glfw.MouseButton, action glfw.Action) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if actions, ok := m.buttons[button]; ok {
		m.apply(actions, action == glfw.Press)
	}
}

// HandleScroll accumulates vertical wheel offset until the next TakeScroll.
func (m *Manager) HandleScroll(yoff float64) {
	m.mu.Lock()
	m.scroll += yoff
	m.mu.Unlock()
}

// HandleCursor stores the latest cursor position.
func (m *Manager) HandleCursor(x, y float64) {
	m.mu.Lock()
	m.cursorX, m.cursorY = x, y
	m.cursorMoved = true
	m.mu.Unlock()
}

// Attach installs key, button, scroll and cursor callbacks on window.
func (m *Manager) Attach(window *glfw.Window) {
	window.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		m.HandleKeyEvent(key, action)
	})
	window.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		m.HandleMouseButtonEvent(button, action)
	})
	window.SetScrollCallback(func(_ *glfw.Window, _, yoff float64) {
		m.HandleScroll(yoff)
	})
	window.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		m.HandleCursor(x, y)
	})
}

// PostUpdate clears the edge flags. Call once at the end of every frame.
func (m *Manager) PostUpdate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range ActionCount {
		m.justPressed[i] = false
		m.justReleased[i] = false
	}
}

// IsActive reports whether action is held.
func (m *Manager) IsActive(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current[action]
}

// JustPressed reports whether action went down this frame.
func (m *Manager) JustPressed(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.justPressed[action]
}

// JustReleased reports whether action went up this frame.
func (m *Manager) JustReleased(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.justReleased[action]
}

// TakeScroll returns and resets the accumulated wheel offset.
func (m *Manager) TakeScroll() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.scroll
	m.scroll = 0
	return s
}

// Cursor returns the last cursor position and whether it moved since the
// previous call.
func (m *Manager) Cursor() (x, y float64, moved bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	moved = m.cursorMoved
	m.cursorMoved = false
	return m.cursorX, m.cursorY, moved
}
