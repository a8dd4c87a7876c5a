package app

import "sync"

// InputEvent is a keyboard or pointer action forwarded by the client while a
// session is active.
type InputEvent struct {
	Kind  string `json:"kind"` // "keydown" or "contextmenu"
	Key   string `json:"key"`
	Ctrl  bool   `json:"ctrl"`
	Shift bool   `json:"shift"`
}

// Verdict tells the client what to do with an input event.
type Verdict struct {
	Blocked bool   `json:"blocked"`
	Warning string `json:"warning,omitempty"`
}

// SecurityMonitor watches session input for restricted actions: copy/cut/paste
// combinations, developer-tool shortcuts, and the context menu. Each hit is
// blocked and warned independently. A positive violation limit arms the
// termination hook after that many hits; zero keeps the hook dormant so the
// monitor only deters.
type SecurityMonitor struct {
	limit     int
	terminate func()

	mu         sync.Mutex
	attached   bool
	violations int
}

// NewSecurityMonitor builds a monitor wired to terminate. The monitor ignores
// all events until attached.
func NewSecurityMonitor(limit int, terminate func()) *SecurityMonitor {
	return &SecurityMonitor{limit: limit, terminate: terminate}
}

func (m *SecurityMonitor) attach() {
	m.mu.Lock()
	m.attached = true
	m.mu.Unlock()
}

func (m *SecurityMonitor) detach() {
	m.mu.Lock()
	m.attached = false
	m.mu.Unlock()
}

// Violations reports how many restricted actions were seen while attached.
func (m *SecurityMonitor) Violations() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.violations
}

// HandleInput evaluates one event. Events on a detached monitor are no-ops so
// nothing leaks across sessions.
func (m *SecurityMonitor) HandleInput(event InputEvent) Verdict {
	m.mu.Lock()
	if !m.attached {
		m.mu.Unlock()
		return Verdict{}
	}
	verdict := restrictedAction(event)
	if !verdict.Blocked {
		m.mu.Unlock()
		return verdict
	}
	m.violations++
	trigger := m.limit > 0 && m.violations >= m.limit
	m.mu.Unlock()

	// Terminate outside the lock; the session detaches this monitor during
	// finalization.
	if trigger {
		m.terminate()
	}
	return verdict
}

func restrictedAction(event InputEvent) Verdict {
	switch event.Kind {
	case "contextmenu":
		return Verdict{Blocked: true, Warning: "Right-click disabled during quiz"}
	case "keydown":
		if event.Ctrl && (event.Key == "c" || event.Key == "v" || event.Key == "x") {
			return Verdict{Blocked: true, Warning: "Action blocked for security reasons"}
		}
		if event.Key == "F12" || (event.Ctrl && event.Shift && event.Key == "I") {
			return Verdict{Blocked: true, Warning: "Action blocked for security reasons"}
		}
	}
	return Verdict{}
}
