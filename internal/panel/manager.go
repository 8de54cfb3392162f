package panel

import (
	"sync"
)

// Manager tracks open panels with thread-safe operations. One panel is
// "attached" (its terminal fills the main area); the rest keep their
// sessions running in the background.
type Manager struct {
	panels    []*Panel
	activeIdx int
	mu        sync.RWMutex
}

// NewManager creates an empty panel manager.
func NewManager() *Manager {
	return &Manager{
		panels:    make([]*Panel, 0),
		activeIdx: -1,
	}
}

// Add adds a panel and returns its index.
func (m *Manager) Add(p *Panel) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.panels = append(m.panels, p)
	if m.activeIdx < 0 {
		m.activeIdx = 0
	}
	return len(m.panels) - 1
}

// Get returns the panel for the named host, or nil.
func (m *Manager) Get(host string) *Panel {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.panels {
		if p.Host == host {
			return p
		}
	}
	return nil
}

// Remove closes and drops the panel for the named host.
func (m *Manager) Remove(host string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, p := range m.panels {
		if p.Host != host {
			continue
		}
		p.Close()
		m.panels = append(m.panels[:i], m.panels[i+1:]...)
		if m.activeIdx >= len(m.panels) {
			m.activeIdx = len(m.panels) - 1
		}
		return
	}
}

// Active returns the attached panel, or nil.
func (m *Manager) Active() *Panel {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.activeIdx < 0 || m.activeIdx >= len(m.panels) {
		return nil
	}
	return m.panels[m.activeIdx]
}

// SetActive attaches the panel for the named host. Returns false when no
// such panel exists.
func (m *Manager) SetActive(host string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, p := range m.panels {
		if p.Host == host {
			m.activeIdx = i
			return true
		}
	}
	return false
}

// Count returns the number of open panels.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.panels)
}

// All returns a copy of the panel list.
func (m *Manager) All() []*Panel {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Panel, len(m.panels))
	copy(out, m.panels)
	return out
}

// CloseAll closes every panel's session and clears the manager.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.panels {
		p.Close()
	}
	m.panels = nil
	m.activeIdx = -1
}
