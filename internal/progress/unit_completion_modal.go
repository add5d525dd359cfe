package progress

import "sync"

// UnitCompletionState is a snapshot of the unit completion modal
type UnitCompletionState struct {
	Visible    bool   `json:"visible"`
	NextUnitID string `json:"nextUnitId,omitempty"`
	ModuleID   string `json:"moduleId,omitempty"`
}

// UnitCompletionModal holds which next unit to offer once a unit is finished
type UnitCompletionModal struct {
	mu    sync.Mutex
	state UnitCompletionState
}

// NewUnitCompletionModal creates a hidden unit completion modal
func NewUnitCompletionModal() *UnitCompletionModal {
	return &UnitCompletionModal{}
}

// Open shows the modal offering "nextUnitID" of "moduleID". Both IDs are required.
func (m *UnitCompletionModal) Open(nextUnitID, moduleID string) {
	if nextUnitID == "" || moduleID == "" {
		return
	}
	m.mu.Lock()
	m.state = UnitCompletionState{Visible: true, NextUnitID: nextUnitID, ModuleID: moduleID}
	m.mu.Unlock()
}

// Close hides the modal and clears both IDs
func (m *UnitCompletionModal) Close() {
	m.mu.Lock()
	m.state = UnitCompletionState{}
	m.mu.Unlock()
}

// State returns the current modal state
func (m *UnitCompletionModal) State() UnitCompletionState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}
