package progress

import "sync"

// NavigationState is carried along with a navigation
type NavigationState struct {
	UnitID string `json:"unitId,omitempty"`
}

// Navigation is a page navigation decided by the engine
type Navigation struct {
	Path  string          `json:"path"`
	State NavigationState `json:"state"`
}

// Recorder is a Router that remembers the last navigation so it can be returned to the web client
type Recorder struct {
	mu   sync.Mutex
	last *Navigation
}

// NewRecorder creates a recorder without navigations
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Navigate records the navigation
func (r *Recorder) Navigate(path string, state NavigationState) {
	r.mu.Lock()
	r.last = &Navigation{Path: path, State: state}
	r.mu.Unlock()
}

// Last returns the most recent navigation or nil
func (r *Recorder) Last() *Navigation {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.last == nil {
		return nil
	}
	nav := *r.last
	return &nav
}

// Outcome is everything a learner request changed in the view layer
type Outcome struct {
	Navigation          *Navigation         `json:"navigation"`
	QuizModal           QuizModalState      `json:"quizModal"`
	UnitCompletionModal UnitCompletionState `json:"unitCompletionModal"`
	ModuleID            string              `json:"moduleId,omitempty"`
	UnitID              string              `json:"unitId,omitempty"`
	ModuleStatus        string              `json:"moduleStatus"`
	UnitStatus          string              `json:"unitStatus"`
	EarnedPoints        int                 `json:"earnedPoints"`
}
