// Package model provides shared fitted-state management and persistence
// helpers for claimfreq estimators.
package model

import (
	"sync"

	"github.com/insurekit/claimfreq/pkg/errors"
)

// StateManager tracks whether an estimator has been fitted, in a thread-safe
// manner. Estimators hold it by composition rather than embedding.
type StateManager struct {
	Fitted bool // public for gob encoding
	mu     sync.RWMutex

	// Dimensions of the fitted design, public for gob encoding.
	NColumns int
	NRows    int

	name string
}

// NewStateManager creates an unfitted StateManager for the named estimator.
func NewStateManager(name string) *StateManager {
	return &StateManager{name: name}
}

// IsFitted returns whether the estimator has been fitted.
func (s *StateManager) IsFitted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Fitted
}

// SetFitted marks the estimator as fitted with the given design dimensions.
func (s *StateManager) SetFitted(nRows, nColumns int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Fitted = true
	s.NRows = nRows
	s.NColumns = nColumns
}

// Reset returns the estimator to the unfitted state.
func (s *StateManager) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Fitted = false
	s.NRows = 0
	s.NColumns = 0
}

// Dimensions returns the design dimensions recorded at fit time.
func (s *StateManager) Dimensions() (nRows, nColumns int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.NRows, s.NColumns
}

// RequireFitted returns a NotFittedError naming the calling method if the
// estimator has not been fitted.
func (s *StateManager) RequireFitted(method string) error {
	if !s.IsFitted() {
		return errors.NewNotFittedError(s.name, method)
	}
	return nil
}
