package progress

import (
	"slices"
	"sync"

	"github.com/learnpath/backend/internal/models"
)

// UnitContent caches the content list of the unit the learner is currently in.
// It never touches the network; callers re-fetch when UnitID does not match the unit they need.
type UnitContent struct {
	mu       sync.RWMutex
	unitID   string
	contents []models.ContentItem
}

// NewUnitContent creates an empty unit content cache
func NewUnitContent() *UnitContent {
	return &UnitContent{}
}

// SetUnitContent replaces the cached unit ID and content list in one step
func (c *UnitContent) SetUnitContent(unitID string, items []models.ContentItem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.unitID = unitID
	c.contents = slices.Clone(items)
}

// UnitID returns the ID of the cached unit
func (c *UnitContent) UnitID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.unitID
}

// ContentList returns a copy of the cached content list
func (c *UnitContent) ContentList() []models.ContentItem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.contents)
}

// snapshot returns both fields as written by the same SetUnitContent call
func (c *UnitContent) snapshot() (string, []models.ContentItem) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.unitID, slices.Clone(c.contents)
}
