// Package progress implements the learner progress engine: navigation across the
// module → unit → content hierarchy, lazy creation of progress records and the
// completion cascade from content items up to the module.
package progress

import (
	"context"

	"github.com/learnpath/backend/internal/models"
)

// ContentCatalog is the interface that wraps read-only access to module structure
type ContentCatalog interface {
	// ListUnits retrieves the units of a module
	//
	// "ctx" is the context for the request.
	// "moduleID" is the ID of the module.
	//
	// Returns a list of units (order is not guaranteed) and an error if any.
	ListUnits(ctx context.Context, moduleID string) ([]models.Unit, error)
	// ListContent retrieves the content items of a unit
	//
	// "ctx" is the context for the request.
	// "unitID" is the ID of the unit.
	//
	// Returns a list of content items (order is not guaranteed) and an error if any.
	ListContent(ctx context.Context, unitID string) ([]models.ContentItem, error)
}

// ProgressStore is the interface that wraps CRUD access to one learner's progress records.
//
// Get methods must fail with an error satisfying models.IsNotFound when no record exists.
// Create methods may fail with an error satisfying models.IsConflict when the record already exists.
type ProgressStore interface {
	// GetModuleProgress retrieves the learner's progress for a module
	GetModuleProgress(ctx context.Context, moduleID string) (*models.ModuleProgress, error)
	// CreateModuleProgress creates module progress with status IN_PROGRESS
	//
	// "req" carries the module ID and optional last visited pointers.
	CreateModuleProgress(ctx context.Context, req models.CreateModuleProgressRequest) (*models.ModuleProgress, error)
	// PatchModuleProgress applies a partial update to module progress
	//
	// "progressID" is the ID of the progress record, not of the module.
	// Only non-nil fields of "req" are updated.
	PatchModuleProgress(ctx context.Context, progressID string, req models.PatchModuleProgressRequest) (*models.ModuleProgress, error)
	// GetUnitProgress retrieves the learner's progress for a unit
	GetUnitProgress(ctx context.Context, unitID string) (*models.UnitProgress, error)
	// CreateUnitProgress creates unit progress with status IN_PROGRESS
	CreateUnitProgress(ctx context.Context, req models.CreateUnitProgressRequest) (*models.UnitProgress, error)
	// UpdateUnitProgress replaces the status of a unit progress record
	//
	// "progressID" is the ID of the progress record, not of the unit.
	UpdateUnitProgress(ctx context.Context, progressID string, req models.UpdateUnitProgressRequest) (*models.UnitProgress, error)
	// GetContentProgress retrieves the learner's progress for a content item
	GetContentProgress(ctx context.Context, contentID string) (*models.ContentProgress, error)
	// CreateContentProgress creates content progress
	CreateContentProgress(ctx context.Context, req models.CreateContentProgressRequest) (*models.ContentProgress, error)
	// UpdateContentProgress applies a partial update to content progress
	//
	// Moving a record to COMPLETED that is already COMPLETED may fail with a conflict.
	UpdateContentProgress(ctx context.Context, progressID string, req models.UpdateContentProgressRequest) (*models.ContentProgress, error)
	// ListContentProgressByUnit retrieves all content progress rows of a unit
	ListContentProgressByUnit(ctx context.Context, unitID string) ([]models.ContentProgress, error)
	// ListUnitProgressByModule retrieves all unit progress rows of a module
	ListUnitProgressByModule(ctx context.Context, moduleID string) ([]models.UnitProgress, error)
}

// PointsAccumulator is implemented by stores that can credit points in a single atomic update.
// Sessions use it instead of patching the total when the store provides it.
type PointsAccumulator interface {
	// AddEarnedPoints adds "points" to the earned points of a module progress record
	//
	// "progressID" is the ID of the progress record, not of the module.
	// Returns the stored record after the update.
	AddEarnedPoints(ctx context.Context, progressID string, points int) (*models.ModuleProgress, error)
}

// Router performs page navigation on behalf of the learner
type Router interface {
	// Navigate moves the learner to "path" carrying "state" along
	Navigate(path string, state NavigationState)
}

// Reconciler schedules cascade checks that failed inline so they are retried in the background
type Reconciler interface {
	// ScheduleUnitFinalization schedules FinalizeUnit for the unit
	ScheduleUnitFinalization(ctx context.Context, unitID, moduleID string) error
	// ScheduleModuleFinalization schedules FinalizeModule for the module
	ScheduleModuleFinalization(ctx context.Context, moduleID string) error
}
