package models

import (
	"strings"
	"time"
)

// ProgressStatus represents the status of a progress record
type ProgressStatus string

const (
	// ProgressStatusNotStarted is never stored, it is inferred when no record exists
	ProgressStatusNotStarted ProgressStatus = "NOT_STARTED"
	ProgressStatusInProgress ProgressStatus = "IN_PROGRESS"
	ProgressStatusCompleted  ProgressStatus = "COMPLETED"
)

// Lower returns the lowercase form used by the web client ("in_progress")
func (s ProgressStatus) Lower() string {
	if s == "" {
		return strings.ToLower(string(ProgressStatusNotStarted))
	}
	return strings.ToLower(string(s))
}

// IsStarted reports whether the status is at least IN_PROGRESS
func (s ProgressStatus) IsStarted() bool {
	return s == ProgressStatusInProgress || s == ProgressStatusCompleted
}

// ModuleProgress represents a learner's progress through a module
type ModuleProgress struct {
	ID                   string         `json:"id"`
	UserID               int            `json:"-"`
	ModuleID             string         `json:"moduleId"`
	Status               ProgressStatus `json:"status"`
	LastVisitedUnitID    string         `json:"lastVisitedUnitId,omitempty"`
	LastVisitedContentID string         `json:"lastVisitedContentId,omitempty"`
	EarnedPoints         int            `json:"earnedPoints"`
}

// UnitProgress represents a learner's progress through a unit
type UnitProgress struct {
	ID       string         `json:"id"`
	UserID   int            `json:"-"`
	UnitID   string         `json:"unitId"`
	ModuleID string         `json:"moduleId"`
	Status   ProgressStatus `json:"status"`
}

// ContentProgress represents a learner's progress on a single content item
type ContentProgress struct {
	ID            string         `json:"id"`
	UserID        int            `json:"-"`
	UnitID        string         `json:"unitId"`
	UnitContentID string         `json:"unitContentId"`
	Status        ProgressStatus `json:"status"`
	Points        int            `json:"points"`
}

// CreateModuleProgressRequest represents a request to create module progress
type CreateModuleProgressRequest struct {
	ModuleID           string `json:"moduleId"`
	LastVisitedUnit    string `json:"lastVisitedUnit,omitempty"`
	LastVisitedContent string `json:"lastVisitedContent,omitempty"`
}

// PatchModuleProgressRequest represents a partial update of module progress
type PatchModuleProgressRequest struct {
	Status               *ProgressStatus `json:"status,omitempty"`
	LastVisitedUnitID    *string         `json:"lastVisitedUnitId,omitempty"`
	LastVisitedContentID *string         `json:"lastVisitedContentId,omitempty"`
	EarnedPoints         *int            `json:"earnedPoints,omitempty"`
}

// CreateUnitProgressRequest represents a request to create unit progress
type CreateUnitProgressRequest struct {
	UnitID   string `json:"unitId"`
	ModuleID string `json:"moduleId"`
}

// UpdateUnitProgressRequest represents a full update of unit progress
type UpdateUnitProgressRequest struct {
	ModuleID string         `json:"moduleId"`
	UnitID   string         `json:"unitId"`
	Status   ProgressStatus `json:"status"`
}

// CreateContentProgressRequest represents a request to create content progress
type CreateContentProgressRequest struct {
	UnitID        string         `json:"unitId"`
	UnitContentID string         `json:"unitContentId"`
	Status        ProgressStatus `json:"status"`
	Points        int            `json:"points"`
}

// UpdateContentProgressRequest represents a partial update of content progress
type UpdateContentProgressRequest struct {
	Status *ProgressStatus `json:"status,omitempty"`
	Points *int            `json:"points,omitempty"`
}

// ModuleProgressRef identifies a learner's module progress row for background reconciliation
type ModuleProgressRef struct {
	ID        string    `json:"id"`
	UserID    int       `json:"userId"`
	ModuleID  string    `json:"moduleId"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Cursor returns the sweep position right after this row
func (r ModuleProgressRef) Cursor() SweepCursor {
	return SweepCursor{UpdatedAt: r.UpdatedAt, ID: r.ID}
}

// SweepCursor is a keyset position in the IN_PROGRESS module progress rows,
// ordered by last update then ID
type SweepCursor struct {
	UpdatedAt time.Time `json:"updatedAt"`
	ID        string    `json:"id"`
}

// UnitProgressSummary is the status of one unit as shown in a module overview
type UnitProgressSummary struct {
	UnitID string         `json:"unitId"`
	Title  string         `json:"title"`
	Status ProgressStatus `json:"status"`
}

// ModuleProgressSummary is a learner's progress through a module, including units without records
type ModuleProgressSummary struct {
	ModuleID             string                `json:"moduleId"`
	Status               ProgressStatus        `json:"status"`
	EarnedPoints         int                   `json:"earnedPoints"`
	LastVisitedUnitID    string                `json:"lastVisitedUnitId,omitempty"`
	LastVisitedContentID string                `json:"lastVisitedContentId,omitempty"`
	Units                []UnitProgressSummary `json:"units"`
}
