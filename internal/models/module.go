package models

import "encoding/json"

// ContentType represents the type of a content item within a unit
type ContentType string

const (
	ContentTypeArticle ContentType = "article"
	ContentTypeVideo   ContentType = "video"
	ContentTypeQuiz    ContentType = "quiz"
)

// Module represents a course authored by an administrator
type Module struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Topic       string   `json:"topic"`
	TotalPoints int      `json:"totalPoints"`
	UnitIDs     []string `json:"unitIds,omitempty"`
}

// Unit represents a unit of a module
type Unit struct {
	ID          string   `json:"id"`
	ModuleID    string   `json:"moduleId,omitempty"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	SortOrder   int      `json:"sortOrder"`
	ContentIDs  []string `json:"contentIds,omitempty"`
}

// ContentItem represents an article, video or quiz inside a unit
type ContentItem struct {
	ID          string          `json:"id"`
	UnitID      string          `json:"unitId,omitempty"`
	ContentType ContentType     `json:"contentType"`
	Title       string          `json:"title"`
	SortOrder   int             `json:"sortOrder"`
	Points      int             `json:"points"`
	Payload     json.RawMessage `json:"payload,omitempty"`
}
