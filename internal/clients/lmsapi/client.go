// Package lmsapi is a REST client for a remote LMS backend that owns the content catalog
// and the progress records. It satisfies progress.ContentCatalog and progress.ProgressStore.
package lmsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/learnpath/backend/internal/models"
)

// Client talks to the LMS REST API on behalf of one learner
type Client struct {
	rc    *resty.Client
	token string
}

// New creates a client for the API rooted at "baseURL" (for example "https://lms.example.com/api/v1")
func New(baseURL string, timeout time.Duration) *Client {
	rc := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	return &Client{rc: rc}
}

// WithToken returns a client sending "token" as the learner's bearer token.
// The underlying connection pool is shared.
func (c *Client) WithToken(token string) *Client {
	return &Client{rc: c.rc, token: token}
}

func (c *Client) request(ctx context.Context) *resty.Request {
	req := c.rc.R().SetContext(ctx)
	if c.token != "" {
		req.SetAuthToken(c.token)
	}
	return req
}

// apiError is the error body returned by the API
type apiError struct {
	Error string `json:"error"`
}

// do checks the response of a request and decodes its body into "out" when non-nil.
// Non-2xx responses become *models.StatusError so callers can tell 404 and 409 apart.
func do(resp *resty.Response, err error, out any) error {
	if err != nil {
		return fmt.Errorf("lms api request failed: %w", err)
	}

	if resp.IsError() || resp.StatusCode() >= http.StatusMultipleChoices {
		message := http.StatusText(resp.StatusCode())
		var body apiError
		if json.Unmarshal(resp.Body(), &body) == nil && body.Error != "" {
			message = body.Error
		}
		return &models.StatusError{StatusCode: resp.StatusCode(), Message: message}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("failed to decode lms api response: %w", err)
	}
	return nil
}

// ListUnits retrieves the units of a module
func (c *Client) ListUnits(ctx context.Context, moduleID string) ([]models.Unit, error) {
	var units []models.Unit
	resp, err := c.request(ctx).
		SetPathParam("moduleId", moduleID).
		Get("/catalog/modules/{moduleId}/units")
	if err := do(resp, err, &units); err != nil {
		return nil, err
	}
	return units, nil
}

// ListContent retrieves the content items of a unit
func (c *Client) ListContent(ctx context.Context, unitID string) ([]models.ContentItem, error) {
	var items []models.ContentItem
	resp, err := c.request(ctx).
		SetPathParam("unitId", unitID).
		Get("/catalog/units/{unitId}/contents")
	if err := do(resp, err, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// GetModuleProgress retrieves the learner's progress for a module
func (c *Client) GetModuleProgress(ctx context.Context, moduleID string) (*models.ModuleProgress, error) {
	var mp models.ModuleProgress
	resp, err := c.request(ctx).
		SetPathParam("moduleId", moduleID).
		Get("/module-progress/{moduleId}")
	if err := do(resp, err, &mp); err != nil {
		return nil, err
	}
	return &mp, nil
}

// CreateModuleProgress creates module progress
func (c *Client) CreateModuleProgress(ctx context.Context, req models.CreateModuleProgressRequest) (*models.ModuleProgress, error) {
	var mp models.ModuleProgress
	resp, err := c.request(ctx).
		SetBody(req).
		Post("/module-progress")
	if err := do(resp, err, &mp); err != nil {
		return nil, err
	}
	return &mp, nil
}

// PatchModuleProgress applies a partial update to module progress
func (c *Client) PatchModuleProgress(ctx context.Context, progressID string, req models.PatchModuleProgressRequest) (*models.ModuleProgress, error) {
	var mp models.ModuleProgress
	resp, err := c.request(ctx).
		SetPathParam("progressId", progressID).
		SetBody(req).
		Patch("/module-progress/{progressId}")
	if err := do(resp, err, &mp); err != nil {
		return nil, err
	}
	return &mp, nil
}

// GetUnitProgress retrieves the learner's progress for a unit
func (c *Client) GetUnitProgress(ctx context.Context, unitID string) (*models.UnitProgress, error) {
	var up models.UnitProgress
	resp, err := c.request(ctx).
		SetPathParam("unitId", unitID).
		Get("/unit-progress/{unitId}")
	if err := do(resp, err, &up); err != nil {
		return nil, err
	}
	return &up, nil
}

// CreateUnitProgress creates unit progress
func (c *Client) CreateUnitProgress(ctx context.Context, req models.CreateUnitProgressRequest) (*models.UnitProgress, error) {
	var up models.UnitProgress
	resp, err := c.request(ctx).
		SetBody(req).
		Post("/unit-progress")
	if err := do(resp, err, &up); err != nil {
		return nil, err
	}
	return &up, nil
}

// UpdateUnitProgress replaces the status of unit progress
func (c *Client) UpdateUnitProgress(ctx context.Context, progressID string, req models.UpdateUnitProgressRequest) (*models.UnitProgress, error) {
	var up models.UnitProgress
	resp, err := c.request(ctx).
		SetPathParam("progressId", progressID).
		SetBody(req).
		Put("/unit-progress/{progressId}")
	if err := do(resp, err, &up); err != nil {
		return nil, err
	}
	return &up, nil
}

// ListUnitProgressByModule retrieves the learner's unit progress rows of a module
func (c *Client) ListUnitProgressByModule(ctx context.Context, moduleID string) ([]models.UnitProgress, error) {
	var rows []models.UnitProgress
	resp, err := c.request(ctx).
		SetQueryParam("moduleId", moduleID).
		Get("/unit-progress")
	if err := do(resp, err, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// GetContentProgress retrieves the learner's progress for a content item
func (c *Client) GetContentProgress(ctx context.Context, contentID string) (*models.ContentProgress, error) {
	var cp models.ContentProgress
	resp, err := c.request(ctx).
		SetPathParam("contentId", contentID).
		Get("/content-progress/{contentId}")
	if err := do(resp, err, &cp); err != nil {
		return nil, err
	}
	return &cp, nil
}

// CreateContentProgress creates content progress
func (c *Client) CreateContentProgress(ctx context.Context, req models.CreateContentProgressRequest) (*models.ContentProgress, error) {
	var cp models.ContentProgress
	resp, err := c.request(ctx).
		SetBody(req).
		Post("/content-progress")
	if err := do(resp, err, &cp); err != nil {
		return nil, err
	}
	return &cp, nil
}

// UpdateContentProgress applies a partial update to content progress
func (c *Client) UpdateContentProgress(ctx context.Context, progressID string, req models.UpdateContentProgressRequest) (*models.ContentProgress, error) {
	var cp models.ContentProgress
	resp, err := c.request(ctx).
		SetPathParam("progressId", progressID).
		SetBody(req).
		Patch("/content-progress/{progressId}")
	if err := do(resp, err, &cp); err != nil {
		return nil, err
	}
	return &cp, nil
}

// ListContentProgressByUnit retrieves the learner's content progress rows of a unit
func (c *Client) ListContentProgressByUnit(ctx context.Context, unitID string) ([]models.ContentProgress, error) {
	var rows []models.ContentProgress
	resp, err := c.request(ctx).
		SetQueryParam("unitId", unitID).
		Get("/content-progress")
	if err := do(resp, err, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
