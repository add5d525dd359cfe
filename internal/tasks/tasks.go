// Package tasks defines the background reconciliation tasks of the progress service
// and the asynq client that enqueues them.
package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// TypeFinalizeUnit re-runs the unit completion check of one learner
	TypeFinalizeUnit = "progress:finalize_unit"
	// TypeFinalizeModule re-runs the module completion check of one learner
	TypeFinalizeModule = "progress:finalize_module"
	// TypeSweep enqueues module checks for every IN_PROGRESS module progress row
	TypeSweep = "progress:sweep"

	// QueueReconcile is the queue of finalize tasks
	QueueReconcile = "reconcile"
	// QueueDefault is the queue of sweep tasks
	QueueDefault = "default"
)

// FinalizeUnitPayload is the payload of a TypeFinalizeUnit task
type FinalizeUnitPayload struct {
	UserID   int    `json:"userId"`
	UnitID   string `json:"unitId"`
	ModuleID string `json:"moduleId"`
}

// FinalizeModulePayload is the payload of a TypeFinalizeModule task
type FinalizeModulePayload struct {
	UserID   int    `json:"userId"`
	ModuleID string `json:"moduleId"`
}

// SweepPayload is the payload of a TypeSweep task
type SweepPayload struct {
	BatchSize int `json:"batchSize"`
}

// ParsePayload decodes the JSON payload of "t" into "out"
func ParsePayload(t *asynq.Task, out any) error {
	if err := json.Unmarshal(t.Payload(), out); err != nil {
		return fmt.Errorf("failed to parse %s payload: %w", t.Type(), err)
	}
	return nil
}

// Enqueuer is the part of *asynq.Client used to enqueue tasks
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Client enqueues reconciliation tasks
type Client struct {
	enqueuer Enqueuer
}

// NewClient creates a task client over an asynq client
func NewClient(enqueuer Enqueuer) *Client {
	return &Client{enqueuer: enqueuer}
}

func (c *Client) enqueue(ctx context.Context, taskType string, payload any, opts ...asynq.Option) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", taskType, err)
	}

	_, err = c.enqueuer.EnqueueContext(ctx, asynq.NewTask(taskType, data), opts...)
	// the same check is already waiting in the queue
	if errors.Is(err, asynq.ErrDuplicateTask) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to enqueue %s task: %w", taskType, err)
	}
	return nil
}

// EnqueueFinalizeUnit schedules the unit completion check of a learner
func (c *Client) EnqueueFinalizeUnit(ctx context.Context, userID int, unitID, moduleID string) error {
	return c.enqueue(ctx, TypeFinalizeUnit,
		FinalizeUnitPayload{UserID: userID, UnitID: unitID, ModuleID: moduleID},
		asynq.Queue(QueueReconcile),
		asynq.MaxRetry(5),
		asynq.Unique(time.Minute),
	)
}

// EnqueueFinalizeModule schedules the module completion check of a learner
func (c *Client) EnqueueFinalizeModule(ctx context.Context, userID int, moduleID string) error {
	return c.enqueue(ctx, TypeFinalizeModule,
		FinalizeModulePayload{UserID: userID, ModuleID: moduleID},
		asynq.Queue(QueueReconcile),
		asynq.MaxRetry(5),
		asynq.Unique(time.Minute),
	)
}

// EnqueueSweep schedules a sweep over up to "batchSize" IN_PROGRESS modules
func (c *Client) EnqueueSweep(ctx context.Context, batchSize int) error {
	return c.enqueue(ctx, TypeSweep,
		SweepPayload{BatchSize: batchSize},
		asynq.Queue(QueueDefault),
		asynq.MaxRetry(1),
	)
}

// Reconciler hands failed inline finalizations of one learner to the worker.
// It implements progress.Reconciler.
type Reconciler struct {
	client *Client
	userID int
}

// ForUser returns a reconciler for the learner "userID"
func (c *Client) ForUser(userID int) *Reconciler {
	return &Reconciler{client: c, userID: userID}
}

// ScheduleUnitFinalization enqueues a TypeFinalizeUnit task
func (r *Reconciler) ScheduleUnitFinalization(ctx context.Context, unitID, moduleID string) error {
	return r.client.EnqueueFinalizeUnit(ctx, r.userID, unitID, moduleID)
}

// ScheduleModuleFinalization enqueues a TypeFinalizeModule task
func (r *Reconciler) ScheduleModuleFinalization(ctx context.Context, moduleID string) error {
	return r.client.EnqueueFinalizeModule(ctx, r.userID, moduleID)
}
