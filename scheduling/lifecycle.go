package scheduling

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Status is a reservation's lifecycle state.
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no-show"
)

// ParseStatus validates a status string.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusScheduled, StatusCompleted, StatusCancelled, StatusNoShow:
		return Status(s), nil
	default:
		return "", fmt.Errorf("unknown status %q", s)
	}
}

// Terminal reports whether the status ends the guarded lifecycle.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusNoShow
}

// strictTransitions is the optional guard table: only a scheduled
// reservation may move, and only into a terminal state. Corrections to a
// terminal reservation are an administrative override outside strict mode.
var strictTransitions = map[Status]map[Status]bool{
	StatusScheduled: {
		StatusCompleted: true,
		StatusCancelled: true,
		StatusNoShow:    true,
	},
}

// CanTransition reports whether the strict table allows from -> to.
func CanTransition(from, to Status) bool {
	return strictTransitions[from][to]
}

// ErrNotFound is returned by stores when the reservation id is unknown.
var ErrNotFound = errors.New("reservation not found")

// BookingStore is the persistence boundary the lifecycle mutates through.
// Implementations map ErrNotFound for missing ids and pass other store
// failures through unchanged.
type BookingStore interface {
	GetStatus(id string) (Status, error)
	SetStatus(id string, status Status) error
	Delete(id string) error
}

// BulkResult aggregates a continue-on-error bulk operation so callers can
// report "N of M succeeded".
type BulkResult struct {
	Succeeded int               `json:"succeeded"`
	Failed    int               `json:"failed"`
	Errors    map[string]string `json:"errors,omitempty"` // id -> message
}

func (r *BulkResult) ok() {
	r.Succeeded++
}

func (r *BulkResult) fail(id string, err error) {
	r.Failed++
	if r.Errors == nil {
		r.Errors = make(map[string]string)
	}
	r.Errors[id] = err.Error()
}

// Lifecycle applies status changes and deletions to reservations. By
// default any status may be set over any other, matching the manual
// correction flow the front office relies on; Strict enables the
// transition table instead.
type Lifecycle struct {
	Store  BookingStore
	Strict bool
	Log    *zap.Logger
}

// NewLifecycle creates a lifecycle over a store with unguarded transitions.
func NewLifecycle(store BookingStore, log *zap.Logger) *Lifecycle {
	if log == nil {
		log = zap.NewNop()
	}
	return &Lifecycle{Store: store, Log: log}
}

// SetStatus moves one reservation to a new status.
func (l *Lifecycle) SetStatus(id string, status Status) error {
	if _, err := ParseStatus(string(status)); err != nil {
		return err
	}
	if l.Strict {
		current, err := l.Store.GetStatus(id)
		if err != nil {
			return err
		}
		if current != status && !CanTransition(current, status) {
			return fmt.Errorf("transition %s -> %s not allowed", current, status)
		}
	}
	return l.Store.SetStatus(id, status)
}

// BulkSetStatus applies SetStatus to every id, never aborting early; the
// reservations are independent, so one bad id must not sink the batch.
func (l *Lifecycle) BulkSetStatus(ids []string, status Status) BulkResult {
	var result BulkResult
	for _, id := range ids {
		if err := l.SetStatus(id, status); err != nil {
			result.fail(id, err)
			continue
		}
		result.ok()
	}
	return result
}

// Delete removes one reservation. The reason is metadata only; it is
// logged and not modeled further.
func (l *Lifecycle) Delete(id, reason string) error {
	if err := l.Store.Delete(id); err != nil {
		return err
	}
	if reason != "" {
		l.Log.Info("reservation deleted",
			zap.String("id", id),
			zap.String("reason", reason))
	}
	return nil
}

// BulkDelete removes every id with the same continue-on-error policy as
// BulkSetStatus.
func (l *Lifecycle) BulkDelete(ids []string) BulkResult {
	var result BulkResult
	for _, id := range ids {
		if err := l.Store.Delete(id); err != nil {
			result.fail(id, err)
			continue
		}
		result.ok()
	}
	return result
}
