// models/event.go

package models

import "fmt"

// EventKind discriminates the two calendar item shapes. It is resolved once
// at the creation site and carried with the payload; nothing re-infers the
// kind from which fields happen to be present.
type EventKind string

const (
	KindTask  EventKind = "task"
	KindClass EventKind = "class"
)

// PlannerEvent is the tagged union the shared save path works with: exactly
// one of Task or Class is set, named by Kind.
type PlannerEvent struct {
	Kind  EventKind   `json:"kind" binding:"required"`
	Task  *Task       `json:"task,omitempty"`
	Class *ClassEvent `json:"class,omitempty"`
}

// Validate checks that the union is well formed and that the named variant
// passes its own validation.
func (e *PlannerEvent) Validate() error {
	switch e.Kind {
	case KindTask:
		if e.Task == nil || e.Class != nil {
			return fmt.Errorf("event of kind %q must carry exactly the task payload", e.Kind)
		}
		return e.Task.Validate()
	case KindClass:
		if e.Class == nil || e.Task != nil {
			return fmt.Errorf("event of kind %q must carry exactly the class payload", e.Kind)
		}
		return e.Class.Validate()
	default:
		return fmt.Errorf("unknown event kind %q", e.Kind)
	}
}
