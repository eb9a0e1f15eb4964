package model

import "time"

// EventKind names a deferred lifecycle event.
type EventKind string

const (
	EventDriverAssignment EventKind = "driver_assignment"
	EventDriverReply      EventKind = "driver_reply"
)

// Event is scheduled for one order and applied once its due time passes.
type Event struct {
	Kind       EventKind
	OrderID    string
	DueAt      time.Time
	Generation uint64
}
