// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"skrytki/platform/events"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Ingest Domain Events
// =============================================================================

// DatasetImported is published after a dataset replaced the skrytki table.
type DatasetImported struct {
	BaseEvent
	Source  string `json:"source"`
	Rows    int64  `json:"rows"`
	Skipped int    `json:"skipped"`
}

func (e DatasetImported) EventName() string { return DatasetImportedName }

// DatasetImportedName is the bus name of DatasetImported.
const DatasetImportedName = "ingest.dataset.imported"
