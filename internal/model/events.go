package model

import "time"

// EventType identifies the type of event
type EventType string

const (
	EventGridStabilized EventType = "grid_stabilized"
	EventSwapRejected   EventType = "swap_rejected"
	EventCascadeStep    EventType = "cascade_step"
	EventTurnComplete   EventType = "turn_complete"
)

// Event is published by the turn controller as a turn resolves
type Event struct {
	Type      EventType
	Timestamp time.Time
	SessionID SessionID
	Payload   any // Type-specific data
}

// SwapRejectedPayload contains data for swap rejected events
type SwapRejectedPayload struct {
	Swap Swap
}

// CascadeStepPayload is published before the matched cells of one cascade
// level are destroyed, so a display can show them
type CascadeStepPayload struct {
	Level   int // 0 for the matches made by the swap itself
	Cells   []Position
	Matches []Match
	Grid    *Grid
}

// TurnCompletePayload contains data for turn complete events
type TurnCompletePayload struct {
	Result TurnResult
}

// GridStabilizedPayload contains data for grid stabilized events
type GridStabilizedPayload struct {
	Passes int
}
