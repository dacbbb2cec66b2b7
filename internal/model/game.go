package model

import "time"

// SessionID uniquely identifies a play session
type SessionID string

// TurnState is the phase of the current player turn
type TurnState string

const (
	TurnStateIdle      TurnState = "idle"      // Waiting for a swap
	TurnStateTentative TurnState = "tentative" // Swap applied, not yet validated
	TurnStateCascade   TurnState = "cascade"   // Swap accepted, resolving matches
)

// TurnResult describes how an accepted swap resolved
type TurnResult struct {
	Swap       Swap
	Matches    []Match // Every match across all cascade levels, in order
	Cascades   int     // Number of scan/destroy steps performed
	Score      float64 // Score gained this turn
	TotalScore float64 // Session score after this turn
}

// Session is the running state of one game
type Session struct {
	ID        SessionID
	Height    int
	Width     int
	Score     float64
	Turns     int // Accepted swaps
	Rejected  int // Swaps undone for lack of a match
	Cascades  int
	BestTurn  float64
	StartedAt time.Time
}

// SessionSummary is a lightweight record of a finished session
type SessionSummary struct {
	ID          SessionID
	Strategy    string // Empty for a human player
	Height      int
	Width       int
	Score       float64
	Turns       int
	Rejected    int
	Cascades    int
	BestTurn    float64
	GemsCleared map[Gem]int
	StartedAt   time.Time
	CompletedAt time.Time
}
