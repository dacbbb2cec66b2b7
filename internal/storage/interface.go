package storage

import (
	"context"

	"github.com/mcoot/matchthree/internal/model"
)

// Storage defines the interface for session summary persistence
type Storage interface {
	SaveSummary(ctx context.Context, summary *model.SessionSummary) error
	GetSummary(ctx context.Context, id model.SessionID) (*model.SessionSummary, error)
	DeleteSummary(ctx context.Context, id model.SessionID) error
	// ListSummaries returns up to limit summaries, best score first.
	// A limit of zero or less returns them all.
	ListSummaries(ctx context.Context, limit int) ([]*model.SessionSummary, error)
}
