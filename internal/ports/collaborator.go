package ports

import (
	"context"
	"time"

	"github.com/bnema/collab-cli/internal/domain"
)

// Collaborator is the remote agent service boundary. Implementations
// report connectivity problems by wrapping domain.ErrRemoteUnreachable and
// missing sessions by wrapping domain.ErrSessionNotFound; callers see no
// transport detail beyond that.
type Collaborator interface {
	// FetchSnapshot returns the authoritative session state (pulse, pull
	// request, identity) without its activity history.
	FetchSnapshot(ctx context.Context, id domain.SessionID) (*domain.Session, error)

	// FetchActivitiesSince returns activities strictly after the given
	// watermark, or the entire history when since is nil.
	FetchActivitiesSince(ctx context.Context, id domain.SessionID, since *time.Time) ([]domain.Activity, error)

	// SendMessage posts a user message into the remote session.
	SendMessage(ctx context.Context, id domain.SessionID, text string) error

	// ApprovePlan approves a generated plan so the agent may proceed.
	ApprovePlan(ctx context.Context, id domain.SessionID, planID string) error
}
