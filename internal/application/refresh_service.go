package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bnema/collab-cli/internal/domain"
	"github.com/bnema/collab-cli/internal/ports"
)

const unreachableWarning = "remote collaborator unreachable; showing cached state"

// RefreshService drives one synchronization pass per session: load the
// local mirror, fetch the remote snapshot plus the activities past the
// local watermark, merge, persist. Connectivity failures degrade to the
// cached mirror; every other error propagates.
type RefreshService struct {
	reader ports.SessionReader
	writer ports.SessionWriter
	remote ports.Collaborator
	sync   *domain.Synchronizer
	clock  ports.Clock
}

func NewRefreshService(reader ports.SessionReader, writer ports.SessionWriter, remote ports.Collaborator, sync *domain.Synchronizer, clock ports.Clock) *RefreshService {
	if sync == nil {
		sync = domain.NewSynchronizer(domain.RemoteFirstPolicy{})
	}
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &RefreshService{
		reader: reader,
		writer: writer,
		remote: remote,
		sync:   sync,
		clock:  clock,
	}
}

func (s *RefreshService) Refresh(ctx context.Context, id domain.SessionID) (RefreshResult, error) {
	local, err := s.reader.Get(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrSessionNotFound) {
			return RefreshResult{}, fmt.Errorf("load local session: %w", err)
		}
		local = nil
	}

	snapshot, err := s.remote.FetchSnapshot(ctx, id)
	if err != nil {
		return s.degrade(local, id, err)
	}

	// The watermark comes from the session loaded above, before any
	// healing: a locally unknown session forces a full history fetch.
	var since *time.Time
	if watermark, ok := domain.Watermark(local); ok {
		since = &watermark
	}

	fresh, err := s.remote.FetchActivitiesSince(ctx, id, since)
	if err != nil {
		return s.degrade(local, id, err)
	}

	if local == nil {
		local, err = domain.NewSession(id, snapshot.RemoteID, snapshot.Task, snapshot.Source, snapshot.CreatedAt)
		if err != nil {
			return RefreshResult{}, fmt.Errorf("recover session from remote snapshot: %w", err)
		}
	}

	s.sync.Synchronize(local, snapshot, fresh)

	if err := s.writer.Save(ctx, local); err != nil {
		return RefreshResult{}, fmt.Errorf("persist session: %w", err)
	}

	return resultFromSession(local, ""), nil
}

// degrade translates a fetch failure at the orchestrator boundary:
// connectivity loss with a cached mirror becomes a warning, connectivity
// loss without one becomes not-found, and anything else passes through.
func (s *RefreshService) degrade(local *domain.Session, id domain.SessionID, fetchErr error) (RefreshResult, error) {
	if !errors.Is(fetchErr, domain.ErrRemoteUnreachable) {
		return RefreshResult{}, fmt.Errorf("fetch remote session %s: %w", id, fetchErr)
	}
	if local == nil {
		return RefreshResult{}, fmt.Errorf("session %s unknown locally and %w", id, domain.ErrSessionNotFound)
	}
	return resultFromSession(local, unreachableWarning), nil
}
