package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/collab-cli/internal/domain"
	"github.com/bnema/collab-cli/internal/ports"
	"github.com/google/uuid"
)

// SessionService covers the user-initiated actions on a mirrored session:
// sending messages, approving plans, listing and forgetting mirrors.
// Remote writes require connectivity; nothing is queued for later.
type SessionService struct {
	reader ports.SessionReader
	writer ports.SessionWriter
	remote ports.Collaborator
	sync   *domain.Synchronizer
	clock  ports.Clock
}

func NewSessionService(reader ports.SessionReader, writer ports.SessionWriter, remote ports.Collaborator, sync *domain.Synchronizer, clock ports.Clock) *SessionService {
	if sync == nil {
		sync = domain.NewSynchronizer(domain.RemoteFirstPolicy{})
	}
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &SessionService{
		reader: reader,
		writer: writer,
		remote: remote,
		sync:   sync,
		clock:  clock,
	}
}

func (s *SessionService) SendMessage(ctx context.Context, id domain.SessionID, text string) error {
	if strings.TrimSpace(text) == "" {
		return errors.New("message text is empty")
	}

	session, err := s.reader.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("load local session: %w", err)
	}

	if err := s.remote.SendMessage(ctx, id, text); err != nil {
		return fmt.Errorf("send message: %w", err)
	}

	message := domain.Message{
		ActivityCore: domain.ActivityCore{
			ID:         localActivityID(),
			Timestamp:  s.clock.Now(),
			Originator: domain.OriginatorUser,
		},
		Text: text,
	}

	return s.mirror(ctx, session, message)
}

// ApprovePlan approves the named plan, or the latest plan in the mirror
// when planID is empty.
func (s *SessionService) ApprovePlan(ctx context.Context, id domain.SessionID, planID string) (string, error) {
	session, err := s.reader.Get(ctx, id)
	if err != nil {
		return "", fmt.Errorf("load local session: %w", err)
	}

	if planID == "" {
		plan := domain.LatestPlan(session.Log)
		if plan == nil {
			return "", domain.ErrNoPlan
		}
		planID = plan.PlanID
	}

	if err := s.remote.ApprovePlan(ctx, id, planID); err != nil {
		return "", fmt.Errorf("approve plan %s: %w", planID, err)
	}

	approval := domain.Approval{
		ActivityCore: domain.ActivityCore{
			ID:         localActivityID(),
			Timestamp:  s.clock.Now(),
			Originator: domain.OriginatorUser,
		},
		PlanID: planID,
	}

	if err := s.mirror(ctx, session, approval); err != nil {
		return "", err
	}
	return planID, nil
}

func (s *SessionService) List(ctx context.Context) ([]SessionSummary, error) {
	sessions, err := s.reader.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	summaries := make([]SessionSummary, 0, len(sessions))
	for _, session := range sessions {
		summaries = append(summaries, SessionSummary{
			ID:         session.ID,
			Task:       session.Task,
			Pulse:      session.Pulse,
			UpdatedAt:  session.UpdatedAt,
			Activities: len(session.Log),
		})
	}

	return summaries, nil
}

func (s *SessionService) Get(ctx context.Context, id domain.SessionID) (*domain.Session, error) {
	session, err := s.reader.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load local session: %w", err)
	}
	return session, nil
}

func (s *SessionService) Forget(ctx context.Context, id domain.SessionID) error {
	if err := s.writer.Forget(ctx, id); err != nil {
		return fmt.Errorf("forget session: %w", err)
	}
	return nil
}

// mirror appends a locally originated activity through the Synchronizer,
// which owns all session mutation. The snapshot is the session itself so
// pulse and pull request stay untouched; the next refresh dedups by id.
func (s *SessionService) mirror(ctx context.Context, session *domain.Session, activity domain.Activity) error {
	snapshot := *session
	s.sync.Synchronize(session, &snapshot, []domain.Activity{activity})

	if err := s.writer.Save(ctx, session); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}

func localActivityID() domain.ActivityID {
	return domain.ActivityID("local-" + uuid.NewString())
}
