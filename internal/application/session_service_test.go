package application

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bnema/collab-cli/internal/domain"
	"github.com/bnema/collab-cli/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSendMessageMirrorsLocally(t *testing.T) {
	reader := mocks.NewMockSessionReader(t)
	writer := mocks.NewMockSessionWriter(t)
	remote := mocks.NewMockCollaborator(t)
	clock := mocks.NewMockClock(t)
	service := NewSessionService(reader, writer, remote, nil, clock)

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	session := snapshotAt(domain.PulseWorking, now)

	reader.EXPECT().Get(mockAnyContext(), testSessionID).Return(session, nil)
	remote.EXPECT().SendMessage(mockAnyContext(), testSessionID, "please add a regression test").Return(nil)
	clock.EXPECT().Now().Return(now)
	writer.EXPECT().Save(mockAnyContext(), mock.MatchedBy(func(s *domain.Session) bool {
		if len(s.Log) != 1 {
			return false
		}
		msg, ok := s.Log[0].(domain.Message)
		return ok && msg.Text == "please add a regression test" && msg.Originator == domain.OriginatorUser
	})).Return(nil)

	err := service.SendMessage(context.Background(), testSessionID, "please add a regression test")
	require.NoError(t, err)
}

func TestSendMessageRejectsEmptyText(t *testing.T) {
	service := NewSessionService(mocks.NewMockSessionReader(t), mocks.NewMockSessionWriter(t), mocks.NewMockCollaborator(t), nil, mocks.NewMockClock(t))

	err := service.SendMessage(context.Background(), testSessionID, "   ")
	require.Error(t, err)
}

func TestSendMessageUnreachableIsHardError(t *testing.T) {
	reader := mocks.NewMockSessionReader(t)
	writer := mocks.NewMockSessionWriter(t)
	remote := mocks.NewMockCollaborator(t)
	service := NewSessionService(reader, writer, remote, nil, mocks.NewMockClock(t))

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	reader.EXPECT().Get(mockAnyContext(), testSessionID).Return(snapshotAt(domain.PulseWorking, now), nil)
	remote.EXPECT().SendMessage(mockAnyContext(), testSessionID, "hello").
		Return(fmt.Errorf("post message: %w", domain.ErrRemoteUnreachable))

	err := service.SendMessage(context.Background(), testSessionID, "hello")
	require.ErrorIs(t, err, domain.ErrRemoteUnreachable)
}

func TestApprovePlanResolvesLatestPlanWhenUnnamed(t *testing.T) {
	reader := mocks.NewMockSessionReader(t)
	writer := mocks.NewMockSessionWriter(t)
	remote := mocks.NewMockCollaborator(t)
	clock := mocks.NewMockClock(t)
	service := NewSessionService(reader, writer, remote, nil, clock)

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	session := snapshotAt(domain.PulseAwaitingApproval, base)
	session.Log = []domain.Activity{
		domain.Planning{ActivityCore: domain.ActivityCore{ID: "p-1", Timestamp: base}, PlanID: "plan-old"},
		domain.Planning{ActivityCore: domain.ActivityCore{ID: "p-2", Timestamp: base.Add(time.Hour)}, PlanID: "plan-new"},
	}

	reader.EXPECT().Get(mockAnyContext(), testSessionID).Return(session, nil)
	remote.EXPECT().ApprovePlan(mockAnyContext(), testSessionID, "plan-new").Return(nil)
	clock.EXPECT().Now().Return(base.Add(2 * time.Hour))
	writer.EXPECT().Save(mockAnyContext(), mock.MatchedBy(func(s *domain.Session) bool {
		if len(s.Log) != 3 {
			return false
		}
		approval, ok := s.Log[2].(domain.Approval)
		return ok && approval.PlanID == "plan-new"
	})).Return(nil)

	planID, err := service.ApprovePlan(context.Background(), testSessionID, "")
	require.NoError(t, err)
	assert.Equal(t, "plan-new", planID)
}

func TestApprovePlanWithoutAnyPlanFails(t *testing.T) {
	reader := mocks.NewMockSessionReader(t)
	service := NewSessionService(reader, mocks.NewMockSessionWriter(t), mocks.NewMockCollaborator(t), nil, mocks.NewMockClock(t))

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	reader.EXPECT().Get(mockAnyContext(), testSessionID).Return(snapshotAt(domain.PulseWorking, now), nil)

	_, err := service.ApprovePlan(context.Background(), testSessionID, "")
	require.ErrorIs(t, err, domain.ErrNoPlan)
}

func TestListSummarizesMirrors(t *testing.T) {
	reader := mocks.NewMockSessionReader(t)
	service := NewSessionService(reader, mocks.NewMockSessionWriter(t), mocks.NewMockCollaborator(t), nil, mocks.NewMockClock(t))

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	a := snapshotAt(domain.PulseWorking, now)
	a.Log = []domain.Activity{agentMessage("a-1", now)}
	b := &domain.Session{ID: "sessions/def456", RemoteID: "rem-2", Task: "add dark mode", Pulse: domain.PulseCompleted, UpdatedAt: now}

	reader.EXPECT().List(mockAnyContext()).Return([]*domain.Session{a, b}, nil)

	summaries, err := service.List(context.Background())
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, 1, summaries[0].Activities)
	assert.Equal(t, domain.SessionID("sessions/def456"), summaries[1].ID)
}

func TestForgetDelegatesToWriter(t *testing.T) {
	writer := mocks.NewMockSessionWriter(t)
	service := NewSessionService(mocks.NewMockSessionReader(t), writer, mocks.NewMockCollaborator(t), nil, mocks.NewMockClock(t))

	writer.EXPECT().Forget(mockAnyContext(), testSessionID).Return(nil)

	require.NoError(t, service.Forget(context.Background(), testSessionID))
}
