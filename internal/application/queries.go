package application

import (
	"time"

	"github.com/bnema/collab-cli/internal/domain"
)

// RefreshResult is what the presentation layer renders after a refresh
// pass. The core never writes to a display surface itself.
type RefreshResult struct {
	SessionID              domain.SessionID
	Pulse                  domain.Pulse
	State                  string
	LastActivity           string
	PullRequest            *domain.PullRequest
	Warning                string
	HasUnsubmittedSolution bool
	Session                *domain.Session
}

// SessionSummary is one row of `collab list`.
type SessionSummary struct {
	ID         domain.SessionID
	Task       string
	Pulse      domain.Pulse
	UpdatedAt  time.Time
	Activities int
}

func stateLine(session *domain.Session) string {
	switch session.Pulse {
	case domain.PulseQueued:
		return "queued, waiting for an agent"
	case domain.PulsePlanning:
		return "agent is drafting a plan"
	case domain.PulseAwaitingApproval:
		return "plan ready, awaiting your approval"
	case domain.PulseWorking:
		return "agent is working"
	case domain.PulsePaused:
		return "paused"
	case domain.PulseCompleted:
		if session.UnsubmittedSolution() != nil {
			return "completed, patch not yet submitted"
		}
		return "completed"
	case domain.PulseFailed:
		return "failed"
	default:
		return "status unknown"
	}
}

func resultFromSession(session *domain.Session, warning string) RefreshResult {
	result := RefreshResult{
		SessionID:              session.ID,
		Pulse:                  session.Pulse,
		State:                  stateLine(session),
		PullRequest:            session.PullRequest,
		Warning:                warning,
		HasUnsubmittedSolution: session.UnsubmittedSolution() != nil,
		Session:                session,
	}
	if last := session.LastSignificant(); last != nil {
		result.LastActivity = last.Summarize()
	}
	return result
}
