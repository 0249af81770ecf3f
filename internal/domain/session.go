package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type SessionID string

const sessionIDPrefix = "sessions/"

// ParseSessionID accepts either a full "sessions/<token>" identifier or a
// bare token, which it normalizes into the namespaced form.
func ParseSessionID(raw string) (SessionID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errors.New("session id is empty")
	}
	if !strings.HasPrefix(raw, sessionIDPrefix) {
		return SessionID(sessionIDPrefix + raw), nil
	}
	if raw == sessionIDPrefix {
		return "", fmt.Errorf("session id %q has an empty token", raw)
	}
	return SessionID(raw), nil
}

func (id SessionID) Token() string {
	return strings.TrimPrefix(string(id), sessionIDPrefix)
}

// Pulse is the collaborator's coarse status for a session.
type Pulse string

const (
	PulseQueued           Pulse = "queued"
	PulsePlanning         Pulse = "planning"
	PulseAwaitingApproval Pulse = "awaiting_approval"
	PulseWorking          Pulse = "working"
	PulsePaused           Pulse = "paused"
	PulseCompleted        Pulse = "completed"
	PulseFailed           Pulse = "failed"
	PulseUnknown          Pulse = "unknown"
)

const sourceCatalogPrefix = "sources/"

// Source identifies the repository and branch a session works against.
// Repositories live in a namespaced catalog owned by the collaborator.
type Source struct {
	Repository     string
	StartingBranch string
}

func NewSource(repository, startingBranch string) (Source, error) {
	if !strings.HasPrefix(repository, sourceCatalogPrefix) {
		return Source{}, fmt.Errorf("repository %q is not in the %q catalog", repository, sourceCatalogPrefix)
	}
	return Source{Repository: repository, StartingBranch: startingBranch}, nil
}

type PullRequest struct {
	URL         string
	Title       string
	Description string
	HeadRef     string
	BaseRef     string
}

// Session is the local mirror of one unit of collaborator work. Once
// created it is mutated only by the Synchronizer; the log is append-only
// and deduplicated by activity id.
type Session struct {
	ID            SessionID
	RemoteID      string
	Task          string
	Source        Source
	Pulse         Pulse
	PullRequest   *PullRequest
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Log           []Activity
	SolutionPatch *ChangeSet
}

func NewSession(id SessionID, remoteID, task string, source Source, createdAt time.Time) (*Session, error) {
	if id == "" {
		return nil, errors.New("session id is required")
	}
	if remoteID == "" {
		return nil, errors.New("session remote id is required")
	}
	if strings.TrimSpace(task) == "" {
		return nil, errors.New("session task is required")
	}

	return &Session{
		ID:        id,
		RemoteID:  remoteID,
		Task:      task,
		Source:    source,
		Pulse:     PulseUnknown,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}, nil
}

// Contains reports whether an activity with the given id is already in the log.
func (s *Session) Contains(id ActivityID) bool {
	for _, entry := range s.Log {
		if entry.Core().ID == id {
			return true
		}
	}
	return false
}

// LastSignificant returns the most recently appended significant activity.
func (s *Session) LastSignificant() Activity {
	for i := len(s.Log) - 1; i >= 0; i-- {
		if s.Log[i].Significant() {
			return s.Log[i]
		}
	}
	return nil
}

// UnsubmittedSolution returns the patch produced by the latest completion
// activity when no pull request has been resolved for the session yet.
func (s *Session) UnsubmittedSolution() *ChangeSet {
	if s.PullRequest != nil {
		return nil
	}
	for i := len(s.Log) - 1; i >= 0; i-- {
		completion, ok := s.Log[i].(Completion)
		if !ok {
			continue
		}
		for _, artifact := range completion.Core().Evidence {
			if change, ok := artifact.(ChangeSet); ok {
				return &change
			}
		}
	}
	return nil
}
