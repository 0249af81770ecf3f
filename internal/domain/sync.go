package domain

import "time"

// Synchronizer merges authoritative remote state into the local mirror. It
// performs no I/O; it is the only code allowed to mutate an existing
// Session.
type Synchronizer struct {
	prs PullRequestPolicy
}

func NewSynchronizer(prs PullRequestPolicy) *Synchronizer {
	if prs == nil {
		prs = RemoteFirstPolicy{}
	}
	return &Synchronizer{prs: prs}
}

// Synchronize overwrites the pulse, resolves the pull request, and appends
// every fresh activity whose id is not already in the log. Appended
// activities are never mutated or removed afterwards.
func (s *Synchronizer) Synchronize(local *Session, remote *Session, fresh []Activity) {
	local.Pulse = remote.Pulse
	if remote.RemoteID != "" {
		local.RemoteID = remote.RemoteID
	}
	local.PullRequest = s.prs.ResolvePullRequest(local.PullRequest, remote.PullRequest)
	local.UpdatedAt = remote.UpdatedAt

	for _, activity := range fresh {
		if local.Contains(activity.Core().ID) {
			continue
		}
		local.Log = append(local.Log, activity)
	}

	local.SolutionPatch = local.UnsubmittedSolution()
}

// Watermark returns the maximum timestamp across the session log. The
// second return is false when the log is empty, which forces a full
// initial fetch instead of an incremental one.
func Watermark(session *Session) (time.Time, bool) {
	if session == nil || len(session.Log) == 0 {
		return time.Time{}, false
	}

	var max time.Time
	for _, entry := range session.Log {
		if ts := entry.Core().Timestamp; ts.After(max) {
			max = ts
		}
	}
	return max, true
}
