package domain

// LatestPlan returns the planning activity with the greatest timestamp, or
// nil when the log holds none. Ties break last-inserted-wins: the scan
// replaces the candidate on equal timestamps, so of two plans stamped
// identically the one appended later is returned.
func LatestPlan(activities []Activity) *Planning {
	var latest *Planning
	for _, entry := range activities {
		plan, ok := entry.(Planning)
		if !ok {
			continue
		}
		if latest == nil || !plan.Timestamp.Before(latest.Timestamp) {
			p := plan
			latest = &p
		}
	}
	return latest
}

// PullRequestPolicy decides the authoritative pull request from the locally
// cached and remotely reported values. Callers never know which policy is
// active; both share this interface.
type PullRequestPolicy interface {
	ResolvePullRequest(local, remote *PullRequest) *PullRequest
}

// RemoteFirstPolicy is the registry default: the remote value always wins
// when present, and a remote that no longer reports a pull request purges
// the local one. A locally cached PR the remote has dropped is a zombie and
// must never be presented as current.
type RemoteFirstPolicy struct{}

func (RemoteFirstPolicy) ResolvePullRequest(_, remote *PullRequest) *PullRequest {
	return remote
}

// CachedFallbackPolicy keeps the local pull request when the remote is
// silent about one. Used for degraded/offline evaluation only.
type CachedFallbackPolicy struct{}

func (CachedFallbackPolicy) ResolvePullRequest(local, remote *PullRequest) *PullRequest {
	if remote != nil {
		return remote
	}
	return local
}
