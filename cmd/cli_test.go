package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeCLI(t *testing.T, home string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", home)

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

// startStubRemote serves one working session with a small activity log
// and accepts message/approval posts.
func startStubRemote(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/v1alpha/sessions/abc123", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{
			"name": "sessions/abc123",
			"id": "rem-abc123",
			"prompt": "fix the flaky scheduler test",
			"state": "IN_PROGRESS",
			"sourceContext": {"source": "sources/github/bnema/demo", "startingBranch": "main"},
			"createTime": "2026-03-14T09:00:00Z",
			"updateTime": "2026-03-14T10:00:00Z"
		}`)
	})
	mux.HandleFunc("/v1alpha/sessions/abc123/activities", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"activities": [
			{
				"name": "sessions/abc123/activities/act-1",
				"id": "act-1",
				"createTime": "2026-03-14T09:05:00Z",
				"originator": "AGENT",
				"planGenerated": {"planId": "plan-7", "steps": [
					{"id": "step-1", "index": 0, "title": "Reproduce the flake"}
				]}
			},
			{
				"name": "sessions/abc123/activities/act-2",
				"id": "act-2",
				"createTime": "2026-03-14T09:30:00Z",
				"originator": "AGENT",
				"progressUpdated": {"title": "Running the test suite", "description": "go test ./... under -race"}
			},
			{
				"name": "sessions/abc123/activities/act-3",
				"id": "act-3",
				"createTime": "2026-03-14T09:45:00Z",
				"originator": "AGENT",
				"agentMessaged": {"message": "halfway there"}
			}
		]}`)
	})
	mux.HandleFunc("/v1alpha/sessions/abc123:sendMessage", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("/v1alpha/sessions/abc123:approvePlan", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	t.Setenv("COLLAB_REMOTE_BASE_URL", server.URL)
	return server
}

func deadRemote(t *testing.T) {
	t.Helper()

	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()
	t.Setenv("COLLAB_REMOTE_BASE_URL", server.URL)
}

func TestStatusRefreshesFromRemote(t *testing.T) {
	home := t.TempDir()
	startStubRemote(t)

	stdout, _, err := executeCLI(t, home, "status", "abc123")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Session abc123")
	assert.Contains(t, stdout, "agent is working")
	assert.Contains(t, stdout, "last activity: halfway there")
	assert.Contains(t, stdout, "task: fix the flaky scheduler test")
}

func TestStatusJSONOutput(t *testing.T) {
	home := t.TempDir()
	startStubRemote(t)

	stdout, _, err := executeCLI(t, home, "status", "abc123", "--json")
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(stdout)))
	assert.Contains(t, stdout, `"Pulse": "working"`)
	assert.Contains(t, stdout, `"SessionID": "sessions/abc123"`)
}

func TestStatusUnreachableShowsCachedState(t *testing.T) {
	home := t.TempDir()
	startStubRemote(t)

	_, _, err := executeCLI(t, home, "status", "abc123")
	require.NoError(t, err)

	deadRemote(t)

	stdout, _, err := executeCLI(t, home, "status", "abc123")
	require.NoError(t, err)
	assert.Contains(t, stdout, "agent is working")
	assert.Contains(t, stdout, "remote collaborator unreachable; showing cached state")
}

func TestStatusUnreachableWithoutCacheFails(t *testing.T) {
	home := t.TempDir()
	deadRemote(t)

	_, _, err := executeCLI(t, home, "status", "abc123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session not found")
}

func TestListEmpty(t *testing.T) {
	home := t.TempDir()
	startStubRemote(t)

	stdout, _, err := executeCLI(t, home, "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "sessions: 0")
	assert.Contains(t, stdout, "No sessions mirrored yet")
}

func TestListAfterStatus(t *testing.T) {
	home := t.TempDir()
	startStubRemote(t)

	_, _, err := executeCLI(t, home, "status", "abc123")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "sessions: 1")
	assert.Contains(t, stdout, "abc123")
	assert.Contains(t, stdout, "working")
}

func TestLogShowsMirroredHistory(t *testing.T) {
	home := t.TempDir()
	startStubRemote(t)

	_, _, err := executeCLI(t, home, "status", "abc123")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, "log", "abc123", "--all")
	require.NoError(t, err)
	assert.Contains(t, stdout, "activities: 3")
	assert.Contains(t, stdout, "generated a plan with 1 steps")
	assert.Contains(t, stdout, "halfway there")

	// Without --all only significant entries show; the progress update
	// carries reasoning so it stays.
	stdout, _, err = executeCLI(t, home, "log", "abc123")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Running the test suite")
}

func TestLogUnknownSessionFails(t *testing.T) {
	home := t.TempDir()
	startStubRemote(t)

	_, _, err := executeCLI(t, home, "log", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session not found")
}

func TestMessageRequiresTextFlag(t *testing.T) {
	home := t.TempDir()
	startStubRemote(t)

	_, _, err := executeCLI(t, home, "message", "abc123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag(s) \"text\" not set")
}

func TestMessageSendsAndMirrors(t *testing.T) {
	home := t.TempDir()
	startStubRemote(t)

	_, _, err := executeCLI(t, home, "status", "abc123")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, "message", "abc123", "--text", "please use table tests")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Message sent to session abc123")

	stdout, _, err = executeCLI(t, home, "log", "abc123", "--all")
	require.NoError(t, err)
	assert.Contains(t, stdout, "please use table tests")
}

func TestApproveLatestPlan(t *testing.T) {
	home := t.TempDir()
	startStubRemote(t)

	_, _, err := executeCLI(t, home, "status", "abc123")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, "approve", "abc123")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Approved plan plan-7 for session abc123")
}

func TestApproveWithoutPlanFails(t *testing.T) {
	home := t.TempDir()
	startStubRemote(t)

	_, _, err := executeCLI(t, home, "approve", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session not found")
}

func TestForget(t *testing.T) {
	home := t.TempDir()
	startStubRemote(t)

	_, _, err := executeCLI(t, home, "status", "abc123")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, "forget", "abc123")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Forgot session abc123")

	_, _, err = executeCLI(t, home, "forget", "abc123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session not found")
}

func TestConfigInitWritesConfig(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "config", "init")
	require.NoError(t, err)

	configPath := filepath.Join(home, ".collab", "config.toml")
	assert.Contains(t, stdout, configPath)

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[registry]")
	assert.Contains(t, string(data), "[remote]")
	assert.Contains(t, string(data), "base_url")

	_, _, err = executeCLI(t, home, "config", "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestVersionPrintsVersion(t *testing.T) {
	home := t.TempDir()

	stdout, _, err := executeCLI(t, home, "version")
	require.NoError(t, err)
	assert.NotEmpty(t, stdout)
}
