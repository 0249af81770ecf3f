package jsonfile

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/collab-cli/internal/domain"
)

func newTestRegistry(t *testing.T) (*Registry, string) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	root := t.TempDir()
	cfg := viper.New()
	cfg.Set(registryPathKey, root)

	registry, err := NewRegistry(cfg)
	require.NoError(t, err)
	return registry, root
}

func testSession(t *testing.T, token string) *domain.Session {
	t.Helper()
	source, err := domain.NewSource("sources/github/bnema/demo", "main")
	require.NoError(t, err)

	session, err := domain.NewSession(
		domain.SessionID("sessions/"+token),
		"remote-"+token,
		"fix the flaky scheduler test",
		source,
		time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return session
}

func toEnvelopeLine(activity domain.Activity) (string, error) {
	env, err := toEnvelope(activity)
	if err != nil {
		return "", err
	}
	data, err := json.Marshal(env)
	if err != nil {
		return "", err
	}
	return string(data) + "\n", nil
}

func TestRegistrySaveLoadRoundTrip(t *testing.T) {
	registry, _ := newTestRegistry(t)
	ctx := context.Background()

	session := testSession(t, "abc123")
	session.Pulse = domain.PulseWorking
	session.UpdatedAt = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	session.PullRequest = &domain.PullRequest{URL: "https://example.com/pr/1", Title: "Fix scheduler"}
	session.Log = []domain.Activity{
		domain.Progress{ActivityCore: testCore("act-1"), Intent: "Reading the test"},
		domain.Message{ActivityCore: testCore("act-2"), Text: "prefer table tests"},
	}

	require.NoError(t, registry.Save(ctx, session))

	loaded, err := registry.Get(ctx, session.ID)
	require.NoError(t, err)

	assert.Equal(t, session.ID, loaded.ID)
	assert.Equal(t, session.RemoteID, loaded.RemoteID)
	assert.Equal(t, session.Task, loaded.Task)
	assert.Equal(t, session.Source, loaded.Source)
	assert.Equal(t, domain.PulseWorking, loaded.Pulse)
	assert.Equal(t, session.PullRequest, loaded.PullRequest)
	assert.True(t, session.CreatedAt.Equal(loaded.CreatedAt))
	assert.True(t, session.UpdatedAt.Equal(loaded.UpdatedAt))
	assert.Equal(t, session.Log, loaded.Log)
}

func TestRegistryGetMissingSession(t *testing.T) {
	registry, _ := newTestRegistry(t)

	_, err := registry.Get(context.Background(), domain.SessionID("sessions/nope"))
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestRegistryCorruptMetadataReadsAsMissing(t *testing.T) {
	registry, root := newTestRegistry(t)
	ctx := context.Background()

	session := testSession(t, "abc123")
	require.NoError(t, registry.Save(ctx, session))

	path := filepath.Join(root, "abc123", metadataFileName)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), registryFileMode))

	_, err := registry.Get(ctx, session.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestRegistryFutureMetadataVersionReadsAsMissing(t *testing.T) {
	registry, root := newTestRegistry(t)
	ctx := context.Background()

	session := testSession(t, "abc123")
	require.NoError(t, registry.Save(ctx, session))

	path := filepath.Join(root, "abc123", metadataFileName)
	require.NoError(t, os.WriteFile(path, []byte(`{"version": 99, "id": "sessions/abc123"}`), registryFileMode))

	_, err := registry.Get(ctx, session.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestRegistrySkipsCorruptHistoryLines(t *testing.T) {
	registry, root := newTestRegistry(t)
	ctx := context.Background()

	session := testSession(t, "abc123")
	session.Log = []domain.Activity{
		domain.Message{ActivityCore: testCore("act-1"), Text: "first"},
	}
	require.NoError(t, registry.Save(ctx, session))

	good, err := toEnvelopeLine(domain.Message{ActivityCore: testCore("act-2"), Text: "second"})
	require.NoError(t, err)

	history := filepath.Join(root, "abc123", historyFileName)
	file, err := os.OpenFile(history, os.O_APPEND|os.O_WRONLY, registryFileMode)
	require.NoError(t, err)
	_, err = file.WriteString("{torn line without a clos\n" +
		`{"type":"TELEMETRY","id":"act-x","payloadJson":"{}"}` + "\n" +
		"\n" +
		good)
	require.NoError(t, err)
	require.NoError(t, file.Close())

	loaded, err := registry.Get(ctx, session.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Log, 2)
	assert.Equal(t, domain.ActivityID("act-1"), loaded.Log[0].Core().ID)
	assert.Equal(t, domain.ActivityID("act-2"), loaded.Log[1].Core().ID)
}

func TestRegistryDedupsRetriedAppends(t *testing.T) {
	registry, root := newTestRegistry(t)
	ctx := context.Background()

	session := testSession(t, "abc123")
	session.Log = []domain.Activity{
		domain.Message{ActivityCore: testCore("act-1"), Text: "once"},
	}
	require.NoError(t, registry.Save(ctx, session))

	// Simulate a retried partial append writing the same line twice.
	line, err := toEnvelopeLine(session.Log[0])
	require.NoError(t, err)
	history := filepath.Join(root, "abc123", historyFileName)
	file, err := os.OpenFile(history, os.O_APPEND|os.O_WRONLY, registryFileMode)
	require.NoError(t, err)
	_, err = file.WriteString(line)
	require.NoError(t, err)
	require.NoError(t, file.Close())

	loaded, err := registry.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Len(t, loaded.Log, 1)
}

// Save must only ever append to the history file. Replacing its contents
// out of band and saving again proves nothing reads or rewrites the
// prefix.
func TestRegistrySaveNeverReadsHistory(t *testing.T) {
	registry, root := newTestRegistry(t)
	ctx := context.Background()

	session := testSession(t, "abc123")
	session.Log = []domain.Activity{
		domain.Message{ActivityCore: testCore("act-1"), Text: "first"},
	}
	require.NoError(t, registry.Save(ctx, session))

	sentinel := "SENTINEL: not json at all\n"
	history := filepath.Join(root, "abc123", historyFileName)
	require.NoError(t, os.WriteFile(history, []byte(sentinel), registryFileMode))

	session.Log = append(session.Log, domain.Message{ActivityCore: testCore("act-2"), Text: "second"})
	require.NoError(t, registry.Save(ctx, session))

	data, err := os.ReadFile(history)
	require.NoError(t, err)
	content := string(data)

	assert.True(t, strings.HasPrefix(content, sentinel))
	tail := strings.TrimPrefix(content, sentinel)
	assert.Equal(t, 1, strings.Count(tail, "\n"))
	assert.Contains(t, tail, `"act-2"`)
	assert.NotContains(t, tail, `"act-1"`)
}

func TestRegistrySaveWithUnchangedLogAppendsNothing(t *testing.T) {
	registry, root := newTestRegistry(t)
	ctx := context.Background()

	session := testSession(t, "abc123")
	session.Log = []domain.Activity{
		domain.Message{ActivityCore: testCore("act-1"), Text: "only"},
	}
	require.NoError(t, registry.Save(ctx, session))

	history := filepath.Join(root, "abc123", historyFileName)
	before, err := os.ReadFile(history)
	require.NoError(t, err)

	session.Pulse = domain.PulsePaused
	require.NoError(t, registry.Save(ctx, session))

	after, err := os.ReadFile(history)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestRegistryList(t *testing.T) {
	registry, root := newTestRegistry(t)
	ctx := context.Background()

	require.NoError(t, registry.Save(ctx, testSession(t, "zz999")))
	require.NoError(t, registry.Save(ctx, testSession(t, "aa111")))

	// A directory with corrupt metadata is skipped, not fatal.
	broken := filepath.Join(root, "broken")
	require.NoError(t, os.MkdirAll(broken, registryDirMode))
	require.NoError(t, os.WriteFile(filepath.Join(broken, metadataFileName), []byte("junk"), registryFileMode))

	sessions, err := registry.List(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, domain.SessionID("sessions/aa111"), sessions[0].ID)
	assert.Equal(t, domain.SessionID("sessions/zz999"), sessions[1].ID)
}

func TestRegistryListEmptyRegistry(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := viper.New()
	cfg.Set(registryPathKey, filepath.Join(t.TempDir(), "never-created"))
	registry, err := NewRegistry(cfg)
	require.NoError(t, err)

	sessions, err := registry.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestRegistryForget(t *testing.T) {
	registry, root := newTestRegistry(t)
	ctx := context.Background()

	session := testSession(t, "abc123")
	require.NoError(t, registry.Save(ctx, session))

	require.NoError(t, registry.Forget(ctx, session.ID))
	_, err := os.Stat(filepath.Join(root, "abc123"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	assert.ErrorIs(t, registry.Forget(ctx, session.ID), domain.ErrSessionNotFound)
}

func TestRegistryDefaultRootUnderHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	registry, err := NewRegistry(nil)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, configDirName, registryDirName), registry.root)
}
