package jsonfile

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/bnema/collab-cli/internal/domain"
	"github.com/bnema/collab-cli/internal/ports"
	"github.com/spf13/viper"
)

const (
	configName       = "config"
	configType       = "toml"
	registryPathKey  = "registry.path"
	configDirName    = ".collab"
	registryDirName  = "sessions"
	metadataFileName = "session.json"
	historyFileName  = "activities.jsonl"
	registryFileMode = 0o600
	registryDirMode  = 0o700
	tempFilePattern  = ".session-*.json.tmp"

	// History lines are JSONL and can carry whole git patches.
	maxHistoryLineBytes = 8 << 20
)

// Registry is the on-disk session mirror: one directory per session
// holding a small metadata document and an append-only activity history.
// Corrupt metadata reads as a missing session; corrupt history lines are
// skipped. Neither ever crashes a sync.
type Registry struct {
	root string
	mu   *sync.RWMutex

	// persisted tracks how many log entries are already on disk per
	// session, so Save can append the tail without reading the file.
	persisted map[domain.SessionID]int
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var (
	_ ports.SessionReader = (*Registry)(nil)
	_ ports.SessionWriter = (*Registry)(nil)
)

func NewRegistry(cfg *viper.Viper) (*Registry, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	defaultRoot := filepath.Join(homeDir, configDirName, registryDirName)

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(filepath.Join(homeDir, configDirName))
	cfg.SetDefault(registryPathKey, defaultRoot)

	if err := cfg.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	root := cfg.GetString(registryPathKey)
	if root == "" {
		return nil, errors.New("registry path is empty")
	}
	root, err = filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve registry path: %w", err)
	}
	root = filepath.Clean(root)

	return &Registry{
		root:      root,
		mu:        lockForPath(root),
		persisted: map[domain.SessionID]int{},
	}, nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func (r *Registry) sessionDir(id domain.SessionID) string {
	return filepath.Join(r.root, id.Token())
}

func (r *Registry) Get(ctx context.Context, id domain.SessionID) (*domain.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.load(id)
}

func (r *Registry) List(ctx context.Context) ([]*domain.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	entries, err := os.ReadDir(r.root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read registry directory: %w", err)
	}

	tokens := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			tokens = append(tokens, entry.Name())
		}
	}
	sort.Strings(tokens)

	sessions := make([]*domain.Session, 0, len(tokens))
	for _, token := range tokens {
		session, err := r.load(domain.SessionID("sessions/" + token))
		if err != nil {
			if errors.Is(err, domain.ErrSessionNotFound) {
				continue
			}
			return nil, err
		}
		sessions = append(sessions, session)
	}

	return sessions, nil
}

// load requires the lock to be held.
func (r *Registry) load(id domain.SessionID) (*domain.Session, error) {
	data, err := os.ReadFile(filepath.Join(r.sessionDir(id), metadataFileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("read session metadata: %w", err)
	}

	var schema metadataSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		// Corrupt metadata is treated as a missing mirror; the next
		// refresh rebuilds it from the remote.
		return nil, domain.ErrSessionNotFound
	}
	schema.applyDefaults()
	if err := schema.validate(); err != nil {
		return nil, domain.ErrSessionNotFound
	}

	session := fromMetadata(schema)
	if err := r.loadHistory(session); err != nil {
		return nil, err
	}

	r.persisted[session.ID] = len(session.Log)
	return session, nil
}

func (r *Registry) loadHistory(session *domain.Session) error {
	file, err := os.Open(filepath.Join(r.sessionDir(session.ID), historyFileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open session history: %w", err)
	}
	defer func() { _ = file.Close() }()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), maxHistoryLineBytes)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var env envelope
		if err := json.Unmarshal(line, &env); err != nil {
			continue // torn or corrupt line, skip it
		}
		activity, err := fromEnvelope(env)
		if err != nil {
			continue // unknown type key written by a newer version
		}
		if session.Contains(activity.Core().ID) {
			continue // duplicate from a retried partial append
		}
		session.Log = append(session.Log, activity)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan session history: %w", err)
	}
	return nil
}

func (r *Registry) Save(ctx context.Context, session *domain.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	dir := r.sessionDir(session.ID)
	if err := os.MkdirAll(dir, registryDirMode); err != nil {
		return fmt.Errorf("create session directory: %w", err)
	}

	if err := r.writeMetadata(dir, session); err != nil {
		return err
	}

	from := r.persisted[session.ID]
	if from > len(session.Log) {
		from = len(session.Log)
	}
	if err := r.appendHistory(dir, session.Log[from:]); err != nil {
		return err
	}

	r.persisted[session.ID] = len(session.Log)
	return nil
}

// writeMetadata replaces the metadata document atomically so a cancelled
// save can never leave it half-written.
func (r *Registry) writeMetadata(dir string, session *domain.Session) error {
	data, err := json.MarshalIndent(toMetadata(session), "", "  ")
	if err != nil {
		return fmt.Errorf("encode session metadata: %w", err)
	}
	data = append(data, '\n')

	tempFile, err := os.CreateTemp(dir, tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp metadata file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp metadata file: %w", err)
	}
	if err := tempFile.Chmod(registryFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp metadata file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp metadata file: %w", err)
	}

	if err := os.Rename(tempName, filepath.Join(dir, metadataFileName)); err != nil {
		return fmt.Errorf("replace metadata file: %w", err)
	}
	cleanup = false
	return nil
}

// appendHistory opens the history file for append only and writes the new
// envelopes. It never reads what is already there, whatever the history
// length; a duplicate line from a retried append is harmless because
// loading dedups by id.
func (r *Registry) appendHistory(dir string, activities []domain.Activity) error {
	if len(activities) == 0 {
		return nil
	}

	file, err := os.OpenFile(filepath.Join(dir, historyFileName), os.O_APPEND|os.O_CREATE|os.O_WRONLY, registryFileMode)
	if err != nil {
		return fmt.Errorf("open session history for append: %w", err)
	}

	writer := bufio.NewWriter(file)
	for _, activity := range activities {
		env, err := toEnvelope(activity)
		if err != nil {
			_ = file.Close()
			return fmt.Errorf("map activity for persistence: %w", err)
		}
		line, err := json.Marshal(env)
		if err != nil {
			_ = file.Close()
			return fmt.Errorf("encode activity envelope: %w", err)
		}
		if _, err := writer.Write(append(line, '\n')); err != nil {
			_ = file.Close()
			return fmt.Errorf("append session history: %w", err)
		}
	}
	if err := writer.Flush(); err != nil {
		_ = file.Close()
		return fmt.Errorf("flush session history: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close session history: %w", err)
	}
	return nil
}

func (r *Registry) Forget(ctx context.Context, id domain.SessionID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	dir := r.sessionDir(id)
	if _, err := os.Stat(dir); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.ErrSessionNotFound
		}
		return fmt.Errorf("stat session directory: %w", err)
	}

	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("remove session directory: %w", err)
	}
	delete(r.persisted, id)
	return nil
}
