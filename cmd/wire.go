package cmd

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	sessionrender "github.com/bnema/collab-cli/internal/adapters/render/session"
	"github.com/bnema/collab-cli/internal/adapters/remote/api"
	"github.com/bnema/collab-cli/internal/adapters/repo/jsonfile"
	"github.com/bnema/collab-cli/internal/application"
	"github.com/bnema/collab-cli/internal/domain"
	"github.com/bnema/collab-cli/internal/ports"
	"github.com/spf13/viper"
)

const (
	remoteBaseURLKey     = "remote.base_url"
	remoteTokenKey       = "remote.token"
	defaultRemoteBaseURL = "https://collaborator.googleapis.com"
)

type app struct {
	refresh  *application.RefreshService
	sessions *application.SessionService

	statusRenderer func(application.RefreshResult, sessionrender.RenderOptions) (string, error)
	listRenderer   func([]application.SessionSummary, sessionrender.RenderOptions) (string, error)
	logRenderer    func(*domain.Session, sessionrender.RenderOptions) (string, error)

	now func() time.Time
}

func wireApp() (*app, error) {
	cfg := viper.New()
	cfg.SetEnvPrefix("COLLAB")
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()
	cfg.SetDefault(remoteBaseURLKey, defaultRemoteBaseURL)

	registry, err := jsonfile.NewRegistry(cfg)
	if err != nil {
		return nil, fmt.Errorf("wire session registry: %w", err)
	}

	client := api.NewClient(
		strings.TrimRight(cfg.GetString(remoteBaseURLKey), "/"),
		cfg.GetString(remoteTokenKey),
		http.DefaultClient,
	)

	sync := domain.NewSynchronizer(domain.RemoteFirstPolicy{})
	clock := ports.SystemClock{}

	return &app{
		refresh:        application.NewRefreshService(registry, registry, client, sync, clock),
		sessions:       application.NewSessionService(registry, registry, client, sync, clock),
		statusRenderer: sessionrender.RenderStatus,
		listRenderer:   sessionrender.RenderList,
		logRenderer:    sessionrender.RenderLog,
		now:            time.Now,
	}, nil
}
