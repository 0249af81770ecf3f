package jsonfile

import (
	"fmt"
	"time"

	"github.com/bnema/collab-cli/internal/domain"
)

const currentMetadataVersion = 1

// metadataSchema is the small per-session document rewritten whole on
// every save. The activity log never lives here.
type metadataSchema struct {
	Version        int                `json:"version"`
	ID             string             `json:"id"`
	RemoteID       string             `json:"remoteId"`
	Task           string             `json:"task"`
	Repository     string             `json:"repository"`
	StartingBranch string             `json:"startingBranch,omitempty"`
	Pulse          string             `json:"pulse"`
	PullRequest    *pullRequestSchema `json:"pullRequest,omitempty"`
	CreatedAt      time.Time          `json:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt"`
}

type pullRequestSchema struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	HeadRef     string `json:"headRef,omitempty"`
	BaseRef     string `json:"baseRef,omitempty"`
}

func (s *metadataSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentMetadataVersion
	}
	if s.Pulse == "" {
		s.Pulse = string(domain.PulseUnknown)
	}
}

func (s metadataSchema) validate() error {
	if s.Version > currentMetadataVersion {
		return fmt.Errorf("unsupported session metadata version %d (current %d)", s.Version, currentMetadataVersion)
	}
	if s.ID == "" {
		return fmt.Errorf("session metadata is missing its id")
	}
	return nil
}

func toMetadata(session *domain.Session) metadataSchema {
	schema := metadataSchema{
		Version:        currentMetadataVersion,
		ID:             string(session.ID),
		RemoteID:       session.RemoteID,
		Task:           session.Task,
		Repository:     session.Source.Repository,
		StartingBranch: session.Source.StartingBranch,
		Pulse:          string(session.Pulse),
		CreatedAt:      session.CreatedAt,
		UpdatedAt:      session.UpdatedAt,
	}
	if session.PullRequest != nil {
		schema.PullRequest = &pullRequestSchema{
			URL:         session.PullRequest.URL,
			Title:       session.PullRequest.Title,
			Description: session.PullRequest.Description,
			HeadRef:     session.PullRequest.HeadRef,
			BaseRef:     session.PullRequest.BaseRef,
		}
	}
	return schema
}

func fromMetadata(schema metadataSchema) *domain.Session {
	session := &domain.Session{
		ID:       domain.SessionID(schema.ID),
		RemoteID: schema.RemoteID,
		Task:     schema.Task,
		Source: domain.Source{
			Repository:     schema.Repository,
			StartingBranch: schema.StartingBranch,
		},
		Pulse:     domain.Pulse(schema.Pulse),
		CreatedAt: schema.CreatedAt,
		UpdatedAt: schema.UpdatedAt,
	}
	if schema.PullRequest != nil {
		session.PullRequest = &domain.PullRequest{
			URL:         schema.PullRequest.URL,
			Title:       schema.PullRequest.Title,
			Description: schema.PullRequest.Description,
			HeadRef:     schema.PullRequest.HeadRef,
			BaseRef:     schema.PullRequest.BaseRef,
		}
	}
	return session
}
