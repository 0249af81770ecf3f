package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/bnema/collab-cli/internal/domain"
	"github.com/bnema/collab-cli/internal/ports"
)

const maxResponseBytes = 8 << 20

// Client talks to the collaborator's HTTP API and implements the
// Collaborator port. Everything transport-specific (statuses, headers,
// timeouts) stays behind it; callers only ever see the domain sentinels.
type Client struct {
	BaseURL        string
	Token          string
	HTTPClient     *http.Client
	RequestTimeout time.Duration

	mapper *Mapper
}

var _ ports.Collaborator = (*Client)(nil)

func NewClient(baseURL, token string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		BaseURL:        baseURL,
		Token:          token,
		HTTPClient:     httpClient,
		RequestTimeout: 30 * time.Second,
		mapper:         NewMapper(),
	}
}

func (c *Client) FetchSnapshot(ctx context.Context, id domain.SessionID) (*domain.Session, error) {
	var payload sessionPayload
	if err := c.get(ctx, c.sessionURL(id), &payload); err != nil {
		return nil, fmt.Errorf("fetch session snapshot: %w", err)
	}
	return sessionFromPayload(id, payload), nil
}

func (c *Client) FetchActivitiesSince(ctx context.Context, id domain.SessionID, since *time.Time) ([]domain.Activity, error) {
	endpoint := c.sessionURL(id) + "/activities"
	if since != nil {
		endpoint += "?sinceTime=" + url.QueryEscape(since.UTC().Format(time.RFC3339Nano))
	}

	var payload activitiesPayload
	if err := c.get(ctx, endpoint, &payload); err != nil {
		return nil, fmt.Errorf("fetch session activities: %w", err)
	}
	return c.mapper.MapAll(payload.Activities), nil
}

func (c *Client) SendMessage(ctx context.Context, id domain.SessionID, text string) error {
	if err := c.post(ctx, c.sessionURL(id)+":sendMessage", sendMessageRequest{Prompt: text}); err != nil {
		return fmt.Errorf("send session message: %w", err)
	}
	return nil
}

func (c *Client) ApprovePlan(ctx context.Context, id domain.SessionID, planID string) error {
	if err := c.post(ctx, c.sessionURL(id)+":approvePlan", approvePlanRequest{PlanID: planID}); err != nil {
		return fmt.Errorf("approve session plan: %w", err)
	}
	return nil
}

func (c *Client) sessionURL(id domain.SessionID) string {
	return fmt.Sprintf("%s/v1alpha/%s", c.BaseURL, id)
}

func (c *Client) get(ctx context.Context, endpoint string, out any) error {
	requestCtx, cancel := c.requestContext(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(requestCtx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	c.authorize(req)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrRemoteUnreachable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := classifyStatus(resp.StatusCode); err != nil {
		return err
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) post(ctx context.Context, endpoint string, body any) error {
	encoded, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	requestCtx, cancel := c.requestContext(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(requestCtx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrRemoteUnreachable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	return classifyStatus(resp.StatusCode)
}

func (c *Client) authorize(req *http.Request) {
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
}

func (c *Client) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.RequestTimeout)
}

// classifyStatus reduces HTTP statuses to the binary the core understands:
// missing sessions, an unreachable service, or success.
func classifyStatus(status int) error {
	switch {
	case status >= http.StatusOK && status < http.StatusMultipleChoices:
		return nil
	case status == http.StatusNotFound:
		return domain.ErrSessionNotFound
	case status >= http.StatusInternalServerError:
		return fmt.Errorf("%w: remote returned status %d", domain.ErrRemoteUnreachable, status)
	default:
		return fmt.Errorf("remote returned status %d", status)
	}
}

func sessionFromPayload(id domain.SessionID, payload sessionPayload) *domain.Session {
	session := &domain.Session{
		ID:       id,
		RemoteID: payload.ID,
		Task:     payload.Prompt,
		Source: domain.Source{
			Repository:     payload.SourceContext.Source,
			StartingBranch: payload.SourceContext.StartingBranch,
		},
		Pulse:     pulseFromState(payload.State),
		CreatedAt: payload.CreateTime,
		UpdatedAt: payload.UpdateTime,
	}
	if payload.Name != "" {
		session.ID = domain.SessionID(payload.Name)
	}
	if payload.PullRequest != nil {
		session.PullRequest = &domain.PullRequest{
			URL:         payload.PullRequest.URL,
			Title:       payload.PullRequest.Title,
			Description: payload.PullRequest.Description,
			HeadRef:     payload.PullRequest.HeadRef,
			BaseRef:     payload.PullRequest.BaseRef,
		}
	}
	return session
}

func pulseFromState(state string) domain.Pulse {
	switch state {
	case "QUEUED":
		return domain.PulseQueued
	case "PLANNING":
		return domain.PulsePlanning
	case "AWAITING_PLAN_APPROVAL":
		return domain.PulseAwaitingApproval
	case "IN_PROGRESS":
		return domain.PulseWorking
	case "PAUSED":
		return domain.PulsePaused
	case "COMPLETED":
		return domain.PulseCompleted
	case "FAILED":
		return domain.PulseFailed
	default:
		return domain.PulseUnknown
	}
}
