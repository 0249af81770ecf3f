package api

import (
	"encoding/json"
	"time"
)

// sessionPayload is the collaborator's session resource.
type sessionPayload struct {
	Name          string              `json:"name"`
	ID            string              `json:"id"`
	Prompt        string              `json:"prompt"`
	State         string              `json:"state"`
	SourceContext sourcePayload       `json:"sourceContext"`
	PullRequest   *pullRequestPayload `json:"pullRequest,omitempty"`
	CreateTime    time.Time           `json:"createTime"`
	UpdateTime    time.Time           `json:"updateTime"`
}

type sourcePayload struct {
	Source         string `json:"source"`
	StartingBranch string `json:"startingBranch"`
}

type pullRequestPayload struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	HeadRef     string `json:"headRef,omitempty"`
	BaseRef     string `json:"baseRef,omitempty"`
}

type activitiesPayload struct {
	Activities []wireActivity `json:"activities"`
}

// wireActivity is one activity resource. Besides the fixed envelope fields
// it carries exactly one shape-specific payload keyed by its name
// (planGenerated, progressUpdated, ...). The API grows new shapes without
// notice, so unknown keys are kept for the mapper's fallback path instead
// of being dropped during decoding.
type wireActivity struct {
	Name        string         `json:"name"`
	ID          string         `json:"id"`
	CreateTime  time.Time      `json:"createTime"`
	Originator  string         `json:"originator"`
	Description string         `json:"description"`
	Artifacts   []wireArtifact `json:"artifacts"`

	payloads map[string]json.RawMessage
}

var activityEnvelopeKeys = map[string]struct{}{
	"name":        {},
	"id":          {},
	"createTime":  {},
	"originator":  {},
	"description": {},
	"artifacts":   {},
}

func (a *wireActivity) UnmarshalJSON(data []byte) error {
	type plain wireActivity
	var envelope plain
	if err := json.Unmarshal(data, &envelope); err != nil {
		return err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	for key := range fields {
		if _, ok := activityEnvelopeKeys[key]; ok {
			delete(fields, key)
		}
	}

	*a = wireActivity(envelope)
	a.payloads = fields
	return nil
}

func (a *wireActivity) payload(key string, out any) bool {
	raw, ok := a.payloads[key]
	if !ok {
		return false
	}
	// Best effort: a malformed payload body degrades to zero values
	// rather than failing the whole activity.
	_ = json.Unmarshal(raw, out)
	return true
}

type progressPayload struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type planGeneratedPayload struct {
	PlanID string            `json:"planId"`
	Steps  []planStepPayload `json:"steps"`
}

type planStepPayload struct {
	ID          string `json:"id"`
	Index       int    `json:"index"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type messagePayload struct {
	Message string `json:"message"`
}

type planApprovedPayload struct {
	PlanID string `json:"planId"`
}

type sessionFailedPayload struct {
	Reason string `json:"reason"`
}

type sessionCreatedPayload struct {
	Prompt string `json:"prompt"`
}

// wireArtifact is a one-of the same way wireActivity is, but the artifact
// set is small enough to decode eagerly.
type wireArtifact struct {
	ChangeSet  *changeSetPayload  `json:"changeSet,omitempty"`
	BashOutput *bashOutputPayload `json:"bashOutput,omitempty"`
	Media      *mediaPayload      `json:"media,omitempty"`
}

type changeSetPayload struct {
	Source   string `json:"source"`
	GitPatch string `json:"gitPatch"`
}

type bashOutputPayload struct {
	Command  string `json:"command"`
	Output   string `json:"output"`
	ExitCode int    `json:"exitCode"`
}

type mediaPayload struct {
	MimeType string `json:"mimeType"`
	Data     []byte `json:"data"`
}

type sendMessageRequest struct {
	Prompt string `json:"prompt"`
}

type approvePlanRequest struct {
	PlanID string `json:"planId"`
}
