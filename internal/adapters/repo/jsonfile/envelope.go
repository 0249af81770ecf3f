package jsonfile

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/bnema/collab-cli/internal/domain"
)

// Stable on-disk discriminators. These are a compatibility contract:
// renaming a domain type must never change them.
const (
	typeKeyProgress        = "PROGRESS"
	typeKeyPlanGenerated   = "PLAN_GENERATED"
	typeKeyMessage         = "MESSAGE"
	typeKeyPlanApproved    = "PLAN_APPROVED"
	typeKeyCompletion      = "COMPLETION"
	typeKeyFailure         = "FAILURE"
	typeKeySessionAssigned = "SESSION_ASSIGNED"
)

// envelope is the persisted wrapper around one activity. Field names are
// bit-exact; payloadJson stays opaque to everything but the matching
// mapper.
type envelope struct {
	Type        string    `json:"type"`
	ID          string    `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	Originator  string    `json:"originator"`
	PayloadJSON string    `json:"payloadJson"`
}

func errUnknownTypeKey(key string) error {
	return fmt.Errorf("unknown activity type key %q", key)
}

// activityMapper persists one domain variant under its stable type key.
type activityMapper interface {
	TypeKey() string
	CanPersist(activity domain.Activity) bool
	EncodePayload(activity domain.Activity) (string, error)
	DecodePayload(core domain.ActivityCore, payloadJSON string) (domain.Activity, error)
}

var activityMappers = []activityMapper{
	progressMapper{},
	planGeneratedMapper{},
	messageMapper{},
	planApprovedMapper{},
	completionMapper{},
	failureMapper{},
	sessionAssignedMapper{},
}

func toEnvelope(activity domain.Activity) (envelope, error) {
	for _, mapper := range activityMappers {
		if !mapper.CanPersist(activity) {
			continue
		}
		payload, err := mapper.EncodePayload(activity)
		if err != nil {
			return envelope{}, fmt.Errorf("encode %s payload: %w", mapper.TypeKey(), err)
		}
		core := activity.Core()
		return envelope{
			Type:        mapper.TypeKey(),
			ID:          string(core.ID),
			Timestamp:   core.Timestamp,
			Originator:  string(core.Originator),
			PayloadJSON: payload,
		}, nil
	}
	return envelope{}, fmt.Errorf("no persistence mapper for activity %T", activity)
}

func fromEnvelope(env envelope) (domain.Activity, error) {
	core := domain.ActivityCore{
		ID:         domain.ActivityID(env.ID),
		Timestamp:  env.Timestamp,
		Originator: persistedOriginator(env.Originator),
	}

	for _, mapper := range activityMappers {
		if mapper.TypeKey() == env.Type {
			return mapper.DecodePayload(core, env.PayloadJSON)
		}
	}
	return nil, errUnknownTypeKey(env.Type)
}

// persistedOriginator is stricter than the wire's: anything unparseable in
// a local file defaults to System, not User.
func persistedOriginator(raw string) domain.Originator {
	switch strings.ToLower(raw) {
	case "user":
		return domain.OriginatorUser
	case "agent":
		return domain.OriginatorAgent
	default:
		return domain.OriginatorSystem
	}
}

// payloadExtras carries the core fields that live inside the opaque
// payload rather than the envelope: the remote resource name, the
// executive summary and the evidence artifacts.
type payloadExtras struct {
	RemoteID string           `json:"remoteId,omitempty"`
	Summary  string           `json:"summary,omitempty"`
	Evidence []artifactSchema `json:"evidence,omitempty"`
}

func extrasOf(core domain.ActivityCore) payloadExtras {
	return payloadExtras{
		RemoteID: core.RemoteID,
		Summary:  core.Summary,
		Evidence: toArtifactSchemas(core.Evidence),
	}
}

func (e payloadExtras) apply(core *domain.ActivityCore) {
	core.RemoteID = e.RemoteID
	core.Summary = e.Summary
	core.Evidence = fromArtifactSchemas(e.Evidence)
}

type artifactSchema struct {
	ChangeSet  *changeSetSchema  `json:"changeSet,omitempty"`
	BashOutput *bashOutputSchema `json:"bashOutput,omitempty"`
	Media      *mediaSchema      `json:"media,omitempty"`
}

type changeSetSchema struct {
	Source   string `json:"source"`
	GitPatch string `json:"gitPatch"`
}

type bashOutputSchema struct {
	Command  string `json:"command"`
	Output   string `json:"output"`
	ExitCode int    `json:"exitCode"`
}

type mediaSchema struct {
	MimeType string `json:"mimeType"`
	Data     []byte `json:"data"`
}

func toArtifactSchemas(artifacts []domain.Artifact) []artifactSchema {
	if len(artifacts) == 0 {
		return nil
	}
	schemas := make([]artifactSchema, 0, len(artifacts))
	for _, artifact := range artifacts {
		switch a := artifact.(type) {
		case domain.ChangeSet:
			schemas = append(schemas, artifactSchema{ChangeSet: &changeSetSchema{Source: a.Source, GitPatch: a.GitPatch}})
		case domain.BashOutput:
			schemas = append(schemas, artifactSchema{BashOutput: &bashOutputSchema{Command: a.Command, Output: a.Output, ExitCode: a.ExitCode}})
		case domain.Media:
			schemas = append(schemas, artifactSchema{Media: &mediaSchema{MimeType: a.MimeType, Data: a.Data}})
		}
	}
	return schemas
}

func fromArtifactSchemas(schemas []artifactSchema) []domain.Artifact {
	if len(schemas) == 0 {
		return nil
	}
	artifacts := make([]domain.Artifact, 0, len(schemas))
	for _, schema := range schemas {
		switch {
		case schema.ChangeSet != nil:
			artifacts = append(artifacts, domain.ChangeSet{Source: schema.ChangeSet.Source, GitPatch: schema.ChangeSet.GitPatch})
		case schema.BashOutput != nil:
			artifacts = append(artifacts, domain.BashOutput{Command: schema.BashOutput.Command, Output: schema.BashOutput.Output, ExitCode: schema.BashOutput.ExitCode})
		case schema.Media != nil:
			artifacts = append(artifacts, domain.Media{MimeType: schema.Media.MimeType, Data: schema.Media.Data})
		}
	}
	return artifacts
}

func encodePayload(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

type progressMapper struct{}

type progressSchema struct {
	payloadExtras
	Intent    string `json:"intent"`
	Reasoning string `json:"reasoning,omitempty"`
}

func (progressMapper) TypeKey() string { return typeKeyProgress }

func (progressMapper) CanPersist(activity domain.Activity) bool {
	_, ok := activity.(domain.Progress)
	return ok
}

func (progressMapper) EncodePayload(activity domain.Activity) (string, error) {
	a := activity.(domain.Progress)
	return encodePayload(progressSchema{
		payloadExtras: extrasOf(a.ActivityCore),
		Intent:        a.Intent,
		Reasoning:     a.Reasoning,
	})
}

func (progressMapper) DecodePayload(core domain.ActivityCore, payloadJSON string) (domain.Activity, error) {
	var schema progressSchema
	if err := json.Unmarshal([]byte(payloadJSON), &schema); err != nil {
		return nil, err
	}
	schema.apply(&core)
	return domain.Progress{ActivityCore: core, Intent: schema.Intent, Reasoning: schema.Reasoning}, nil
}

type planGeneratedMapper struct{}

type planStepSchema struct {
	ID          string `json:"id"`
	Index       int    `json:"index"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

type planGeneratedSchema struct {
	payloadExtras
	PlanID string           `json:"planId"`
	Steps  []planStepSchema `json:"steps,omitempty"`
}

func (planGeneratedMapper) TypeKey() string { return typeKeyPlanGenerated }

func (planGeneratedMapper) CanPersist(activity domain.Activity) bool {
	_, ok := activity.(domain.Planning)
	return ok
}

func (planGeneratedMapper) EncodePayload(activity domain.Activity) (string, error) {
	a := activity.(domain.Planning)
	schema := planGeneratedSchema{payloadExtras: extrasOf(a.ActivityCore), PlanID: a.PlanID}
	for _, step := range a.Steps {
		schema.Steps = append(schema.Steps, planStepSchema{
			ID:          step.ID,
			Index:       step.Index,
			Title:       step.Title,
			Description: step.Description,
		})
	}
	return encodePayload(schema)
}

func (planGeneratedMapper) DecodePayload(core domain.ActivityCore, payloadJSON string) (domain.Activity, error) {
	var schema planGeneratedSchema
	if err := json.Unmarshal([]byte(payloadJSON), &schema); err != nil {
		return nil, err
	}
	schema.apply(&core)

	var steps []domain.PlanStep
	for _, step := range schema.Steps {
		steps = append(steps, domain.PlanStep{
			ID:          step.ID,
			Index:       step.Index,
			Title:       step.Title,
			Description: step.Description,
		})
	}
	return domain.Planning{ActivityCore: core, PlanID: schema.PlanID, Steps: steps}, nil
}

type messageMapper struct{}

type messageSchema struct {
	payloadExtras
	Text string `json:"text"`
}

func (messageMapper) TypeKey() string { return typeKeyMessage }

func (messageMapper) CanPersist(activity domain.Activity) bool {
	_, ok := activity.(domain.Message)
	return ok
}

func (messageMapper) EncodePayload(activity domain.Activity) (string, error) {
	a := activity.(domain.Message)
	return encodePayload(messageSchema{payloadExtras: extrasOf(a.ActivityCore), Text: a.Text})
}

func (messageMapper) DecodePayload(core domain.ActivityCore, payloadJSON string) (domain.Activity, error) {
	var schema messageSchema
	if err := json.Unmarshal([]byte(payloadJSON), &schema); err != nil {
		return nil, err
	}
	schema.apply(&core)
	return domain.Message{ActivityCore: core, Text: schema.Text}, nil
}

type planApprovedMapper struct{}

type planApprovedSchema struct {
	payloadExtras
	PlanID string `json:"planId"`
}

func (planApprovedMapper) TypeKey() string { return typeKeyPlanApproved }

func (planApprovedMapper) CanPersist(activity domain.Activity) bool {
	_, ok := activity.(domain.Approval)
	return ok
}

func (planApprovedMapper) EncodePayload(activity domain.Activity) (string, error) {
	a := activity.(domain.Approval)
	return encodePayload(planApprovedSchema{payloadExtras: extrasOf(a.ActivityCore), PlanID: a.PlanID})
}

func (planApprovedMapper) DecodePayload(core domain.ActivityCore, payloadJSON string) (domain.Activity, error) {
	var schema planApprovedSchema
	if err := json.Unmarshal([]byte(payloadJSON), &schema); err != nil {
		return nil, err
	}
	schema.apply(&core)
	return domain.Approval{ActivityCore: core, PlanID: schema.PlanID}, nil
}

type completionMapper struct{}

type completionSchema struct {
	payloadExtras
}

func (completionMapper) TypeKey() string { return typeKeyCompletion }

func (completionMapper) CanPersist(activity domain.Activity) bool {
	_, ok := activity.(domain.Completion)
	return ok
}

func (completionMapper) EncodePayload(activity domain.Activity) (string, error) {
	a := activity.(domain.Completion)
	return encodePayload(completionSchema{payloadExtras: extrasOf(a.ActivityCore)})
}

func (completionMapper) DecodePayload(core domain.ActivityCore, payloadJSON string) (domain.Activity, error) {
	var schema completionSchema
	if err := json.Unmarshal([]byte(payloadJSON), &schema); err != nil {
		return nil, err
	}
	schema.apply(&core)
	return domain.Completion{ActivityCore: core}, nil
}

type failureMapper struct{}

type failureSchema struct {
	payloadExtras
	Reason string `json:"reason"`
}

func (failureMapper) TypeKey() string { return typeKeyFailure }

func (failureMapper) CanPersist(activity domain.Activity) bool {
	_, ok := activity.(domain.Failure)
	return ok
}

func (failureMapper) EncodePayload(activity domain.Activity) (string, error) {
	a := activity.(domain.Failure)
	return encodePayload(failureSchema{payloadExtras: extrasOf(a.ActivityCore), Reason: a.Reason})
}

func (failureMapper) DecodePayload(core domain.ActivityCore, payloadJSON string) (domain.Activity, error) {
	var schema failureSchema
	if err := json.Unmarshal([]byte(payloadJSON), &schema); err != nil {
		return nil, err
	}
	schema.apply(&core)
	return domain.Failure{ActivityCore: core, Reason: schema.Reason}, nil
}

type sessionAssignedMapper struct{}

type sessionAssignedSchema struct {
	payloadExtras
	Task string `json:"task"`
}

func (sessionAssignedMapper) TypeKey() string { return typeKeySessionAssigned }

func (sessionAssignedMapper) CanPersist(activity domain.Activity) bool {
	_, ok := activity.(domain.SessionAssigned)
	return ok
}

func (sessionAssignedMapper) EncodePayload(activity domain.Activity) (string, error) {
	a := activity.(domain.SessionAssigned)
	return encodePayload(sessionAssignedSchema{payloadExtras: extrasOf(a.ActivityCore), Task: a.Task})
}

func (sessionAssignedMapper) DecodePayload(core domain.ActivityCore, payloadJSON string) (domain.Activity, error) {
	var schema sessionAssignedSchema
	if err := json.Unmarshal([]byte(payloadJSON), &schema); err != nil {
		return nil, err
	}
	schema.apply(&core)
	return domain.SessionAssigned{ActivityCore: core, Task: schema.Task}, nil
}
