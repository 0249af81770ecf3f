package api

import (
	"fmt"
	"sort"

	"github.com/bnema/collab-cli/internal/domain"
	"github.com/google/uuid"
)

// shapeMapper converts one wire activity shape into its domain variant.
type shapeMapper interface {
	CanMap(raw *wireActivity) bool
	Map(raw *wireActivity) domain.Activity
}

// Mapper turns wire activities into domain activities. It is total: a
// shape no mapper claims degrades to a System message naming the unknown
// payload key, so no remote activity is ever dropped or crashes the sync.
type Mapper struct {
	mappers []shapeMapper
}

func NewMapper() *Mapper {
	return &Mapper{mappers: []shapeMapper{
		planGeneratedMapper{},
		planApprovedMapper{},
		progressMapper{},
		userMessagedMapper{},
		agentMessagedMapper{},
		sessionCompletedMapper{},
		sessionFailedMapper{},
		sessionCreatedMapper{},
	}}
}

func (m *Mapper) Map(raw *wireActivity) domain.Activity {
	for _, mapper := range m.mappers {
		if mapper.CanMap(raw) {
			return mapper.Map(raw)
		}
	}

	core := coreOf(raw)
	core.Originator = domain.OriginatorSystem
	return domain.Message{
		ActivityCore: core,
		Text:         fmt.Sprintf("unrecognized activity %q; update the CLI to view it", discriminatorOf(raw)),
	}
}

func (m *Mapper) MapAll(raws []wireActivity) []domain.Activity {
	activities := make([]domain.Activity, 0, len(raws))
	for i := range raws {
		activities = append(activities, m.Map(&raws[i]))
	}
	return activities
}

// coreOf maps the envelope fields shared by every shape. Activities
// without any usable identifier get a synthesized one so dedup still has
// something stable-ish to key on within this sync pass.
func coreOf(raw *wireActivity) domain.ActivityCore {
	id := raw.ID
	if id == "" {
		id = raw.Name
	}
	if id == "" {
		id = "wire-" + uuid.NewString()
	}

	return domain.ActivityCore{
		ID:         domain.ActivityID(id),
		RemoteID:   raw.Name,
		Timestamp:  raw.CreateTime,
		Originator: domain.ParseOriginator(raw.Originator),
		Evidence:   mapArtifacts(raw.Artifacts),
		Summary:    raw.Description,
	}
}

// mapArtifacts is the single evidence path for all activity shapes.
func mapArtifacts(raws []wireArtifact) []domain.Artifact {
	var artifacts []domain.Artifact
	for _, raw := range raws {
		switch {
		case raw.ChangeSet != nil:
			artifacts = append(artifacts, domain.ChangeSet{
				Source:   raw.ChangeSet.Source,
				GitPatch: raw.ChangeSet.GitPatch,
			})
		case raw.BashOutput != nil:
			artifacts = append(artifacts, domain.BashOutput{
				Command:  raw.BashOutput.Command,
				Output:   raw.BashOutput.Output,
				ExitCode: raw.BashOutput.ExitCode,
			})
		case raw.Media != nil:
			artifacts = append(artifacts, domain.Media{
				MimeType: raw.Media.MimeType,
				Data:     raw.Media.Data,
			})
		}
	}
	return artifacts
}

func discriminatorOf(raw *wireActivity) string {
	if len(raw.payloads) == 0 {
		return "(empty)"
	}
	keys := make([]string, 0, len(raw.payloads))
	for key := range raw.payloads {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys[0]
}

type progressMapper struct{}

func (progressMapper) CanMap(raw *wireActivity) bool {
	_, ok := raw.payloads["progressUpdated"]
	return ok
}

func (progressMapper) Map(raw *wireActivity) domain.Activity {
	var payload progressPayload
	raw.payload("progressUpdated", &payload)
	return domain.Progress{
		ActivityCore: coreOf(raw),
		Intent:       payload.Title,
		Reasoning:    payload.Description,
	}
}

type planGeneratedMapper struct{}

func (planGeneratedMapper) CanMap(raw *wireActivity) bool {
	_, ok := raw.payloads["planGenerated"]
	return ok
}

func (planGeneratedMapper) Map(raw *wireActivity) domain.Activity {
	var payload planGeneratedPayload
	raw.payload("planGenerated", &payload)

	steps := make([]domain.PlanStep, 0, len(payload.Steps))
	for _, step := range payload.Steps {
		steps = append(steps, domain.PlanStep{
			ID:          step.ID,
			Index:       step.Index,
			Title:       step.Title,
			Description: step.Description,
		})
	}

	return domain.Planning{
		ActivityCore: coreOf(raw),
		PlanID:       payload.PlanID,
		Steps:        steps,
	}
}

type userMessagedMapper struct{}

func (userMessagedMapper) CanMap(raw *wireActivity) bool {
	_, ok := raw.payloads["userMessaged"]
	return ok
}

func (userMessagedMapper) Map(raw *wireActivity) domain.Activity {
	var payload messagePayload
	raw.payload("userMessaged", &payload)
	return domain.Message{ActivityCore: coreOf(raw), Text: payload.Message}
}

type agentMessagedMapper struct{}

func (agentMessagedMapper) CanMap(raw *wireActivity) bool {
	_, ok := raw.payloads["agentMessaged"]
	return ok
}

func (agentMessagedMapper) Map(raw *wireActivity) domain.Activity {
	var payload messagePayload
	raw.payload("agentMessaged", &payload)
	return domain.Message{ActivityCore: coreOf(raw), Text: payload.Message}
}

type planApprovedMapper struct{}

func (planApprovedMapper) CanMap(raw *wireActivity) bool {
	_, ok := raw.payloads["planApproved"]
	return ok
}

func (planApprovedMapper) Map(raw *wireActivity) domain.Activity {
	var payload planApprovedPayload
	raw.payload("planApproved", &payload)
	return domain.Approval{ActivityCore: coreOf(raw), PlanID: payload.PlanID}
}

type sessionCompletedMapper struct{}

func (sessionCompletedMapper) CanMap(raw *wireActivity) bool {
	_, ok := raw.payloads["sessionCompleted"]
	return ok
}

func (sessionCompletedMapper) Map(raw *wireActivity) domain.Activity {
	return domain.Completion{ActivityCore: coreOf(raw)}
}

type sessionFailedMapper struct{}

func (sessionFailedMapper) CanMap(raw *wireActivity) bool {
	_, ok := raw.payloads["sessionFailed"]
	return ok
}

func (sessionFailedMapper) Map(raw *wireActivity) domain.Activity {
	var payload sessionFailedPayload
	raw.payload("sessionFailed", &payload)
	return domain.Failure{ActivityCore: coreOf(raw), Reason: payload.Reason}
}

type sessionCreatedMapper struct{}

func (sessionCreatedMapper) CanMap(raw *wireActivity) bool {
	_, ok := raw.payloads["sessionCreated"]
	return ok
}

func (sessionCreatedMapper) Map(raw *wireActivity) domain.Activity {
	var payload sessionCreatedPayload
	raw.payload("sessionCreated", &payload)
	return domain.SessionAssigned{ActivityCore: coreOf(raw), Task: payload.Prompt}
}
