package domain

import (
	"fmt"
	"strings"
	"time"
)

type ActivityID string

type Originator string

const (
	OriginatorUser   Originator = "User"
	OriginatorAgent  Originator = "Agent"
	OriginatorSystem Originator = "System"
)

// ParseOriginator maps a raw originator string case-insensitively,
// defaulting to User for anything it does not recognize.
func ParseOriginator(raw string) Originator {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "agent":
		return OriginatorAgent
	case "system":
		return OriginatorSystem
	default:
		return OriginatorUser
	}
}

// ActivityCore carries the fields shared by every activity variant.
type ActivityCore struct {
	ID         ActivityID
	RemoteID   string
	Timestamp  time.Time
	Originator Originator
	Evidence   []Artifact
	Summary    string
}

// Activity is the closed set of things a session log can record. Variants
// live in this package only; isActivity seals the interface.
type Activity interface {
	Core() ActivityCore
	// Significant reports whether the activity is worth surfacing in a
	// condensed view of the session.
	Significant() bool
	Summarize() string
	isActivity()
}

type Progress struct {
	ActivityCore
	Intent    string
	Reasoning string
}

func (a Progress) Core() ActivityCore { return a.ActivityCore }
func (a Progress) Significant() bool  { return a.Reasoning != "" || len(a.Evidence) > 0 }
func (a Progress) Summarize() string  { return a.Intent }
func (Progress) isActivity()          {}

type PlanStep struct {
	ID          string
	Index       int
	Title       string
	Description string
}

type Planning struct {
	ActivityCore
	PlanID string
	Steps  []PlanStep
}

func (a Planning) Core() ActivityCore { return a.ActivityCore }
func (a Planning) Significant() bool  { return true }
func (a Planning) Summarize() string {
	return fmt.Sprintf("generated a plan with %d steps", len(a.Steps))
}
func (Planning) isActivity() {}

type Message struct {
	ActivityCore
	Text string
}

func (a Message) Core() ActivityCore { return a.ActivityCore }
func (a Message) Significant() bool  { return true }
func (a Message) Summarize() string  { return a.Text }
func (Message) isActivity()          {}

type Approval struct {
	ActivityCore
	PlanID string
}

func (a Approval) Core() ActivityCore { return a.ActivityCore }
func (a Approval) Significant() bool  { return true }
func (a Approval) Summarize() string  { return fmt.Sprintf("plan %s approved", a.PlanID) }
func (Approval) isActivity()          {}

type Completion struct {
	ActivityCore
}

func (a Completion) Core() ActivityCore { return a.ActivityCore }
func (a Completion) Significant() bool  { return true }
func (a Completion) Summarize() string  { return "session completed" }
func (Completion) isActivity()          {}

type Failure struct {
	ActivityCore
	Reason string
}

func (a Failure) Core() ActivityCore { return a.ActivityCore }
func (a Failure) Significant() bool  { return true }
func (a Failure) Summarize() string  { return "failed: " + a.Reason }
func (Failure) isActivity()          {}

type SessionAssigned struct {
	ActivityCore
	Task string
}

func (a SessionAssigned) Core() ActivityCore { return a.ActivityCore }
func (a SessionAssigned) Significant() bool  { return true }
func (a SessionAssigned) Summarize() string  { return "session assigned: " + a.Task }
func (SessionAssigned) isActivity()          {}
