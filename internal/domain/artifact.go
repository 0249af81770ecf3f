package domain

// Artifact is the evidence a session activity can carry: a code change, a
// command run, or a captured media blob. The set is closed the same way
// Activity is.
type Artifact interface {
	isArtifact()
}

type ChangeSet struct {
	Source   string
	GitPatch string
}

func (ChangeSet) isArtifact() {}

type BashOutput struct {
	Command  string
	Output   string
	ExitCode int
}

func (BashOutput) isArtifact() {}

type Media struct {
	MimeType string
	Data     []byte
}

func (Media) isArtifact() {}
