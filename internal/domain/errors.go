package domain

import "errors"

var (
	ErrSessionNotFound   = errors.New("session not found")
	ErrRemoteUnreachable = errors.New("remote collaborator unreachable")
	ErrNoPlan            = errors.New("session has no plan")
)
