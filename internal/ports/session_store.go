package ports

import (
	"context"

	"github.com/bnema/collab-cli/internal/domain"
)

type SessionReader interface {
	Get(ctx context.Context, id domain.SessionID) (*domain.Session, error)
	List(ctx context.Context) ([]*domain.Session, error)
}

type SessionWriter interface {
	Save(ctx context.Context, session *domain.Session) error
	Forget(ctx context.Context, id domain.SessionID) error
}
