package ports

import (
	"context"

	"github.com/gamezonia/gzone/internal/domain"
)

// SessionRepository is the durable session table. Mutations rewrite the
// whole table; ReplaceAll either commits every record or leaves the previous
// table intact.
type SessionRepository interface {
	LoadAll(ctx context.Context) ([]domain.Session, error)
	ReplaceAll(ctx context.Context, sessions []domain.Session) error
}
