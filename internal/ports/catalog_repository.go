package ports

import (
	"context"

	"github.com/gamezonia/gzone/internal/domain"
)

type CatalogRepository interface {
	List(ctx context.Context) ([]domain.Console, error)
	SetStatus(ctx context.Context, id domain.ConsoleID, status domain.ConsoleStatus) error
}
