package ports

import (
	"context"

	"github.com/gamezonia/gzone/internal/domain"
)

type SettingsRepository interface {
	UnitPrices(ctx context.Context) (domain.UnitPrices, error)
	Save(ctx context.Context, prices domain.UnitPrices) error
}
