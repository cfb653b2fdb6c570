package out

import (
	"context"

	"github.com/matchpoint-club/field-schedule-sync/internal/core/domain"
)

type CachePort interface {
	// Кэширование справочника площадок
	GetField(ctx context.Context, fieldID int64) (*domain.Field, bool)
	StoreField(ctx context.Context, field domain.Field)
	InvalidateField(ctx context.Context, fieldID int64)
}
