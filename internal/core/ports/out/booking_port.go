package out

import (
	"context"

	"github.com/matchpoint-club/field-schedule-sync/internal/core/domain"
)

type BookingPort interface {
	// Справочник площадок
	GetField(ctx context.Context, fieldID int64) (*domain.Field, error)

	// Методы для работы со слотами доступности
	ListSlots(ctx context.Context, fieldID int64) ([]domain.PersistedSlot, error)
	CreateSlot(ctx context.Context, fieldID int64, slot domain.Slot) (*domain.PersistedSlot, error)
	DeleteSlot(ctx context.Context, fieldID int64, slotID int64) error
}
