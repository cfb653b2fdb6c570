package in

import (
	"context"

	"github.com/matchpoint-club/field-schedule-sync/internal/core/domain"
)

type ScheduleSyncUseCase interface {
	// Синхронизация недельного расписания площадки с конкретными слотами бэкенда
	SyncSchedule(ctx context.Context, fieldID int64, rules []domain.WeekdayRule, mode domain.GenerationMode) (*domain.SyncReport, error)

	// Недельное расписание, восстановленное из сохраненных слотов
	CurrentSchedule(ctx context.Context, fieldID int64) ([]domain.WeekdayRule, error)
}
