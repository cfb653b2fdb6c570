package schedule_sync_service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/matchpoint-club/field-schedule-sync/internal/core/domain"
	"github.com/matchpoint-club/field-schedule-sync/internal/core/json_types"
	"github.com/matchpoint-club/field-schedule-sync/internal/core/ports/out"
)

// ScheduleSyncService сверяет недельное расписание площадки с конкретными
// слотами, сохраненными бэкендом: удаляет устаревшие слоты за защищенным
// периодом и генерирует новые в пределах горизонта.
//
// Сервис не координирует параллельные запуски по одной площадке,
// вызывающая сторона должна выполнять не больше одного запуска за раз.
type ScheduleSyncService struct {
	bookingPort out.BookingPort
	cachePort   out.CachePort
	logger      out.LoggerPort
	location    *time.Location
	now         func() time.Time
}

func NewScheduleSyncService(
	bookingPort out.BookingPort,
	cachePort out.CachePort,
	logger out.LoggerPort,
	location *time.Location,
) *ScheduleSyncService {
	return &ScheduleSyncService{
		bookingPort: bookingPort,
		cachePort:   cachePort,
		logger:      logger.WithModule("ScheduleSyncService"),
		location:    location,
		now:         time.Now,
	}
}

// SyncSchedule - один проход синхронизации: fetch -> purge -> generate -> create.
// Фатален только отказ начального fetch (запуск прерывается без мутаций).
// Ошибки отдельных удалений и созданий собираются в отчет, запуск продолжается.
func (s *ScheduleSyncService) SyncSchedule(ctx context.Context, fieldID int64, rules []domain.WeekdayRule, mode domain.GenerationMode) (*domain.SyncReport, error) {
	runID := uuid.New()
	logger := s.logger.WithFields(out.LogFields{
		"runId":   runID,
		"fieldId": fieldID,
		"mode":    mode,
	})

	logger.Info("sync.started", out.LogFields{
		"rulesCount": len(rules),
	})

	if !mode.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}

	// Инварианты правил проверяются до любых сетевых вызовов
	if validationErrors := ValidateRules(rules); len(validationErrors) > 0 {
		logger.Warn("sync.rules.invalid", out.LogFields{
			"errorsCount": len(validationErrors),
		})
		return nil, &RulesValidationError{Errors: validationErrors}
	}

	field, err := s.getField(ctx, fieldID)
	if err != nil {
		logger.Error("sync.field.fetch_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	if field.SlotDurationMinutes <= 0 {
		return nil, fmt.Errorf("field %d has no slot duration", fieldID)
	}

	existingSlots, err := s.bookingPort.ListSlots(ctx, fieldID)
	if err != nil {
		logger.Error("sync.slots.fetch_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	report := &domain.SyncReport{
		RunID:   runID,
		FieldID: fieldID,
		Mode:    mode,
	}

	now := s.now().In(s.location)

	s.deleteStaleSlots(ctx, logger, fieldID, existingSlots, now, report)

	horizon := domain.NewHorizon(now, mode)
	candidates := s.generateCandidates(logger, rules, field.SlotDurationMinutes, horizon, mode, now, report)

	// Полностью закрытое расписание - валидный запуск с нулем созданий
	if len(candidates) == 0 {
		logger.Info("sync.finished.no_candidates", out.LogFields{
			"deleted": report.Deleted,
		})
		return report, nil
	}

	s.createSlots(ctx, logger, fieldID, candidates, report)

	logger.Info("sync.finished", out.LogFields{
		"deleted":      report.Deleted,
		"created":      report.Created,
		"itemFailures": len(report.ItemFailures),
	})

	return report, nil
}

// deleteStaleSlots удаляет слоты, датированные строго после защищенного
// периода. Ближние ProtectedWindowDays дней не трогаем: они зарезервированы
// под ручные правки в календаре площадки.
func (s *ScheduleSyncService) deleteStaleSlots(ctx context.Context, logger out.LoggerPort, fieldID int64, existingSlots []domain.PersistedSlot, now time.Time, report *domain.SyncReport) {
	protectedEnd := domain.ProtectedWindowEnd(now)

	staleSlots := make([]domain.PersistedSlot, 0)
	for _, slot := range existingSlots {
		if slot.Date.After(protectedEnd) {
			staleSlots = append(staleSlots, slot)
		}
	}

	logger.Debug("sync.delete.partitioned", out.LogFields{
		"existing":     len(existingSlots),
		"stale":        len(staleSlots),
		"protectedEnd": protectedEnd.String(),
	})

	if len(staleSlots) == 0 {
		return
	}

	results := runBatches(ctx, staleSlots, BatchSize, func(ctx context.Context, slot domain.PersistedSlot) error {
		return s.bookingPort.DeleteSlot(ctx, fieldID, slot.ID)
	})

	for _, result := range results {
		if result.err != nil {
			logger.Warn("sync.delete.item_failed", out.LogFields{
				"slotId": result.item.ID,
				"error":  result.err.Error(),
			})
			report.ItemFailures = append(report.ItemFailures, domain.BatchItemFailure{
				Operation: domain.BatchOperationDelete,
				SlotID:    result.item.ID,
				Date:      result.item.Date.String(),
				Error:     result.err.Error(),
			})
			continue
		}
		report.Deleted++
	}
}

// generateCandidates строит список слотов к созданию: окна каждого открытого
// дня недели, размноженные на даты горизонта. Для сегодняшней даты слоты,
// начавшиеся не позже текущего времени, не предлагаются.
func (s *ScheduleSyncService) generateCandidates(logger out.LoggerPort, rules []domain.WeekdayRule, slotDurationMinutes int, horizon domain.Horizon, mode domain.GenerationMode, now time.Time, report *domain.SyncReport) []domain.Slot {
	today := json_types.NewDate(now)
	nowTime := json_types.TimeOfDay(now.Hour()*60 + now.Minute())

	candidates := make([]domain.Slot, 0)

	for _, rule := range rules {
		if rule.Closed {
			continue
		}

		windows := GenerateDaySlots(rule.OpenTime, rule.CloseTime, slotDurationMinutes)
		dates, mismatches := HorizonDates(rule.Weekday, horizon, mode)

		for _, mismatch := range mismatches {
			logger.Warn("sync.generate.date_mismatch", out.LogFields{
				"date":     mismatch.Date,
				"expected": mismatch.Expected,
				"actual":   mismatch.Actual,
			})
		}
		report.DateMismatches = append(report.DateMismatches, mismatches...)

		for _, date := range dates {
			for _, window := range windows {
				// Слот, который уже начался или прошел, не предлагаем
				if date.Equal(today) && window.Start <= nowTime {
					continue
				}

				candidates = append(candidates, domain.Slot{
					Date:      date,
					StartTime: window.Start,
					EndTime:   window.End,
					Status:    domain.SlotStatusAvailable,
				})
			}
		}
	}

	return candidates
}

func (s *ScheduleSyncService) createSlots(ctx context.Context, logger out.LoggerPort, fieldID int64, candidates []domain.Slot, report *domain.SyncReport) {
	results := runBatches(ctx, candidates, BatchSize, func(ctx context.Context, slot domain.Slot) error {
		_, err := s.bookingPort.CreateSlot(ctx, fieldID, slot)
		return err
	})

	for _, result := range results {
		if result.err != nil {
			logger.Warn("sync.create.item_failed", out.LogFields{
				"date":      result.item.Date.String(),
				"startTime": result.item.StartTime.String(),
				"error":     result.err.Error(),
			})
			report.ItemFailures = append(report.ItemFailures, domain.BatchItemFailure{
				Operation: domain.BatchOperationCreate,
				Date:      result.item.Date.String(),
				StartTime: result.item.StartTime.String(),
				Error:     result.err.Error(),
			})
			continue
		}
		report.Created++
	}
}

// getField читает площадку через кэш, если он включен
func (s *ScheduleSyncService) getField(ctx context.Context, fieldID int64) (*domain.Field, error) {
	if s.cachePort != nil {
		if field, exists := s.cachePort.GetField(ctx, fieldID); exists {
			return field, nil
		}
	}

	field, err := s.bookingPort.GetField(ctx, fieldID)
	if err != nil {
		return nil, err
	}

	if s.cachePort != nil {
		s.cachePort.StoreField(ctx, *field)
	}

	return field, nil
}
