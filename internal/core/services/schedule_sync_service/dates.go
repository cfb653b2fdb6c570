package schedule_sync_service

import (
	"time"

	"github.com/matchpoint-club/field-schedule-sync/internal/core/domain"
	"github.com/matchpoint-club/field-schedule-sync/internal/core/json_types"
)

// HorizonDates отображает день недели на конкретные даты внутри горизонта.
//
// Смещение до первого совпадения считается от начала горизонта. В режиме
// fresh нулевое смещение допустимо: первая дата может совпасть с началом
// горизонта. В режиме resync текущая неделя считается уже покрытой, поэтому
// нулевое смещение принудительно переносится на 7 дней вперед.
//
// Каждая дата перепроверяется: день недели пересчитывается из самой строки
// даты, несовпадения отбрасываются и возвращаются отдельно. Это защита от
// дрейфа календарной арифметики на границах месяцев и переводах часов,
// несовпадение никогда не роняет запуск.
func HorizonDates(weekday domain.Weekday, horizon domain.Horizon, mode domain.GenerationMode) ([]json_types.Date, []domain.DateMismatch) {
	targetWeekday, ok := weekday.TimeWeekday()
	if !ok {
		return nil, nil
	}

	// Полдень, чтобы прибавление суток не съезжало на переводе часов
	start := horizon.Start.Date
	base := time.Date(start.Year(), start.Month(), start.Day(), 12, 0, 0, 0, start.Location())

	offset := (int(targetWeekday) - int(base.Weekday()) + 7) % 7
	if mode == domain.GenerationModeResync && offset == 0 {
		offset = 7
	}

	dates := make([]json_types.Date, 0, domain.MaxWeeklyOccurrences)
	mismatches := make([]domain.DateMismatch, 0)

	for i := 0; i < domain.MaxWeeklyOccurrences; i++ {
		candidate := json_types.NewDate(base.AddDate(0, 0, offset+i*7))
		if candidate.After(horizon.End) {
			break
		}

		// Пересчитываем день недели из отрендеренной строки даты
		verified, err := json_types.ParseDate(candidate.String(), start.Location())
		if err != nil || verified.Weekday() != targetWeekday {
			mismatches = append(mismatches, domain.DateMismatch{
				Date:     candidate.String(),
				Expected: weekday,
				Actual:   domain.WeekdayMap[verified.Weekday()],
			})
			continue
		}

		dates = append(dates, candidate)
	}

	return dates, mismatches
}
