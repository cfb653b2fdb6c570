package schedule_sync_service

import (
	"context"
	"fmt"

	"github.com/matchpoint-club/field-schedule-sync/internal/core/domain"
	"github.com/matchpoint-club/field-schedule-sync/internal/core/ports/out"
)

// CurrentSchedule восстанавливает недельное расписание из сохраненных слотов:
// для каждого дня недели берется самое раннее открытие и самое позднее
// закрытие среди его слотов. День без слотов считается закрытым.
func (s *ScheduleSyncService) CurrentSchedule(ctx context.Context, fieldID int64) ([]domain.WeekdayRule, error) {
	existingSlots, err := s.bookingPort.ListSlots(ctx, fieldID)
	if err != nil {
		s.logger.Error("schedule.current.fetch_failed", out.LogFields{
			"fieldId": fieldID,
			"error":   err.Error(),
		})
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	type dayWindow struct {
		open   domain.WeekdayRule
		filled bool
	}
	windows := make(map[domain.Weekday]*dayWindow)

	for _, slot := range existingSlots {
		weekday := domain.WeekdayMap[slot.Date.Weekday()]

		window, exists := windows[weekday]
		if !exists {
			window = &dayWindow{}
			windows[weekday] = window
		}

		if !window.filled {
			window.open = domain.WeekdayRule{
				Weekday:   weekday,
				OpenTime:  slot.StartTime,
				CloseTime: slot.EndTime,
			}
			window.filled = true
			continue
		}

		if slot.StartTime < window.open.OpenTime {
			window.open.OpenTime = slot.StartTime
		}
		if slot.EndTime > window.open.CloseTime {
			window.open.CloseTime = slot.EndTime
		}
	}

	rules := make([]domain.WeekdayRule, 0, len(domain.AllWeekdays))
	for _, weekday := range domain.AllWeekdays {
		if window, exists := windows[weekday]; exists && window.filled {
			rules = append(rules, window.open)
			continue
		}
		rules = append(rules, domain.WeekdayRule{
			Weekday: weekday,
			Closed:  true,
		})
	}

	s.logger.Debug("schedule.current.derived", out.LogFields{
		"fieldId":    fieldID,
		"slotsCount": len(existingSlots),
	})

	return rules, nil
}
