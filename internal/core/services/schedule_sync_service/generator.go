package schedule_sync_service

import (
	"github.com/matchpoint-club/field-schedule-sync/internal/core/json_types"
)

// SlotWindow - один интервал в пределах окна открытия, еще без даты
type SlotWindow struct {
	Start json_types.TimeOfDay
	End   json_types.TimeOfDay
}

// GenerateDaySlots разбивает окно открытия на упорядоченные слоты фиксированной
// длины. Неполный хвост отбрасывается, а не усекается: если между последним
// полным слотом и закрытием остается меньше durationMinutes, слот не создается.
func GenerateDaySlots(open, close json_types.TimeOfDay, durationMinutes int) []SlotWindow {
	if durationMinutes <= 0 || open >= close {
		return nil
	}

	windows := make([]SlotWindow, 0, int(close-open)/durationMinutes)

	for cursor := open; cursor.Add(durationMinutes) <= close; cursor = cursor.Add(durationMinutes) {
		windows = append(windows, SlotWindow{
			Start: cursor,
			End:   cursor.Add(durationMinutes),
		})
	}

	return windows
}
