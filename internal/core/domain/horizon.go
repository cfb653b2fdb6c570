package domain

import (
	"time"

	"github.com/matchpoint-club/field-schedule-sync/internal/core/json_types"
)

type GenerationMode string

const (
	// GenerationModeFresh - первичная загрузка расписания, горизонт начинается сегодня
	GenerationModeFresh GenerationMode = "fresh"
	// GenerationModeResync - перегенерация поверх уже заполненного горизонта,
	// ближайшие ProtectedWindowDays дней не трогаем
	GenerationModeResync GenerationMode = "resync"
)

func (m GenerationMode) IsValid() bool {
	return m == GenerationModeFresh || m == GenerationModeResync
}

const (
	// HorizonDays - длина окна генерации в днях
	HorizonDays = 18
	// ProtectedWindowDays - ближний период, зарезервированный под ручные правки
	// в календаре. Удаление затрагивает только слоты строго после этой границы.
	ProtectedWindowDays = 15
	// MaxWeeklyOccurrences - максимум повторов одного дня недели в горизонте
	MaxWeeklyOccurrences = 12
)

// Horizon - окно дат, в пределах которого генерируются слоты
type Horizon struct {
	Start json_types.Date
	End   json_types.Date
}

// NewHorizon строит окно генерации от текущего момента.
// В режиме resync старт сдвигается за защищенный период.
func NewHorizon(now time.Time, mode GenerationMode) Horizon {
	start := now
	if mode == GenerationModeResync {
		start = start.AddDate(0, 0, ProtectedWindowDays)
	}
	end := start.AddDate(0, 0, HorizonDays)

	return Horizon{
		Start: json_types.NewDate(start),
		End:   json_types.NewDate(end),
	}
}

// ProtectedWindowEnd - граница защищенного периода. Считается всегда от
// сегодняшнего дня, независимо от режима генерации: зазор в три дня между
// этой границей и концом горизонта сохраняется сознательно.
func ProtectedWindowEnd(now time.Time) json_types.Date {
	return json_types.NewDate(now.AddDate(0, 0, ProtectedWindowDays))
}
