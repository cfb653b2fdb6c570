package domain

import (
	"github.com/matchpoint-club/field-schedule-sync/internal/core/json_types"
)

// WeekdayRule - правило доступности на один день недели.
// Либо closed, либо пара открытие/закрытие.
type WeekdayRule struct {
	Weekday   Weekday              `json:"day"`
	Closed    bool                 `json:"closed"`
	OpenTime  json_types.TimeOfDay `json:"openTime"`
	CloseTime json_types.TimeOfDay `json:"closeTime"`
}

// CopyRule возвращает новый набор правил, в котором окна дня from
// скопированы на дни to. Исходный набор не изменяется: синхронизатор
// всегда получает неизменяемый снимок.
func CopyRule(rules []WeekdayRule, from Weekday, to []Weekday) []WeekdayRule {
	var reference *WeekdayRule
	for i := range rules {
		if rules[i].Weekday == from {
			reference = &rules[i]
			break
		}
	}
	if reference == nil {
		return rules
	}

	copied := make([]WeekdayRule, len(rules))
	copy(copied, rules)

	for i := range copied {
		for _, target := range to {
			if copied[i].Weekday == target && target != from {
				copied[i].Closed = reference.Closed
				copied[i].OpenTime = reference.OpenTime
				copied[i].CloseTime = reference.CloseTime
			}
		}
	}

	return copied
}
