package schedule_sync_service

import (
	"github.com/matchpoint-club/field-schedule-sync/internal/core/domain"
)

// ValidateRules проверяет инварианты набора правил до обращения к бэкенду.
// Для открытого дня время открытия должно быть строго меньше времени закрытия.
func ValidateRules(rules []domain.WeekdayRule) []RuleValidationError {
	validationErrors := make([]RuleValidationError, 0)
	seen := make(map[domain.Weekday]struct{})

	for _, rule := range rules {
		if !rule.Weekday.IsValid() {
			validationErrors = append(validationErrors, RuleValidationError{
				Weekday: rule.Weekday,
				Reason:  "unknown weekday",
			})
			continue
		}

		if _, duplicate := seen[rule.Weekday]; duplicate {
			validationErrors = append(validationErrors, RuleValidationError{
				Weekday: rule.Weekday,
				Reason:  "duplicate weekday rule",
			})
			continue
		}
		seen[rule.Weekday] = struct{}{}

		if rule.Closed {
			continue
		}

		if rule.OpenTime >= rule.CloseTime {
			validationErrors = append(validationErrors, RuleValidationError{
				Weekday: rule.Weekday,
				Reason:  "open time must be before close time",
			})
		}
	}

	return validationErrors
}
