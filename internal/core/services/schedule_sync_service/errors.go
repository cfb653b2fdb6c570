package schedule_sync_service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/matchpoint-club/field-schedule-sync/internal/core/domain"
)

// ErrFetchFailed - не удалось получить текущее состояние с бэкенда.
// Фатально: запуск прерывается до каких-либо мутаций.
var ErrFetchFailed = errors.New("failed to fetch current schedule state")

var ErrInvalidMode = errors.New("unknown generation mode")

// RuleValidationError - нарушение инварианта одного дня недели
type RuleValidationError struct {
	Weekday domain.Weekday
	Reason  string
}

func (e RuleValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Weekday, e.Reason)
}

// RulesValidationError - отказ до любых сетевых вызовов,
// с перечнем проблемных дней для показа пользователю
type RulesValidationError struct {
	Errors []RuleValidationError
}

func (e *RulesValidationError) Error() string {
	reasons := make([]string, 0, len(e.Errors))
	for _, ruleErr := range e.Errors {
		reasons = append(reasons, ruleErr.Error())
	}
	return "invalid weekday rules: " + strings.Join(reasons, "; ")
}
