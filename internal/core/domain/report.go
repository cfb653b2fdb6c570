package domain

import (
	"github.com/google/uuid"
)

type BatchOperation string

const (
	BatchOperationDelete BatchOperation = "delete"
	BatchOperationCreate BatchOperation = "create"
)

// BatchItemFailure - нефатальная ошибка одной операции в пакете.
// Запуск продолжается, ошибка попадает в итоговый отчет.
type BatchItemFailure struct {
	Operation BatchOperation `json:"operation"`
	SlotID    int64          `json:"slotId,omitempty"`
	Date      string         `json:"date,omitempty"`
	StartTime string         `json:"startTime,omitempty"`
	Error     string         `json:"error"`
}

// DateMismatch - отброшенная дата, у которой пересчитанный день недели
// не совпал с ожидаемым. Защитная проверка, в отчет попадает для диагностики.
type DateMismatch struct {
	Date     string  `json:"date"`
	Expected Weekday `json:"expected"`
	Actual   Weekday `json:"actual"`
}

// SyncReport - итог одного запуска синхронизации
type SyncReport struct {
	RunID          uuid.UUID          `json:"runId"`
	FieldID        int64              `json:"fieldId"`
	Mode           GenerationMode     `json:"mode"`
	Deleted        int                `json:"deleted"`
	Created        int                `json:"created"`
	ItemFailures   []BatchItemFailure `json:"itemFailures,omitempty"`
	DateMismatches []DateMismatch     `json:"dateMismatches,omitempty"`
}

func (r *SyncReport) HasItemFailures() bool {
	return len(r.ItemFailures) > 0
}
