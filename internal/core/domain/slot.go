package domain

import (
	"github.com/matchpoint-club/field-schedule-sync/internal/core/json_types"
)

type SlotStatus string

const (
	SlotStatusAvailable SlotStatus = "available"
)

// Slot - сгенерированный интервал на конкретную дату, еще не сохраненный
type Slot struct {
	Date      json_types.Date      `json:"availabilityDate"`
	StartTime json_types.TimeOfDay `json:"startTime"`
	EndTime   json_types.TimeOfDay `json:"endTime"`
	Status    SlotStatus           `json:"slotStatus"`
}

// PersistedSlot - слот, сохраненный бэкендом. Идентичность записи
// принадлежит бэкенду, мы только создаем и удаляем записи целиком.
type PersistedSlot struct {
	ID        int64                `json:"id"`
	FieldID   int64                `json:"fieldId"`
	Date      json_types.Date      `json:"availability_date"`
	StartTime json_types.TimeOfDay `json:"start_time"`
	EndTime   json_types.TimeOfDay `json:"end_time"`
	Status    SlotStatus           `json:"slotStatus"`
}
