package domain

// Field - бронируемая площадка клуба (корт, поле).
// Справочник площадок ведет бэкенд, для генерации нам нужна только длительность слота.
type Field struct {
	ID                  int64  `json:"id"`
	Name                string `json:"name"`
	SlotDurationMinutes int    `json:"slot_duration"`
}
