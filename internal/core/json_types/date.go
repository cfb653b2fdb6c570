package json_types

import (
	"encoding/json"
	"fmt"
	"time"
)

// Date - календарная дата без времени, сериализуется как "2006-01-02".
type Date struct {
	Date time.Time
}

func NewDate(t time.Time) Date {
	return Date{Date: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())}
}

func ParseDate(str string, location *time.Location) (Date, error) {
	parsedDate, err := time.ParseInLocation("2006-01-02", str, location)
	if err != nil {
		// Если не удалось, пробуем дату со временем без таймзоны
		parsedDate, err = time.ParseInLocation("2006-01-02T15:04:05", str, location)
		if err != nil {
			parsedDate, err = time.Parse(time.RFC3339, str)
			if err != nil {
				return Date{}, fmt.Errorf("failed to parse date: %v", err)
			}
		}
	}

	return NewDate(parsedDate), nil
}

func (d Date) String() string {
	return d.Date.Format("2006-01-02")
}

func (d Date) Weekday() time.Weekday {
	return d.Date.Weekday()
}

func (d Date) Equal(other Date) bool {
	return d.String() == other.String()
}

// After сравнивает даты лексикографически, чтобы даты из разных
// таймзон не сдвигались на сутки при сравнении моментов времени.
func (d Date) After(other Date) bool {
	return d.String() > other.String()
}

func (d Date) IsZero() bool {
	return d.Date.IsZero()
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}

	parsed, err := ParseDate(str, time.UTC)
	if err != nil {
		return err
	}

	*d = parsed
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}
