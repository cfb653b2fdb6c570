package json_types

import (
	"encoding/json"
	"fmt"
)

// TimeOfDay - время дня в минутах с полуночи.
// Сериализуется как "HH:MM", секунды от бэкенда отбрасываются.
type TimeOfDay int

func ParseTimeOfDay(str string) (TimeOfDay, error) {
	var hours, minutes, seconds int

	// Бэкенд может отдавать время как "HH:MM", так и "HH:MM:SS"
	if _, err := fmt.Sscanf(str, "%d:%d:%d", &hours, &minutes, &seconds); err != nil {
		if _, err := fmt.Sscanf(str, "%d:%d", &hours, &minutes); err != nil {
			return 0, fmt.Errorf("failed to parse time of day %q: %v", str, err)
		}
	}

	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("time of day %q is out of range", str)
	}

	return TimeOfDay(hours*60 + minutes), nil
}

func (t TimeOfDay) Hour() int {
	return int(t) / 60
}

func (t TimeOfDay) Minute() int {
	return int(t) % 60
}

func (t TimeOfDay) Add(minutes int) TimeOfDay {
	return t + TimeOfDay(minutes)
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}

	// Закрытые дни приходят с пустым временем
	if str == "" {
		*t = 0
		return nil
	}

	parsed, err := ParseTimeOfDay(str)
	if err != nil {
		return err
	}

	*t = parsed
	return nil
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}
