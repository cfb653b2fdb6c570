package domain

import "time"

type Weekday string

const (
	WeekdayMon Weekday = "mon"
	WeekdayTue Weekday = "tue"
	WeekdayWed Weekday = "wed"
	WeekdayThu Weekday = "thu"
	WeekdayFri Weekday = "fri"
	WeekdaySat Weekday = "sat"
	WeekdaySun Weekday = "sun"
)

// WeekdayMap - соответствие дней недели стандартной нумерации time.Weekday
var WeekdayMap = map[time.Weekday]Weekday{
	time.Monday:    WeekdayMon,
	time.Tuesday:   WeekdayTue,
	time.Wednesday: WeekdayWed,
	time.Thursday:  WeekdayThu,
	time.Friday:    WeekdayFri,
	time.Saturday:  WeekdaySat,
	time.Sunday:    WeekdaySun,
}

// AllWeekdays - порядок дней, в котором расписание показывается и валидируется
var AllWeekdays = []Weekday{
	WeekdayMon, WeekdayTue, WeekdayWed, WeekdayThu, WeekdayFri, WeekdaySat, WeekdaySun,
}

func (w Weekday) TimeWeekday() (time.Weekday, bool) {
	for timeWeekday, weekday := range WeekdayMap {
		if weekday == w {
			return timeWeekday, true
		}
	}
	return time.Sunday, false
}

func (w Weekday) IsValid() bool {
	_, ok := w.TimeWeekday()
	return ok
}
