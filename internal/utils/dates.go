package utils

import "time"

const (
	// DayLayout - формат ключа календарного дня.
	DayLayout = "2006-01-02"

	DefaultRangeDays = 30
	MinRangeDays     = 7
	MaxRangeDays     = 365
)

// StartOfDayUTC возвращает полночь UTC дня, содержащего t.
func StartOfDayUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// EndOfDayUTC возвращает 23:59:59.999 UTC дня, содержащего t.
func EndOfDayUTC(t time.Time) time.Time {
	return StartOfDayUTC(t).Add(24*time.Hour - time.Millisecond)
}

// DayKey форматирует день t в UTC как YYYY-MM-DD.
func DayKey(t time.Time) string {
	return t.UTC().Format(DayLayout)
}

// ClampDays ограничивает окно аналитики диапазоном [MinRangeDays, MaxRangeDays].
func ClampDays(days int) int {
	if days < MinRangeDays {
		return MinRangeDays
	}
	if days > MaxRangeDays {
		return MaxRangeDays
	}
	return days
}

// WindowStart возвращает начало окна из days календарных дней,
// последний из которых содержит now.
func WindowStart(now time.Time, days int) time.Time {
	return StartOfDayUTC(now).AddDate(0, 0, -(days - 1))
}
