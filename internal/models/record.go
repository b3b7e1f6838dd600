package models

import (
	"fmt"
	"math"
	"time"
)

// DateFormat формат даты в CSV файле (YYYY-MM-DD).
// Лексикографический порядок строк в этом формате совпадает с хронологическим.
const DateFormat = "2006-01-02"

// PeriodFormat формат календарного месяца (YYYY-MM)
const PeriodFormat = "2006-01"

// Record представляет одну точку данных: значение для пары (дата, идентичность).
// В авторитетном наборе допускается не более одной записи на пару (Date, Identity).
type Record struct {
	Date     string  `json:"date"`     // Date дата в формате YYYY-MM-DD
	Identity string  `json:"identity"` // Identity метка владельца значения (например, "User")
	Value    float64 `json:"value"`    // Value значение; NaN означает "нет данных"
}

// Key возвращает ключ уникальности записи
func (r Record) Key() RecordKey {
	return RecordKey{Date: r.Date, Identity: r.Identity}
}

// HasValue reports whether the record carries usable data.
func (r Record) HasValue() bool {
	return !math.IsNaN(r.Value)
}

// RecordKey is the (date, identity) uniqueness key.
type RecordKey struct {
	Date     string
	Identity string
}

// Period is a calendar month.
type Period struct {
	Year  int
	Month time.Month
}

// PeriodOf returns the period containing t.
func PeriodOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: t.Month()}
}

// ParsePeriod parses a period in YYYY-MM form.
func ParsePeriod(s string) (Period, error) {
	t, err := time.Parse(PeriodFormat, s)
	if err != nil {
		return Period{}, fmt.Errorf("invalid period %q want format %q: %w", s, "YYYY-MM", err)
	}
	return PeriodOf(t), nil
}

// String formats the period as YYYY-MM.
func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// Days returns the number of days in the period.
func (p Period) Days() int {
	// нулевой день следующего месяца = последний день текущего
	return time.Date(p.Year, p.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// FirstWeekday returns the weekday of the first day of the period.
func (p Period) FirstWeekday() time.Weekday {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC).Weekday()
}

// Date formats the given day of the period as YYYY-MM-DD.
func (p Period) Date(day int) string {
	return time.Date(p.Year, p.Month, day, 0, 0, 0, 0, time.UTC).Format(DateFormat)
}
