// Package dates agrupa la aritmética de "buckets" de fecha que comparten los
// clasificadores (urgencia, estado de vacunas) y el generador de reportes.
// Todas las funciones son puras: "now" siempre llega como parámetro.
package dates

import (
	"strings"
	"time"
)

const (
	Day = 24 * time.Hour

	DateFormat  = "2006-01-02"
	ClockFormat = "15:04"
	ShortFormat = "02/01"
)

// StartOfDay devuelve la medianoche de t en su propia zona horaria.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDay compara fechas de calendario usando la zona de ref.
func SameDay(t, ref time.Time) bool {
	t = t.In(ref.Location())
	ty, tm, td := t.Date()
	ry, rm, rd := ref.Date()
	return ty == ry && tm == rm && td == rd
}

// IsTomorrow indica si t cae en el día de calendario siguiente a ref.
func IsTomorrow(t, ref time.Time) bool {
	return SameDay(t, ref.AddDate(0, 0, 1))
}

// WholeDaysUntil devuelve los días completos (truncados) entre now y t.
// Es negativo si t ya pasó.
func WholeDaysUntil(t, now time.Time) int {
	return int(t.Sub(now) / Day)
}

// DaysBack devuelve now desplazado n días de calendario hacia atrás.
func DaysBack(now time.Time, n int) time.Time {
	return now.AddDate(0, 0, -n)
}

// Within indica si t está en [start, end] (ambos extremos incluidos).
func Within(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}

var layouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	DateFormat,
}

// Parse acepta RFC3339 y las variantes locales que produce el frontend
// ("2006-01-02T15:04", "2006-01-02"). Sin offset explícito se usa loc.
func Parse(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseOptional es Parse para fechas secundarias: vacío o inválido => nil.
func ParseOptional(s string, loc *time.Location) *time.Time {
	t, ok := Parse(s, loc)
	if !ok {
		return nil
	}
	return &t
}
