// Package urgency clasifica un instante contra "now" en un nivel de urgencia
// y una etiqueta de tiempo para el panel de notificaciones.
package urgency

import (
	"errors"
	"time"

	"pet-care-insights/internal/platform/dates"
)

var (
	ErrInvalidTimestamp = errors.New("invalid timestamp")
	ErrOutsideWindow    = errors.New("timestamp outside notification window")
)

// Ventana activa: desde 24h atrás hasta 72h adelante.
const (
	LookBehind = 24 * time.Hour
	LookAhead  = 72 * time.Hour
)

type Level string

const (
	High   Level = "high"
	Medium Level = "medium"
	Normal Level = "normal"
)

// Rank es la clave primaria de orden: high=0, medium=1, normal=2.
func (l Level) Rank() int {
	switch l {
	case High:
		return 0
	case Medium:
		return 1
	default:
		return 2
	}
}

// Unread indica si el nivel cuenta para el badge de no leídas.
func (l Level) Unread() bool {
	return l == High || l == Medium
}

type Classification struct {
	Level     Level
	TimeLabel string
}

// InWindow indica si ts cae en [now-24h, now+72h].
func InWindow(ts, now time.Time) bool {
	d := ts.Sub(now)
	return d >= -LookBehind && d <= LookAhead
}

// Classify aplica, en orden: vencido, hoy, mañana, resto de la ventana.
func Classify(ts, now time.Time) (Classification, error) {
	if ts.IsZero() {
		return Classification{}, ErrInvalidTimestamp
	}
	if !InWindow(ts, now) {
		return Classification{}, ErrOutsideWindow
	}

	local := ts.In(now.Location())
	clock := local.Format(dates.ClockFormat)

	switch {
	case ts.Before(now):
		return Classification{Level: High, TimeLabel: "Overdue"}, nil
	case dates.SameDay(ts, now):
		return Classification{Level: High, TimeLabel: "Today at " + clock}, nil
	case dates.IsTomorrow(ts, now):
		return Classification{Level: Medium, TimeLabel: "Tomorrow at " + clock}, nil
	default:
		return Classification{Level: Normal, TimeLabel: local.Format(dates.ShortFormat) + " at " + clock}, nil
	}
}
