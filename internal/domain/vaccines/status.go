// Package vaccines clasifica las vacunas por estado (aplicada, programada,
// vence este mes, vence pronto, vencida) a partir de la fecha del refuerzo.
package vaccines

import (
	"time"

	"pet-care-insights/internal/platform/dates"
)

// Status es el estado de una vacuna respecto a "now".
// @Enum applied, scheduled, due_month, due_soon, overdue
type Status string

const (
	StatusApplied   Status = "applied"
	StatusScheduled Status = "scheduled"
	StatusDueMonth  Status = "due_month"
	StatusDueSoon   Status = "due_soon"
	StatusOverdue   Status = "overdue"
)

const (
	DueSoonDays  = 7
	DueMonthDays = 30
)

// Label es el texto que se muestra en la UI.
func (s Status) Label() string {
	switch s {
	case StatusApplied:
		return "Applied"
	case StatusScheduled:
		return "Scheduled"
	case StatusDueMonth:
		return "Due this month"
	case StatusDueSoon:
		return "Due soon"
	case StatusOverdue:
		return "Overdue"
	}
	return string(s)
}

// Classify calcula el estado de una dosis. applied no interviene en el
// cálculo: sin refuerzo previsto la dosis simplemente está aplicada.
func Classify(applied time.Time, next *time.Time, now time.Time) Status {
	if next == nil {
		return StatusApplied
	}
	if next.Before(now) {
		return StatusOverdue
	}
	if !next.After(now) {
		return StatusApplied
	}

	days := dates.WholeDaysUntil(*next, now)
	switch {
	case days <= DueSoonDays:
		return StatusDueSoon
	case days <= DueMonthDays:
		return StatusDueMonth
	default:
		return StatusScheduled
	}
}
