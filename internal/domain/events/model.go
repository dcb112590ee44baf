package events

import "time"

// CalendarEvent es un evento agendado en el calendario de la mascota
// (consulta, vacuna, baño...). Solo los pendientes generan notificaciones.
type CalendarEvent struct {
	ID    string
	PetID string

	Title string
	Date  time.Time

	Type   EventType
	Status EventStatus

	Notes string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Pending filtra los eventos con status pending, preservando el orden.
func Pending(items []CalendarEvent) []CalendarEvent {
	out := make([]CalendarEvent, 0, len(items))
	for _, e := range items {
		if e.Status == EventStatusPending {
			out = append(out, e)
		}
	}
	return out
}
