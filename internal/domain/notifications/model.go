// Package notifications arma el panel de notificaciones del tutor: eventos
// pendientes y recordatorios activos dentro de la ventana de urgencia.
package notifications

import (
	"time"

	"pet-care-insights/internal/domain/urgency"
)

// Source es el origen de la notificación.
type Source string

const (
	SourceEvent    Source = "event"
	SourceReminder Source = "reminder"
)

// Category es a la vez la categoría y el destino del link en el frontend.
type Category string

const (
	CategoryCalendar  Category = "calendar"
	CategoryReminders Category = "reminders"
)

type Notification struct {
	ID          string
	Title       string
	Description string
	TimeLabel   string

	PetID   string
	PetName string

	Urgency    urgency.Level
	Source     Source
	Category   Category
	SourceDate time.Time
	LinkTarget Category
}

// Feed es el resultado del agregador.
//
// Un Feed vacío (Empty) es una respuesta válida: el servicio lo devuelve
// también cuando falla alguna lectura, para que el panel nunca quede roto.
type Feed struct {
	Notifications []Notification
	UnreadCount   int

	// Skipped cuenta registros con fecha inválida (diagnóstico).
	Skipped int
}

func Empty() Feed {
	return Feed{Notifications: make([]Notification, 0)}
}
