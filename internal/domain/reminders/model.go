package reminders

import "time"

type ReminderType string

const (
	ReminderTypeMedication ReminderType = "medication"
	ReminderTypeVaccine    ReminderType = "vaccine"
	ReminderTypeVisit      ReminderType = "visit"
	ReminderTypeOther      ReminderType = "other"
)

func (t ReminderType) Valid() bool {
	switch t {
	case ReminderTypeMedication, ReminderTypeVaccine, ReminderTypeVisit, ReminderTypeOther:
		return true
	}
	return false
}

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Reminder es un recordatorio puntual del tutor (dar medicación, vacuna...).
// Solo los activos alimentan el panel de notificaciones.
type Reminder struct {
	ID    string
	PetID string

	Title string
	Date  time.Time

	Type   ReminderType
	Status Status

	Notes string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Active filtra los recordatorios activos, preservando el orden.
func Active(items []Reminder) []Reminder {
	out := make([]Reminder, 0, len(items))
	for _, r := range items {
		if r.Status == StatusActive {
			out = append(out, r)
		}
	}
	return out
}
