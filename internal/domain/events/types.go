package events

type EventType string

const (
	EventTypeVisit      EventType = "visit"
	EventTypeExam       EventType = "exam"
	EventTypeVaccine    EventType = "vaccine"
	EventTypeMedication EventType = "medication"
	EventTypeGrooming   EventType = "grooming"
	EventTypeOther      EventType = "other"
)

// Valid indica si t es uno de los tipos conocidos.
func (t EventType) Valid() bool {
	switch t {
	case EventTypeVisit, EventTypeExam, EventTypeVaccine, EventTypeMedication, EventTypeGrooming, EventTypeOther:
		return true
	}
	return false
}

// IsVisit agrupa los tipos que el reporte trata como consulta veterinaria.
func (t EventType) IsVisit() bool {
	return t == EventTypeVisit || t == EventTypeExam
}

type EventStatus string

const (
	EventStatusPending   EventStatus = "pending"
	EventStatusDone      EventStatus = "done"
	EventStatusCancelled EventStatus = "cancelled"
)
