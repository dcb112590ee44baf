package records

import "time"

// Kind identifica la variante de un Record.
type Kind string

const (
	KindMetric      Kind = "metric"
	KindHealthLog   Kind = "health_log"
	KindVaccination Kind = "vaccination"
	KindMedication  Kind = "medication"
)

// AllKinds en orden estable; lo usan los adapters para recorrer tablas/buckets.
var AllKinds = []Kind{KindMetric, KindHealthLog, KindVaccination, KindMedication}

func (k Kind) Valid() bool {
	switch k {
	case KindMetric, KindHealthLog, KindVaccination, KindMedication:
		return true
	}
	return false
}

// Record es la unión cerrada de registros de salud con fecha. Solo las
// variantes de este paquete la implementan (método sealed sin exportar), así
// que un switch de tipos sobre Record es exhaustivo.
type Record interface {
	RecordID() string
	PetRef() string
	Timestamp() time.Time
	Kind() Kind

	sealed()
}

type MetricCategory string

const (
	CategoryWeight      MetricCategory = "weight"
	CategoryTemperature MetricCategory = "temperature"
	CategoryVisit       MetricCategory = "visit"
	CategoryExam        MetricCategory = "exam"
	CategoryMedication  MetricCategory = "medication"
	CategoryVaccine     MetricCategory = "vaccine"
	CategoryOther       MetricCategory = "other"
)

func (c MetricCategory) Valid() bool {
	switch c {
	case CategoryWeight, CategoryTemperature, CategoryVisit, CategoryExam,
		CategoryMedication, CategoryVaccine, CategoryOther:
		return true
	}
	return false
}

// MetricRecord es una medición o anotación puntual (peso, temperatura, consulta...).
type MetricRecord struct {
	ID       string
	PetID    string
	Category MetricCategory
	Value    float64
	Date     time.Time
	Notes    string
}

// HealthLog es el diario de salud: actividad, agua, comida y síntomas del día.
type HealthLog struct {
	ID              string
	PetID           string
	Date            time.Time
	ActivityLevel   string
	ActivityMinutes int
	WaterIntake     string
	Symptoms        []string
	FoodIntake      string
	Notes           string
}

// VaccinationRecord es una dosis aplicada; NextDate es el refuerzo previsto.
type VaccinationRecord struct {
	ID       string
	PetID    string
	Name     string
	Date     time.Time
	NextDate *time.Time
	VetName  string
	Notes    string
}

// MedicationRecord es un tratamiento; sin EndDate se considera en curso.
type MedicationRecord struct {
	ID           string
	PetID        string
	Name         string
	Dosage       string
	Frequency    string
	StartDate    time.Time
	EndDate      *time.Time
	IsContinuous bool
	Notes        string
}

func (r MetricRecord) RecordID() string     { return r.ID }
func (r MetricRecord) PetRef() string       { return r.PetID }
func (r MetricRecord) Timestamp() time.Time { return r.Date }
func (r MetricRecord) Kind() Kind           { return KindMetric }
func (MetricRecord) sealed()                {}

func (r HealthLog) RecordID() string     { return r.ID }
func (r HealthLog) PetRef() string       { return r.PetID }
func (r HealthLog) Timestamp() time.Time { return r.Date }
func (r HealthLog) Kind() Kind           { return KindHealthLog }
func (HealthLog) sealed()                {}

func (r VaccinationRecord) RecordID() string     { return r.ID }
func (r VaccinationRecord) PetRef() string       { return r.PetID }
func (r VaccinationRecord) Timestamp() time.Time { return r.Date }
func (r VaccinationRecord) Kind() Kind           { return KindVaccination }
func (VaccinationRecord) sealed()                {}

func (r MedicationRecord) RecordID() string     { return r.ID }
func (r MedicationRecord) PetRef() string       { return r.PetID }
func (r MedicationRecord) Timestamp() time.Time { return r.StartDate }
func (r MedicationRecord) Kind() Kind           { return KindMedication }
func (MedicationRecord) sealed()                {}

// WithID devuelve una copia del registro con el id indicado.
func WithID(r Record, id string) Record {
	switch v := r.(type) {
	case MetricRecord:
		v.ID = id
		return v
	case HealthLog:
		v.ID = id
		return v
	case VaccinationRecord:
		v.ID = id
		return v
	case MedicationRecord:
		v.ID = id
		return v
	}
	return r
}

// WithPet devuelve una copia del registro asociada a petID. Payload no lleva
// pet_id, así que los adapters lo restauran al leer.
func WithPet(r Record, petID string) Record {
	switch v := r.(type) {
	case MetricRecord:
		v.PetID = petID
		return v
	case HealthLog:
		v.PetID = petID
		return v
	case VaccinationRecord:
		v.PetID = petID
		return v
	case MedicationRecord:
		v.PetID = petID
		return v
	}
	return r
}

// Set agrupa un []Record por variante.
type Set struct {
	Metrics      []MetricRecord
	HealthLogs   []HealthLog
	Vaccinations []VaccinationRecord
	Medications  []MedicationRecord
}

// Split separa los registros por variante conservando el orden de entrada.
func Split(items []Record) Set {
	var s Set
	for _, r := range items {
		switch v := r.(type) {
		case MetricRecord:
			s.Metrics = append(s.Metrics, v)
		case HealthLog:
			s.HealthLogs = append(s.HealthLogs, v)
		case VaccinationRecord:
			s.Vaccinations = append(s.Vaccinations, v)
		case MedicationRecord:
			s.Medications = append(s.Medications, v)
		}
	}
	return s
}
