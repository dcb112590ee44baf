package reports

import (
	"time"

	"pet-care-insights/internal/domain/events"
	"pet-care-insights/internal/domain/vaccines"
)

// Content es el reporte armado. Las secciones no pedidas quedan en nil y no
// aparecen en el JSON.
type Content struct {
	PetID       string    `json:"pet_id"`
	PetName     string    `json:"pet_name"`
	Range       RangeInfo `json:"range"`
	GeneratedAt time.Time `json:"generated_at"`

	Weight       *WeightSection      `json:"weight,omitempty"`
	Activity     *ActivitySection    `json:"activity,omitempty"`
	Vaccinations *VaccinationSection `json:"vaccinations,omitempty"`
	Medications  *MedicationSection  `json:"medications,omitempty"`
	Visits       *VisitSection       `json:"visits,omitempty"`
	Symptoms     *SymptomSection     `json:"symptoms,omitempty"`
	Food         *FoodSection        `json:"food,omitempty"`
	Water        *WaterSection       `json:"water,omitempty"`
}

type RangeInfo struct {
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Preset Preset    `json:"preset"`
}

// Count es una entrada de histograma (valor, ocurrencias).
type Count struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

type WeightPoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// Direction de la tendencia de peso.
// @Enum up, down, stable
type Direction string

const (
	DirectionUp     Direction = "up"
	DirectionDown   Direction = "down"
	DirectionStable Direction = "stable"
)

type Trend struct {
	Direction  Direction `json:"direction"`
	Percentage float64   `json:"percentage"`
}

type WeightSection struct {
	Points  []WeightPoint `json:"points"`
	Current *float64      `json:"current"`
	Average *float64      `json:"average"`
	Trend   *Trend        `json:"trend"`
}

type ActivitySection struct {
	Logs              int     `json:"logs"`
	TotalMinutes      int     `json:"total_minutes"`
	AverageMinutes    *int    `json:"average_minutes"`
	Levels            []Count `json:"levels"`
	MostFrequentLevel string  `json:"most_frequent_level,omitempty"`
}

type VaccinationItem struct {
	ID       string          `json:"id,omitempty"`
	Name     string          `json:"name"`
	Date     time.Time       `json:"date"`
	NextDate *time.Time      `json:"next_date,omitempty"`
	VetName  string          `json:"vet_name,omitempty"`
	Source   vaccines.Source `json:"source"`
	Status   vaccines.Status `json:"status"`
	Label    string          `json:"label"`
}

// Duplicate es un par nombre+día presente en el historial y en el perfil.
// Solo se informa; las dos entradas siguen en History.
type Duplicate struct {
	Name string    `json:"name"`
	Date time.Time `json:"date"`
}

type VaccinationSection struct {
	History            []VaccinationItem `json:"history"`
	Upcoming           []VaccinationItem `json:"upcoming"`
	PossibleDuplicates []Duplicate       `json:"possible_duplicates"`
}

// MedicationSource distingue tratamientos de anotaciones sueltas (métricas).
type MedicationSource string

const (
	MedicationFromRecord MedicationSource = "record"
	MedicationFromMetric MedicationSource = "metric"
)

type MedicationItem struct {
	ID           string           `json:"id,omitempty"`
	Name         string           `json:"name"`
	Dosage       string           `json:"dosage,omitempty"`
	Frequency    string           `json:"frequency,omitempty"`
	StartDate    time.Time        `json:"start_date"`
	EndDate      *time.Time       `json:"end_date,omitempty"`
	IsContinuous bool             `json:"is_continuous"`
	Notes        string           `json:"notes,omitempty"`
	Source       MedicationSource `json:"source"`
}

type MedicationSection struct {
	Active  []MedicationItem `json:"active"`
	History []MedicationItem `json:"history"`
}

// VisitSource distingue eventos del calendario de métricas de consulta.
type VisitSource string

const (
	VisitFromEvent  VisitSource = "event"
	VisitFromMetric VisitSource = "metric"
)

type VisitItem struct {
	ID     string             `json:"id,omitempty"`
	Title  string             `json:"title"`
	Date   time.Time          `json:"date"`
	Type   string             `json:"type"`
	Status events.EventStatus `json:"status,omitempty"`
	Notes  string             `json:"notes,omitempty"`
	Source VisitSource        `json:"source"`
}

type VisitSection struct {
	History  []VisitItem `json:"history"`
	Upcoming []VisitItem `json:"upcoming"`
}

type SymptomSection struct {
	Counts []Count `json:"counts"`
	Total  int     `json:"total"`
}

type FoodEntry struct {
	Date       time.Time `json:"date"`
	FoodIntake string    `json:"food_intake"`
	Notes      string    `json:"notes,omitempty"`
}

type FoodSection struct {
	Entries []FoodEntry `json:"entries"`
}

type WaterSection struct {
	Levels       []Count `json:"levels"`
	MostFrequent string  `json:"most_frequent,omitempty"`
}
