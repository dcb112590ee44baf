package reports

import (
	"errors"
	"strings"
)

var ErrUnknownSection = errors.New("unknown report section")

// Section identifica una sección del reporte.
type Section string

const (
	SectionWeight       Section = "weight"
	SectionActivity     Section = "activity"
	SectionVaccinations Section = "vaccinations"
	SectionMedications  Section = "medications"
	SectionVisits       Section = "visits"
	SectionSymptoms     Section = "symptoms"
	SectionFood         Section = "food"
	SectionWater        Section = "water"
)

// Sections en el orden en que aparecen en el reporte.
var Sections = []Section{
	SectionWeight, SectionActivity, SectionVaccinations, SectionMedications,
	SectionVisits, SectionSymptoms, SectionFood, SectionWater,
}

// Options indica qué secciones incluir.
type Options struct {
	WeightData         bool
	ActivityData       bool
	VaccinationHistory bool
	MedicationHistory  bool
	VeterinaryVisits   bool
	Symptoms           bool
	FoodIntake         bool
	WaterIntake        bool
}

func AllSections() Options {
	return Options{
		WeightData:         true,
		ActivityData:       true,
		VaccinationHistory: true,
		MedicationHistory:  true,
		VeterinaryVisits:   true,
		Symptoms:           true,
		FoodIntake:         true,
		WaterIntake:        true,
	}
}

// ParseSections acepta un CSV de secciones ("weight,visits"). Vacío => todas.
func ParseSections(csv string) (Options, error) {
	if strings.TrimSpace(csv) == "" {
		return AllSections(), nil
	}

	var o Options
	for _, p := range strings.Split(csv, ",") {
		s := Section(strings.ToLower(strings.TrimSpace(p)))
		if s == "" {
			continue
		}
		if !o.set(s, true) {
			return Options{}, ErrUnknownSection
		}
	}
	return o, nil
}

// Enabled indica si la sección está pedida.
func (o Options) Enabled(s Section) bool {
	switch s {
	case SectionWeight:
		return o.WeightData
	case SectionActivity:
		return o.ActivityData
	case SectionVaccinations:
		return o.VaccinationHistory
	case SectionMedications:
		return o.MedicationHistory
	case SectionVisits:
		return o.VeterinaryVisits
	case SectionSymptoms:
		return o.Symptoms
	case SectionFood:
		return o.FoodIntake
	case SectionWater:
		return o.WaterIntake
	}
	return false
}

// List devuelve las secciones pedidas, en orden de reporte.
func (o Options) List() []Section {
	out := make([]Section, 0, len(Sections))
	for _, s := range Sections {
		if o.Enabled(s) {
			out = append(out, s)
		}
	}
	return out
}

// Mask apaga las secciones que allowed rechaza.
func (o Options) Mask(allowed func(Section) bool) Options {
	for _, s := range Sections {
		if o.Enabled(s) && !allowed(s) {
			o.set(s, false)
		}
	}
	return o
}

func (o *Options) set(s Section, v bool) bool {
	switch s {
	case SectionWeight:
		o.WeightData = v
	case SectionActivity:
		o.ActivityData = v
	case SectionVaccinations:
		o.VaccinationHistory = v
	case SectionMedications:
		o.MedicationHistory = v
	case SectionVisits:
		o.VeterinaryVisits = v
	case SectionSymptoms:
		o.Symptoms = v
	case SectionFood:
		o.FoodIntake = v
	case SectionWater:
		o.WaterIntake = v
	default:
		return false
	}
	return true
}
