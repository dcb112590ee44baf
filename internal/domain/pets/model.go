package pets

import "time"

// Species define las especies soportadas.
// @Enum dog, cat, other
type Species string

const (
	SpeciesDog   Species = "dog"
	SpeciesCat   Species = "cat"
	SpeciesOther Species = "other"
)

// Sex define el sexo de la mascota.
// @Enum male, female, unknown
type Sex string

const (
	SexMale    Sex = "male"
	SexFemale  Sex = "female"
	SexUnknown Sex = "unknown"
)

// PlaceholderName se usa cuando un registro referencia una mascota que no
// está en la lista recibida. El registro se sigue mostrando.
const PlaceholderName = "Pet not found"

// EmbeddedVaccination es una vacuna cargada directamente en el perfil de la
// mascota (alta rápida desde el formulario), independiente de los
// VaccinationRecord del historial.
type EmbeddedVaccination struct {
	Name     string
	Date     time.Time
	NextDate *time.Time
	VetName  string
}

// Pet representa el perfil de una mascota registrada por su tutor.
type Pet struct {
	ID          string
	OwnerUserID string

	Name    string
	Species Species
	Breed   string
	Sex     Sex

	BirthDate *time.Time
	PhotoURL  string

	Notes string

	Vaccinations []EmbeddedVaccination

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NameIndex arma un índice id => nombre para resolver referencias.
func NameIndex(items []Pet) map[string]string {
	out := make(map[string]string, len(items))
	for _, p := range items {
		out[p.ID] = p.Name
	}
	return out
}

// IDs devuelve los ids en el orden recibido.
func IDs(items []Pet) []string {
	out := make([]string, 0, len(items))
	for _, p := range items {
		out = append(out, p.ID)
	}
	return out
}
