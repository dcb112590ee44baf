package records

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"pet-care-insights/internal/domain/pets"
	"pet-care-insights/internal/middleware"
	"pet-care-insights/internal/platform/dates"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, petsSvc *pets.Service) {
	r.Route("/pets/{petID}/records", func(rr chi.Router) {
		rr.Post("/", createRecordHandler(svc, petsSvc))
		rr.Get("/", listRecordsHandler(svc, petsSvc))
	})
}

// Payload es la forma JSON polimórfica de un Record (API, snapshot y bolt):
// kind decide qué campos se leen.
type Payload struct {
	Kind Kind   `json:"kind" enums:"metric,health_log,vaccination,medication"`
	ID   string `json:"id,omitempty"`

	Date string `json:"date,omitempty"` // metric, health_log, vaccination

	// metric
	Category MetricCategory `json:"category,omitempty"`
	Value    float64        `json:"value,omitempty"`

	// health_log
	ActivityLevel   string   `json:"activity_level,omitempty"`
	ActivityMinutes int      `json:"activity_minutes,omitempty"`
	WaterIntake     string   `json:"water_intake,omitempty"`
	Symptoms        []string `json:"symptoms,omitempty"`
	FoodIntake      string   `json:"food_intake,omitempty"`

	// vaccination / medication
	Name     string `json:"name,omitempty"`
	NextDate string `json:"next_date,omitempty"`
	VetName  string `json:"vet_name,omitempty"`

	Dosage       string `json:"dosage,omitempty"`
	Frequency    string `json:"frequency,omitempty"`
	StartDate    string `json:"start_date,omitempty"`
	EndDate      string `json:"end_date,omitempty"`
	IsContinuous bool   `json:"is_continuous,omitempty"`

	Notes string `json:"notes,omitempty"`
}

// createRecordHandler godoc
// @Summary Registrar dato de salud
// @Description Crea un registro (metric, health_log, vaccination, medication). Las fechas aceptan RFC3339 o YYYY-MM-DD.
// @Tags records
// @Accept json
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param petID path string true "ID de la mascota"
// @Param payload body Payload true "Registro"
// @Success 201 {object} Payload
// @Failure 400 {string} string "invalid json / fecha inválida / reglas de negocio"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/records [post]
func createRecordHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		petID := chi.URLParam(r, "petID")
		if _, err := petsSvc.OwnedBy(r.Context(), petID, claims.UserID); err != nil {
			pets.WriteAccessError(w, err)
			return
		}

		var req Payload
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		rec, err := req.ToRecord(time.UTC)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		created, err := svc.Add(r.Context(), petID, rec)
		if err != nil {
			if errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrInvalidTimestamp) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, ToPayload(created))
	}
}

// listRecordsHandler godoc
// @Summary Listar registros de salud
// @Tags records
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param petID path string true "ID de la mascota"
// @Param kinds query string false "CSV de variantes (metric,health_log,vaccination,medication)"
// @Param from query string false "Fecha mínima (RFC3339)"
// @Param to query string false "Fecha máxima (RFC3339)"
// @Success 200 {array} Payload
// @Failure 400 {string} string "Parámetros de filtro inválidos"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/records [get]
func listRecordsHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		petID := chi.URLParam(r, "petID")
		if _, err := petsSvc.OwnedBy(r.Context(), petID, claims.UserID); err != nil {
			pets.WriteAccessError(w, err)
			return
		}

		var filter ListFilter
		if v := strings.TrimSpace(r.URL.Query().Get("kinds")); v != "" {
			for _, p := range strings.Split(v, ",") {
				k := Kind(strings.TrimSpace(p))
				if !k.Valid() {
					http.Error(w, "unknown kind: "+string(k), http.StatusBadRequest)
					return
				}
				filter.Kinds = append(filter.Kinds, k)
			}
		}
		for _, bound := range []struct {
			key string
			dst **time.Time
		}{{"from", &filter.From}, {"to", &filter.To}} {
			v := strings.TrimSpace(r.URL.Query().Get(bound.key))
			if v == "" {
				continue
			}
			t, err := time.Parse(time.RFC3339, v)
			if err != nil {
				http.Error(w, bound.key+" must be RFC3339", http.StatusBadRequest)
				return
			}
			*bound.dst = &t
		}

		items, err := svc.ListByPet(r.Context(), petID, filter)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]Payload, 0, len(items))
		for _, it := range items {
			out = append(out, ToPayload(it))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func (p Payload) ToRecord(loc *time.Location) (Record, error) {
	switch p.Kind {
	case KindMetric:
		return MetricRecord{
			ID:       p.ID,
			Category: p.Category,
			Value:    p.Value,
			Date:     parseOrZero(p.Date, loc),
			Notes:    p.Notes,
		}, nil
	case KindHealthLog:
		return HealthLog{
			ID:              p.ID,
			Date:            parseOrZero(p.Date, loc),
			ActivityLevel:   p.ActivityLevel,
			ActivityMinutes: p.ActivityMinutes,
			WaterIntake:     p.WaterIntake,
			Symptoms:        p.Symptoms,
			FoodIntake:      p.FoodIntake,
			Notes:           p.Notes,
		}, nil
	case KindVaccination:
		return VaccinationRecord{
			ID:       p.ID,
			Name:     p.Name,
			Date:     parseOrZero(p.Date, loc),
			NextDate: dates.ParseOptional(p.NextDate, loc),
			VetName:  p.VetName,
			Notes:    p.Notes,
		}, nil
	case KindMedication:
		start := p.StartDate
		if start == "" {
			start = p.Date
		}
		return MedicationRecord{
			ID:           p.ID,
			Name:         p.Name,
			Dosage:       p.Dosage,
			Frequency:    p.Frequency,
			StartDate:    parseOrZero(start, loc),
			EndDate:      dates.ParseOptional(p.EndDate, loc),
			IsContinuous: p.IsContinuous,
			Notes:        p.Notes,
		}, nil
	}
	return nil, errors.New("kind must be one of metric, health_log, vaccination, medication")
}

// DecodePayload convierte el JSON polimórfico (mismo formato que la API) en un
// Record. Fechas primarias inválidas quedan en cero y el servicio las rechaza
// con ErrInvalidTimestamp.
func DecodePayload(raw []byte, loc *time.Location) (Record, error) {
	var p Payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	return p.ToRecord(loc)
}

// ToPayload es la forma JSON de un Record.
func ToPayload(r Record) Payload {
	switch v := r.(type) {
	case MetricRecord:
		return Payload{Kind: KindMetric, ID: v.ID, Date: formatTime(v.Date),
			Category: v.Category, Value: v.Value, Notes: v.Notes}
	case HealthLog:
		return Payload{Kind: KindHealthLog, ID: v.ID, Date: formatTime(v.Date),
			ActivityLevel: v.ActivityLevel, ActivityMinutes: v.ActivityMinutes,
			WaterIntake: v.WaterIntake, Symptoms: v.Symptoms, FoodIntake: v.FoodIntake, Notes: v.Notes}
	case VaccinationRecord:
		return Payload{Kind: KindVaccination, ID: v.ID, Date: formatTime(v.Date),
			Name: v.Name, NextDate: formatOptional(v.NextDate), VetName: v.VetName, Notes: v.Notes}
	case MedicationRecord:
		return Payload{Kind: KindMedication, ID: v.ID, Name: v.Name,
			Dosage: v.Dosage, Frequency: v.Frequency, StartDate: formatTime(v.StartDate),
			EndDate: formatOptional(v.EndDate), IsContinuous: v.IsContinuous, Notes: v.Notes}
	}
	return Payload{}
}

func parseOrZero(s string, loc *time.Location) time.Time {
	t, _ := dates.Parse(s, loc)
	return t
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339Nano)
}

func formatOptional(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatTime(*t)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
