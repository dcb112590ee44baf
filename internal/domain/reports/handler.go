package reports

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"pet-care-insights/internal/domain/pets"
	"pet-care-insights/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/pets/{petID}/report", getReportHandler(svc))
}

// getReportHandler godoc
// @Summary Reporte de salud
// @Description Arma el reporte de la mascota para un rango (preset o from/to). Las secciones no pedidas o no incluidas en el plan no aparecen en la respuesta.
// @Tags reports
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param petID path string true "ID de la mascota"
// @Param range query string false "7d | 30d | 90d | 180d | 365d (default 30d)"
// @Param from query string false "Inicio del rango (RFC3339 o YYYY-MM-DD). Tiene prioridad sobre range"
// @Param to query string false "Fin del rango (RFC3339 o YYYY-MM-DD). Vacío = ahora"
// @Param sections query string false "CSV: weight,activity,vaccinations,medications,visits,symptoms,food,water (default todas)"
// @Success 200 {object} Content
// @Failure 400 {string} string "rango o secciones inválidas"
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/report [get]
func getReportHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		q := r.URL.Query()
		opts, err := ParseSections(q.Get("sections"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		rq := RangeQuery{Preset: q.Get("range"), From: q.Get("from"), To: q.Get("to")}
		content, err := svc.Build(r.Context(), claims.UserID, chi.URLParam(r, "petID"), rq, opts)
		switch {
		case errors.Is(err, ErrInvalidRange), errors.Is(err, ErrUnknownPreset):
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		case err != nil:
			pets.WriteAccessError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, content)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
