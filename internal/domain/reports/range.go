package reports

import (
	"errors"
	"strings"
	"time"

	"pet-care-insights/internal/platform/dates"
)

var (
	ErrInvalidRange  = errors.New("invalid range: start after end")
	ErrUnknownPreset = errors.New("unknown range preset")
)

// Preset es un rango relativo a "now" ("últimos N días").
// @Enum 7d, 30d, 90d, 180d, 365d
type Preset string

const (
	Preset7d   Preset = "7d"
	Preset30d  Preset = "30d"
	Preset90d  Preset = "90d"
	Preset180d Preset = "180d"
	Preset365d Preset = "365d"

	// PresetCustom marca un rango armado con Custom.
	PresetCustom Preset = "custom"

	DefaultPreset = Preset30d
)

var presetDays = map[Preset]int{
	Preset7d:   7,
	Preset30d:  30,
	Preset90d:  90,
	Preset180d: 180,
	Preset365d: 365,
}

func ParsePreset(s string) (Preset, error) {
	p := Preset(strings.ToLower(strings.TrimSpace(s)))
	if p == "" {
		return DefaultPreset, nil
	}
	if _, ok := presetDays[p]; !ok {
		return "", ErrUnknownPreset
	}
	return p, nil
}

// Days devuelve la cantidad de días del preset (0 si no es un preset).
func (p Preset) Days() int {
	return presetDays[p]
}

// Range es un intervalo [Start, End] con ambos extremos incluidos.
type Range struct {
	Start  time.Time
	End    time.Time
	Preset Preset
}

// ResolvePreset devuelve [now - N días, now].
func ResolvePreset(p Preset, now time.Time) (Range, error) {
	n, ok := presetDays[p]
	if !ok {
		return Range{}, ErrUnknownPreset
	}
	return Range{Start: dates.DaysBack(now, n), End: now, Preset: p}, nil
}

// Custom arma un rango explícito. Un end en cero significa "hasta now".
func Custom(start, end, now time.Time) (Range, error) {
	if end.IsZero() {
		end = now
	}
	if start.After(end) {
		return Range{}, ErrInvalidRange
	}
	return Range{Start: start, End: end, Preset: PresetCustom}, nil
}

func (r Range) Contains(t time.Time) bool {
	return dates.Within(t, r.Start, r.End)
}

// RangeQuery es la forma textual del rango (query string o flags de la CLI):
// un preset, o from/to (RFC3339 o YYYY-MM-DD). from/to tiene prioridad.
type RangeQuery struct {
	Preset string
	From   string
	To     string
}

func ParseRange(q RangeQuery, now time.Time) (Range, error) {
	from, to := strings.TrimSpace(q.From), strings.TrimSpace(q.To)
	if from == "" && to == "" {
		p, err := ParsePreset(q.Preset)
		if err != nil {
			return Range{}, err
		}
		return ResolvePreset(p, now)
	}

	// Sin from: desde el primer registro.
	var start, end time.Time
	var ok bool
	if from != "" {
		if start, ok = dates.Parse(from, now.Location()); !ok {
			return Range{}, ErrInvalidRange
		}
	}
	if to != "" {
		if end, ok = dates.Parse(to, now.Location()); !ok {
			return Range{}, ErrInvalidRange
		}
		// Una fecha sin hora cubre el día completo.
		if len(to) == len(dates.DateFormat) {
			end = end.Add(dates.Day - time.Nanosecond)
		}
	}
	return Custom(start, end, now)
}
