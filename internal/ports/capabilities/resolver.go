package capabilities

import "context"

// Wildcard habilita todas las capabilities.
const Wildcard = "*"

// Set son las capabilities de un usuario (key => habilitada).
type Set map[string]bool

// Allows indica si key está habilitada, directamente o por Wildcard.
func (s Set) Allows(key string) bool {
	return s[Wildcard] || s[key]
}

// ReportSection es la key que habilita una sección del reporte ("report:weight").
func ReportSection(section string) string {
	return "report:" + section
}

type Resolver interface {
	Resolve(ctx context.Context, userID string) (Set, error)
}
