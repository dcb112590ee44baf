package auth

import "strings"

// Claims es la identidad del dueño que hace el request.
type Claims struct {
	UserID   string
	Email    string
	TenantID string
}

// Authenticated indica si hay un usuario identificado.
func (c Claims) Authenticated() bool {
	return strings.TrimSpace(c.UserID) != ""
}
