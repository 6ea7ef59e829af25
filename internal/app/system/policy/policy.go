// internal/app/system/policy/policy.go

// Package policy is the single source of truth for role-derived
// permissions. Every component (HTTP middleware, the mutation
// coordinator, the subscription gates) calls these predicates rather
// than comparing role strings, so client-advisory and authoritative
// decisions can never diverge.
package policy

import "fmt"

// Rol is the base role assigned once at registration.
type Rol string

const (
	RolEstudiante Rol = "Estudiante"
	RolProfe      Rol = "Profe"
)

// Cargo is an optional elevated appointment layered on top of the base
// role. It is revocable and mutated only by an administrative path
// outside this service.
type Cargo string

const (
	CargoNinguno   Cargo = "Ninguno"
	CargoPersonero Cargo = "Personero"
)

// ParseRol validates a role string from untrusted input.
func ParseRol(s string) (Rol, error) {
	switch Rol(s) {
	case RolEstudiante, RolProfe:
		return Rol(s), nil
	default:
		return "", fmt.Errorf("rol must be %q or %q", RolEstudiante, RolProfe)
	}
}

// Identity is a fully resolved user identity: credential id plus the
// profile fields permissions derive from.
type Identity struct {
	UID      string
	Nombre   string
	Rol      Rol
	Cargo    Cargo
	PhotoURL string
}

// RoleLabel returns the label frozen into content the user authors:
// the cargo when one is held, otherwise the base role.
func (i Identity) RoleLabel() string {
	if i.Cargo != "" && i.Cargo != CargoNinguno {
		return string(i.Cargo)
	}
	return string(i.Rol)
}

// CanModerateBoard reports whether the identity may publish official
// announcements and delete any post. There is no ownership override:
// moderators delete any post, non-moderators delete none.
func CanModerateBoard(i Identity) bool {
	return i.Rol == RolProfe || i.Cargo == CargoPersonero
}

// CanViewSuggestions reports whether the identity may open the
// suggestion inbox. Deliberately the same population as board
// moderation.
func CanViewSuggestions(i Identity) bool {
	return CanModerateBoard(i)
}
