// internal/app/system/identity/errors.go
package identity

import (
	"errors"
	"fmt"
)

// Credential errors map one-to-one onto the identity provider's failure
// modes. They are recovered locally by translating to a user-facing
// message; none is fatal.
var (
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrWeakPassword       = errors.New("password too weak")
	ErrEmailInUse         = errors.New("email already registered")
	ErrUserNotFound       = errors.New("no account for this email")
	ErrWrongPassword      = errors.New("wrong password")
	ErrInvalidTeacherCode = errors.New("teacher code does not match")
)

// PartialRegistrationError reports the known two-step registration
// failure edge: the credential was created but the profile write
// failed, leaving an orphaned credential. It is deliberately distinct
// from the credential errors above so callers can tell a recoverable
// inconsistency from a plain rejection. No automatic compensation is
// attempted; see the resolver contract.
type PartialRegistrationError struct {
	CredentialID string
	Err          error
}

func (e *PartialRegistrationError) Error() string {
	return fmt.Sprintf("credential %s created but profile write failed: %v", e.CredentialID, e.Err)
}

func (e *PartialRegistrationError) Unwrap() error { return e.Err }

// UserMessage translates an identity error into the Spanish message the
// clients show. Unknown errors get the generic fallback.
func UserMessage(err error) string {
	var partial *PartialRegistrationError
	switch {
	case errors.Is(err, ErrInvalidEmail):
		return "El formato del correo es inválido."
	case errors.Is(err, ErrUserNotFound):
		return "No existe una cuenta con este correo."
	case errors.Is(err, ErrWrongPassword):
		return "Contraseña incorrecta."
	case errors.Is(err, ErrEmailInUse):
		return "Este correo ya está registrado."
	case errors.Is(err, ErrWeakPassword):
		return "La contraseña debe tener al menos 6 caracteres."
	case errors.Is(err, ErrInvalidTeacherCode):
		return "El código de docente no es correcto."
	case errors.As(err, &partial):
		return "Tu cuenta quedó incompleta. Contacta al administrador."
	default:
		return "Ocurrió un error inesperado. Inténtalo de nuevo."
	}
}
