// internal/testutil/http.go
package testutil

import (
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/gorilla/securecookie"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/redescolar/cartelera/internal/app/system/auth"
	"github.com/redescolar/cartelera/internal/app/system/policy"
)

// SessionKey returns a fresh random session key for tests that need a
// real cookie store.
func SessionKey() string {
	return string(securecookie.GenerateRandomKey(32))
}

// Estudiante returns a plain student identity.
func Estudiante() policy.Identity {
	return policy.Identity{
		UID:    primitive.NewObjectID().Hex(),
		Nombre: "Estudiante Prueba",
		Rol:    policy.RolEstudiante,
		Cargo:  policy.CargoNinguno,
	}
}

// Profe returns a teacher identity.
func Profe() policy.Identity {
	return policy.Identity{
		UID:    primitive.NewObjectID().Hex(),
		Nombre: "Profe Prueba",
		Rol:    policy.RolProfe,
		Cargo:  policy.CargoNinguno,
	}
}

// Personero returns a student holding the personero cargo.
func Personero() policy.Identity {
	return policy.Identity{
		UID:    primitive.NewObjectID().Hex(),
		Nombre: "Personero Prueba",
		Rol:    policy.RolEstudiante,
		Cargo:  policy.CargoPersonero,
	}
}

// WithIdentity adds an identity to the request context for testing
// authenticated handlers. This bypasses the session middleware and
// injects the identity directly.
func WithIdentity(r *http.Request, id policy.Identity) *http.Request {
	return auth.WithTestIdentity(r, id)
}

// NewRequest creates an HTTP request for testing.
func NewRequest(method, target string) *http.Request {
	return httptest.NewRequest(method, target, nil)
}

// NewAuthenticatedRequest creates an HTTP request with an identity in
// context.
func NewAuthenticatedRequest(method, target string, id policy.Identity) *http.Request {
	return WithIdentity(httptest.NewRequest(method, target, nil), id)
}

// ResponseRecorder wraps httptest.ResponseRecorder with helper methods.
type ResponseRecorder struct {
	*httptest.ResponseRecorder
}

// NewRecorder creates a new ResponseRecorder.
func NewRecorder() *ResponseRecorder {
	return &ResponseRecorder{httptest.NewRecorder()}
}

// AssertStatus checks the response status code.
func (r *ResponseRecorder) AssertStatus(t interface{ Errorf(string, ...any) }, expected int) {
	if r.Code != expected {
		t.Errorf("status code: got %d, want %d", r.Code, expected)
	}
}

// AssertContains checks if the response body contains the expected string.
func (r *ResponseRecorder) AssertContains(t interface{ Errorf(string, ...any) }, expected string) {
	if !strings.Contains(r.Body.String(), expected) {
		t.Errorf("response body %q does not contain %q", r.Body.String(), expected)
	}
}
