// internal/testutil/fixtures.go
package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/redescolar/cartelera/internal/app/system/policy"
	"github.com/redescolar/cartelera/internal/domain/models"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateProfile inserts a profile document directly. The uid doubles as
// the document id, matching production layout.
func (f *Fixtures) CreateProfile(ctx context.Context, uid, nombre string, rol policy.Rol, cargo policy.Cargo) models.User {
	f.t.Helper()

	u := models.User{
		ID:        uid,
		Nombre:    nombre,
		NombreCI:  text.Fold(nombre),
		Email:     uid + "@test.example",
		Rol:       string(rol),
		Cargo:     string(cargo),
		CreatedAt: time.Now().UTC(),
	}
	if _, err := f.db.Collection("usuarios").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("create profile fixture: %v", err)
	}
	return u
}

// CreatePost inserts a board post directly.
func (f *Fixtures) CreatePost(ctx context.Context, texto, autor, autorID, rol string) models.Post {
	f.t.Helper()

	p := models.Post{
		ID:          primitive.NewObjectID(),
		Texto:       texto,
		Autor:       autor,
		AutorID:     autorID,
		Rol:         rol,
		Likes:       []string{},
		Comentarios: []models.Comment{},
		CreatedAt:   time.Now().UTC(),
	}
	if _, err := f.db.Collection("posts").InsertOne(ctx, p); err != nil {
		f.t.Fatalf("create post fixture: %v", err)
	}
	return p
}

// CreateSuggestion inserts a suggestion directly.
func (f *Fixtures) CreateSuggestion(ctx context.Context, texto, autor, uid string) models.Suggestion {
	f.t.Helper()

	s := models.Suggestion{
		ID:        primitive.NewObjectID(),
		Texto:     texto,
		Autor:     autor,
		UID:       uid,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := f.db.Collection("sugerencias").InsertOne(ctx, s); err != nil {
		f.t.Fatalf("create suggestion fixture: %v", err)
	}
	return s
}
