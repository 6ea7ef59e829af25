// internal/app/store/profiles/profilestore.go

// Package profilestore persists profile documents in the "usuarios"
// collection. A profile's _id is the credential id it belongs to.
package profilestore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/redescolar/cartelera/internal/app/system/normalize"
	"github.com/redescolar/cartelera/internal/app/system/policy"
	"github.com/redescolar/cartelera/internal/domain/models"
)

var (
	// ErrDuplicateEmail is returned when a profile with the email already exists.
	ErrDuplicateEmail = errors.New("a profile with this email already exists")
	errNoNombre       = errors.New("nombre must not be empty")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("usuarios")}
}

// CreateInput holds the fields written at registration.
type CreateInput struct {
	UID    string
	Nombre string
	Email  string
	Rol    policy.Rol
}

// Create writes the initial profile for a freshly issued credential.
// Cargo always starts at "Ninguno"; appointments are granted later by
// an administrative path.
func (s *Store) Create(ctx context.Context, in CreateInput) (models.User, error) {
	nombre := normalize.Name(in.Nombre)
	if nombre == "" {
		return models.User{}, errNoNombre
	}

	u := models.User{
		ID:        in.UID,
		Nombre:    nombre,
		NombreCI:  text.Fold(nombre),
		Email:     normalize.Email(in.Email),
		Rol:       string(in.Rol),
		Cargo:     string(policy.CargoNinguno),
		PhotoURL:  "",
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// GetByID loads a profile by credential id.
// Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByID(ctx context.Context, uid string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": uid}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// FindByID returns the profile as a zero-or-one element slice, which is
// the snapshot shape the profile subscription re-queries on every
// change notification.
func (s *Store) FindByID(ctx context.Context, uid string) ([]models.User, error) {
	u, err := s.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return []models.User{*u}, nil
}

// SetPhotoURL updates the profile's media reference and nothing else.
// Ownership is enforced by the caller (the mutation coordinator); here
// the update is a single-field $set so no other profile field can be
// clobbered by a concurrent writer.
func (s *Store) SetPhotoURL(ctx context.Context, uid, url string) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": uid},
		bson.M{"$set": bson.M{"photoURL": url}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Identity converts a profile document into the resolved identity the
// policy engine evaluates.
func Identity(u *models.User) policy.Identity {
	return policy.Identity{
		UID:      u.ID,
		Nombre:   u.Nombre,
		Rol:      policy.Rol(u.Rol),
		Cargo:    policy.Cargo(u.Cargo),
		PhotoURL: u.PhotoURL,
	}
}
