// internal/app/store/credentials/credentialstore.go

// Package credentialstore persists authentication credentials in the
// "credenciales" collection, separate from profile data the way an
// external identity provider keeps them.
package credentialstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/redescolar/cartelera/internal/app/system/normalize"
	"github.com/redescolar/cartelera/internal/domain/models"
)

// ErrDuplicateEmail is returned when a credential with the email already exists.
var ErrDuplicateEmail = errors.New("a credential with this email already exists")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("credenciales")}
}

// Create inserts a new credential and returns it with its assigned id.
func (s *Store) Create(ctx context.Context, email, passwordHash string) (models.Credential, error) {
	cred := models.Credential{
		ID:           primitive.NewObjectID(),
		Email:        normalize.Email(email),
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, cred); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Credential{}, ErrDuplicateEmail
		}
		return models.Credential{}, err
	}
	return cred, nil
}

// GetByEmail looks up a credential by case-insensitive email.
// Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.Credential, error) {
	var cred models.Credential
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&cred); err != nil {
		return nil, err
	}
	return &cred, nil
}
