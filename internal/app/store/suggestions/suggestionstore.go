// internal/app/store/suggestions/suggestionstore.go

// Package suggestionstore persists the one-way suggestion inbox in the
// "sugerencias" collection.
package suggestionstore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/redescolar/cartelera/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("sugerencias")}
}

// Create inserts a suggestion. The author gets no read access back;
// only moderators ever list the collection.
func (s *Store) Create(ctx context.Context, texto, autor, uid string) (models.Suggestion, error) {
	sug := models.Suggestion{
		ID:        primitive.NewObjectID(),
		Texto:     texto,
		Autor:     autor,
		UID:       uid,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, sug); err != nil {
		return models.Suggestion{}, err
	}
	return sug, nil
}

// List returns all suggestions newest first, insertion order on ties.
func (s *Store) List(ctx context.Context) ([]models.Suggestion, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "createdAt", Value: -1},
		{Key: "_id", Value: -1},
	})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	out := []models.Suggestion{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
