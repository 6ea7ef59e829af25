// internal/app/store/posts/poststore.go

// Package poststore persists board announcements in the "posts"
// collection. The likes set and the comentarios sequence are the two
// fields multiple actors mutate concurrently, so both are only ever
// touched through atomic element operations ($addToSet, $pull, $push),
// never read-modify-write, which would lose updates under concurrent
// writers.
package poststore

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
	return &Store{c: db.Collection("posts")}
}

// CreateInput holds the fields stamped into a new announcement.
// Rol is the author's role label resolved at publish time; it is frozen
// into the record and never rewritten.
type CreateInput struct {
	Texto   string
	Autor   string
	AutorID string
	Rol     string
}

// Create inserts a new announcement with empty likes and comments.
func (s *Store) Create(ctx context.Context, in CreateInput) (models.Post, error) {
	p := models.Post{
		ID:          primitive.NewObjectID(),
		Texto:       in.Texto,
		Autor:       in.Autor,
		AutorID:     in.AutorID,
		Rol:         in.Rol,
		Likes:       []string{},
		Comentarios: []models.Comment{},
		CreatedAt:   time.Now().UTC(),
	}
	if _, err := s.c.InsertOne(ctx, p); err != nil {
		return models.Post{}, err
	}
	return p, nil
}

// List returns all announcements newest first. Equal timestamps fall
// back to insertion order via _id so the sequence is stable between
// resyncs.
func (s *Store) List(ctx context.Context) ([]models.Post, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "createdAt", Value: -1},
		{Key: "_id", Value: -1},
	})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	posts := []models.Post{}
	if err := cur.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// GetByID loads one announcement.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	var p models.Post
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ToggleLike flips uid's membership in the post's likes set and reports
// the resulting state. The removal path matches on membership, so two
// racing toggles by different users each land on their own element;
// $addToSet keeps the set free of duplicates even if the same user's
// toggle is retried.
func (s *Store) ToggleLike(ctx context.Context, id primitive.ObjectID, uid string) (liked bool, err error) {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "likes": uid},
		bson.M{"$pull": bson.M{"likes": uid}})
	if err != nil {
		return false, err
	}
	if res.ModifiedCount > 0 {
		return false, nil
	}

	res, err = s.c.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$addToSet": bson.M{"likes": uid}})
	if err != nil {
		return false, err
	}
	if res.MatchedCount == 0 {
		return false, mongo.ErrNoDocuments
	}
	return true, nil
}

// AddComment appends one comment to the post's comentarios sequence.
func (s *Store) AddComment(ctx context.Context, id primitive.ObjectID, c models.Comment) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$push": bson.M{"comentarios": c}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Delete removes an announcement. Deleting an id that no longer exists
// is a no-op, not an error: the operation is idempotent so a client can
// safely retry.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
