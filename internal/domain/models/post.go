// internal/domain/models/post.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post is one board announcement in the "posts" collection.
//
// Likes carries user ids with set semantics: a user appears at most
// once, enforced by $addToSet/$pull updates rather than whole-document
// writes. Comentarios is append-only ($push); it is never reordered or
// truncated. Rol holds the author's role label frozen at publish time;
// a later cargo change does not rewrite old posts.
type Post struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Texto       string             `bson:"texto" json:"texto"`
	Autor       string             `bson:"autor" json:"autor"`
	AutorID     string             `bson:"autorId" json:"autorId"`
	Rol         string             `bson:"rol" json:"rol"`
	Likes       []string           `bson:"likes" json:"likes"`
	Comentarios []Comment          `bson:"comentarios" json:"comentarios"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// Comment is one element of a post's comentarios array.
// Fecha is observed at append time; ordering inside one post is
// secondary to the board's createdAt ordering.
type Comment struct {
	Texto string    `bson:"texto" json:"texto"`
	Autor string    `bson:"autor" json:"autor"`
	Rol   string    `bson:"rol" json:"rol"`
	Fecha time.Time `bson:"fecha" json:"fecha"`
}
