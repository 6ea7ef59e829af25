// internal/domain/models/suggestion.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Suggestion is one entry in the "sugerencias" inbox. Suggestions are
// one-way: any member can create one, only moderators ever read them,
// and they are never updated.
type Suggestion struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Texto     string             `bson:"texto" json:"texto"`
	Autor     string             `bson:"autor" json:"autor"`
	UID       string             `bson:"uid" json:"uid"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
