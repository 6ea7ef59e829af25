// internal/domain/models/credential.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Credential is an authentication record in the "credenciales"
// collection, decoupled from the profile the way an external identity
// provider would keep it. The hex of its id is the uid that profile
// documents use as _id.
type Credential struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password_hash"`
	CreatedAt    time.Time          `bson:"createdAt"`
}
