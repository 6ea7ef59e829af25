// internal/domain/models/user.go
package models

import "time"

// User is the application-owned profile record for one community member.
//
// The document lives in the "usuarios" collection and its _id is the
// credential id issued at registration, so credential and profile share
// one identifier. Field names are part of the persisted contract and
// must not change.
type User struct {
	ID        string    `bson:"_id" json:"id"`
	Nombre    string    `bson:"nombre" json:"nombre"`
	NombreCI  string    `bson:"nombre_ci" json:"-"` // lowercase, diacritics-stripped
	Email     string    `bson:"email" json:"email"`
	Rol       string    `bson:"rol" json:"rol"`     // Estudiante | Profe
	Cargo     string    `bson:"cargo" json:"cargo"` // Ninguno | Personero
	PhotoURL  string    `bson:"photoURL" json:"photoURL"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
