// internal/app/system/identity/provider.go

// Package identity resolves authentication credentials into application
// identities. A credential alone is never enough: resolution is
// conjunctive, requiring both the credential and the matching profile
// document before a user counts as authenticated.
package identity

import (
	"context"
	"errors"
	"net/mail"

	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	credentialstore "github.com/redescolar/cartelera/internal/app/store/credentials"
	"github.com/redescolar/cartelera/internal/app/system/normalize"
)

// minPasswordLen matches the weak-password threshold clients already
// message about.
const minPasswordLen = 6

// Provider issues and verifies credentials. It is the boundary to the
// identity system; everything above it deals in opaque credential ids.
type Provider interface {
	// CreateCredential registers a new email+password pair and returns
	// the new credential id. Fails with ErrInvalidEmail,
	// ErrWeakPassword, or ErrEmailInUse.
	CreateCredential(ctx context.Context, email, password string) (string, error)

	// Authenticate verifies an email+password pair and returns the
	// credential id. Fails with ErrInvalidEmail, ErrUserNotFound, or
	// ErrWrongPassword.
	Authenticate(ctx context.Context, email, password string) (string, error)
}

// MongoProvider is the credential store-backed Provider.
type MongoProvider struct {
	creds *credentialstore.Store
}

func NewProvider(creds *credentialstore.Store) *MongoProvider {
	return &MongoProvider{creds: creds}
}

func (p *MongoProvider) CreateCredential(ctx context.Context, email, password string) (string, error) {
	email = normalize.Email(email)
	if !validEmail(email) {
		return "", ErrInvalidEmail
	}
	if len(password) < minPasswordLen {
		return "", ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	cred, err := p.creds.Create(ctx, email, string(hash))
	if err != nil {
		if errors.Is(err, credentialstore.ErrDuplicateEmail) {
			return "", ErrEmailInUse
		}
		return "", err
	}
	return cred.ID.Hex(), nil
}

func (p *MongoProvider) Authenticate(ctx context.Context, email, password string) (string, error) {
	email = normalize.Email(email)
	if !validEmail(email) {
		return "", ErrInvalidEmail
	}

	cred, err := p.creds.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", ErrUserNotFound
		}
		return "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)); err != nil {
		return "", ErrWrongPassword
	}
	return cred.ID.Hex(), nil
}

func validEmail(s string) bool {
	if s == "" {
		return false
	}
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}
