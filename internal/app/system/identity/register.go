// internal/app/system/identity/register.go
package identity

import (
	"context"

	"go.uber.org/zap"

	profilestore "github.com/redescolar/cartelera/internal/app/store/profiles"
	"github.com/redescolar/cartelera/internal/app/system/normalize"
	"github.com/redescolar/cartelera/internal/app/system/policy"
	"github.com/redescolar/cartelera/internal/domain/models"
)

// ProfileCreator writes the initial profile document for a new
// credential. *profilestore.Store satisfies it.
type ProfileCreator interface {
	Create(ctx context.Context, in profilestore.CreateInput) (models.User, error)
}

// Registrar performs the two-step registration: create the credential,
// then write the initial profile. From the caller's perspective it is
// one logical operation.
type Registrar struct {
	provider    Provider
	profiles    ProfileCreator
	teacherCode string
	log         *zap.Logger
}

func NewRegistrar(provider Provider, profiles ProfileCreator, teacherCode string, logger *zap.Logger) *Registrar {
	return &Registrar{
		provider:    provider,
		profiles:    profiles,
		teacherCode: teacherCode,
		log:         logger,
	}
}

// RegisterInput is what the registration form collects.
type RegisterInput struct {
	Nombre     string
	Email      string
	Password   string
	Rol        policy.Rol
	SecretCode string
}

// Register creates a credential and its profile. The teacher-code gate
// is checked first: a wrong code rejects the registration before any
// credential exists. If the profile write fails after the credential
// was created, the account is in a known inconsistent state and a
// PartialRegistrationError is returned; it is never silently swallowed
// and no automatic rollback is attempted (deleting the credential could
// race a concurrent sign-in against it).
func (g *Registrar) Register(ctx context.Context, in RegisterInput) (policy.Identity, error) {
	if in.Rol == policy.RolProfe && in.SecretCode != g.teacherCode {
		return policy.Identity{}, ErrInvalidTeacherCode
	}

	uid, err := g.provider.CreateCredential(ctx, in.Email, in.Password)
	if err != nil {
		return policy.Identity{}, err
	}

	u, err := g.profiles.Create(ctx, profilestore.CreateInput{
		UID:    uid,
		Nombre: normalize.Name(in.Nombre),
		Email:  in.Email,
		Rol:    in.Rol,
	})
	if err != nil {
		g.log.Error("registration left orphaned credential",
			zap.String("uid", uid),
			zap.Error(err))
		return policy.Identity{}, &PartialRegistrationError{CredentialID: uid, Err: err}
	}

	g.log.Info("user registered",
		zap.String("uid", uid),
		zap.String("rol", u.Rol))
	return profilestore.Identity(&u), nil
}
