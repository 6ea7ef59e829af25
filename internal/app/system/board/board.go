// internal/app/system/board/board.go

// Package board is the mutation coordinator: every user action that
// writes shared data goes through here. Each operation re-checks policy
// at the write boundary (the HTTP layer's gates are advisory only) and
// maps to exactly one atomic backend operation, so nothing ever
// partially applies. On transport failure the error goes straight back
// to the caller; there is no retry loop in-core.
package board

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	poststore "github.com/redescolar/cartelera/internal/app/store/posts"
	profilestore "github.com/redescolar/cartelera/internal/app/store/profiles"
	suggestionstore "github.com/redescolar/cartelera/internal/app/store/suggestions"
	"github.com/redescolar/cartelera/internal/app/system/htmlsanitize"
	"github.com/redescolar/cartelera/internal/app/system/livesync"
	"github.com/redescolar/cartelera/internal/app/system/policy"
	"github.com/redescolar/cartelera/internal/domain/models"
)

var (
	// ErrPolicyDenied rejects an action outside the caller's role. It
	// is raised before any write is attempted.
	ErrPolicyDenied = errors.New("action not allowed for this role")
	// ErrEmptyText rejects blank content.
	ErrEmptyText = errors.New("texto must not be empty")
)

// Collection keys as the hub knows them.
const (
	PostsKey       = "posts"
	SuggestionsKey = "sugerencias"
	ProfilesKey    = "usuarios"
)

// Coordinator applies mutations and notifies the hub on success so
// open subscriptions resync.
type Coordinator struct {
	posts       *poststore.Store
	suggestions *suggestionstore.Store
	profiles    *profilestore.Store
	notify      livesync.Notifier
	log         *zap.Logger
}

func NewCoordinator(
	posts *poststore.Store,
	suggestions *suggestionstore.Store,
	profiles *profilestore.Store,
	notify livesync.Notifier,
	logger *zap.Logger,
) *Coordinator {
	return &Coordinator{
		posts:       posts,
		suggestions: suggestions,
		profiles:    profiles,
		notify:      notify,
		log:         logger,
	}
}

// PublishPost creates an official announcement. Moderators only. The
// caller's current role label is frozen into the record: a cargo change
// later never rewrites published posts.
func (c *Coordinator) PublishPost(ctx context.Context, caller policy.Identity, texto string) (models.Post, error) {
	if !policy.CanModerateBoard(caller) {
		return models.Post{}, ErrPolicyDenied
	}
	texto = htmlsanitize.Text(texto)
	if texto == "" {
		return models.Post{}, ErrEmptyText
	}

	p, err := c.posts.Create(ctx, poststore.CreateInput{
		Texto:   texto,
		Autor:   caller.Nombre,
		AutorID: caller.UID,
		Rol:     caller.RoleLabel(),
	})
	if err != nil {
		return models.Post{}, err
	}
	c.notify.Notify(PostsKey)
	c.log.Info("post published",
		zap.String("post_id", p.ID.Hex()),
		zap.String("autor_id", caller.UID))
	return p, nil
}

// ToggleLike flips the caller's membership in a post's likes set and
// reports the resulting state. Open to any authenticated member.
func (c *Coordinator) ToggleLike(ctx context.Context, caller policy.Identity, postID primitive.ObjectID) (bool, error) {
	liked, err := c.posts.ToggleLike(ctx, postID, caller.UID)
	if err != nil {
		return false, err
	}
	c.notify.Notify(PostsKey)
	return liked, nil
}

// AddComment appends one comment to a post. Open to any authenticated
// member; the comment carries the caller's base-role-or-cargo label and
// an append-time timestamp.
func (c *Coordinator) AddComment(ctx context.Context, caller policy.Identity, postID primitive.ObjectID, texto string) error {
	texto = htmlsanitize.Text(texto)
	if texto == "" {
		return ErrEmptyText
	}

	err := c.posts.AddComment(ctx, postID, models.Comment{
		Texto: texto,
		Autor: caller.Nombre,
		Rol:   string(caller.Rol),
		Fecha: time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	c.notify.Notify(PostsKey)
	return nil
}

// DeletePost removes any announcement. Moderators only; there is no
// ownership check. Deleting an id that is already gone is a no-op, so
// callers may retry freely.
func (c *Coordinator) DeletePost(ctx context.Context, caller policy.Identity, postID primitive.ObjectID) error {
	if !policy.CanModerateBoard(caller) {
		return ErrPolicyDenied
	}
	if err := c.posts.Delete(ctx, postID); err != nil {
		return err
	}
	c.notify.Notify(PostsKey)
	c.log.Info("post deleted",
		zap.String("post_id", postID.Hex()),
		zap.String("moderator_id", caller.UID))
	return nil
}

// SubmitSuggestion files a one-way suggestion. Open to any
// authenticated member; the author never reads it back.
func (c *Coordinator) SubmitSuggestion(ctx context.Context, caller policy.Identity, texto string) error {
	texto = htmlsanitize.Text(texto)
	if texto == "" {
		return ErrEmptyText
	}
	if _, err := c.suggestions.Create(ctx, texto, caller.Nombre, caller.UID); err != nil {
		return err
	}
	c.notify.Notify(SuggestionsKey)
	return nil
}

// SetPhotoURL updates a profile's media reference. Owner only: the
// target uid must be the caller's own.
func (c *Coordinator) SetPhotoURL(ctx context.Context, caller policy.Identity, uid, url string) error {
	if caller.UID != uid {
		return ErrPolicyDenied
	}
	if err := c.profiles.SetPhotoURL(ctx, uid, url); err != nil {
		return err
	}
	c.notify.Notify(ProfilesKey)
	return nil
}
