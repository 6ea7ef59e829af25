// internal/app/system/media/updater.go
package media

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/redescolar/cartelera/internal/app/system/policy"
)

// ProfileWriter records a hosted photo URL on the caller's profile.
// The board coordinator sits behind this and enforces the owner-only
// rule.
type ProfileWriter interface {
	SetPhoto(ctx context.Context, caller policy.Identity, url string) error
}

// Updater runs the two-phase photo change: upload the bytes first, then
// write the URL to the profile. Phase two runs only if phase one
// succeeded, so a failed upload never clobbers the existing photo. If
// the profile write fails after a successful upload, the hosted file is
// orphaned; that is logged with the URL and surfaced to the caller, not
// compensated.
type Updater struct {
	uploader Uploader
	profiles ProfileWriter
	log      *zap.Logger
}

func NewUpdater(uploader Uploader, profiles ProfileWriter, logger *zap.Logger) *Updater {
	return &Updater{uploader: uploader, profiles: profiles, log: logger}
}

// UpdatePhoto uploads the image and points the caller's profile at it,
// returning the hosted URL.
func (u *Updater) UpdatePhoto(ctx context.Context, caller policy.Identity, filename string, r io.Reader) (string, error) {
	url, err := u.uploader.Upload(ctx, filename, r)
	if err != nil {
		return "", fmt.Errorf("upload photo: %w", err)
	}

	if err := u.profiles.SetPhoto(ctx, caller, url); err != nil {
		u.log.Error("photo uploaded but profile update failed, file orphaned",
			zap.String("uid", caller.UID),
			zap.String("url", url),
			zap.Error(err))
		return "", fmt.Errorf("record photo url: %w", err)
	}

	u.log.Info("profile photo updated", zap.String("uid", caller.UID))
	return url, nil
}
