// internal/app/system/media/uploader.go

// Package media stores profile photos in an external upload service and
// records the resulting URL on the profile. The service only ever hands
// back HTTPS URLs; this package never serves bytes itself.
package media

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/google/uuid"
)

// maxUploadBytes caps one photo upload.
const maxUploadBytes = 10 << 20

// ErrUploadRejected means the upload service refused the file.
var ErrUploadRejected = errors.New("upload service rejected the file")

// Uploader sends image bytes somewhere durable and returns a public
// HTTPS URL for them.
type Uploader interface {
	Upload(ctx context.Context, filename string, r io.Reader) (string, error)
}

// HTTPUploader posts files to an unsigned-preset upload endpoint as
// multipart form data and reads the hosted URL out of the JSON reply.
type HTTPUploader struct {
	endpoint string
	preset   string
	client   *http.Client
}

func NewHTTPUploader(endpoint, preset string, client *http.Client) *HTTPUploader {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPUploader{endpoint: endpoint, preset: preset, client: client}
}

func (u *HTTPUploader) Upload(ctx context.Context, filename string, r io.Reader) (string, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		err := writeForm(mw, u.preset, filename, io.LimitReader(r, maxUploadBytes))
		if cerr := mw.Close(); err == nil {
			err = cerr
		}
		pw.CloseWithError(err)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.endpoint, pr)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := u.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("upload request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("%w: status %d", ErrUploadRejected, resp.StatusCode)
	}

	var out struct {
		SecureURL string `json:"secure_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode upload response: %w", err)
	}
	if out.SecureURL == "" {
		return "", fmt.Errorf("%w: response missing secure_url", ErrUploadRejected)
	}
	return out.SecureURL, nil
}

func writeForm(mw *multipart.Writer, preset, filename string, r io.Reader) error {
	if err := mw.WriteField("upload_preset", preset); err != nil {
		return err
	}
	// The public id is random so repeated uploads for the same user
	// never overwrite each other mid-flight.
	if err := mw.WriteField("public_id", uuid.NewString()); err != nil {
		return err
	}
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return err
	}
	_, err = io.Copy(part, r)
	return err
}
