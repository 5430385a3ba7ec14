// Package cloudinary mirrors locally stored portfolio images to Cloudinary so
// project and post pages can reference a CDN URL.
package cloudinary

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/rs/zerolog"
)

// Config contains credentials required to talk to Cloudinary.
type Config struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

// Enabled reports whether all credentials are present.
func (c Config) Enabled() bool {
	return c.CloudName != "" && c.APIKey != "" && c.APISecret != ""
}

// Mirror uploads and removes image copies.
type Mirror struct {
	client *cloudinary.Cloudinary
	folder string
	logger zerolog.Logger
}

// New constructs a mirror.
func New(cfg Config, logger zerolog.Logger) (*Mirror, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("cloudinary credentials must be provided")
	}

	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}

	return &Mirror{
		client: cld,
		folder: strings.Trim(cfg.Folder, "/"),
		logger: logger.With().Str("component", "cloudinary").Logger(),
	}, nil
}

// Upload stores a copy of the named image and returns its secure URL. Names
// produced by the image store are unique, so the public id is derived from it
// and a repeated upload overwrites the same asset.
func (m *Mirror) Upload(ctx context.Context, name string, reader io.Reader) (string, error) {
	overwrite := true
	result, err := m.client.Upload.Upload(ctx, reader, uploader.UploadParams{
		Folder:       m.folder,
		PublicID:     PublicID(name),
		ResourceType: "image",
		Overwrite:    &overwrite,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}
	if result.Error.Message != "" {
		return "", fmt.Errorf("failed to upload image: %s", result.Error.Message)
	}

	m.logger.Info().Str("public_id", result.PublicID).Msg("image mirrored")
	return result.SecureURL, nil
}

// Delete removes the mirrored copy of the named image.
func (m *Mirror) Delete(ctx context.Context, name string) error {
	publicID := PublicID(name)
	if m.folder != "" {
		publicID = m.folder + "/" + publicID
	}

	result, err := m.client.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: "image",
	})
	if err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	if result.Error.Message != "" {
		return fmt.Errorf("failed to delete image: %s", result.Error.Message)
	}
	return nil
}

// PublicID maps a stored file name onto a Cloudinary public id.
func PublicID(name string) string {
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	base = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' {
			return r
		}
		return '-'
	}, base)
	return strings.Trim(base, "-")
}
