package device

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/serogonpi/desarrollo-mobile-EAII/internal/models"
)

type scriptedProvider struct {
	enabled      bool
	last         *models.Coordinates
	current      models.Coordinates
	currentErr   error
	currentCalls int
}

func (p *scriptedProvider) Enabled() bool { return p.enabled }

func (p *scriptedProvider) LastKnown(context.Context) (*models.Coordinates, error) {
	return p.last, nil
}

func (p *scriptedProvider) Current(context.Context) (models.Coordinates, error) {
	p.currentCalls++
	return p.current, p.currentErr
}

func TestLocatorChecksPermissionThenProvider(t *testing.T) {
	provider := &scriptedProvider{enabled: true}
	locator := NewLocator(StaticPermissions{Location: false}, provider, zerolog.Nop())

	_, err := locator.Locate(context.Background())
	require.ErrorIs(t, err, ErrLocationPermission)
	require.Equal(t, "Location permission not granted", FailureMessage(err))

	provider.enabled = false
	locator = NewLocator(StaticPermissions{Location: true}, provider, zerolog.Nop())
	_, err = locator.Locate(context.Background())
	require.ErrorIs(t, err, ErrLocationDisabled)
	require.Equal(t, "Location services are disabled", FailureMessage(err))
}

func TestLocatorPrefersLastKnown(t *testing.T) {
	provider := &scriptedProvider{enabled: true, last: &models.Coordinates{Latitude: 1, Longitude: 2}}
	locator := NewLocator(StaticPermissions{Location: true}, provider, zerolog.Nop())

	fix, err := locator.Locate(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1.0, fix.Latitude)
	require.Zero(t, provider.currentCalls)
}

func TestLocatorFallsBackToCurrent(t *testing.T) {
	provider := &scriptedProvider{enabled: true, current: models.Coordinates{Latitude: -33.4489, Longitude: -70.6693}}
	locator := NewLocator(StaticPermissions{Location: true}, provider, zerolog.Nop())

	fix, err := locator.Locate(context.Background())
	require.NoError(t, err)
	require.Equal(t, -70.6693, fix.Longitude)
	require.Equal(t, 1, provider.currentCalls)

	provider.currentErr = errors.New("gps timeout")
	_, err = locator.Locate(context.Background())
	require.Equal(t, "Error getting location: gps timeout", FailureMessage(err))
}

func TestStaticLocationProvider(t *testing.T) {
	empty := StaticLocationProvider{On: true}
	last, err := empty.LastKnown(context.Background())
	require.NoError(t, err)
	require.Nil(t, last)
	_, err = empty.Current(context.Background())
	require.ErrorIs(t, err, ErrNoFix)

	fixed := StaticLocationProvider{On: true, Fix: &models.Coordinates{Latitude: 3, Longitude: 4}}
	current, err := fixed.Current(context.Background())
	require.NoError(t, err)
	require.Equal(t, 4.0, current.Longitude)
}

func TestCreateImageFileNaming(t *testing.T) {
	store, err := NewImageStore(filepath.Join(t.TempDir(), "images"), StaticPermissions{Camera: true}, zerolog.Nop())
	require.NoError(t, err)
	store.now = func() time.Time { return time.Date(2024, 10, 19, 14, 5, 9, 0, time.UTC) }

	path, err := store.CreateImageFile()
	require.NoError(t, err)
	require.Regexp(t, regexp.MustCompile(`^JPEG_20241019_140509_\d+\.jpg$`), filepath.Base(path))
	require.False(t, store.Exists(filepath.Base(path)), "a reserved file is empty until written")

	second, err := store.CreateImageFile()
	require.NoError(t, err)
	require.NotEqual(t, path, second)
}

func TestCreateImageFileRequiresCameraGrant(t *testing.T) {
	store, err := NewImageStore(t.TempDir(), StaticPermissions{}, zerolog.Nop())
	require.NoError(t, err)

	_, err = store.CreateImageFile()
	require.ErrorIs(t, err, ErrCameraPermission)
}

func TestSaveAcceptsImagesOnly(t *testing.T) {
	store, err := NewImageStore(t.TempDir(), nil, zerolog.Nop())
	require.NoError(t, err)

	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00\x90wS\xde")
	name, err := store.Save(bytes.NewReader(png))
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(name, ".png"))
	require.True(t, store.Exists(name))

	_, err = store.Save(strings.NewReader("just some text"))
	require.ErrorIs(t, err, ErrImageTypeNotAllowed)

	require.NoError(t, store.Delete(name))
	require.False(t, store.Exists(name))
	require.NoError(t, store.Delete(name), "deleting twice is harmless")

	require.ErrorIs(t, store.Delete("../etc/passwd"), ErrInvalidImageName)
	_, statErr := os.Stat(store.Dir())
	require.NoError(t, statErr)
}

func TestSaveRejectsOversizedPayload(t *testing.T) {
	store, err := NewImageStore(t.TempDir(), nil, zerolog.Nop())
	require.NoError(t, err)
	store.maxBytes = 16

	_, err = store.Save(bytes.NewReader(make([]byte, 32)))
	require.ErrorIs(t, err, ErrImageTooLarge)
}
