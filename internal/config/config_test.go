package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdirForTest(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.HTTPAddress())
	require.Equal(t, "sqlite", cfg.DatabaseDriver)
	require.Equal(t, 30*time.Second, cfg.ContactAPITimeout)
	require.Equal(t, "http://10.0.2.2:5000/api/", cfg.ContactAPIBaseURL)
	require.Equal(t, "form", cfg.ValidationProfile)
	require.True(t, cfg.LocationGranted)
	require.Nil(t, cfg.Latitude)
	require.Equal(t, "portfolio", cfg.CloudinaryFolder)
	require.Empty(t, cfg.CloudinaryCloudName)
}

func TestLoadFromEnvironment(t *testing.T) {
	chdirForTest(t, t.TempDir())
	t.Setenv("PORTFOLIO_APP_PORT", ":9090")
	t.Setenv("PORTFOLIO_CONTACT_API_TIMEOUT", "5s")
	t.Setenv("PORTFOLIO_VALIDATION_PROFILE", "Chilean")
	t.Setenv("PORTFOLIO_DEVICE_LATITUDE", "-33.4489")
	t.Setenv("PORTFOLIO_DEVICE_LONGITUDE", "-70.6693")
	t.Setenv("PORTFOLIO_DEVICE_CAMERA_GRANTED", "false")
	t.Setenv("PORTFOLIO_CLOUDINARY_CLOUD_NAME", "demo")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.HTTPAddress())
	require.Equal(t, 5*time.Second, cfg.ContactAPITimeout)
	require.Equal(t, "chilean", cfg.ValidationProfile)
	require.False(t, cfg.CameraGranted)
	require.NotNil(t, cfg.Latitude)
	require.InDelta(t, -70.6693, *cfg.Longitude, 1e-9)
	require.Equal(t, "demo", cfg.CloudinaryCloudName)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	chdirForTest(t, t.TempDir())

	t.Setenv("PORTFOLIO_CONTACT_API_TIMEOUT", "soon")
	_, err := Load()
	require.Error(t, err)

	t.Setenv("PORTFOLIO_CONTACT_API_TIMEOUT", "30s")
	t.Setenv("PORTFOLIO_VALIDATION_PROFILE", "strictest")
	_, err = Load()
	require.Error(t, err)

	t.Setenv("PORTFOLIO_VALIDATION_PROFILE", "form")
	t.Setenv("PORTFOLIO_DATABASE_DRIVER", "postgres")
	_, err = Load()
	require.Error(t, err)
}

// chdirForTest changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdirForTest(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
