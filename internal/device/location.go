package device

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/serogonpi/desarrollo-mobile-EAII/internal/models"
	"github.com/serogonpi/desarrollo-mobile-EAII/internal/observability"
)

var (
	// ErrLocationPermission is returned when the location grant is missing.
	ErrLocationPermission = errors.New("location permission not granted")
	// ErrLocationDisabled is returned when location services are off.
	ErrLocationDisabled = errors.New("location services are disabled")
	// ErrNoFix is returned by providers that cannot produce a position.
	ErrNoFix = errors.New("no location fix available")
)

// LocationProvider exposes the two request modes of a positioning source.
type LocationProvider interface {
	Enabled() bool
	// LastKnown returns a cached fix, or nil when none exists.
	LastKnown(ctx context.Context) (*models.Coordinates, error)
	// Current requests a fresh high-accuracy fix.
	Current(ctx context.Context) (models.Coordinates, error)
}

// Locator resolves the device position.
type Locator struct {
	permissions Permissions
	provider    LocationProvider
	logger      zerolog.Logger
}

// NewLocator constructs a locator.
func NewLocator(permissions Permissions, provider LocationProvider, logger zerolog.Logger) *Locator {
	return &Locator{
		permissions: permissions,
		provider:    provider,
		logger:      logger.With().Str("component", "locator").Logger(),
	}
}

// Locate tries the last known fix first and falls back to a current fix
// when none is cached.
func (l *Locator) Locate(ctx context.Context) (models.Coordinates, error) {
	if !l.permissions.LocationGranted() {
		observability.LocationLookups().WithLabelValues("check", "denied").Inc()
		return models.Coordinates{}, ErrLocationPermission
	}
	if !l.provider.Enabled() {
		observability.LocationLookups().WithLabelValues("check", "disabled").Inc()
		return models.Coordinates{}, ErrLocationDisabled
	}

	last, err := l.provider.LastKnown(ctx)
	if err != nil {
		observability.LocationLookups().WithLabelValues("last_known", "error").Inc()
		l.logger.Warn().Err(err).Msg("last known location lookup failed")
		return models.Coordinates{}, err
	}
	if last != nil {
		observability.LocationLookups().WithLabelValues("last_known", "success").Inc()
		return *last, nil
	}

	current, err := l.provider.Current(ctx)
	if err != nil {
		observability.LocationLookups().WithLabelValues("current", "error").Inc()
		l.logger.Warn().Err(err).Msg("current location lookup failed")
		return models.Coordinates{}, err
	}
	observability.LocationLookups().WithLabelValues("current", "success").Inc()
	return current, nil
}

// FailureMessage renders a Locate error for display.
func FailureMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrLocationPermission):
		return "Location permission not granted"
	case errors.Is(err, ErrLocationDisabled):
		return "Location services are disabled"
	default:
		return "Error getting location: " + err.Error()
	}
}

// StaticLocationProvider serves a configured fix. A nil Fix behaves like a
// provider that has never located the device.
type StaticLocationProvider struct {
	On  bool
	Fix *models.Coordinates
}

// Enabled implements LocationProvider.
func (p StaticLocationProvider) Enabled() bool { return p.On }

// LastKnown implements LocationProvider.
func (p StaticLocationProvider) LastKnown(context.Context) (*models.Coordinates, error) {
	if p.Fix == nil {
		return nil, nil
	}
	fix := *p.Fix
	return &fix, nil
}

// Current implements LocationProvider.
func (p StaticLocationProvider) Current(context.Context) (models.Coordinates, error) {
	if p.Fix == nil {
		return models.Coordinates{}, ErrNoFix
	}
	return *p.Fix, nil
}
