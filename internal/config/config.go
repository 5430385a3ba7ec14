package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/serogonpi/desarrollo-mobile-EAII/internal/validation"
)

// Config holds runtime configuration values for the portfolio service.
type Config struct {
	AppName  string
	AppEnv   string
	AppPort  string
	LogLevel string

	DatabaseDriver string
	DatabasePath   string
	DatabaseURL    string

	ContactAPIBaseURL string
	ContactAPITimeout time.Duration

	RedisURL    string
	NATSURL     string
	NATSSubject string

	ValidationProfile string

	LocationGranted bool
	CameraGranted   bool
	LocationEnabled bool
	Latitude        *float64
	Longitude       *float64

	ImagesDir string

	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	CloudinaryFolder    string
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and an optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("PORTFOLIO")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Portfolio")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "data/portfolio.db")
	v.SetDefault("contact_api.base_url", "http://10.0.2.2:5000/api/")
	v.SetDefault("contact_api.timeout", "30s")
	v.SetDefault("nats.subject", "portfolio.changes")
	v.SetDefault("validation.profile", validation.ProfileForm)
	v.SetDefault("device.location_granted", true)
	v.SetDefault("device.camera_granted", true)
	v.SetDefault("device.location_enabled", true)
	v.SetDefault("images.dir", "data/images")
	v.SetDefault("cloudinary.folder", "portfolio")

	timeoutString := v.GetString("contact_api.timeout")
	timeout, err := time.ParseDuration(timeoutString)
	if err != nil {
		return Config{}, fmt.Errorf("invalid contact api timeout: %w", err)
	}
	if timeout <= 0 {
		return Config{}, fmt.Errorf("contact api timeout must be positive")
	}

	cfg := Config{
		AppName:           v.GetString("app.name"),
		AppEnv:            v.GetString("app.env"),
		AppPort:           v.GetString("app.port"),
		LogLevel:          strings.ToLower(v.GetString("log.level")),
		DatabaseDriver:    strings.ToLower(v.GetString("database.driver")),
		DatabasePath:      v.GetString("database.path"),
		DatabaseURL:       v.GetString("database.url"),
		ContactAPIBaseURL: v.GetString("contact_api.base_url"),
		ContactAPITimeout: timeout,
		RedisURL:          v.GetString("redis.url"),
		NATSURL:           v.GetString("nats.url"),
		NATSSubject:       v.GetString("nats.subject"),
		ValidationProfile: strings.ToLower(v.GetString("validation.profile")),
		LocationGranted:   v.GetBool("device.location_granted"),
		CameraGranted:     v.GetBool("device.camera_granted"),
		LocationEnabled:   v.GetBool("device.location_enabled"),
		ImagesDir:         v.GetString("images.dir"),

		CloudinaryCloudName: v.GetString("cloudinary.cloud_name"),
		CloudinaryAPIKey:    v.GetString("cloudinary.api_key"),
		CloudinaryAPISecret: v.GetString("cloudinary.api_secret"),
		CloudinaryFolder:    v.GetString("cloudinary.folder"),
	}

	if v.IsSet("device.latitude") && v.IsSet("device.longitude") {
		lat, lng := v.GetFloat64("device.latitude"), v.GetFloat64("device.longitude")
		if !validation.AreValidCoordinates(lat, lng) {
			return Config{}, fmt.Errorf("device coordinates out of range: %v, %v", lat, lng)
		}
		cfg.Latitude, cfg.Longitude = &lat, &lng
	}

	if _, err := validation.RulesForProfile(cfg.ValidationProfile); err != nil {
		return Config{}, err
	}

	if cfg.DatabaseDriver == "postgres" && cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("database url must be provided for postgres")
	}

	return cfg, nil
}
