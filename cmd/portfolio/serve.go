package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/serogonpi/desarrollo-mobile-EAII/internal/config"
	"github.com/serogonpi/desarrollo-mobile-EAII/internal/controller"
	"github.com/serogonpi/desarrollo-mobile-EAII/internal/device"
	"github.com/serogonpi/desarrollo-mobile-EAII/internal/handler"
	"github.com/serogonpi/desarrollo-mobile-EAII/internal/middleware"
	"github.com/serogonpi/desarrollo-mobile-EAII/internal/models"
	"github.com/serogonpi/desarrollo-mobile-EAII/internal/router"
	"github.com/serogonpi/desarrollo-mobile-EAII/internal/service"
	"github.com/serogonpi/desarrollo-mobile-EAII/internal/validation"
	"github.com/serogonpi/desarrollo-mobile-EAII/pkg/cloudinary"
	"github.com/serogonpi/desarrollo-mobile-EAII/pkg/contactapi"
)

const submissionGuardTTL = 5 * time.Minute

func newServeCmd(app *cli) *cobra.Command {
	var skipSeed bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, app.cfg, app.logger, !skipSeed)
		},
	}
	cmd.Flags().BoolVar(&skipSeed, "no-seed", false, "do not insert sample data on first launch")
	return cmd
}

func serve(ctx context.Context, cfg config.Config, logger zerolog.Logger, seed bool) error {
	rt, err := openRuntime(ctx, cfg, logger, cfg.AppName+"-serve")
	if err != nil {
		return err
	}
	defer rt.Close(logger)

	if err := rt.startRemoteEvents(ctx); err != nil {
		logger.Warn().Err(err).Msg("failed to subscribe to remote changes")
	}

	if seed {
		seeder := service.NewSeedService(rt.projects, rt.posts, rt.prefs, logger)
		if _, err := seeder.Seed(ctx, false); err != nil {
			logger.Error().Err(err).Msg("failed to seed sample data")
		}
	}

	rules, err := validation.RulesForProfile(cfg.ValidationProfile)
	if err != nil {
		return err
	}
	validate := validator.New(validator.WithRequiredStructEnabled())

	api := contactapi.New(contactapi.Config{
		BaseURL: cfg.ContactAPIBaseURL,
		Timeout: cfg.ContactAPITimeout,
		Logger:  logger,
	})

	var formOpts []controller.ContactFormOption
	if rt.redis != nil {
		formOpts = append(formOpts, controller.WithSubmissionGuard(controller.NewRedisSubmissionGuard(rt.redis, submissionGuardTTL)))
	}
	form := controller.NewContactFormController(api, rt.messages, rules, logger, formOpts...)
	go form.Init(ctx)

	projects := controller.NewProjectController(rt.projects, rt.bus, logger)
	posts := controller.NewPostController(rt.posts, rt.bus, logger)
	inbox := controller.NewInboxController(rt.messages, rt.bus, logger)
	projects.Start(ctx)
	posts.Start(ctx)
	inbox.Start(ctx)

	permissions := device.StaticPermissions{Camera: cfg.CameraGranted, Location: cfg.LocationGranted}
	locator := device.NewLocator(permissions, device.StaticLocationProvider{On: cfg.LocationEnabled, Fix: configuredFix(cfg)}, logger)
	images, err := device.NewImageStore(cfg.ImagesDir, permissions, logger)
	if err != nil {
		return err
	}
	mirror := imageMirror(cfg, logger)

	server := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
		BodyLimit:    device.DefaultMaxImageBytes + 1024*1024,
	})

	streams := handler.StreamControllers{ContactForm: form, Projects: projects, Posts: posts, Inbox: inbox}

	middleware.Register(server, middleware.Config{Logger: &logger})
	router.Register(server, cfg, router.Dependencies{
		ProjectHandler:     handler.NewProjectHandler(projects, validate, logger),
		PostHandler:        handler.NewPostHandler(posts, validate, logger),
		ContactFormHandler: handler.NewContactFormHandler(form, locator, validate, logger),
		MessageHandler:     handler.NewMessageHandler(inbox, validate, logger),
		ImageHandler:       handler.NewImageHandler(images, mirror, logger),
		StreamHandler:      handler.NewStreamHandler(streams, logger),
		DatabasePing:       rt.ping,
	})

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.HTTPAddress()).Msg("http server listening")
		errCh <- server.Listen(cfg.HTTPAddress())
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	return shutdown(server, logger)
}

func shutdown(server *fiber.App, logger zerolog.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.ShutdownWithContext(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error().Err(err).Msg("graceful shutdown failed")
		return err
	}

	logger.Info().Msg("server stopped")
	return nil
}

// imageMirror returns nil unless Cloudinary credentials are configured.
func imageMirror(cfg config.Config, logger zerolog.Logger) handler.ImageMirror {
	mirrorCfg := cloudinary.Config{
		CloudName: cfg.CloudinaryCloudName,
		APIKey:    cfg.CloudinaryAPIKey,
		APISecret: cfg.CloudinaryAPISecret,
		Folder:    cfg.CloudinaryFolder,
	}
	if !mirrorCfg.Enabled() {
		return nil
	}
	mirror, err := cloudinary.New(mirrorCfg, logger)
	if err != nil {
		logger.Warn().Err(err).Msg("image mirror disabled")
		return nil
	}
	return mirror
}

func configuredFix(cfg config.Config) *models.Coordinates {
	if cfg.Latitude == nil || cfg.Longitude == nil {
		return nil
	}
	return &models.Coordinates{Latitude: *cfg.Latitude, Longitude: *cfg.Longitude}
}
