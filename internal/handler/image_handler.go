package handler

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/serogonpi/desarrollo-mobile-EAII/internal/device"
	"github.com/serogonpi/desarrollo-mobile-EAII/internal/dto"
	"github.com/serogonpi/desarrollo-mobile-EAII/internal/utils"
)

// ImageMirror keeps a remote copy of stored images.
type ImageMirror interface {
	Upload(ctx context.Context, name string, reader io.Reader) (string, error)
	Delete(ctx context.Context, name string) error
}

// ImageHandler stores project and post images.
type ImageHandler struct {
	store  *device.ImageStore
	mirror ImageMirror
	logger zerolog.Logger
}

// NewImageHandler constructs an image handler. mirror may be nil.
func NewImageHandler(store *device.ImageStore, mirror ImageMirror, logger zerolog.Logger) *ImageHandler {
	return &ImageHandler{
		store:  store,
		mirror: mirror,
		logger: logger.With().Str("component", "image_handler").Logger(),
	}
}

// Register wires image routes.
func (h *ImageHandler) Register(router fiber.Router) {
	router.Post("", h.upload)
	router.Post("/capture", h.capture)
	router.Get("/:name", h.exists)
	router.Delete("/:name", h.delete)
}

func (h *ImageHandler) upload(c *fiber.Ctx) error {
	header, err := c.FormFile("image")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "image is required")
	}
	if header.Size > device.DefaultMaxImageBytes {
		return utils.SendError(c, fiber.StatusRequestEntityTooLarge, device.ErrImageTooLarge.Error())
	}

	file, err := header.Open()
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "image is unreadable")
	}
	defer file.Close()

	name, err := h.store.Save(file)
	if err != nil {
		switch {
		case errors.Is(err, device.ErrImageTooLarge):
			return utils.SendError(c, fiber.StatusRequestEntityTooLarge, err.Error())
		case errors.Is(err, device.ErrImageTypeNotAllowed):
			return utils.SendError(c, fiber.StatusUnsupportedMediaType, err.Error())
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("image upload failed")
			return utils.SendError(c, fiber.StatusInternalServerError, "upload failed")
		}
	}

	response := dto.ImageResponse{Name: name, Exists: true}
	response.RemoteURL = h.mirrorUpload(c, name)
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "image stored", response)
}

// mirrorUpload copies a stored image to the mirror. The local file stays the
// source of truth, so failures only log.
func (h *ImageHandler) mirrorUpload(c *fiber.Ctx, name string) string {
	if h.mirror == nil {
		return ""
	}
	file, err := os.Open(filepath.Join(h.store.Dir(), name))
	if err != nil {
		requestLogger(h.logger, c).Warn().Err(err).Str("name", name).Msg("failed to reopen image for mirroring")
		return ""
	}
	defer file.Close()

	url, err := h.mirror.Upload(c.UserContext(), name, file)
	if err != nil {
		requestLogger(h.logger, c).Warn().Err(err).Str("name", name).Msg("image mirror upload failed")
		return ""
	}
	return url
}

func (h *ImageHandler) capture(c *fiber.Ctx) error {
	path, err := h.store.CreateImageFile()
	if err != nil {
		if errors.Is(err, device.ErrCameraPermission) {
			return utils.SendError(c, fiber.StatusForbidden, err.Error())
		}
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to reserve capture file")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to create image file")
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "capture file created", dto.ImageResponse{Name: filepath.Base(path)})
}

func (h *ImageHandler) exists(c *fiber.Ctx) error {
	name := c.Params("name")
	return utils.SendSuccess(c, "image checked", dto.ImageResponse{Name: name, Exists: h.store.Exists(name)})
}

func (h *ImageHandler) delete(c *fiber.Ctx) error {
	name := c.Params("name")
	if err := h.store.Delete(name); err != nil {
		if errors.Is(err, device.ErrInvalidImageName) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		requestLogger(h.logger, c).Error().Err(err).Str("name", name).Msg("failed to delete image")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete image")
	}
	if h.mirror != nil {
		if err := h.mirror.Delete(c.UserContext(), name); err != nil {
			requestLogger(h.logger, c).Warn().Err(err).Str("name", name).Msg("image mirror delete failed")
		}
	}
	return utils.SendSuccess(c, "image deleted", dto.ImageResponse{Name: name})
}
