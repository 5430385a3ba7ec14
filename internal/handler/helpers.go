package handler

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/serogonpi/desarrollo-mobile-EAII/internal/controller"
	"github.com/serogonpi/desarrollo-mobile-EAII/internal/middleware"
	"github.com/serogonpi/desarrollo-mobile-EAII/internal/repository"
)

var errInvalidID = errors.New("invalid id")

func parseID(c *fiber.Ctx) (uint, error) {
	raw := strings.TrimSpace(c.Params("id"))
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, errInvalidID
	}
	return uint(id), nil
}

func parseQueryBool(c *fiber.Ctx, key string) (bool, error) {
	value := strings.TrimSpace(c.Query(key))
	if value == "" {
		return false, nil
	}
	return strconv.ParseBool(value)
}

func hasQuery(c *fiber.Ctx, key string) bool {
	return c.Context().QueryArgs().Has(key)
}

// bind parses the JSON body into payload and runs struct validation. The
// returned details map is non-nil only for validation failures.
func bind(c *fiber.Ctx, validate *validator.Validate, payload interface{}) (map[string]string, error) {
	if err := c.BodyParser(payload); err != nil {
		return nil, err
	}
	if err := validate.Struct(payload); err != nil {
		return validationDetails(err), err
	}
	return nil, nil
}

func validationDetails(err error) map[string]string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}
	details := make(map[string]string, len(validationErrors))
	for _, fieldErr := range validationErrors {
		details[strings.ToLower(fieldErr.Field())] = fieldErr.Tag()
	}
	return details
}

// mutationStatus maps controller errors onto HTTP status codes.
func mutationStatus(err error) int {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, controller.ErrInvalidRecord), errors.Is(err, repository.ErrMissingID):
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

func requestLogger(base zerolog.Logger, c *fiber.Ctx) *zerolog.Logger {
	logger := middleware.RequestLogger(base, c)
	return &logger
}
