package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/serogonpi/desarrollo-mobile-EAII/internal/controller"
	"github.com/serogonpi/desarrollo-mobile-EAII/internal/device"
	"github.com/serogonpi/desarrollo-mobile-EAII/internal/dto"
	"github.com/serogonpi/desarrollo-mobile-EAII/internal/utils"
)

// ContactFormHandler drives the contact form controller.
type ContactFormHandler struct {
	form     *controller.ContactFormController
	locator  *device.Locator
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewContactFormHandler constructs a contact form handler. locator may be nil,
// in which case device location lookups are refused.
func NewContactFormHandler(form *controller.ContactFormController, locator *device.Locator, validate *validator.Validate, logger zerolog.Logger) *ContactFormHandler {
	return &ContactFormHandler{
		form:     form,
		locator:  locator,
		validate: validate,
		logger:   logger.With().Str("component", "contact_form_handler").Logger(),
	}
}

// Register wires contact form routes.
func (h *ContactFormHandler) Register(router fiber.Router) {
	h.RegisterWithSubmit(router)
}

// RegisterWithSubmit wires contact form routes, running extra handlers (such
// as a rate limiter) in front of the submit endpoint.
func (h *ContactFormHandler) RegisterWithSubmit(router fiber.Router, submitGuards ...fiber.Handler) {
	router.Get("", h.state)
	router.Delete("", h.clear)
	router.Put("/fields/:field", h.updateField)
	router.Put("/project-type", h.selectProjectType)
	router.Put("/budget", h.selectBudget)
	router.Put("/location", h.setLocation)
	router.Post("/location", h.locate)
	router.Post("/reference-data", h.loadReferenceData)
	router.Post("/submit", append(submitGuards, h.submit)...)
	router.Delete("/status", h.clearStatus)
}

func (h *ContactFormHandler) state(c *fiber.Ctx) error {
	state := h.form.State()
	return utils.SendSuccess(c, utils.StatusText(state.StatusMessage, "contact form retrieved"), state)
}

func (h *ContactFormHandler) clear(c *fiber.Ctx) error {
	return utils.SendSuccess(c, "contact form cleared", h.form.ClearForm())
}

func (h *ContactFormHandler) clearStatus(c *fiber.Ctx) error {
	return utils.SendSuccess(c, "status cleared", h.form.ClearStatus())
}

func (h *ContactFormHandler) updateField(c *fiber.Ctx) error {
	field, ok := controller.ParseField(c.Params("field"))
	if !ok {
		return utils.SendError(c, fiber.StatusNotFound, "unknown field")
	}

	var payload dto.FieldUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	state := h.form.UpdateField(field, payload.Value)
	return utils.SendSuccess(c, "field updated", state)
}

func (h *ContactFormHandler) selectProjectType(c *fiber.Ctx) error {
	var payload dto.SelectionRequest
	if details, err := bind(c, h.validate, &payload); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "invalid payload", details)
	}
	return utils.SendSuccess(c, "project type selected", h.form.SelectProjectType(payload.Code))
}

func (h *ContactFormHandler) selectBudget(c *fiber.Ctx) error {
	var payload dto.SelectionRequest
	if details, err := bind(c, h.validate, &payload); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "invalid payload", details)
	}
	return utils.SendSuccess(c, "budget selected", h.form.SelectBudget(payload.Code))
}

func (h *ContactFormHandler) setLocation(c *fiber.Ctx) error {
	var payload dto.LocationRequest
	if details, err := bind(c, h.validate, &payload); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "invalid payload", details)
	}

	state := h.form.UpdateLocation(*payload.Latitude, *payload.Longitude)
	if state.Location == nil {
		return utils.Fail(c, fiber.StatusUnprocessableEntity, utils.StatusText(state.StatusMessage, controller.StatusInvalidLocation), state)
	}
	return utils.SendSuccess(c, "location updated", state)
}

func (h *ContactFormHandler) locate(c *fiber.Ctx) error {
	if h.locator == nil {
		state := h.form.SetStatus(device.FailureMessage(device.ErrLocationDisabled))
		return utils.Fail(c, fiber.StatusServiceUnavailable, *state.StatusMessage, state)
	}

	coords, err := h.locator.Locate(c.UserContext())
	if err != nil {
		state := h.form.SetStatus(device.FailureMessage(err))
		status := fiber.StatusInternalServerError
		switch {
		case errors.Is(err, device.ErrLocationPermission):
			status = fiber.StatusForbidden
		case errors.Is(err, device.ErrLocationDisabled):
			status = fiber.StatusServiceUnavailable
		default:
			requestLogger(h.logger, c).Warn().Err(err).Msg("location lookup failed")
		}
		return utils.Fail(c, status, *state.StatusMessage, state)
	}

	state := h.form.UpdateLocation(coords.Latitude, coords.Longitude)
	return utils.SendSuccess(c, "location updated", state)
}

func (h *ContactFormHandler) loadReferenceData(c *fiber.Ctx) error {
	state := h.form.Init(c.UserContext())
	return utils.SendSuccess(c, utils.StatusText(state.StatusMessage, "reference data loaded"), state)
}

func (h *ContactFormHandler) submit(c *fiber.Ctx) error {
	state, err := h.form.Submit(c.UserContext())
	message := utils.StatusText(state.StatusMessage, "submission processed")
	if err == nil {
		return utils.SendSuccess(c, message, state)
	}

	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, controller.ErrProjectTypeRequired), errors.Is(err, controller.ErrInvalidForm):
		status = fiber.StatusUnprocessableEntity
	case errors.Is(err, controller.ErrSubmissionInFlight):
		status = fiber.StatusConflict
	case errors.Is(err, controller.ErrDuplicateSubmission):
		status = fiber.StatusTooManyRequests
	case errors.Is(err, controller.ErrRemoteSubmission):
		status = fiber.StatusBadGateway
	}
	return utils.Fail(c, status, message, state)
}
