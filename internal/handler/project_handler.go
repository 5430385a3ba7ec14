package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/serogonpi/desarrollo-mobile-EAII/internal/controller"
	"github.com/serogonpi/desarrollo-mobile-EAII/internal/dto"
	"github.com/serogonpi/desarrollo-mobile-EAII/internal/utils"
)

// ProjectHandler exposes the project gallery.
type ProjectHandler struct {
	projects *controller.ProjectController
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewProjectHandler constructs a project handler.
func NewProjectHandler(projects *controller.ProjectController, validate *validator.Validate, logger zerolog.Logger) *ProjectHandler {
	return &ProjectHandler{
		projects: projects,
		validate: validate,
		logger:   logger.With().Str("component", "project_handler").Logger(),
	}
}

// Register wires project routes.
func (h *ProjectHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Get("/count", h.count)
	router.Get("/:id", h.get)
	router.Put("/:id", h.update)
	router.Delete("/:id", h.delete)
	router.Patch("/:id/favorite", h.favorite)
}

func (h *ProjectHandler) list(c *fiber.Ctx) error {
	favorites, err := parseQueryBool(c, "favorites")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid favorites flag")
	}

	state := h.projects.State()
	if hasQuery(c, "category") {
		state = h.projects.FilterByCategory(c.Query("category"))
	}

	if favorites {
		return utils.SendSuccess(c, "favorite projects retrieved", state.Favorites)
	}
	return utils.SendSuccess(c, utils.StatusText(state.StatusMessage, "projects retrieved"), state)
}

func (h *ProjectHandler) count(c *fiber.Ctx) error {
	total, err := h.projects.Count(c.UserContext())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to count projects")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to count projects")
	}
	return utils.SendSuccess(c, "project count retrieved", dto.CountResponse{Count: total})
}

func (h *ProjectHandler) get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	state, err := h.projects.SelectProject(c.UserContext(), id)
	if err != nil {
		return utils.SendError(c, mutationStatus(err), utils.StatusText(state.StatusMessage, "project not found"))
	}
	return utils.SendSuccess(c, "project retrieved", dto.NewProjectResponse(*state.Selected))
}

func (h *ProjectHandler) create(c *fiber.Ctx) error {
	return h.save(c, 0)
}

func (h *ProjectHandler) update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}
	return h.save(c, id)
}

func (h *ProjectHandler) save(c *fiber.Ctx, id uint) error {
	var payload dto.ProjectRequest
	details, err := bind(c, h.validate, &payload)
	if err != nil {
		if details != nil {
			return utils.Fail(c, fiber.StatusUnprocessableEntity, "invalid project", details)
		}
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	record := payload.ToModel()
	if id != 0 {
		stored, err := h.projects.Find(c.UserContext(), id)
		if err != nil {
			status := mutationStatus(err)
			if status == fiber.StatusNotFound {
				return utils.SendError(c, status, "project not found")
			}
			requestLogger(h.logger, c).Error().Err(err).Uint("project_id", id).Msg("failed to load project")
			return utils.SendError(c, status, "failed to save project")
		}
		record = payload.Apply(stored)
	}

	state, err := h.projects.Save(c.UserContext(), record)
	if err != nil {
		status := mutationStatus(err)
		if status == fiber.StatusInternalServerError {
			requestLogger(h.logger, c).Error().Err(err).Uint("project_id", id).Msg("failed to save project")
		}
		return utils.SendError(c, status, utils.StatusText(state.StatusMessage, "failed to save project"))
	}

	code := fiber.StatusOK
	if id == 0 {
		code = fiber.StatusCreated
	}
	return utils.SendSuccessWithStatus(c, code, utils.StatusText(state.StatusMessage, "project saved"), state)
}

func (h *ProjectHandler) delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	state, err := h.projects.Delete(c.UserContext(), id)
	if err != nil {
		return utils.SendError(c, mutationStatus(err), utils.StatusText(state.StatusMessage, "failed to delete project"))
	}
	return utils.SendSuccess(c, utils.StatusText(state.StatusMessage, "project deleted"), state)
}

func (h *ProjectHandler) favorite(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.FavoriteRequest
	if details, err := bind(c, h.validate, &payload); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "invalid payload", details)
	}

	state, err := h.projects.ToggleFavorite(c.UserContext(), id, *payload.Favorite)
	if err != nil {
		return utils.SendError(c, mutationStatus(err), utils.StatusText(state.StatusMessage, "failed to update favorite"))
	}
	return utils.SendSuccess(c, "favorite updated", state)
}
