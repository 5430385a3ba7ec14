package handler

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/serogonpi/desarrollo-mobile-EAII/internal/controller"
	"github.com/serogonpi/desarrollo-mobile-EAII/internal/dto"
	"github.com/serogonpi/desarrollo-mobile-EAII/internal/models"
	"github.com/serogonpi/desarrollo-mobile-EAII/internal/utils"
)

// PostHandler exposes the blog.
type PostHandler struct {
	posts    *controller.PostController
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewPostHandler constructs a post handler.
func NewPostHandler(posts *controller.PostController, validate *validator.Validate, logger zerolog.Logger) *PostHandler {
	return &PostHandler{
		posts:    posts,
		validate: validate,
		logger:   logger.With().Str("component", "post_handler").Logger(),
	}
}

// Register wires post routes.
func (h *PostHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Post("", h.create)
	router.Get("/published-count", h.publishedCount)
	router.Get("/:id", h.get)
	router.Put("/:id", h.update)
	router.Delete("/:id", h.delete)
	router.Patch("/:id/publish", h.publish)
}

// postListResponse is the blog screen: the filtered view plus the filter inputs.
type postListResponse struct {
	Posts       []dto.PostResponse `json:"posts"`
	SelectedTag string             `json:"selected_tag,omitempty"`
	SearchQuery string             `json:"search_query,omitempty"`
	IsLoading   bool               `json:"is_loading"`
}

func (h *PostHandler) list(c *fiber.Ctx) error {
	published, err := parseQueryBool(c, "published")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid published flag")
	}

	state := h.posts.State()
	if hasQuery(c, "tag") {
		state = h.posts.FilterByTag(strings.TrimSpace(c.Query("tag")))
	}
	if hasQuery(c, "q") {
		state = h.posts.Search(c.Query("q"))
	}

	source := state.Visible
	if published {
		source = controller.SearchPosts(controller.FilterPostsByTag(state.Published, state.SelectedTag), state.SearchQuery)
	}

	return utils.SendSuccess(c, utils.StatusText(state.StatusMessage, "posts retrieved"), postListResponse{
		Posts:       lo.Map(source, func(post models.Post, _ int) dto.PostResponse { return dto.NewPostResponse(post) }),
		SelectedTag: state.SelectedTag,
		SearchQuery: state.SearchQuery,
		IsLoading:   state.IsLoading,
	})
}

func (h *PostHandler) publishedCount(c *fiber.Ctx) error {
	total, err := h.posts.PublishedCount(c.UserContext())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to count posts")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to count posts")
	}
	return utils.SendSuccess(c, "published post count retrieved", dto.CountResponse{Count: total})
}

func (h *PostHandler) get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	state, err := h.posts.SelectPost(c.UserContext(), id)
	if err != nil {
		return utils.SendError(c, mutationStatus(err), utils.StatusText(state.StatusMessage, "post not found"))
	}
	return utils.SendSuccess(c, "post retrieved", dto.NewPostResponse(*state.Selected))
}

func (h *PostHandler) create(c *fiber.Ctx) error {
	return h.save(c, 0)
}

func (h *PostHandler) update(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}
	return h.save(c, id)
}

func (h *PostHandler) save(c *fiber.Ctx, id uint) error {
	var payload dto.PostRequest
	details, err := bind(c, h.validate, &payload)
	if err != nil {
		if details != nil {
			return utils.Fail(c, fiber.StatusUnprocessableEntity, "invalid post", details)
		}
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	record := payload.ToModel()
	if id != 0 {
		stored, err := h.posts.Find(c.UserContext(), id)
		if err != nil {
			status := mutationStatus(err)
			if status == fiber.StatusNotFound {
				return utils.SendError(c, status, "post not found")
			}
			requestLogger(h.logger, c).Error().Err(err).Uint("post_id", id).Msg("failed to load post")
			return utils.SendError(c, status, "failed to save post")
		}
		record = payload.Apply(stored)
	}

	state, err := h.posts.Save(c.UserContext(), record)
	if err != nil {
		status := mutationStatus(err)
		if status == fiber.StatusInternalServerError {
			requestLogger(h.logger, c).Error().Err(err).Uint("post_id", id).Msg("failed to save post")
		}
		return utils.SendError(c, status, utils.StatusText(state.StatusMessage, "failed to save post"))
	}

	code := fiber.StatusOK
	if id == 0 {
		code = fiber.StatusCreated
	}
	return utils.SendSuccessWithStatus(c, code, utils.StatusText(state.StatusMessage, "post saved"), state)
}

func (h *PostHandler) delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	state, err := h.posts.Delete(c.UserContext(), id)
	if err != nil {
		return utils.SendError(c, mutationStatus(err), utils.StatusText(state.StatusMessage, "failed to delete post"))
	}
	return utils.SendSuccess(c, utils.StatusText(state.StatusMessage, "post deleted"), state)
}

func (h *PostHandler) publish(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.PublishRequest
	if details, err := bind(c, h.validate, &payload); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "invalid payload", details)
	}

	state, err := h.posts.TogglePublish(c.UserContext(), id, *payload.Published)
	if err != nil {
		return utils.SendError(c, mutationStatus(err), utils.StatusText(state.StatusMessage, "failed to change post status"))
	}
	return utils.SendSuccess(c, utils.StatusText(state.StatusMessage, "post updated"), state)
}
