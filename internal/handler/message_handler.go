package handler

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/serogonpi/desarrollo-mobile-EAII/internal/controller"
	"github.com/serogonpi/desarrollo-mobile-EAII/internal/dto"
	"github.com/serogonpi/desarrollo-mobile-EAII/internal/utils"
)

// MessageHandler exposes the locally stored copies of sent contact messages.
type MessageHandler struct {
	inbox    *controller.InboxController
	validate *validator.Validate
	now      func() time.Time
	logger   zerolog.Logger
}

// NewMessageHandler constructs a message handler.
func NewMessageHandler(inbox *controller.InboxController, validate *validator.Validate, logger zerolog.Logger) *MessageHandler {
	return &MessageHandler{
		inbox:    inbox,
		validate: validate,
		now:      time.Now,
		logger:   logger.With().Str("component", "message_handler").Logger(),
	}
}

// Register wires message routes.
func (h *MessageHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/unread-count", h.unreadCount)
	router.Patch("/:id/read", h.markRead)
	router.Delete("/:id", h.delete)
}

func (h *MessageHandler) list(c *fiber.Ctx) error {
	unread, err := parseQueryBool(c, "unread")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid unread flag")
	}

	state := h.inbox.State()
	messages := state.Messages
	if unread {
		messages = state.Unread
	}
	return utils.SendSuccess(c, utils.StatusText(state.StatusMessage, "messages retrieved"), dto.NewMessageViewSlice(messages, h.now()))
}

func (h *MessageHandler) unreadCount(c *fiber.Ctx) error {
	total, err := h.inbox.UnreadCount(c.UserContext())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to count unread messages")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to count messages")
	}
	return utils.SendSuccess(c, "unread message count retrieved", dto.CountResponse{Count: total})
}

func (h *MessageHandler) markRead(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.ReadRequest
	if details, err := bind(c, h.validate, &payload); err != nil {
		return utils.Fail(c, fiber.StatusBadRequest, "invalid payload", details)
	}

	state, err := h.inbox.MarkRead(c.UserContext(), id, *payload.Read)
	if err != nil {
		return utils.SendError(c, mutationStatus(err), utils.StatusText(state.StatusMessage, "failed to update message"))
	}
	return utils.SendSuccess(c, "message updated", dto.NewMessageViewSlice(state.Messages, h.now()))
}

func (h *MessageHandler) delete(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	state, err := h.inbox.Delete(c.UserContext(), id)
	if err != nil {
		return utils.SendError(c, mutationStatus(err), utils.StatusText(state.StatusMessage, "failed to delete message"))
	}
	return utils.SendSuccess(c, utils.StatusText(state.StatusMessage, "message deleted"), dto.NewMessageViewSlice(state.Messages, h.now()))
}
