package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog"

	"github.com/serogonpi/desarrollo-mobile-EAII/internal/controller"
)

const streamWriteTimeout = 5 * time.Second

// StreamControllers holds the controllers whose snapshots can be streamed.
// A nil controller leaves its stream unregistered.
type StreamControllers struct {
	ContactForm *controller.ContactFormController
	Projects    *controller.ProjectController
	Posts       *controller.PostController
	Inbox       *controller.InboxController
}

// StreamHandler pushes controller snapshots to websocket clients.
type StreamHandler struct {
	controllers StreamControllers
	logger      zerolog.Logger
}

// NewStreamHandler constructs a stream handler.
func NewStreamHandler(controllers StreamControllers, logger zerolog.Logger) *StreamHandler {
	return &StreamHandler{
		controllers: controllers,
		logger:      logger.With().Str("component", "stream_handler").Logger(),
	}
}

// snapshotFrame is the JSON frame written for each snapshot.
type snapshotFrame[T any] struct {
	Stream string `json:"stream"`
	Data   T      `json:"data"`
}

// Register binds the websocket routes.
func (h *StreamHandler) Register(router fiber.Router) {
	router.Use(func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	if form := h.controllers.ContactForm; form != nil {
		router.Get("/contact-form", websocket.New(func(conn *websocket.Conn) {
			updates, cancel := form.Subscribe()
			streamSnapshots(conn, h.logger, "contact-form", form.State(), updates, cancel)
		}))
	}
	if projects := h.controllers.Projects; projects != nil {
		router.Get("/projects", websocket.New(func(conn *websocket.Conn) {
			updates, cancel := projects.Subscribe()
			streamSnapshots(conn, h.logger, "projects", projects.State(), updates, cancel)
		}))
	}
	if posts := h.controllers.Posts; posts != nil {
		router.Get("/posts", websocket.New(func(conn *websocket.Conn) {
			updates, cancel := posts.Subscribe()
			streamSnapshots(conn, h.logger, "posts", posts.State(), updates, cancel)
		}))
	}
	if inbox := h.controllers.Inbox; inbox != nil {
		router.Get("/messages", websocket.New(func(conn *websocket.Conn) {
			updates, cancel := inbox.Subscribe()
			streamSnapshots(conn, h.logger, "messages", inbox.State(), updates, cancel)
		}))
	}
}

// streamSnapshots writes the current snapshot, then every update, until the
// client disconnects or the subscription closes. Subscribe is called before
// State so no change between the two is lost.
func streamSnapshots[T any](conn *websocket.Conn, logger zerolog.Logger, stream string, current T, updates <-chan T, cancel func()) {
	defer cancel()
	defer func() { _ = conn.Close() }()

	log := logger.With().Str("stream", stream).Logger()
	log.Debug().Msg("stream connected")
	defer log.Debug().Msg("stream disconnected")

	// Inbound frames are discarded; a read error means the client went away.
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if err := writeSnapshot(conn, stream, current); err != nil {
		log.Debug().Err(err).Msg("initial snapshot write failed")
		return
	}

	for {
		select {
		case <-gone:
			return
		case state, ok := <-updates:
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "stream closed"))
				return
			}
			if err := writeSnapshot(conn, stream, state); err != nil {
				log.Debug().Err(err).Msg("snapshot write failed")
				return
			}
		}
	}
}

func writeSnapshot[T any](conn *websocket.Conn, stream string, state T) error {
	if err := conn.SetWriteDeadline(time.Now().Add(streamWriteTimeout)); err != nil {
		return err
	}
	return conn.WriteJSON(snapshotFrame[T]{Stream: stream, Data: state})
}
