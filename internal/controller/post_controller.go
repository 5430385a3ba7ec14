package controller

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/serogonpi/desarrollo-mobile-EAII/internal/events"
	"github.com/serogonpi/desarrollo-mobile-EAII/internal/models"
	"github.com/serogonpi/desarrollo-mobile-EAII/internal/repository"
)

// PostState is a snapshot of the blog.
type PostState struct {
	Posts         []models.Post `json:"posts"`
	Published     []models.Post `json:"published"`
	SelectedTag   string        `json:"selected_tag,omitempty"`
	SearchQuery   string        `json:"search_query,omitempty"`
	Visible       []models.Post `json:"visible"`
	Selected      *models.Post  `json:"selected,omitempty"`
	IsLoading     bool          `json:"is_loading"`
	StatusMessage *string       `json:"status_message,omitempty"`
}

// PostController observes the post collection and mutates it.
type PostController struct {
	repo   repository.PostRepository
	source ChangeSource
	logger zerolog.Logger

	mu    sync.Mutex
	state PostState
	subs  *broadcaster[PostState]
}

// NewPostController constructs a controller; call Start to begin observing.
func NewPostController(repo repository.PostRepository, source ChangeSource, logger zerolog.Logger) *PostController {
	return &PostController{
		repo:   repo,
		source: source,
		logger: logger.With().Str("component", "post_controller").Logger(),
		state: PostState{
			Posts:     []models.Post{},
			Published: []models.Post{},
			Visible:   []models.Post{},
		},
		subs: newBroadcaster[PostState](),
	}
}

// Start loads the collection and keeps it current until ctx ends.
func (c *PostController) Start(ctx context.Context) {
	observe(ctx, c.source, events.TablePosts, c.refresh)
}

// State returns the current snapshot.
func (c *PostController) State() PostState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Subscribe streams a snapshot after every change.
func (c *PostController) Subscribe() (<-chan PostState, func()) {
	return c.subs.subscribe()
}

func (c *PostController) update(fn func(*PostState)) PostState {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(&c.state)
	c.state.Visible = SearchPosts(FilterPostsByTag(c.state.Posts, c.state.SelectedTag), c.state.SearchQuery)
	c.subs.publish(c.state)
	return c.state
}

func (c *PostController) refresh(ctx context.Context) {
	all, err := c.repo.ListAll(ctx)
	if err != nil {
		c.logger.Error().Err(err).Msg("failed to load posts")
		c.update(func(s *PostState) { s.StatusMessage = status("Error loading posts: " + err.Error()) })
		return
	}
	published, err := c.repo.ListPublished(ctx)
	if err != nil {
		c.logger.Error().Err(err).Msg("failed to load published posts")
		c.update(func(s *PostState) { s.StatusMessage = status("Error loading posts: " + err.Error()) })
		return
	}

	c.update(func(s *PostState) {
		s.Posts = all
		s.Published = published
		if s.Selected != nil {
			s.Selected = findPost(all, s.Selected.ID)
		}
	})
}

// Save sanitizes and validates the post, then creates it when its ID is zero
// and updates it otherwise.
func (c *PostController) Save(ctx context.Context, post models.Post) (PostState, error) {
	post = sanitizePost(post)
	if !post.IsValid() {
		return c.update(func(s *PostState) { s.StatusMessage = status("Error saving post: " + ErrInvalidRecord.Error()) }), ErrInvalidRecord
	}

	c.update(func(s *PostState) { s.IsLoading = true })

	var (
		err  error
		done string
	)
	if post.ID == 0 {
		err = c.repo.Upsert(ctx, &post)
		done = "Post created successfully"
	} else {
		err = c.repo.Update(ctx, &post)
		done = "Post updated successfully"
	}

	if err != nil {
		c.logger.Error().Err(err).Uint("post_id", post.ID).Msg("failed to save post")
		return c.update(func(s *PostState) {
			s.IsLoading = false
			s.StatusMessage = status("Error saving post: " + err.Error())
		}), err
	}

	c.refresh(ctx)
	return c.update(func(s *PostState) {
		s.IsLoading = false
		s.StatusMessage = status(done)
	}), nil
}

// Find returns the stored post without changing the state.
func (c *PostController) Find(ctx context.Context, id uint) (models.Post, error) {
	return c.repo.GetByID(ctx, id)
}

// Delete removes a post.
func (c *PostController) Delete(ctx context.Context, id uint) (PostState, error) {
	if err := c.repo.Delete(ctx, id); err != nil {
		return c.update(func(s *PostState) { s.StatusMessage = status("Error deleting post: " + err.Error()) }), err
	}
	c.refresh(ctx)
	return c.update(func(s *PostState) { s.StatusMessage = status("Post deleted") }), nil
}

// TogglePublish sets the published flag.
func (c *PostController) TogglePublish(ctx context.Context, id uint, published bool) (PostState, error) {
	if err := c.repo.SetPublished(ctx, id, published); err != nil {
		return c.update(func(s *PostState) { s.StatusMessage = status("Error changing post status: " + err.Error()) }), err
	}
	c.refresh(ctx)
	msg := "Post hidden"
	if published {
		msg = "Post published"
	}
	return c.update(func(s *PostState) { s.StatusMessage = status(msg) }), nil
}

// SelectPost opens a post and counts the view; zero clears the selection.
func (c *PostController) SelectPost(ctx context.Context, id uint) (PostState, error) {
	if id == 0 {
		return c.update(func(s *PostState) { s.Selected = nil }), nil
	}
	if err := c.repo.IncrementViewCount(ctx, id); err != nil {
		return c.update(func(s *PostState) {
			s.Selected = nil
			s.StatusMessage = status("Error loading post: " + err.Error())
		}), err
	}
	post, err := c.repo.GetByID(ctx, id)
	if err != nil {
		return c.update(func(s *PostState) {
			s.Selected = nil
			s.StatusMessage = status("Error loading post: " + err.Error())
		}), err
	}
	c.refresh(ctx)
	return c.update(func(s *PostState) { s.Selected = &post }), nil
}

// FilterByTag narrows Visible to posts carrying tag; empty clears the filter.
func (c *PostController) FilterByTag(tag string) PostState {
	return c.update(func(s *PostState) { s.SelectedTag = tag })
}

// Search narrows Visible by free text; empty clears the search.
func (c *PostController) Search(query string) PostState {
	return c.update(func(s *PostState) { s.SearchQuery = query })
}

// ClearStatus drops the status message.
func (c *PostController) ClearStatus() PostState {
	return c.update(func(s *PostState) { s.StatusMessage = nil })
}

// PublishedCount returns the number of published posts.
func (c *PostController) PublishedCount(ctx context.Context) (int64, error) {
	return c.repo.CountPublished(ctx)
}

func findPost(posts []models.Post, id uint) *models.Post {
	for i := range posts {
		if posts[i].ID == id {
			found := posts[i]
			return &found
		}
	}
	return nil
}
