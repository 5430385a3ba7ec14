package controller

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/serogonpi/desarrollo-mobile-EAII/internal/events"
	"github.com/serogonpi/desarrollo-mobile-EAII/internal/models"
	"github.com/serogonpi/desarrollo-mobile-EAII/internal/repository"
)

// ProjectState is a snapshot of the project gallery.
type ProjectState struct {
	Projects         []models.Project `json:"projects"`
	Favorites        []models.Project `json:"favorites"`
	SelectedCategory string           `json:"selected_category"`
	Visible          []models.Project `json:"visible"`
	Selected         *models.Project  `json:"selected,omitempty"`
	IsLoading        bool             `json:"is_loading"`
	StatusMessage    *string          `json:"status_message,omitempty"`
}

// ProjectController observes the project collection and mutates it.
type ProjectController struct {
	repo   repository.ProjectRepository
	source ChangeSource
	logger zerolog.Logger

	mu    sync.Mutex
	state ProjectState
	subs  *broadcaster[ProjectState]
}

// NewProjectController constructs a controller; call Start to begin observing.
func NewProjectController(repo repository.ProjectRepository, source ChangeSource, logger zerolog.Logger) *ProjectController {
	return &ProjectController{
		repo:   repo,
		source: source,
		logger: logger.With().Str("component", "project_controller").Logger(),
		state: ProjectState{
			Projects:         []models.Project{},
			Favorites:        []models.Project{},
			Visible:          []models.Project{},
			SelectedCategory: CategoryAll,
		},
		subs: newBroadcaster[ProjectState](),
	}
}

// Start loads the collection and keeps it current until ctx ends.
func (c *ProjectController) Start(ctx context.Context) {
	observe(ctx, c.source, events.TableProjects, c.refresh)
}

// State returns the current snapshot.
func (c *ProjectController) State() ProjectState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Subscribe streams a snapshot after every change.
func (c *ProjectController) Subscribe() (<-chan ProjectState, func()) {
	return c.subs.subscribe()
}

func (c *ProjectController) update(fn func(*ProjectState)) ProjectState {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(&c.state)
	c.state.Visible = FilterProjectsByCategory(c.state.Projects, c.state.SelectedCategory)
	c.subs.publish(c.state)
	return c.state
}

func (c *ProjectController) refresh(ctx context.Context) {
	all, err := c.repo.ListAll(ctx)
	if err != nil {
		c.logger.Error().Err(err).Msg("failed to load projects")
		c.update(func(s *ProjectState) { s.StatusMessage = status("Error loading projects: " + err.Error()) })
		return
	}
	favorites, err := c.repo.ListFavorites(ctx)
	if err != nil {
		c.logger.Error().Err(err).Msg("failed to load favorite projects")
		c.update(func(s *ProjectState) { s.StatusMessage = status("Error loading projects: " + err.Error()) })
		return
	}

	c.update(func(s *ProjectState) {
		s.Projects = all
		s.Favorites = favorites
		if s.Selected != nil {
			s.Selected = findProject(all, s.Selected.ID)
		}
	})
}

// Save creates the project when its ID is zero and updates it otherwise.
// Failures are reported both in the status message and as the returned error.
func (c *ProjectController) Save(ctx context.Context, project models.Project) (ProjectState, error) {
	if !project.IsValid() {
		return c.update(func(s *ProjectState) { s.StatusMessage = status("Error saving project: " + ErrInvalidRecord.Error()) }), ErrInvalidRecord
	}

	c.update(func(s *ProjectState) { s.IsLoading = true })

	var (
		err  error
		done string
	)
	if project.ID == 0 {
		err = c.repo.Upsert(ctx, &project)
		done = "Project created successfully"
	} else {
		err = c.repo.Update(ctx, &project)
		done = "Project updated successfully"
	}

	if err != nil {
		c.logger.Error().Err(err).Uint("project_id", project.ID).Msg("failed to save project")
		return c.update(func(s *ProjectState) {
			s.IsLoading = false
			s.StatusMessage = status("Error saving project: " + err.Error())
		}), err
	}

	c.refresh(ctx)
	return c.update(func(s *ProjectState) {
		s.IsLoading = false
		s.StatusMessage = status(done)
	}), nil
}

// Find returns the stored project without changing the state.
func (c *ProjectController) Find(ctx context.Context, id uint) (models.Project, error) {
	return c.repo.GetByID(ctx, id)
}

// Delete removes a project.
func (c *ProjectController) Delete(ctx context.Context, id uint) (ProjectState, error) {
	if err := c.repo.Delete(ctx, id); err != nil {
		return c.update(func(s *ProjectState) { s.StatusMessage = status("Error deleting project: " + err.Error()) }), err
	}
	c.refresh(ctx)
	return c.update(func(s *ProjectState) { s.StatusMessage = status("Project deleted") }), nil
}

// ToggleFavorite sets the favorite flag.
func (c *ProjectController) ToggleFavorite(ctx context.Context, id uint, favorite bool) (ProjectState, error) {
	if err := c.repo.SetFavorite(ctx, id, favorite); err != nil {
		return c.update(func(s *ProjectState) { s.StatusMessage = status("Error updating favorite: " + err.Error()) }), err
	}
	c.refresh(ctx)
	return c.State(), nil
}

// SelectProject marks a project as selected; zero clears the selection.
func (c *ProjectController) SelectProject(ctx context.Context, id uint) (ProjectState, error) {
	if id == 0 {
		return c.update(func(s *ProjectState) { s.Selected = nil }), nil
	}
	project, err := c.repo.GetByID(ctx, id)
	if err != nil {
		return c.update(func(s *ProjectState) {
			s.Selected = nil
			s.StatusMessage = status("Error loading project: " + err.Error())
		}), err
	}
	return c.update(func(s *ProjectState) { s.Selected = &project }), nil
}

// FilterByCategory changes the category shown in Visible.
func (c *ProjectController) FilterByCategory(category string) ProjectState {
	return c.update(func(s *ProjectState) {
		if category == "" {
			category = CategoryAll
		}
		s.SelectedCategory = category
	})
}

// ClearStatus drops the status message.
func (c *ProjectController) ClearStatus() ProjectState {
	return c.update(func(s *ProjectState) { s.StatusMessage = nil })
}

// Count returns the number of stored projects.
func (c *ProjectController) Count(ctx context.Context) (int64, error) {
	return c.repo.Count(ctx)
}

func findProject(projects []models.Project, id uint) *models.Project {
	for i := range projects {
		if projects[i].ID == id {
			found := projects[i]
			return &found
		}
	}
	return nil
}
