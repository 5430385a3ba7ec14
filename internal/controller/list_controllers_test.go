package controller

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/serogonpi/desarrollo-mobile-EAII/internal/database"
	"github.com/serogonpi/desarrollo-mobile-EAII/internal/events"
	"github.com/serogonpi/desarrollo-mobile-EAII/internal/models"
	"github.com/serogonpi/desarrollo-mobile-EAII/internal/repository"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.ConnectSQLite(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func sampleProject(title, category string) models.Project {
	return models.Project{
		Title:        title,
		Description:  "A project used in tests",
		Technologies: "Go, SQL",
		Category:     category,
	}
}

func TestProjectControllerLifecycle(t *testing.T) {
	db := setupTestDB(t)
	bus := events.NewLocalBus()
	repo := repository.NewProjectRepository(db, bus, zerolog.Nop())
	ctrl := NewProjectController(repo, bus, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ctrl.Start(ctx)

	state, err := ctrl.Save(ctx, sampleProject("Portfolio", models.CategoryWeb))
	require.NoError(t, err)
	require.Equal(t, "Project created successfully", *state.StatusMessage)
	require.Len(t, state.Projects, 1)

	state, err = ctrl.Save(ctx, sampleProject("Tracker", models.CategoryMobile))
	require.NoError(t, err)
	require.Len(t, state.Projects, 2)

	state = ctrl.FilterByCategory(models.CategoryMobile)
	require.Len(t, state.Visible, 1)
	require.Equal(t, "Tracker", state.Visible[0].Title)

	state = ctrl.FilterByCategory(CategoryAll)
	require.Len(t, state.Visible, 2)

	id := state.Projects[0].ID
	state, err = ctrl.ToggleFavorite(ctx, id, true)
	require.NoError(t, err)
	require.Len(t, state.Favorites, 1)

	edited := state.Projects[0]
	edited.Title = "Tracker v2"
	state, err = ctrl.Save(ctx, edited)
	require.NoError(t, err)
	require.Equal(t, "Project updated successfully", *state.StatusMessage)

	state, err = ctrl.SelectProject(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "Tracker v2", state.Selected.Title)

	state, err = ctrl.Delete(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "Project deleted", *state.StatusMessage)
	require.Len(t, state.Projects, 1)
	require.Nil(t, state.Selected)

	count, err := ctrl.Count(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
}

func TestProjectControllerReportsErrorsWithoutChangingLists(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewProjectRepository(db, nil, zerolog.Nop())
	ctrl := NewProjectController(repo, nil, zerolog.Nop())
	ctx := context.Background()
	ctrl.Start(ctx)

	ctrl.Save(ctx, sampleProject("Portfolio", models.CategoryWeb))

	invalid := sampleProject("Broken", models.CategoryWeb)
	invalid.Technologies = " "
	state, err := ctrl.Save(ctx, invalid)
	require.ErrorIs(t, err, ErrInvalidRecord)
	require.Equal(t, "Error saving project: record is missing required fields", *state.StatusMessage)
	require.Len(t, state.Projects, 1)

	state, err = ctrl.Delete(ctx, 999)
	require.ErrorIs(t, err, repository.ErrNotFound)
	require.Equal(t, "Error deleting project: record not found", *state.StatusMessage)
	require.Len(t, state.Projects, 1)

	state = ctrl.ClearStatus()
	require.Nil(t, state.StatusMessage)
}

func TestProjectControllerFollowsExternalChanges(t *testing.T) {
	db := setupTestDB(t)
	bus := events.NewLocalBus()
	repo := repository.NewProjectRepository(db, bus, zerolog.Nop())
	ctrl := NewProjectController(repo, bus, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ctrl.Start(ctx)
	require.Empty(t, ctrl.State().Projects)

	project := sampleProject("Seeded", models.CategoryBackend)
	require.NoError(t, repo.Upsert(ctx, &project))

	require.Eventually(t, func() bool {
		return len(ctrl.State().Projects) == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestPostControllerLifecycle(t *testing.T) {
	db := setupTestDB(t)
	bus := events.NewLocalBus()
	repo := repository.NewPostRepository(db, bus, zerolog.Nop())
	ctrl := NewPostController(repo, bus, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ctrl.Start(ctx)

	post := models.NewPost("Intro to <b>Compose</b>", "<p>Compose replaces XML layouts.</p><script>alert(1)</script>", "", "Dev", "android, kotlin")
	state, err := ctrl.Save(ctx, post)
	require.NoError(t, err)
	require.Equal(t, "Post created successfully", *state.StatusMessage)
	require.Len(t, state.Posts, 1)
	require.Equal(t, "Intro to Compose", state.Posts[0].Title)
	require.NotContains(t, state.Posts[0].Content, "script")
	require.Contains(t, state.Posts[0].Content, "<p>")

	id := state.Posts[0].ID
	state, err = ctrl.TogglePublish(ctx, id, false)
	require.NoError(t, err)
	require.Equal(t, "Post hidden", *state.StatusMessage)
	require.Empty(t, state.Published)

	state, err = ctrl.TogglePublish(ctx, id, true)
	require.NoError(t, err)
	require.Equal(t, "Post published", *state.StatusMessage)
	require.Len(t, state.Published, 1)

	state, err = ctrl.SelectPost(ctx, id)
	require.NoError(t, err)
	require.Equal(t, 1, state.Selected.ViewCount)

	state = ctrl.FilterByTag("KOTLIN")
	require.Len(t, state.Visible, 1)
	state = ctrl.Search("swift")
	require.Empty(t, state.Visible)
	ctrl.FilterByTag("")
	state = ctrl.Search("")
	require.Len(t, state.Visible, 1)

	count, err := ctrl.PublishedCount(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)

	state, err = ctrl.Delete(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "Post deleted", *state.StatusMessage)
	require.Empty(t, state.Posts)

	_, err = ctrl.SelectPost(ctx, id)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPostControllerRejectsInvalidPost(t *testing.T) {
	db := setupTestDB(t)
	ctrl := NewPostController(repository.NewPostRepository(db, nil, zerolog.Nop()), nil, zerolog.Nop())
	ctx := context.Background()
	ctrl.Start(ctx)

	state, err := ctrl.Save(ctx, models.NewPost("Hey", "too short", "", "Dev", ""))
	require.ErrorIs(t, err, ErrInvalidRecord)
	require.Equal(t, "Error saving post: record is missing required fields", *state.StatusMessage)
	require.Empty(t, state.Posts)
}

func TestInboxController(t *testing.T) {
	db := setupTestDB(t)
	bus := events.NewLocalBus()
	repo := repository.NewContactMessageRepository(db, bus, zerolog.Nop())
	ctrl := NewInboxController(repo, bus, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ctrl.Start(ctx)

	message := &models.ContactMessage{Name: "Ana", Email: "ana@example.com", Subject: "Quote", Message: "Need an app built"}
	require.NoError(t, repo.Create(ctx, message))

	require.Eventually(t, func() bool {
		return len(ctrl.State().Unread) == 1
	}, 2*time.Second, 10*time.Millisecond)

	state, err := ctrl.MarkRead(ctx, message.ID, true)
	require.NoError(t, err)
	require.Empty(t, state.Unread)
	require.Len(t, state.Messages, 1)

	unread, err := ctrl.UnreadCount(ctx)
	require.NoError(t, err)
	require.Zero(t, unread)

	state, err = ctrl.Delete(ctx, message.ID)
	require.NoError(t, err)
	require.Equal(t, "Message deleted", *state.StatusMessage)
	require.Empty(t, state.Messages)

	state, err = ctrl.MarkRead(ctx, message.ID, false)
	require.ErrorIs(t, err, repository.ErrNotFound)
	require.Equal(t, "Error updating message: record not found", *state.StatusMessage)
}

func TestFilters(t *testing.T) {
	projects := []models.Project{
		sampleProject("A", models.CategoryWeb),
		sampleProject("B", models.CategoryMobile),
	}
	require.Len(t, FilterProjectsByCategory(projects, CategoryAll), 2)
	require.Len(t, FilterProjectsByCategory(projects, ""), 2)
	require.Len(t, FilterProjectsByCategory(projects, models.CategoryWeb), 1)
	require.Empty(t, FilterProjectsByCategory(projects, "web"), "category match is exact")

	posts := []models.Post{
		{Title: "Compose", Summary: "UI toolkit", Content: "Declarative", Tags: "android, kotlin"},
		{Title: "Gin", Summary: "HTTP", Content: "Routing in Go", Tags: "go"},
	}
	require.Len(t, FilterPostsByTag(posts, "Kotlin"), 1)
	require.Len(t, FilterPostsByTag(posts, ""), 2)
	require.Len(t, SearchPosts(posts, "routing"), 1)
	require.Len(t, SearchPosts(posts, "toolkit"), 1)
	require.Len(t, SearchPosts(posts, "  "), 2)
}
