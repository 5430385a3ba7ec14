package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/serogonpi/desarrollo-mobile-EAII/internal/database"
	"github.com/serogonpi/desarrollo-mobile-EAII/internal/repository"
)

func TestSeedRunsOnlyOnFirstLaunch(t *testing.T) {
	name := strings.ReplaceAll(t.Name(), "/", "_")
	db, err := database.ConnectSQLite(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	projects := repository.NewProjectRepository(db, nil, zerolog.Nop())
	posts := repository.NewPostRepository(db, nil, zerolog.Nop())
	prefs := repository.NewPreferenceRepository(db)
	svc := NewSeedService(projects, posts, prefs, zerolog.Nop())
	ctx := context.Background()

	result, err := svc.Seed(ctx, false)
	require.NoError(t, err)
	require.False(t, result.Skipped)
	require.Equal(t, len(sampleProjects()), result.Projects)
	require.Equal(t, len(samplePosts()), result.Posts)

	favorites, err := projects.ListFavorites(ctx)
	require.NoError(t, err)
	require.Len(t, favorites, 2)

	published, err := posts.CountPublished(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 3, published)

	result, err = svc.Seed(ctx, false)
	require.NoError(t, err)
	require.True(t, result.Skipped)

	total, err := projects.Count(ctx)
	require.NoError(t, err)
	require.EqualValues(t, len(sampleProjects()), total)

	result, err = svc.Seed(ctx, true)
	require.NoError(t, err)
	require.False(t, result.Skipped)
	total, err = projects.Count(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 2*len(sampleProjects()), total)
}

func TestSampleDataIsValid(t *testing.T) {
	for _, project := range sampleProjects() {
		require.True(t, project.IsValid(), project.Title)
	}
	for _, post := range samplePosts() {
		require.True(t, post.IsValid(), post.Title)
		require.True(t, post.IsPublished)
	}
}
