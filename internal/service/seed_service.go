package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/serogonpi/desarrollo-mobile-EAII/internal/repository"
)

// FirstLaunchKey is the preference recording whether sample data was loaded.
const FirstLaunchKey = "is_first_launch"

// SeedResult summarises a seeding run.
type SeedResult struct {
	Projects int  `json:"projects"`
	Posts    int  `json:"posts"`
	Skipped  bool `json:"skipped"`
}

// SeedService loads sample portfolio content on first launch.
type SeedService interface {
	Seed(ctx context.Context, force bool) (SeedResult, error)
}

type seedService struct {
	projects repository.ProjectRepository
	posts    repository.PostRepository
	prefs    repository.PreferenceRepository
	logger   zerolog.Logger
}

// NewSeedService constructs a seeding service.
func NewSeedService(projects repository.ProjectRepository, posts repository.PostRepository, prefs repository.PreferenceRepository, logger zerolog.Logger) SeedService {
	return &seedService{
		projects: projects,
		posts:    posts,
		prefs:    prefs,
		logger:   logger.With().Str("component", "seed_service").Logger(),
	}
}

func (s *seedService) Seed(ctx context.Context, force bool) (SeedResult, error) {
	if !force {
		first, err := s.isFirstLaunch(ctx)
		if err != nil {
			return SeedResult{}, err
		}
		if !first {
			s.logger.Debug().Msg("sample data already loaded")
			return SeedResult{Skipped: true}, nil
		}
	}

	var result SeedResult
	for _, project := range sampleProjects() {
		project := project
		if err := s.projects.Upsert(ctx, &project); err != nil {
			return result, fmt.Errorf("seed project %q: %w", project.Title, err)
		}
		result.Projects++
	}
	for _, post := range samplePosts() {
		post := post
		if err := s.posts.Upsert(ctx, &post); err != nil {
			return result, fmt.Errorf("seed post %q: %w", post.Title, err)
		}
		result.Posts++
	}

	if err := s.prefs.Set(ctx, FirstLaunchKey, "false"); err != nil {
		return result, fmt.Errorf("record first launch: %w", err)
	}

	s.logger.Info().Int("projects", result.Projects).Int("posts", result.Posts).Msg("sample data loaded")
	return result, nil
}

func (s *seedService) isFirstLaunch(ctx context.Context) (bool, error) {
	value, ok, err := s.prefs.Get(ctx, FirstLaunchKey)
	if err != nil {
		return false, fmt.Errorf("read first launch flag: %w", err)
	}
	return !ok || value != "false", nil
}
