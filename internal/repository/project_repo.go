package repository

import (
	"context"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/serogonpi/desarrollo-mobile-EAII/internal/events"
	"github.com/serogonpi/desarrollo-mobile-EAII/internal/models"
)

// ProjectRepository persists portfolio projects.
type ProjectRepository interface {
	Upsert(ctx context.Context, project *models.Project) error
	Update(ctx context.Context, project *models.Project) error
	Delete(ctx context.Context, id uint) error
	ListAll(ctx context.Context) ([]models.Project, error)
	GetByID(ctx context.Context, id uint) (models.Project, error)
	ListByCategory(ctx context.Context, category string) ([]models.Project, error)
	ListFavorites(ctx context.Context) ([]models.Project, error)
	SetFavorite(ctx context.Context, id uint, favorite bool) error
	DeleteAll(ctx context.Context) error
	Count(ctx context.Context) (int64, error)
}

type projectRepository struct {
	db     *gorm.DB
	notify notifier
}

// NewProjectRepository constructs a project repository backed by GORM.
func NewProjectRepository(db *gorm.DB, publisher events.Publisher, logger zerolog.Logger) ProjectRepository {
	return &projectRepository{db: db, notify: newNotifier(events.TableProjects, publisher, logger)}
}

func (r *projectRepository) Upsert(ctx context.Context, project *models.Project) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(project).Error
	return r.notify.done(ctx, events.OpCreate, project.ID, err)
}

func (r *projectRepository) Update(ctx context.Context, project *models.Project) error {
	if project.ID == 0 {
		return ErrMissingID
	}
	err := affected(r.db.WithContext(ctx).Model(project).Select("*").Omit("id", "created_at").Updates(project))
	if err == nil {
		err = r.db.WithContext(ctx).First(project, project.ID).Error
	}
	return r.notify.done(ctx, events.OpUpdate, project.ID, translate(err))
}

func (r *projectRepository) Delete(ctx context.Context, id uint) error {
	err := affected(r.db.WithContext(ctx).Delete(&models.Project{}, id))
	return r.notify.done(ctx, events.OpDelete, id, err)
}

func (r *projectRepository) ListAll(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.WithContext(ctx).Order(newestFirst).Find(&projects).Error
	return projects, err
}

func (r *projectRepository) GetByID(ctx context.Context, id uint) (models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).First(&project, id).Error
	return project, translate(err)
}

func (r *projectRepository) ListByCategory(ctx context.Context, category string) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.WithContext(ctx).Where("category = ?", category).Order(newestFirst).Find(&projects).Error
	return projects, err
}

func (r *projectRepository) ListFavorites(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.WithContext(ctx).Where("is_favorite = ?", true).Order(newestFirst).Find(&projects).Error
	return projects, err
}

func (r *projectRepository) SetFavorite(ctx context.Context, id uint, favorite bool) error {
	err := affected(r.db.WithContext(ctx).
		Model(&models.Project{}).
		Where("id = ?", id).
		Update("is_favorite", favorite))
	return r.notify.done(ctx, events.OpUpdate, id, err)
}

func (r *projectRepository) DeleteAll(ctx context.Context) error {
	err := r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Project{}).Error
	return r.notify.done(ctx, events.OpClear, 0, err)
}

func (r *projectRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Project{}).Count(&total).Error
	return total, err
}
