package repository

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/serogonpi/desarrollo-mobile-EAII/internal/events"
	"github.com/serogonpi/desarrollo-mobile-EAII/internal/models"
)

// PostRepository persists blog posts.
type PostRepository interface {
	Upsert(ctx context.Context, post *models.Post) error
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
	ListAll(ctx context.Context) ([]models.Post, error)
	ListPublished(ctx context.Context) ([]models.Post, error)
	GetByID(ctx context.Context, id uint) (models.Post, error)
	ListByTag(ctx context.Context, tag string) ([]models.Post, error)
	Search(ctx context.Context, query string) ([]models.Post, error)
	IncrementViewCount(ctx context.Context, id uint) error
	SetPublished(ctx context.Context, id uint, published bool) error
	DeleteAll(ctx context.Context) error
	CountPublished(ctx context.Context) (int64, error)
}

type postRepository struct {
	db     *gorm.DB
	notify notifier
}

// NewPostRepository constructs a post repository backed by GORM.
func NewPostRepository(db *gorm.DB, publisher events.Publisher, logger zerolog.Logger) PostRepository {
	return &postRepository{db: db, notify: newNotifier(events.TablePosts, publisher, logger)}
}

func (r *postRepository) Upsert(ctx context.Context, post *models.Post) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(post).Error
	return r.notify.done(ctx, events.OpCreate, post.ID, err)
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	if post.ID == 0 {
		return ErrMissingID
	}
	// view_count only moves through IncrementViewCount.
	err := affected(r.db.WithContext(ctx).Model(post).Select("*").Omit("id", "created_at", "view_count").Updates(post))
	if err == nil {
		err = r.db.WithContext(ctx).First(post, post.ID).Error
	}
	return r.notify.done(ctx, events.OpUpdate, post.ID, translate(err))
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	err := affected(r.db.WithContext(ctx).Delete(&models.Post{}, id))
	return r.notify.done(ctx, events.OpDelete, id, err)
}

func (r *postRepository) ListAll(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.WithContext(ctx).Order(newestFirst).Find(&posts).Error
	return posts, err
}

func (r *postRepository) ListPublished(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.WithContext(ctx).Where("is_published = ?", true).Order(newestFirst).Find(&posts).Error
	return posts, err
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).First(&post, id).Error
	return post, translate(err)
}

func (r *postRepository) ListByTag(ctx context.Context, tag string) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.WithContext(ctx).
		Where("tags LIKE ? AND is_published = ?", "%"+strings.TrimSpace(tag)+"%", true).
		Order(newestFirst).
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) Search(ctx context.Context, query string) ([]models.Post, error) {
	pattern := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
	var posts []models.Post
	err := r.db.WithContext(ctx).
		Where("LOWER(title) LIKE ? OR LOWER(summary) LIKE ? OR LOWER(content) LIKE ?", pattern, pattern, pattern).
		Order(newestFirst).
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) IncrementViewCount(ctx context.Context, id uint) error {
	err := affected(r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", id).
		Update("view_count", gorm.Expr("view_count + ?", 1)))
	return r.notify.done(ctx, events.OpUpdate, id, err)
}

func (r *postRepository) SetPublished(ctx context.Context, id uint, published bool) error {
	err := affected(r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", id).
		Update("is_published", published))
	return r.notify.done(ctx, events.OpUpdate, id, err)
}

func (r *postRepository) DeleteAll(ctx context.Context) error {
	err := r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Post{}).Error
	return r.notify.done(ctx, events.OpClear, 0, err)
}

func (r *postRepository) CountPublished(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Post{}).Where("is_published = ?", true).Count(&total).Error
	return total, err
}
