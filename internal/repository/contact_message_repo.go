package repository

import (
	"context"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/serogonpi/desarrollo-mobile-EAII/internal/events"
	"github.com/serogonpi/desarrollo-mobile-EAII/internal/models"
)

// ContactMessageRepository persists local copies of sent contact messages.
type ContactMessageRepository interface {
	Create(ctx context.Context, message *models.ContactMessage) error
	Update(ctx context.Context, message *models.ContactMessage) error
	Delete(ctx context.Context, id uint) error
	ListAll(ctx context.Context) ([]models.ContactMessage, error)
	ListUnread(ctx context.Context) ([]models.ContactMessage, error)
	ListRead(ctx context.Context) ([]models.ContactMessage, error)
	GetByID(ctx context.Context, id uint) (models.ContactMessage, error)
	SetRead(ctx context.Context, id uint, read bool) error
	DeleteAll(ctx context.Context) error
	CountUnread(ctx context.Context) (int64, error)
	Count(ctx context.Context) (int64, error)
}

type contactMessageRepository struct {
	db     *gorm.DB
	notify notifier
}

// NewContactMessageRepository constructs a repository backed by GORM.
func NewContactMessageRepository(db *gorm.DB, publisher events.Publisher, logger zerolog.Logger) ContactMessageRepository {
	return &contactMessageRepository{db: db, notify: newNotifier(events.TableContactMessages, publisher, logger)}
}

func (r *contactMessageRepository) Create(ctx context.Context, message *models.ContactMessage) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(message).Error
	return r.notify.done(ctx, events.OpCreate, message.ID, err)
}

func (r *contactMessageRepository) Update(ctx context.Context, message *models.ContactMessage) error {
	if message.ID == 0 {
		return ErrMissingID
	}
	err := affected(r.db.WithContext(ctx).Model(message).Select("*").Omit("id", "created_at").Updates(message))
	if err == nil {
		err = r.db.WithContext(ctx).First(message, message.ID).Error
	}
	return r.notify.done(ctx, events.OpUpdate, message.ID, translate(err))
}

func (r *contactMessageRepository) Delete(ctx context.Context, id uint) error {
	err := affected(r.db.WithContext(ctx).Delete(&models.ContactMessage{}, id))
	return r.notify.done(ctx, events.OpDelete, id, err)
}

func (r *contactMessageRepository) ListAll(ctx context.Context) ([]models.ContactMessage, error) {
	var messages []models.ContactMessage
	err := r.db.WithContext(ctx).Order(newestFirst).Find(&messages).Error
	return messages, err
}

func (r *contactMessageRepository) ListUnread(ctx context.Context) ([]models.ContactMessage, error) {
	return r.listByRead(ctx, false)
}

func (r *contactMessageRepository) ListRead(ctx context.Context) ([]models.ContactMessage, error) {
	return r.listByRead(ctx, true)
}

func (r *contactMessageRepository) listByRead(ctx context.Context, read bool) ([]models.ContactMessage, error) {
	var messages []models.ContactMessage
	err := r.db.WithContext(ctx).Where("is_read = ?", read).Order(newestFirst).Find(&messages).Error
	return messages, err
}

func (r *contactMessageRepository) GetByID(ctx context.Context, id uint) (models.ContactMessage, error) {
	var message models.ContactMessage
	err := r.db.WithContext(ctx).First(&message, id).Error
	return message, translate(err)
}

func (r *contactMessageRepository) SetRead(ctx context.Context, id uint, read bool) error {
	err := affected(r.db.WithContext(ctx).
		Model(&models.ContactMessage{}).
		Where("id = ?", id).
		Update("is_read", read))
	return r.notify.done(ctx, events.OpUpdate, id, err)
}

func (r *contactMessageRepository) DeleteAll(ctx context.Context) error {
	err := r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.ContactMessage{}).Error
	return r.notify.done(ctx, events.OpClear, 0, err)
}

func (r *contactMessageRepository) CountUnread(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.ContactMessage{}).Where("is_read = ?", false).Count(&total).Error
	return total, err
}

func (r *contactMessageRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.ContactMessage{}).Count(&total).Error
	return total, err
}
