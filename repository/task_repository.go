package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/anthemnandani/projec-traking-system-backend/models"
)

type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	List(ctx context.Context) ([]models.Task, error)
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]models.Task, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*models.Task, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type gormTaskRepo struct {
	db *gorm.DB
}

func NewGormTaskRepo(db *gorm.DB) TaskRepository {
	return &gormTaskRepo{db: db}
}

func (r *gormTaskRepo) Create(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *gormTaskRepo) List(ctx context.Context) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.WithContext(ctx).Order("created_at desc").Find(&tasks).Error
	return tasks, err
}

func (r *gormTaskRepo) ListByClient(ctx context.Context, clientID uuid.UUID) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.WithContext(ctx).Where("client_id = ?", clientID).Order("created_at desc").Find(&tasks).Error
	return tasks, err
}

func (r *gormTaskRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	var task models.Task
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *gormTaskRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*models.Task, error) {
	updates["updated_at"] = time.Now()
	if err := r.db.WithContext(ctx).Model(&models.Task{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *gormTaskRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Task{}).Error
}
