package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/anthemnandani/projec-traking-system-backend/models"
)

type ClientRepository interface {
	Create(ctx context.Context, client *models.Client) error
	List(ctx context.Context) ([]models.Client, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Client, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*models.Client, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type gormClientRepo struct {
	db *gorm.DB
}

func NewGormClientRepo(db *gorm.DB) ClientRepository {
	return &gormClientRepo{db: db}
}

func (r *gormClientRepo) Create(ctx context.Context, client *models.Client) error {
	return r.db.WithContext(ctx).Create(client).Error
}

func (r *gormClientRepo) List(ctx context.Context) ([]models.Client, error) {
	var clients []models.Client
	err := r.db.WithContext(ctx).Order("created_at desc").Find(&clients).Error
	return clients, err
}

func (r *gormClientRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	var client models.Client
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *gormClientRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*models.Client, error) {
	updates["updated_at"] = time.Now()
	if err := r.db.WithContext(ctx).Model(&models.Client{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *gormClientRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Client{}).Error
}
