package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/anthemnandani/projec-traking-system-backend/models"
)

type InvoiceRepository interface {
	Create(ctx context.Context, invoice *models.Invoice) error
	List(ctx context.Context) ([]models.Invoice, error)
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]models.Invoice, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Invoice, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*models.Invoice, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type gormInvoiceRepo struct {
	db *gorm.DB
}

func NewGormInvoiceRepo(db *gorm.DB) InvoiceRepository {
	return &gormInvoiceRepo{db: db}
}

func (r *gormInvoiceRepo) Create(ctx context.Context, invoice *models.Invoice) error {
	return r.db.WithContext(ctx).Create(invoice).Error
}

func (r *gormInvoiceRepo) List(ctx context.Context) ([]models.Invoice, error) {
	var invoices []models.Invoice
	err := r.db.WithContext(ctx).Order("created_at desc").Find(&invoices).Error
	return invoices, err
}

func (r *gormInvoiceRepo) ListByClient(ctx context.Context, clientID uuid.UUID) ([]models.Invoice, error) {
	var invoices []models.Invoice
	err := r.db.WithContext(ctx).Where("client_id = ?", clientID).Order("created_at desc").Find(&invoices).Error
	return invoices, err
}

func (r *gormInvoiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Invoice, error) {
	var invoice models.Invoice
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&invoice).Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *gormInvoiceRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*models.Invoice, error) {
	updates["updated_at"] = time.Now()
	if err := r.db.WithContext(ctx).Model(&models.Invoice{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *gormInvoiceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Invoice{}).Error
}
