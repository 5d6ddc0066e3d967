package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/anthemnandani/projec-traking-system-backend/models"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	List(ctx context.Context) ([]models.Payment, error)
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]models.Payment, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Payment, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*models.Payment, error)
	Delete(ctx context.Context, id uuid.UUID) error
	MarkReceived(ctx context.Context, id uuid.UUID, transactionID string, receivedAt time.Time) (bool, error)
}

type gormPaymentRepo struct {
	db *gorm.DB
}

func NewGormPaymentRepo(db *gorm.DB) PaymentRepository {
	return &gormPaymentRepo{db: db}
}

func (r *gormPaymentRepo) Create(ctx context.Context, payment *models.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *gormPaymentRepo) List(ctx context.Context) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.WithContext(ctx).Order("created_at desc").Find(&payments).Error
	return payments, err
}

func (r *gormPaymentRepo) ListByClient(ctx context.Context, clientID uuid.UUID) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.WithContext(ctx).Where("client_id = ?", clientID).Order("created_at desc").Find(&payments).Error
	return payments, err
}

func (r *gormPaymentRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&payment).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *gormPaymentRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*models.Payment, error) {
	updates["updated_at"] = time.Now()
	if err := r.db.WithContext(ctx).Model(&models.Payment{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *gormPaymentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Payment{}).Error
}

// MarkReceived applies the received transition as a single conditional
// update so that concurrent webhook deliveries cannot both win: the row is
// only touched while its status is not yet received. Returns whether the
// transition was applied.
func (r *gormPaymentRepo) MarkReceived(ctx context.Context, id uuid.UUID, transactionID string, receivedAt time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.Payment{}).
		Where("id = ? AND status <> ?", id, models.PaymentStatusReceived).
		Updates(map[string]interface{}{
			"status":         models.PaymentStatusReceived,
			"transaction_id": transactionID,
			"received_at":    receivedAt,
			"updated_at":     time.Now(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
