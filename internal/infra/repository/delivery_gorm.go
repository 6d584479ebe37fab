package repository

import (
	"context"
	"errors"
	"time"

	"greenbasket/internal/domain/model"
	repo "greenbasket/internal/repository"

	"gorm.io/gorm"
)

type DeliveryAssignmentGormRepository struct {
	db *gorm.DB
}

func NewDeliveryAssignmentGormRepository(db *gorm.DB) *DeliveryAssignmentGormRepository {
	return &DeliveryAssignmentGormRepository{db: db}
}

// order_idのunique制約が二重割当の最後の砦になる
func (r *DeliveryAssignmentGormRepository) Create(ctx context.Context, a model.DeliveryAssignment) (model.DeliveryAssignment, error) {
	if err := r.db.WithContext(ctx).Create(&a).Error; err != nil {
		return model.DeliveryAssignment{}, err
	}
	return a, nil
}

func (r *DeliveryAssignmentGormRepository) FindByOrderID(ctx context.Context, orderID int64) (model.DeliveryAssignment, error) {
	var a model.DeliveryAssignment
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.DeliveryAssignment{}, repo.ErrNotFound
	}
	if err != nil {
		return model.DeliveryAssignment{}, err
	}
	return a, nil
}

func (r *DeliveryAssignmentGormRepository) FindByOrderAndPartner(ctx context.Context, orderID, partnerID int64) (model.DeliveryAssignment, error) {
	var a model.DeliveryAssignment
	err := r.db.WithContext(ctx).
		Where("order_id = ? AND delivery_partner_id = ?", orderID, partnerID).
		First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.DeliveryAssignment{}, repo.ErrNotFound
	}
	if err != nil {
		return model.DeliveryAssignment{}, err
	}
	return a, nil
}

func (r *DeliveryAssignmentGormRepository) MarkDelivered(ctx context.Context, assignmentID int64) error {
	res := r.db.WithContext(ctx).Model(&model.DeliveryAssignment{}).
		Where("id = ? AND delivered_at IS NULL", assignmentID).
		Update("delivered_at", time.Now())

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
