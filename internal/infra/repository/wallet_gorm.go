package repository

import (
	"context"
	"errors"

	"greenbasket/internal/domain/model"
	repo "greenbasket/internal/repository"

	"gorm.io/gorm"
)

type WalletGormRepository struct {
	db *gorm.DB
}

func NewWalletGormRepository(db *gorm.DB) *WalletGormRepository {
	return &WalletGormRepository{db: db}
}

// 台帳への追記。更新・削除のAPIは持たない。
func (r *WalletGormRepository) Append(ctx context.Context, txn model.WalletTransaction) (model.WalletTransaction, error) {
	if err := r.db.WithContext(ctx).Create(&txn).Error; err != nil {
		return model.WalletTransaction{}, err
	}
	return txn, nil
}

func (r *WalletGormRepository) ListByUserID(ctx context.Context, userID int64) ([]model.WalletTransaction, error) {
	var items []model.WalletTransaction
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id desc").
		Find(&items).Error; err != nil {
		return []model.WalletTransaction{}, err
	}
	return items, nil
}

// 残高 = amountの合計
func (r *WalletGormRepository) SumByUserID(ctx context.Context, userID int64) (int64, error) {
	var balance int64
	err := r.db.WithContext(ctx).Model(&model.WalletTransaction{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&balance).Error
	if err != nil {
		return 0, err
	}
	return balance, nil
}

type NotificationGormRepository struct {
	db *gorm.DB
}

func NewNotificationGormRepository(db *gorm.DB) *NotificationGormRepository {
	return &NotificationGormRepository{db: db}
}

func (r *NotificationGormRepository) Create(ctx context.Context, n model.Notification) (model.Notification, error) {
	if err := r.db.WithContext(ctx).Create(&n).Error; err != nil {
		return model.Notification{}, err
	}
	return n, nil
}

func (r *NotificationGormRepository) FindByID(ctx context.Context, id int64) (model.Notification, error) {
	var n model.Notification
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&n).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Notification{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Notification{}, err
	}
	return n, nil
}

func (r *NotificationGormRepository) ListByUserID(ctx context.Context, userID int64) ([]model.Notification, error) {
	var items []model.Notification
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id desc").
		Find(&items).Error; err != nil {
		return []model.Notification{}, err
	}
	return items, nil
}

// 本人の未読だけ既読化（フラグは一度だけ立つ）
func (r *NotificationGormRepository) MarkRead(ctx context.Context, notificationID, userID int64) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("id = ? AND user_id = ? AND read = ?", notificationID, userID, false).
		Update("read", true)

	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	return true, nil
}
