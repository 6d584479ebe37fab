package usecase

import (
	"context"
	"errors"

	"greenbasket/internal/domain/model"
	repo "greenbasket/internal/repository"
)

type WalletUsecase struct {
	walletRepo repo.WalletRepository
}

func NewWalletUsecase(walletRepo repo.WalletRepository) *WalletUsecase {
	return &WalletUsecase{walletRepo: walletRepo}
}

func (u *WalletUsecase) ListTransactions(ctx context.Context, userID int64) ([]model.WalletTransaction, error) {
	if userID <= 0 {
		return []model.WalletTransaction{}, errUnauthorized("unauthorized")
	}

	items, err := u.walletRepo.ListByUserID(ctx, userID)
	if err != nil {
		return []model.WalletTransaction{}, errInternal("db error")
	}
	return items, nil
}

type WalletBalanceOutput struct {
	Balance int64 `json:"balance"`
}

// 残高は台帳の合計。キャッシュは持たない。
func (u *WalletUsecase) Balance(ctx context.Context, userID int64) (WalletBalanceOutput, error) {
	if userID <= 0 {
		return WalletBalanceOutput{}, errUnauthorized("unauthorized")
	}

	sum, err := u.walletRepo.SumByUserID(ctx, userID)
	if err != nil {
		return WalletBalanceOutput{}, errInternal("db error")
	}
	return WalletBalanceOutput{Balance: sum}, nil
}

type NotificationUsecase struct {
	notificationRepo repo.NotificationRepository
}

func NewNotificationUsecase(notificationRepo repo.NotificationRepository) *NotificationUsecase {
	return &NotificationUsecase{notificationRepo: notificationRepo}
}

func (u *NotificationUsecase) List(ctx context.Context, userID int64) ([]model.Notification, error) {
	if userID <= 0 {
		return []model.Notification{}, errUnauthorized("unauthorized")
	}

	items, err := u.notificationRepo.ListByUserID(ctx, userID)
	if err != nil {
		return []model.Notification{}, errInternal("db error")
	}
	return items, nil
}

// MarkReadは本人の通知だけ既読化する。既読済みはそのまま成功（冪等）。
func (u *NotificationUsecase) MarkRead(ctx context.Context, userID int64, notificationID int64) error {
	if userID <= 0 {
		return errUnauthorized("unauthorized")
	}
	if notificationID <= 0 {
		return errValidation("invalid id")
	}

	ok, err := u.notificationRepo.MarkRead(ctx, notificationID, userID)
	if err != nil {
		return errInternal("db error")
	}
	if ok {
		return nil
	}

	// 0行は「無い・他人・既読済み」のいずれか。取り直して区別する。
	n, err := u.notificationRepo.FindByID(ctx, notificationID)
	if errors.Is(err, repo.ErrNotFound) {
		return errNotFound("notification not found")
	}
	if err != nil {
		return errInternal("db error")
	}
	// 他人の通知は存在も明かさない
	if n.UserID != userID {
		return errNotFound("notification not found")
	}
	return nil
}
