package repository

import (
	"context"

	"greenbasket/internal/domain/model"
)

// ウォレット台帳。追記と読み出しのみ。
type WalletRepository interface {
	Append(ctx context.Context, txn model.WalletTransaction) (model.WalletTransaction, error)
	ListByUserID(ctx context.Context, userID int64) ([]model.WalletTransaction, error)
	//残高 = amountの合計
	SumByUserID(ctx context.Context, userID int64) (int64, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, n model.Notification) (model.Notification, error)
	FindByID(ctx context.Context, id int64) (model.Notification, error)
	ListByUserID(ctx context.Context, userID int64) ([]model.Notification, error)
	//本人の未読だけ既読化（0行ならfalse）
	MarkRead(ctx context.Context, notificationID, userID int64) (bool, error)
}
