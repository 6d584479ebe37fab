package repository

import (
	"context"
	"time"

	"greenbasket/internal/domain/model"
)

type AdminOrderListFilter struct {
	Page   int
	Limit  int
	Status string
	UserID *int64
	From   *time.Time
	To     *time.Time
}

// 集計（管理画面）
type OrderStats struct {
	TotalOrders int64
	Revenue     int64
}

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	ListByUserID(ctx context.Context, userID int64, page int, limit int) ([]model.Order, int64, error)
	Create(ctx context.Context, order model.Order) (int64, error)

	//現在statusがfromのときだけtoへ更新する（0行ならfalse）
	UpdateStatusFrom(ctx context.Context, orderID int64, from, to model.OrderStatus) (bool, error)

	//PAIDかつ配達未割当の注文一覧
	ListPaidUnassigned(ctx context.Context) ([]model.Order, error)

	//管理者用の注文一覧
	ListAdmin(ctx context.Context, f AdminOrderListFilter) ([]model.Order, int64, error)

	//キャンセル以外の注文数と売上合計
	Stats(ctx context.Context) (OrderStats, error)
}

type OrderItemRepository interface {
	CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error
	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error)
}
