package repository

import (
	"context"
	"errors"

	"greenbasket/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 一覧検索
type ProductListQuery struct {
	Page       int
	Limit      int
	Q          string
	CategoryID *int64
	Sort       string
}

// 売れ筋集計の1行
type TopProduct struct {
	Product model.Product
	QtySold int64
}

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	ListPublic(ctx context.Context, q ProductListQuery) ([]model.Product, int64, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	SoftDelete(ctx context.Context, id int64) error

	//注文明細の合計数量で上位limit件
	TopSelling(ctx context.Context, limit int) ([]TopProduct, error)
}

// カテゴリ（名前で取得、無ければ作る）
type CategoryRepository interface {
	GetOrCreateByName(ctx context.Context, name string) (model.Category, error)
	List(ctx context.Context) ([]model.Category, error)
}

// 在庫の条件付き更新。
type InventoryRepository interface {
	SetStock(ctx context.Context, productID int64, newStock int64) error
	// 在庫が足りるときだけ減らす（足りないなら false）
	DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error)
	// 在庫戻し（キャンセル）
	IncreaseStock(ctx context.Context, productID int64, qty int64) error
}
