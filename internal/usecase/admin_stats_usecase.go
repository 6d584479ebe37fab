package usecase

import (
	"context"

	repo "greenbasket/internal/repository"
)

// AdminStatsUsecaseは管理画面の集計。
type AdminStatsUsecase struct {
	orderRepo   repo.OrderRepository
	productRepo repo.ProductRepository
}

func NewAdminStatsUsecase(orderRepo repo.OrderRepository, productRepo repo.ProductRepository) *AdminStatsUsecase {
	return &AdminStatsUsecase{orderRepo: orderRepo, productRepo: productRepo}
}

type StatsOutput struct {
	TotalOrders int64 `json:"total_orders"`
	Revenue     int64 `json:"revenue"`
}

func (u *AdminStatsUsecase) Stats(ctx context.Context) (StatsOutput, error) {
	s, err := u.orderRepo.Stats(ctx)
	if err != nil {
		return StatsOutput{}, errInternal("db error")
	}
	return StatsOutput{TotalOrders: s.TotalOrders, Revenue: s.Revenue}, nil
}

type TopProductOutput struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	QtySold   int64  `json:"qty_sold"`
}

func (u *AdminStatsUsecase) TopProducts(ctx context.Context, limit int) ([]TopProductOutput, error) {
	if limit < 1 || limit > 50 {
		limit = 5
	}

	rows, err := u.productRepo.TopSelling(ctx, limit)
	if err != nil {
		return []TopProductOutput{}, errInternal("db error")
	}

	outs := make([]TopProductOutput, 0, len(rows))
	for _, r := range rows {
		outs = append(outs, TopProductOutput{
			ProductID: r.Product.ID,
			Name:      r.Product.Name,
			QtySold:   r.QtySold,
		})
	}
	return outs, nil
}
