package usecase

import (
	"context"
	"errors"
	"strings"

	"greenbasket/internal/domain/model"
	repo "greenbasket/internal/repository"
)

type ProductUsecase struct {
	productRepo   repo.ProductRepository
	categoryRepo  repo.CategoryRepository
	inventoryRepo repo.InventoryRepository
}

// DI
func NewProductUsecase(
	productRepo repo.ProductRepository,
	categoryRepo repo.CategoryRepository,
	inventoryRepo repo.InventoryRepository,
) *ProductUsecase {
	return &ProductUsecase{
		productRepo:   productRepo,
		categoryRepo:  categoryRepo,
		inventoryRepo: inventoryRepo,
	}
}

// GET /productsの入力DTO
type ListProductsInput struct {
	Page       int
	Limit      int
	Q          string
	CategoryID *int64
	Sort       string
}

type ProductListOutput struct {
	Items []model.Product `json:"items"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

func (u *ProductUsecase) List(ctx context.Context, in ListProductsInput) (ProductListOutput, error) {
	if in.Page < 1 {
		in.Page = 1
	}
	if in.Limit < 1 || in.Limit > 100 {
		in.Limit = 20
	}
	switch in.Sort {
	case "", "price_asc", "price_desc":
		// OK
	default:
		return ProductListOutput{}, errValidation("invalid sort")
	}

	items, total, err := u.productRepo.ListPublic(ctx, repo.ProductListQuery{
		Page:       in.Page,
		Limit:      in.Limit,
		Q:          in.Q,
		CategoryID: in.CategoryID,
		Sort:       in.Sort,
	})
	if err != nil {
		return ProductListOutput{}, errInternal("db error")
	}

	return ProductListOutput{Items: items, Total: total, Page: in.Page, Limit: in.Limit}, nil
}

func (u *ProductUsecase) Detail(ctx context.Context, id int64) (model.Product, error) {
	if id <= 0 {
		return model.Product{}, errValidation("invalid id")
	}

	p, err := u.productRepo.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, errNotFound("product not found")
	}
	if err != nil {
		return model.Product{}, errInternal("db error")
	}
	if !p.IsActive {
		return model.Product{}, errNotFound("product not found")
	}

	return p, nil
}

// 管理者の商品作成。カテゴリは名前で渡し、無ければ作る。
type CreateProductInput struct {
	Name         string
	Description  string
	Brand        string
	Price        int64
	Stock        int64
	ImageURL     string
	CategoryName string
}

func (u *ProductUsecase) Create(ctx context.Context, in CreateProductInput) (model.Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.Product{}, errValidation("name is required")
	}
	if in.Price < 0 {
		return model.Product{}, errValidation("invalid price")
	}
	if in.Stock < 0 {
		return model.Product{}, errValidation("invalid stock")
	}

	var categoryID int64
	if cn := strings.TrimSpace(in.CategoryName); cn != "" {
		c, err := u.categoryRepo.GetOrCreateByName(ctx, cn)
		if err != nil {
			return model.Product{}, errInternal("db error")
		}
		categoryID = c.ID
	}

	p, err := u.productRepo.Create(ctx, model.Product{
		Name:        name,
		Description: in.Description,
		Brand:       in.Brand,
		Price:       in.Price,
		Stock:       in.Stock,
		ImageURL:    in.ImageURL,
		CategoryID:  categoryID,
		IsActive:    true,
	})
	if err != nil {
		return model.Product{}, errInternal("db error")
	}

	return p, nil
}

// 管理者の商品更新。在庫はここでは触らない（在庫APIで設定する）。
type UpdateProductInput struct {
	Name         string
	Description  string
	Brand        string
	Price        int64
	ImageURL     string
	CategoryName string
	IsActive     bool
}

func (u *ProductUsecase) Update(ctx context.Context, id int64, in UpdateProductInput) (model.Product, error) {
	if id <= 0 {
		return model.Product{}, errValidation("invalid id")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.Product{}, errValidation("name is required")
	}
	if in.Price < 0 {
		return model.Product{}, errValidation("invalid price")
	}

	p, err := u.productRepo.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, errNotFound("product not found")
	}
	if err != nil {
		return model.Product{}, errInternal("db error")
	}

	categoryID := p.CategoryID
	if cn := strings.TrimSpace(in.CategoryName); cn != "" {
		c, err := u.categoryRepo.GetOrCreateByName(ctx, cn)
		if err != nil {
			return model.Product{}, errInternal("db error")
		}
		categoryID = c.ID
	}

	p.Name = name
	p.Description = in.Description
	p.Brand = in.Brand
	p.Price = in.Price
	p.ImageURL = in.ImageURL
	p.CategoryID = categoryID
	p.IsActive = in.IsActive

	err = u.productRepo.Update(ctx, p)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, errNotFound("product not found")
	}
	if err != nil {
		return model.Product{}, errInternal("db error")
	}

	return p, nil
}

// 商品の取り下げ（論理削除）。注文明細のスナップショットは残る。
func (u *ProductUsecase) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return errValidation("invalid id")
	}

	err := u.productRepo.SoftDelete(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return errNotFound("product not found")
	}
	if err != nil {
		return errInternal("db error")
	}
	return nil
}

func (u *ProductUsecase) ListCategories(ctx context.Context) ([]model.Category, error) {
	items, err := u.categoryRepo.List(ctx)
	if err != nil {
		return []model.Category{}, errInternal("db error")
	}
	return items, nil
}

// 管理者の在庫直接設定
func (u *ProductUsecase) SetStock(ctx context.Context, productID int64, newStock int64) error {
	if productID <= 0 {
		return errValidation("invalid id")
	}
	if newStock < 0 {
		return errValidation("invalid stock")
	}

	err := u.inventoryRepo.SetStock(ctx, productID, newStock)
	if errors.Is(err, repo.ErrNotFound) {
		return errNotFound("product not found")
	}
	if err != nil {
		return errInternal("db error")
	}
	return nil
}
