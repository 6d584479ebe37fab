package usecase

import (
	"context"
	"errors"

	repo "greenbasket/internal/repository"
)

// CartUsecaseは /cart の業務ロジック。
// 表示価格は現在の商品価格（確定時に改めてスナップショットされる）。
type CartUsecase struct {
	cartItemRepo repo.CartItemRepository
	productRepo  repo.ProductRepository
}

func NewCartUsecase(
	cartItemRepo repo.CartItemRepository,
	productRepo repo.ProductRepository,
) *CartUsecase {
	return &CartUsecase{
		cartItemRepo: cartItemRepo,
		productRepo:  productRepo,
	}
}

type CartItemResponse struct {
	ID        int64  `json:"id"`
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int64  `json:"quantity"`
}

type CartResponse struct {
	Items []CartItemResponse `json:"items"`
	Total int64              `json:"total"`
}

type AddCartInput struct {
	ProductID int64
	Quantity  int64
}

type UpdateCartItemInput struct {
	Quantity int64
}

// GetCartはカート取得（無ければ空を返す）。
func (u *CartUsecase) GetCart(ctx context.Context, userID int64) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, errUnauthorized("unauthorized")
	}

	return u.buildCartResponse(ctx, userID)
}

// AddToCartはカートに追加（同一商品は数量加算）。
func (u *CartUsecase) AddToCart(ctx context.Context, userID int64, in AddCartInput) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, errUnauthorized("unauthorized")
	}
	if in.ProductID <= 0 {
		return CartResponse{}, errValidation("invalid product_id")
	}
	if in.Quantity < 1 {
		return CartResponse{}, errValidation("invalid quantity")
	}

	//商品が存在して公開中であること
	p, err := u.productRepo.FindByID(ctx, in.ProductID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartResponse{}, errNotFound("product not found")
	}
	if err != nil {
		return CartResponse{}, errInternal("db error")
	}
	if !p.IsActive {
		return CartResponse{}, errValidation("product unavailable")
	}

	if err := u.cartItemRepo.UpsertByUserAndProduct(ctx, userID, in.ProductID, in.Quantity); err != nil {
		return CartResponse{}, errInternal("db error")
	}

	return u.buildCartResponse(ctx, userID)
}

// UpdateItemは明細の数量を変更する。
func (u *CartUsecase) UpdateItem(ctx context.Context, userID int64, cartItemID int64, in UpdateCartItemInput) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, errUnauthorized("unauthorized")
	}
	if cartItemID <= 0 {
		return CartResponse{}, errValidation("invalid id")
	}
	if in.Quantity < 1 {
		return CartResponse{}, errValidation("invalid quantity")
	}

	item, err := u.cartItemRepo.FindByID(ctx, cartItemID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartResponse{}, errNotFound("cart item not found")
	}
	if err != nil {
		return CartResponse{}, errInternal("db error")
	}
	//他人の明細は「存在しない扱い」にする
	if item.UserID != userID {
		return CartResponse{}, errNotFound("cart item not found")
	}

	if err := u.cartItemRepo.UpdateQuantity(ctx, cartItemID, in.Quantity); err != nil {
		return CartResponse{}, errInternal("db error")
	}

	return u.buildCartResponse(ctx, userID)
}

// RemoveItemは明細を削除する。
func (u *CartUsecase) RemoveItem(ctx context.Context, userID int64, cartItemID int64) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, errUnauthorized("unauthorized")
	}
	if cartItemID <= 0 {
		return CartResponse{}, errValidation("invalid id")
	}

	item, err := u.cartItemRepo.FindByID(ctx, cartItemID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartResponse{}, errNotFound("cart item not found")
	}
	if err != nil {
		return CartResponse{}, errInternal("db error")
	}
	if item.UserID != userID {
		return CartResponse{}, errNotFound("cart item not found")
	}

	if err := u.cartItemRepo.DeleteByID(ctx, cartItemID); err != nil {
		return CartResponse{}, errInternal("db error")
	}

	return u.buildCartResponse(ctx, userID)
}

func (u *CartUsecase) buildCartResponse(ctx context.Context, userID int64) (CartResponse, error) {
	items, err := u.cartItemRepo.ListByUserID(ctx, userID)
	if err != nil {
		return CartResponse{}, errInternal("db error")
	}

	resp := CartResponse{Items: make([]CartItemResponse, 0, len(items))}
	for _, it := range items {
		p, err := u.productRepo.FindByID(ctx, it.ProductID)
		if errors.Is(err, repo.ErrNotFound) {
			//商品が消えていたら明細は出さない
			continue
		}
		if err != nil {
			return CartResponse{}, errInternal("db error")
		}

		resp.Items = append(resp.Items, CartItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Name:      p.Name,
			Price:     p.Price,
			Quantity:  it.Quantity,
		})
		resp.Total += p.Price * it.Quantity
	}

	return resp, nil
}
