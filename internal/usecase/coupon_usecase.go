package usecase

import (
	"context"
	"errors"
	"strings"

	"greenbasket/internal/domain/model"
	repo "greenbasket/internal/repository"
)

type CouponUsecase struct {
	couponRepo repo.CouponRepository
}

func NewCouponUsecase(couponRepo repo.CouponRepository) *CouponUsecase {
	return &CouponUsecase{couponRepo: couponRepo}
}

type CreateCouponInput struct {
	Code            string
	DiscountPercent int
	Active          bool
}

// 管理者がクーポンを作る。codeはuniqueで大文字に正規化される。
func (u *CouponUsecase) Create(ctx context.Context, in CreateCouponInput) (model.Coupon, error) {
	code := strings.ToUpper(strings.TrimSpace(in.Code))
	if code == "" {
		return model.Coupon{}, errValidation("code is required")
	}
	if in.DiscountPercent < 0 || in.DiscountPercent > 100 {
		return model.Coupon{}, errValidation("discount_percent must be 0-100")
	}

	c, err := u.couponRepo.Create(ctx, model.Coupon{
		Code:            code,
		DiscountPercent: in.DiscountPercent,
		Active:          in.Active,
	})
	if err != nil {
		//codeのunique違反もここに落ちる
		return model.Coupon{}, errStateConflict("coupon code already exists")
	}

	return c, nil
}

// Applyはコードを検証して割引率を返す（注文への適用はチェックアウトで行う）。
func (u *CouponUsecase) Apply(ctx context.Context, code string) (model.Coupon, error) {
	if strings.TrimSpace(code) == "" {
		return model.Coupon{}, errValidation("code is required")
	}

	c, err := u.couponRepo.FindActiveByCode(ctx, code)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Coupon{}, errNotFound("invalid coupon")
	}
	if err != nil {
		return model.Coupon{}, errInternal("db error")
	}

	return c, nil
}
