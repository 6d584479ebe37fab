package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"greenbasket/internal/domain/model"
	repo "greenbasket/internal/repository"
)

// UUID等のIDを作る約束
type IDGenerator interface {
	NewID() string
}

// CheckoutUsecaseはカートを注文＋決済レコードへ確定する。
type CheckoutUsecase struct {
	tx        repo.TransactionManager
	addresses repo.AddressRepository
	idGen     IDGenerator
}

func NewCheckoutUsecase(tx repo.TransactionManager, addresses repo.AddressRepository, idGen IDGenerator) *CheckoutUsecase {
	return &CheckoutUsecase{tx: tx, addresses: addresses, idGen: idGen}
}

type PlaceOrderInput struct {
	AddressID  int64
	CouponCode string
}

type OrderItemOutput struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int64  `json:"quantity"`
}

type OrderOutput struct {
	ID         int64             `json:"id"`
	UserID     int64             `json:"user_id"`
	AddressID  int64             `json:"address_id"`
	Status     string            `json:"status"`
	TotalPrice int64             `json:"total_price"`
	CouponCode string            `json:"coupon_code,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	Items      []OrderItemOutput `json:"items"`
}

// PlaceOrderはチェックアウト本体。
// 注文・明細・在庫減算・カート削除・決済レコードを1トランザクションで確定する。
// 途中で失敗したら全部ロールバックされ、カートも在庫も元のまま。
func (u *CheckoutUsecase) PlaceOrder(ctx context.Context, userID int64, in PlaceOrderInput) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, errUnauthorized("unauthorized")
	}
	if in.AddressID <= 0 {
		return OrderOutput{}, errValidation("invalid address_id")
	}

	//address_idの存在確認＋所有チェック
	addr, err := u.addresses.FindByID(ctx, in.AddressID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return OrderOutput{}, errNotFound("address not found")
		}
		return OrderOutput{}, errInternal("db error")
	}
	//他人の住所は「存在しない扱い」にする
	if addr.UserID != userID {
		return OrderOutput{}, errNotFound("address not found")
	}

	var out OrderOutput

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//カート取得
		cartItems, err := r.CartItems().ListByUserID(ctx, userID)
		if err != nil {
			return errInternal("db error")
		}
		if len(cartItems) == 0 {
			return errValidation("cart is empty")
		}

		//クーポン（任意）はactiveなものだけ有効
		var coupon *model.Coupon
		if code := strings.TrimSpace(in.CouponCode); code != "" {
			c, err := r.Coupons().FindActiveByCode(ctx, code)
			if errors.Is(err, repo.ErrNotFound) {
				return errValidation("invalid coupon")
			}
			if err != nil {
				return errInternal("db error")
			}
			coupon = &c
		}

		//明細を作りつつ在庫を減らし、チェックアウト時点の価格で合計を出す
		now := time.Now()
		orderItems := make([]model.OrderItem, 0, len(cartItems))
		var total int64 = 0

		for _, ci := range cartItems {
			p, err := r.Products().FindByID(ctx, ci.ProductID)
			if errors.Is(err, repo.ErrNotFound) {
				return errValidation("product unavailable")
			}
			if err != nil {
				return errInternal("db error")
			}
			if !p.IsActive {
				return errValidation("product unavailable")
			}

			//在庫減算（足りないなら false）
			ok, err := r.Inventory().DecreaseStockIfEnough(ctx, ci.ProductID, ci.Quantity)
			if err != nil {
				return errInternal("db error")
			}
			if !ok {
				return errStateConflict("insufficient stock")
			}

			//価格スナップショット
			orderItems = append(orderItems, model.OrderItem{
				ProductID:           ci.ProductID,
				ProductNameSnapshot: p.Name,
				UnitPriceSnapshot:   p.Price,
				Quantity:            ci.Quantity,
				CreatedAt:           now,
			})

			total += p.Price * ci.Quantity
		}

		//割引適用（0.5セントは偶数丸め）
		var couponID *int64
		couponCode := ""
		if coupon != nil {
			total = model.ApplyDiscountPercent(total, coupon.DiscountPercent)
			couponID = &coupon.ID
			couponCode = coupon.Code
		}

		//注文作成（支払い前なのでPENDING）
		orderID, err := r.Orders().Create(ctx, model.Order{
			UserID:     userID,
			AddressID:  in.AddressID,
			CouponID:   couponID,
			Status:     model.OrderStatusPending,
			TotalPrice: total,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
		if err != nil {
			return errInternal("db error")
		}

		//注文明細一括作成
		if err := r.OrderItems().CreateBulk(ctx, orderID, orderItems); err != nil {
			return errInternal("db error")
		}

		//カートを空にする（再注文防止）
		if err := r.CartItems().DeleteByUserID(ctx, userID); err != nil {
			return errInternal("db error")
		}

		//決済レコード（確定は別ステップ）
		if _, err := r.Payments().Create(ctx, model.Payment{
			OrderID:           orderID,
			ProviderPaymentID: u.idGen.NewID(),
			Amount:            total,
			Status:            model.PaymentStatusPending,
			CreatedAt:         now,
			UpdatedAt:         now,
		}); err != nil {
			return errInternal("db error")
		}

		out = OrderOutput{
			ID:         orderID,
			UserID:     userID,
			AddressID:  in.AddressID,
			Status:     string(model.OrderStatusPending),
			TotalPrice: total,
			CouponCode: couponCode,
			CreatedAt:  now,
			Items:      toOrderItemOutputs(orderItems),
		}
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

func toOrderItemOutputs(items []model.OrderItem) []OrderItemOutput {
	outs := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outs = append(outs, OrderItemOutput{
			ProductID: it.ProductID,
			Name:      it.ProductNameSnapshot,
			Price:     it.UnitPriceSnapshot,
			Quantity:  it.Quantity,
		})
	}
	return outs
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	return OrderOutput{
		ID:         o.ID,
		UserID:     o.UserID,
		AddressID:  o.AddressID,
		Status:     string(o.Status),
		TotalPrice: o.TotalPrice,
		CreatedAt:  o.CreatedAt,
		Items:      toOrderItemOutputs(items),
	}
}
