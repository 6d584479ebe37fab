package usecase

import (
	"context"
	"errors"
	"fmt"

	"greenbasket/internal/domain/model"
	"greenbasket/internal/notify"
	repo "greenbasket/internal/repository"
)

// OrderStatusUsecaseは注文ステータスの遷移を一手に引き受ける。
// 遷移表（model.CanTransition）に無い組み合わせは全部拒否。
type OrderStatusUsecase struct {
	tx         repo.TransactionManager
	dispatcher *notify.Dispatcher
}

func NewOrderStatusUsecase(tx repo.TransactionManager, dispatcher *notify.Dispatcher) *OrderStatusUsecase {
	return &OrderStatusUsecase{tx: tx, dispatcher: dispatcher}
}

type UpdateOrderStatusInput struct {
	Status string
}

// UpdateStatusはADMIN/DELIVERYだけが呼べる。
// 失敗したら注文は元のステータスのまま。
func (u *OrderStatusUsecase) UpdateStatus(ctx context.Context, actor Actor, orderID int64, in UpdateOrderStatusInput) (OrderOutput, error) {
	if actor.UserID <= 0 {
		return OrderOutput{}, errUnauthorized("unauthorized")
	}
	if !actor.IsAdmin() && !actor.IsDelivery() {
		return OrderOutput{}, errForbidden("forbidden")
	}
	if orderID <= 0 {
		return OrderOutput{}, errValidation("invalid id")
	}

	newStatus, ok := model.ParseOrderStatus(in.Status)
	if !ok {
		return OrderOutput{}, errValidation("invalid status")
	}

	var out OrderOutput
	var buyer model.User

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return errNotFound("order not found")
		}
		if err != nil {
			return errInternal("db error")
		}

		if !model.CanTransition(o.Status, newStatus) {
			return errStateConflict(fmt.Sprintf("cannot transition %s to %s", o.Status, newStatus))
		}

		//条件付き更新。0行なら同時更新に負けたのでやり直してもらう。
		ok, err := r.Orders().UpdateStatusFrom(ctx, orderID, o.Status, newStatus)
		if err != nil {
			return errInternal("db error")
		}
		if !ok {
			return errStateConflict(fmt.Sprintf("cannot transition %s to %s", o.Status, newStatus))
		}

		//キャンセルは在庫を戻す。支払い済みならウォレットへ返金。
		if newStatus == model.OrderStatusCancelled {
			items, err := r.OrderItems().ListByOrderID(ctx, orderID)
			if err != nil {
				return errInternal("db error")
			}
			for _, it := range items {
				if err := r.Inventory().IncreaseStock(ctx, it.ProductID, it.Quantity); err != nil {
					return errInternal("db error")
				}
			}

			if o.Status == model.OrderStatusPaid {
				if _, err := r.Wallet().Append(ctx, model.WalletTransaction{
					UserID:      o.UserID,
					Amount:      o.TotalPrice,
					Description: fmt.Sprintf("Refund for order #%d", orderID),
				}); err != nil {
					return errInternal("db error")
				}
			}
		}

		//通知レコード
		buyer, err = r.Users().FindByID(ctx, o.UserID)
		if err != nil {
			return errInternal("db error")
		}
		if _, err := r.Notifications().Create(ctx, model.Notification{
			UserID:  o.UserID,
			Message: notify.StatusMessage(orderID, newStatus),
		}); err != nil {
			return errInternal("db error")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return errInternal("db error")
		}

		o.Status = newStatus
		out = toOrderOutput(o, items)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}

	//SMS/メールはコミット後にベストエフォートで
	u.dispatcher.OrderStatusChanged(buyer, orderID, newStatus)

	return out, nil
}
