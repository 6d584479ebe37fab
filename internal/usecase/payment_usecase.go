package usecase

import (
	"context"
	"errors"
	"time"

	"greenbasket/internal/domain/model"
	"greenbasket/internal/notify"
	repo "greenbasket/internal/repository"
)

type PaymentOutput struct {
	ID                int64     `json:"id"`
	OrderID           int64     `json:"order_id"`
	ProviderPaymentID string    `json:"provider_payment_id"`
	Amount            int64     `json:"amount"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"created_at"`
}

// PaymentUsecaseは決済の開始と確定。
type PaymentUsecase struct {
	tx         repo.TransactionManager
	idGen      IDGenerator
	dispatcher *notify.Dispatcher
}

func NewPaymentUsecase(tx repo.TransactionManager, idGen IDGenerator, dispatcher *notify.Dispatcher) *PaymentUsecase {
	return &PaymentUsecase{tx: tx, idGen: idGen, dispatcher: dispatcher}
}

// InitiateはPENDING注文の決済レコードを返す（無ければ作る）。
func (u *PaymentUsecase) Initiate(ctx context.Context, orderID int64) (PaymentOutput, error) {
	if orderID <= 0 {
		return PaymentOutput{}, errValidation("invalid id")
	}

	var out PaymentOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return errNotFound("order not found")
		}
		if err != nil {
			return errInternal("db error")
		}
		if o.Status != model.OrderStatusPending {
			return errStateConflict("order already paid or invalid")
		}

		p, err := r.Payments().FindByOrderID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			//チェックアウト以外の経路で注文ができた場合に備えて作る
			now := time.Now()
			p, err = r.Payments().Create(ctx, model.Payment{
				OrderID:           orderID,
				ProviderPaymentID: u.idGen.NewID(),
				Amount:            o.TotalPrice,
				Status:            model.PaymentStatusPending,
				CreatedAt:         now,
				UpdatedAt:         now,
			})
		}
		if err != nil {
			return errInternal("db error")
		}

		out = toPaymentOutput(p)
		return nil
	})

	if err != nil {
		return PaymentOutput{}, err
	}
	return out, nil
}

// ConfirmはPENDINGの注文＋決済をPAID/CONFIRMEDへ進める。
// 条件付き更新なので、二重確定は片方が必ずSTATE_CONFLICTになる。
func (u *PaymentUsecase) Confirm(ctx context.Context, orderID int64) (PaymentOutput, error) {
	if orderID <= 0 {
		return PaymentOutput{}, errValidation("invalid id")
	}

	var out PaymentOutput
	var buyer model.User

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return errNotFound("order not found")
		}
		if err != nil {
			return errInternal("db error")
		}

		//PENDINGのときだけPAIDへ（0行なら誰かが先に処理済み）
		ok, err := r.Orders().UpdateStatusFrom(ctx, orderID, model.OrderStatusPending, model.OrderStatusPaid)
		if err != nil {
			return errInternal("db error")
		}
		if !ok {
			return errStateConflict("payment already processed")
		}

		//決済レコードも同じガードで確定
		p, err := r.Payments().FindByOrderID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			now := time.Now()
			p, err = r.Payments().Create(ctx, model.Payment{
				OrderID:           orderID,
				ProviderPaymentID: u.idGen.NewID(),
				Amount:            o.TotalPrice,
				Status:            model.PaymentStatusConfirmed,
				CreatedAt:         now,
				UpdatedAt:         now,
			})
			if err != nil {
				return errInternal("db error")
			}
		} else if err != nil {
			return errInternal("db error")
		} else {
			ok, err := r.Payments().UpdateStatusFrom(ctx, orderID, model.PaymentStatusPending, model.PaymentStatusConfirmed)
			if err != nil {
				return errInternal("db error")
			}
			if !ok {
				return errStateConflict("payment already processed")
			}
			p.Status = model.PaymentStatusConfirmed
		}

		//通知レコードはトランザクション内で作る
		buyer, err = r.Users().FindByID(ctx, o.UserID)
		if err != nil {
			return errInternal("db error")
		}
		if _, err := r.Notifications().Create(ctx, model.Notification{
			UserID:  o.UserID,
			Message: notify.StatusMessage(orderID, model.OrderStatusPaid),
		}); err != nil {
			return errInternal("db error")
		}

		out = toPaymentOutput(p)
		return nil
	})

	if err != nil {
		return PaymentOutput{}, err
	}

	//SMS/メールはコミット後にベストエフォートで
	u.dispatcher.OrderStatusChanged(buyer, orderID, model.OrderStatusPaid)

	return out, nil
}

func toPaymentOutput(p model.Payment) PaymentOutput {
	return PaymentOutput{
		ID:                p.ID,
		OrderID:           p.OrderID,
		ProviderPaymentID: p.ProviderPaymentID,
		Amount:            p.Amount,
		Status:            string(p.Status),
		CreatedAt:         p.CreatedAt,
	}
}
