package usecase

import (
	"context"
	"errors"
	"time"

	"greenbasket/internal/domain/model"
	"greenbasket/internal/notify"
	repo "greenbasket/internal/repository"
)

type AssignmentOutput struct {
	ID                int64      `json:"id"`
	OrderID           int64      `json:"order_id"`
	DeliveryPartnerID int64      `json:"delivery_partner_id"`
	AssignedAt        time.Time  `json:"assigned_at"`
	DeliveredAt       *time.Time `json:"delivered_at,omitempty"`
}

// DeliveryUsecaseは配達員の受注と配達完了。
type DeliveryUsecase struct {
	tx         repo.TransactionManager
	dispatcher *notify.Dispatcher
}

func NewDeliveryUsecase(tx repo.TransactionManager, dispatcher *notify.Dispatcher) *DeliveryUsecase {
	return &DeliveryUsecase{tx: tx, dispatcher: dispatcher}
}

// ListAssignableはPAIDかつ未割当の注文を返す。
func (u *DeliveryUsecase) ListAssignable(ctx context.Context) ([]OrderOutput, error) {
	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, err := r.Orders().ListPaidUnassigned(ctx)
		if err != nil {
			return errInternal("db error")
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return errInternal("db error")
			}
			outs = append(outs, toOrderOutput(o, items))
		}
		return nil
	})

	if err != nil {
		return []OrderOutput{}, err
	}
	return outs, nil
}

// Claimは配達員がPAIDの未割当注文を受ける。
// PAID→OUT_FOR_DELIVERYの条件付き更新＋order_idのuniqueで、
// 同じ注文を2人が取ることはできない。
func (u *DeliveryUsecase) Claim(ctx context.Context, partnerID int64, orderID int64) (AssignmentOutput, error) {
	if partnerID <= 0 {
		return AssignmentOutput{}, errUnauthorized("unauthorized")
	}
	if orderID <= 0 {
		return AssignmentOutput{}, errValidation("invalid id")
	}

	var out AssignmentOutput
	var buyer model.User

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return errNotFound("order not found")
		}
		if err != nil {
			return errInternal("db error")
		}

		//既に割当済みなら競合
		if _, err := r.Assignments().FindByOrderID(ctx, orderID); err == nil {
			return errStateConflict("order already assigned")
		} else if !errors.Is(err, repo.ErrNotFound) {
			return errInternal("db error")
		}

		//PAIDのときだけ受けられる
		ok, err := r.Orders().UpdateStatusFrom(ctx, orderID, model.OrderStatusPaid, model.OrderStatusOutForDelivery)
		if err != nil {
			return errInternal("db error")
		}
		if !ok {
			return errStateConflict("order not assignable")
		}

		a, err := r.Assignments().Create(ctx, model.DeliveryAssignment{
			OrderID:           orderID,
			DeliveryPartnerID: partnerID,
			AssignedAt:        time.Now(),
		})
		if err != nil {
			//uniqueに弾かれた＝先に取られた
			return errStateConflict("order already assigned")
		}

		//通知レコード
		buyer, err = r.Users().FindByID(ctx, o.UserID)
		if err != nil {
			return errInternal("db error")
		}
		if _, err := r.Notifications().Create(ctx, model.Notification{
			UserID:  o.UserID,
			Message: notify.StatusMessage(orderID, model.OrderStatusOutForDelivery),
		}); err != nil {
			return errInternal("db error")
		}

		out = toAssignmentOutput(a)
		return nil
	})

	if err != nil {
		return AssignmentOutput{}, err
	}

	u.dispatcher.OrderStatusChanged(buyer, orderID, model.OrderStatusOutForDelivery)

	return out, nil
}

// MarkDeliveredは担当の配達員だけが呼べる。
func (u *DeliveryUsecase) MarkDelivered(ctx context.Context, partnerID int64, orderID int64) (OrderOutput, error) {
	if partnerID <= 0 {
		return OrderOutput{}, errUnauthorized("unauthorized")
	}
	if orderID <= 0 {
		return OrderOutput{}, errValidation("invalid id")
	}

	var out OrderOutput
	var buyer model.User

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//担当者本人の割当だけ
		a, err := r.Assignments().FindByOrderAndPartner(ctx, orderID, partnerID)
		if errors.Is(err, repo.ErrNotFound) {
			return errNotFound("assignment not found")
		}
		if err != nil {
			return errInternal("db error")
		}
		if a.DeliveredAt != nil {
			return errStateConflict("order already delivered")
		}

		ok, err := r.Orders().UpdateStatusFrom(ctx, orderID, model.OrderStatusOutForDelivery, model.OrderStatusDelivered)
		if err != nil {
			return errInternal("db error")
		}
		if !ok {
			return errStateConflict("order not deliverable")
		}

		if err := r.Assignments().MarkDelivered(ctx, a.ID); err != nil {
			return errInternal("db error")
		}

		o, err := r.Orders().FindByID(ctx, orderID)
		if err != nil {
			return errInternal("db error")
		}

		//通知レコード
		buyer, err = r.Users().FindByID(ctx, o.UserID)
		if err != nil {
			return errInternal("db error")
		}
		if _, err := r.Notifications().Create(ctx, model.Notification{
			UserID:  o.UserID,
			Message: notify.StatusMessage(orderID, model.OrderStatusDelivered),
		}); err != nil {
			return errInternal("db error")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return errInternal("db error")
		}

		out = toOrderOutput(o, items)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}

	u.dispatcher.OrderStatusChanged(buyer, orderID, model.OrderStatusDelivered)

	return out, nil
}

func toAssignmentOutput(a model.DeliveryAssignment) AssignmentOutput {
	return AssignmentOutput{
		ID:                a.ID,
		OrderID:           a.OrderID,
		DeliveryPartnerID: a.DeliveryPartnerID,
		AssignedAt:        a.AssignedAt,
		DeliveredAt:       a.DeliveredAt,
	}
}
