package repository

import (
	"context"

	"greenbasket/internal/domain/model"
)

type PaymentRepository interface {
	Create(ctx context.Context, p model.Payment) (model.Payment, error)
	FindByOrderID(ctx context.Context, orderID int64) (model.Payment, error)

	//現在statusがfromのときだけtoへ更新する（0行ならfalse）
	UpdateStatusFrom(ctx context.Context, orderID int64, from, to model.PaymentStatus) (bool, error)
}

type CouponRepository interface {
	Create(ctx context.Context, c model.Coupon) (model.Coupon, error)
	//activeなクーポンだけを返す
	FindActiveByCode(ctx context.Context, code string) (model.Coupon, error)
}

type DeliveryAssignmentRepository interface {
	Create(ctx context.Context, a model.DeliveryAssignment) (model.DeliveryAssignment, error)
	FindByOrderID(ctx context.Context, orderID int64) (model.DeliveryAssignment, error)
	FindByOrderAndPartner(ctx context.Context, orderID, partnerID int64) (model.DeliveryAssignment, error)
	MarkDelivered(ctx context.Context, assignmentID int64) error
}
