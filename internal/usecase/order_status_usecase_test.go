package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"greenbasket/internal/domain/model"
	"greenbasket/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newStatusUsecase(stub *txReposStub) *usecase.OrderStatusUsecase {
	return usecase.NewOrderStatusUsecase(&txManagerStub{repos: stub}, newTestDispatcher())
}

func adminActor() usecase.Actor {
	return usecase.Actor{UserID: 10, Role: model.RoleAdmin}
}

func TestOrderStatus_Update_ForbiddenForPlainUser(t *testing.T) {
	ctx := context.Background()

	uc := newStatusUsecase(newTxReposStub())

	actor := usecase.Actor{UserID: 1, Role: model.RoleUser}
	_, err := uc.UpdateStatus(ctx, actor, 7, usecase.UpdateOrderStatusInput{Status: "PAID"})
	assertHTTPError(t, err, http.StatusForbidden, usecase.KindAuthorization)
}

func TestOrderStatus_Update_UnknownStatus(t *testing.T) {
	ctx := context.Background()

	uc := newStatusUsecase(newTxReposStub())

	_, err := uc.UpdateStatus(ctx, adminActor(), 7, usecase.UpdateOrderStatusInput{Status: "SHIPPED"})
	assertHTTPError(t, err, http.StatusBadRequest, usecase.KindValidation)
}

func TestOrderStatus_Update_InvalidTransition(t *testing.T) {
	ctx := context.Background()

	stub := newTxReposStub()
	stub.orders.On("FindByID", mock.Anything, int64(7)).Return(model.Order{ID: 7, UserID: 1, Status: model.OrderStatusDelivered}, nil)

	uc := newStatusUsecase(stub)

	//DELIVEREDは終端
	_, err := uc.UpdateStatus(ctx, adminActor(), 7, usecase.UpdateOrderStatusInput{Status: "CANCELLED"})
	assertHTTPError(t, err, http.StatusConflict, usecase.KindStateConflict)

	stub.orders.AssertNotCalled(t, "UpdateStatusFrom", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderStatus_Update_LostRaceConflicts(t *testing.T) {
	ctx := context.Background()

	stub := newTxReposStub()
	stub.orders.On("FindByID", mock.Anything, int64(7)).Return(model.Order{ID: 7, UserID: 1, Status: model.OrderStatusPaid}, nil)
	stub.orders.On("UpdateStatusFrom", mock.Anything, int64(7), model.OrderStatusPaid, model.OrderStatusPreparing).Return(false, nil)

	uc := newStatusUsecase(stub)

	_, err := uc.UpdateStatus(ctx, adminActor(), 7, usecase.UpdateOrderStatusInput{Status: "PREPARING"})
	assertHTTPError(t, err, http.StatusConflict, usecase.KindStateConflict)
}

func TestOrderStatus_Update_Success(t *testing.T) {
	ctx := context.Background()

	stub := newTxReposStub()
	stub.orders.On("FindByID", mock.Anything, int64(7)).Return(model.Order{ID: 7, UserID: 1, Status: model.OrderStatusPaid}, nil)
	stub.orders.On("UpdateStatusFrom", mock.Anything, int64(7), model.OrderStatusPaid, model.OrderStatusPreparing).Return(true, nil)
	stub.users.On("FindByID", mock.Anything, int64(1)).Return(model.User{ID: 1}, nil)
	stub.notifications.On("Create", mock.Anything, mock.Anything).Return(model.Notification{ID: 1}, nil)
	stub.orderItems.On("ListByOrderID", mock.Anything, int64(7)).Return([]model.OrderItem{}, nil)

	uc := newStatusUsecase(stub)

	out, err := uc.UpdateStatus(ctx, adminActor(), 7, usecase.UpdateOrderStatusInput{Status: "PREPARING"})
	assert.NoError(t, err)
	assert.Equal(t, string(model.OrderStatusPreparing), out.Status)

	stub.orders.AssertExpectations(t)
	stub.notifications.AssertExpectations(t)
}

func TestOrderStatus_CancelPaidOrder_RestocksAndRefunds(t *testing.T) {
	ctx := context.Background()

	stub := newTxReposStub()
	stub.orders.On("FindByID", mock.Anything, int64(7)).Return(model.Order{ID: 7, UserID: 1, Status: model.OrderStatusPaid, TotalPrice: 1500}, nil)
	stub.orders.On("UpdateStatusFrom", mock.Anything, int64(7), model.OrderStatusPaid, model.OrderStatusCancelled).Return(true, nil)
	stub.orderItems.On("ListByOrderID", mock.Anything, int64(7)).Return([]model.OrderItem{
		{ID: 1, ProductID: 100, Quantity: 2},
		{ID: 2, ProductID: 200, Quantity: 1},
	}, nil)
	stub.inventory.On("IncreaseStock", mock.Anything, int64(100), int64(2)).Return(nil)
	stub.inventory.On("IncreaseStock", mock.Anything, int64(200), int64(1)).Return(nil)
	stub.wallet.On("Append", mock.Anything, mock.MatchedBy(func(txn model.WalletTransaction) bool {
		return txn.UserID == 1 && txn.Amount == 1500
	})).Return(model.WalletTransaction{ID: 1}, nil)
	stub.users.On("FindByID", mock.Anything, int64(1)).Return(model.User{ID: 1}, nil)
	stub.notifications.On("Create", mock.Anything, mock.Anything).Return(model.Notification{ID: 1}, nil)

	uc := newStatusUsecase(stub)

	out, err := uc.UpdateStatus(ctx, adminActor(), 7, usecase.UpdateOrderStatusInput{Status: "CANCELLED"})
	assert.NoError(t, err)
	assert.Equal(t, string(model.OrderStatusCancelled), out.Status)

	stub.inventory.AssertExpectations(t)
	stub.wallet.AssertExpectations(t)
}

func TestOrderStatus_CancelPendingOrder_NoRefund(t *testing.T) {
	ctx := context.Background()

	stub := newTxReposStub()
	stub.orders.On("FindByID", mock.Anything, int64(7)).Return(model.Order{ID: 7, UserID: 1, Status: model.OrderStatusPending, TotalPrice: 1500}, nil)
	stub.orders.On("UpdateStatusFrom", mock.Anything, int64(7), model.OrderStatusPending, model.OrderStatusCancelled).Return(true, nil)
	stub.orderItems.On("ListByOrderID", mock.Anything, int64(7)).Return([]model.OrderItem{
		{ID: 1, ProductID: 100, Quantity: 1},
	}, nil)
	stub.inventory.On("IncreaseStock", mock.Anything, int64(100), int64(1)).Return(nil)
	stub.users.On("FindByID", mock.Anything, int64(1)).Return(model.User{ID: 1}, nil)
	stub.notifications.On("Create", mock.Anything, mock.Anything).Return(model.Notification{ID: 1}, nil)

	uc := newStatusUsecase(stub)

	_, err := uc.UpdateStatus(ctx, adminActor(), 7, usecase.UpdateOrderStatusInput{Status: "CANCELLED"})
	assert.NoError(t, err)

	//未払いなので返金は無い
	stub.wallet.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}
