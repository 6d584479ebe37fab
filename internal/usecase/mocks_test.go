package usecase_test

import (
	"context"
	"testing"
	"time"

	"greenbasket/internal/domain/model"
	"greenbasket/internal/notify"
	repo "greenbasket/internal/repository"
	"greenbasket/internal/usecase"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// Mocks
// =====================

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) ListByUserID(ctx context.Context, userID int64, page int, limit int) ([]model.Order, int64, error) {
	args := m.Called(ctx, userID, page, limit)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Get(1).(int64), args.Error(2)
}

func (m *OrderRepoMock) Create(ctx context.Context, order model.Order) (int64, error) {
	args := m.Called(ctx, order)
	return args.Get(0).(int64), args.Error(1)
}

func (m *OrderRepoMock) UpdateStatusFrom(ctx context.Context, orderID int64, from, to model.OrderStatus) (bool, error) {
	args := m.Called(ctx, orderID, from, to)
	return args.Bool(0), args.Error(1)
}

func (m *OrderRepoMock) ListPaidUnassigned(ctx context.Context) ([]model.Order, error) {
	args := m.Called(ctx)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Error(1)
}

func (m *OrderRepoMock) ListAdmin(ctx context.Context, f repo.AdminOrderListFilter) ([]model.Order, int64, error) {
	args := m.Called(ctx, f)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Get(1).(int64), args.Error(2)
}

func (m *OrderRepoMock) Stats(ctx context.Context) (repo.OrderStats, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).(repo.OrderStats)
	return s, args.Error(1)
}

type OrderItemRepoMock struct{ mock.Mock }

func (m *OrderItemRepoMock) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	args := m.Called(ctx, orderID, items)
	return args.Error(0)
}

func (m *OrderItemRepoMock) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]model.OrderItem)
	return items, args.Error(1)
}

type CartItemRepoMock struct{ mock.Mock }

func (m *CartItemRepoMock) ListByUserID(ctx context.Context, userID int64) ([]model.CartItem, error) {
	args := m.Called(ctx, userID)
	items, _ := args.Get(0).([]model.CartItem)
	return items, args.Error(1)
}

func (m *CartItemRepoMock) FindByID(ctx context.Context, cartItemID int64) (model.CartItem, error) {
	args := m.Called(ctx, cartItemID)
	ci, _ := args.Get(0).(model.CartItem)
	return ci, args.Error(1)
}

func (m *CartItemRepoMock) UpsertByUserAndProduct(ctx context.Context, userID int64, productID int64, addQty int64) error {
	args := m.Called(ctx, userID, productID, addQty)
	return args.Error(0)
}

func (m *CartItemRepoMock) UpdateQuantity(ctx context.Context, cartItemID int64, qty int64) error {
	args := m.Called(ctx, cartItemID, qty)
	return args.Error(0)
}

func (m *CartItemRepoMock) DeleteByID(ctx context.Context, cartItemID int64) error {
	args := m.Called(ctx, cartItemID)
	return args.Error(0)
}

func (m *CartItemRepoMock) DeleteByUserID(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) ListPublic(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *ProductRepoMock) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	created, _ := args.Get(0).(model.Product)
	return created, args.Error(1)
}

func (m *ProductRepoMock) Update(ctx context.Context, p model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *ProductRepoMock) SoftDelete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ProductRepoMock) TopSelling(ctx context.Context, limit int) ([]repo.TopProduct, error) {
	args := m.Called(ctx, limit)
	tops, _ := args.Get(0).([]repo.TopProduct)
	return tops, args.Error(1)
}

type CategoryRepoMock struct{ mock.Mock }

func (m *CategoryRepoMock) GetOrCreateByName(ctx context.Context, name string) (model.Category, error) {
	args := m.Called(ctx, name)
	c, _ := args.Get(0).(model.Category)
	return c, args.Error(1)
}

func (m *CategoryRepoMock) List(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	cs, _ := args.Get(0).([]model.Category)
	return cs, args.Error(1)
}

type InventoryRepoMock struct{ mock.Mock }

func (m *InventoryRepoMock) SetStock(ctx context.Context, productID int64, newStock int64) error {
	args := m.Called(ctx, productID, newStock)
	return args.Error(0)
}

func (m *InventoryRepoMock) DecreaseStockIfEnough(ctx context.Context, productID int64, qty int64) (bool, error) {
	args := m.Called(ctx, productID, qty)
	return args.Bool(0), args.Error(1)
}

func (m *InventoryRepoMock) IncreaseStock(ctx context.Context, productID int64, qty int64) error {
	args := m.Called(ctx, productID, qty)
	return args.Error(0)
}

type CouponRepoMock struct{ mock.Mock }

func (m *CouponRepoMock) Create(ctx context.Context, c model.Coupon) (model.Coupon, error) {
	args := m.Called(ctx, c)
	created, _ := args.Get(0).(model.Coupon)
	return created, args.Error(1)
}

func (m *CouponRepoMock) FindActiveByCode(ctx context.Context, code string) (model.Coupon, error) {
	args := m.Called(ctx, code)
	c, _ := args.Get(0).(model.Coupon)
	return c, args.Error(1)
}

type PaymentRepoMock struct{ mock.Mock }

func (m *PaymentRepoMock) Create(ctx context.Context, p model.Payment) (model.Payment, error) {
	args := m.Called(ctx, p)
	created, _ := args.Get(0).(model.Payment)
	return created, args.Error(1)
}

func (m *PaymentRepoMock) FindByOrderID(ctx context.Context, orderID int64) (model.Payment, error) {
	args := m.Called(ctx, orderID)
	p, _ := args.Get(0).(model.Payment)
	return p, args.Error(1)
}

func (m *PaymentRepoMock) UpdateStatusFrom(ctx context.Context, orderID int64, from, to model.PaymentStatus) (bool, error) {
	args := m.Called(ctx, orderID, from, to)
	return args.Bool(0), args.Error(1)
}

type AssignmentRepoMock struct{ mock.Mock }

func (m *AssignmentRepoMock) Create(ctx context.Context, a model.DeliveryAssignment) (model.DeliveryAssignment, error) {
	args := m.Called(ctx, a)
	created, _ := args.Get(0).(model.DeliveryAssignment)
	return created, args.Error(1)
}

func (m *AssignmentRepoMock) FindByOrderID(ctx context.Context, orderID int64) (model.DeliveryAssignment, error) {
	args := m.Called(ctx, orderID)
	a, _ := args.Get(0).(model.DeliveryAssignment)
	return a, args.Error(1)
}

func (m *AssignmentRepoMock) FindByOrderAndPartner(ctx context.Context, orderID, partnerID int64) (model.DeliveryAssignment, error) {
	args := m.Called(ctx, orderID, partnerID)
	a, _ := args.Get(0).(model.DeliveryAssignment)
	return a, args.Error(1)
}

func (m *AssignmentRepoMock) MarkDelivered(ctx context.Context, assignmentID int64) error {
	args := m.Called(ctx, assignmentID)
	return args.Error(0)
}

type WalletRepoMock struct{ mock.Mock }

func (m *WalletRepoMock) Append(ctx context.Context, txn model.WalletTransaction) (model.WalletTransaction, error) {
	args := m.Called(ctx, txn)
	created, _ := args.Get(0).(model.WalletTransaction)
	return created, args.Error(1)
}

func (m *WalletRepoMock) ListByUserID(ctx context.Context, userID int64) ([]model.WalletTransaction, error) {
	args := m.Called(ctx, userID)
	txns, _ := args.Get(0).([]model.WalletTransaction)
	return txns, args.Error(1)
}

func (m *WalletRepoMock) SumByUserID(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type NotificationRepoMock struct{ mock.Mock }

func (m *NotificationRepoMock) Create(ctx context.Context, n model.Notification) (model.Notification, error) {
	args := m.Called(ctx, n)
	created, _ := args.Get(0).(model.Notification)
	return created, args.Error(1)
}

func (m *NotificationRepoMock) FindByID(ctx context.Context, id int64) (model.Notification, error) {
	args := m.Called(ctx, id)
	n, _ := args.Get(0).(model.Notification)
	return n, args.Error(1)
}

func (m *NotificationRepoMock) ListByUserID(ctx context.Context, userID int64) ([]model.Notification, error) {
	args := m.Called(ctx, userID)
	ns, _ := args.Get(0).([]model.Notification)
	return ns, args.Error(1)
}

func (m *NotificationRepoMock) MarkRead(ctx context.Context, notificationID, userID int64) (bool, error) {
	args := m.Called(ctx, notificationID, userID)
	return args.Bool(0), args.Error(1)
}

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) Create(ctx context.Context, user model.User) (model.User, error) {
	args := m.Called(ctx, user)
	created, _ := args.Get(0).(model.User)
	return created, args.Error(1)
}

func (m *UserRepoMock) FindByID(ctx context.Context, userID int64) (model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) FindByEmail(ctx context.Context, email string) (model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) UpdateLastLogin(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type AddressRepoMock struct{ mock.Mock }

func (m *AddressRepoMock) Create(ctx context.Context, address model.Address) (model.Address, error) {
	args := m.Called(ctx, address)
	created, _ := args.Get(0).(model.Address)
	return created, args.Error(1)
}

func (m *AddressRepoMock) ListByUserID(ctx context.Context, userID int64) ([]model.Address, error) {
	args := m.Called(ctx, userID)
	addrs, _ := args.Get(0).([]model.Address)
	return addrs, args.Error(1)
}

func (m *AddressRepoMock) FindByID(ctx context.Context, addressID int64) (model.Address, error) {
	args := m.Called(ctx, addressID)
	a, _ := args.Get(0).(model.Address)
	return a, args.Error(1)
}

// =====================
// Txのスタブ（実DBなしでWithinTxの中身だけ実行する）
// =====================

type txReposStub struct {
	orders        *OrderRepoMock
	orderItems    *OrderItemRepoMock
	cartItems     *CartItemRepoMock
	products      *ProductRepoMock
	inventory     *InventoryRepoMock
	coupons       *CouponRepoMock
	payments      *PaymentRepoMock
	assignments   *AssignmentRepoMock
	wallet        *WalletRepoMock
	notifications *NotificationRepoMock
	users         *UserRepoMock
}

func newTxReposStub() *txReposStub {
	return &txReposStub{
		orders:        new(OrderRepoMock),
		orderItems:    new(OrderItemRepoMock),
		cartItems:     new(CartItemRepoMock),
		products:      new(ProductRepoMock),
		inventory:     new(InventoryRepoMock),
		coupons:       new(CouponRepoMock),
		payments:      new(PaymentRepoMock),
		assignments:   new(AssignmentRepoMock),
		wallet:        new(WalletRepoMock),
		notifications: new(NotificationRepoMock),
		users:         new(UserRepoMock),
	}
}

func (s *txReposStub) Orders() repo.OrderRepository                   { return s.orders }
func (s *txReposStub) OrderItems() repo.OrderItemRepository           { return s.orderItems }
func (s *txReposStub) CartItems() repo.CartItemRepository             { return s.cartItems }
func (s *txReposStub) Products() repo.ProductRepository               { return s.products }
func (s *txReposStub) Inventory() repo.InventoryRepository            { return s.inventory }
func (s *txReposStub) Coupons() repo.CouponRepository                 { return s.coupons }
func (s *txReposStub) Payments() repo.PaymentRepository               { return s.payments }
func (s *txReposStub) Assignments() repo.DeliveryAssignmentRepository { return s.assignments }
func (s *txReposStub) Wallet() repo.WalletRepository                  { return s.wallet }
func (s *txReposStub) Notifications() repo.NotificationRepository     { return s.notifications }
func (s *txReposStub) Users() repo.UserRepository                     { return s.users }

type txManagerStub struct {
	repos *txReposStub
}

func (m *txManagerStub) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(m.repos)
}

// =====================
// その他のテスト用部品
// =====================

type fixedIDGen struct{ id string }

func (g fixedIDGen) NewID() string { return g.id }

func newTestDispatcher() *notify.Dispatcher {
	log := zerolog.Nop()
	return notify.NewDispatcher(&notify.LogSMSSender{Log: log}, &notify.LogEmailSender{Log: log}, log, time.Second)
}

func assertHTTPError(t *testing.T, err error, status int, kind string) {
	t.Helper()
	he, ok := usecase.AsHTTPError(err)
	if assert.True(t, ok, "expected HTTPError, got %v", err) {
		assert.Equal(t, status, he.Status)
		assert.Equal(t, kind, he.Kind)
	}
}
