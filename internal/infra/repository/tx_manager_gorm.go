package repository

import (
	"context"

	repo "greenbasket/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	orders        repo.OrderRepository
	orderItems    repo.OrderItemRepository
	cartItems     repo.CartItemRepository
	products      repo.ProductRepository
	inventory     repo.InventoryRepository
	coupons       repo.CouponRepository
	payments      repo.PaymentRepository
	assignments   repo.DeliveryAssignmentRepository
	wallet        repo.WalletRepository
	notifications repo.NotificationRepository
	users         repo.UserRepository
}

func (r *txReposGorm) Orders() repo.OrderRepository                   { return r.orders }
func (r *txReposGorm) OrderItems() repo.OrderItemRepository           { return r.orderItems }
func (r *txReposGorm) CartItems() repo.CartItemRepository             { return r.cartItems }
func (r *txReposGorm) Products() repo.ProductRepository               { return r.products }
func (r *txReposGorm) Inventory() repo.InventoryRepository            { return r.inventory }
func (r *txReposGorm) Coupons() repo.CouponRepository                 { return r.coupons }
func (r *txReposGorm) Payments() repo.PaymentRepository               { return r.payments }
func (r *txReposGorm) Assignments() repo.DeliveryAssignmentRepository { return r.assignments }
func (r *txReposGorm) Wallet() repo.WalletRepository                  { return r.wallet }
func (r *txReposGorm) Notifications() repo.NotificationRepository     { return r.notifications }
func (r *txReposGorm) Users() repo.UserRepository                     { return r.users }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		r := &txReposGorm{
			orders:        NewOrderGormRepository(tx),
			orderItems:    NewOrderItemGormRepository(tx),
			cartItems:     NewCartItemGormRepository(tx),
			products:      NewProductGormRepository(tx),
			inventory:     NewInventoryGormRepository(tx),
			coupons:       NewCouponGormRepository(tx),
			payments:      NewPaymentGormRepository(tx),
			assignments:   NewDeliveryAssignmentGormRepository(tx),
			wallet:        NewWalletGormRepository(tx),
			notifications: NewNotificationGormRepository(tx),
			users:         NewUserGormRepository(tx),
		}
		return fn(r)
	})
}
