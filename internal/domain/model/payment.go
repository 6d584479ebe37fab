package model

import "time"

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusConfirmed PaymentStatus = "CONFIRMED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
)

// 注文と1対1。amountはorders.total_priceと一致する。
type Payment struct {
	ID                int64         `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID           int64         `gorm:"not null;uniqueIndex" json:"order_id"`
	ProviderPaymentID string        `gorm:"type:varchar(64);not null" json:"provider_payment_id"`
	Amount            int64         `gorm:"not null" json:"amount"`
	Status            PaymentStatus `gorm:"type:varchar(20);not null" json:"status"`
	CreatedAt         time.Time     `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time     `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
