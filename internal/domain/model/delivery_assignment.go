package model

import "time"

// 配達員と注文の紐づけ。order_idのuniqueで1注文1担当を保証する。
type DeliveryAssignment struct {
	ID                int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID           int64      `gorm:"not null;uniqueIndex" json:"order_id"`
	DeliveryPartnerID int64      `gorm:"not null;index" json:"delivery_partner_id"`
	AssignedAt        time.Time  `gorm:"not null" json:"assigned_at"`
	DeliveredAt       *time.Time `json:"delivered_at,omitempty"`
}
