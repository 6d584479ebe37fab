package model

import "time"

type Coupon struct {
	ID              int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Code            string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"code"`
	DiscountPercent int       `gorm:"not null" json:"discount_percent"`
	Active          bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt       time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
