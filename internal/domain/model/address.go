package model

import "time"

// 配送先住所
type Address struct {
	ID     int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID int64 `gorm:"not null;index" json:"user_id"`

	AddressLine string `gorm:"type:varchar(255);not null" json:"address_line"`
	City        string `gorm:"type:varchar(255);not null" json:"city"`
	Pincode     string `gorm:"type:varchar(20);not null" json:"pincode"`

	//「自宅」「職場」など
	Label string `gorm:"type:varchar(100)" json:"label"`

	//このユーザーのデフォルト住所か
	IsDefault bool `gorm:"not null;default:false" json:"is_default"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
