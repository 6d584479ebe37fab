package model

import "time"

// ウォレットの台帳。追記のみで、残高は符号付きamountの合計。
type WalletTransaction struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      int64     `gorm:"not null;index" json:"user_id"`
	Amount      int64     `gorm:"not null" json:"amount"`
	Description string    `gorm:"type:varchar(255)" json:"description"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
