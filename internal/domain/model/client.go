package model

import "time"

// 掛売りの顧客。残高が限度額を超えないように管理する。
type Client struct {
	ID             int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name           string    `gorm:"type:varchar(100);not null" json:"name"`
	Email          *string   `gorm:"type:varchar(255);uniqueIndex" json:"email,omitempty"`
	Phone          *string   `gorm:"type:varchar(30);uniqueIndex" json:"phone,omitempty"`
	CreditLimit    int64     `gorm:"not null" json:"credit_limit"`
	CurrentBalance int64     `gorm:"not null;default:0" json:"current_balance"`
	CreatedAt      time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// 残高が限度額を超えているかどうか
func (c Client) IsOverCreditLimit() bool {
	return c.CurrentBalance > c.CreditLimit
}
