package model

import "time"

type SaleStatus string

const (
	SaleStatusPending   SaleStatus = "pending"
	SaleStatusCompleted SaleStatus = "completed"
	SaleStatusCancelled SaleStatus = "cancelled"
)

// 有効なステータスかどうか
func (s SaleStatus) Valid() bool {
	switch s {
	case SaleStatusPending, SaleStatusCompleted, SaleStatusCancelled:
		return true
	}
	return false
}

type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentCredit PaymentMethod = "credit"
	PaymentCard   PaymentMethod = "card"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentCredit, PaymentCard:
		return true
	}
	return false
}

// 明細は作成後に変更しない。statusだけ遷移する。
// 物理削除はしない（cancelledにするだけ）。
type Sale struct {
	ID            int64         `gorm:"primaryKey;autoIncrement" json:"id"`
	Items         []SaleItem    `gorm:"foreignKey:SaleID" json:"items"`
	Total         int64         `gorm:"not null" json:"total"`
	PaymentMethod PaymentMethod `gorm:"type:varchar(20);not null" json:"payment_method"`
	Status        SaleStatus    `gorm:"type:varchar(20);not null;index;default:'pending'" json:"status"`
	ClientID      *int64        `gorm:"index" json:"client_id,omitempty"`
	CreatedAt     time.Time     `gorm:"not null;autoCreateTime;index" json:"created_at"`
	UpdatedAt     time.Time     `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
