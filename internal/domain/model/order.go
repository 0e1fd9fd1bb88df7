package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 訂單建立後即不可變動，不提供更新/刪除操作
type Order struct {
	OrderID    uint        `gorm:"primaryKey" json:"order_id"`
	UserID     uint        `gorm:"not null;index" json:"user_id"`                                     // 外鍵，關聯到 User
	OrderItems []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"order_items"` // 一對多，級聯刪除
	OrderDate  time.Time   `gorm:"not null" json:"order_date"`
	BaseModel
}

// 同一筆訂單內允許同一商品出現多行，LineNo保留輸入順序
// Price為下訂當下的單價快照，歷史訂單金額不隨商品改價變動
type OrderItem struct {
	OrderID   uint            `gorm:"primaryKey" json:"order_id"` // 外鍵，關聯到 Order
	LineNo    int             `gorm:"primaryKey" json:"line_no"`
	ProductID uint            `gorm:"not null" json:"product_id"` // 外鍵，關聯到 Product
	Quantity  int             `gorm:"not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"not null;type:decimal(10,2)" json:"price"`
	BaseModel
}

// LineAmount 單行小計 = 快照單價 × 數量
func (i *OrderItem) LineAmount() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// OrderItemView 訂單明細的回應投影
// Price/LineAmount取自下訂當下快照，ProductName/Category則是當前商品資料
type OrderItemView struct {
	ProductID   uint            `json:"product_id"`
	ProductName string          `json:"product_name"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Quantity    int             `json:"quantity"`
	LineAmount  decimal.Decimal `json:"total_price"`
}

// OrderView 訂單回應投影，totals於組裝時計算，不落地
type OrderView struct {
	OrderID     uint            `json:"order_id"`
	UserID      uint            `json:"user_id"`
	OrderDate   time.Time       `json:"created_at"`
	Items       []OrderItemView `json:"items"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	TotalItems  int             `json:"total_items"`
}
