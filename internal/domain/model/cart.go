package model

import (
	"github.com/shopspring/decimal"
)

// 購物車明細 (user_id, product_id) 為複合主鍵
// 同一商品重複加入購物車時數量累加，不會產生新紀錄
type CartItem struct {
	UserID    uint `gorm:"primaryKey" json:"user_id"`    // 外鍵，關聯到 User
	ProductID uint `gorm:"primaryKey" json:"product_id"` // 外鍵，關聯到 Product
	Quantity  int  `gorm:"not null" json:"quantity"`
	BaseModel
}

// CartItemView 購物車明細的回應投影，價格一律取當前商品資料
type CartItemView struct {
	ProductID   uint            `json:"product_id"`
	ProductName string          `json:"product_name"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Quantity    int             `json:"quantity"`
	LineAmount  decimal.Decimal `json:"total_price"`
}

// CartView 購物車回應投影，totals於組裝時計算
type CartView struct {
	Items       []CartItemView  `json:"items"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	TotalItems  int             `json:"total_items"`
}
