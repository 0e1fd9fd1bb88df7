package model

import (
	"github.com/shopspring/decimal"
)

type Product struct {
	ProductID uint            `gorm:"primaryKey" json:"product_id"`
	Name      string          `gorm:"not null;type:varchar(100);unique" json:"name"`
	Price     decimal.Decimal `gorm:"not null;type:decimal(10,2)" json:"price"`
	Stock     uint            `gorm:"not null;type:int" json:"stock"`
	Category  string          `gorm:"not null;type:varchar(50)" json:"category"`
	BaseModel
}
