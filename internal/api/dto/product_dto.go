package dto

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

type CreateProductRequest struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Stock    uint            `json:"stock"`
	Category string          `json:"category"`
}

func (r *CreateProductRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("name is required")
	}
	if r.Price.IsNegative() {
		return errors.New("price must not be negative")
	}
	if strings.TrimSpace(r.Category) == "" {
		return errors.New("category is required")
	}
	return nil
}

// UpdateProductRequest 部分更新，nil 表示不變更
type UpdateProductRequest struct {
	Name     *string          `json:"name,omitempty"`
	Price    *decimal.Decimal `json:"price,omitempty"`
	Stock    *uint            `json:"stock,omitempty"`
	Category *string          `json:"category,omitempty"`
}

func (r *UpdateProductRequest) Validate() error {
	if r.Name == nil && r.Price == nil && r.Stock == nil && r.Category == nil {
		return errors.New("at least one field is required")
	}
	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		return errors.New("name must not be empty")
	}
	if r.Price != nil && r.Price.IsNegative() {
		return errors.New("price must not be negative")
	}
	return nil
}
