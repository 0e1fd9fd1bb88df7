package dto

import (
	"errors"

	"github.com/RoyceAzure/lab/ecommerce/internal/service"
)

type OrderItemRequest struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

type CreateOrderRequest struct {
	Items []OrderItemRequest `json:"items"`
}

func (r *CreateOrderRequest) Validate() error {
	if len(r.Items) == 0 {
		return errors.New("items must not be empty")
	}
	for _, item := range r.Items {
		if item.ProductID == 0 {
			return errors.New("product_id is required")
		}
		if item.Quantity <= 0 {
			return errors.New("quantity must be positive")
		}
	}
	return nil
}

// ToItemRequests 轉換為 service 層請求
func (r *CreateOrderRequest) ToItemRequests() []service.ItemRequest {
	items := make([]service.ItemRequest, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, service.ItemRequest{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}
	return items
}
