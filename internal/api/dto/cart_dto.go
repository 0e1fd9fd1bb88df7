package dto

import "errors"

type AddToCartRequest struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

func (r *AddToCartRequest) Validate() error {
	if r.ProductID == 0 {
		return errors.New("product_id is required")
	}
	if r.Quantity <= 0 {
		return errors.New("quantity must be positive")
	}
	return nil
}
