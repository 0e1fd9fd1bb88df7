package handler

import (
	"encoding/json"
	"net/http"

	"github.com/RoyceAzure/lab/ecommerce/internal/api"
	"github.com/RoyceAzure/lab/ecommerce/internal/api/dto"
	"github.com/RoyceAzure/lab/ecommerce/internal/service"
	"github.com/RoyceAzure/lab/ecommerce/internal/util"
)

type OrderHandler struct {
	orderService service.IOrderService
}

func NewOrderHandler(orderService service.IOrderService) *OrderHandler {
	if orderService == nil {
		panic("orderService cannot be nil")
	}
	return &OrderHandler{orderService: orderService}
}

// CreateOrder 直接下單，任一品項庫存不足則整筆失敗
// POST /api/v1/orders
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	payload := util.GetTokenPayloadFromContext(r.Context())
	if payload == nil {
		api.ErrorJSON(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req dto.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	order, err := h.orderService.CreateOrder(r.Context(), payload.UPN, req.ToItemRequests())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	api.CreatedJSON(w, order)
}

// CreateOrderFromCart 以購物車內容下單，成功後清空購物車
// POST /api/v1/orders/checkout
func (h *OrderHandler) CreateOrderFromCart(w http.ResponseWriter, r *http.Request) {
	payload := util.GetTokenPayloadFromContext(r.Context())
	if payload == nil {
		api.ErrorJSON(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	order, err := h.orderService.CreateOrderFromCart(r.Context(), payload.UPN)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	api.CreatedJSON(w, order)
}

// ListOrders 查詢用戶歷史訂單，新訂單在前
// GET /api/v1/orders
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	payload := util.GetTokenPayloadFromContext(r.Context())
	if payload == nil {
		api.ErrorJSON(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	orders, err := h.orderService.GetUserOrders(r.Context(), payload.UPN)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	api.SuccessJSON(w, orders)
}
