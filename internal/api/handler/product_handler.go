package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/RoyceAzure/lab/ecommerce/internal/api"
	"github.com/RoyceAzure/lab/ecommerce/internal/api/dto"
	"github.com/RoyceAzure/lab/ecommerce/internal/domain/model"
	"github.com/RoyceAzure/lab/ecommerce/internal/service"
	"github.com/go-chi/chi/v5"
)

type ProductHandler struct {
	productService service.IProductService
}

func NewProductHandler(productService service.IProductService) *ProductHandler {
	if productService == nil {
		panic("productService cannot be nil")
	}
	return &ProductHandler{productService: productService}
}

// ListProducts 查詢商品列表，可用 ?category= 過濾
// GET /api/v1/products
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")

	var (
		products []model.Product
		err      error
	)
	if category != "" {
		products, err = h.productService.GetProductsByCategory(r.Context(), category)
	} else {
		products, err = h.productService.GetAllProducts(r.Context())
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}

	api.SuccessJSON(w, products)
}

// GetProduct 查詢單一商品
// GET /api/v1/products/{id}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := parseUintParam(r, "id")
	if err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid product id")
		return
	}

	product, err := h.productService.GetProductByID(r.Context(), productID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	api.SuccessJSON(w, product)
}

// ListCategories 查詢所有商品分類
// GET /api/v1/products/categories
func (h *ProductHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.productService.GetAllCategories(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	api.SuccessJSON(w, categories)
}

// CreateProduct 新增商品，僅限管理員
// POST /api/v1/products
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	product, err := h.productService.CreateProduct(r.Context(), &model.Product{
		Name:     req.Name,
		Price:    req.Price,
		Stock:    req.Stock,
		Category: req.Category,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	api.CreatedJSON(w, product)
}

// UpdateProduct 部分更新商品，僅限管理員
// PUT /api/v1/products/{id}
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := parseUintParam(r, "id")
	if err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var req dto.UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	product, err := h.productService.UpdateProduct(r.Context(), productID, service.ProductUpdateParams{
		Name:     req.Name,
		Price:    req.Price,
		Stock:    req.Stock,
		Category: req.Category,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	api.SuccessJSON(w, product)
}

// DeleteProduct 刪除商品，僅限管理員
// DELETE /api/v1/products/{id}
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := parseUintParam(r, "id")
	if err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid product id")
		return
	}

	if err := h.productService.DeleteProduct(r.Context(), productID); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseUintParam(r *http.Request, key string) (uint, error) {
	v, err := strconv.ParseUint(chi.URLParam(r, key), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(v), nil
}
