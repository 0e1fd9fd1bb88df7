package handler

import (
	"errors"
	"net/http"

	"github.com/RoyceAzure/lab/ecommerce/internal/api"
	"github.com/RoyceAzure/lab/ecommerce/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/ecommerce/internal/service"
)

// writeServiceError 將 service 層錯誤轉換為 HTTP 狀態碼
func writeServiceError(w http.ResponseWriter, err error) {
	var stockErr *service.InsufficientStockError
	switch {
	case errors.As(err, &stockErr):
		api.ErrorJSON(w, http.StatusConflict, stockErr.Error())
	case errors.Is(err, db.ErrUserNotFound),
		errors.Is(err, db.ErrProductNotFound):
		api.ErrorJSON(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrCartEmpty),
		errors.Is(err, service.ErrInvalidPrice):
		api.ErrorJSON(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrEmailAlreadyExists),
		errors.Is(err, service.ErrProductNameExists):
		api.ErrorJSON(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		api.ErrorJSON(w, http.StatusUnauthorized, err.Error())
	default:
		api.ErrorJSON(w, http.StatusInternalServerError, "internal server error")
	}
}
