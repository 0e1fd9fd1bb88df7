package handler

import (
	"encoding/json"
	"net/http"

	"github.com/RoyceAzure/lab/ecommerce/internal/api"
	"github.com/RoyceAzure/lab/ecommerce/internal/api/dto"
	"github.com/RoyceAzure/lab/ecommerce/internal/domain/model"
	"github.com/RoyceAzure/lab/ecommerce/internal/service"
)

type AuthHandler struct {
	authService service.IAuthService
}

func NewAuthHandler(authService service.IAuthService) *AuthHandler {
	if authService == nil {
		panic("authService cannot be nil")
	}
	return &AuthHandler{authService: authService}
}

// Register 註冊新用戶
// POST /api/v1/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	// 註冊一律建立一般用戶，管理員由後台直接建立
	result, err := h.authService.Register(r.Context(), req.Name, req.Email, req.Password, model.RoleUser)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	api.CreatedJSON(w, toAuthResponse(result))
}

// Login 登入
// POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	api.SuccessJSON(w, toAuthResponse(result))
}

func toAuthResponse(result *service.LoginResult) dto.AuthResponse {
	return dto.AuthResponse{
		Token:     result.AccessToken,
		ExpiresIn: result.ExpiresIn,
		Email:     result.User.UserEmail,
		Role:      string(result.User.Role),
	}
}
