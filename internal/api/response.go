package api

import (
	"encoding/json"
	"net/http"
)

// Response 統一回應格式
type Response struct {
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// ResponseError 統一錯誤回應格式
type ResponseError struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func SuccessJSON(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, Response{Data: data})
}

func CreatedJSON(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusCreated, Response{Data: data})
}

func ErrorJSON(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ResponseError{Error: message})
}
