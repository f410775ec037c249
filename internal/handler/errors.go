package handlers

import (
	"encoding/json"
	"errors"
	"myblog/internal/models"
	"net/http"
)

// ErrorResponse - стандартный ответ с ошибкой
type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// WriteError - универсальная функция для отправки ошибок
func WriteError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

// WriteSuccess - функция для успешных ответов
func WriteSuccess(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// WriteDomainError сопоставляет ошибки домена с HTTP-статусами.
func WriteDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrValidation):
		WriteError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, models.ErrNotFound):
		WriteError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, models.ErrUnauthorized):
		WriteError(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, models.ErrUpload):
		WriteError(w, err.Error(), http.StatusBadGateway)
	case errors.Is(err, models.ErrStoreUnavailable):
		WriteError(w, err.Error(), http.StatusServiceUnavailable)
	default:
		WriteError(w, err.Error(), http.StatusInternalServerError)
	}
}
