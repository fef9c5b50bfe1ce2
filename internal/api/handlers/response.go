package handlers

import (
	"encoding/json"
	"net/http"
)

const (
	msgInternalError      = "внутренняя ошибка сервера"
	msgStorageTimeout     = "превышено время ожидания ответа хранилища"
	msgStorageUnavailable = "хранилище временно недоступно"
	msgTooManyRequests    = "слишком много запросов, попробуйте позже"
)

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}

// RespondJSON отправляет JSON ответ с указанным статусом
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

// RespondError отправляет ошибку с указанным статусом
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Error: message})
}

// RespondValidationError отправляет 400 с ошибками по полям
func RespondValidationError(w http.ResponseWriter, message string, details map[string]string) {
	RespondJSON(w, http.StatusBadRequest, ErrorResponse{Error: message, Details: details})
}

func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, message)
}

func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, message)
}

func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

func RespondConflict(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusConflict, message)
}

func RespondTooManyRequests(w http.ResponseWriter) {
	RespondError(w, http.StatusTooManyRequests, msgTooManyRequests)
}

// RespondStorageTimeout 504: хранилище не ответило за отведенное время
func RespondStorageTimeout(w http.ResponseWriter) {
	RespondError(w, http.StatusGatewayTimeout, msgStorageTimeout)
}

// RespondStorageUnavailable 503: хранилище недоступно
func RespondStorageUnavailable(w http.ResponseWriter) {
	RespondError(w, http.StatusServiceUnavailable, msgStorageUnavailable)
}

func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}
