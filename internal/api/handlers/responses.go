// Package handlers содержит общие помощники HTTP-слоя: JSON-ответы,
// декодирование тела запроса и формат ошибок API.
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/m04kA/SMC-StudioBookingService/internal/policy"
)

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Error string `json:"error"`
}

// PolicyViolationResponse тело ответа с отказом политики.
// Отказ политики - ожидаемый исход запроса, а не ошибка сервера:
// машинно-читаемая причина не позволяет клиенту путать его с 5xx
type PolicyViolationResponse struct {
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

// RespondJSON сериализует payload в JSON и пишет ответ с указанным статусом
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// RespondError пишет ответ с ошибкой
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Error: message})
}

// RespondBadRequest пишет ответ 400 Bad Request
func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

// RespondUnauthorized пишет ответ 401 Unauthorized
func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, message)
}

// RespondForbidden пишет ответ 403 Forbidden
func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, message)
}

// RespondNotFound пишет ответ 404 Not Found
func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

// RespondConflict пишет ответ 409 Conflict
func RespondConflict(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusConflict, message)
}

// RespondPolicyViolation пишет ответ 422 Unprocessable Entity с
// машинно-читаемой причиной отказа политики
func RespondPolicyViolation(w http.ResponseWriter, v *policy.Violation) {
	RespondJSON(w, http.StatusUnprocessableEntity, PolicyViolationResponse{
		Reason:  string(v.Reason),
		Message: v.Detail,
	})
}

// RespondInternalError пишет ответ 500 Internal Server Error
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
}

// DecodeJSON декодирует тело запроса в dst, запрещая неизвестные поля
func DecodeJSON(r *http.Request, dst interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("failed to decode request body: %w", err)
	}
	return nil
}
