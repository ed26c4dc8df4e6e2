// Package middleware содержит HTTP middleware сервиса: аутентификацию
// по заголовку X-User-ID и сбор метрик запросов.
package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-StudioBookingService/internal/api/handlers"
)

type contextKey string

const userIDKey contextKey = "userID"

// HeaderUserID заголовок с ID пользователя, проставляется API-гейтвеем
const HeaderUserID = "X-User-ID"

// Auth проверяет наличие корректного заголовка X-User-ID и кладёт
// ID пользователя в контекст запроса
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(HeaderUserID)
		if raw == "" {
			handlers.RespondUnauthorized(w, "отсутствует заголовок X-User-ID")
			return
		}

		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, "некорректный заголовок X-User-ID")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserIDFromContext извлекает ID пользователя, положенный Auth.
// false означает, что запрос пришёл мимо Auth middleware
func UserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}
