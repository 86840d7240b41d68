package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-CarWashService/internal/api/handlers"
)

const (
	// HeaderUserID заголовок с ID аутентифицированного пользователя
	// Проставляется API-гейтвеем после проверки токена
	HeaderUserID = "X-User-ID"

	// HeaderUserRole заголовок с ролью пользователя
	HeaderUserRole = "X-User-Role"

	// RoleStaff роль сотрудника мойки
	RoleStaff = "staff"
)

type contextKey string

const (
	userIDKey contextKey = "userID"
	staffKey  contextKey = "staff"
)

const msgUnauthorized = "требуется аутентификация"

// Auth проверяет наличие X-User-ID и кладет пользователя в контекст
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawUserID := r.Header.Get(HeaderUserID)
		if rawUserID == "" {
			handlers.RespondUnauthorized(w, msgUnauthorized)
			return
		}

		userID, err := strconv.ParseInt(rawUserID, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, msgUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		ctx = context.WithValue(ctx, staffKey, r.Header.Get(HeaderUserRole) == RoleStaff)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserID возвращает ID пользователя из контекста запроса
func UserID(ctx context.Context) int64 {
	id, _ := ctx.Value(userIDKey).(int64)
	return id
}

// IsStaff проверяет, что запрос выполняет сотрудник
func IsStaff(ctx context.Context) bool {
	staff, _ := ctx.Value(staffKey).(bool)
	return staff
}
