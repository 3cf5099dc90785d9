package middleware

import (
	"context"
	"net/http"
	"strconv"
)

type contextKey string

const (
	userIDKey contextKey = "userID"
	roleKey   contextKey = "userRole"

	headerUserID = "X-User-ID"
	headerRole   = "X-User-Role"

	// RoleManager роль менеджера: принимает и отклоняет заявки, меняет продления
	RoleManager = "manager"
)

// Auth проверяет наличие X-User-ID и кладёт идентификатор и роль в контекст
// Аутентификацию выполняет API gateway, сервис доверяет заголовкам
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawID := r.Header.Get(headerUserID)
		if rawID == "" {
			http.Error(w, "missing "+headerUserID+" header", http.StatusUnauthorized)
			return
		}

		userID, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil || userID <= 0 {
			http.Error(w, "invalid "+headerUserID+" header", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		ctx = context.WithValue(ctx, roleKey, r.Header.Get(headerRole))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ManagerOnly пропускает только запросы с ролью менеджера
// Должен стоять после Auth
func ManagerOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !IsManager(r.Context()) {
			http.Error(w, "manager role required", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetUserID возвращает идентификатор пользователя из контекста
func GetUserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

// IsManager сообщает, имеет ли пользователь роль менеджера
func IsManager(ctx context.Context) bool {
	role, ok := ctx.Value(roleKey).(string)
	return ok && role == RoleManager
}
