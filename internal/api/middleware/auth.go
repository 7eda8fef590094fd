// Package middleware промежуточные обработчики HTTP-слоя
package middleware

import (
	"net/http"

	"github.com/velmor/VCS-ConsultationService/internal/api/handlers"
)

const userIDHeader = "X-User-ID"

// Auth проверяет наличие заголовка X-User-ID
// Аутентификацией владеет API gateway, сервис доверяет проксированному заголовку
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(userIDHeader) == "" {
			handlers.RespondUnauthorized(w, "отсутствует заголовок X-User-ID")
			return
		}
		next.ServeHTTP(w, r)
	})
}
