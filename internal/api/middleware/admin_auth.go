package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-InspectionBooking/internal/api/handlers"
)

const (
	// HeaderAdminToken альтернатива заголовку Authorization: Bearer
	HeaderAdminToken = "X-Admin-Token"

	msgMissingToken = "отсутствует токен администратора"
	msgInvalidToken = "неверный токен администратора"
)

// AdminAuth проверяет статический токен администратора.
// Пустой настроенный токен закрывает доступ полностью.
func AdminAuth(token string, logger Logger) func(http.Handler) http.Handler {
	expected := []byte(token)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			provided := adminToken(r)
			if provided == "" {
				logger.Warn("%s %s - Missing admin token", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			if len(expected) == 0 || subtle.ConstantTimeCompare([]byte(provided), expected) != 1 {
				logger.Warn("%s %s - Invalid admin token: ip=%s", r.Method, r.URL.Path, clientIP(r))
				handlers.RespondForbidden(w, msgInvalidToken)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func adminToken(r *http.Request) string {
	if t := strings.TrimSpace(r.Header.Get(HeaderAdminToken)); t != "" {
		return t
	}
	if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	return ""
}
