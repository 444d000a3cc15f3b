package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/NikoCousin/book-am/internal/api/handlers"
)

type contextKey string

const (
	// BusinessIDHeader заголовок с идентификатором бизнеса.
	// Владельческие ручки работают строго в рамках одного бизнеса.
	BusinessIDHeader = "X-Business-ID"

	businessIDKey contextKey = "businessID"
)

const msgMissingBusinessID = "отсутствует или некорректен заголовок X-Business-ID"

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// Auth извлекает идентификатор бизнеса из заголовка X-Business-ID
// и кладет его в контекст запроса. Запросы без заголовка отклоняются.
func Auth(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get(BusinessIDHeader)
			businessID, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || businessID <= 0 {
				logger.Warn("%s %s - missing or invalid %s header", r.Method, r.URL.Path, BusinessIDHeader)
				handlers.RespondUnauthorized(w, msgMissingBusinessID)
				return
			}

			ctx := context.WithValue(r.Context(), businessIDKey, businessID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BusinessIDFromContext возвращает идентификатор бизнеса из контекста
func BusinessIDFromContext(ctx context.Context) (int64, bool) {
	businessID, ok := ctx.Value(businessIDKey).(int64)
	return businessID, ok
}
