package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/iudanet/weightkeeper/internal/logging"
)

// RequestIDHeader заголовок с идентификатором запроса
const RequestIDHeader = "X-Request-ID"

// maxRequestIDLen ограничивает длину идентификатора, пришедшего от клиента
const maxRequestIDLen = 64

// RequestIDMiddleware присваивает запросу идентификатор и кладет его в контекст.
// Идентификатор клиента из X-Request-ID сохраняется, иначе генерируется UUID.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" || len(id) > maxRequestIDLen {
			id = uuid.NewString()
		}

		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(logging.WithRequestID(r.Context(), id)))
	})
}
