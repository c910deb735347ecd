package middlewares

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/sellora/saree-storefront/internal/pkg/httpmeta"
)

// AttachRequestMetadata copies the chi-generated request ID into the typed
// context slot the handlers and log lines read from. An inbound
// x-request-id header, if present, wins so correlation survives proxies.
func AttachRequestMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(httpmeta.HeaderXRequestID)
		if requestID == "" {
			requestID = middleware.GetReqID(r.Context())
		}

		ctx := httpmeta.WithRequestID(r.Context(), requestID)
		w.Header().Set(httpmeta.HeaderXRequestID, requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
