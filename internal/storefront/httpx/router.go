package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sellora/saree-storefront/internal/storefront/httpx/middlewares"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// NewRouter builds the HTTP surface. The otelhttp wrapper opens a server span
// per request, so downstream log lines and analytics entries carry the
// trace/span IDs of the request that produced them.
func NewRouter(handler *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middlewares.AttachRequestMetadata)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", handler.Healthz)

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", handler.CreateSession)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", handler.GetSection)
			r.Delete("/", handler.DeleteSession)

			r.Post("/viewport", handler.ReportViewport)
			r.Post("/visibility", handler.ReportVisibility)
			r.Post("/hover", handler.ReportHover)
			r.Post("/next", handler.Next)
			r.Post("/prev", handler.Prev)
			r.Post("/goto", handler.GoTo)
			r.Post("/quantity", handler.SetQuantity)

			r.Post("/cart/items", handler.AddToCart)
			r.Get("/cart", handler.GetCart)
		})
	})

	return otelhttp.NewHandler(r, "storefront")
}
