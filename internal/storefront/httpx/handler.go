package httpx

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sellora/saree-storefront/internal/pkg/httpmeta"
	"github.com/sellora/saree-storefront/internal/storefront/session"
)

// Handler exposes the storefront section state machine over JSON HTTP. The
// browser reports UI signals (resize, visibility, hover, clicks) and renders
// the view models it gets back.
type Handler struct {
	registry *session.Registry
}

// NewHandler wires the handler to the session registry.
func NewHandler(registry *session.Registry) *Handler {
	return &Handler{registry: registry}
}

// CreateSession mounts a new section instance and kicks off its catalog load.
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if req.ViewportWidth <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_request", "viewport_width must be positive")
		return
	}

	s := h.registry.Create(r.Context(), req.ViewportWidth)

	requestID := httpmeta.RequestID(r.Context())
	slog.InfoContext(r.Context(), "section mounted", "request_id", requestID, "session_id", s.ID)

	writeJSON(w, http.StatusCreated, CreateSessionResponse{SessionID: s.ID})
}

// GetSection returns the full section view model.
func (h *Handler) GetSection(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, mapSnapshot(s.State()))
}

// ReportViewport applies a resize signal.
func (h *Handler) ReportViewport(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var req ViewportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if req.Width <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_request", "width must be positive")
		return
	}
	s.Resize(req.Width)
	writeJSON(w, http.StatusOK, mapSnapshot(s.State()))
}

// ReportVisibility feeds an intersection signal to the one-shot view tracker.
func (h *Handler) ReportVisibility(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var req VisibilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if req.Ratio < 0 || req.Ratio > 1 {
		writeError(w, http.StatusBadRequest, "invalid_request", "ratio must be within [0, 1]")
		return
	}
	fired := s.Visibility(r.Context(), req.Ratio)
	writeJSON(w, http.StatusOK, VisibilityResponse{Fired: fired})
}

// ReportHover toggles autoplay suspension from pointer enter/leave.
func (h *Handler) ReportHover(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var req HoverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	s.Hover(req.Entered)
	w.WriteHeader(http.StatusNoContent)
}

// Next advances the carousel one position.
func (h *Handler) Next(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	s.Next()
	writeJSON(w, http.StatusOK, mapSnapshot(s.State()))
}

// Prev steps the carousel back one position.
func (h *Handler) Prev(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	s.Prev()
	writeJSON(w, http.StatusOK, mapSnapshot(s.State()))
}

// GoTo jumps to a dot index. The engine itself rejects out-of-range targets
// so the check and the jump happen under one lock.
func (h *Handler) GoTo(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var req GoToRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if !s.GoTo(req.Index) {
		writeError(w, http.StatusBadRequest, "index_out_of_range", "index must be within the dot range")
		return
	}
	writeJSON(w, http.StatusOK, mapSnapshot(s.State()))
}

// SetQuantity stores a visitor-chosen quantity, floored at 1.
func (h *Handler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var req QuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if req.ProductID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "product_id is required")
		return
	}
	if err := s.SetQuantity(req.ProductID, req.Quantity); err != nil {
		h.mapSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapSnapshot(s.State()))
}

// AddToCart runs the add-to-cart flow for one click.
func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	var req AddToCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if req.ProductID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "product_id is required")
		return
	}

	accepted, err := s.AddToCart(r.Context(), req.ProductID)
	if err != nil {
		h.mapSessionError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, AddToCartResponse{
		Accepted: accepted,
		InFlight: true,
	})
}

// GetCart lists the accumulated cart lines in insertion order.
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	lines := s.CartLines()
	items := make([]CartItemResponse, len(lines))
	for i, line := range lines {
		items[i] = CartItemResponse{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Color:       line.Color,
			Image:       line.Image,
			Quantity:    line.Quantity,
			Price:       line.Price,
		}
	}
	writeJSON(w, http.StatusOK, CartResponse{Items: items})
}

// DeleteSession unmounts a section instance.
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	h.registry.Delete(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

// Healthz is the liveness probe.
func (h *Handler) Healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id := chi.URLParam(r, "id")
	s, ok := h.registry.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "session_not_found", "")
		return nil, false
	}
	return s, true
}

func (h *Handler) mapSessionError(w http.ResponseWriter, err error) {
	if errors.Is(err, session.ErrUnknownProduct) {
		writeError(w, http.StatusNotFound, "product_not_found", err.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
}

func mapSnapshot(snap session.Snapshot) SectionResponse {
	products := make([]ProductResponse, len(snap.Products))
	for i, pv := range snap.Products {
		products[i] = ProductResponse{
			ID:              pv.Product.ID,
			Name:            pv.Product.Name,
			Color:           pv.Product.Color,
			Image:           pv.Product.Image,
			Price:           pv.Product.Price,
			OriginalPrice:   pv.Product.OriginalPrice,
			OrderNumber:     pv.Product.OrderNumber,
			Quantity:        pv.Quantity,
			InFlight:        pv.InFlight,
			DiscountPercent: pv.DiscountPercent,
			SaveAmount:      pv.SaveAmount,
		}
	}

	return SectionResponse{
		Loading:  snap.Loading,
		Error:    snap.ErrMsg,
		Empty:    !snap.Loading && snap.ErrMsg == "" && len(snap.Products) == 0,
		Products: products,
		Carousel: CarouselResponse{
			CurrentIndex: snap.Position.Current,
			PageSize:     snap.Position.PageSize,
			MaxIndex:     snap.Position.MaxIndex,
			Dots:         snap.Dots,
			Suspended:    snap.Position.Suspended,
		},
		CartCount: snap.CartCount,
		ScrollTo:  snap.ScrollTo,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, ErrorResponse{
		Error:   code,
		Message: msg,
	})
}
