package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Cheertaboi/cart-pricing-service/internal/cart"
	"github.com/Cheertaboi/cart-pricing-service/internal/coupons"
	"github.com/Cheertaboi/cart-pricing-service/internal/models"
	"github.com/Cheertaboi/cart-pricing-service/internal/observability"
	"github.com/Cheertaboi/cart-pricing-service/internal/points"
	"github.com/Cheertaboi/cart-pricing-service/internal/service"
)

// --- Handler struct & constructor ---

type SessionHandler struct {
	sessions *service.Registry
}

func NewSessionHandler(sessions *service.Registry) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// decodeBody decodes a JSON body into v. An empty body leaves v untouched.
func decodeBody(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func productIDParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	return id, err == nil
}

func (h *SessionHandler) writeSessionError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, "session_not_found")
	case errors.Is(err, service.ErrProductNotFound):
		writeError(w, http.StatusNotFound, "product_not_found")
	default:
		observability.FromContext(r.Context()).Error("session operation failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error")
	}
}

// rejectionCode maps a rejection reason to its API code.
func rejectionCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, coupons.ErrUnknownCoupon):
		return "unknown_coupon"
	case errors.Is(err, coupons.ErrCouponSlotsFull):
		return "coupon_slots_full"
	case errors.Is(err, coupons.ErrDuplicateCoupon):
		return "duplicate_coupon"
	case errors.Is(err, points.ErrPointsExceedAvailable):
		return "points_exceed_available"
	case errors.Is(err, points.ErrPointsExceedCap):
		return "points_exceed_cap"
	case errors.Is(err, points.ErrPointsWithCategoryCoupon):
		return "points_with_category_coupon"
	case errors.Is(err, points.ErrPointsNegative):
		return "points_negative"
	default:
		return "rejected"
	}
}

// --- Handlers ---

// CreateSession handles POST /sessions
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body")
		return
	}

	view, err := h.sessions.Create(r.Context(), strings.TrimSpace(req.UserID))
	if err != nil {
		h.writeSessionError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, sessionResponse(view))
}

// GetSession handles GET /sessions/{id}
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	view, err := h.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		h.writeSessionError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse(view))
}

// DeleteSession handles DELETE /sessions/{id}
func (h *SessionHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Delete(chi.URLParam(r, "id")); err != nil {
		h.writeSessionError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddItem handles POST /sessions/{id}/items
func (h *SessionHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := decodeBody(r, &req); err != nil || req.ProductID == 0 {
		writeError(w, http.StatusBadRequest, "product_id required")
		return
	}

	view, err := h.sessions.Do(chi.URLParam(r, "id"), func(s *service.Session) error {
		return s.AddProduct(req.ProductID)
	})
	if err != nil {
		h.writeSessionError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse(view))
}

// UpdateItem handles PUT /sessions/{id}/items/{productID}
func (h *SessionHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	productID, ok := productIDParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}
	var req UpdateQuantityRequest
	if err := decodeBody(r, &req); err != nil || req.Quantity == nil {
		writeError(w, http.StatusBadRequest, "quantity required")
		return
	}
	if *req.Quantity > cart.MaxQuantity {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("quantity must be at most %d", cart.MaxQuantity))
		return
	}

	view, err := h.sessions.Do(chi.URLParam(r, "id"), func(s *service.Session) error {
		s.UpdateQuantity(productID, *req.Quantity)
		return nil
	})
	if err != nil {
		h.writeSessionError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse(view))
}

// RemoveItem handles DELETE /sessions/{id}/items/{productID}
func (h *SessionHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID, ok := productIDParam(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	view, err := h.sessions.Do(chi.URLParam(r, "id"), func(s *service.Session) error {
		s.RemoveFromCart(productID)
		return nil
	})
	if err != nil {
		h.writeSessionError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse(view))
}

// ApplyCoupon handles POST /sessions/{id}/coupons
// A rejected coupon is still a 200; the body carries applied=false and the reason.
func (h *SessionHandler) ApplyCoupon(w http.ResponseWriter, r *http.Request) {
	var req ApplyCouponRequest
	if err := decodeBody(r, &req); err != nil || strings.TrimSpace(req.Code) == "" {
		writeError(w, http.StatusBadRequest, "code required")
		return
	}

	var outcome service.CouponOutcome
	view, err := h.sessions.Do(chi.URLParam(r, "id"), func(s *service.Session) error {
		outcome = s.ApplyCoupon(req.Code)
		return nil
	})
	if err != nil {
		h.writeSessionError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ApplyCouponResponse{
		Applied:     outcome.Applied,
		Slot:        string(outcome.Slot),
		PointsReset: outcome.PointsReset,
		Reason:      rejectionCode(outcome.Reason),
		Session:     sessionResponse(view),
	})
}

// RemoveCoupon handles DELETE /sessions/{id}/coupons/{slot}
func (h *SessionHandler) RemoveCoupon(w http.ResponseWriter, r *http.Request) {
	slot := models.Slot(chi.URLParam(r, "slot"))
	if !slot.Valid() {
		writeError(w, http.StatusBadRequest, "slot must be primary or categoryOnTop")
		return
	}

	view, err := h.sessions.Do(chi.URLParam(r, "id"), func(s *service.Session) error {
		s.RemoveCoupon(slot)
		return nil
	})
	if err != nil {
		h.writeSessionError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse(view))
}

// AvailableCoupons handles GET /sessions/{id}/coupons/available
func (h *SessionHandler) AvailableCoupons(w http.ResponseWriter, r *http.Request) {
	view, err := h.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		h.writeSessionError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"available_on_top_coupons": couponResponses(view.AvailableOnTopCoupons),
		"can_use_category_coupon":  view.CanUseCategoryCoupon,
	})
}

// ApplyPoints handles POST /sessions/{id}/points
func (h *SessionHandler) ApplyPoints(w http.ResponseWriter, r *http.Request) {
	var req ApplyPointsRequest
	if err := decodeBody(r, &req); err != nil || req.Points == nil {
		writeError(w, http.StatusBadRequest, "points required")
		return
	}

	var outcome service.PointsOutcome
	view, err := h.sessions.Do(chi.URLParam(r, "id"), func(s *service.Session) error {
		outcome = s.ApplyPoints(*req.Points)
		return nil
	})
	if err != nil {
		h.writeSessionError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ApplyPointsResponse{
		Applied: outcome.Applied,
		Reason:  rejectionCode(outcome.Reason),
		Session: sessionResponse(view),
	})
}

// ResetPoints handles DELETE /sessions/{id}/points
func (h *SessionHandler) ResetPoints(w http.ResponseWriter, r *http.Request) {
	view, err := h.sessions.Do(chi.URLParam(r, "id"), func(s *service.Session) error {
		s.ResetPoints()
		return nil
	})
	if err != nil {
		h.writeSessionError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse(view))
}

// ListProducts handles GET /products
func (h *SessionHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products := h.sessions.Catalog().Products()
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, productResponse(p))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"products": out})
}

// ListCoupons handles GET /coupons
func (h *SessionHandler) ListCoupons(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"coupons": couponResponses(h.sessions.Catalog().Coupons()),
	})
}

// GetCatalog handles GET /catalog
// The body uses the same document format as catalog files, with any campaign
// override already applied.
func (h *SessionHandler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.sessions.Catalog().Document())
}
