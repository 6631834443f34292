package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/nikolayk812/vespa-storefront/internal/catalog"
	"github.com/nikolayk812/vespa-storefront/internal/checkout"
	"github.com/nikolayk812/vespa-storefront/internal/colormatch"
	"github.com/nikolayk812/vespa-storefront/internal/domain"
	"github.com/nikolayk812/vespa-storefront/internal/session"
	"github.com/nikolayk812/vespa-storefront/internal/wishlist"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 64 << 10

type sessionKey struct{}

type errorResponse struct {
	Error  string                `json:"error"`
	Fields []checkout.FieldError `json:"fields,omitempty"`
}

type productsResponse struct {
	Products []domain.Product `json:"products"`
	Count    int              `json:"count"`
	Filtered bool             `json:"filtered"`
}

type filtersResponse struct {
	Colors     []string          `json:"colors"`
	Engines    []string          `json:"engines"`
	Features   []string          `json:"features"`
	PriceRange domain.PriceRange `json:"priceRange"`
	Swatches   map[string]string `json:"swatches"`
}

type colorMatchResponse struct {
	colormatch.Match
	CollectionURL string `json:"collectionUrl,omitempty"`
}

type cartResponse struct {
	Items     []domain.CartItem `json:"items"`
	ItemCount int               `json:"itemCount"`
	Total     string            `json:"total"`
}

type wishlistResponse struct {
	Items        []domain.Product       `json:"items"`
	Count        int                    `json:"count"`
	Notification *wishlist.Notification `json:"notification,omitempty"`
}

type itemRequest struct {
	Slug          string `json:"slug"`
	SelectedColor string `json:"selectedColor"`
}

type colorRequest struct {
	SelectedColor string `json:"selectedColor"`
}

type quantityRequest struct {
	Quantity *int `json:"quantity"`
}

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	criteria, err := catalog.ParseQuery(r.URL.Query())
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	products := s.catalog.Filter(criteria)
	if products == nil {
		products = []domain.Product{}
	}

	s.writeJSON(w, http.StatusOK, productsResponse{
		Products: products,
		Count:    len(products),
		Filtered: !criteria.IsZero(),
	})
}

func (s *Server) handleFeatured(w http.ResponseWriter, r *http.Request) {
	var limit int
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			s.writeError(w, http.StatusBadRequest, fmt.Sprintf("limit: %q is not a positive number", raw))
			return
		}
		limit = n
	}

	products := s.catalog.Featured(limit)
	s.writeJSON(w, http.StatusOK, productsResponse{
		Products: products,
		Count:    len(products),
	})
}

func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	product, ok := s.catalog.BySlug(chi.URLParam(r, "slug"))
	if !ok {
		s.writeError(w, http.StatusNotFound, "product not found")
		return
	}

	s.writeJSON(w, http.StatusOK, product)
}

func (s *Server) handleFilters(w http.ResponseWriter, r *http.Request) {
	colors := s.catalog.Colors()

	swatches := make(map[string]string, len(colors))
	for _, c := range colors {
		if hex, ok := colormatch.HexForColorName(c); ok {
			swatches[c] = hex
		}
	}

	s.writeJSON(w, http.StatusOK, filtersResponse{
		Colors:     nonNil(colors),
		Engines:    nonNil(s.catalog.Engines()),
		Features:   nonNil(s.catalog.Features()),
		PriceRange: s.catalog.PriceRange(),
		Swatches:   swatches,
	})
}

func (s *Server) handleColorMatch(w http.ResponseWriter, r *http.Request) {
	hex := r.URL.Query().Get("color")
	if hex == "" {
		s.writeError(w, http.StatusBadRequest, "color is required")
		return
	}

	resp := colorMatchResponse{Match: s.matcher.FindMatchingProduct(hex)}
	if resp.Product != nil {
		resp.CollectionURL = catalog.CollectionURL(resp.Product.Color)
	}

	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetCart(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, cartView(sessionFrom(r.Context())))
}

func (s *Server) handleClearCart(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	if err := sess.Cart.Clear(r.Context()); err != nil {
		s.writeInternal(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, cartView(sess))
}

func (s *Server) handleAddCartItem(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if !s.decode(w, r, &req) {
		return
	}

	product, ok := s.catalog.BySlug(req.Slug)
	if !ok {
		s.writeError(w, http.StatusNotFound, "product not found")
		return
	}

	sess := sessionFrom(r.Context())
	if err := sess.Cart.AddItemWithColor(r.Context(), product, req.SelectedColor); err != nil {
		s.writeInternal(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, cartView(sess))
}

func (s *Server) handleUpdateCartItem(w http.ResponseWriter, r *http.Request) {
	var req quantityRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.Quantity == nil {
		s.writeError(w, http.StatusBadRequest, "quantity is required")
		return
	}

	sess := sessionFrom(r.Context())
	if err := sess.Cart.UpdateQuantity(r.Context(), chi.URLParam(r, "slug"), *req.Quantity); err != nil {
		s.writeInternal(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, cartView(sess))
}

func (s *Server) handleSetCartItemColor(w http.ResponseWriter, r *http.Request) {
	var req colorRequest
	if !s.decode(w, r, &req) {
		return
	}

	sess := sessionFrom(r.Context())
	if err := sess.Cart.SetSelectedColor(r.Context(), chi.URLParam(r, "slug"), req.SelectedColor); err != nil {
		s.writeInternal(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, cartView(sess))
}

func (s *Server) handleRemoveCartItem(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	if err := sess.Cart.RemoveItem(r.Context(), chi.URLParam(r, "slug")); err != nil {
		s.writeInternal(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, cartView(sess))
}

func (s *Server) handleGetWishlist(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.wishlistView(sessionFrom(r.Context())))
}

func (s *Server) handleClearWishlist(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	if err := sess.Wishlist.Clear(r.Context()); err != nil {
		s.writeInternal(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, s.wishlistView(sess))
}

func (s *Server) handleAddWishlistItem(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if !s.decode(w, r, &req) {
		return
	}

	product, ok := s.catalog.BySlug(req.Slug)
	if !ok {
		s.writeError(w, http.StatusNotFound, "product not found")
		return
	}

	sess := sessionFrom(r.Context())
	if err := sess.Wishlist.Add(r.Context(), product); err != nil {
		s.writeInternal(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, s.wishlistView(sess))
}

func (s *Server) handleToggleWishlistItem(w http.ResponseWriter, r *http.Request) {
	product, ok := s.catalog.BySlug(chi.URLParam(r, "slug"))
	if !ok {
		s.writeError(w, http.StatusNotFound, "product not found")
		return
	}

	sess := sessionFrom(r.Context())
	if _, err := sess.Wishlist.Toggle(r.Context(), product); err != nil {
		s.writeInternal(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, s.wishlistView(sess))
}

func (s *Server) handleRemoveWishlistItem(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	if err := sess.Wishlist.Remove(r.Context(), chi.URLParam(r, "slug")); err != nil {
		s.writeInternal(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, s.wishlistView(sess))
}

func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	var form checkout.Form
	if !s.decode(w, r, &form) {
		return
	}

	order, err := s.checkout.Submit(r.Context(), sessionFrom(r.Context()).Cart, form)

	var verr *checkout.ValidationError
	switch {
	case errors.As(err, &verr):
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: verr.Error(), Fields: verr.Fields})
	case errors.Is(err, checkout.ErrEmptyCart):
		s.writeError(w, http.StatusBadRequest, err.Error())
	case err != nil:
		s.writeInternal(w, err)
	default:
		s.writeJSON(w, http.StatusCreated, order)
	}
}

func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ownerID := r.Header.Get(OwnerHeader)
		if ownerID == "" {
			s.writeError(w, http.StatusBadRequest, OwnerHeader+" header is required")
			return
		}

		sess, err := s.sessions.Get(r.Context(), ownerID)
		if err != nil {
			s.writeInternal(w, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey{}, sess)))
	})
}

func sessionFrom(ctx context.Context) *session.Session {
	return ctx.Value(sessionKey{}).(*session.Session)
}

func cartView(sess *session.Session) cartResponse {
	items := sess.Cart.Items()
	if items == nil {
		items = []domain.CartItem{}
	}

	return cartResponse{
		Items:     items,
		ItemCount: sess.Cart.ItemCount(),
		Total:     sess.Cart.FormattedTotal(),
	}
}

func (s *Server) wishlistView(sess *session.Session) wishlistResponse {
	items := sess.Wishlist.Items()
	if items == nil {
		items = []domain.Product{}
	}

	resp := wishlistResponse{Items: items, Count: len(items)}
	if n, ok := s.sessions.TakeNotification(sess.OwnerID); ok {
		resp.Notification = &n
	}
	return resp
}

func (s *Server) writeInternal(w http.ResponseWriter, err error) {
	s.log.WithError(err).Error("request failed")
	s.writeError(w, http.StatusInternalServerError, "internal error")
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.WithError(err).WithField("status", status).Warn("writing response failed")
	}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
