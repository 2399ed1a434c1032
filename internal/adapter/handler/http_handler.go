package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rl1809/storefront/internal/core/domain"
	"github.com/rl1809/storefront/internal/core/service"
	"github.com/rl1809/storefront/internal/platform/metrics"
)

const maxRequestBodySize = 1 << 20

type HTTPHandler struct {
	catalog *service.CatalogService
	cart    *service.CartService
	logger  *slog.Logger
}

type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

type ProductHTTPRequest struct {
	Name  string   `json:"name"`
	Brand string   `json:"brand"`
	Price flexText `json:"price"`
	Link  string   `json:"link"`
}

type ProductPatchHTTPRequest struct {
	Name  *string   `json:"name"`
	Brand *string   `json:"brand"`
	Price *flexText `json:"price"`
	Link  *string   `json:"link"`
}

type QuantityHTTPRequest struct {
	Quantity flexText `json:"quantity"`
}

type AddToCartHTTPRequest struct {
	ProductID domain.ID `json:"product_id"`
	Quantity  flexText  `json:"quantity"`
}

func NewHTTPHandler(catalog *service.CatalogService, cart *service.CartService, logger *slog.Logger) *HTTPHandler {
	return &HTTPHandler{catalog: catalog, cart: cart, logger: logger}
}

// Routes builds the router. m may be nil to run without metrics.
func (h *HTTPHandler) Routes(m *metrics.Metrics, metricsPath string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	if m != nil {
		r.Use(metricsMiddleware(m))
		r.Method(http.MethodGet, metricsPath, m.Handler())
	}

	r.Get("/health", h.HealthCheck)
	r.Route("/api", func(r chi.Router) {
		r.Get("/products", h.ListProducts)
		r.Post("/products", h.CreateProduct)
		r.Patch("/products/{id}", h.UpdateProduct)
		r.Delete("/products/{id}", h.DeleteProduct)
		r.Put("/products/{id}/quantity", h.SelectQuantity)
		r.Post("/products/{id}/buy", h.BuyProduct)

		r.Get("/cart", h.GetCart)
		r.Post("/cart/items", h.AddToCart)
		r.Delete("/cart/items/{id}", h.RemoveFromCart)
	})
	return r
}

func (h *HTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *HTTPHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Response{Success: true, Data: h.catalog.List()})
}

func (h *HTTPHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductHTTPRequest
	if !decode(w, r, &req) {
		return
	}

	product, err := h.catalog.Create(r.Context(), domain.ProductDraft{
		Name:  req.Name,
		Brand: req.Brand,
		Price: string(req.Price),
		Link:  req.Link,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, Response{Success: true, Message: msgProductAdded, Data: product})
}

func (h *HTTPHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductPatchHTTPRequest
	if !decode(w, r, &req) {
		return
	}

	patch := domain.ProductPatch{Name: req.Name, Brand: req.Brand, Link: req.Link}
	if req.Price != nil {
		price := string(*req.Price)
		patch.Price = &price
	}

	product, err := h.catalog.Update(r.Context(), pathID(r), patch)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, Response{Success: true, Message: msgProductUpdated, Data: product})
}

func (h *HTTPHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.Delete(r.Context(), pathID(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, Response{Success: true, Message: msgProductDeleted, Data: products})
}

func (h *HTTPHandler) SelectQuantity(w http.ResponseWriter, r *http.Request) {
	var req QuantityHTTPRequest
	if !decode(w, r, &req) {
		return
	}

	quantity, err := domain.ParseQuantity(string(req.Quantity))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	id := pathID(r)
	h.cart.SelectQuantity(id, quantity)
	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Message: msgQuantitySet,
		Data:    map[string]any{"id": id, "quantity": h.cart.SelectedQuantity(id)},
	})
}

func (h *HTTPHandler) BuyProduct(w http.ResponseWriter, r *http.Request) {
	line, quantity, err := h.cart.Buy(r.Context(), pathID(r), h.catalog)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Message: addedToCartMessage(quantity),
		Data:    cartLineView{CartLine: line, Total: line.Total()},
	})
}

func (h *HTTPHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Response{Success: true, Data: newCartView(h.cart.List(), h.cart.Total())})
}

func (h *HTTPHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req AddToCartHTTPRequest
	if !decode(w, r, &req) {
		return
	}

	quantity, err := domain.ParseQuantity(string(req.Quantity))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	line, err := h.cart.AddToCart(r.Context(), req.ProductID, quantity, h.catalog)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Message: addedToCartMessage(quantity),
		Data:    cartLineView{CartLine: line, Total: line.Total()},
	})
}

func (h *HTTPHandler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	lines, err := h.cart.Delete(r.Context(), pathID(r))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Message: msgRemovedFromCart,
		Data:    newCartView(lines, h.cart.Total()),
	})
}

func (h *HTTPHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	default:
		h.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}

	writeJSON(w, status, Response{Success: false, Message: userMessage(err)})
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, Response{Success: false, Message: msgInvalidBody})
		return false
	}
	return true
}

func pathID(r *http.Request) domain.ID {
	return domain.ID(chi.URLParam(r, "id"))
}

func metricsMiddleware(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			route := chi.RouteContext(r.Context()).RoutePattern()
			if route == "" {
				route = "unmatched"
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			m.ObserveRequest("http", r.Method+" "+route, strconv.Itoa(status), start)
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
