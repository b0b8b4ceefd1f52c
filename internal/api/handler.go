// Package api serves the dashboard and the full lists as read-only JSON.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"invdash/internal/dashboard"
	"invdash/internal/data"
	"invdash/internal/logging"
	"invdash/internal/models"
)

// defaultTake applies when a list request has no take parameter.
const defaultTake = 50

var errBadParam = errors.New("bad query parameter")

// CustomerService backs /api/dashboard and /api/customers.
type CustomerService interface {
	dashboard.CustomerService
	List(ctx context.Context, req data.Request) ([]models.Customer, error)
}

// OrderService backs /api/dashboard and /api/orders.
type OrderService interface {
	dashboard.OrderService
	List(ctx context.Context, req data.Request) ([]models.Order, error)
}

// ProductService backs /api/dashboard and /api/products.
type ProductService interface {
	dashboard.ProductService
	List(ctx context.Context, req data.Request) ([]models.Product, error)
}

// Pinger reports database health; *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Handler holds dependencies for the API endpoints.
type Handler struct {
	Customers CustomerService
	Orders    OrderService
	Products  ProductService
	DB        Pinger
	Log       *zap.Logger
}

// NewHandler constructs a Handler. A nil logger discards logs.
func NewHandler(c CustomerService, o OrderService, p ProductService, db Pinger, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{Customers: c, Orders: o, Products: p, DB: db, Log: logger}
}

type loadError struct {
	Operation string `json:"operation"`
	Error     string `json:"error"`
}

// errorCollector keeps the errors of one dashboard load for the response.
type errorCollector struct {
	errs []loadError
}

func (c *errorCollector) LogError(_, operation string, err error) {
	c.errs = append(c.errs, loadError{Operation: operation, Error: err.Error()})
}

// dashboardResponse mirrors dashboard.Snapshot. Absent lists encode as null.
type dashboardResponse struct {
	State        string            `json:"state"`
	Customers    []models.Customer `json:"customers"`
	TopCustomers []models.Customer `json:"top_customers"`
	Orders       []models.Order    `json:"orders"`
	Products     []models.Product  `json:"products"`
	Errors       []loadError       `json:"errors,omitempty"`
}

// Dashboard handles GET /api/dashboard.
//
// Each request runs a fresh controller load. Failed lists stay null and are
// listed under "errors"; the response is still 200.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	collected := &errorCollector{}
	ctrl := dashboard.New(dashboard.Deps{
		Customers: h.Customers,
		Orders:    h.Orders,
		Products:  h.Products,
		Log:       dashboard.ErrorLoggers{logging.ErrorLog{Logger: h.Log}, collected},
	})
	ctrl.Load(r.Context())

	snap := ctrl.Snapshot()
	writeJSON(w, http.StatusOK, dashboardResponse{
		State:        snap.State.String(),
		Customers:    snap.Customers,
		TopCustomers: snap.TopCustomers,
		Orders:       snap.Orders,
		Products:     snap.Products,
		Errors:       collected.errs,
	})
}

type listResponse[T any] struct {
	Items []T    `json:"items"`
	Skip  int    `json:"skip"`
	Take  int    `json:"take"`
	Sort  string `json:"sort"`
}

// ListCustomers handles GET /api/customers.
func (h *Handler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	serveList(h, w, r, "customers", h.Customers.List)
}

// ListOrders handles GET /api/orders.
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	serveList(h, w, r, "orders", h.Orders.List)
}

// ListProducts handles GET /api/products.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	serveList(h, w, r, "products", h.Products.List)
}

func serveList[T any](h *Handler, w http.ResponseWriter, r *http.Request, name string, list func(context.Context, data.Request) ([]T, error)) {
	req, err := parseRequest(r)
	if err != nil {
		h.writeError(w, name, err)
		return
	}
	items, err := list(r.Context(), req)
	if err != nil {
		h.writeError(w, name, err)
		return
	}
	if items == nil {
		items = []T{}
	}
	writeJSON(w, http.StatusOK, listResponse[T]{Items: items, Skip: req.Skip, Take: req.Take, Sort: req.Sort.String()})
}

// parseRequest reads skip, take, sort, desc and q. Range checks are left to the services.
func parseRequest(r *http.Request) (data.Request, error) {
	q := r.URL.Query()
	req := data.Request{Take: defaultTake, Query: q.Get("q")}

	var err error
	if s := q.Get("skip"); s != "" {
		if req.Skip, err = strconv.Atoi(s); err != nil {
			return data.Request{}, fmt.Errorf("%w: skip %q", errBadParam, s)
		}
	}
	if s := q.Get("take"); s != "" {
		if req.Take, err = strconv.Atoi(s); err != nil {
			return data.Request{}, fmt.Errorf("%w: take %q", errBadParam, s)
		}
	}
	if key := q.Get("sort"); key != "" {
		req.Sort.Key = data.SortKey(key)
		if s := q.Get("desc"); s != "" {
			if req.Sort.Descending, err = strconv.ParseBool(s); err != nil {
				return data.Request{}, fmt.Errorf("%w: desc %q", errBadParam, s)
			}
		}
	}
	return req, nil
}

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Error    string `json:"error,omitempty"`
}

// Health handles GET /healthz: 200 when the database answers a ping, 503 otherwise.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok", Database: "connected"}
	if h.DB != nil {
		if err := h.DB.PingContext(r.Context()); err != nil {
			h.Log.Error("health-check: ping failed", zap.Error(err))
			resp.Status = "error"
			resp.Database = "disconnected"
			resp.Error = err.Error()
			writeJSON(w, http.StatusServiceUnavailable, resp)
			return
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

type errorResponse struct {
	Error string `json:"error"`
}

// statusFor maps caller mistakes to 400 and everything else to 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errBadParam),
		errors.Is(err, data.ErrInvalidPaging),
		errors.Is(err, data.ErrUnknownSortKey):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) writeError(w http.ResponseWriter, name string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.Log.Error("list failed", zap.String("list", name), zap.Error(err))
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
