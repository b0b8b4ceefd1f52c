package dashboard

import (
	"context"
	"fmt"
	"sync"

	"invdash/internal/data"
	"invdash/internal/models"
)

// PreviewSize caps every dashboard list.
const PreviewSize = 5

// Category and operation labels passed to ErrorLogger.
const (
	Category        = "Dashboard"
	OpLoadCustomers = "Load Customers"
	OpLoadOrders    = "Load Orders"
	OpLoadProducts  = "Load Products"
	StatusLoading   = "Loading dashboard..."
	StatusLoaded    = "Dashboard loaded"
)

// Item names accepted by SelectItem.
const (
	ItemCustomers = "Customers"
	ItemOrders    = "Orders"
	ItemProducts  = "Products"
)

// Preview sorts.
var (
	RecentCustomersSort = data.Desc(data.CustomerCreatedOn)

	// TODO: rank top customers by order count once the customer service can aggregate orders.
	TopCustomersSort = data.Desc(data.CustomerChildrenAtHome)
	RecentOrdersSort = data.Desc(data.OrderDate)
	TopProductsSort  = data.Desc(data.ProductStockUnits)
)

// Navigation sorts used by SelectItem.
var (
	CustomersListSort = data.Desc(data.CustomerCreatedOn)
	OrdersListSort    = data.Desc(data.OrderDate)
	ProductsListSort  = data.Desc(data.ProductListPrice)
)

// State is the controller lifecycle.
type State int

const (
	StateUnloaded State = iota
	StateLoading
	StateLoaded
)

func (s State) String() string {
	switch s {
	case StateUnloaded:
		return "unloaded"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	default:
		return "unknown"
	}
}

// Deps are the controller's collaborators. Status and Log may be nil.
type Deps struct {
	Customers CustomerService
	Orders    OrderService
	Products  ProductService
	Navigator Navigator
	Status    StatusReporter
	Log       ErrorLogger
}

// Snapshot is a point-in-time view of the four lists. A nil list is absent.
// Lists are replaced wholesale on load and must not be modified by callers.
type Snapshot struct {
	State        State
	Customers    []models.Customer
	TopCustomers []models.Customer
	Orders       []models.Order
	Products     []models.Product
}

// Controller owns the dashboard's preview lists.
type Controller struct {
	customers CustomerService
	orders    OrderService
	products  ProductService
	nav       Navigator
	status    StatusReporter
	log       ErrorLogger

	// mu guards the fields below; Load runs off the UI goroutine.
	mu           sync.RWMutex
	state        State
	recent       []models.Customer
	topCustomers []models.Customer
	recentOrders []models.Order
	topProducts  []models.Product
}

// New creates an unloaded controller.
func New(d Deps) *Controller {
	c := &Controller{
		customers: d.Customers,
		orders:    d.Orders,
		products:  d.Products,
		nav:       d.Navigator,
		status:    d.Status,
		log:       d.Log,
	}
	if c.status == nil {
		c.status = nopStatus{}
	}
	if c.log == nil {
		c.log = nopLogger{}
	}
	return c
}

// Load fetches the four lists one after another. A failed fetch is logged and
// leaves its list as it was; Load itself never fails.
func (c *Controller) Load(ctx context.Context) {
	c.setState(StateLoading)
	c.status.StartStatus(StatusLoading)

	load(c, OpLoadCustomers, &c.recent, func() ([]models.Customer, error) {
		return c.customers.GetCustomers(ctx, 0, PreviewSize, RecentCustomersSort)
	})
	load(c, OpLoadCustomers, &c.topCustomers, func() ([]models.Customer, error) {
		return c.customers.GetCustomers(ctx, 0, PreviewSize, TopCustomersSort)
	})
	load(c, OpLoadOrders, &c.recentOrders, func() ([]models.Order, error) {
		return c.orders.GetOrders(ctx, 0, PreviewSize, RecentOrdersSort)
	})
	load(c, OpLoadProducts, &c.topProducts, func() ([]models.Product, error) {
		return c.products.GetProducts(ctx, 0, PreviewSize, TopProductsSort)
	})

	c.status.EndStatus(StatusLoaded)
	c.setState(StateLoaded)
}

func load[T any](c *Controller, op string, dst *[]T, fetch func() ([]T, error)) {
	list, err := safeFetch(fetch)
	if err != nil {
		c.log.LogError(Category, op, err)
		return
	}
	if list == nil {
		list = []T{}
	}
	c.mu.Lock()
	*dst = list
	c.mu.Unlock()
}

// safeFetch turns a panicking fetch into an error so the remaining lists still load.
func safeFetch[T any](fetch func() ([]T, error)) (list []T, err error) {
	defer func() {
		if r := recover(); r != nil {
			list, err = nil, fmt.Errorf("panic: %v", r)
		}
	}()
	return fetch()
}

// Unload drops all four lists.
func (c *Controller) Unload() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.recent = nil
	c.topCustomers = nil
	c.recentOrders = nil
	c.topProducts = nil
	c.state = StateUnloaded
}

// SelectItem navigates to the list view for item. Unknown items do nothing.
// It reports whether navigation happened.
func (c *Controller) SelectItem(item string) bool {
	var (
		target ListTarget
		args   ListArgs
	)
	switch item {
	case ItemCustomers:
		target, args = TargetCustomers, ListArgs{Sort: CustomersListSort}
	case ItemOrders:
		target, args = TargetOrders, ListArgs{Sort: OrdersListSort}
	case ItemProducts:
		target, args = TargetProducts, ListArgs{Sort: ProductsListSort}
	default:
		return false
	}
	if c.nav == nil {
		return false
	}
	c.nav.Navigate(target, args)
	return true
}

func (c *Controller) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

// State returns the lifecycle state.
func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Customers returns the most recently created customers.
func (c *Controller) Customers() []models.Customer {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.recent
}

// TopCustomers returns the "top" customers preview.
func (c *Controller) TopCustomers() []models.Customer {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.topCustomers
}

// Orders returns the most recent orders.
func (c *Controller) Orders() []models.Order {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.recentOrders
}

// Products returns the best-stocked products.
func (c *Controller) Products() []models.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.topProducts
}

// Snapshot returns all four lists under one lock.
func (c *Controller) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Snapshot{
		State:        c.state,
		Customers:    c.recent,
		TopCustomers: c.topCustomers,
		Orders:       c.recentOrders,
		Products:     c.topProducts,
	}
}
