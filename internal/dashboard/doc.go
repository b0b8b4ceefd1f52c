// Package dashboard implements the dashboard controller: it loads the four capped
// preview lists (recent customers, top customers, recent orders, top products),
// clears them when the dashboard is left, and routes list selections to navigation.
//
// All data access goes through CustomerService, OrderService and ProductService.
// Status and error reporting go through StatusReporter and ErrorLogger, navigation
// through Navigator. Any of the reporting collaborators may be nil.
//
//	c := dashboard.New(dashboard.Deps{
//	    Customers: customerSvc,
//	    Orders:    orderSvc,
//	    Products:  productSvc,
//	    Navigator: nav,
//	})
//	c.Load(ctx)
//	snap := c.Snapshot()
package dashboard
