// Package dashboard holds the role-specific controllers: they compose the
// catalog and the managers, own the transient view state (active section,
// search term, edit target) and translate failures into notices or a
// re-login redirect.
package dashboard

import (
	"github.com/asaskevich/EventBus"

	"github.com/talkincode/brewhub/internal/events"
)

// Routes the controllers navigate between.
const (
	RouteLogin          = "/login"
	RouteAdminLogin     = "/admin"
	RouteSignup         = "/signup"
	RouteUserDashboard  = "/user-dashboard"
	RouteAdminDashboard = "/admin-dashboard"
	RouteCart           = "/cart"
	RouteHistory        = "/history"
)

// Navigator moves the UI to another route. The shell (CLI, web view)
// provides it; controllers never render anything themselves.
type Navigator interface {
	Navigate(route string)
}

// NavigatorFunc adapts a function to the Navigator interface.
type NavigatorFunc func(route string)

func (f NavigatorFunc) Navigate(route string) { f(route) }

// notify publishes a user-visible notice on the bus. Failures are notices,
// never popups chained off each other.
func notify(bus EventBus.Bus, msg string) {
	if bus != nil {
		bus.Publish(events.TopicNotice, msg)
	}
}
