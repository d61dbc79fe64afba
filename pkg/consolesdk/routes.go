package consolesdk

import "net/url"

// Display zones: where a route's link appears in the console chrome.
const (
	ZoneDrawer  = "drawer"
	ZoneToolbar = "toolbar"
	ZoneHidden  = "hidden"
)

// Route is a static descriptor of one navigable path. A nil Roles set means
// the route has no role restriction. Routes are immutable for the process
// lifetime.
type Route struct {
	URL   string
	Title string
	Zone  string
	Roles []string
	Order int
}

// Routes is the console's navigation table, ordered drawer, toolbar, hidden.
// FindRoute matches the first entry whose URL equals the pathname.
var Routes = []Route{
	// Drawer
	{URL: "/dashboard", Title: "Dashboard", Zone: ZoneDrawer, Order: 1},
	{URL: "/quux", Title: "Quux", Zone: ZoneDrawer, Roles: []string{RoleUser, RoleAdmin}, Order: 2},
	{URL: "/users", Title: "Users", Zone: ZoneDrawer, Roles: []string{RoleAdmin}, Order: 3},
	// Toolbar
	{URL: "/account", Title: "Account", Zone: ZoneToolbar, Roles: []string{RoleUser, RoleAdmin}, Order: 1},
	{URL: "/quuz", Title: "Quuz", Zone: ZoneToolbar, Order: 2},
	// Hidden
	{URL: "/change", Title: "Change", Zone: ZoneHidden},
	{URL: "/access", Title: "Access", Zone: ZoneHidden},
	{URL: "/reset", Title: "Reset", Zone: ZoneHidden},
	{URL: "/verify", Title: "Verify", Zone: ZoneHidden},
}

// FindRoute resolves a URL (query string ignored) to its descriptor.
func FindRoute(rawURL string) (Route, bool) {
	pathname := rawURL
	if parsed, err := url.Parse(rawURL); err == nil {
		pathname = parsed.Path
	}

	for _, route := range Routes {
		if route.URL == pathname {
			return route, true
		}
	}
	return Route{}, false
}

// RoutesInZone returns the table entries for one display zone, in table
// order.
func RoutesInZone(zone string) []Route {
	var matched []Route
	for _, route := range Routes {
		if route.Zone == zone {
			matched = append(matched, route)
		}
	}
	return matched
}
