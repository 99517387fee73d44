package routes

import "github.com/explore-flights/multimodal/common"

// FindConnectingRoute returns the first route in catalog order whose description connects a and b.
func FindConnectingRoute(routes []common.RouteDescriptor, a, b string, m Matcher) (common.RouteDescriptor, bool) {
	for _, r := range routes {
		if m.Match(r.Description, a, b) {
			return r, true
		}
	}

	return common.RouteDescriptor{}, false
}
