package itinerary

import (
	"context"
	"log/slog"
	"strings"

	"github.com/explore-flights/multimodal/api/business/routes"
	"github.com/explore-flights/multimodal/api/business/timetable"
	"github.com/explore-flights/multimodal/common"
	"github.com/explore-flights/multimodal/common/xtime"
	"golang.org/x/sync/errgroup"
)

const catalogUpstream = "schedule catalog"

type RouteCatalog interface {
	Routes(ctx context.Context) ([]common.RouteDescriptor, error)
	Timetables(ctx context.Context, routeId string) ([]common.TimetableEntry, error)
}

type FlightSource interface {
	Flights(ctx context.Context, q common.FlightQuery) ([]common.FlightOption, error)
}

type Composer struct {
	catalog RouteCatalog
	flights FlightSource
	matcher routes.Matcher
	hub     Hub
}

type ComposerOption func(c *Composer)

func WithMatcher(m routes.Matcher) ComposerOption {
	return func(c *Composer) {
		c.matcher = m
	}
}

func WithHub(hub Hub) ComposerOption {
	return func(c *Composer) {
		c.hub = hub
	}
}

func NewComposer(catalog RouteCatalog, flights FlightSource, opts ...ComposerOption) *Composer {
	c := &Composer{
		catalog: catalog,
		flights: flights,
		matcher: routes.SubstringMatcher{},
		hub:     DefaultHub,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

type parsedRequest struct {
	origin        string
	destination   string
	departureDate xtime.LocalDate
	returnDate    *xtime.LocalDate
}

func (c *Composer) Compose(ctx context.Context, req Request) (Itinerary, error) {
	pr, err := parseRequest(req)
	if err != nil {
		return Itinerary{}, err
	}

	// a destination at the hub matches every hub route, it is served by air only
	viaHub := !c.hub.Is(pr.destination)
	if !viaHub && c.hub.Is(pr.origin) {
		return Itinerary{}, &ClientInputError{Field: "destination", Msg: "unsupported when origin is also the hub"}
	}

	var catalogRoutes []common.RouteDescriptor
	var outRoute common.RouteDescriptor
	var multimodal bool
	if viaHub {
		if catalogRoutes, err = c.catalog.Routes(ctx); err != nil {
			return Itinerary{}, &UpstreamUnavailableError{Upstream: catalogUpstream, Cause: err}
		}

		if outRoute, multimodal, err = c.resolve(catalogRoutes, pr.destination, true); err != nil {
			return Itinerary{}, err
		}
	}

	itin := Itinerary{
		Kind:          KindFlightOnly,
		Origin:        pr.origin,
		Destination:   pr.destination,
		DepartureDate: pr.departureDate,
		ReturnDate:    pr.returnDate,
		Outbound:      DirectionalLeg{Date: pr.departureDate},
	}

	if multimodal {
		itin.Kind = KindMultimodal
		itin.Outbound.Segments = c.multimodalOutbound(pr, outRoute)
	} else {
		itin.Outbound.Segments = []*Segment{flightSegment(pr.origin, pr.destination)}
	}

	if pr.returnDate != nil {
		itin.Return = &DirectionalLeg{Date: *pr.returnDate}

		if multimodal {
			// the catalog is not symmetric, the way back is looked up on its own
			retRoute, retFound, err := c.resolve(catalogRoutes, pr.destination, false)
			if err != nil {
				return Itinerary{}, err
			}

			var route *common.RouteDescriptor
			if retFound {
				route = &retRoute
			}

			itin.Return.Segments = c.multimodalReturn(pr, route)
		} else {
			itin.Return.Segments = []*Segment{flightSegment(pr.destination, pr.origin)}
		}
	}

	if err = c.fill(ctx, &itin); err != nil {
		return Itinerary{}, err
	}

	return itin, nil
}

func (c *Composer) multimodalOutbound(pr parsedRequest, route common.RouteDescriptor) []*Segment {
	segments := make([]*Segment, 0, 2)
	if !c.hub.Is(pr.origin) {
		segments = append(segments, flightSegment(pr.origin, c.hub.Name))
	}

	return append(segments, groundSegment(c.hub.Name, pr.destination, route))
}

// multimodalReturn keeps the ground segment without a route when the way back is not in the catalog.
func (c *Composer) multimodalReturn(pr parsedRequest, route *common.RouteDescriptor) []*Segment {
	segments := []*Segment{{
		Type:        SegmentGround,
		Provider:    ProviderGround,
		Origin:      pr.destination,
		Destination: c.hub.Name,
		Route:       route,
	}}

	if !c.hub.Is(pr.origin) {
		segments = append(segments, flightSegment(c.hub.Name, pr.origin))
	}

	return segments
}

// resolve finds the ground route between the hub and destination, trying each hub alias in order.
func (c *Composer) resolve(catalogRoutes []common.RouteDescriptor, destination string, fromHub bool) (common.RouteDescriptor, bool, error) {
	dest := common.NormalizePlace(destination)

	for _, alias := range c.hub.Aliases {
		a, b := common.NormalizePlace(alias), dest
		if !fromHub {
			a, b = b, a
		}

		route, ok := routes.FindConnectingRoute(catalogRoutes, a, b, c.matcher)
		if !ok {
			continue
		}

		if strings.TrimSpace(route.Id) == "" {
			slog.Error(
				"matched catalog route has no identifier",
				slog.String("description", route.Description),
				slog.String("code", route.Code),
			)

			return common.RouteDescriptor{}, false, &DataInconsistencyError{Msg: "route " + route.Description + " has no identifier"}
		}

		return route, true, nil
	}

	return common.RouteDescriptor{}, false, nil
}

// fill runs all flight searches and timetable lookups of the itinerary concurrently.
func (c *Composer) fill(ctx context.Context, itin *Itinerary) error {
	g, ctx := errgroup.WithContext(ctx)

	schedule := func(leg *DirectionalLeg) {
		for _, seg := range leg.Segments {
			date := leg.Date

			switch seg.Type {
			case SegmentFlight:
				g.Go(func() error {
					flights, err := c.flights.Flights(ctx, common.FlightQuery{
						Origin:      seg.Origin,
						Destination: seg.Destination,
						Date:        date,
					})

					if err != nil {
						return err
					}

					seg.Flights = flights
					return nil
				})

			case SegmentGround:
				if seg.Route == nil {
					seg.Ground = []timetable.Option{}
					continue
				}

				g.Go(func() error {
					entries, err := c.catalog.Timetables(ctx, seg.Route.Id)
					if err != nil {
						return &UpstreamUnavailableError{Upstream: catalogUpstream, Cause: err}
					}

					seg.Ground = timetable.Resolve(entries, date)
					return nil
				})
			}
		}
	}

	schedule(&itin.Outbound)
	if itin.Return != nil {
		schedule(itin.Return)
	}

	return g.Wait()
}

func parseRequest(req Request) (parsedRequest, error) {
	pr := parsedRequest{
		origin:      strings.TrimSpace(req.Origin),
		destination: strings.TrimSpace(req.Destination),
	}

	if pr.origin == "" {
		return pr, &ClientInputError{Field: "origin", Msg: "must not be empty"}
	} else if pr.destination == "" {
		return pr, &ClientInputError{Field: "destination", Msg: "must not be empty"}
	} else if common.SamePlace(pr.origin, pr.destination) {
		return pr, &ClientInputError{Field: "destination", Msg: "must differ from origin"}
	}

	var err error
	if pr.departureDate, err = xtime.ParseDottedDate(strings.TrimSpace(req.DepartureDate)); err != nil {
		return pr, &ClientInputError{Field: "departureDate", Msg: "expected DD.MM.YYYY", Cause: err}
	}

	if raw := strings.TrimSpace(req.ReturnDate); raw != "" {
		returnDate, err := xtime.ParseDottedDate(raw)
		if err != nil {
			return pr, &ClientInputError{Field: "returnDate", Msg: "expected DD.MM.YYYY", Cause: err}
		} else if returnDate.Compare(pr.departureDate) < 0 {
			return pr, &ClientInputError{Field: "returnDate", Msg: "must not be before departureDate"}
		}

		pr.returnDate = &returnDate
	}

	return pr, nil
}

func flightSegment(origin, destination string) *Segment {
	return &Segment{
		Type:        SegmentFlight,
		Provider:    ProviderFlights,
		Origin:      origin,
		Destination: destination,
	}
}

func groundSegment(origin, destination string, route common.RouteDescriptor) *Segment {
	return &Segment{
		Type:        SegmentGround,
		Provider:    ProviderGround,
		Origin:      origin,
		Destination: destination,
		Route:       &route,
	}
}
