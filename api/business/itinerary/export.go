package itinerary

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/explore-flights/multimodal/common"
	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"
)

// ExportImage renders the itinerary as a graph of places joined by its segments.
func ExportImage(ctx context.Context, w io.Writer, itin Itinerary) error {
	g, err := graphviz.New(ctx)
	if err != nil {
		return err
	}
	defer g.Close()

	graph, err := g.Graph()
	if err != nil {
		return err
	}

	lookup := make(map[string]*cgraph.Node)
	if err = buildGraph(graph, itin.Outbound, lookup); err != nil {
		return err
	}

	if itin.Return != nil {
		if err = buildGraph(graph, *itin.Return, lookup); err != nil {
			return err
		}
	}

	return g.Render(ctx, graph, graphviz.PNG, w)
}

func buildGraph(graph *cgraph.Graph, leg DirectionalLeg, lookup map[string]*cgraph.Node) error {
	for _, seg := range leg.Segments {
		from, err := placeNode(graph, seg.Origin, lookup)
		if err != nil {
			return err
		}

		to, err := placeNode(graph, seg.Destination, lookup)
		if err != nil {
			return err
		}

		edge, err := graph.CreateEdgeByName("", from, to)
		if err != nil {
			return err
		}

		edge.SetLabel(segmentLabel(leg, seg))
	}

	return nil
}

func placeNode(graph *cgraph.Graph, place string, lookup map[string]*cgraph.Node) (*cgraph.Node, error) {
	key := strings.ToLower(place)
	if node, ok := lookup[key]; ok {
		return node, nil
	}

	node, err := graph.CreateNodeByName(key)
	if err != nil {
		return nil, err
	}

	node.SetLabel(place)
	lookup[key] = node

	return node, nil
}

func segmentLabel(leg DirectionalLeg, seg *Segment) string {
	switch seg.Type {
	case SegmentGround:
		label := fmt.Sprintf("%s %s\n%d departures", seg.Provider, leg.Date.Dotted(), len(seg.Ground))
		if seg.Route != nil && seg.Route.Code != "" {
			label += "\nroute " + seg.Route.Code
		}

		return label

	default:
		label := fmt.Sprintf("%s %s\n%d flights", seg.Provider, leg.Date.Dotted(), len(seg.Flights))
		if cheapest, ok := cheapestFlight(seg); ok {
			label += fmt.Sprintf("\nfrom %d %s", cheapest.Price, cheapest.Currency)
		}

		return label
	}
}

func cheapestFlight(seg *Segment) (cheapest common.FlightOption, ok bool) {
	for _, f := range seg.Flights {
		if f.Price > 0 && (!ok || f.Price < cheapest.Price) {
			cheapest, ok = f, true
		}
	}

	return cheapest, ok
}
