package itinerary

import (
	"github.com/explore-flights/multimodal/api/business/timetable"
	"github.com/explore-flights/multimodal/common"
	"github.com/explore-flights/multimodal/common/xtime"
)

type Kind string

const (
	KindMultimodal Kind = "multimodal"
	KindFlightOnly Kind = "flight_only"
)

type SegmentType string

const (
	SegmentFlight SegmentType = "flight"
	SegmentGround SegmentType = "ground"
)

const (
	ProviderFlights = "s7"
	ProviderGround  = "gars"
)

type Request struct {
	Origin        string
	Destination   string
	DepartureDate string
	ReturnDate    string
}

type Segment struct {
	Type        SegmentType
	Provider    string
	Origin      string
	Destination string
	Route       *common.RouteDescriptor
	Flights     []common.FlightOption
	Ground      []timetable.Option
}

type DirectionalLeg struct {
	Date     xtime.LocalDate
	Segments []*Segment
}

type Itinerary struct {
	Kind          Kind
	Origin        string
	Destination   string
	DepartureDate xtime.LocalDate
	ReturnDate    *xtime.LocalDate
	Outbound      DirectionalLeg
	Return        *DirectionalLeg
}

// Hub is the city every ground connection starts or ends at.
// Aliases are tried in order when matching route descriptions.
type Hub struct {
	Name    string
	Aliases []string
}

var DefaultHub = Hub{
	Name:    "Якутск",
	Aliases: []string{"Якутск Автовокзал", "Якутск"},
}

func (h Hub) Is(place string) bool {
	if common.SamePlace(place, h.Name) {
		return true
	}

	for _, alias := range h.Aliases {
		if common.SamePlace(place, alias) {
			return true
		}
	}

	return false
}
