package model

import (
	"github.com/explore-flights/multimodal/api/business/itinerary"
	"github.com/explore-flights/multimodal/api/business/timetable"
	"github.com/explore-flights/multimodal/common"
	"github.com/explore-flights/multimodal/common/xtime"
)

type Itinerary struct {
	Type          string           `json:"type"`
	Origin        string           `json:"origin"`
	Destination   string           `json:"destination"`
	DepartureDate xtime.LocalDate  `json:"departureDate"`
	ReturnDate    *xtime.LocalDate `json:"returnDate"`
	Outbound      DirectionalLeg   `json:"outbound"`
	Return        *DirectionalLeg  `json:"return"`
}

type DirectionalLeg struct {
	Date     xtime.LocalDate `json:"date"`
	Segments []Segment       `json:"segments"`
}

// Segment carries flight options for flight segments and ground options for ground segments.
type Segment struct {
	SegmentType string                  `json:"segmentType"`
	Provider    string                  `json:"provider"`
	Origin      string                  `json:"origin"`
	Destination string                  `json:"destination"`
	Route       *common.RouteDescriptor `json:"route,omitempty"`
	Options     any                     `json:"options"`
}

type GroundOption struct {
	Timetable   common.TimetableEntry `json:"timetable"`
	DepartureAt *xtime.LocalDateTime  `json:"departureAt"`
	ArrivalAt   *xtime.LocalDateTime  `json:"arrivalAt"`
}

func ItineraryFromBusiness(itin itinerary.Itinerary) Itinerary {
	r := Itinerary{
		Type:          string(itin.Kind),
		Origin:        itin.Origin,
		Destination:   itin.Destination,
		DepartureDate: itin.DepartureDate,
		ReturnDate:    itin.ReturnDate,
		Outbound:      legFromBusiness(itin.Outbound),
	}

	if itin.Return != nil {
		ret := legFromBusiness(*itin.Return)
		r.Return = &ret
	}

	return r
}

func legFromBusiness(leg itinerary.DirectionalLeg) DirectionalLeg {
	segments := make([]Segment, 0, len(leg.Segments))
	for _, seg := range leg.Segments {
		segments = append(segments, segmentFromBusiness(seg))
	}

	return DirectionalLeg{
		Date:     leg.Date,
		Segments: segments,
	}
}

func segmentFromBusiness(seg *itinerary.Segment) Segment {
	r := Segment{
		SegmentType: string(seg.Type),
		Provider:    seg.Provider,
		Origin:      seg.Origin,
		Destination: seg.Destination,
		Route:       seg.Route,
	}

	switch seg.Type {
	case itinerary.SegmentGround:
		r.Options = GroundOptionsFromBusiness(seg.Ground)

	default:
		r.Options = FlightOptions(seg.Flights)
	}

	return r
}

func GroundOptionsFromBusiness(options []timetable.Option) []GroundOption {
	r := make([]GroundOption, 0, len(options))
	for _, opt := range options {
		r = append(r, GroundOption{
			Timetable:   opt.Entry,
			DepartureAt: opt.DepartureAt,
			ArrivalAt:   opt.ArrivalAt,
		})
	}

	return r
}

func FlightOptions(flights []common.FlightOption) []common.FlightOption {
	if flights == nil {
		return []common.FlightOption{}
	}

	return flights
}
