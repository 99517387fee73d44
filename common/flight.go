package common

import (
	"fmt"
	"strings"

	"github.com/explore-flights/multimodal/common/xtime"
)

const TripOneWay = "one-way"

type FlightOption struct {
	FlightNumber  string `json:"flightNumber"`
	Carrier       string `json:"carrier"`
	DepartureTime string `json:"departureTime"`
	ArrivalTime   string `json:"arrivalTime"`
	Price         int    `json:"price"`
	Currency      string `json:"currency"`
	BookingRef    string `json:"bookingRef,omitempty"`
}

// FlightQuery is a one-way search unless ReturnDate is set.
type FlightQuery struct {
	Origin      string           `json:"origin"`
	Destination string           `json:"destination"`
	Date        xtime.LocalDate  `json:"date"`
	ReturnDate  *xtime.LocalDate `json:"returnDate,omitempty"`
}

func (q FlightQuery) RoundTrip() bool {
	return q.ReturnDate != nil
}

// CacheKey identifies the search result for this exact query.
// The last part is the return date of round trips.
func (q FlightQuery) CacheKey() string {
	trip := TripOneWay
	if q.RoundTrip() {
		trip = q.ReturnDate.Dotted()
	}

	return fmt.Sprintf(
		"s7:%s:%s:%s:%s",
		strings.TrimSpace(q.Origin),
		strings.TrimSpace(q.Destination),
		q.Date.Dotted(),
		trip,
	)
}

func (q FlightQuery) String() string {
	if q.RoundTrip() {
		return fmt.Sprintf("%s-%s@%s/%s", q.Origin, q.Destination, q.Date, *q.ReturnDate)
	}

	return fmt.Sprintf("%s-%s@%s", q.Origin, q.Destination, q.Date)
}
