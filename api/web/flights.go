package web

import (
	"context"
	"net/http"
	"time"

	"github.com/explore-flights/multimodal/api/business/itinerary"
	"github.com/explore-flights/multimodal/api/web/model"
	"github.com/explore-flights/multimodal/common"
	"github.com/explore-flights/multimodal/common/xtime"
	"github.com/labstack/echo/v4"
)

type flightSource interface {
	Flights(ctx context.Context, q common.FlightQuery) ([]common.FlightOption, error)
}

type FlightSearchRequest struct {
	Origin      string `json:"origin" validate:"required"`
	Destination string `json:"destination" validate:"required"`
	DateOut     string `json:"dateOut" validate:"required"`
	DateBack    string `json:"dateBack,omitempty"`
}

type FlightsHandler struct {
	flights flightSource
}

func NewFlightsHandler(flights flightSource) *FlightsHandler {
	return &FlightsHandler{flights: flights}
}

func (fh *FlightsHandler) Search(c echo.Context) error {
	var req FlightSearchRequest
	if err := c.Bind(&req); err != nil {
		return NewHTTPError(http.StatusBadRequest, WithCause(err))
	}

	if err := c.Validate(&req); err != nil {
		return err
	}

	date, err := xtime.ParseDottedDate(req.DateOut)
	if err != nil {
		return &itinerary.ClientInputError{Field: "dateOut", Msg: "expected DD.MM.YYYY", Cause: err}
	}

	q := common.FlightQuery{
		Origin:      req.Origin,
		Destination: req.Destination,
		Date:        date,
	}

	if req.DateBack != "" {
		back, err := xtime.ParseDottedDate(req.DateBack)
		if err != nil {
			return &itinerary.ClientInputError{Field: "dateBack", Msg: "expected DD.MM.YYYY", Cause: err}
		} else if back.Compare(date) < 0 {
			return &itinerary.ClientInputError{Field: "dateBack", Msg: "must not be before dateOut"}
		}

		q.ReturnDate = &back
	}

	flights, err := fh.flights.Flights(c.Request().Context(), q)

	if err != nil {
		return err
	}

	addExpirationHeaders(c, time.Now(), time.Minute*15)
	return c.JSON(http.StatusOK, model.FlightOptions(flights))
}
