package web

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/explore-flights/multimodal/api/business/itinerary"
	"github.com/explore-flights/multimodal/api/web/model"
	"github.com/labstack/echo/v4"
)

type itineraryComposer interface {
	Compose(ctx context.Context, req itinerary.Request) (itinerary.Itinerary, error)
}

type ItineraryQuery struct {
	Origin        string `query:"origin" validate:"required"`
	Destination   string `query:"destination" validate:"required"`
	DepartureDate string `query:"departureDate" validate:"required"`
	ReturnDate    string `query:"returnDate"`
}

type ItineraryHandler struct {
	composer itineraryComposer
	render   func(ctx context.Context, w io.Writer, itin itinerary.Itinerary) error
}

func NewItineraryHandler(composer itineraryComposer) *ItineraryHandler {
	return &ItineraryHandler{
		composer: composer,
		render:   itinerary.ExportImage,
	}
}

func (ih *ItineraryHandler) JSON(c echo.Context) error {
	itin, err := ih.compose(c)
	if err != nil {
		return err
	}

	addExpirationHeaders(c, time.Now(), time.Minute*15)
	return c.JSON(http.StatusOK, model.ItineraryFromBusiness(itin))
}

func (ih *ItineraryHandler) PNG(c echo.Context) error {
	itin, err := ih.compose(c)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err = ih.render(c.Request().Context(), &buf, itin); err != nil {
		return NewHTTPError(http.StatusInternalServerError, WithCause(err))
	}

	addExpirationHeaders(c, time.Now(), time.Minute*15)
	return c.Blob(http.StatusOK, "image/png", buf.Bytes())
}

func (ih *ItineraryHandler) compose(c echo.Context) (itinerary.Itinerary, error) {
	var q ItineraryQuery
	if err := c.Bind(&q); err != nil {
		return itinerary.Itinerary{}, NewHTTPError(http.StatusBadRequest, WithCause(err))
	}

	if err := c.Validate(&q); err != nil {
		return itinerary.Itinerary{}, err
	}

	return ih.composer.Compose(c.Request().Context(), itinerary.Request{
		Origin:        q.Origin,
		Destination:   q.Destination,
		DepartureDate: q.DepartureDate,
		ReturnDate:    q.ReturnDate,
	})
}
