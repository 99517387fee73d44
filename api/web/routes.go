package web

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/explore-flights/multimodal/api/business/itinerary"
	"github.com/explore-flights/multimodal/api/business/timetable"
	"github.com/explore-flights/multimodal/api/web/model"
	"github.com/explore-flights/multimodal/common"
	"github.com/explore-flights/multimodal/common/xtime"
	"github.com/gofrs/uuid/v5"
	"github.com/labstack/echo/v4"
)

const catalogUpstream = "schedule catalog"

type routeCatalog interface {
	Routes(ctx context.Context) ([]common.RouteDescriptor, error)
	Timetables(ctx context.Context, routeId string) ([]common.TimetableEntry, error)
}

type RoutesHandler struct {
	catalog routeCatalog
}

func NewRoutesHandler(catalog routeCatalog) *RoutesHandler {
	return &RoutesHandler{catalog: catalog}
}

func (rh *RoutesHandler) Routes(c echo.Context) error {
	routes, err := rh.catalog.Routes(c.Request().Context())
	if err != nil {
		return &itinerary.UpstreamUnavailableError{Upstream: catalogUpstream, Cause: err}
	}

	addExpirationHeaders(c, time.Now(), time.Hour)
	return c.JSON(http.StatusOK, routes)
}

// Timetables lists the timetables of a route. With a date query parameter only the
// departures running on that date are returned, anchored to it.
func (rh *RoutesHandler) Timetables(c echo.Context) error {
	routeId, err := uuid.FromString(c.Param("routeId"))
	if err != nil {
		return NewHTTPError(http.StatusBadRequest, WithMessage("routeId must be a GUID"), WithCause(err))
	}

	var date xtime.LocalDate
	if raw := strings.TrimSpace(c.QueryParam("date")); raw != "" {
		if date, err = xtime.ParseDottedDate(raw); err != nil {
			return &itinerary.ClientInputError{Field: "date", Msg: "expected DD.MM.YYYY", Cause: err}
		}
	}

	entries, err := rh.catalog.Timetables(c.Request().Context(), routeId.String())
	if err != nil {
		return &itinerary.UpstreamUnavailableError{Upstream: catalogUpstream, Cause: err}
	}

	addExpirationHeaders(c, time.Now(), time.Minute*30)

	if date.IsZero() {
		return c.JSON(http.StatusOK, entries)
	}

	return c.JSON(http.StatusOK, model.GroundOptionsFromBusiness(timetable.Resolve(entries, date)))
}
