package gars

import (
	"fmt"
	"strconv"

	"github.com/explore-flights/multimodal/common"
)

// Record is one loosely typed OData row.
type Record map[string]any

const (
	fieldRefKey         = "Ref_Key"
	fieldCode           = "Code"
	fieldDescription    = "Description"
	fieldRouteKey       = "Маршрут_Key"
	fieldRecurrenceType = "РегулярностьТип"
	fieldRecurrenceDays = "РегулярностьДниИЧисла"
	fieldDeparture      = "ВремяОтправления"
	fieldArrival        = "ВремяПрибытия"
)

func (r Record) String(field string) string {
	switch v := r[field].(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}

func MapRoute(r Record) common.RouteDescriptor {
	return common.RouteDescriptor{
		Id:          r.String(fieldRefKey),
		Code:        r.String(fieldCode),
		Description: r.String(fieldDescription),
		Attributes:  r,
	}
}

func MapTimetableEntry(r Record) common.TimetableEntry {
	return common.TimetableEntry{
		Id:             r.String(fieldRefKey),
		RouteId:        r.String(fieldRouteKey),
		Description:    r.String(fieldDescription),
		RecurrenceType: r.String(fieldRecurrenceType),
		RecurrenceDays: r.String(fieldRecurrenceDays),
		DepartureRaw:   r.String(fieldDeparture),
		ArrivalRaw:     r.String(fieldArrival),
		Attributes:     r,
	}
}
