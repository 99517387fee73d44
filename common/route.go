package common

type RouteDescriptor struct {
	Id          string         `json:"id"`
	Code        string         `json:"code,omitempty"`
	Description string         `json:"description"`
	Attributes  map[string]any `json:"attributes,omitempty"`
}

const RecurrenceDaysOfMonth = "ЧислаМесяца"

type TimetableEntry struct {
	Id             string         `json:"id"`
	RouteId        string         `json:"routeId"`
	Description    string         `json:"description,omitempty"`
	RecurrenceType string         `json:"recurrenceType,omitempty"`
	RecurrenceDays string         `json:"recurrenceDays,omitempty"`
	DepartureRaw   string         `json:"departureTime,omitempty"`
	ArrivalRaw     string         `json:"arrivalTime,omitempty"`
	Attributes     map[string]any `json:"attributes,omitempty"`
}
