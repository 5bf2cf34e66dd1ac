package domain

import "github.com/google/uuid"

// Stream names
const (
	StreamPlaceResolve  = "stream:place:resolve"
	StreamPlaceResolved = "stream:place:resolved"
)

// PlaceResolveEvent - входящее событие на обратное геокодирование точки
type PlaceResolveEvent struct {
	RequestID uuid.UUID `json:"request_id"`
	Lat       *float64  `json:"lat"`
	Lon       *float64  `json:"lon"`
	Fields    []string  `json:"fields,omitempty"`
	Flatten   bool      `json:"flatten,omitempty"`
}

// Params returns the event as a raw parameter record, the same shape a batch request carries.
func (e *PlaceResolveEvent) Params() map[string]interface{} {
	params := make(map[string]interface{}, 4)
	if e.Lat != nil {
		params[FieldLat] = *e.Lat
	}
	if e.Lon != nil {
		params[FieldLon] = *e.Lon
	}
	if len(e.Fields) > 0 {
		fields := make([]interface{}, len(e.Fields))
		for i, f := range e.Fields {
			fields[i] = f
		}
		params[ParamFields] = fields
	}
	if e.Flatten {
		params[ParamFlatten] = true
	}
	return params
}

// PlaceResolvedEvent - результат обратного геокодирования
type PlaceResolvedEvent struct {
	RequestID uuid.UUID `json:"request_id"`
	Place     *Record   `json:"place,omitempty"`
	Errors    []string  `json:"errors,omitempty"`
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}
