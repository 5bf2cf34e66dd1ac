package domain

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceResolveEvent_Params(t *testing.T) {
	tests := []struct {
		name     string
		event    PlaceResolveEvent
		expected map[string]interface{}
	}{
		{
			name: "coordinates only",
			event: PlaceResolveEvent{
				RequestID: uuid.New(),
				Lat:       floatPtr(-31.4),
				Lon:       floatPtr(-64.18),
			},
			expected: map[string]interface{}{
				FieldLat: -31.4,
				FieldLon: -64.18,
			},
		},
		{
			name: "with directives",
			event: PlaceResolveEvent{
				RequestID: uuid.New(),
				Lat:       floatPtr(-34.6),
				Lon:       floatPtr(-58.4),
				Fields:    []string{"state", "lat"},
				Flatten:   true,
			},
			expected: map[string]interface{}{
				FieldLat:     -34.6,
				FieldLon:     -58.4,
				ParamFields:  []interface{}{"state", "lat"},
				ParamFlatten: true,
			},
		},
		{
			name:     "missing coordinates are left for the parser to reject",
			event:    PlaceResolveEvent{RequestID: uuid.New()},
			expected: map[string]interface{}{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.event.Params())
		})
	}
}

func TestPlaceResolvedEvent_JSON(t *testing.T) {
	id := uuid.New()
	place := Place{
		State:        NewRecord(KV{FieldID, "14"}, KV{FieldName, "Córdoba"}),
		Department:   NewRecord(KV{FieldID, "14014"}, KV{FieldName, "Capital"}),
		Municipality: EmptyEntity(),
		Lat:          -31.4,
		Lon:          -64.18,
	}.Record()

	data, err := json.Marshal(PlaceResolvedEvent{RequestID: id, Place: &place})
	require.NoError(t, err)

	var decoded PlaceResolvedEvent
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, id, decoded.RequestID)
	require.NotNil(t, decoded.Place)
	assert.Equal(t, PlaceKeyOrder, decoded.Place.Keys())
	assert.Empty(t, decoded.Errors)
}

func floatPtr(f float64) *float64 {
	return &f
}
