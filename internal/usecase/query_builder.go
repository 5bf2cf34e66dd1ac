package usecase

import (
	"fmt"

	"github.com/georef-api/internal/domain"
	"github.com/georef-api/internal/pkg/errors"
	"github.com/georef-api/internal/pkg/utils"
)

// BuildQuery converts one valid parsed query into an index query.
// Directives never reach Params; the requested fields travel as Source in index terms.
func BuildQuery(entity domain.Entity, q domain.ParsedQuery) (domain.IndexQuery, error) {
	params := q.Params
	if entity == domain.EntityAddresses {
		split, err := splitAddress(params)
		if err != nil {
			return domain.IndexQuery{}, err
		}
		params = split
	}

	return domain.IndexQuery{
		Params: TranslateKeys(params, QueryKeys(entity)),
		Source: TranslateFields(q.Directives.Fields, SourceKeys(entity)),
	}, nil
}

// BuildPlaceQuery reads the coordinates of a parsed place query.
func BuildPlaceQuery(q domain.ParsedQuery) (PlaceRequest, error) {
	lat, okLat := q.Params[domain.FieldLat].(float64)
	lon, okLon := q.Params[domain.FieldLon].(float64)
	if !okLat || !okLon || !utils.ValidateCoordinates(lat, lon) {
		return PlaceRequest{}, fmt.Errorf("place query without valid coordinates: %w", errors.ErrInvariantViolation)
	}
	return PlaceRequest{Lat: lat, Lon: lon, Directives: q.Directives}, nil
}

// splitAddress replaces "address" with road_name and number, before key translation.
func splitAddress(params map[string]interface{}) (map[string]interface{}, error) {
	address, _ := params[domain.ParamAddress].(string)
	name, number, ok := utils.SplitAddress(address)
	if !ok {
		// The parser rejects malformed addresses, so reaching this is a defect.
		return nil, fmt.Errorf("unsplittable address %q: %w", address, errors.ErrInvariantViolation)
	}

	out := make(map[string]interface{}, len(params)+1)
	for k, v := range params {
		if k != domain.ParamAddress {
			out[k] = v
		}
	}
	out[domain.IndexRoadName] = name
	out[domain.IndexNumber] = number
	return out, nil
}
