package usecase

import (
	"github.com/georef-api/internal/domain"
)

// KeyTable maps client-facing names to index-facing names.
type KeyTable map[string]string

var (
	stateKeys = KeyTable{
		domain.FieldID:     domain.IndexEntityID,
		domain.FieldName:   domain.FieldName,
		domain.ParamExact:  domain.ParamExact,
		domain.ParamOrder:  domain.ParamOrder,
		domain.ParamFields: domain.ParamFields,
	}
	departmentKeys   = extend(stateKeys, domain.FieldState)
	municipalityKeys = extend(departmentKeys, domain.FieldDepartment)
	localityKeys     = extend(municipalityKeys, domain.FieldMunicipality)

	streetKeys = KeyTable{
		domain.FieldName:       domain.IndexRoadName,
		domain.FieldState:      domain.FieldState,
		domain.FieldDepartment: domain.FieldDepartment,
		domain.ParamExact:      domain.ParamExact,
		domain.ParamFields:     domain.ParamFields,
		domain.FieldRoadType:   domain.FieldRoadType,
	}

	// road_name and number come out of the address split already in index terms.
	addressKeys = KeyTable{
		domain.FieldDepartment: domain.FieldDepartment,
		domain.FieldState:      domain.FieldState,
		domain.ParamExact:      domain.ParamExact,
		domain.ParamFields:     domain.ParamFields,
		domain.FieldRoadType:   domain.FieldRoadType,
	}

	// Source (returned field) names differ from client names only for street-like records.
	streetSourceKeys = KeyTable{
		domain.FieldName: domain.IndexRoadName,
	}
)

func extend(base KeyTable, keys ...string) KeyTable {
	out := make(KeyTable, len(base)+len(keys))
	for k, v := range base {
		out[k] = v
	}
	for _, k := range keys {
		out[k] = k
	}
	return out
}

// QueryKeys returns the parameter translation table of an entity.
func QueryKeys(entity domain.Entity) KeyTable {
	switch entity {
	case domain.EntityStates:
		return stateKeys
	case domain.EntityDepartments:
		return departmentKeys
	case domain.EntityMunicipalities:
		return municipalityKeys
	case domain.EntityLocalities:
		return localityKeys
	case domain.EntityStreets:
		return streetKeys
	case domain.EntityAddresses:
		return addressKeys
	}
	return KeyTable{}
}

// SourceKeys returns the table translating result field names of an entity.
func SourceKeys(entity domain.Entity) KeyTable {
	switch entity {
	case domain.EntityStreets, domain.EntityAddresses:
		return streetSourceKeys
	}
	return KeyTable{}
}

// TranslateKeys returns a new map with every key found in table renamed.
// Keys absent from the table pass through unchanged; m is never modified.
func TranslateKeys(m map[string]interface{}, table KeyTable) map[string]interface{} {
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		if nk, ok := table[k]; ok {
			k = nk
		}
		out[k] = v
	}
	return out
}

// TranslateRecord renames the top-level keys of a record, keeping their positions.
func TranslateRecord(r domain.Record, table KeyTable) domain.Record {
	out := domain.NewRecord()
	for _, k := range r.Keys() {
		v, _ := r.Get(k)
		if nk, ok := table[k]; ok {
			k = nk
		}
		out.Set(k, v)
	}
	return out
}

// TranslateFields translates a list of field names.
func TranslateFields(fields []string, table KeyTable) []string {
	if len(fields) == 0 {
		return nil
	}
	out := make([]string, len(fields))
	for i, f := range fields {
		if nf, ok := table[f]; ok {
			f = nf
		}
		out[i] = f
	}
	return out
}

// Invert returns the reverse table (index name -> client name).
func (t KeyTable) Invert() KeyTable {
	out := make(KeyTable, len(t))
	for k, v := range t {
		out[v] = k
	}
	return out
}
