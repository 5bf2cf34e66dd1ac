package domain

// PlaceKeyOrder is the natural key order of a place record.
var PlaceKeyOrder = []string{FieldState, FieldDepartment, FieldMunicipality, FieldLat, FieldLon}

// Place - результат обратного геокодирования одной точки
type Place struct {
	State        Record
	Department   Record
	Municipality Record
	Lat          float64
	Lon          float64
}

// Record returns the place as an ordered record: state, department, municipality, lat, lon.
func (p Place) Record() Record {
	return NewRecord(
		KV{FieldState, p.State},
		KV{FieldDepartment, p.Department},
		KV{FieldMunicipality, p.Municipality},
		KV{FieldLat, p.Lat},
		KV{FieldLon, p.Lon},
	)
}
