package domain

// Entity - тип сущности, которую нормализует API
type Entity string

const (
	EntityStates         Entity = "states"
	EntityDepartments    Entity = "departments"
	EntityMunicipalities Entity = "municipalities"
	EntityLocalities     Entity = "localities"
	EntityStreets        Entity = "streets"
	EntityAddresses      Entity = "addresses"
	EntityPlaces         Entity = "places"
)

// Client-facing field and parameter names
const (
	FieldID           = "id"
	FieldName         = "name"
	FieldState        = "state"
	FieldDepartment   = "department"
	FieldMunicipality = "municipality"
	FieldLat          = "lat"
	FieldLon          = "lon"
	FieldRoadType     = "road_type"
	FieldNumber       = "number"
	FieldStartLeft    = "start_left"
	FieldEndLeft      = "end_left"
	FieldStartRight   = "start_right"
	FieldEndRight     = "end_right"

	ParamExact   = "exact"
	ParamOrder   = "order"
	ParamFields  = "fields"
	ParamFlatten = "flatten"
	ParamAddress = "address"
)

// Index-facing parameter names
const (
	IndexEntityID = "entity_id"
	IndexRoadName = "road_name"
	IndexNumber   = "number"
)

// Response envelope keys
const (
	ResultsKey = "results"
	ErrorsKey  = "errors"
	PlaceKey   = "place"
)

// String implements fmt.Stringer.
func (e Entity) String() string {
	return string(e)
}

// ResponseKey returns the key that wraps this entity's result in a response envelope.
func (e Entity) ResponseKey() string {
	if e == EntityPlaces {
		return PlaceKey
	}
	return string(e)
}

// IsAdministrative reports whether the entity is one of the administrative divisions.
func (e Entity) IsAdministrative() bool {
	switch e {
	case EntityStates, EntityDepartments, EntityMunicipalities, EntityLocalities:
		return true
	}
	return false
}

// Directives - директивы представления, которые никогда не передаются в индекс
type Directives struct {
	Fields  []string
	Flatten bool
}

// IsEmpty reports whether neither directive is set.
func (d Directives) IsEmpty() bool {
	return len(d.Fields) == 0 && !d.Flatten
}

// ParsedQuery - результат разбора одной записи параметров.
// Params содержит только фильтры; директивы вынесены отдельно.
type ParsedQuery struct {
	Params     map[string]interface{}
	Directives Directives
	Errors     []string
}

// Valid reports whether the parser produced no errors for this record.
func (q ParsedQuery) Valid() bool {
	return len(q.Errors) == 0
}

// IndexQuery - запрос, готовый к отправке в индекс (ключи уже в терминах индекса)
type IndexQuery struct {
	Params map[string]interface{}
	Source []string
}

// PlaceQuery - запрос "сущность, содержащая точку"
type PlaceQuery struct {
	Lat    float64
	Lon    float64
	Source []string
}

var entityFields = map[Entity][]string{
	EntityStates:         {FieldID, FieldName, FieldLat, FieldLon},
	EntityDepartments:    {FieldID, FieldName, FieldLat, FieldLon, FieldState},
	EntityMunicipalities: {FieldID, FieldName, FieldLat, FieldLon, FieldState, FieldDepartment},
	EntityLocalities:     {FieldID, FieldName, FieldLat, FieldLon, FieldState, FieldDepartment, FieldMunicipality},
	EntityStreets: {FieldID, FieldName, FieldRoadType, FieldStartLeft, FieldEndLeft,
		FieldStartRight, FieldEndRight, FieldState, FieldDepartment},
	EntityAddresses: {FieldID, FieldName, FieldRoadType, FieldNumber, FieldLat, FieldLon,
		FieldState, FieldDepartment},
	EntityPlaces: PlaceKeyOrder,
}

// Fields returns the client-facing fields of the entity's result records, in natural order.
func (e Entity) Fields() []string {
	fields := entityFields[e]
	out := make([]string, len(fields))
	copy(out, fields)
	return out
}
