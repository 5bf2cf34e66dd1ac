package params

import (
	"github.com/georef-api/internal/domain"
)

// Schema describes the parameters one endpoint recognizes.
type Schema struct {
	Entity    domain.Entity
	newParams func() Params
}

// Params is implemented by every per-entity parameter struct.
type Params interface {
	presentation() *Presentation
	filters() map[string]interface{}
}

// Presentation holds the directives that shape the response and never reach the index.
type Presentation struct {
	Fields  []string `json:"fields"`
	Flatten bool     `json:"flatten"`
}

func (p *Presentation) presentation() *Presentation { return p }

var (
	States         = Schema{Entity: domain.EntityStates, newParams: func() Params { return &StateParams{} }}
	Departments    = Schema{Entity: domain.EntityDepartments, newParams: func() Params { return &DepartmentParams{} }}
	Municipalities = Schema{Entity: domain.EntityMunicipalities, newParams: func() Params { return &MunicipalityParams{} }}
	Localities     = Schema{Entity: domain.EntityLocalities, newParams: func() Params { return &LocalityParams{} }}
	Streets        = Schema{Entity: domain.EntityStreets, newParams: func() Params { return &StreetParams{} }}
	Addresses      = Schema{Entity: domain.EntityAddresses, newParams: func() Params { return &AddressParams{} }}
	Places         = Schema{Entity: domain.EntityPlaces, newParams: func() Params { return &PlaceParams{} }}
)

type StateParams struct {
	Presentation `json:",squash"`
	ID           string `json:"id" validate:"omitempty,numeric,max=10"`
	Name         string `json:"name" validate:"omitempty,max=200"`
	Exact        bool   `json:"exact"`
	Order        string `json:"order" validate:"omitempty,oneof=id name"`
}

func (p *StateParams) filters() map[string]interface{} {
	m := make(map[string]interface{})
	setString(m, domain.FieldID, p.ID)
	setString(m, domain.FieldName, p.Name)
	setString(m, domain.ParamOrder, p.Order)
	if p.Exact {
		m[domain.ParamExact] = true
	}
	return m
}

type DepartmentParams struct {
	StateParams `json:",squash"`
	State       string `json:"state" validate:"omitempty,max=200"`
}

func (p *DepartmentParams) filters() map[string]interface{} {
	m := p.StateParams.filters()
	setString(m, domain.FieldState, p.State)
	return m
}

type MunicipalityParams struct {
	DepartmentParams `json:",squash"`
	Department       string `json:"department" validate:"omitempty,max=200"`
}

func (p *MunicipalityParams) filters() map[string]interface{} {
	m := p.DepartmentParams.filters()
	setString(m, domain.FieldDepartment, p.Department)
	return m
}

type LocalityParams struct {
	MunicipalityParams `json:",squash"`
	Municipality       string `json:"municipality" validate:"omitempty,max=200"`
}

func (p *LocalityParams) filters() map[string]interface{} {
	m := p.MunicipalityParams.filters()
	setString(m, domain.FieldMunicipality, p.Municipality)
	return m
}

type StreetParams struct {
	Presentation `json:",squash"`
	Name         string `json:"name" validate:"omitempty,max=200"`
	State        string `json:"state" validate:"omitempty,max=200"`
	Department   string `json:"department" validate:"omitempty,max=200"`
	Exact        bool   `json:"exact"`
	RoadType     string `json:"road_type" validate:"omitempty,max=50"`
}

func (p *StreetParams) filters() map[string]interface{} {
	m := make(map[string]interface{})
	setString(m, domain.FieldName, p.Name)
	setString(m, domain.FieldState, p.State)
	setString(m, domain.FieldDepartment, p.Department)
	setString(m, domain.FieldRoadType, p.RoadType)
	if p.Exact {
		m[domain.ParamExact] = true
	}
	return m
}

// AddressParams keeps "address" as one value; the query builder splits it.
type AddressParams struct {
	Presentation `json:",squash"`
	Address      string `json:"address" validate:"required,max=250,address"`
	State        string `json:"state" validate:"omitempty,max=200"`
	Department   string `json:"department" validate:"omitempty,max=200"`
	Exact        bool   `json:"exact"`
	RoadType     string `json:"road_type" validate:"omitempty,max=50"`
}

func (p *AddressParams) filters() map[string]interface{} {
	m := make(map[string]interface{})
	setString(m, domain.ParamAddress, p.Address)
	setString(m, domain.FieldState, p.State)
	setString(m, domain.FieldDepartment, p.Department)
	setString(m, domain.FieldRoadType, p.RoadType)
	if p.Exact {
		m[domain.ParamExact] = true
	}
	return m
}

type PlaceParams struct {
	Presentation `json:",squash"`
	Lat          *float64 `json:"lat" validate:"required,min=-90,max=90"`
	Lon          *float64 `json:"lon" validate:"required,min=-180,max=180"`
}

func (p *PlaceParams) filters() map[string]interface{} {
	m := make(map[string]interface{}, 2)
	if p.Lat != nil {
		m[domain.FieldLat] = *p.Lat
	}
	if p.Lon != nil {
		m[domain.FieldLon] = *p.Lon
	}
	return m
}

func setString(m map[string]interface{}, key, value string) {
	if value != "" {
		m[key] = value
	}
}
