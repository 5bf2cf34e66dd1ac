package postgres

import "github.com/georef-api/internal/domain"

const (
	SRID4326 = 4326

	tableStates         = "states"
	tableDepartments    = "departments"
	tableMunicipalities = "municipalities"
	tableLocalities     = "localities"
	tableStreets        = "streets"
)

// adminTable describes an administrative-division table and the parents it denormalizes.
type adminTable struct {
	name    string
	parents []string
}

var adminTables = map[domain.Entity]adminTable{
	domain.EntityStates:         {name: tableStates},
	domain.EntityDepartments:    {name: tableDepartments, parents: []string{domain.FieldState}},
	domain.EntityMunicipalities: {name: tableMunicipalities, parents: []string{domain.FieldState, domain.FieldDepartment}},
	domain.EntityLocalities: {name: tableLocalities, parents: []string{
		domain.FieldState, domain.FieldDepartment, domain.FieldMunicipality,
	}},
}

// parentTables maps a parent field to the table holding its names.
var parentTables = map[string]string{
	domain.FieldState:        tableStates,
	domain.FieldDepartment:   tableDepartments,
	domain.FieldMunicipality: tableMunicipalities,
}

// allParents is the fixed column layout of entity rows; missing parents are selected as NULL.
var allParents = []string{domain.FieldState, domain.FieldDepartment, domain.FieldMunicipality}
