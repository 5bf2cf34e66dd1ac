package usecase

import (
	"github.com/georef-api/internal/domain"
)

// Shape applies the presentation directives to a result record:
// projection first (it works on pre-flatten names), then flatten.
// Without directives the record is returned as is.
func Shape(r domain.Record, d domain.Directives) domain.Record {
	if d.IsEmpty() {
		return r
	}
	out := r
	if len(d.Fields) > 0 {
		out = Project(out, d.Fields)
	}
	if d.Flatten {
		out = Flatten(out)
	}
	return out
}

// ShapeAll shapes every record of a result list.
func ShapeAll(records []domain.Record, d domain.Directives) []domain.Record {
	out := make([]domain.Record, len(records))
	for i, r := range records {
		out[i] = Shape(r, d)
	}
	return out
}

// Project keeps only the requested top-level keys, in the record's own order.
func Project(r domain.Record, fields []string) domain.Record {
	keep := make(map[string]bool, len(fields))
	for _, f := range fields {
		keep[f] = true
	}

	out := domain.NewRecord()
	for _, k := range r.Keys() {
		if keep[k] {
			v, _ := r.Get(k)
			out.Set(k, v)
		}
	}
	return out
}

// Flatten collapses nested records into one level: {"state": {"id": 1}} -> {"state_id": 1}.
func Flatten(r domain.Record) domain.Record {
	out := domain.NewRecord()
	flattenInto(&out, "", r)
	return out
}

func flattenInto(out *domain.Record, prefix string, r domain.Record) {
	for _, k := range r.Keys() {
		v, _ := r.Get(k)
		key := k
		if prefix != "" {
			key = prefix + domain.FlatSeparator + k
		}
		if nested, ok := v.(domain.Record); ok {
			flattenInto(out, key, nested)
			continue
		}
		out.Set(key, v)
	}
}
