package params

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-viper/mapstructure/v2"

	"github.com/georef-api/internal/domain"
	"github.com/georef-api/internal/pkg/validator"
)

// Parse decodes and validates every raw record against the schema.
// The result has the same length and order as records; a record that fails
// carries its messages in Errors and should not be sent to the index.
func Parse(records []map[string]interface{}, schema Schema) []domain.ParsedQuery {
	results := make([]domain.ParsedQuery, len(records))
	for i, raw := range records {
		results[i] = parseRecord(raw, schema)
	}
	return results
}

// flagParams are booleans that may be given without a value (?exact).
var flagParams = map[string]bool{
	domain.ParamExact:   true,
	domain.ParamFlatten: true,
}

// FromQueryString turns query-string arguments into a raw record.
// A flag present without a value is true.
func FromQueryString(args map[string]string) map[string]interface{} {
	raw := make(map[string]interface{}, len(args))
	for k, v := range args {
		if v == "" && flagParams[k] {
			v = "true"
		}
		raw[k] = v
	}
	return raw
}

func parseRecord(raw map[string]interface{}, schema Schema) domain.ParsedQuery {
	target := schema.newParams()

	var md mapstructure.Metadata
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Metadata:         &md,
		Result:           target,
		DecodeHook:       fieldListHook,
	})
	if err != nil {
		return domain.ParsedQuery{Errors: []string{err.Error()}}
	}

	var errs []string
	if err := decoder.Decode(raw); err != nil {
		errs = append(errs, decodeMessages(err)...)
	}

	unused := md.Unused
	sort.Strings(unused)
	for _, key := range unused {
		errs = append(errs, fmt.Sprintf("unknown parameter: %s", key))
	}

	pres := target.presentation()
	pres.Fields = cleanFields(pres.Fields)
	errs = append(errs, checkFields(pres.Fields, schema.Entity)...)

	if len(errs) == 0 {
		errs = validator.Translate(validator.Validate(target))
	}

	if len(errs) > 0 {
		return domain.ParsedQuery{Errors: errs}
	}

	return domain.ParsedQuery{
		Params: target.filters(),
		Directives: domain.Directives{
			Fields:  pres.Fields,
			Flatten: pres.Flatten,
		},
	}
}

// fieldListHook accepts "id, name" as well as ["id", "name"] for string slices.
func fieldListHook(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	if from.Kind() != reflect.String || to != reflect.TypeOf([]string{}) {
		return data, nil
	}
	s := data.(string)
	if s == "" {
		return []string{}, nil
	}
	return strings.Split(s, ","), nil
}

func cleanFields(fields []string) []string {
	if len(fields) == 0 {
		return nil
	}
	out := make([]string, 0, len(fields))
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}

func checkFields(fields []string, entity domain.Entity) []string {
	if len(fields) == 0 {
		return nil
	}
	allowed := make(map[string]bool)
	for _, f := range entity.Fields() {
		allowed[f] = true
	}

	var errs []string
	for _, f := range fields {
		if !allowed[f] {
			errs = append(errs, fmt.Sprintf("fields: unknown field %q for %s", f, entity))
		}
	}
	return errs
}

func decodeMessages(err error) []string {
	var out []string
	for _, line := range strings.Split(err.Error(), "\n") {
		line = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "*"))
		if line == "" || strings.HasSuffix(line, "error(s) decoding:") || strings.HasPrefix(line, "decoding failed due to") {
			continue
		}
		out = append(out, line)
	}
	if len(out) == 0 {
		out = append(out, err.Error())
	}
	return out
}
