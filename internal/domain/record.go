package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// FlatSeparator joins parent and child keys when a record is flattened.
const FlatSeparator = "_"

// Record - документ с сохранением порядка ключей.
// JSON-представление выводит ключи в порядке вставки.
type Record struct {
	keys   []string
	values map[string]interface{}
}

// KV - пара ключ/значение для конструктора NewRecord
type KV struct {
	Key   string
	Value interface{}
}

// NewRecord создает Record из пар в заданном порядке
func NewRecord(pairs ...KV) Record {
	r := Record{
		keys:   make([]string, 0, len(pairs)),
		values: make(map[string]interface{}, len(pairs)),
	}
	for _, p := range pairs {
		r.Set(p.Key, p.Value)
	}
	return r
}

// EmptyEntity returns the "no match" sentinel {id: null, name: null}.
func EmptyEntity() Record {
	return NewRecord(KV{FieldID, nil}, KV{FieldName, nil})
}

// IsZero reports whether the record was never populated (no match from the index).
func (r Record) IsZero() bool {
	return len(r.keys) == 0
}

// Len returns the number of keys.
func (r Record) Len() int {
	return len(r.keys)
}

// Keys returns a copy of the keys in insertion order.
func (r Record) Keys() []string {
	keys := make([]string, len(r.keys))
	copy(keys, r.keys)
	return keys
}

// Get returns the value stored under key.
func (r Record) Get(key string) (interface{}, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Has reports whether key is present.
func (r Record) Has(key string) bool {
	_, ok := r.values[key]
	return ok
}

// Set stores value under key. New keys are appended; existing keys keep their position.
func (r *Record) Set(key string, value interface{}) {
	if r.values == nil {
		r.values = make(map[string]interface{})
	}
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// Delete removes key, preserving the order of the remaining keys.
func (r *Record) Delete(key string) {
	if _, ok := r.values[key]; !ok {
		return
	}
	delete(r.values, key)
	for i, k := range r.keys {
		if k == key {
			r.keys = append(r.keys[:i:i], r.keys[i+1:]...)
			break
		}
	}
}

// Pop removes key and returns its value.
func (r *Record) Pop(key string) (interface{}, bool) {
	v, ok := r.values[key]
	if ok {
		r.Delete(key)
	}
	return v, ok
}

// Clone returns a deep copy; nested records are cloned too.
func (r Record) Clone() Record {
	out := Record{
		keys:   make([]string, len(r.keys)),
		values: make(map[string]interface{}, len(r.values)),
	}
	copy(out.keys, r.keys)
	for k, v := range r.values {
		if nested, ok := v.(Record); ok {
			v = nested.Clone()
		}
		out.values[k] = v
	}
	return out
}

// Equal compares keys, order and values.
func (r Record) Equal(other Record) bool {
	a, errA := json.Marshal(r)
	b, errB := json.Marshal(other)
	return errA == nil && errB == nil && bytes.Equal(a, b)
}

// MarshalJSON writes the record as a JSON object in insertion order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(r.values[k])
		if err != nil {
			return nil, fmt.Errorf("marshal field %q: %w", k, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object keeping its key order. Nested objects become Records.
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*r = Record{}
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("record: expected object, got %v", tok)
	}

	out, err := decodeObject(dec)
	if err != nil {
		return err
	}
	*r = out
	return nil
}

func decodeObject(dec *json.Decoder) (Record, error) {
	out := NewRecord()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Record{}, err
		}
		key, ok := tok.(string)
		if !ok {
			return Record{}, fmt.Errorf("record: expected string key, got %v", tok)
		}
		val, err := decodeValue(dec)
		if err != nil {
			return Record{}, err
		}
		out.Set(key, val)
	}
	// closing '}'
	if _, err := dec.Token(); err != nil {
		return Record{}, err
	}
	return out, nil
}

func decodeValue(dec *json.Decoder) (interface{}, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			var list []interface{}
			for dec.More() {
				v, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				list = append(list, v)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return list, nil
		}
		return nil, fmt.Errorf("record: unexpected delimiter %v", t)
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i, nil
		}
		return t.Float64()
	default:
		return t, nil
	}
}
