package cache

import (
	"bytes"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/vmihailenco/msgpack/v5/msgpcode"

	"github.com/georef-api/internal/domain"
)

// Cached index responses are stored as msgpack. Records are written as maps in
// key order and read back as domain.Record, so key order survives the cache.

func encodeHits(hits []domain.Record) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	if err := enc.EncodeArrayLen(len(hits)); err != nil {
		return nil, err
	}
	for _, r := range hits {
		if err := encodeRecord(enc, r); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

func decodeHits(data []byte) ([]domain.Record, error) {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	n, err := dec.DecodeArrayLen()
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, fmt.Errorf("cached hits: nil array")
	}
	hits := make([]domain.Record, n)
	for i := range hits {
		if hits[i], err = decodeRecord(dec); err != nil {
			return nil, err
		}
	}
	return hits, nil
}

func encodeTop(r domain.Record) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeRecord(msgpack.NewEncoder(&buf), r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeTop(data []byte) (domain.Record, error) {
	return decodeRecord(msgpack.NewDecoder(bytes.NewReader(data)))
}

func encodeRecord(enc *msgpack.Encoder, r domain.Record) error {
	if err := enc.EncodeMapLen(r.Len()); err != nil {
		return err
	}
	for _, k := range r.Keys() {
		if err := enc.EncodeString(k); err != nil {
			return err
		}
		v, _ := r.Get(k)
		if nested, ok := v.(domain.Record); ok {
			if err := encodeRecord(enc, nested); err != nil {
				return err
			}
			continue
		}
		if err := enc.Encode(v); err != nil {
			return err
		}
	}
	return nil
}

func decodeRecord(dec *msgpack.Decoder) (domain.Record, error) {
	n, err := dec.DecodeMapLen()
	if err != nil {
		return domain.Record{}, err
	}
	r := domain.NewRecord()
	for i := 0; i < n; i++ {
		key, err := dec.DecodeString()
		if err != nil {
			return domain.Record{}, err
		}

		code, err := dec.PeekCode()
		if err != nil {
			return domain.Record{}, err
		}
		if msgpcode.IsFixedMap(code) || code == msgpcode.Map16 || code == msgpcode.Map32 {
			nested, err := decodeRecord(dec)
			if err != nil {
				return domain.Record{}, err
			}
			r.Set(key, nested)
			continue
		}

		v, err := dec.DecodeInterfaceLoose()
		if err != nil {
			return domain.Record{}, err
		}
		r.Set(key, normalizeNumber(v))
	}
	return r, nil
}

// normalizeNumber maps msgpack's integer kinds back to the int64 the index produces.
func normalizeNumber(v interface{}) interface{} {
	switch n := v.(type) {
	case uint64:
		return int64(n)
	case float32:
		return float64(n)
	}
	return v
}
