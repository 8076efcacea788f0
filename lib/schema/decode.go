package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"steamtrader/internal/components/assert"
	"steamtrader/internal/components/telemetry"
)

const report_decoder_unknown_fields = "decoder.unknown-fields"

// Decoder runs schemas against raw values and reports keys it had to drop.
// It holds no per-call state and is safe for concurrent use.
type Decoder struct {
	tel telemetry.API
}

func NewDecoder(tel telemetry.API) *Decoder {
	assert.NotNil(tel)
	return &Decoder{tel: telemetry.NewScopedAPI("schema", tel)}
}

func (d *Decoder) flush(name string, st *state) {
	if len(st.unknown) == 0 {
		return
	}
	sort.Strings(st.unknown)
	d.tel.ReportWarning(report_decoder_unknown_fields, name, st.unknown)
}

// Parse reads a JSON document keeping numbers as json.Number so integers
// larger than 2^53 survive.
func Parse(body []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var out any
	err := dec.Decode(&out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Decode runs s against raw. Keys in raw that s does not declare are dropped
// and reported once per call as a warning.
func Decode[T any](d *Decoder, s *Schema[T], raw any) (T, error) {
	st := &state{}
	out, err := decodeRecord(st, s, s.Name, raw)
	d.flush(s.Name, st)
	return out, err
}

// DecodeJSON parses body and decodes it with s.
func DecodeJSON[T any](d *Decoder, s *Schema[T], body []byte) (T, error) {
	raw, err := Parse(body)
	if err != nil {
		var zero T
		return zero, &Error{Path: s.Name, Reason: fmt.Sprintf("invalid json: %s", err)}
	}
	return Decode(d, s, raw)
}

// DecodeSeq decodes a top-level array of records.
func DecodeSeq[T any](d *Decoder, s *Schema[T], raw any) ([]T, error) {
	st := &state{}
	out, err := decodeSeq(st, s, s.Name, raw)
	d.flush(s.Name, st)
	return out, err
}

// DecodeIntMap decodes a top-level object whose keys are decimal integers.
func DecodeIntMap[T any](d *Decoder, s *Schema[T], raw any) (map[int]T, error) {
	st := &state{}
	out, err := decodeIntMap(st, s, s.Name, raw)
	d.flush(s.Name, st)
	return out, err
}

func decodeRecord[T any](st *state, s *Schema[T], path string, raw any) (T, error) {
	var out T
	if len(s.Variants) > 0 {
		m, ok := raw.(map[string]any)
		if !ok {
			return out, typeError(path, "object", raw)
		}
		for _, v := range s.Variants {
			if v.matches(m) {
				return decodeRecord(st, v, path, raw)
			}
		}
		return out, &Error{Path: path, Reason: fmt.Sprintf("no %s variant matches the keys present", s.Name)}
	}

	s.init()
	var err error
	switch v := raw.(type) {
	case map[string]any:
		err = decodeObject(st, s, path, v, &out)
	case []any:
		err = decodeTuple(st, s, path, v, &out)
	case nil:
		err = missing(path)
	default:
		err = typeError(path, "object or array", raw)
	}
	return out, err
}

func decodeObject[T any](st *state, s *Schema[T], path string, m map[string]any, out *T) error {
	for key := range m {
		if !s.Open && !s.known[key] {
			st.addUnknown(join(path, key))
		}
	}
	for _, f := range s.Fields {
		fp := join(path, f.name)
		val, ok := m[f.source]
		skip, err := absent(f, fp, val, ok)
		if err != nil {
			return err
		}
		if skip {
			continue
		}
		err = f.decode(st, fp, val, out)
		if err != nil {
			return err
		}
	}
	return nil
}

// decodeTuple assigns array elements to fields by declared order.
func decodeTuple[T any](st *state, s *Schema[T], path string, arr []any, out *T) error {
	if len(arr) > len(s.Fields) {
		st.addUnknown(fmt.Sprintf("%s[%d:]", path, len(s.Fields)))
	}
	for i, f := range s.Fields {
		fp := join(path, f.name)
		var val any
		ok := i < len(arr)
		if ok {
			val = arr[i]
		}
		skip, err := absent(f, fp, val, ok)
		if err != nil {
			return err
		}
		if skip {
			continue
		}
		err = f.decode(st, fp, val, out)
		if err != nil {
			return err
		}
	}
	return nil
}

// absent decides what happens to a field whose value is missing, null, or
// (for optional containers) an empty array standing in for an empty object.
func absent[T any](f Field[T], path string, val any, present bool) (skip bool, err error) {
	if !present || val == nil {
		if f.optional {
			return true, nil
		}
		return false, missing(path)
	}
	if f.optional && f.kind == kindRecord {
		if arr, ok := val.([]any); ok && len(arr) == 0 {
			return true, nil
		}
	}
	return false, nil
}

func decodeSeq[T any](st *state, s *Schema[T], path string, raw any) ([]T, error) {
	arr, ok := raw.([]any)
	if !ok {
		// an empty object is how some endpoints send an empty list
		if m, isMap := raw.(map[string]any); isMap && len(m) == 0 {
			return []T{}, nil
		}
		return nil, typeError(path, "array", raw)
	}
	out := make([]T, len(arr))
	for i, elem := range arr {
		rec, err := decodeRecord(st, s, fmt.Sprintf("%s[%d]", path, i), elem)
		if err != nil {
			return nil, err
		}
		out[i] = rec
	}
	return out, nil
}

func decodeIntMap[T any](st *state, s *Schema[T], path string, raw any) (map[int]T, error) {
	switch v := raw.(type) {
	case map[string]any:
		out := make(map[int]T, len(v))
		for key, elem := range v {
			k, err := strconv.Atoi(key)
			if err != nil {
				return nil, &Error{Path: path, Reason: fmt.Sprintf("map key %q is not an integer", key)}
			}
			rec, err := decodeRecord(st, s, fmt.Sprintf("%s[%s]", path, key), elem)
			if err != nil {
				return nil, err
			}
			out[k] = rec
		}
		return out, nil
	case []any:
		// a map with keys 0..n-1 arrives as a plain array
		out := make(map[int]T, len(v))
		for i, elem := range v {
			rec, err := decodeRecord(st, s, fmt.Sprintf("%s[%d]", path, i), elem)
			if err != nil {
				return nil, err
			}
			out[i] = rec
		}
		return out, nil
	}
	return nil, typeError(path, "object", raw)
}

func join(path, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}
