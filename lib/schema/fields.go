package schema

import "fmt"

func scalar[T, V any](name string, conv func(any) (V, error), set func(*T, V)) Field[T] {
	return Field[T]{
		source: name,
		name:   name,
		kind:   kindScalar,
		decode: func(_ *state, path string, raw any, out *T) error {
			v, err := conv(raw)
			if err != nil {
				return &Error{Path: path, Reason: err.Error()}
			}
			set(out, v)
			return nil
		},
	}
}

// Int accepts JSON integers, integral floats, and decimal strings.
func Int[T any](name string, set func(*T, int)) Field[T] {
	return scalar(name, toInt, set)
}

// Float accepts JSON numbers and numeric strings.
func Float[T any](name string, set func(*T, float64)) Field[T] {
	return scalar(name, toFloat, set)
}

func String[T any](name string, set func(*T, string)) Field[T] {
	return scalar(name, toString, set)
}

// Bool accepts true/false and the integers 0/1.
func Bool[T any](name string, set func(*T, bool)) Field[T] {
	return scalar(name, toBool, set)
}

func scalarList[V any](conv func(any) (V, error)) func(any) ([]V, error) {
	return func(raw any) ([]V, error) {
		arr, ok := raw.([]any)
		if !ok {
			return nil, fmt.Errorf("expected array, got %s", describe(raw))
		}
		out := make([]V, len(arr))
		for i, elem := range arr {
			v, err := conv(elem)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			out[i] = v
		}
		return out, nil
	}
}

func Ints[T any](name string, set func(*T, []int)) Field[T] {
	f := scalar(name, scalarList(toInt), set)
	f.kind = kindSequence
	return f
}

func Strings[T any](name string, set func(*T, []string)) Field[T] {
	f := scalar(name, scalarList(toString), set)
	f.kind = kindSequence
	return f
}

// Nested decodes a single sub-record.
func Nested[T, U any](name string, s *Schema[U], set func(*T, U)) Field[T] {
	return Field[T]{
		source: name,
		name:   name,
		kind:   kindRecord,
		decode: func(st *state, path string, raw any, out *T) error {
			v, err := decodeRecord(st, s, path, raw)
			if err != nil {
				return err
			}
			set(out, v)
			return nil
		},
	}
}

// Seq decodes an array of sub-records, each element may itself be an object
// or a positional array.
func Seq[T, U any](name string, s *Schema[U], set func(*T, []U)) Field[T] {
	return Field[T]{
		source: name,
		name:   name,
		kind:   kindSequence,
		decode: func(st *state, path string, raw any, out *T) error {
			v, err := decodeSeq(st, s, path, raw)
			if err != nil {
				return err
			}
			set(out, v)
			return nil
		},
	}
}

// IntMap decodes an object with decimal string keys into a map keyed by int.
func IntMap[T, U any](name string, s *Schema[U], set func(*T, map[int]U)) Field[T] {
	return Field[T]{
		source: name,
		name:   name,
		kind:   kindMap,
		decode: func(st *state, path string, raw any, out *T) error {
			v, err := decodeIntMap(st, s, path, raw)
			if err != nil {
				return err
			}
			set(out, v)
			return nil
		},
	}
}
