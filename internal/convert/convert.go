// Package convert reads the loosely typed values that reach the engine from
// Go callers and figure files: any integer or float kind, numeric strings,
// and slices of them either typed or as []any.
package convert

import (
	"errors"
	"fmt"
	"math"
	"reflect"

	"github.com/spf13/cast"
)

var errMissing = errors.New("expected a number, got nothing")

// Float converts v to a float64. Booleans are not numbers here.
func Float(v any) (float64, error) {
	switch v.(type) {
	case nil:
		return 0, errMissing
	case bool:
		return 0, fmt.Errorf("expected a number, got %T", v)
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, fmt.Errorf("expected a number, got %T", v)
	}
	return f, nil
}

// Int converts v to an int. Floats must be whole.
func Int(v any) (int, error) {
	f, err := Float(v)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("%v is not an integer", v)
	}
	return cast.ToIntE(f)
}

// Bool reports v as a boolean; ok is false when v is missing or not
// boolean-like.
func Bool(v any) (b bool, ok bool) {
	if v == nil {
		return false, false
	}
	b, err := cast.ToBoolE(v)
	return b, err == nil
}

// Floats converts a slice or array of numbers.
func Floats(v any) ([]float64, error) {
	if s, ok := v.([]float64); ok {
		return s, nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, fmt.Errorf("expected a numeric sequence, got %T", v)
	}
	out := make([]float64, rv.Len())
	for i := range out {
		f, err := Float(rv.Index(i).Interface())
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = f
	}
	return out, nil
}

// Matrix converts a slice of numeric rows. Rows may differ in length.
func Matrix(v any) ([][]float64, error) {
	if m, ok := v.([][]float64); ok {
		return m, nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, fmt.Errorf("expected a numeric matrix, got %T", v)
	}
	out := make([][]float64, rv.Len())
	for i := range out {
		row, err := Floats(rv.Index(i).Interface())
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out[i] = row
	}
	return out, nil
}
