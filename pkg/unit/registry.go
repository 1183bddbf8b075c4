package unit

import (
	"reflect"

	"github.com/AndreyAkinshin/nestunit/pkg/compare"
)

// TypeClassifier assigns a symbolic type name to structured values.
// Classify returns ok == false for values it does not recognise.
// Classifiers run on every comparison and must be cheap and free of side
// effects.
type TypeClassifier interface {
	Classify(v any) (typeName string, ok bool)
}

// TypeClassifierFunc adapts a function to TypeClassifier.
type TypeClassifierFunc func(v any) (string, bool)

// Classify calls f(v).
func (f TypeClassifierFunc) Classify(v any) (string, bool) {
	return f(v)
}

// EqualityStrategy decides equality for values of one custom type.
// It owns the full comparison semantics for that type, including how the
// tolerant flag is interpreted.
type EqualityStrategy interface {
	Equal(a, b any, tolerant bool) bool
}

// EqualityFunc adapts a function to EqualityStrategy.
type EqualityFunc func(a, b any, tolerant bool) bool

// Equal calls f(a, b, tolerant).
func (f EqualityFunc) Equal(a, b any, tolerant bool) bool {
	return f(a, b, tolerant)
}

// AddTypeCheck registers a classifier. Classifiers are consulted in
// registration order and the first match wins.
func (e *Engine) AddTypeCheck(c TypeClassifier) {
	if c == nil {
		misuse("AddTypeCheck", "classifier must not be nil")
	}
	e.types = append(e.types, c)
}

// AddEqualityCheck registers the equality strategy for typeName, replacing
// any earlier registration for the same name.
func (e *Engine) AddEqualityCheck(typeName string, s EqualityStrategy) {
	if typeName == "" {
		misuse("AddEqualityCheck", "type name must not be empty")
	}
	if s == nil {
		misuse("AddEqualityCheck", "strategy for %q must not be nil", typeName)
	}
	e.equality[typeName] = s
}

// DetermineType returns the symbolic type name of v. Primitive values map
// directly to their kind (TypeNil, TypeNumber, ...). Structured values are
// offered to the registered classifiers in order; TypeTable is returned when
// none claims the value.
func (e *Engine) DetermineType(v any) string {
	if name, ok := primitiveType(v); ok {
		return name
	}
	for _, c := range e.types {
		if name, ok := c.Classify(v); ok {
			return name
		}
	}
	return TypeTable
}

// CompareValues reports whether first and second are equal. When first is
// structured and both operands have the same registered custom type, the
// registered strategy decides. Otherwise values are compared structurally,
// with almost selecting numeric tolerance.
func (e *Engine) CompareValues(first, second any, almost bool) bool {
	firstType := e.DetermineType(first)
	if isStructured(first) && e.DetermineType(second) == firstType {
		if s, ok := e.equality[firstType]; ok {
			return s.Equal(first, second, almost)
		}
	}
	return compare.StructuralEqual(first, second, almost, e.opts)
}

func isStructured(v any) bool {
	_, primitive := primitiveType(v)
	return !primitive
}

func primitiveType(v any) (string, bool) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return TypeNil, true
	}
	switch rv.Kind() {
	case reflect.Bool:
		return TypeBoolean, true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return TypeNumber, true
	case reflect.Complex64, reflect.Complex128:
		return TypeComplex, true
	case reflect.String:
		return TypeString, true
	case reflect.Func:
		if rv.IsNil() {
			return TypeNil, true
		}
		return TypeFunction, true
	case reflect.Chan:
		if rv.IsNil() {
			return TypeNil, true
		}
		return TypeChannel, true
	case reflect.UnsafePointer:
		if rv.IsNil() {
			return TypeNil, true
		}
		return TypeOpaque, true
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		if rv.IsNil() {
			return TypeNil, true
		}
	}
	return "", false
}
