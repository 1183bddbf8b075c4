package unit

import (
	"fmt"
	"reflect"

	"github.com/AndreyAkinshin/nestunit/internal/serialize"
)

// Every assertion accepts an optional message. A non-empty message replaces
// the default description of the failure.

// AssertTrue fails unless v is the boolean true.
func (e *Engine) AssertTrue(v any, msg ...string) {
	if b, ok := v.(bool); !ok || !b {
		e.fail(msg, "expected true, got %s", e.serialize(v))
	}
}

// AssertFalse fails unless v is the boolean false.
func (e *Engine) AssertFalse(v any, msg ...string) {
	if b, ok := v.(bool); !ok || b {
		e.fail(msg, "expected false, got %s", e.serialize(v))
	}
}

// AssertEqual fails unless v equals expected exactly.
func (e *Engine) AssertEqual(v, expected any, msg ...string) {
	if !e.CompareValues(v, expected, false) {
		e.fail(msg, "%s", e.mismatch("expected %s, got %s", v, expected))
	}
}

// AssertNotEqual fails if a equals b exactly.
func (e *Engine) AssertNotEqual(a, b any, msg ...string) {
	if e.CompareValues(a, b, false) {
		e.fail(msg, "expected %s to differ from %s", e.serialize(a), e.serialize(b))
	}
}

// AssertAlmostEqual fails unless v equals expected within numeric tolerance.
func (e *Engine) AssertAlmostEqual(v, expected any, msg ...string) {
	if !e.CompareValues(v, expected, true) {
		e.fail(msg, "%s", e.mismatch("expected approximately %s, got %s", v, expected))
	}
}

// AssertNotAlmostEqual fails if a equals b within numeric tolerance.
func (e *Engine) AssertNotAlmostEqual(a, b any, msg ...string) {
	if e.CompareValues(a, b, true) {
		e.fail(msg, "expected %s to differ from %s beyond tolerance", e.serialize(a), e.serialize(b))
	}
}

// AssertSame fails unless v and expected are the same reference or the same
// primitive value. Neither custom equality nor structural comparison is used.
// Comparable structs and arrays are values in Go, so two separately built
// ones with equal fields count as the same.
func (e *Engine) AssertSame(v, expected any, msg ...string) {
	if !Identical(v, expected) {
		e.fail(msg, "expected the same value as %s, got %s", e.serialize(expected), e.serialize(v))
	}
}

// AssertNotSame fails if a and b are the same reference or primitive value.
func (e *Engine) AssertNotSame(a, b any, msg ...string) {
	if Identical(a, b) {
		e.fail(msg, "expected a different value than %s", e.serialize(b))
	}
}

// AssertError runs fn in isolation and fails if it completes normally.
// fn must be a func() that is expected to panic, or a func() error that is
// expected to panic or return a non-nil error.
func (e *Engine) AssertError(fn any, msg ...string) {
	var call func()
	switch f := fn.(type) {
	case func():
		call = f
	case func() error:
		call = func() {
			if err := f(); err != nil {
				panic(err)
			}
		}
	}
	if call == nil || reflect.ValueOf(fn).IsNil() {
		misuse("AssertError", "argument must be a non-nil func() or func() error, got %T", fn)
	}
	if _, failed := e.isolate(call); !failed {
		e.fail(msg, "expected an error, but the function completed normally")
	}
}

// Identical reports whether a and b are the same reference (pointers, maps,
// slices, channels, functions) or the same primitive value. Values of
// different dynamic types are never identical.
func Identical(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	switch va.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len() && va.Cap() == vb.Cap()
	}
	if !va.Type().Comparable() {
		return false
	}
	return safeEqual(a, b)
}

// safeEqual compares with == and treats a runtime panic (an interface field
// holding an uncomparable value) as inequality.
func safeEqual(a, b any) (eq bool) {
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	return a == b
}

// mismatch builds the default message of a failed equality assertion. When
// both operands are structured a line diff of their dumps is appended.
func (e *Engine) mismatch(format string, actual, expected any) string {
	text := fmt.Sprintf(format, e.serialize(expected), e.serialize(actual))
	if isStructured(actual) && isStructured(expected) {
		if diff := serialize.Diff(serialize.Dump(expected), serialize.Dump(actual)); diff != "" {
			text += "\n" + diff
		}
	}
	return text
}

// fail raises a Failure carrying the override message if one was given.
func (e *Engine) fail(override []string, format string, args ...any) {
	if len(override) > 0 && override[0] != "" {
		panic(&Failure{Message: override[0]})
	}
	panic(&Failure{Message: fmt.Sprintf(format, args...)})
}
