// Package compare provides the structural equality primitive used by the
// nestunit engine.
//
// Values are walked recursively: maps key by key (key order is irrelevant),
// slices and arrays element by element, structs field by field, and pointers
// through to their targets. Numbers of any Go numeric kind compare by value,
// so int(3) equals float64(3). In tolerant mode, two floating-point numbers are
// equal when they are within the tolerance configured in Options.
package compare

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"
)

// Tolerance modes.
const (
	ModeRelative = "relative"
	ModeAbsolute = "absolute"
	ModeULP      = "ulp"
)

// Array orders.
const (
	OrderStrict    = "strict"
	OrderUnordered = "unordered"
)

// Options configures structural comparison.
type Options struct {
	// FloatTolerance is the tolerance applied to numeric leaves in tolerant mode.
	// For "relative" and "absolute" modes, this is the tolerance threshold.
	// For "ulp" mode, this value is truncated to an integer representing the
	// maximum allowed ULP (Units in Last Place) difference. For example,
	// a tolerance of 1.9 allows 1 ULP difference, not 2.
	FloatTolerance float64

	// ToleranceMode specifies how tolerance is applied.
	// Values: "relative" (default), "absolute", "ulp"
	ToleranceMode string

	// NaNEqualsNaN treats NaN values as equal when true. It applies in both
	// exact and tolerant mode.
	NaNEqualsNaN bool

	// ArrayOrder specifies slice and array comparison order.
	// Values: "strict" (default), "unordered"
	ArrayOrder string
}

// DefaultOptions returns the default comparison options.
func DefaultOptions() Options {
	return Options{
		FloatTolerance: 1e-9,
		ToleranceMode:  ModeRelative,
		NaNEqualsNaN:   true,
		ArrayOrder:     OrderStrict,
	}
}

// ValidateOptions validates that Options has valid enum values and a usable
// tolerance. Returns nil if valid, or an error describing the invalid field.
func ValidateOptions(opts Options) error {
	switch opts.ToleranceMode {
	case "", ModeRelative, ModeAbsolute, ModeULP:
		// valid (empty defaults to relative)
	default:
		return fmt.Errorf("invalid ToleranceMode: %q (must be \"relative\", \"absolute\", or \"ulp\")", opts.ToleranceMode)
	}
	switch opts.ArrayOrder {
	case "", OrderStrict, OrderUnordered:
		// valid (empty defaults to strict)
	default:
		return fmt.Errorf("invalid ArrayOrder: %q (must be \"strict\" or \"unordered\")", opts.ArrayOrder)
	}
	if opts.FloatTolerance < 0 || math.IsNaN(opts.FloatTolerance) {
		return fmt.Errorf("invalid FloatTolerance: %v (must be a non-negative number)", opts.FloatTolerance)
	}
	return nil
}

// StructuralEqual reports whether a and b are structurally equal.
// When tolerant is false numeric leaves must be exactly equal.
// Panics if opts contains invalid values (use ValidateOptions to check beforehand).
func StructuralEqual(a, b any, tolerant bool, opts Options) bool {
	ok, _ := Explain(a, b, tolerant, opts)
	return ok
}

// Explain compares a and b and returns a description of the first mismatch.
// The description is empty when the values are equal. Paths use JSON Path
// conventions: "$" is the root, ".name" a map key or struct field, "[i]" an
// element.
// Panics if opts contains invalid values (use ValidateOptions to check beforehand).
func Explain(a, b any, tolerant bool, opts Options) (bool, string) {
	if err := ValidateOptions(opts); err != nil {
		panic("compare.Explain: " + err.Error())
	}
	c := &comparer{
		opts:     opts,
		tolerant: tolerant,
		visited:  make(map[visit]bool),
	}
	return c.compare(reflect.ValueOf(a), reflect.ValueOf(b), "")
}

// FloatsEqual compares two floats using the NaN, infinity and tolerance rules
// of opts. Tolerance only applies when tolerant is true.
func FloatsEqual(expected, actual float64, tolerant bool, opts Options) bool {
	if math.IsNaN(expected) || math.IsNaN(actual) {
		return math.IsNaN(expected) && math.IsNaN(actual) && opts.NaNEqualsNaN
	}
	if math.IsInf(expected, 0) || math.IsInf(actual, 0) {
		return expected == actual
	}
	if expected == actual {
		return true
	}
	if !tolerant {
		return false
	}

	switch opts.ToleranceMode {
	case ModeAbsolute:
		return math.Abs(expected-actual) <= opts.FloatTolerance
	case ModeULP:
		return ULPDiff(expected, actual) <= int64(opts.FloatTolerance)
	default:
		diff := math.Abs(expected - actual)
		if expected == 0 || actual == 0 {
			return diff <= opts.FloatTolerance
		}
		return diff <= opts.FloatTolerance*math.Max(math.Abs(expected), math.Abs(actual))
	}
}

// ULPDiff returns the distance between a and b in units in the last place.
func ULPDiff(a, b float64) int64 {
	ai := int64(math.Float64bits(a))
	bi := int64(math.Float64bits(b))
	if ai < 0 {
		ai = math.MinInt64 - ai
	}
	if bi < 0 {
		bi = math.MinInt64 - bi
	}
	diff := ai - bi
	if diff < 0 {
		return -diff
	}
	return diff
}

type visit struct {
	a, b uintptr
	typ  reflect.Type
}

type comparer struct {
	opts     Options
	tolerant bool
	visited  map[visit]bool
}

func (c *comparer) compare(a, b reflect.Value, path string) (bool, string) {
	a, b = unwrap(a), unwrap(b)

	aNil, bNil := isNil(a), isNil(b)
	if aNil && bNil {
		return true, ""
	}
	if aNil || bNil {
		return false, fmt.Sprintf("%s: nil mismatch (expected=%s, actual=%s)", pathStr(path), describe(a), describe(b))
	}

	if isNumber(a) || isNumber(b) {
		if !isNumber(a) || !isNumber(b) {
			return false, typeMismatch(path, a, b)
		}
		if c.numbersEqual(a, b) {
			return true, ""
		}
		return false, fmt.Sprintf("%s: number mismatch (expected=%v, actual=%v)", pathStr(path), a, b)
	}

	switch a.Kind() {
	case reflect.String:
		if b.Kind() != reflect.String {
			return false, typeMismatch(path, a, b)
		}
		if a.String() == b.String() {
			return true, ""
		}
		return false, fmt.Sprintf("%s: string mismatch (expected=%q, actual=%q)", pathStr(path), a.String(), b.String())
	case reflect.Bool:
		if b.Kind() != reflect.Bool {
			return false, typeMismatch(path, a, b)
		}
		if a.Bool() == b.Bool() {
			return true, ""
		}
		return false, fmt.Sprintf("%s: bool mismatch (expected=%v, actual=%v)", pathStr(path), a.Bool(), b.Bool())
	case reflect.Complex64, reflect.Complex128:
		if b.Kind() != reflect.Complex64 && b.Kind() != reflect.Complex128 {
			return false, typeMismatch(path, a, b)
		}
		ac, bc := a.Complex(), b.Complex()
		if FloatsEqual(real(ac), real(bc), c.tolerant, c.opts) && FloatsEqual(imag(ac), imag(bc), c.tolerant, c.opts) {
			return true, ""
		}
		return false, fmt.Sprintf("%s: complex mismatch (expected=%v, actual=%v)", pathStr(path), ac, bc)
	case reflect.Func, reflect.Chan, reflect.UnsafePointer:
		if a.Kind() != b.Kind() {
			return false, typeMismatch(path, a, b)
		}
		if a.Pointer() == b.Pointer() {
			return true, ""
		}
		return false, fmt.Sprintf("%s: %s identity mismatch", pathStr(path), a.Kind())
	case reflect.Pointer:
		if b.Kind() != reflect.Pointer {
			return false, typeMismatch(path, a, b)
		}
		if a.Pointer() == b.Pointer() {
			return true, ""
		}
		v, active := c.enter(a, b)
		if active {
			return true, ""
		}
		defer delete(c.visited, v)
		return c.compare(a.Elem(), b.Elem(), path)
	case reflect.Map:
		if b.Kind() != reflect.Map {
			return false, typeMismatch(path, a, b)
		}
		v, active := c.enter(a, b)
		if active {
			return true, ""
		}
		defer delete(c.visited, v)
		return c.compareMaps(a, b, path)
	case reflect.Slice, reflect.Array:
		if b.Kind() != reflect.Slice && b.Kind() != reflect.Array {
			return false, typeMismatch(path, a, b)
		}
		if a.Kind() == reflect.Slice && b.Kind() == reflect.Slice {
			v, active := c.enter(a, b)
			if active {
				return true, ""
			}
			defer delete(c.visited, v)
		}
		return c.compareSequences(a, b, path)
	case reflect.Struct:
		if b.Kind() != reflect.Struct || a.Type() != b.Type() {
			return false, typeMismatch(path, a, b)
		}
		return c.compareStructs(a, b, path)
	default:
		return false, typeMismatch(path, a, b)
	}
}

// enter marks the pair of references as being compared and reports whether
// it already is, higher up the walk. The caller removes the mark when its
// comparison returns.
func (c *comparer) enter(a, b reflect.Value) (visit, bool) {
	v := visit{a: a.Pointer(), b: b.Pointer(), typ: a.Type()}
	if c.visited[v] {
		return v, true
	}
	c.visited[v] = true
	return v, false
}

func (c *comparer) numbersEqual(a, b reflect.Value) bool {
	switch {
	case isInt(a) && isInt(b):
		return a.Int() == b.Int()
	case isUint(a) && isUint(b):
		return a.Uint() == b.Uint()
	case isInt(a) && isUint(b):
		return a.Int() >= 0 && uint64(a.Int()) == b.Uint()
	case isUint(a) && isInt(b):
		return b.Int() >= 0 && a.Uint() == uint64(b.Int())
	}
	return FloatsEqual(toFloat(a), toFloat(b), c.tolerant, c.opts)
}

func (c *comparer) compareMaps(a, b reflect.Value, path string) (bool, string) {
	if a.Len() != b.Len() {
		return false, fmt.Sprintf("%s: map size mismatch (expected=%d, actual=%d)", pathStr(path), a.Len(), b.Len())
	}

	sameKeyType := a.Type().Key() == b.Type().Key()
	matched := make(map[int]bool)
	bKeys := b.MapKeys()

	for _, key := range sortedKeys(a) {
		keyPath := path + "." + fmt.Sprint(key)
		var other reflect.Value
		if sameKeyType {
			other = b.MapIndex(key)
		}
		if !other.IsValid() {
			// Keys of different types (or NaN keys) need a structural search.
			for i, bk := range bKeys {
				if matched[i] {
					continue
				}
				if ok, _ := c.compare(key, bk, ""); ok {
					matched[i] = true
					other = b.MapIndex(bk)
					break
				}
			}
		}
		if !other.IsValid() {
			return false, fmt.Sprintf("%s: missing in actual", pathStr(keyPath))
		}
		if ok, diff := c.compare(a.MapIndex(key), other, keyPath); !ok {
			return false, diff
		}
	}

	return true, ""
}

func (c *comparer) compareSequences(a, b reflect.Value, path string) (bool, string) {
	if a.Len() != b.Len() {
		return false, fmt.Sprintf("%s: length mismatch (expected=%d, actual=%d)", pathStr(path), a.Len(), b.Len())
	}

	if c.opts.ArrayOrder == OrderUnordered {
		return c.compareUnordered(a, b, path)
	}

	for i := 0; i < a.Len(); i++ {
		elemPath := fmt.Sprintf("%s[%d]", path, i)
		if ok, diff := c.compare(a.Index(i), b.Index(i), elemPath); !ok {
			return false, diff
		}
	}
	return true, ""
}

func (c *comparer) compareUnordered(a, b reflect.Value, path string) (bool, string) {
	// Track which actual elements have been matched
	matched := make([]bool, b.Len())

	for i := 0; i < a.Len(); i++ {
		found := false
		for j := 0; j < b.Len(); j++ {
			if matched[j] {
				continue
			}
			if ok, _ := c.compare(a.Index(i), b.Index(j), ""); ok {
				matched[j] = true
				found = true
				break
			}
		}
		if !found {
			return false, fmt.Sprintf("%s: element %d not found in actual", pathStr(path), i)
		}
	}
	return true, ""
}

func (c *comparer) compareStructs(a, b reflect.Value, path string) (bool, string) {
	t := a.Type()
	for i := 0; i < t.NumField(); i++ {
		fieldPath := path + "." + t.Field(i).Name
		if ok, diff := c.compare(a.Field(i), b.Field(i), fieldPath); !ok {
			return false, diff
		}
	}
	return true, ""
}

// unwrap strips interface layers so the dynamic value is compared.
func unwrap(v reflect.Value) reflect.Value {
	for v.IsValid() && v.Kind() == reflect.Interface {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

func isNil(v reflect.Value) bool {
	if !v.IsValid() {
		return true
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface, reflect.UnsafePointer:
		return v.IsNil()
	}
	return false
}

func isInt(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

func isUint(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

func isFloat(v reflect.Value) bool {
	return v.Kind() == reflect.Float32 || v.Kind() == reflect.Float64
}

func isNumber(v reflect.Value) bool {
	return isInt(v) || isUint(v) || isFloat(v)
}

func toFloat(v reflect.Value) float64 {
	switch {
	case isInt(v):
		return float64(v.Int())
	case isUint(v):
		return float64(v.Uint())
	default:
		return v.Float()
	}
}

func sortedKeys(m reflect.Value) []reflect.Value {
	keys := m.MapKeys()
	sort.Slice(keys, func(i, j int) bool {
		return fmt.Sprint(keys[i]) < fmt.Sprint(keys[j])
	})
	return keys
}

func describe(v reflect.Value) string {
	if isNil(v) {
		return "nil"
	}
	return v.Type().String()
}

func typeMismatch(path string, a, b reflect.Value) string {
	return fmt.Sprintf("%s: type mismatch (expected=%s, actual=%s)", pathStr(path), describe(a), describe(b))
}

// pathStr formats a path for error messages using JSON Path conventions.
// Returns "$" for empty path (JSON Path root reference).
// Strips leading dots to normalize paths like ".foo.bar" to "foo.bar".
func pathStr(path string) string {
	if path == "" {
		return "$"
	}
	return strings.TrimPrefix(path, ".")
}
