package suite

import (
	"golang.org/x/text/cases"

	"github.com/AndreyAkinshin/nestunit/pkg/unit"
)

// FoldedType is the type name under which Folded values are classified.
const FoldedType = "folded"

// Folded is a string compared by Unicode case folding, so that "Straße"
// equals "STRASSE".
type Folded struct {
	S string
}

// String returns the original text.
func (f Folded) String() string {
	return f.S
}

// ClassifyFolded is the type classifier for Folded values.
func ClassifyFolded(v any) (string, bool) {
	_, ok := v.(Folded)
	return FoldedType, ok
}

// FoldedEqual is the equality strategy for Folded values. Tolerance does not
// apply to text.
func FoldedEqual(a, b any, tolerant bool) bool {
	caser := cases.Fold()
	return caser.String(a.(Folded).S) == caser.String(b.(Folded).S)
}

// RegisterFold installs the Folded classifier and its equality strategy on e.
func RegisterFold(e *unit.Engine) {
	e.AddTypeCheck(unit.TypeClassifierFunc(ClassifyFolded))
	e.AddEqualityCheck(FoldedType, unit.EqualityFunc(FoldedEqual))
}

func fold(v any) any {
	if s, ok := v.(string); ok {
		return Folded{S: s}
	}
	return v
}
