package unit

// Type names returned by DetermineType for values that custom classifiers
// never see.
const (
	TypeNil      = "nil"
	TypeBoolean  = "boolean"
	TypeNumber   = "number"
	TypeString   = "string"
	TypeFunction = "function"
	TypeChannel  = "channel"
	TypeComplex  = "complex"
	TypeOpaque   = "opaque" // unsafe.Pointer
)

// TypeTable is the fallback type name of structured values (maps, slices,
// arrays, structs and pointers) that no registered classifier claims.
const TypeTable = "table"

// TestGroup is a named node of the result tree.
type TestGroup struct {
	Name string
	// Failed is true if any result or subgroup below this group failed.
	// Once set it is never reset.
	Failed    bool
	Results   []*TestResult
	Subgroups []*TestGroup
}

// TestResult is the outcome of one Run or RunTable call.
type TestResult struct {
	Name   string
	Failed bool
	Error  string // failure message; empty when the test passed
}
