// Package serialize renders arbitrary values for failure messages.
package serialize

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// maxDepth bounds how deep nested values are rendered.
const maxDepth = 10

var (
	inline = spew.ConfigState{
		SortKeys:                true,
		SpewKeys:                true,
		DisablePointerAddresses: true,
		DisableCapacities:       true,
		MaxDepth:                maxDepth,
	}
	block = spew.ConfigState{
		Indent:                  "  ",
		SortKeys:                true,
		SpewKeys:                true,
		DisablePointerAddresses: true,
		DisableCapacities:       true,
		MaxDepth:                maxDepth,
	}
)

// Serialize returns a single-line, human-readable rendering of v.
// Strings are quoted, map keys are sorted and cyclic references are cut.
// It never panics.
func Serialize(v any) (s string) {
	defer func() {
		if r := recover(); r != nil {
			s = fmt.Sprintf("<%T>", v)
		}
	}()

	switch x := v.(type) {
	case nil:
		return "nil"
	case string:
		return strconv.Quote(x)
	case error:
		return x.Error()
	case bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return fmt.Sprint(x)
	}
	return inline.Sprintf("%v", v)
}

// Dump returns a multi-line rendering of v suitable for line diffs.
// It never panics.
func Dump(v any) (s string) {
	defer func() {
		if r := recover(); r != nil {
			s = fmt.Sprintf("<%T>\n", v)
		}
	}()
	return block.Sdump(v)
}

// Diff returns a line diff between expected and actual. Removed lines are
// prefixed with "- ", added lines with "+ " and common lines with "  ".
// Returns "" when the texts are identical.
func Diff(expected, actual string) string {
	if expected == actual {
		return ""
	}

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(expected, actual)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var sb strings.Builder
	for _, d := range diffs {
		prefix := "  "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "- "
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			sb.WriteString(prefix)
			sb.WriteString(strings.TrimSuffix(line, "\n"))
			sb.WriteString("\n")
		}
	}
	return strings.TrimSuffix(sb.String(), "\n")
}
