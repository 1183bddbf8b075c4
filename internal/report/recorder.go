package report

// Node is a recorded group or test.
type Node struct {
	Name     string  `json:"name"`
	Test     bool    `json:"test,omitempty"` // true for tests, false for groups
	Failed   bool    `json:"failed"`
	Error    string  `json:"error,omitempty"`
	Children []*Node `json:"children,omitempty"`
}

// Recorder is a sink that rebuilds the pushed result trees in memory.
// Each root group pushed into it becomes one element of Roots.
type Recorder struct {
	Roots []*Node
	open  []*Node
}

// BeginGroup implements unit.Sink.
func (r *Recorder) BeginGroup(name string, failed bool) {
	n := &Node{Name: name, Failed: failed}
	if len(r.open) == 0 {
		r.Roots = append(r.Roots, n)
	} else {
		parent := r.open[len(r.open)-1]
		parent.Children = append(parent.Children, n)
	}
	r.open = append(r.open, n)
}

// AddLeaf implements unit.Sink. Leaves pushed outside of any group are dropped.
func (r *Recorder) AddLeaf(name string, failed bool, err string) {
	if len(r.open) == 0 {
		return
	}
	parent := r.open[len(r.open)-1]
	parent.Children = append(parent.Children, &Node{Name: name, Test: true, Failed: failed, Error: err})
}

// EndGroup implements unit.Sink.
func (r *Recorder) EndGroup() {
	if len(r.open) > 0 {
		r.open = r.open[:len(r.open)-1]
	}
}
