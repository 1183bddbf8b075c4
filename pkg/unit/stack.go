package unit

// groupStack tracks the currently open groups. The bottom element is the
// root of the result tree.
type groupStack struct {
	groups []*TestGroup
}

// push opens a new group as the last subgroup of the current top.
func (s *groupStack) push(name string) *TestGroup {
	g := &TestGroup{Name: name}
	if len(s.groups) > 0 {
		top := s.groups[len(s.groups)-1]
		top.Subgroups = append(top.Subgroups, g)
	}
	s.groups = append(s.groups, g)
	return g
}

func (s *groupStack) pop() *TestGroup {
	if len(s.groups) == 0 {
		misuse("pop", "group stack is empty (unbalanced group nesting)")
	}
	top := s.groups[len(s.groups)-1]
	s.groups[len(s.groups)-1] = nil
	s.groups = s.groups[:len(s.groups)-1]
	return top
}

func (s *groupStack) peek() *TestGroup {
	if len(s.groups) == 0 {
		misuse("peek", "group stack is empty (unbalanced group nesting)")
	}
	return s.groups[len(s.groups)-1]
}

// markFailed flags every open group. Groups that were already popped keep
// their state.
func (s *groupStack) markFailed() {
	for i := len(s.groups) - 1; i >= 0; i-- {
		s.groups[i].Failed = true
	}
}

func (s *groupStack) depth() int {
	return len(s.groups)
}

func (s *groupStack) root() *TestGroup {
	if len(s.groups) == 0 {
		return nil
	}
	return s.groups[0]
}
