package unit

// Sink receives a finished result tree as a stream of push events.
// Rendering (console, JSON, ...) is the sink's concern.
type Sink interface {
	BeginGroup(name string, failed bool)
	AddLeaf(name string, failed bool, err string)
	EndGroup()
}

// WriteReport walks the result tree depth-first and pushes it into sink:
// for each group its results in declaration order, then its subgroups in
// declaration order. Returns sink for chaining.
func (e *Engine) WriteReport(sink Sink) Sink {
	if sink == nil {
		misuse("WriteReport", "sink must not be nil")
	}
	writeGroup(sink, e.Root())
	return sink
}

func writeGroup(sink Sink, g *TestGroup) {
	sink.BeginGroup(g.Name, g.Failed)
	for _, r := range g.Results {
		sink.AddLeaf(r.Name, r.Failed, r.Error)
	}
	for _, sub := range g.Subgroups {
		writeGroup(sink, sub)
	}
	sink.EndGroup()
}
