package resolver

// Trace records what each resolution step saw, for display by the inspect
// command. Unlike the debug logs, the trace carries the built envelope
// verbatim; inspecting that value is the point of the command.
type Trace struct {
	RedirectURL string
	ResolvedURL string
	Steps       []TraceStep
}

// TraceStep is one completed step and its recorded detail.
type TraceStep struct {
	Name   string
	Detail string
}

// add appends a completed step. A nil trace swallows the call, so the
// resolve path can record unconditionally.
func (t *Trace) add(name, detail string) {
	if t == nil {
		return
	}
	t.Steps = append(t.Steps, TraceStep{Name: name, Detail: detail})
}
