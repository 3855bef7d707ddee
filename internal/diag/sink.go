package diag

import "glint/internal/source"

// Policy configures how a Sink treats each category of note and warning:
// emitted normally, promoted to an error, or suppressed entirely. Errors
// are never subject to policy — they are always emitted and always mark
// the sink as error-bearing.
type Policy struct {
	NoteLevel    map[Category]Action
	WarningLevel map[Category]Action

	// DefaultIntWidth is the bit width an unbound integral variable
	// defaults to at the end of inference (spec §8's "the canonical
	// signed 64-bit integer"), carried here because config is the only
	// thing threaded all the way from the toplevel into the sink. Zero
	// means "unset"; callers treat that the same as 64.
	DefaultIntWidth int
}

// DefaultPolicy emits every note and warning as-is, defaulting integral
// variables to a 64-bit width.
func DefaultPolicy() Policy {
	return Policy{
		NoteLevel:       map[Category]Action{},
		WarningLevel:    map[Category]Action{},
		DefaultIntWidth: 64,
	}
}

func (p Policy) actionFor(sev Severity, cat Category) Action {
	var table map[Category]Action
	switch sev {
	case SevNote:
		table = p.NoteLevel
	case SevWarning:
		table = p.WarningLevel
	default:
		return ActionEmit
	}
	if a, ok := table[cat]; ok {
		return a
	}
	return ActionEmit
}

// Sink is the diagnostic emission interface the semantic core appends to.
// It never renders and never reads back previously emitted messages — it
// only accumulates. Once Error has been called the sink is error-bearing;
// compilation output is considered invalidated, but the pipeline may keep
// running so further diagnostics can be collected (spec §7).
type Sink struct {
	bag     *Bag
	policy  Policy
	errored bool
}

// NewSink constructs a Sink writing into bag under policy.
func NewSink(bag *Bag, policy Policy) *Sink {
	return &Sink{bag: bag, policy: policy}
}

// Note records an informational diagnostic, subject to the note-level
// policy.
func (s *Sink) Note(code Code, primary source.Span, msg string, notes ...Note) {
	s.emit(SevNote, code, primary, msg, "", notes)
}

// Warning records a warning diagnostic, subject to the warning-level
// policy.
func (s *Sink) Warning(code Code, primary source.Span, msg string, notes ...Note) {
	s.emit(SevWarning, code, primary, msg, "", notes)
}

// WarningWithHelp is Warning plus an attached help note string.
func (s *Sink) WarningWithHelp(code Code, primary source.Span, msg, help string, notes ...Note) {
	s.emit(SevWarning, code, primary, msg, help, notes)
}

// Error records an error diagnostic. Errors are never suppressed or
// promoted; they unconditionally mark the sink error-bearing.
func (s *Sink) Error(code Code, primary source.Span, msg string, notes ...Note) {
	s.errored = true
	if s.bag != nil {
		s.bag.Add(Diagnostic{Severity: SevError, Code: code, Message: msg, Primary: primary, Notes: notes})
	}
}

// Internal records a category-6 invariant violation. Per spec §7 this
// indicates a compiler bug. It does not panic: it records an ordinary
// error diagnostic, and pipeline.CompileWithEvents stops at its next
// sink.HasErrors() stage check.
func (s *Sink) Internal(primary source.Span, msg string) {
	s.errored = true
	if s.bag != nil {
		s.bag.Add(Diagnostic{Severity: SevError, Code: CodeInvariantViolation, Message: msg, Primary: primary})
	}
}

func (s *Sink) emit(sev Severity, code Code, primary source.Span, msg, help string, notes []Note) {
	action := s.policy.actionFor(sev, code.Category())
	switch action {
	case ActionSuppress:
		return
	case ActionPromoteToError:
		sev = SevError
		s.errored = true
	}
	if s.bag == nil {
		return
	}
	s.bag.Add(Diagnostic{Severity: sev, Code: code, Message: msg, HelpNote: help, Primary: primary, Notes: notes})
}

// HasErrors reports whether the sink has recorded at least one error, or
// had a warning/note promoted to one. Per spec §7, pipeline success is
// exactly "the sink contains no errors after completion".
func (s *Sink) HasErrors() bool { return s.errored }

// Bag returns the underlying diagnostic bag.
func (s *Sink) Bag() *Bag { return s.bag }

// Policy returns the policy s was constructed with, so later pipeline
// stages (e.g. integral-variable defaulting) can read its defaulting
// knobs without a separate parameter threaded everywhere a Sink is.
func (s *Sink) Policy() Policy { return s.policy }
