package diag

import "glint/internal/source"

// Note is auxiliary context attached to a diagnostic: an additional span
// plus a message, used to point at a second relevant location (e.g. "first
// declared here").
type Note struct {
	Span source.Span
	Msg  string
}

// MessageArguments is the lightweight bundle the core passes to a Sink.
// The sink is responsible for attaching source context before rendering;
// the core never renders anything itself.
type MessageArguments struct {
	Format   string
	Args     []any
	HelpNote string
}

// Diagnostic is one accumulated issue.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	HelpNote string
	Primary  source.Span
	Notes    []Note
}
