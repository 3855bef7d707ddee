package diagfmt

import (
	"encoding/json"
	"io"

	"glint/internal/diag"
	"glint/internal/source"
)

type jsonNote struct {
	Message string `json:"message"`
	Line    uint32 `json:"line,omitempty"`
	Col     uint32 `json:"col,omitempty"`
}

type jsonDiagnostic struct {
	Severity string     `json:"severity"`
	Code     string     `json:"code,omitempty"`
	Message  string     `json:"message"`
	Path     string     `json:"path,omitempty"`
	Line     uint32     `json:"line,omitempty"`
	Col      uint32     `json:"col,omitempty"`
	HelpNote string     `json:"help,omitempty"`
	Notes    []jsonNote `json:"notes,omitempty"`
}

// JSON writes bag's diagnostics to w as a JSON array, one object per
// diagnostic, for machine consumers (an IDE extension, a CI annotation
// uploader) that parse Pretty's text output.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	out := make([]jsonDiagnostic, 0, bag.Len())
	for _, d := range bag.Items() {
		entry := jsonDiagnostic{
			Severity: d.Severity.String(),
			Message:  d.Message,
			HelpNote: d.HelpNote,
		}
		if d.Code != diag.CodeUnknown {
			entry.Code = d.Code.String()
		}
		if f, ok := fs.Get(d.Primary.File); ok {
			entry.Path = displayPath(f.Path, opts.PathMode)
		}
		if opts.IncludePositions {
			entry.Line, entry.Col = fs.LineCol(d.Primary.File, d.Primary.Start)
		}
		for _, n := range d.Notes {
			note := jsonNote{Message: n.Msg}
			if opts.IncludePositions {
				note.Line, note.Col = fs.LineCol(n.Span.File, n.Span.Start)
			}
			entry.Notes = append(entry.Notes, note)
		}
		out = append(out, entry)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
