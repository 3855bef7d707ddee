package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"glint/internal/diag"
	"glint/internal/source"
)

// Pretty writes bag's diagnostics to w in a human-readable form: one
// header line per diagnostic (path:line:col: SEVERITY CODE: message),
// a source excerpt with a caret underline under the primary span, then
// any attached notes rendered the same way. Call bag.Sort() first for a
// deterministic, file-then-position order.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	errorColor := color.New(color.FgRed, color.Bold)
	warningColor := color.New(color.FgYellow, color.Bold)
	noteColor := color.New(color.FgCyan, color.Bold)
	pathColor := color.New(color.FgWhite, color.Bold)
	codeColor := color.New(color.FgMagenta)
	underlineColor := color.New(color.FgRed, color.Bold)

	prev := color.NoColor
	defer func() { color.NoColor = prev }()
	color.NoColor = !opts.Color

	context := int(opts.Context)

	for idx, d := range bag.Items() {
		if idx > 0 {
			fmt.Fprintln(w)
		}
		writeOne(w, d.Severity, d.Code, d.Message, d.Primary, fs, opts, context,
			errorColor, warningColor, noteColor, pathColor, codeColor, underlineColor)

		for _, n := range d.Notes {
			writeOne(w, diag.SevNote, diag.CodeUnknown, n.Msg, n.Span, fs, opts, context,
				errorColor, warningColor, noteColor, pathColor, codeColor, underlineColor)
		}

		if d.HelpNote != "" {
			fmt.Fprintf(w, "  %s %s\n", noteColor.Sprint("help:"), d.HelpNote)
		}
	}
}

func writeOne(
	w io.Writer,
	sev diag.Severity,
	code diag.Code,
	message string,
	span source.Span,
	fs *source.FileSet,
	opts PrettyOpts,
	context int,
	errorColor, warningColor, noteColor, pathColor, codeColor, underlineColor *color.Color,
) {
	f, ok := fs.Get(span.File)
	if !ok {
		fmt.Fprintf(w, "%s: %s\n", sev.String(), message)
		return
	}
	line, col := fs.LineCol(span.File, span.Start)

	var sevColored string
	switch sev {
	case diag.SevError:
		sevColored = errorColor.Sprint(sev.String())
	case diag.SevWarning:
		sevColored = warningColor.Sprint(sev.String())
	default:
		sevColored = noteColor.Sprint(sev.String())
	}

	path := displayPath(f.Path, opts.PathMode)
	var prefix string
	if code == diag.CodeUnknown {
		prefix = fmt.Sprintf("%s:%d:%d: %s: ", path, line, col, sev.String())
	} else {
		prefix = fmt.Sprintf("%s:%d:%d: %s %s: ", path, line, col, sev.String(), code.String())
	}
	for i, part := range wrapMessage(message, int(opts.Width), runewidth.StringWidth(prefix)) {
		if i == 0 {
			if code == diag.CodeUnknown {
				fmt.Fprintf(w, "%s:%d:%d: %s: %s\n", pathColor.Sprint(path), line, col, sevColored, part)
			} else {
				fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n", pathColor.Sprint(path), line, col, sevColored, codeColor.Sprint(code.String()), part)
			}
			continue
		}
		fmt.Fprintf(w, "%s%s\n", strings.Repeat(" ", runewidth.StringWidth(prefix)), part)
	}

	lines := fileLines(f.Content)
	if len(lines) == 0 || int(line) < 1 || int(line) > len(lines) {
		return
	}

	start := int(line) - 1 - context
	if start < 0 {
		start = 0
	}
	end := int(line) - 1 + context
	if end >= len(lines) {
		end = len(lines) - 1
	}

	for i := start; i <= end; i++ {
		lineNo := i + 1
		fmt.Fprintf(w, "  %4d | %s\n", lineNo, lines[i])
		if lineNo == int(line) {
			underlineWidth := int(span.Len())
			if underlineWidth <= 0 {
				underlineWidth = 1
			}
			pad := runewidth.StringWidth(string([]rune(lines[i])[:minInt(int(col)-1, len([]rune(lines[i])))]))
			fmt.Fprintf(w, "       | %s%s\n", strings.Repeat(" ", pad), underlineColor.Sprint(strings.Repeat("^", underlineWidth)))
		}
	}
}

func displayPath(path string, mode PathMode) string {
	if mode != PathModeBasename {
		return path
	}
	if idx := strings.LastIndexByte(path, '/'); idx >= 0 {
		return path[idx+1:]
	}
	return path
}

func fileLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	return strings.Split(strings.TrimRight(string(content), "\n"), "\n")
}

// wrapMessage greedily wraps message into lines no wider than width minus
// prefixWidth (the header columns every continuation line must align
// under). width == 0 means unlimited: message is returned unwrapped.
func wrapMessage(message string, width, prefixWidth int) []string {
	if width <= 0 {
		return []string{message}
	}
	budget := width - prefixWidth
	if budget < 10 {
		return []string{message}
	}

	words := strings.Fields(message)
	if len(words) == 0 {
		return []string{message}
	}

	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		if runewidth.StringWidth(current)+1+runewidth.StringWidth(word) > budget {
			lines = append(lines, current)
			current = word
			continue
		}
		current += " " + word
	}
	lines = append(lines, current)
	return lines
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
