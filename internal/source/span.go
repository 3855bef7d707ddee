// Package source provides source-view tracking: byte-range spans into a
// set of in-memory source files.
package source

import "fmt"

// FileID identifies a file within a FileSet.
type FileID uint32

// NoFileID marks the absence of a file.
const NoFileID FileID = 0

// Span is an inclusive-exclusive byte range within a single source file.
// Two spans may be combined with Cover or Concat only when they share a
// File; spans are copied freely and own nothing.
type Span struct {
	File  FileID
	Start uint32
	End   uint32
}

// Zero is the empty span in the zero file, used for compiler-synthesized
// nodes that have no corresponding source text.
var Zero = Span{}

// Empty reports whether the span covers zero bytes.
func (s Span) Empty() bool { return s.Start == s.End }

// Len returns the number of bytes the span covers.
func (s Span) Len() uint32 { return s.End - s.Start }

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// Cover returns the smallest span that contains both s and other. If the
// spans belong to different files, s is returned unchanged.
func (s Span) Cover(other Span) Span {
	if s.File != other.File {
		return s
	}
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

// Concat requires that s and other share a File and are ordered
// (s.End <= other.Start); it returns their union. It reports false if the
// precondition does not hold, leaving s unmodified.
func (s Span) Concat(other Span) (Span, bool) {
	if s.File != other.File || s.End > other.Start {
		return s, false
	}
	return Span{File: s.File, Start: s.Start, End: other.End}, true
}
