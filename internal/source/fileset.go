package source

import (
	"fmt"

	"fortio.org/safecast"
)

// File holds the content of one source file.
type File struct {
	ID      FileID
	Path    string
	Content []byte
}

// FileSet owns every File referenced by Spans produced during a pipeline
// run. It is append-only.
type FileSet struct {
	files []File
}

// NewFileSet returns an empty FileSet. Index 0 is reserved for NoFileID.
func NewFileSet() *FileSet {
	return &FileSet{files: []File{{ID: NoFileID}}}
}

// Add registers a new file and returns its FileID.
func (fs *FileSet) Add(path string, content []byte) FileID {
	idx, err := safecast.Conv[uint32](len(fs.files))
	if err != nil {
		panic(fmt.Errorf("source: file set overflow: %w", err))
	}
	id := FileID(idx)
	fs.files = append(fs.files, File{ID: id, Path: path, Content: content})
	return id
}

// Get returns the file for id, or false if id is not registered.
func (fs *FileSet) Get(id FileID) (File, bool) {
	if id == NoFileID || int(id) >= len(fs.files) {
		return File{}, false
	}
	return fs.files[id], true
}

// Text returns the byte range of the file that the span refers to.
func (fs *FileSet) Text(sp Span) string {
	f, ok := fs.Get(sp.File)
	if !ok || sp.End > safeLen(f.Content) || sp.Start > sp.End {
		return ""
	}
	return string(f.Content[sp.Start:sp.End])
}

func safeLen(b []byte) uint32 {
	n, err := safecast.Conv[uint32](len(b))
	if err != nil {
		return 0
	}
	return n
}

// LineCol converts a byte offset within a file to a 1-based line/column
// pair, scanning from the start of the file content.
func (fs *FileSet) LineCol(file FileID, offset uint32) (line, col uint32) {
	f, ok := fs.Get(file)
	if !ok {
		return 1, 1
	}
	line, col = 1, 1
	for i, b := range f.Content {
		iu, err := safecast.Conv[uint32](i)
		if err != nil || iu >= offset {
			break
		}
		if b == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}
