package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about a source file.
	FileFlags uint8
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota // добавлен не с диска (тест, stdin)
	// FileHadBOM marks a file whose UTF-8 BOM was stripped on load.
	FileHadBOM
	// FileCRLF marks a file whose first line ending is "\r\n".
	FileCRLF
)

// File captures metadata and content for a single source file.
// Content is kept byte-exact except for a stripped BOM.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Flags   FileFlags
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}

// Newline returns the line terminator used by the file.
func (f *File) Newline() string {
	if f != nil && f.Flags&FileCRLF != 0 {
		return "\r\n"
	}
	return "\n"
}

// Restore returns data with the metadata stripped on load put back.
func (f *File) Restore(data []byte) []byte {
	if f == nil || f.Flags&FileHadBOM == 0 {
		return data
	}
	out := make([]byte, 0, len(data)+len(utf8BOM))
	out = append(out, utf8BOM...)
	return append(out, data...)
}
