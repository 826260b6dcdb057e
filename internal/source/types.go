package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about a source file.
	FileFlags uint8
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota
	// FileHasBOM marks content starting with a UTF-8 byte order mark.
	FileHasBOM
	// FileHasCRLF marks content that uses \r\n line endings somewhere.
	FileHasCRLF
)

// File captures metadata and content for a single source file.
// Content is kept byte-for-byte as read: fixers must be able to
// regenerate it exactly, so nothing is normalized on load.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}
