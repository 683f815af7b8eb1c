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
	// FileHasBOM marks content that starts with a UTF-8 byte order mark.
	// The mark is kept in Content; offsets always count it.
	FileHasBOM
	// FileHasCRLF marks content containing at least one "\r\n" pair.
	// Content is never rewritten, so "\r" stays part of the line.
	FileHasCRLF
)

// File captures metadata and raw content for a single source file.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	// LineIdx holds the byte offset of every '\n' in Content.
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based, counted in bytes
}
