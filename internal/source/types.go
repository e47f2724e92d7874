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
	// FileHadBOM marks a UTF-8 byte order mark stripped on load.
	FileHadBOM
	// FileNormalizedCRLF marks content whose \r\n line endings were rewritten to \n.
	FileNormalizedCRLF
	// FileDecodedUTF16 marks content transcoded from UTF-16 to UTF-8.
	FileDecodedUTF16
)

// File captures metadata and content for a single source file.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // offsets of every '\n'
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}
