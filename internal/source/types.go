package source

type (
	// FileID uniquely identifies a source file within a SourceMap.
	FileID uint32 // индекс в SourceMap, выдаётся по порядку вставки
	// FileFlags encodes metadata about a source file.
	FileFlags uint8
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota // добавлен не с диска (тест, stdin)
	FileHadBOM
	FileNormalizedCRLF
)

// Source captures the content of a single loaded file together with its line index.
// A Source is never mutated after it has been added to a SourceMap.
type Source struct {
	ID      FileID
	Path    string
	Content []byte
	// LineOffsets[i]: байтовое смещение первого символа строки i (0-based).
	// LineOffsets[0] == 0, значения строго возрастают.
	LineOffsets []uint32
	Hash        [32]byte
	Flags       FileFlags
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based, in bytes
}

// Position is the projection of a span onto lines and columns.
// A span inside one line yields exactly one entry; a span crossing lines
// yields one entry per touched line.
type Position struct {
	Lines []LineCol
}

// Single builds a single-line position.
func Single(line, col uint32) Position {
	return Position{Lines: []LineCol{{Line: line, Col: col}}}
}

// Multi builds a multi-line position from the given entries.
func Multi(lines ...LineCol) Position {
	return Position{Lines: lines}
}

// IsMulti reports whether the position spans more than one line.
func (p Position) IsMulti() bool {
	return len(p.Lines) > 1
}

// Start returns the first line/column pair.
func (p Position) Start() LineCol {
	if len(p.Lines) == 0 {
		return LineCol{}
	}
	return p.Lines[0]
}
