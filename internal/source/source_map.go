package source

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"fortio.org/safecast"
)

var (
	// ErrFileNotFound reports that a path passed to Load does not exist.
	ErrFileNotFound = errors.New("file not found")
	// ErrIO reports any other failure while reading a source file.
	ErrIO = errors.New("i/o error")
)

// LoadError is returned by SourceMap.Load. It never enters a diagnostics bag.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if errors.Is(e.Err, fs.ErrNotExist) {
		return fmt.Sprintf("%s: %v", e.Path, ErrFileNotFound)
	}
	return fmt.Sprintf("%s: %v: %v", e.Path, ErrIO, e.Err)
}

func (e *LoadError) Unwrap() []error {
	if errors.Is(e.Err, fs.ErrNotExist) {
		return []error{ErrFileNotFound, e.Err}
	}
	return []error{ErrIO, e.Err}
}

// SourceMap is the append-only registry of every file loaded during a session.
// Concurrent reads are safe as long as no Add races them.
type SourceMap struct {
	files   []Source
	index   map[string]FileID // path -> последняя версия
	baseDir string            // базовая директория для относительных путей
}

// NewSourceMap creates a new empty SourceMap.
func NewSourceMap() *SourceMap {
	return &SourceMap{
		files:   make([]Source, 0),
		index:   make(map[string]FileID),
		baseDir: "", // будет взят из cwd, если не задан явно
	}
}

// NewSourceMapWithBase создаёт SourceMap с заданной базовой директорией.
func NewSourceMapWithBase(baseDir string) *SourceMap {
	sm := NewSourceMap()
	sm.baseDir = baseDir
	return sm
}

// SetBaseDir устанавливает базовую директорию для относительных путей.
func (sm *SourceMap) SetBaseDir(dir string) {
	sm.baseDir = dir
}

// BaseDir возвращает текущую базовую директорию.
func (sm *SourceMap) BaseDir() string {
	if sm.baseDir == "" {
		if wd, err := os.Getwd(); err == nil {
			return wd
		}
	}
	return sm.baseDir
}

// Add stores a file from normalized bytes, computes its line index and hash, and returns a new FileID.
// It always creates a new FileID even if a file with the same path already exists.
func (sm *SourceMap) Add(path string, content []byte, flags FileFlags) FileID {
	if _, err := safecast.Conv[uint32](len(content)); err != nil {
		panic(fmt.Errorf("file %s is too large: %w", path, err))
	}
	lenFiles, err := safecast.Conv[uint32](len(sm.files))
	if err != nil {
		panic(fmt.Errorf("len files overflow: %w", err))
	}
	normalizedPath := normalizePath(path)

	id := FileID(lenFiles)
	sm.files = append(sm.files, Source{
		ID:          id,
		Path:        normalizedPath,
		Content:     content,
		LineOffsets: buildLineOffsets(content),
		Hash:        sha256.Sum256(content),
		Flags:       flags,
	})
	// Всегда обновляем индекс на последнюю версию файла
	sm.index[normalizedPath] = id
	return id
}

// Load reads a file from disk, normalizes CRLF/BOM, and calls Add.
func (sm *SourceMap) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, &LoadError{Path: path, Err: err}
	}

	content, hadBOM := removeBOM(content)
	content, hadCRLF := normalizeCRLF(content)

	flags := FileFlags(0)
	if hadBOM {
		flags |= FileHadBOM
	}
	if hadCRLF {
		flags |= FileNormalizedCRLF
	}
	return sm.Add(path, content, flags), nil
}

// AddVirtual adds an in-memory file (stdin, test, or generated) with the FileVirtual flag.
// Content is stored as given.
func (sm *SourceMap) AddVirtual(name string, content []byte) FileID {
	return sm.Add(name, content, FileVirtual)
}

// Get returns the file for the given ID. An unknown ID is a programmer error.
func (sm *SourceMap) Get(id FileID) *Source {
	if int(id) >= len(sm.files) {
		panic(fmt.Errorf("unknown file id %d (have %d files)", id, len(sm.files)))
	}
	return &sm.files[id]
}

// Lookup is the non-panicking variant of Get.
func (sm *SourceMap) Lookup(id FileID) (*Source, bool) {
	if int(id) >= len(sm.files) {
		return nil, false
	}
	return &sm.files[id], true
}

// Len returns the number of registered files.
func (sm *SourceMap) Len() int {
	return len(sm.files)
}

// GetLatest returns the latest file ID for the given path, if it exists.
func (sm *SourceMap) GetLatest(path string) (FileID, bool) {
	id, ok := sm.index[normalizePath(path)]
	return id, ok
}

// Resolve projects a span onto line/column positions using its file.
func (sm *SourceMap) Resolve(span Span) Position {
	return sm.Get(span.File).ResolvePosition(span)
}

// ResolvePosition projects span onto the lines it touches.
// Columns are byte offsets from the line start, 1-based.
func (src *Source) ResolvePosition(span Span) Position {
	startLine := src.lineOf(span.Start)
	endLine := src.lineOf(span.End)

	if startLine == endLine {
		col := span.Start - src.LineOffsets[startLine]
		return Single(uint32(startLine)+1, col+1)
	}

	lines := make([]LineCol, 0, endLine-startLine+1)
	for line := startLine; line <= endLine; line++ {
		lineStart := src.LineOffsets[line]
		var col uint32
		switch line {
		case startLine:
			col = span.Start - lineStart
		case endLine:
			col = span.End - lineStart
		default:
			col = 0 // промежуточные строки подчёркиваются с начала
		}
		lines = append(lines, LineCol{Line: uint32(line) + 1, Col: col + 1})
	}
	return Multi(lines...)
}

// lineOf returns the 0-based line containing off.
func (src *Source) lineOf(off uint32) int {
	// бинпоиск: точное попадание: начало строки, иначе точка вставки минус один
	idx := sort.Search(len(src.LineOffsets), func(i int) bool {
		return src.LineOffsets[i] >= off
	})
	if idx < len(src.LineOffsets) && src.LineOffsets[idx] == off {
		return idx
	}
	return idx - 1
}

// LineCount returns the number of lines, counting the (possibly empty) last one.
func (src *Source) LineCount() int {
	return len(src.LineOffsets)
}

// Line returns the 1-based line without its trailing newline.
// Out of range lines yield an empty string.
func (src *Source) Line(lineNum uint32) string {
	if lineNum == 0 || int(lineNum) > len(src.LineOffsets) {
		return ""
	}
	start := src.LineOffsets[lineNum-1]
	end := uint32(len(src.Content))
	if int(lineNum) < len(src.LineOffsets) {
		end = src.LineOffsets[lineNum]
	}
	line := src.Content[start:end]
	for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
		line = line[:len(line)-1]
	}
	return string(line)
}

// Text returns the exact source text under span, clamped to the content.
func (src *Source) Text(span Span) string {
	n := uint32(len(src.Content))
	start, end := min(span.Start, n), min(span.End, n)
	if start > end {
		return ""
	}
	return string(src.Content[start:end])
}

// FormatPath форматирует путь к файлу в зависимости от режима.
// mode: "absolute", "relative", "basename", "auto"
// baseDir: базовая директория для относительных путей (игнорируется для других режимов)
func (src *Source) FormatPath(mode, baseDir string) string {
	switch mode {
	case "absolute":
		if abs, err := AbsolutePath(src.Path); err == nil {
			return abs
		}
		return src.Path

	case "relative":
		if baseDir == "" {
			if wd, err := os.Getwd(); err == nil {
				baseDir = wd
			}
		}
		if rel, err := RelativePath(src.Path, baseDir); err == nil {
			return rel
		}
		return src.Path

	case "basename":
		return BaseName(src.Path)

	case "auto":
		// Auto: если путь короткий или относительный - как есть, иначе basename
		if len(src.Path) < 40 || !filepath.IsAbs(src.Path) {
			return src.Path
		}
		return BaseName(src.Path)

	default:
		return src.Path
	}
}
