package driver

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"akuru/internal/diag"
	"akuru/internal/source"
	"akuru/internal/token"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 1

// DiskCache хранит токены и диагностики файлов на диске, ключ: хеш содержимого.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is the on-disk form of one tokenized file. Spans are stored
// without their FileID and rebound to the loading file on restore.
type DiskPayload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16

	Tokens      []CachedToken
	Diagnostics []CachedDiagnostic
}

// CachedToken is a token without its file and interner bindings.
type CachedToken struct {
	Kind  uint8
	Start uint32
	End   uint32
}

// CachedDiagnostic mirrors diag.Diagnostic with file-less labels.
type CachedDiagnostic struct {
	Kind    uint8
	Code    uint16
	Message string
	Labels  []CachedLabel
}

// CachedLabel mirrors diag.Label.
type CachedLabel struct {
	Start   uint32
	End     uint32
	Style   uint8
	Before  string
	After   string
	Snippet bool
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return NewDiskCache(filepath.Join(base, app))
}

// NewDiskCache opens a cache rooted at dir, creating it if needed.
func NewDiskCache(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache dir: %w", err)
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string {
	return c.dir
}

// Key derives the cache key of a file: the content hash plus the diagnostic
// cap, since the cap changes which diagnostics get stored.
func Key(hash [32]byte, maxDiagnostics int) [32]byte {
	h := sha256.New()
	_, _ = h.Write(hash[:])
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(max(maxDiagnostics, 0)))
	_, _ = h.Write(buf[:])
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

func (c *DiskCache) pathFor(key [32]byte) string {
	hexKey := hex.EncodeToString(key[:])
	// подкаталог "tokens": проще чистить руками
	return filepath.Join(c.dir, "tokens", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key [32]byte, payload *DiskPayload) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err = os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	payload.Schema = diskCacheSchemaVersion
	if err = msgpack.NewEncoder(f).Encode(payload); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads and deserializes a payload from the disk cache. A missing entry
// or one written by another schema version is a miss, not an error.
func (c *DiskCache) Get(key [32]byte, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, fmt.Errorf("corrupt cache entry: %w", err)
	}
	if out.Schema != diskCacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll removes every cached entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "tokens"))
}

// Store caches the result of lexing src.
func (c *DiskCache) Store(src *source.Source, toks []token.Token, bag *diag.Bag, maxDiagnostics int) error {
	return c.Put(Key(src.Hash, maxDiagnostics), toPayload(toks, bag))
}

// Load restores the tokens and diagnostics of src from the cache. Spans are
// rebound to src and identifiers are re-interned into interner.
func (c *DiskCache) Load(src *source.Source, interner *source.Interner, maxDiagnostics int) ([]token.Token, *diag.Bag, bool, error) {
	var payload DiskPayload
	ok, err := c.Get(Key(src.Hash, maxDiagnostics), &payload)
	if err != nil || !ok {
		return nil, nil, false, err
	}
	toks, bag, err := fromPayload(&payload, src, interner, maxDiagnostics)
	if err != nil {
		return nil, nil, false, err
	}
	return toks, bag, true, nil
}

func toPayload(toks []token.Token, bag *diag.Bag) *DiskPayload {
	payload := &DiskPayload{
		Tokens: make([]CachedToken, len(toks)),
	}
	for i, tok := range toks {
		payload.Tokens[i] = CachedToken{Kind: uint8(tok.Kind), Start: tok.Span.Start, End: tok.Span.End}
	}
	if bag == nil {
		return payload
	}
	items := bag.Items()
	payload.Diagnostics = make([]CachedDiagnostic, len(items))
	for i := range items {
		d := &items[i]
		cd := CachedDiagnostic{
			Kind:    uint8(d.Kind),
			Code:    uint16(d.Code),
			Message: d.Message,
			Labels:  make([]CachedLabel, len(d.Labels)),
		}
		for j, l := range d.Labels {
			cd.Labels[j] = CachedLabel{
				Start:   l.Span.Start,
				End:     l.Span.End,
				Style:   uint8(l.Style),
				Before:  l.Message.Before,
				After:   l.Message.After,
				Snippet: l.Message.Snippet,
			}
		}
		payload.Diagnostics[i] = cd
	}
	return payload
}

func fromPayload(payload *DiskPayload, src *source.Source, interner *source.Interner, maxDiagnostics int) ([]token.Token, *diag.Bag, error) {
	size := uint32(len(src.Content))
	spanOf := func(start, end uint32) (source.Span, error) {
		if start > end || end > size {
			return source.Span{}, fmt.Errorf("cached span %d..%d outside of %s", start, end, src.Path)
		}
		return source.Span{File: src.ID, Start: start, End: end}, nil
	}

	toks := make([]token.Token, len(payload.Tokens))
	for i, ct := range payload.Tokens {
		sp, err := spanOf(ct.Start, ct.End)
		if err != nil {
			return nil, nil, err
		}
		kind := token.Kind(ct.Kind)
		if !kind.Valid() {
			return nil, nil, fmt.Errorf("cached token kind %d is unknown", ct.Kind)
		}
		tok := token.Token{Kind: kind, Span: sp, Text: src.Text(sp)}
		if kind == token.Ident && interner != nil {
			tok.Sym = interner.Intern(tok.Text)
		}
		toks[i] = tok
	}

	bag := diag.NewBag(maxDiagnostics)
	for _, cd := range payload.Diagnostics {
		d := diag.Diagnostic{
			Kind:    diag.Kind(cd.Kind),
			Code:    diag.Code(cd.Code),
			Message: cd.Message,
		}
		for _, cl := range cd.Labels {
			sp, err := spanOf(cl.Start, cl.End)
			if err != nil {
				return nil, nil, err
			}
			d.Labels = append(d.Labels, diag.Label{
				Span:    sp,
				Style:   diag.Style(cl.Style),
				Message: diag.LabelMessage{Before: cl.Before, After: cl.After, Snippet: cl.Snippet},
			})
		}
		bag.Push(d)
	}
	return toks, bag, nil
}
