package driver

import (
	"context"
	"errors"
	"fmt"

	"akuru/internal/diag"
	"akuru/internal/lexer"
	"akuru/internal/observ"
	"akuru/internal/source"
	"akuru/internal/token"
	"akuru/internal/trace"
)

// ErrNilSession is returned when an operation is invoked on a nil session.
var ErrNilSession = errors.New("driver: nil session")

// Session owns everything that outlives a single lexer: the source map that
// spans point into and the interner that identifier handles resolve against.
// Tokens and diagnostics produced by a session stay valid while it lives.
type Session struct {
	Sources  *source.SourceMap
	Interner *source.Interner
}

// NewSession creates an empty session. baseDir is used for relative path
// display; "" means the working directory.
func NewSession(baseDir string) *Session {
	return &Session{
		Sources:  source.NewSourceMapWithBase(baseDir),
		Interner: source.NewInterner(),
	}
}

// Load adds path to the session. A path the session already holds is not
// read again; its existing FileID is returned.
func (s *Session) Load(path string) (source.FileID, error) {
	if id, ok := s.Sources.GetLatest(path); ok {
		return id, nil
	}
	return s.Sources.Load(path)
}

// Options configures a driver run.
type Options struct {
	// BaseDir is the root for relative path display; "" means the working
	// directory for files and the scanned directory for TokenizeDir.
	BaseDir        string
	MaxDiagnostics int
	// Jobs bounds directory-level parallelism; 0 means GOMAXPROCS.
	Jobs     int
	Progress ProgressSink
	// Cache, when set, serves token streams of unchanged files from disk.
	Cache *DiskCache
}

func (o Options) lexerOptions(s *Session) lexer.Options {
	return lexer.Options{Interner: s.Interner, MaxDiagnostics: o.MaxDiagnostics}
}

// TokenizeResult holds the output of tokenizing one file.
type TokenizeResult struct {
	Session *Session
	FileID  source.FileID
	Tokens  []token.Token
	Bag     *diag.Bag
	// Cached reports whether the tokens came from the disk cache.
	Cached bool
	Timer  *observ.Timer
}

// Tokenize lexes a file that is already in the session.
func (s *Session) Tokenize(id source.FileID, opts lexer.Options) ([]token.Token, *diag.Bag) {
	if opts.Interner == nil {
		opts.Interner = s.Interner
	}
	return lexer.Tokenize(s.Sources.Get(id), opts)
}

// tokenizeFile lexes id, consulting the disk cache first.
func (s *Session) tokenizeFile(ctx context.Context, id source.FileID, opts Options, parent uint64) (toks []token.Token, bag *diag.Bag, cached bool) {
	src := s.Sources.Get(id)
	tracer := trace.FromContext(ctx)

	if opts.Cache != nil {
		span := trace.Begin(tracer, trace.ScopeFile, "cache_get", parent).WithExtra("file", src.Path)
		toks, bag, ok, err := opts.Cache.Load(src, s.Interner, opts.MaxDiagnostics)
		switch {
		case err != nil:
			span.End("error: " + err.Error())
		case ok:
			span.End("hit")
			return toks, bag, true
		default:
			span.End("miss")
		}
	}

	span := trace.Begin(tracer, trace.ScopeFile, "lex", parent).WithExtra("file", src.Path)
	toks, bag = lexer.Tokenize(src, opts.lexerOptions(s))
	span.WithExtra("tokens", fmt.Sprint(len(toks))).
		WithExtra("diagnostics", fmt.Sprint(bag.Len())).
		End("")

	if opts.Cache != nil {
		if err := opts.Cache.Store(src, toks, bag, opts.MaxDiagnostics); err != nil {
			trace.Point(tracer, trace.ScopeFile, "cache_put", parent, err.Error())
		}
	}
	return toks, bag, false
}

// Tokenize loads path into a fresh session and lexes it. A file that cannot
// be read is returned as a *source.LoadError; lexical problems never become
// Go errors.
func Tokenize(ctx context.Context, path string, opts Options) (*TokenizeResult, error) {
	tracer := trace.FromContext(ctx)
	root := trace.Begin(tracer, trace.ScopeDriver, "tokenize", 0).WithExtra("path", path)
	defer root.End("")

	sess := NewSession(opts.BaseDir)
	timer := observ.NewTimer()

	idx := timer.Begin("load")
	emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusWorking})
	id, err := sess.Load(path)
	timer.End(idx, "")
	if err != nil {
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusError, Err: err})
		return nil, err
	}

	idx = timer.Begin("lex")
	emit(opts.Progress, Event{File: path, Stage: StageLex, Status: StatusWorking})
	toks, bag, cached := sess.tokenizeFile(ctx, id, opts, root.ID())
	note := ""
	if cached {
		note = "cached"
	}
	timer.End(idx, note)
	emit(opts.Progress, Event{File: path, Stage: StageLex, Status: finalStatus(bag), Elapsed: timer.Total()})

	return &TokenizeResult{
		Session: sess,
		FileID:  id,
		Tokens:  toks,
		Bag:     bag,
		Cached:  cached,
		Timer:   timer,
	}, nil
}

func finalStatus(bag *diag.Bag) Status {
	if bag != nil && bag.HasErrors() {
		return StatusError
	}
	return StatusDone
}
