package driver

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"akuru/internal/diag"
	"akuru/internal/observ"
	"akuru/internal/source"
	"akuru/internal/token"
	"akuru/internal/trace"
)

// SourceExt is the file extension of akuru sources.
const SourceExt = ".ak"

// TokenizeDirResult содержит результат токенизации одного файла
type TokenizeDirResult struct {
	Path   string        // путь к файлу, как его нашёл обход
	FileID source.FileID // ID файла в SourceMap; не определён, если Loaded == false
	Loaded bool
	Tokens []token.Token
	Bag    *diag.Bag
	Cached bool
}

// DirResult is the output of TokenizeDir.
type DirResult struct {
	Session *Session
	Files   []TokenizeDirResult
	Timer   *observ.Timer
}

// HasErrors reports whether any file produced an error diagnostic.
func (r *DirResult) HasErrors() bool {
	for i := range r.Files {
		if b := r.Files[i].Bag; b != nil && b.HasErrors() {
			return true
		}
	}
	return false
}

// Diagnostics collects the diagnostics of every file, in file order, into one bag.
func (r *DirResult) Diagnostics() *diag.Bag {
	all := diag.NewBag(0)
	for i := range r.Files {
		all.Append(r.Files[i].Bag)
	}
	return all
}

// ListSourceFiles возвращает отсортированный список всех *.ak файлов в директории
func ListSourceFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && filepath.Ext(path) == SourceExt {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}

// TokenizeDir токенизирует все *.ak файлы в директории параллельно.
// Files are loaded sequentially so FileIDs follow path order; lexing runs on
// up to opts.Jobs goroutines sharing the session interner. A file that fails
// to load gets an IO diagnostic in its own bag instead of aborting the run.
func TokenizeDir(ctx context.Context, dir string, opts Options) (*DirResult, error) {
	tracer := trace.FromContext(ctx)
	root := trace.Begin(tracer, trace.ScopeDriver, "tokenize_dir", 0).WithExtra("dir", dir)
	defer root.End("")

	timer := observ.NewTimer()
	base := opts.BaseDir
	if base == "" {
		base = dir
	}
	sess := NewSession(base)
	res := &DirResult{Session: sess, Timer: timer}

	idx := timer.Begin("scan")
	files, err := ListSourceFiles(dir)
	timer.End(idx, fmt.Sprintf("%d files", len(files)))
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return res, nil
	}

	for _, path := range files {
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusQueued})
	}

	// Предзагрузка: SourceMap не потокобезопасен на запись
	idx = timer.Begin("load")
	loadSpan := trace.Begin(tracer, trace.ScopePass, "load", root.ID())
	res.Files = make([]TokenizeDirResult, len(files))
	loadErrors := make(map[int]error)
	for i, path := range files {
		res.Files[i].Path = path
		id, loadErr := sess.Load(path)
		if loadErr != nil {
			loadErrors[i] = loadErr
			continue
		}
		res.Files[i].FileID = id
		res.Files[i].Loaded = true
	}
	loadSpan.End(fmt.Sprintf("%d failed", len(loadErrors)))
	timer.End(idx, "")

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	idx = timer.Begin("lex")
	lexSpan := trace.Begin(tracer, trace.ScopePass, "lex", root.ID())
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i := range res.Files {
		g.Go(func() error {
			// Проверка отмены
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			// индекс i уникален для горутины, мьютекс не нужен
			item := &res.Files[i]
			started := time.Now()

			if loadErr, failed := loadErrors[i]; failed {
				item.Bag = loadFailure(loadErr, opts.MaxDiagnostics)
				emit(opts.Progress, Event{File: item.Path, Stage: StageLoad, Status: StatusError, Err: loadErr})
				return nil
			}

			emit(opts.Progress, Event{File: item.Path, Stage: StageLex, Status: StatusWorking})
			item.Tokens, item.Bag, item.Cached = sess.tokenizeFile(gctx, item.FileID, opts, lexSpan.ID())

			stage := StageLex
			if item.Cached {
				stage = StageCache
			}
			emit(opts.Progress, Event{File: item.Path, Stage: stage, Status: finalStatus(item.Bag), Elapsed: time.Since(started)})
			return nil
		})
	}

	err = g.Wait()
	lexSpan.End("")
	timer.End(idx, "")
	if err != nil {
		return res, err
	}
	return res, nil
}

// loadFailure turns a load error into a bag holding one label-less IO diagnostic.
func loadFailure(err error, maxDiagnostics int) *diag.Bag {
	bag := diag.NewBag(maxDiagnostics)
	bag.Push(diag.Error("failed to load file: " + err.Error()).WithCode(diag.IOLoadFileError))
	return bag
}
