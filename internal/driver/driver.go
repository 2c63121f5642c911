package driver

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"fortio.org/safecast"
	"golang.org/x/sync/errgroup"

	"moveide/internal/diag"
	"moveide/internal/fixture"
	"moveide/internal/ide"
	"moveide/internal/observ"
	"moveide/internal/source"
	"moveide/internal/trace"
)

type Options struct {
	Jobs           int // <= 0 means GOMAXPROCS
	MaxDiagnostics int // <= 0 means unlimited
	Cache          *DiskCache
	Progress       ProgressSink
}

// FileResult is the outcome for one fixture.
type FileResult struct {
	Fixture string
	Source  source.FileID
	// Info holds what was recorded for this fixture. After Analyze returns
	// it has been merged into Result.Info and is empty.
	Info   *ide.IDEInfo
	Diags  []diag.Diagnostic
	Cached bool
	Failed bool // the source could not be loaded
}

type Result struct {
	FileSet *source.FileSet
	Files   []FileResult
	// Info is every annotation of the analysed fixtures, in fixture path
	// order, frozen. Fixtures served from the cache contribute only
	// diagnostics.
	Info  *ide.IDEInfo
	Bag   *diag.Bag
	Timer *observ.Timer
}

// Analyze runs the pipeline over target (a fixture or a directory of
// fixtures). A failing source load becomes an IO diagnostic; malformed
// fixtures and cancellation abort the run and discard all partial results.
func Analyze(ctx context.Context, target string, opts Options) (*Result, error) {
	tracer := trace.FromContext(ctx)
	root := trace.Begin(tracer, trace.ScopeDriver, "analyze", trace.ParentSpan(ctx))
	defer root.End("")

	timer := observ.NewTimer()

	phase := timer.Begin("load")
	sp := trace.Begin(tracer, trace.ScopePass, "load", root.ID())
	files, baseDir, err := listFixtures(target)
	if err != nil {
		return nil, err
	}
	for _, path := range files {
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusQueued})
	}
	fs := source.NewFileSetWithBase(baseDir)
	results := make([]FileResult, len(files))
	fixtures := make([]*fixture.Fixture, len(files))
	// FileSet не потокобезопасен: все файлы грузим до параллельной части
	for i, path := range files {
		results[i] = FileResult{Fixture: path, Info: ide.NewIDEInfo()}
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusWorking})
		fx, err := fixture.Open(fs, path)
		var srcErr *fixture.SourceError
		switch {
		case errors.As(err, &srcErr):
			results[i].Failed = true
			results[i].Diags = []diag.Diagnostic{sourceErrorDiagnostic(fs, srcErr)}
			emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusError, Err: err})
		case err != nil:
			emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusError, Err: err})
			return nil, err
		default:
			fixtures[i] = fx
			results[i].Source = fx.Source
		}
	}
	sp.WithExtra("files", fmt.Sprint(len(files))).End("")
	timer.End(phase, fmt.Sprintf("%d fixtures", len(files)))

	phase = timer.Begin("analyze")
	sp = trace.Begin(tracer, trace.ScopePass, "analyze", root.ID())
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(jobs, len(files))))
	for i, fx := range fixtures {
		if fx == nil {
			continue
		}
		g.Go(func() error {
			// отмена проверяется только между файлами
			if err := gctx.Err(); err != nil {
				return err
			}
			return analyzeOne(trace.WithParent(gctx, sp.ID()), fs, fx, &results[i], opts)
		})
	}
	if err := g.Wait(); err != nil {
		sp.End("aborted")
		return nil, err
	}
	sp.End("")
	timer.End(phase, "")

	phase = timer.Begin("merge")
	merged := ide.NewIDEInfo()
	bag := diag.NewBag(opts.MaxDiagnostics)
	for i := range results {
		merged.Merge(results[i].Info)
		for _, d := range results[i].Diags {
			bag.Add(d)
		}
	}
	merged.Freeze()
	timer.End(phase, fmt.Sprintf("%d annotations", merged.Len()))

	return &Result{
		FileSet: fs,
		Files:   results,
		Info:    merged,
		Bag:     bag,
		Timer:   timer,
	}, nil
}

func analyzeOne(ctx context.Context, fs *source.FileSet, fx *fixture.Fixture, res *FileResult, opts Options) error {
	tracer := trace.FromContext(ctx)
	sp := trace.Begin(tracer, trace.ScopeFile, "file:"+fs.RelPath(fx.Source), trace.ParentSpan(ctx))
	defer sp.End("")
	started := time.Now()
	cache := opts.Cache

	// Replay всегда: Result.Info должен содержать все факты, кэш экономит только рендер.
	emit(opts.Progress, Event{File: fx.Path, Stage: StageReplay, Status: StatusWorking})
	res.Info.SetTracer(tracer)
	if err := fx.Replay(fs, res.Info); err != nil {
		emit(opts.Progress, Event{File: fx.Path, Stage: StageReplay, Status: StatusError, Err: err})
		return err
	}

	var payload DiskPayload
	hit, err := cache.Get(fx.Digest, &payload)
	if err != nil {
		// битый кэш не должен ронять прогон
		trace.Point(tracer, trace.ScopeFile, "cache:error", err.Error())
		hit = false
	}
	if hit && payload.Annotations == res.Info.Len() {
		res.Diags = payload.diagnostics(fx.Source)
		res.Cached = true
		sp.WithExtra("cache", "hit")
		emit(opts.Progress, Event{File: fx.Path, Stage: StageRender, Status: StatusCached, Elapsed: time.Since(started)})
		return nil
	}

	emit(opts.Progress, Event{File: fx.Path, Stage: StageRender, Status: StatusWorking})
	res.Diags = ide.RenderAll(res.Info)
	if err := cache.Put(fx.Digest, toPayload(fx.Path, res.Info.Len(), res.Diags)); err != nil {
		trace.Point(tracer, trace.ScopeFile, "cache:error", err.Error())
	}
	emit(opts.Progress, Event{File: fx.Path, Stage: StageRender, Status: StatusDone, Elapsed: time.Since(started)})
	return nil
}

// sourceErrorDiagnostic anchors a load failure at the `source` value inside
// the fixture, so it is reported like any other diagnostic.
func sourceErrorDiagnostic(fs *source.FileSet, e *fixture.SourceError) diag.Diagnostic {
	msg := fmt.Sprintf("cannot load source %q: %v", e.Path, e.Err)
	if errors.Is(e.Err, os.ErrNotExist) {
		msg = fmt.Sprintf("source file %q does not exist", e.Path)
	}
	id, err := fs.Load(e.Fixture)
	if err != nil {
		// фикстура уже прочитана один раз, но могла исчезнуть
		id = fs.AddVirtual(e.Fixture, nil)
	}
	sp := source.Span{File: id}
	content := string(fs.Get(id).Content)
	if idx := strings.Index(content, `"`+e.Path+`"`); idx >= 0 {
		start, errStart := safecast.Conv[uint32](idx)
		width, errWidth := safecast.Conv[uint32](len(e.Path) + 2)
		if errStart == nil && errWidth == nil {
			sp.Start, sp.End = start, start+width
		}
	}
	return diag.NewError(diag.IOLoadFileError, sp, msg)
}
