// Package loader runs the read, decode, parse and normalize pipeline and
// publishes the result as the current model.
//
// Loads are serialized: a new load cancels the one in flight, and a load
// that was overtaken never publishes. Readers always see either the
// previous model or the new one.
package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"mineview/internal/decoder"
	"mineview/internal/log"
	"mineview/internal/mine"
	"mineview/internal/parser"
)

// Progress milestones, in percent.
const (
	ProgressStarted = 0
	ProgressRead    = 30
	ProgressDecoded = 50
	ProgressParsed  = 90
	ProgressDone    = 100
)

// ErrSuperseded is returned by a load that a newer load overtook.
var ErrSuperseded = errors.New("load superseded by a newer one")

// IOFailure means the bytes could not be read, or the read was cancelled.
type IOFailure struct {
	Source string
	Err    error
}

func (e *IOFailure) Error() string {
	return fmt.Sprintf("failed to read %s: %v", e.Source, e.Err)
}

func (e *IOFailure) Unwrap() error {
	return e.Err
}

// Model is one successfully loaded mine.
type Model struct {
	ID       uuid.UUID
	Source   string
	Graph    *mine.Graph
	Extent   mine.Extent
	LoadedAt time.Time
}

// Status is the loading state shown to the user.
type Status struct {
	Loading  bool
	Progress int
	Message  string
	Err      error
}

// Observer is told about every load outcome. The metrics package
// implements it.
type Observer interface {
	LoadStarted()
	LoadSucceeded(m *Model, elapsed time.Duration)
	LoadFailed(err error, elapsed time.Duration)
}

// Option configures a Loader.
type Option func(*Loader)

// WithStatus sets the status sink. It is called synchronously from the
// loading goroutine.
func WithStatus(fn func(Status)) Option {
	return func(l *Loader) { l.status = fn }
}

// WithObserver adds an observer.
func WithObserver(o Observer) Option {
	return func(l *Loader) { l.observers = append(l.observers, o) }
}

// Loader owns the current model.
type Loader struct {
	current atomic.Pointer[Model]

	mu         sync.Mutex
	generation uint64
	cancel     context.CancelFunc
	onPublish  []func(*Model)

	// delivery serializes publish callbacks so they see models in
	// generation order
	delivery sync.Mutex

	status    func(Status)
	observers []Observer
	now       func() time.Time
}

// New returns a loader with no model.
func New(opts ...Option) *Loader {
	l := &Loader{now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Current returns the published model or nil.
func (l *Loader) Current() *Model {
	return l.current.Load()
}

// OnPublish registers a callback run after each successful publish,
// outside the loader's lock. Callbacks of different loads never overlap and
// a superseded model is never delivered after a newer one, so a callback
// must not start a load and wait for it.
func (l *Loader) OnPublish(fn func(*Model)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onPublish = append(l.onPublish, fn)
}

// Reset cancels any load in flight and drops the current model.
func (l *Loader) Reset() {
	l.mu.Lock()
	l.generation++
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.current.Store(nil)
	l.mu.Unlock()

	l.emit(Status{})
	log.Debug("loader reset")
}

// LoadFile opens path and loads it.
func (l *Loader) LoadFile(ctx context.Context, path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		l.emit(Status{Err: fmt.Errorf("error loading file: %w", err)})
		return nil, &IOFailure{Source: path, Err: err}
	}
	defer f.Close()
	return l.load(ctx, path, filepath.Base(path), f)
}

// Load reads r to the end and runs the pipeline. name is shown in status
// messages and recorded as the model source.
func (l *Loader) Load(ctx context.Context, name string, r io.Reader) (*Model, error) {
	return l.load(ctx, name, name, r)
}

func (l *Loader) load(ctx context.Context, source, name string, r io.Reader) (*Model, error) {
	ctx, generation := l.begin(ctx)
	defer l.finish(generation)

	started := l.now()
	for _, o := range l.observers {
		o.LoadStarted()
	}

	m, err := l.run(ctx, generation, source, name, r)
	elapsed := l.now().Sub(started)
	if err != nil {
		if !errors.Is(err, ErrSuperseded) {
			l.emitFor(generation, Status{Err: fmt.Errorf("error loading file: %w", err)})
		}
		for _, o := range l.observers {
			o.LoadFailed(err, elapsed)
		}
		log.Warn("load failed", "source", source, "error", err)
		return nil, err
	}

	for _, o := range l.observers {
		o.LoadSucceeded(m, elapsed)
	}
	stats := m.Graph.Statistics()
	log.Info("mine loaded",
		"source", source,
		"id", m.ID,
		"nodes", stats.Nodes,
		"sections", stats.Sections,
		"excavations", stats.Excavations,
		"horizons", stats.Horizons,
		"elapsed", elapsed)
	return m, nil
}

func (l *Loader) run(ctx context.Context, generation uint64, source, name string, r io.Reader) (*Model, error) {
	l.emitFor(generation, Status{Loading: true, Progress: ProgressStarted, Message: fmt.Sprintf("Loading file: %s...", name)})

	data, err := readAll(ctx, r)
	if err != nil {
		if l.stale(generation) {
			return nil, ErrSuperseded
		}
		return nil, &IOFailure{Source: source, Err: err}
	}
	l.emitFor(generation, Status{Loading: true, Progress: ProgressRead, Message: "Converting from windows-1251 to UTF-8..."})

	text := decoder.Decode(data)
	l.emitFor(generation, Status{Loading: true, Progress: ProgressDecoded, Message: "Parsing XML..."})

	g, err := parser.Parse(text, func(msg string) {
		l.emitFor(generation, Status{Loading: true, Progress: ProgressDecoded, Message: msg})
	})
	if err != nil {
		return nil, err
	}
	l.emitFor(generation, Status{Loading: true, Progress: ProgressParsed, Message: "Computing model center..."})

	m := &Model{
		ID:       uuid.New(),
		Source:   source,
		Graph:    g,
		Extent:   mine.ComputeExtent(g.Nodes),
		LoadedAt: l.now(),
	}

	if err := l.publish(generation, m); err != nil {
		return nil, err
	}
	l.emitFor(generation, Status{Progress: ProgressDone})
	return m, nil
}

// begin starts a new generation and cancels the previous load.
func (l *Loader) begin(parent context.Context) (context.Context, uint64) {
	ctx, cancel := context.WithCancel(parent)

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		l.cancel()
	}
	l.generation++
	l.cancel = cancel
	return ctx, l.generation
}

func (l *Loader) finish(generation uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.generation == generation && l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
}

func (l *Loader) stale(generation uint64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.generation != generation
}

// publish swaps in m unless a newer load has started, then delivers it to
// the callbacks. The generation is checked again under the delivery lock;
// a load that began while an older one was delivering waits its turn.
func (l *Loader) publish(generation uint64, m *Model) error {
	l.delivery.Lock()
	defer l.delivery.Unlock()

	l.mu.Lock()
	if l.generation != generation {
		l.mu.Unlock()
		log.Debug("discarding superseded load", "source", m.Source)
		return ErrSuperseded
	}
	l.current.Store(m)
	callbacks := slices.Clone(l.onPublish)
	l.mu.Unlock()

	for _, fn := range callbacks {
		fn(m)
	}
	return nil
}

func (l *Loader) emitFor(generation uint64, st Status) {
	if l.stale(generation) {
		return
	}
	l.emit(st)
}

func (l *Loader) emit(st Status) {
	if l.status != nil {
		l.status(st)
	}
}

// readAll reads r to the end, giving up between reads once ctx is done.
func readAll(ctx context.Context, r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(&contextReader{ctx: ctx, r: r})
	if err != nil {
		return nil, err
	}
	return data, ctx.Err()
}

type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
