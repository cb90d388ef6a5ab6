package dataset

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/iafilius/InteractiveDashboard/src/logging"
	"github.com/iafilius/InteractiveDashboard/src/metrics"
	"github.com/iafilius/InteractiveDashboard/src/types"
)

// Status is the load state shown by every chart panel.
type Status int

const (
	StatusLoading Status = iota
	StatusError
	StatusReady
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusError:
		return "error"
	case StatusReady:
		return "ready"
	default:
		return "unknown"
	}
}

// Snapshot is one published load state.
type Snapshot struct {
	Status  Status
	Data    types.Dataset
	Err     error
	Skipped int
	Path    string
}

// Source loads a dataset in the background and publishes snapshots. Subscribers
// are always called through the poster, which in the app is fyne.Do.
type Source struct {
	mu      sync.Mutex
	path    string
	delay   time.Duration
	load    func(string) (Result, error)
	post    func(func())
	log     *zap.SugaredLogger
	metrics *metrics.Collector

	current Snapshot
	gen     uint64
	subs    map[int]func(Snapshot)
	nextSub int
}

// Option configures a Source.
type Option func(*Source)

// WithDelay holds every load for d before reading, so the loading state is visible.
func WithDelay(d time.Duration) Option { return func(s *Source) { s.delay = d } }

// WithPoster sets how results are handed to the UI goroutine.
func WithPoster(post func(func())) Option { return func(s *Source) { s.post = post } }

// WithLoader replaces LoadFile (tests, alternative sources).
func WithLoader(load func(string) (Result, error)) Option {
	return func(s *Source) { s.load = load }
}

// WithLogger sets the session logger.
func WithLogger(l *zap.SugaredLogger) Option { return func(s *Source) { s.log = l } }

// WithMetrics records load outcomes.
func WithMetrics(c *metrics.Collector) Option { return func(s *Source) { s.metrics = c } }

// NewSource starts in the loading state; call Load to fetch.
func NewSource(path string, opts ...Option) *Source {
	s := &Source{
		path:    path,
		load:    LoadFile,
		post:    func(f func()) { f() },
		log:     logging.L(),
		current: Snapshot{Status: StatusLoading, Path: path},
		subs:    map[int]func(Snapshot){},
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Current returns the latest snapshot.
func (s *Source) Current() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Path returns the file currently loaded from.
func (s *Source) Path() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.path
}

// Subscribe calls fn with the current snapshot and on every change after that.
func (s *Source) Subscribe(fn func(Snapshot)) func() {
	s.mu.Lock()
	key := s.nextSub
	s.nextSub++
	s.subs[key] = fn
	cur := s.current
	s.mu.Unlock()
	fn(cur)
	return func() {
		s.mu.Lock()
		delete(s.subs, key)
		s.mu.Unlock()
	}
}

// SetPath switches the source to another file and reloads it.
func (s *Source) SetPath(ctx context.Context, path string) {
	s.mu.Lock()
	s.path = path
	s.mu.Unlock()
	s.Load(ctx)
}

// Load publishes the loading state and fetches the dataset in the background.
// A newer Load supersedes any still in flight.
func (s *Source) Load(ctx context.Context) {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	path := s.path
	s.mu.Unlock()

	s.publish(gen, Snapshot{Status: StatusLoading, Path: path})

	go func() {
		if s.delay > 0 {
			t := time.NewTimer(s.delay)
			select {
			case <-ctx.Done():
				t.Stop()
				return
			case <-t.C:
			}
		}
		start := time.Now()
		res, err := s.load(path)
		logging.TimeTrack(start, "dataset load "+path)
		if ctx.Err() != nil {
			return
		}
		snap := Snapshot{Status: StatusReady, Data: res.Records, Skipped: len(res.Skipped), Path: path}
		if err != nil {
			snap = Snapshot{Status: StatusError, Err: err, Path: path}
			s.log.Errorw("dataset load failed", "path", path, "error", err)
			s.metrics.ObserveLoad("error", 0)
		} else {
			for _, re := range res.Skipped {
				s.log.Warnw("dataset row skipped", "path", path, "line", re.Line, "reason", re.Reason)
			}
			s.log.Infow("dataset loaded", "path", path, "records", len(res.Records), "skipped", len(res.Skipped))
			s.metrics.ObserveLoad("ready", len(res.Records))
		}
		s.post(func() { s.publish(gen, snap) })
	}()
}

func (s *Source) publish(gen uint64, snap Snapshot) {
	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return
	}
	s.current = snap
	subs := make([]func(Snapshot), 0, len(s.subs))
	for k := 0; k < s.nextSub; k++ {
		if fn, ok := s.subs[k]; ok {
			subs = append(subs, fn)
		}
	}
	s.mu.Unlock()
	for _, fn := range subs {
		fn(snap)
	}
}
