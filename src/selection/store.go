package selection

// Subscriber receives selection changes in two phases.
type Subscriber interface {
	// Stage hands over the new selection. Implementations must only record it.
	Stage(Selection)
	// Commit runs after every subscriber has been staged.
	Commit()
}

// SubscriberFuncs adapts plain functions to Subscriber. Either may be nil.
type SubscriberFuncs struct {
	OnStage  func(Selection)
	OnCommit func()
}

func (f SubscriberFuncs) Stage(s Selection) {
	if f.OnStage != nil {
		f.OnStage(s)
	}
}

func (f SubscriberFuncs) Commit() {
	if f.OnCommit != nil {
		f.OnCommit()
	}
}

// ChangeHook observes every applied change (metrics, logging).
type ChangeHook func(prev, next Selection)

// Store owns the session selection. It is confined to the UI goroutine: every
// Dispatch/Set comes from an event callback or fyne.Do, so no locking is done.
type Store struct {
	current   Selection
	subs      map[int]Subscriber
	order     []int
	nextKey   int
	notifying bool
	pending   []Selection
	hooks     []ChangeHook
}

// NewStore starts with nothing selected.
func NewStore() *Store {
	return &Store{subs: map[int]Subscriber{}}
}

// Current returns the latest applied selection.
func (s *Store) Current() Selection { return s.current }

// OnChange registers a hook called once per applied change, before subscribers.
// A dispatch from inside a hook is queued like any other re-entrant dispatch.
func (s *Store) OnChange(h ChangeHook) {
	if h != nil {
		s.hooks = append(s.hooks, h)
	}
}

// Subscribe registers sub and returns its cancel func. Cancel is idempotent.
func (s *Store) Subscribe(sub Subscriber) func() {
	key := s.nextKey
	s.nextKey++
	s.subs[key] = sub
	s.order = append(s.order, key)
	return func() {
		if _, ok := s.subs[key]; !ok {
			return
		}
		delete(s.subs, key)
		for i, k := range s.order {
			if k == key {
				s.order = append(s.order[:i:i], s.order[i+1:]...)
				break
			}
		}
	}
}

// Subscribers returns the number of live subscriptions.
func (s *Store) Subscribers() int { return len(s.subs) }

// Dispatch reduces the intent into the store. It reports whether the selection
// changed (or, when called re-entrantly, was queued).
func (s *Store) Dispatch(in Intent) bool {
	return s.Set(Reduce(s.current, in))
}

// Set replaces the selection. Setting an equal value is a no-op.
func (s *Store) Set(next Selection) bool {
	if s.notifying {
		s.pending = append(s.pending, next)
		return true
	}
	if next == s.current {
		return false
	}
	s.apply(next)
	for len(s.pending) > 0 {
		n := s.pending[0]
		s.pending = s.pending[1:]
		if n != s.current {
			s.apply(n)
		}
	}
	return true
}

func (s *Store) apply(next Selection) {
	prev := s.current
	s.current = next
	s.notifying = true
	defer func() { s.notifying = false }()
	for _, h := range s.hooks {
		h(prev, next)
	}
	// Snapshot so cancels during notification do not skip anyone.
	keys := append([]int(nil), s.order...)
	for _, k := range keys {
		if sub, ok := s.subs[k]; ok {
			sub.Stage(next)
		}
	}
	for _, k := range keys {
		if sub, ok := s.subs[k]; ok {
			sub.Commit()
		}
	}
}
