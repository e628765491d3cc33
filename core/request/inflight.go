package request

import "sync"

// inflight tracks which records have a transition outstanding.
type inflight struct {
	mu  sync.Mutex
	ids map[string]struct{}
}

func newInflight() *inflight {
	return &inflight{ids: map[string]struct{}{}}
}

// acquire returns a release func, or false when id is already taken.
func (f *inflight) acquire(id string) (func(), bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, busy := f.ids[id]; busy {
		return nil, false
	}
	f.ids[id] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			f.mu.Lock()
			delete(f.ids, id)
			f.mu.Unlock()
		})
	}, true
}

func (f *inflight) busy(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.ids[id]
	return ok
}
