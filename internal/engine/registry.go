package engine

import (
	"sort"
	"sync"

	"github.com/samber/lo"
)

type Constructor func(opts Options) (Engine, error)

// Registry maps engine names to constructors. Registering an already
// registered name overwrites it, so several names can alias one
// implementation.
type Registry struct {
	mu    sync.RWMutex
	ctors map[string]Constructor
}

func NewRegistry() *Registry {
	return &Registry{
		ctors: make(map[string]Constructor),
	}
}

func (r *Registry) Register(name string, ctor Constructor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ctors[name] = ctor
}

func (r *Registry) Lookup(name string) (Constructor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ctor, found := r.ctors[name]
	return ctor, found
}

func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var names = lo.Keys(r.ctors)
	sort.Strings(names)
	return names
}
