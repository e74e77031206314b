package engine

import "sort"
import "sync"

import "github.com/neurlang/digitclassifier/errs"

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Engine)
)

// Register makes an engine available by name. It panics if the name is taken.
func Register(name string, e Engine) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, ok := registry[name]; ok {
		panic("engine: Register called twice for " + name)
	}
	registry[name] = e
}

// Lookup returns the engine registered as name
func Lookup(name string) (Engine, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	e, ok := registry[name]
	if !ok {
		return nil, errs.Configurationf("no engine registered as %q, have %v", name, namesLocked())
	}
	return e, nil
}

// Names lists the registered engines in order
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return namesLocked()
}

func namesLocked() (o []string) {
	for k := range registry {
		o = append(o, k)
	}
	sort.Strings(o)
	return
}
