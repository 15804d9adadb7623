package sources

import (
	"flag"
	"fmt"
	"sort"
	"sync"
)

// Factory is a build-time plugin that can open a Source.
//
// Factories typically register themselves in init():
//
//	sources.MustRegister(sources.Factory{ ... })
//
// The binary must import the factory's package for registration to occur.
type Factory struct {
	Name        string
	Description string

	// RegisterFlags adds source-specific flags to fs. It must be safe to
	// call exactly once per process.
	RegisterFlags func(fs *flag.FlagSet)

	// Open constructs the Source using values parsed into flags registered
	// by RegisterFlags.
	Open func() (Source, error)
}

var (
	mu        sync.RWMutex
	factories = map[string]Factory{}
)

// Register registers a source factory.
func Register(f Factory) error {
	if f.Name == "" {
		return fmt.Errorf("sources: factory name is required")
	}
	if f.RegisterFlags == nil {
		return fmt.Errorf("sources: factory %q missing RegisterFlags", f.Name)
	}
	if f.Open == nil {
		return fmt.Errorf("sources: factory %q missing Open", f.Name)
	}

	mu.Lock()
	defer mu.Unlock()
	if _, exists := factories[f.Name]; exists {
		return fmt.Errorf("sources: factory %q already registered", f.Name)
	}
	factories[f.Name] = f
	return nil
}

// MustRegister is like Register but panics on error.
func MustRegister(f Factory) {
	if err := Register(f); err != nil {
		panic(err)
	}
}

// List returns registered factories sorted by name.
func List() []Factory {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]Factory, 0, len(factories))
	for _, f := range factories {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Names returns registered factory names, sorted.
func Names() []string {
	fs := List()
	n := make([]string, 0, len(fs))
	for _, f := range fs {
		n = append(n, f.Name)
	}
	return n
}

// RegisterFlags registers flags for all factories on fs.
//
// This enables single-pass flag parsing (Go's flag package rejects unknown
// flags).
func RegisterFlags(fs *flag.FlagSet) {
	for _, f := range List() {
		f.RegisterFlags(fs)
	}
}

// Open opens the named source if a factory for it is registered.
func Open(name string) (Source, error) {
	mu.RLock()
	f, ok := factories[name]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown source %q", name)
	}
	return f.Open()
}
