package domain

import (
	"strings"

	"github.com/samber/lo"
)

// Environ is an ordered set of environment variables.
// Insertion order is kept so the child environment is deterministic.
type Environ struct {
	values map[string]string
	keys   []string
}

// NewEnviron builds an Environ from KEY=VALUE entries.
// Later duplicates win; entries without '=' are ignored.
func NewEnviron(entries []string) *Environ {
	e := &Environ{values: make(map[string]string, len(entries))}
	for _, entry := range entries {
		key, value, ok := strings.Cut(entry, "=")
		if !ok || key == "" {
			continue
		}
		e.Set(key, value)
	}
	return e
}

// Get returns the value of key, or "" when unset.
func (e *Environ) Get(key string) string {
	return e.values[key]
}

// Lookup returns the value of key and whether it is set.
func (e *Environ) Lookup(key string) (string, bool) {
	v, ok := e.values[key]
	return v, ok
}

// Set assigns key.
func (e *Environ) Set(key, value string) {
	if _, ok := e.values[key]; !ok {
		e.keys = append(e.keys, key)
	}
	e.values[key] = value
}

// SetDefault assigns key only when it is not already set.
func (e *Environ) SetDefault(key, value string) {
	if _, ok := e.values[key]; ok {
		return
	}
	e.Set(key, value)
}

// AppendPathList appends entry to the sep-separated list in key
// unless the list already contains it.
func (e *Environ) AppendPathList(key, entry, sep string) {
	current := e.values[key]
	if current == "" {
		e.Set(key, entry)
		return
	}
	if lo.Contains(strings.Split(current, sep), entry) {
		return
	}
	e.Set(key, current+sep+entry)
}

// List returns the variables as KEY=VALUE entries in insertion order.
func (e *Environ) List() []string {
	return lo.Map(e.keys, func(k string, _ int) string {
		return k + "=" + e.values[k]
	})
}
