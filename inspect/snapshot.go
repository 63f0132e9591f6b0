// Package inspect provides debug integrations for built stores: snapshots,
// dump writers, event publishing, visualization and metrics.
//
// Everything here plugs into storex.WithOnBuilt; nothing reads state back
// into a store.
package inspect

import (
	"sync"
	"time"

	"github.com/comalice/storex"
)

// RootName labels the unnamespaced module in snapshots and graphs.
const RootName = "root"

// ModuleSnapshot is the serializable view of one module.
type ModuleSnapshot struct {
	Namespace string         `json:"namespace" yaml:"namespace"`
	Parent    string         `json:"parent,omitempty" yaml:"parent,omitempty"`
	State     any            `json:"state" yaml:"state"`
	Getters   map[string]any `json:"getters,omitempty" yaml:"getters,omitempty"`
	Actions   []string       `json:"actions,omitempty" yaml:"actions,omitempty"`
}

// Label returns the namespace, or RootName for the root module.
func (m ModuleSnapshot) Label() string {
	if m.Namespace == "" {
		return RootName
	}
	return m.Namespace
}

// Snapshot is the serializable view of a whole store. Modules are ordered
// root first, then by namespace.
type Snapshot struct {
	Name      string           `json:"name" yaml:"name"`
	Modules   []ModuleSnapshot `json:"modules" yaml:"modules"`
	Timestamp time.Time        `json:"timestamp" yaml:"timestamp"`
}

// Module returns the module snapshot under namespace ("" for the root).
func (s Snapshot) Module(namespace string) (ModuleSnapshot, bool) {
	for _, m := range s.Modules {
		if m.Namespace == namespace {
			return m, true
		}
	}
	return ModuleSnapshot{}, false
}

// TakeSnapshot captures the current render of store under name.
func TakeSnapshot(name string, store *storex.Store) Snapshot {
	snap := Snapshot{
		Name:      name,
		Modules:   []ModuleSnapshot{},
		Timestamp: time.Now().UTC(),
	}
	store.Each(func(namespace string, m *storex.Module) {
		ms := ModuleSnapshot{
			Namespace: namespace,
			State:     m.State,
		}
		if m.Parent != nil {
			ms.Parent = m.Parent.Namespace
			if ms.Parent == "" {
				ms.Parent = RootName
			}
		}
		if len(m.Getters) > 0 {
			ms.Getters = make(map[string]any, len(m.Getters))
			for k, v := range m.Getters {
				ms.Getters[k] = v
			}
		}
		for _, name := range m.Actions().Names() {
			ms.Actions = append(ms.Actions, string(name))
		}
		snap.Modules = append(snap.Modules, ms)
	})
	return snap
}

// Slot holds the last store published to it. It stands in for a global
// debug variable: pass Slot.Hook to storex.WithOnBuilt and read Last from
// wherever the inspection happens. Last writer wins.
type Slot struct {
	mu     sync.RWMutex
	last   *storex.Store
	at     time.Time
	builds int
}

// Hook returns an on-built hook that stores every built store.
func (s *Slot) Hook() func(*storex.Store) {
	return func(store *storex.Store) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.last = store
		s.at = time.Now()
		s.builds++
	}
}

// Last returns the most recent store and when it was published.
func (s *Slot) Last() (*storex.Store, time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last, s.at
}

// Builds returns how many stores have been published.
func (s *Slot) Builds() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.builds
}
