package todo

import (
	"fmt"
	"log/slog"

	"github.com/comalice/storex"
	"github.com/comalice/storex/internal/logging"
)

// Session owns a host rendering the todo store.
type Session struct {
	host   *storex.Host
	store  *storex.Store
	logger *slog.Logger
}

// Open renders the todo store once on a new host. A nil logger disables
// logging; the logger is also handed to every builder. onBuilt receives the
// merged store after every render and may be nil.
func Open(logger *slog.Logger, onBuilt func(*storex.Store), opts ...storex.Option) (*Session, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Session{
		host:   storex.NewHost(storex.WithHostLogger(logger)),
		logger: logger,
	}
	opts = append([]storex.Option{storex.WithLogger(logger)}, opts...)
	factory := Factory(onBuilt, opts...)

	err := s.host.Render(func(h *storex.Host) error {
		store, err := factory(h, nil, nil)
		if err != nil {
			return err
		}
		s.store = store
		return nil
	})
	if err != nil {
		s.host.Dispose()
		return nil, fmt.Errorf("render todo store: %w", err)
	}
	return s, nil
}

// Store returns the store from the latest render.
func (s *Session) Store() *storex.Store {
	return s.store
}

// Host returns the host the store renders on.
func (s *Session) Host() *storex.Host {
	return s.host
}

// Call runs the named action of the module under namespace and re-renders
// until the host settles.
func (s *Session) Call(namespace string, name storex.ActionName, payload any) (any, error) {
	var result any
	err := s.host.Act(func() error {
		actions, err := storex.MapActions(s.store, namespace)
		if err != nil {
			return err
		}
		result, err = actions.Call(name, payload)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%s/%s: %w", label(namespace), name, err)
	}
	s.logger.Debug("action called", "module", label(namespace), "action", string(name))
	return result, nil
}

// Close disposes the host.
func (s *Session) Close() {
	s.host.Dispose()
}

// Script fills a session with a few items, completes one, searches by tag
// and refreshes the stats.
func Script(s *Session) error {
	steps := []struct {
		namespace string
		action    storex.ActionName
		payload   any
	}{
		{"", "add", NewItem{Title: "buy milk", Tag: "home"}},
		{"", "add", NewItem{Title: "write report", Tag: "work"}},
		{"", "add", NewItem{Title: "water plants", Tag: "home"}},
		{"", "toggle", 1},
		{FilterNamespace, "search", "home"},
		{StatsNamespace, "refresh", nil},
	}
	for _, step := range steps {
		if _, err := s.Call(step.namespace, step.action, step.payload); err != nil {
			return err
		}
	}
	return nil
}

func label(namespace string) string {
	if namespace == "" {
		return "root"
	}
	return namespace
}
