package storex

import (
	"log/slog"

	"github.com/comalice/storex/internal/logging"
)

// CollisionPolicy decides what happens when merging a submodule reuses a key.
type CollisionPolicy int

const (
	// CollisionOverwrite lets the later module win. This is the default.
	CollisionOverwrite CollisionPolicy = iota
	// CollisionError fails the factory with ErrNamespaceCollision.
	CollisionError
)

func (p CollisionPolicy) String() string {
	switch p {
	case CollisionOverwrite:
		return "overwrite"
	case CollisionError:
		return "error"
	default:
		return "unknown"
	}
}

// Option configures a StoreBuilder at construction time.
type Option func(*options)

type options struct {
	onBuilt    func(*Store)
	logger     *slog.Logger
	collisions CollisionPolicy
}

func defaultOptions() options {
	return options{
		onBuilt: func(*Store) {},
		logger:  logging.NewNop(),
	}
}

// WithOnBuilt registers a hook called with the merged store after every
// successful factory invocation. Nil keeps the no-op default.
func WithOnBuilt(fn func(*Store)) Option {
	return func(o *options) {
		if fn != nil {
			o.onBuilt = fn
		}
	}
}

// WithLogger sets the logger for build events.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithCollisionPolicy sets how submodule key collisions are handled.
func WithCollisionPolicy(p CollisionPolicy) Option {
	return func(o *options) {
		o.collisions = p
	}
}
