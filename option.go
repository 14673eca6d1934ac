package scheme

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// config accumulates the functional options before NewInterpreter
// builds the Interpreter.
type config struct {
	arenaCapacity int
	logger        zerolog.Logger
	id            uuid.UUID
}

// Option configures an Interpreter at construction time.
type Option func(*config)

// WithLogger attaches a structured logger. Every Run call then emits
// one debug event tagged with the interpreter's id, letting several
// concurrent instances be told apart in a shared log stream.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithArenaCapacity pre-sizes the value arena to avoid reallocation for
// an interpreter expected to evaluate many or large requests. It has no
// effect on behavior, only on allocation patterns.
func WithArenaCapacity(capacity int) Option {
	return func(c *config) {
		c.arenaCapacity = capacity
	}
}

// WithID overrides the auto-generated identifier, useful for tests that
// want a deterministic id rather than a random one.
func WithID(id uuid.UUID) Option {
	return func(c *config) {
		c.id = id
	}
}
