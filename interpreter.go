// Package scheme is a small Scheme interpreter: tokenizer, reader, and
// evaluator wired together behind a single Interpreter type, with one
// arena pair (values and environment frames) built once per instance
// and reused across Run calls.
package scheme

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Yorky1/scheme/internal/ast"
	"github.com/Yorky1/scheme/internal/env"
	"github.com/Yorky1/scheme/internal/eval"
	"github.com/Yorky1/scheme/internal/reader"
)

// defaultArenaCapacity sizes the value arena's initial backing slice.
// Chosen to cover a handful of typical single-expression requests
// without reallocating; WithArenaCapacity overrides it for callers who
// know their workload is larger.
const defaultArenaCapacity = 256

// Interpreter evaluates one Scheme request at a time against its own
// value arena and top-level environment. Distinct Interpreter instances
// share no state: each owns its arena, its environment chain, and its
// own primitive registry (rebuilt per instance rather than shared,
// since the registry closes over that instance's Arena).
type Interpreter struct {
	id     uuid.UUID
	log    zerolog.Logger
	arena  *ast.Arena
	envs   *env.Arena
	ev     *eval.Evaluator
	global ast.EnvRef
}

// NewInterpreter builds a ready-to-use Interpreter. With no options, it
// is silent (a Nop logger) and auto-assigns an identifier. Distinct
// Interpreters never share mutable state.
func NewInterpreter(opts ...Option) *Interpreter {
	cfg := config{
		arenaCapacity: defaultArenaCapacity,
		logger:        zerolog.Nop(),
		id:            uuid.New(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	arena := ast.NewArena(cfg.arenaCapacity)
	envs := env.NewArena()
	ev := eval.New(arena, envs)

	interp := &Interpreter{
		id:     cfg.id,
		log:    cfg.logger,
		arena:  arena,
		envs:   envs,
		ev:     ev,
		global: env.Root,
	}
	interp.log.Debug().Str("interpreter_id", interp.id.String()).Msg("interpreter constructed")
	return interp
}

// ID returns the interpreter's identifier, stable for its lifetime.
func (i *Interpreter) ID() uuid.UUID {
	return i.id
}

// Run reads exactly one Scheme expression from request, evaluates it in
// the interpreter's persistent top-level environment, and returns its
// printed form. Definitions made by one Run call are visible to later
// Run calls on the same Interpreter, since the top-level environment
// frame outlives any single request; nothing else is, and request must
// contain exactly one datum.
func (i *Interpreter) Run(request string) (string, error) {
	i.log.Debug().Str("interpreter_id", i.id.String()).Str("request", request).Msg("run")

	val, err := reader.Read(request, i.arena)
	if err != nil {
		return "", err
	}
	result, err := i.ev.Eval(val, i.global)
	if err != nil {
		return "", err
	}
	return i.arena.Print(result), nil
}
