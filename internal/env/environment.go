// Package env implements the lexical environment chain: frames that map
// symbol text to ValueRef bindings, each with a link to a parent frame.
// Per the design notes, frames live in their own arena keyed by integer
// handles (EnvRef) rather than by pointer, for the same reason value
// nodes do: deterministic teardown and no reference counting, even
// though a lambda's captured frame and the frames it spawns on every
// call can form a graph that outlives the lexical block that created
// it.
package env

import (
	"github.com/Yorky1/scheme/internal/ast"
	"github.com/Yorky1/scheme/internal/serr"
)

// frame is one lexical scope: a set of local bindings plus the handle
// of its parent frame (noParent for the top-level frame, which has no
// parent).
type frame struct {
	vars   map[string]ast.ValueRef
	parent ast.EnvRef
}

// Root is the handle of the first frame created by NewArena, always the
// top-level environment with no parent.
const Root ast.EnvRef = 0

// noParent marks a frame as having no parent (only Root's frame), a
// sentinel needed since EnvRef is not a pointer type and so has no
// natural nil.
const noParent = ast.EnvRef(-1)

// Arena owns every frame created during an interpreter's lifetime: the
// root frame created at construction, and one new frame per lambda
// invocation.
type Arena struct {
	frames []frame
}

// NewArena constructs an environment arena containing just the root
// frame.
func NewArena() *Arena {
	a := &Arena{frames: make([]frame, 0, 8)}
	a.frames = append(a.frames, frame{vars: make(map[string]ast.ValueRef), parent: noParent})
	return a
}

// ChildOf creates a new frame whose parent is parent, returning its
// handle. Used both for lambda invocation frames and for any nested
// scope a special form introduces (e.g. the frame let binds its names
// in).
func (a *Arena) ChildOf(parent ast.EnvRef) ast.EnvRef {
	a.frames = append(a.frames, frame{vars: make(map[string]ast.ValueRef), parent: parent})
	return ast.EnvRef(len(a.frames) - 1)
}

// Define writes name into the frame at ref, shadowing any outer binding
// of the same name without disturbing it.
func (a *Arena) Define(ref ast.EnvRef, name string, value ast.ValueRef) {
	a.frames[ref].vars[name] = value
}

// Lookup walks from ref toward the root, returning the first binding of
// name found, or a NameError if no frame in the chain binds it.
func (a *Arena) Lookup(ref ast.EnvRef, name string) (ast.ValueRef, *serr.SchemeError) {
	for cur := ref; ; {
		f := &a.frames[cur]
		if v, ok := f.vars[name]; ok {
			return v, nil
		}
		if f.parent == noParent {
			return ast.Nil, serr.Namef("unbound variable: %s", name)
		}
		cur = f.parent
	}
}

// Assign updates the nearest frame in the chain starting at ref that
// already binds name, leaving all other frames untouched. It fails if
// no frame in the chain binds the name.
func (a *Arena) Assign(ref ast.EnvRef, name string, value ast.ValueRef) *serr.SchemeError {
	for cur := ref; ; {
		f := &a.frames[cur]
		if _, ok := f.vars[name]; ok {
			f.vars[name] = value
			return nil
		}
		if f.parent == noParent {
			return serr.Namef("unbound variable: %s", name)
		}
		cur = f.parent
	}
}
