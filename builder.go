package xsm

import (
	"errors"
	"fmt"
	"strings"
)

// Builder assembles a state tree from slash separated paths relative to the
// root, e.g. "Movement/OnGround/Idle". Parents must be declared before their
// children; children keep declaration order, so the first declared child of
// an exclusive state is its default entry.
type Builder[E any] struct {
	root  *State[E]
	nodes map[string]*State[E]
	errs  []error
}

// NewBuilder starts a tree with the given root
func NewBuilder[E any](rootName string, behavior Behavior[E], opts ...StateOption) *Builder[E] {
	root := NewState(rootName, behavior, opts...)
	return &Builder[E]{
		root:  root,
		nodes: map[string]*State[E]{"": root},
	}
}

// State declares a state at path
func (b *Builder[E]) State(path string, behavior Behavior[E], opts ...StateOption) *Builder[E] {
	path = strings.Trim(path, "/")
	if path == "" {
		b.errs = append(b.errs, NewConfigurationError("builder", "state path cannot be empty"))
		return b
	}
	if _, exists := b.nodes[path]; exists {
		b.errs = append(b.errs, NewConfigurationError(path, "state declared twice"))
		return b
	}

	parentPath, name := "", path
	if i := strings.LastIndex(path, "/"); i >= 0 {
		parentPath, name = path[:i], path[i+1:]
	}
	parent, ok := b.nodes[parentPath]
	if !ok {
		b.errs = append(b.errs, fmt.Errorf("declare %s: parent %w", path, NewStateNotFoundError(parentPath)))
		return b
	}

	s := NewState(name, behavior, opts...)
	parent.AddChild(s)
	b.nodes[path] = s
	return b
}

// Root returns the root state built so far
func (b *Builder[E]) Root() *State[E] {
	return b.root
}

// Lookup returns the state declared at path, the root for ""
func (b *Builder[E]) Lookup(path string) *State[E] {
	return b.nodes[strings.Trim(path, "/")]
}

// Build validates the tree and returns an uninitialized machine
func (b *Builder[E]) Build(target *E, opts ...Option) (*Machine[E], error) {
	if len(b.errs) > 0 {
		return nil, errors.Join(b.errs...)
	}
	if err := validateTree(b.root); err != nil {
		return nil, err
	}
	return NewMachine(b.root, target, opts...), nil
}
