package xsm

import (
	"fmt"
	"sort"
)

// buildStateMap indexes the whole tree by name. A bare name stays a key until
// a second state claims it; from then on every state carrying that name is
// keyed "Parent/Name" and the bare key is gone.
func (m *Machine[E]) buildStateMap() error {
	m.states = map[string]*State[E]{m.root.name: m.root}
	m.duplicates = make(map[string]int)
	m.root.key = m.root.name
	m.root.depth = 0
	m.root.machine = m
	return m.mapChildren(m.root)
}

func (m *Machine[E]) mapChildren(s *State[E]) error {
	for _, c := range s.children {
		c.parent = s
		c.machine = m
		c.depth = s.depth + 1

		if existing, ok := m.states[c.name]; ok {
			delete(m.states, c.name)
			if err := m.register(qualify(existing.parent, c.name), existing); err != nil {
				return err
			}
			if err := m.register(qualify(s, c.name), c); err != nil {
				return err
			}
			m.duplicates[c.name] = 2
		} else if _, dup := m.duplicates[c.name]; dup {
			if err := m.register(qualify(s, c.name), c); err != nil {
				return err
			}
			m.duplicates[c.name]++
		} else {
			m.states[c.name] = c
			c.key = c.name
		}

		if err := m.mapChildren(c); err != nil {
			return err
		}
	}
	return nil
}

func (m *Machine[E]) register(key string, s *State[E]) error {
	if _, taken := m.states[key]; taken {
		return NewAmbiguousNameError(key)
	}
	m.states[key] = s
	s.key = key
	return nil
}

func qualify[E any](parent *State[E], name string) string {
	if parent == nil {
		return name
	}
	return parent.name + "/" + name
}

// resolve finds a state by name on behalf of requester. A duplicated bare
// name is tried as a child of the requester, then as a sibling of it.
func (m *Machine[E]) resolve(name string, requester *State[E]) *State[E] {
	if requester != nil && name == requester.name {
		return requester
	}
	if s, ok := m.states[name]; ok {
		return s
	}
	if _, dup := m.duplicates[name]; !dup || requester == nil {
		return nil
	}
	if s, ok := m.states[qualify(requester, name)]; ok {
		return s
	}
	if requester.parent != nil {
		if s, ok := m.states[qualify(requester.parent, name)]; ok {
			return s
		}
	}
	return nil
}

// DuplicateCount returns how many states share the bare name, 0 if it is unique
func (m *Machine[E]) DuplicateCount(name string) int {
	return m.duplicates[name]
}

// StateNames returns every key of the state map, sorted
func (m *Machine[E]) StateNames() []string {
	names := make([]string, 0, len(m.states))
	for name := range m.states {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// validateTree checks the structural rules the name resolver relies on
func validateTree[E any](root *State[E]) error {
	if root == nil {
		return NewConfigurationError("tree", "root state is nil")
	}
	if err := validateName(root); err != nil {
		return err
	}
	return validateChildren(root, root.name)
}

func validateChildren[E any](s *State[E], rootName string) error {
	seen := make(map[string]bool, len(s.children))
	for _, c := range s.children {
		if err := validateName(c); err != nil {
			return err
		}
		if c.name == rootName {
			return NewConfigurationError(c.Path(), fmt.Sprintf("state reuses the root name '%s'", rootName))
		}
		if seen[c.name] {
			return NewConfigurationError(s.Path(), fmt.Sprintf("duplicate child name '%s'", c.name))
		}
		seen[c.name] = true
		if err := validateChildren(c, rootName); err != nil {
			return err
		}
	}
	return nil
}

func validateName[E any](s *State[E]) error {
	if s.name == "" {
		return NewConfigurationError("tree", "state name cannot be empty")
	}
	for _, r := range s.name {
		if r == '/' {
			return NewConfigurationError(s.name, "state name cannot contain '/'")
		}
	}
	return nil
}
