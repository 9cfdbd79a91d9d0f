package gtlang

import (
	"sort"
	"strings"
)

// Extensions is a set of extension tags. A nil set is empty.
type Extensions map[string]struct{}

// NewExtensions builds a set from tags, ignoring empty strings.
func NewExtensions(tags ...string) Extensions {
	ext := make(Extensions, len(tags))
	for _, tag := range tags {
		if tag != "" {
			ext[tag] = struct{}{}
		}
	}
	return ext
}

// Has reports whether tag is in the set.
func (e Extensions) Has(tag string) bool {
	_, ok := e[tag]
	return ok
}

// SubsetOf reports whether every tag of e is also in other.
func (e Extensions) SubsetOf(other Extensions) bool {
	for tag := range e {
		if !other.Has(tag) {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the set.
func (e Extensions) Clone() Extensions {
	if e == nil {
		return nil
	}
	out := make(Extensions, len(e))
	for tag := range e {
		out[tag] = struct{}{}
	}
	return out
}

// Sorted returns the tags in lexical order.
func (e Extensions) Sorted() []string {
	tags := make([]string, 0, len(e))
	for tag := range e {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// Meta scopes a generator and every result it produces.
//
// An empty Group marks the metadata as invalid. Invalid metadata poisons
// every combination it takes part in.
type Meta struct {
	Group      string
	Namespace  string
	Completed  bool
	Extensions Extensions
}

// Valid reports whether the metadata can still be used.
func (m Meta) Valid() bool {
	return m.Group != ""
}

// Clone returns a copy that shares no state with m.
func (m Meta) Clone() Meta {
	m.Extensions = m.Extensions.Clone()
	return m
}

// Combine folds other into m.
//
// The namespaces must nest: one has to be a prefix of the other, and the
// longer one is kept. Otherwise m is poisoned by clearing its group. On
// success the extension sets are merged. Combining into already invalid
// metadata does nothing.
func (m *Meta) Combine(other Meta) {
	if !m.Valid() {
		return
	}

	switch {
	case strings.HasPrefix(m.Namespace, other.Namespace):
		// m is at least as specific
	case strings.HasPrefix(other.Namespace, m.Namespace):
		m.Namespace = other.Namespace
	default:
		m.Group = ""
		return
	}

	if len(other.Extensions) == 0 {
		return
	}
	if m.Extensions == nil {
		m.Extensions = make(Extensions, len(other.Extensions))
	}
	for tag := range other.Extensions {
		m.Extensions[tag] = struct{}{}
	}
}

// Matches reports whether a generated result scoped by m may be used for a
// language entry described by scope. The namespaces must nest and every
// extension m depends on must be active in scope. The group of scope is
// not consulted: lookups are not tied to a group.
func (m Meta) Matches(scope Meta) bool {
	if !m.Valid() {
		return false
	}
	if !NamespacesNest(m.Namespace, scope.Namespace) {
		return false
	}
	return m.Extensions.SubsetOf(scope.Extensions)
}

// NamespacesNest reports whether one namespace is a prefix of the other.
func NamespacesNest(a, b string) bool {
	return strings.HasPrefix(a, b) || strings.HasPrefix(b, a)
}

// JoinNamespace appends a child scope to a namespace with a dot.
func JoinNamespace(parent, child string) string {
	switch {
	case parent == "":
		return child
	case child == "":
		return parent
	}
	return parent + "." + child
}
