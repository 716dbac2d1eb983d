// Copyright 2020-2021 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package fieldpath implements FieldPath and DocVar, the field-addressing
// primitives shared by the Workflow IR, the pipeline optimizer and the
// shape resolver.
package fieldpath

import (
	"fmt"
	"strconv"
	"strings"
)

// LeafKind discriminates the two FieldPath leaf forms.
type LeafKind uint8

const (
	LeafName LeafKind = iota
	LeafIndex
)

// Leaf is a single path component: either a field name or an array index.
type Leaf struct {
	Kind LeafKind
	Name string
	Index int
}

// Name builds a Name leaf.
func Name(n string) Leaf { return Leaf{Kind: LeafName, Name: n} }

// Index builds an Index leaf.
func Index(i int) Leaf { return Leaf{Kind: LeafIndex, Index: i} }

// Equal compares two leaves structurally.
func (l Leaf) Equal(other Leaf) bool {
	if l.Kind != other.Kind {
		return false
	}
	if l.Kind == LeafName {
		return l.Name == other.Name
	}
	return l.Index == other.Index
}

func (l Leaf) String() string {
	if l.Kind == LeafName {
		return l.Name
	}
	return strconv.Itoa(l.Index)
}

// Path is a non-empty ordered sequence of leaves.
type Path []Leaf

// New builds a Path of plain field names, a convenience for the common
// all-Name case.
func New(names ...string) Path {
	p := make(Path, len(names))
	for i, n := range names {
		p[i] = Name(n)
	}
	return p
}

// Equal compares two paths element-wise.
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if !p[i].Equal(other[i]) {
			return false
		}
	}
	return true
}

// HasPrefix reports whether prefix is an element-wise prefix of p. This is
// strict sequence-prefix matching, not string-prefix matching: Path{"a",
// "bcd"} is not a prefix of Path{"a", "b"}.
func (p Path) HasPrefix(prefix Path) bool {
	if len(prefix) > len(p) {
		return false
	}
	for i := range prefix {
		if !p[i].Equal(prefix[i]) {
			return false
		}
	}
	return true
}

// PrefixRelated reports whether a and b are in a prefix relationship in
// either direction (a.HasPrefix(b) || b.HasPrefix(a)).
func PrefixRelated(a, b Path) bool {
	return a.HasPrefix(b) || b.HasPrefix(a)
}

// Concat appends suffix to p, returning a new Path.
func (p Path) Concat(suffix Path) Path {
	out := make(Path, 0, len(p)+len(suffix))
	out = append(out, p...)
	out = append(out, suffix...)
	return out
}

// RelativeTo returns the suffix of p after removing prefix, when p has
// prefix as a genuine prefix; ok is false otherwise.
func (p Path) RelativeTo(prefix Path) (rel Path, ok bool) {
	if !p.HasPrefix(prefix) {
		return nil, false
	}
	return p[len(prefix):], true
}

func (p Path) String() string {
	parts := make([]string, len(p))
	for i, l := range p {
		parts[i] = l.String()
	}
	return strings.Join(parts, ".")
}

// Scope distinguishes the two DocVar scopes.
type Scope uint8

const (
	ScopeRoot Scope = iota
	ScopeCurrent
)

// DocVar is a typed field reference: a scope plus an optional path. A nil
// Path (len == 0) means "the whole document at this scope".
type DocVar struct {
	Scope Scope
	Path  Path
}

// Root builds a ROOT-scoped DocVar, optionally with a path ("$p" in the
// external syntax); Root() with no arguments means the root document.
func Root(path ...Leaf) DocVar { return DocVar{Scope: ScopeRoot, Path: Path(path)} }

// Current builds a CURRENT-scoped DocVar.
func Current(path ...Leaf) DocVar { return DocVar{Scope: ScopeCurrent, Path: Path(path)} }

// IdVar is DocVar.ROOT("_id"), the special identifier field reference.
var IdVar = Root(Name("_id"))

// Equal compares two DocVars structurally.
func (d DocVar) Equal(other DocVar) bool {
	return d.Scope == other.Scope && d.Path.Equal(other.Path)
}

// WithPath returns a copy of d with path appended to its existing path.
func (d DocVar) WithPath(extra Path) DocVar {
	return DocVar{Scope: d.Scope, Path: d.Path.Concat(extra)}
}

func (d DocVar) String() string {
	prefix := "$$ROOT"
	if d.Scope == ScopeCurrent {
		prefix = "$$CURRENT"
	}
	if len(d.Path) == 0 {
		return prefix
	}
	return fmt.Sprintf("$%s", d.Path.String())
}
