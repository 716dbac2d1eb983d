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

package reshape

import (
	"strings"

	"github.com/dolthub/go-mongo-compiler/fieldpath"
)

// ShapeTag discriminates a Shape's two forms: a nested Reshape, or a leaf
// Expression.
type ShapeTag uint8

const (
	ShapeNested ShapeTag = iota
	ShapeLeaf
)

// Shape is one entry of a Reshape: either another Reshape (building a
// nested sub-object) or a leaf Expression.
type Shape struct {
	tag     ShapeTag
	nested  *Reshape
	leaf    Expr
}

// Nested wraps a Reshape as a Shape.
func Nested(r Reshape) Shape { return Shape{tag: ShapeNested, nested: &r} }

// Leaf wraps an Expression as a Shape.
func Leaf(e Expr) Shape { return Shape{tag: ShapeLeaf, leaf: e} }

func (s Shape) Tag() ShapeTag     { return s.tag }
func (s Shape) Reshape() Reshape  { return *s.nested }
func (s Shape) Expr() Expr        { return s.leaf }

func (s Shape) Equal(other Shape) bool {
	if s.tag != other.tag {
		return false
	}
	if s.tag == ShapeNested {
		return s.nested.Equal(*other.nested)
	}
	return s.leaf.Equal(other.leaf)
}

// FreeVars collects the DocVars referenced by this Shape.
func (s Shape) FreeVars() []fieldpath.DocVar {
	if s.tag == ShapeNested {
		return s.nested.FreeVars()
	}
	return FreeVars(s.leaf)
}

func (s Shape) String() string {
	if s.tag == ShapeNested {
		return s.nested.String()
	}
	return s.leaf.String()
}

// Reshape is an insertion-ordered field_name -> Shape mapping: the
// payload of a $Project stage and of a $Group's "by" clause when it is
// object-valued rather than a single expression.
type Reshape struct {
	keys   []string
	shapes map[string]Shape
}

// NewReshape builds a Reshape from an ordered key list, preserving the
// order given.
func NewReshape(keys []string, shapes map[string]Shape) Reshape {
	r := Reshape{keys: append([]string(nil), keys...), shapes: map[string]Shape{}}
	for _, k := range keys {
		r.shapes[k] = shapes[k]
	}
	return r
}

// EmptyReshape is the Reshape with no fields.
func EmptyReshape() Reshape { return Reshape{} }

// Set appends or overwrites a field, preserving first-insertion order.
func (r Reshape) Set(key string, s Shape) Reshape {
	if _, ok := r.shapes[key]; ok {
		out := r.clone()
		out.shapes[key] = s
		return out
	}
	out := r.clone()
	out.keys = append(out.keys, key)
	out.shapes[key] = s
	return out
}

// Get looks up a field's Shape.
func (r Reshape) Get(key string) (Shape, bool) {
	s, ok := r.shapes[key]
	return s, ok
}

// Delete removes a field, if present.
func (r Reshape) Delete(key string) Reshape {
	if _, ok := r.shapes[key]; !ok {
		return r
	}
	out := Reshape{shapes: map[string]Shape{}}
	for _, k := range r.keys {
		if k == key {
			continue
		}
		out.keys = append(out.keys, k)
		out.shapes[k] = r.shapes[k]
	}
	return out
}

// Keys returns the fields in insertion order.
func (r Reshape) Keys() []string { return append([]string(nil), r.keys...) }

// Len returns the number of fields.
func (r Reshape) Len() int { return len(r.keys) }

func (r Reshape) clone() Reshape {
	out := Reshape{keys: append([]string(nil), r.keys...), shapes: map[string]Shape{}}
	for k, v := range r.shapes {
		out.shapes[k] = v
	}
	return out
}

// Equal compares fields irrespective of order, matching Obj's semantics:
// the serialized field order of a Reshape is a presentation detail, not
// part of its value.
func (r Reshape) Equal(other Reshape) bool {
	if len(r.keys) != len(other.keys) {
		return false
	}
	for k, s := range r.shapes {
		os, ok := other.shapes[k]
		if !ok || !s.Equal(os) {
			return false
		}
	}
	return true
}

// FreeVars collects the DocVars referenced by any leaf expression of r,
// recursing into nested Reshapes.
func (r Reshape) FreeVars() []fieldpath.DocVar {
	var out []fieldpath.DocVar
	for _, k := range r.keys {
		s := r.shapes[k]
		if s.Tag() == ShapeNested {
			out = append(out, s.Reshape().FreeVars()...)
		} else {
			out = append(out, FreeVars(s.Expr())...)
		}
	}
	return out
}

func (r Reshape) String() string {
	var b strings.Builder
	b.WriteString("{")
	for i, k := range r.keys {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(r.shapes[k].String())
	}
	b.WriteString("}")
	return b.String()
}
