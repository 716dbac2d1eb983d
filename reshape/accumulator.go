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
	"fmt"
	"strings"

	"github.com/dolthub/go-mongo-compiler/fieldpath"
)

// AccKind names a $Group accumulator operator.
type AccKind uint8

const (
	AccAddToSet AccKind = iota
	AccPush
	AccFirst
	AccLast
	AccMax
	AccMin
	AccAvg
	AccSum
)

func (k AccKind) String() string {
	switch k {
	case AccAddToSet:
		return "$addToSet"
	case AccPush:
		return "$push"
	case AccFirst:
		return "$first"
	case AccLast:
		return "$last"
	case AccMax:
		return "$max"
	case AccMin:
		return "$min"
	case AccAvg:
		return "$avg"
	default:
		return "$sum"
	}
}

// Accumulator is one $Group field's aggregation: a kind plus the
// per-document expression it is applied to.
type Accumulator struct {
	kind AccKind
	arg  Expr
}

// NewAccumulator builds an Accumulator.
func NewAccumulator(kind AccKind, arg Expr) Accumulator { return Accumulator{kind: kind, arg: arg} }

func (a Accumulator) Kind() AccKind { return a.kind }
func (a Accumulator) Arg() Expr     { return a.arg }

// WithArg rebuilds the Accumulator with a new argument expression,
// preserving its kind; used when inlining a preceding $Project into a
// $Group's accumulator expressions.
func (a Accumulator) WithArg(e Expr) Accumulator { return Accumulator{kind: a.kind, arg: e} }

func (a Accumulator) Equal(other Accumulator) bool {
	return a.kind == other.kind && a.arg.Equal(other.arg)
}

func (a Accumulator) String() string {
	return fmt.Sprintf("%s(%s)", a.kind, a.arg)
}

// Grouped is an insertion-ordered field_name -> Accumulator mapping: the
// output-fields payload of a $Group stage.
type Grouped struct {
	keys []string
	accs map[string]Accumulator
}

// NewGrouped builds a Grouped from an ordered key list.
func NewGrouped(keys []string, accs map[string]Accumulator) Grouped {
	g := Grouped{keys: append([]string(nil), keys...), accs: map[string]Accumulator{}}
	for _, k := range keys {
		g.accs[k] = accs[k]
	}
	return g
}

// EmptyGrouped is the Grouped with no fields.
func EmptyGrouped() Grouped { return Grouped{} }

// Set appends or overwrites a field, preserving first-insertion order.
func (g Grouped) Set(key string, a Accumulator) Grouped {
	if _, ok := g.accs[key]; ok {
		out := g.clone()
		out.accs[key] = a
		return out
	}
	out := g.clone()
	out.keys = append(out.keys, key)
	out.accs[key] = a
	return out
}

func (g Grouped) Get(key string) (Accumulator, bool) {
	a, ok := g.accs[key]
	return a, ok
}

func (g Grouped) Keys() []string { return append([]string(nil), g.keys...) }
func (g Grouped) Len() int       { return len(g.keys) }

func (g Grouped) clone() Grouped {
	out := Grouped{keys: append([]string(nil), g.keys...), accs: map[string]Accumulator{}}
	for k, v := range g.accs {
		out.accs[k] = v
	}
	return out
}

func (g Grouped) Equal(other Grouped) bool {
	if len(g.keys) != len(other.keys) {
		return false
	}
	for k, a := range g.accs {
		oa, ok := other.accs[k]
		if !ok || !a.Equal(oa) {
			return false
		}
	}
	return true
}

// FreeVars collects the DocVars referenced by any accumulator's argument
// expression.
func (g Grouped) FreeVars() []fieldpath.DocVar {
	var out []fieldpath.DocVar
	for _, k := range g.keys {
		out = append(out, FreeVars(g.accs[k].arg)...)
	}
	return out
}

func (g Grouped) String() string {
	var b strings.Builder
	b.WriteString("{")
	for i, k := range g.keys {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(g.accs[k].String())
	}
	b.WriteString("}")
	return b.String()
}
