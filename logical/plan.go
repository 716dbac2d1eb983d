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

// Package logical implements the LogicalPlan IR: a recursive
// relational/functional algebra of Read, Constant, Free, Let and Invoke
// nodes, produced by the compiler and consumed by the (external) planner.
package logical

import (
	"fmt"

	"github.com/dolthub/go-mongo-compiler/data"
	"github.com/mitchellh/hashstructure"
)

// Tag discriminates the Plan variants.
type Tag uint8

const (
	TagRead Tag = iota
	TagConstant
	TagFree
	TagLet
	TagInvoke
)

// Func is the minimal identity a Plan's Invoke node needs of a catalog
// function: a stable name used for structural equality and debug
// printing. The catalog package supplies the concrete implementation;
// this package only depends on the name.
type Func interface {
	FuncName() string
}

// Plan is a node of the LogicalPlan tree. The zero value is not valid;
// build trees with the constructors below. Plans are immutable once
// built: every rewrite produces a new tree.
type Plan struct {
	tag Tag

	// Read
	path string

	// Constant
	constVal data.Value

	// Free
	name string

	// Let
	letName    string
	letBinding *Plan
	letBody    *Plan

	// Invoke
	fn   Func
	args []Plan
}

// Read builds a Read(path) node addressing a named collection/table.
func Read(path string) Plan { return Plan{tag: TagRead, path: path} }

// Constant builds a Constant(Data) literal node.
func Constant(v data.Value) Plan { return Plan{tag: TagConstant, constVal: v} }

// Free builds a Free(name) node: an unresolved reference to an enclosing
// Let's binding, resolved lexically by name.
func Free(name string) Plan { return Plan{tag: TagFree, name: name} }

// Let builds a Let(name, binding, body) node. Within body, Free(name)
// refers to binding.
func Let(name string, binding, body Plan) Plan {
	return Plan{tag: TagLet, letName: name, letBinding: &binding, letBody: &body}
}

// Invoke builds an Invoke(function, args) node.
func Invoke(fn Func, args ...Plan) Plan {
	return Plan{tag: TagInvoke, fn: fn, args: args}
}

// Tag returns the variant tag.
func (p Plan) Tag() Tag { return p.tag }

// Path returns the Read path; only valid when Tag() == TagRead.
func (p Plan) Path() string { return p.path }

// ConstVal returns the Constant payload; only valid when Tag() == TagConstant.
func (p Plan) ConstVal() data.Value { return p.constVal }

// Name returns the Free name; only valid when Tag() == TagFree.
func (p Plan) Name() string { return p.name }

// LetName, LetBinding, LetBody decompose a Let node; only valid when
// Tag() == TagLet.
func (p Plan) LetName() string   { return p.letName }
func (p Plan) LetBinding() Plan  { return *p.letBinding }
func (p Plan) LetBody() Plan     { return *p.letBody }

// Fn and Args decompose an Invoke node; only valid when Tag() == TagInvoke.
func (p Plan) Fn() Func    { return p.fn }
func (p Plan) Args() []Plan { return p.args }

// Children returns the immediate subtrees of p, in a stable order, for
// generic traversal.
func (p Plan) Children() []Plan {
	switch p.tag {
	case TagLet:
		return []Plan{*p.letBinding, *p.letBody}
	case TagInvoke:
		return p.args
	default:
		return nil
	}
}

// WithChildren rebuilds p with its Children() replaced by children, which
// must have the same length as Children() returned. Leaf nodes (Read,
// Constant, Free) ignore children and return p unchanged.
func (p Plan) WithChildren(children []Plan) Plan {
	switch p.tag {
	case TagLet:
		if len(children) != 2 {
			panic(fmt.Sprintf("logical: Let.WithChildren expected 2 children, got %d", len(children)))
		}
		return Let(p.letName, children[0], children[1])
	case TagInvoke:
		return Invoke(p.fn, children...)
	default:
		return p
	}
}

// Equal is structural equality.
func (p Plan) Equal(other Plan) bool {
	if p.tag != other.tag {
		return false
	}
	switch p.tag {
	case TagRead:
		return p.path == other.path
	case TagConstant:
		return p.constVal.Equal(other.constVal)
	case TagFree:
		return p.name == other.name
	case TagLet:
		return p.letName == other.letName && p.letBinding.Equal(*other.letBinding) && p.letBody.Equal(*other.letBody)
	case TagInvoke:
		if p.fn.FuncName() != other.fn.FuncName() || len(p.args) != len(other.args) {
			return false
		}
		for i := range p.args {
			if !p.args[i].Equal(other.args[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Hash returns a structural hash of p, used by the compiler's grouping
// memo and by fixed-point rewrite loops to detect "no progress" cheaply
// without a full deep-equal walk.
func (p Plan) Hash() uint64 {
	h, err := hashstructure.Hash(p.debugView(), nil)
	if err != nil {
		// hashstructure only fails on unsupported field kinds, which this
		// package's debugView never produces; treat as an invariant bug.
		panic(fmt.Sprintf("logical: hash: %v", err))
	}
	return h
}

// debugView converts a Plan into a plain, hashable/printable structure
// (no function pointers, no internal slices aliasing) for Hash and for
// the debug tree renderer.
type debugView struct {
	Tag  string
	Val  string
	Kids []debugView
}

func (p Plan) debugView() debugView {
	switch p.tag {
	case TagRead:
		return debugView{Tag: "Read", Val: p.path}
	case TagConstant:
		return debugView{Tag: "Constant", Val: p.constVal.String()}
	case TagFree:
		return debugView{Tag: "Free", Val: p.name}
	case TagLet:
		return debugView{Tag: "Let", Val: p.letName, Kids: []debugView{p.letBinding.debugView(), p.letBody.debugView()}}
	case TagInvoke:
		kids := make([]debugView, len(p.args))
		for i, a := range p.args {
			kids[i] = a.debugView()
		}
		return debugView{Tag: "Invoke", Val: p.fn.FuncName(), Kids: kids}
	default:
		return debugView{Tag: "?"}
	}
}

