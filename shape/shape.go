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

// Package shape resolves field references through a stack of Reshapes:
// given the $Project shapes a pipeline has accumulated so far, it answers
// "what expression actually produces the value at this path" (get0), and
// rewrites a downstream expression to read straight from the stack's
// innermost source rather than through the intervening $Projects
// (fixExpr / inlineProject). This is what lets the optimizer collapse a
// chain of $Projects, or splice a $Project directly into a $Group's
// accumulator expressions, without changing the pipeline's output.
package shape

import (
	"github.com/dolthub/go-mongo-compiler/data"
	"github.com/dolthub/go-mongo-compiler/fieldpath"
	"github.com/dolthub/go-mongo-compiler/reshape"
)

// get0 resolves the value produced at path by the first Reshape in
// reshapes ([0] is the one applied last, nearest the consumer), recursing
// upstream through any intervening ExprVar reference. ok is false when the path
// runs off the end of the known shape (e.g. into a field no Reshape in
// the stack actually declares) and the caller should fall back to
// leaving the reference unresolved.
func get0(reshapes []reshape.Reshape, path fieldpath.Path) (reshape.Expr, bool) {
	if len(reshapes) == 0 {
		return reshape.Var(fieldpath.Root(path...)), true
	}
	r := reshapes[0]
	rest := reshapes[1:]

	if len(path) == 0 {
		return reshapeToExpr(InlineProject0(r, rest)), true
	}

	head, tail := path[0], path[1:]
	if head.Kind != fieldpath.LeafName {
		return reshape.Expr{}, false
	}
	s, ok := r.Get(head.Name)
	if !ok {
		return reshape.Expr{}, false
	}
	switch s.Tag() {
	case reshape.ShapeNested:
		return get0(append([]reshape.Reshape{s.Reshape()}, rest...), tail)
	case reshape.ShapeLeaf:
		e := s.Expr()
		switch e.Tag() {
		case reshape.ExprVar:
			return get0(rest, e.DocVar().Path.Concat(tail))
		case reshape.ExprInclude:
			return get0(rest, fieldpath.Path{head}.Concat(tail))
		default:
			if len(tail) == 0 {
				return FixExpr(rest, e)
			}
			return reshape.Expr{}, false
		}
	default:
		return reshape.Expr{}, false
	}
}

// reshapeToExpr converts an already-fully-inlined Reshape into the
// expression tree that would build it; used when get0's path bottoms out
// exactly at a nested shape and the whole reshape value is the result.
func reshapeToExpr(r reshape.Reshape) reshape.Expr {
	args := make([]reshape.Expr, 0, r.Len()*2)
	for _, k := range r.Keys() {
		s, _ := r.Get(k)
		var v reshape.Expr
		if s.Tag() == reshape.ShapeNested {
			v = reshapeToExpr(s.Reshape())
		} else {
			v = s.Expr()
		}
		args = append(args, reshape.Literal(data.Str(k)), v)
	}
	return reshape.Op("$reshape", args...)
}

// FixExpr rewrites every ExprVar leaf of e so that it reads directly from
// the outermost source in reshapes instead of through the Reshapes the
// source has since been projected through. It is the expression-level
// half of inlining a $Project into a downstream consumer. ok is false
// when some leaf's reference cannot be resolved against reshapes, in
// which case e as a whole has no valid rewriting.
func FixExpr(reshapes []reshape.Reshape, e reshape.Expr) (reshape.Expr, bool) {
	switch e.Tag() {
	case reshape.ExprVar:
		return get0(reshapes, e.DocVar().Path)
	case reshape.ExprOp:
		args := e.OpArgs()
		fixed := make([]reshape.Expr, len(args))
		for i, a := range args {
			f, ok := FixExpr(reshapes, a)
			if !ok {
				return reshape.Expr{}, false
			}
			fixed[i] = f
		}
		return e.WithOpArgs(fixed), true
	default:
		return e, true
	}
}

// InlineProject rewrites every leaf expression of p so it is expressed in
// terms of the Reshapes in reshapes instead of p's own immediate source,
// returning the new Reshape. It is used to fuse a $Project directly onto
// whatever precedes the Reshapes in the stack (a preceding $Project, or a
// $Group's "by" clause). A field whose expression fails to resolve is
// dropped from the result rather than kept as a dangling reference.
func InlineProject(reshapes []reshape.Reshape, p reshape.Reshape) reshape.Reshape {
	out := reshape.EmptyReshape()
	for _, k := range p.Keys() {
		s, _ := p.Get(k)
		fixed, ok := inlineShape(reshapes, k, s)
		if !ok {
			continue
		}
		out = out.Set(k, fixed)
	}
	return out
}

// inlineShape resolves a single field of the Reshape being inlined. key
// is that field's own name, needed only for the $include() case: an
// included field stands for the upstream value at this same key, so it
// resolves via get0(key's own path, reshapes) rather than FixExpr, which
// has no notion of "this leaf's path" to fall back on.
func inlineShape(reshapes []reshape.Reshape, key string, s reshape.Shape) (reshape.Shape, bool) {
	if s.Tag() == reshape.ShapeNested {
		return reshape.Nested(InlineProject(reshapes, s.Reshape())), true
	}
	e := s.Expr()
	if e.Tag() == reshape.ExprInclude {
		fixed, ok := get0(reshapes, fieldpath.New(key))
		if !ok {
			return reshape.Shape{}, false
		}
		return reshape.Leaf(fixed), true
	}
	fixed, ok := FixExpr(reshapes, e)
	if !ok {
		return reshape.Shape{}, false
	}
	return reshape.Leaf(fixed), true
}

// InlineProject0 fully inlines first against the reshape stack rest,
// the common case of fusing two directly-adjacent $Projects (first is the
// outer/consumer, rest is what precedes it).
func InlineProject0(first reshape.Reshape, rest []reshape.Reshape) reshape.Reshape {
	return InlineProject(rest, first)
}
