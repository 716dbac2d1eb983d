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

package optimize

import (
	"github.com/dolthub/go-mongo-compiler/fieldpath"
	"github.com/dolthub/go-mongo-compiler/reshape"
	"github.com/dolthub/go-mongo-compiler/workflow"
)

// renameProjectGroup computes, for a $Project's shape, the mapping from
// each single-leaf field name some shape entry purely renames
// (newName -> $var(oldHead)) to the ordered list of new names it was
// renamed to. It fails (ok=false) if any shape entry is not of that
// pure-rename form, since a computed field anywhere in the shape makes
// the rename map unreliable for the caller's purposes.
func renameProjectGroup(shape reshape.Reshape) (map[string][]string, bool) {
	mapping := map[string][]string{}
	for _, newName := range shape.Keys() {
		s, _ := shape.Get(newName)
		if s.Tag() != reshape.ShapeLeaf {
			return nil, false
		}
		e := s.Expr()
		if e.Tag() != reshape.ExprVar {
			return nil, false
		}
		path := e.DocVar().Path
		if len(path) != 1 || path[0].Kind != fieldpath.LeafName {
			return nil, false
		}
		oldHead := path[0].Name
		mapping[oldHead] = append(mapping[oldHead], newName)
	}
	return mapping, true
}

// inlineProjectUnwindGroup handles $Project -> $Unwind(docvar) -> $Group:
// when renameProjectGroup succeeds on the project's shape and the
// unwound field is renamed to exactly one new name, the unwind and the
// group's own field references are rewritten to read the new name
// directly. The $Project stays in place below the rebuilt $Unwind.
func inlineProjectUnwindGroup(node *workflow.Stage) *workflow.Stage {
	return workflow.Rewrite(node, func(n *workflow.Stage) *workflow.Stage {
		if n.Tag() != workflow.TagGroup {
			return n
		}
		unwind := n.Source()
		if unwind.Tag() != workflow.TagUnwind {
			return n
		}
		proj := unwind.Source()
		if proj.Tag() != workflow.TagProject {
			return n
		}
		mapping, ok := renameProjectGroup(proj.Shape())
		if !ok {
			return n
		}
		uv := unwind.UnwindVar()
		if len(uv.Path) != 1 || uv.Path[0].Kind != fieldpath.LeafName {
			return n
		}
		newNames, found := mapping[uv.Path[0].Name]
		if !found || len(newNames) != 1 {
			return n
		}
		newName := newNames[0]
		oldHead := uv.Path[0].Name

		newUnwind := workflow.Unwind(proj, fieldpath.DocVar{Scope: uv.Scope, Path: fieldpath.New(newName)})
		newBy := renameHeadInShape(n.By(), oldHead, newName)
		newGrouped := renameHeadInGrouped(n.Grouped(), oldHead, newName)
		return workflow.Group(newUnwind, newBy, newGrouped)
	})
}

func renameHeadInShape(s reshape.Shape, oldHead, newName string) reshape.Shape {
	if s.Tag() == reshape.ShapeNested {
		return reshape.Nested(renameHeadInReshape(s.Reshape(), oldHead, newName))
	}
	return reshape.Leaf(renameHeadInExpr(s.Expr(), oldHead, newName))
}

func renameHeadInReshape(r reshape.Reshape, oldHead, newName string) reshape.Reshape {
	out := reshape.EmptyReshape()
	for _, k := range r.Keys() {
		s, _ := r.Get(k)
		out = out.Set(k, renameHeadInShape(s, oldHead, newName))
	}
	return out
}

func renameHeadInGrouped(g reshape.Grouped, oldHead, newName string) reshape.Grouped {
	out := reshape.EmptyGrouped()
	for _, k := range g.Keys() {
		acc, _ := g.Get(k)
		out = out.Set(k, acc.WithArg(renameHeadInExpr(acc.Arg(), oldHead, newName)))
	}
	return out
}

// renameHeadInExpr rewrites every $var leaf of e whose path starts with
// oldHead to start with newName instead, leaving the rest of the path
// (and any leaf not headed by oldHead) untouched.
func renameHeadInExpr(e reshape.Expr, oldHead, newName string) reshape.Expr {
	switch e.Tag() {
	case reshape.ExprVar:
		d := e.DocVar()
		if len(d.Path) == 0 || d.Path[0].Kind != fieldpath.LeafName || d.Path[0].Name != oldHead {
			return e
		}
		return reshape.Var(fieldpath.DocVar{Scope: d.Scope, Path: fieldpath.New(newName).Concat(d.Path[1:])})
	case reshape.ExprOp:
		args := e.OpArgs()
		renamed := make([]reshape.Expr, len(args))
		for i, a := range args {
			renamed[i] = renameHeadInExpr(a, oldHead, newName)
		}
		return e.WithOpArgs(renamed)
	default:
		return e
	}
}
