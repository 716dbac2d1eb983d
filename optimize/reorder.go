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

// reorderOps is a bottom-up rewrite applying the first matching
// commuting rule at each node, run to a fixed point by Optimize.
func reorderOps(node *workflow.Stage) *workflow.Stage {
	return workflow.Rewrite(node, reorderOne)
}

func reorderOne(node *workflow.Stage) *workflow.Stage {
	src := node.Source()
	if src == nil {
		return node
	}
	switch node.Tag() {
	case workflow.TagSkip:
		if src.Tag() == workflow.TagProject {
			return workflow.RawProject(workflow.RawSkip(src.Source(), node.N()), src.Shape(), src.IdHandling())
		}
		if src.Tag() == workflow.TagSimpleMap {
			return workflow.SimpleMap(workflow.RawSkip(src.Source(), node.N()), src.Input(), src.Body())
		}
	case workflow.TagLimit:
		if src.Tag() == workflow.TagProject {
			return workflow.RawProject(workflow.RawLimit(src.Source(), node.N()), src.Shape(), src.IdHandling())
		}
		if src.Tag() == workflow.TagSimpleMap {
			return workflow.SimpleMap(workflow.RawLimit(src.Source(), node.N()), src.Input(), src.Body())
		}
	case workflow.TagMatch:
		if src.Tag() == workflow.TagProject {
			if rewritten, ok := pushMatchThroughRenames(node.Selector(), src.Shape()); ok {
				return workflow.RawProject(workflow.RawMatch(src.Source(), rewritten), src.Shape(), src.IdHandling())
			}
		}
		if src.Tag() == workflow.TagSimpleMap {
			if renames, ok := renameMapFromReshapeBody(src.Body()); ok {
				if rewritten, ok := rewriteSelector(node.Selector(), renames); ok {
					return workflow.SimpleMap(workflow.RawMatch(src.Source(), rewritten), src.Input(), src.Body())
				}
			}
		}
	}
	return node
}

// pushMatchThroughRenames rewrites sel so it reads src-side field names,
// succeeding only when every field sel references has a definition in
// shape that is a pure $var(x) rename (or a sub-path of one).
func pushMatchThroughRenames(sel reshape.Expr, shape reshape.Reshape) (reshape.Expr, bool) {
	renames := renamesOf(shape)
	return rewriteSelector(sel, renames)
}

// renamesOf extracts the pure-rename entries of a Reshape: fields whose
// value is exactly $var(d), mapping the output field name to d.
func renamesOf(s reshape.Reshape) map[string]fieldpath.DocVar {
	out := map[string]fieldpath.DocVar{}
	for _, k := range s.Keys() {
		shape, _ := s.Get(k)
		if shape.Tag() != reshape.ShapeLeaf {
			continue
		}
		e := shape.Expr()
		if e.Tag() == reshape.ExprVar {
			out[k] = e.DocVar()
		}
	}
	return out
}

// renameMapFromReshapeBody extracts a rename map from a $SimpleMap whose
// body is our own "$reshape" build-expression, when every field is a
// pure $var(x) copy.
func renameMapFromReshapeBody(body reshape.Expr) (map[string]fieldpath.DocVar, bool) {
	if body.Tag() != reshape.ExprOp || body.OpName() != "$reshape" {
		return nil, false
	}
	args := body.OpArgs()
	out := map[string]fieldpath.DocVar{}
	for i := 0; i+1 < len(args); i += 2 {
		name := args[i].LiteralValue().Str()
		val := args[i+1]
		if val.Tag() != reshape.ExprVar {
			return nil, false
		}
		out[name] = val.DocVar()
	}
	return out, true
}

// rewriteSelector substitutes every Root-scoped field reference in sel
// for its rename target, failing if any referenced field has no rename
// entry (direct or as a sub-path of one).
func rewriteSelector(sel reshape.Expr, renames map[string]fieldpath.DocVar) (reshape.Expr, bool) {
	switch sel.Tag() {
	case reshape.ExprVar:
		d := sel.DocVar()
		if d.Scope != fieldpath.ScopeRoot || len(d.Path) == 0 {
			return sel, true
		}
		head := d.Path[0]
		if head.Kind != fieldpath.LeafName {
			return sel, false
		}
		target, ok := renames[head.Name]
		if !ok {
			return reshape.Expr{}, false
		}
		return reshape.Var(target.WithPath(d.Path[1:])), true
	case reshape.ExprOp:
		args := sel.OpArgs()
		newArgs := make([]reshape.Expr, len(args))
		for i, a := range args {
			rewritten, ok := rewriteSelector(a, renames)
			if !ok {
				return reshape.Expr{}, false
			}
			newArgs[i] = rewritten
		}
		return sel.WithOpArgs(newArgs), true
	default:
		return sel, true
	}
}
