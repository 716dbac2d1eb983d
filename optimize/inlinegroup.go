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
	"github.com/dolthub/go-mongo-compiler/reshape"
	"github.com/dolthub/go-mongo-compiler/shape"
	"github.com/dolthub/go-mongo-compiler/workflow"
)

// inlineGroupProjects splices the contiguous chain of $Projects
// immediately upstream of a $Group directly into the group's by/
// accumulator expressions, eliding the projections. Applied bottom-up so
// a $Group nested under $FoldLeft also gets the treatment.
func inlineGroupProjects(node *workflow.Stage) *workflow.Stage {
	return workflow.Rewrite(node, func(n *workflow.Stage) *workflow.Stage {
		if n.Tag() != workflow.TagGroup {
			return n
		}
		return inlineOneGroup(n)
	})
}

// collectShapes walks upstream collecting $Project reshapes, nearest
// first, terminating at the first non-$Project source.
func collectShapes(src *workflow.Stage) ([]reshape.Reshape, *workflow.Stage) {
	var reshapes []reshape.Reshape
	for src.Tag() == workflow.TagProject {
		reshapes = append(reshapes, src.Shape())
		src = src.Source()
	}
	return reshapes, src
}

func inlineOneGroup(g *workflow.Stage) *workflow.Stage {
	reshapes, terminal := collectShapes(g.Source())
	if len(reshapes) == 0 {
		return g
	}

	oldGrouped := g.Grouped()
	newGrouped := reshape.EmptyGrouped()
	for _, k := range oldGrouped.Keys() {
		acc, _ := oldGrouped.Get(k)
		fixed, ok := shape.FixExpr(reshapes, acc.Arg())
		if !ok {
			// An accumulator's source field is observable output; unlike
			// inlineProject's own fields, it cannot simply be dropped, so
			// the whole splice is abandoned.
			return g
		}
		if (acc.Kind() == reshape.AccAddToSet || acc.Kind() == reshape.AccPush) && fixed.Tag() != reshape.ExprVar {
			return g
		}
		newGrouped = newGrouped.Set(k, acc.WithArg(fixed))
	}

	by := g.By()
	var newBy reshape.Shape
	if by.Tag() == reshape.ShapeNested {
		newBy = reshape.Nested(shape.InlineProject0(by.Reshape(), reshapes))
	} else {
		fixed, ok := shape.FixExpr(reshapes, by.Expr())
		if !ok {
			return g
		}
		newBy = reshape.Leaf(fixed)
	}

	return workflow.Group(terminal, newBy, newGrouped)
}
