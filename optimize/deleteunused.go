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

// deleteUnusedFields prunes field definitions a query never reads,
// walking the pipeline top-down from its final stage with the set of
// refs that stages above node actually use.
func deleteUnusedFields(node *workflow.Stage, used refSet) *workflow.Stage {
	switch node.Tag() {
	case workflow.TagRead:
		return node
	case workflow.TagProject:
		return deleteUnusedProject(node, used)
	case workflow.TagGroup:
		return deleteUnusedGroup(node, used)
	case workflow.TagSimpleMap:
		return deleteUnusedSimpleMap(node, used)
	case workflow.TagMap, workflow.TagFlatMap, workflow.TagReduce:
		src := deleteUnusedFields(node.Source(), allRefs())
		return node.WithSource(src)
	case workflow.TagFoldLeft:
		down := used.add(fieldpath.IdVar)
		kids := node.Sources()
		newKids := make([]*workflow.Stage, len(kids))
		for i, k := range kids {
			newKids[i] = deleteUnusedFields(k, down)
		}
		return workflow.FoldLeft(newKids)
	default:
		// $Match, $Sort, $Skip, $Limit, $Unwind: transparent passthrough,
		// forwarding prevUsed plus whatever this node itself references.
		down := used.union(nodeRefs(node))
		src := deleteUnusedFields(node.Source(), down)
		return node.WithSource(src)
	}
}

func deleteUnusedProject(node *workflow.Stage, used refSet) *workflow.Stage {
	s := node.Shape()
	pruned := reshape.EmptyReshape()
	for _, k := range s.Keys() {
		if used.includes(fieldpath.Root(fieldpath.Name(k))) {
			v, _ := s.Get(k)
			pruned = pruned.Set(k, v)
		}
	}
	down := pruned.FreeVars()
	downSet := refsOf(down...)
	if node.IdHandling() == reshape.IncludeId {
		downSet = downSet.add(fieldpath.IdVar)
	}
	src := deleteUnusedFields(node.Source(), downSet)
	if pruned.Len() == 0 {
		return src
	}
	return workflow.Project(src, pruned, node.IdHandling())
}

func deleteUnusedGroup(node *workflow.Stage, used refSet) *workflow.Stage {
	g := node.Grouped()
	pruned := reshape.EmptyGrouped()
	for _, k := range g.Keys() {
		if used.includes(fieldpath.Root(fieldpath.Name(k))) {
			a, _ := g.Get(k)
			pruned = pruned.Set(k, a)
		}
	}
	down := refsOf(pruned.FreeVars()...).union(refsOf(node.By().FreeVars()...))
	src := deleteUnusedFields(node.Source(), down)
	return workflow.Group(src, node.By(), pruned)
}

// deleteUnusedSimpleMap prunes a $SimpleMap whose body is our own
// "$reshape" build-expression (see package shape); any other body shape
// is left untouched since its emitted field set cannot be determined
// without evaluating arbitrary code.
func deleteUnusedSimpleMap(node *workflow.Stage, used refSet) *workflow.Stage {
	body := node.Body()
	if body.Tag() != reshape.ExprOp || body.OpName() != "$reshape" {
		src := deleteUnusedFields(node.Source(), allRefs())
		return node.WithSource(src)
	}
	args := body.OpArgs()
	var keptArgs []reshape.Expr
	for i := 0; i+1 < len(args); i += 2 {
		key, val := args[i], args[i+1]
		name := key.LiteralValue().Str()
		if used.includes(fieldpath.Root(fieldpath.Name(name))) {
			keptArgs = append(keptArgs, key, val)
		}
	}
	newBody := body.WithOpArgs(keptArgs)
	down := refsOf(reshape.FreeVars(newBody)...)
	src := deleteUnusedFields(node.Source(), down)
	return workflow.SimpleMap(src, node.Input(), newBody)
}

// nodeRefs is refs(node): the DocVars a stage's own expressions
// reference, used by the passthrough stages ($Match/$Sort/$Skip/$Limit/
// $Unwind) to extend what they forward to their source.
func nodeRefs(node *workflow.Stage) refSet {
	switch node.Tag() {
	case workflow.TagMatch:
		return refsOf(reshape.FreeVars(node.Selector())...)
	case workflow.TagSort:
		var vars []fieldpath.DocVar
		for _, k := range node.SortKeys() {
			vars = append(vars, fieldpath.Root(k.Path...))
		}
		return refsOf(vars...)
	case workflow.TagUnwind:
		return refsOf(node.UnwindVar())
	default:
		return noRefs()
	}
}
