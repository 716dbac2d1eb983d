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
	"context"
	"testing"

	"github.com/dolthub/go-mongo-compiler/data"
	"github.com/dolthub/go-mongo-compiler/fieldpath"
	"github.com/dolthub/go-mongo-compiler/reshape"
	"github.com/dolthub/go-mongo-compiler/workflow"
	"github.com/stretchr/testify/require"
)

func eqVar(name string) reshape.Expr { return reshape.Var(fieldpath.Root(fieldpath.Name(name))) }

// TestReorderPushesMatchBelowRenameProject mirrors scenario S3: a $Match
// on a renamed field pushes below a pure-rename $Project.
func TestReorderPushesMatchBelowRenameProject(t *testing.T) {
	read := workflow.Read("t")
	p := reshape.EmptyReshape().Set("a", reshape.Leaf(eqVar("x"))).Set("b", reshape.Leaf(eqVar("y")))
	proj := workflow.RawProject(read, p, reshape.IgnoreId)
	sel := reshape.Op("$eq", eqVar("a"), reshape.Literal(data.IntFromInt64(1)))
	top := workflow.RawMatch(proj, sel)

	out := reorderOps(top)
	require.Equal(t, workflow.TagProject, out.Tag())
	require.Equal(t, workflow.TagMatch, out.Source().Tag())
	pushedSel := out.Source().Selector()
	require.Equal(t, "$eq", pushedSel.OpName())
	require.True(t, pushedSel.OpArgs()[0].Equal(eqVar("x")))
}

// TestCoalesceFusesAdjacentProjects mirrors scenario S4.
func TestCoalesceFusesAdjacentProjects(t *testing.T) {
	read := workflow.Read("t")
	inner := reshape.EmptyReshape().Set("a", reshape.Leaf(reshape.Literal(data.IntFromInt64(1)))).Set("b", reshape.Leaf(reshape.Literal(data.IntFromInt64(2))))
	p1 := workflow.RawProject(read, inner, reshape.IgnoreId)
	outer := reshape.EmptyReshape().Set("c", reshape.Leaf(eqVar("a")))
	p2 := workflow.RawProject(p1, outer, reshape.IgnoreId)

	fused := workflow.Coalesce(p2)
	require.Equal(t, workflow.TagProject, fused.Tag())
	require.Same(t, read, fused.Source())
	s, ok := fused.Shape().Get("c")
	require.True(t, ok)
	require.True(t, s.Expr().Equal(reshape.Literal(data.IntFromInt64(1))))
}

func TestDeleteUnusedFieldsPrunesProjectedColumn(t *testing.T) {
	read := workflow.Read("t")
	p := reshape.EmptyReshape().Set("a", reshape.Leaf(eqVar("x"))).Set("unused", reshape.Leaf(eqVar("y")))
	proj := workflow.RawProject(read, p, reshape.IgnoreId)
	match := workflow.RawMatch(proj, reshape.Op("$eq", eqVar("a"), reshape.Literal(data.IntFromInt64(1))))
	final := workflow.RawProject(match, reshape.EmptyReshape().Set("result", reshape.Leaf(eqVar("a"))), reshape.IgnoreId)

	out := deleteUnusedFields(final, allRefs())
	require.Equal(t, workflow.TagProject, out.Tag())
	proj2 := out.Source().Source()
	require.Equal(t, workflow.TagProject, proj2.Tag())
	_, hasA := proj2.Shape().Get("a")
	_, hasUnused := proj2.Shape().Get("unused")
	require.True(t, hasA)
	require.False(t, hasUnused)
}

func TestOptimizeIsIdempotent(t *testing.T) {
	read := workflow.Read("t")
	p := reshape.EmptyReshape().Set("a", reshape.Leaf(eqVar("x"))).Set("b", reshape.Leaf(eqVar("y")))
	proj := workflow.RawProject(read, p, reshape.IgnoreId)
	match := workflow.RawMatch(proj, reshape.Op("$eq", eqVar("a"), reshape.Literal(data.IntFromInt64(1))))

	once := Optimize(context.Background(), match, Options{})
	twice := Optimize(context.Background(), once, Options{})
	require.Equal(t, once.Hash(), twice.Hash())
}

func TestRenameProjectGroupBuildsRenameMap(t *testing.T) {
	p := reshape.EmptyReshape().
		Set("orderItems", reshape.Leaf(eqVar("items"))).
		Set("alias", reshape.Leaf(eqVar("items")))
	mapping, ok := renameProjectGroup(p)
	require.True(t, ok)
	require.Equal(t, []string{"orderItems", "alias"}, mapping["items"])
}

func TestRenameProjectGroupFailsOnComputedField(t *testing.T) {
	p := reshape.EmptyReshape().Set("total", reshape.Leaf(reshape.Op("$add", eqVar("a"), eqVar("b"))))
	_, ok := renameProjectGroup(p)
	require.False(t, ok)
}

func TestInlineProjectUnwindGroupRewritesUnwindAndGroupRefs(t *testing.T) {
	read := workflow.Read("t")
	p := reshape.EmptyReshape().Set("orderItems", reshape.Leaf(eqVar("items")))
	proj := workflow.RawProject(read, p, reshape.IgnoreId)
	unwind := workflow.Unwind(proj, fieldpath.Root(fieldpath.Name("items")))
	grouped := reshape.EmptyGrouped().Set("total", reshape.NewAccumulator(reshape.AccSum, eqVar("items")))
	group := workflow.Group(unwind, reshape.Leaf(reshape.Literal(data.Null)), grouped)

	out := inlineProjectUnwindGroup(group)
	require.Equal(t, workflow.TagGroup, out.Tag())
	newUnwind := out.Source()
	require.Equal(t, workflow.TagUnwind, newUnwind.Tag())
	require.True(t, newUnwind.UnwindVar().Equal(fieldpath.Root(fieldpath.Name("orderItems"))))
	acc, ok := out.Grouped().Get("total")
	require.True(t, ok)
	require.True(t, acc.Arg().Equal(eqVar("orderItems")))
}

func TestInlineGroupProjectsSplicesProjectIntoAccumulator(t *testing.T) {
	read := workflow.Read("t")
	p := reshape.EmptyReshape().Set("renamed", reshape.Leaf(eqVar("orig")))
	proj := workflow.RawProject(read, p, reshape.IgnoreId)
	grouped := reshape.EmptyGrouped().Set("total", reshape.NewAccumulator(reshape.AccSum, eqVar("renamed")))
	group := workflow.Group(proj, reshape.Leaf(reshape.Literal(data.Null)), grouped)

	out := inlineGroupProjects(group)
	require.Equal(t, workflow.TagGroup, out.Tag())
	require.Same(t, read, out.Source())
	acc, ok := out.Grouped().Get("total")
	require.True(t, ok)
	require.True(t, acc.Arg().Equal(eqVar("orig")))
}
