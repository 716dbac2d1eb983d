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

package shape

import (
	"testing"

	"github.com/dolthub/go-mongo-compiler/fieldpath"
	"github.com/dolthub/go-mongo-compiler/reshape"
	"github.com/stretchr/testify/require"
)

func TestFixExprResolvesThroughRename(t *testing.T) {
	// $Project{ y: "$x" } followed by a reference to "$y" should resolve
	// straight through to "$x".
	p := reshape.EmptyReshape().Set("y", reshape.Leaf(reshape.Var(fieldpath.Root(fieldpath.Name("x")))))
	e := reshape.Var(fieldpath.Root(fieldpath.Name("y")))
	fixed, ok := FixExpr([]reshape.Reshape{p}, e)
	require.True(t, ok)
	require.True(t, fixed.Equal(reshape.Var(fieldpath.Root(fieldpath.Name("x")))))
}

func TestFixExprResolvesNestedField(t *testing.T) {
	inner := reshape.EmptyReshape().Set("a", reshape.Leaf(reshape.Var(fieldpath.Root(fieldpath.Name("orig")))))
	p := reshape.EmptyReshape().Set("nested", reshape.Nested(inner))
	e := reshape.Var(fieldpath.Root(fieldpath.Name("nested"), fieldpath.Name("a")))
	fixed, ok := FixExpr([]reshape.Reshape{p}, e)
	require.True(t, ok)
	require.True(t, fixed.Equal(reshape.Var(fieldpath.Root(fieldpath.Name("orig")))))
}

func TestInlineProjectFusesTwoProjects(t *testing.T) {
	inner := reshape.EmptyReshape().Set("y", reshape.Leaf(reshape.Var(fieldpath.Root(fieldpath.Name("x")))))
	outer := reshape.EmptyReshape().Set("z", reshape.Leaf(reshape.Var(fieldpath.Root(fieldpath.Name("y")))))
	fused := InlineProject0(outer, []reshape.Reshape{inner})
	s, ok := fused.Get("z")
	require.True(t, ok)
	require.True(t, s.Expr().Equal(reshape.Var(fieldpath.Root(fieldpath.Name("x")))))
}

func TestFixExprFailsOnUnresolvableRef(t *testing.T) {
	p := reshape.EmptyReshape().Set("y", reshape.Leaf(reshape.Var(fieldpath.Root(fieldpath.Name("x")))))
	e := reshape.Var(fieldpath.Root(fieldpath.Name("nosuchfield")))
	_, ok := FixExpr([]reshape.Reshape{p}, e)
	require.False(t, ok)
}

func TestInlineProjectResolvesIncludeLeaf(t *testing.T) {
	// $Project{ x: "$orig" } followed by $Project{ x: $include() } should
	// fuse to $Project{ x: "$orig" }: the include leaf stands for
	// whatever the upstream shape produces at the same key.
	inner := reshape.EmptyReshape().Set("x", reshape.Leaf(reshape.Var(fieldpath.Root(fieldpath.Name("orig")))))
	outer := reshape.EmptyReshape().Set("x", reshape.Leaf(reshape.Include()))
	fused := InlineProject0(outer, []reshape.Reshape{inner})
	s, ok := fused.Get("x")
	require.True(t, ok)
	require.True(t, s.Expr().Equal(reshape.Var(fieldpath.Root(fieldpath.Name("orig")))))
}

func TestInlineProjectDropsUnresolvableIncludeLeaf(t *testing.T) {
	inner := reshape.EmptyReshape().Set("y", reshape.Leaf(reshape.Var(fieldpath.Root(fieldpath.Name("orig")))))
	outer := reshape.EmptyReshape().Set("missing", reshape.Leaf(reshape.Include()))
	fused := InlineProject0(outer, []reshape.Reshape{inner})
	_, ok := fused.Get("missing")
	require.False(t, ok)
}

func TestInlineProjectDropsUnresolvableField(t *testing.T) {
	p := reshape.EmptyReshape().Set("y", reshape.Leaf(reshape.Var(fieldpath.Root(fieldpath.Name("x")))))
	outer := reshape.EmptyReshape().
		Set("kept", reshape.Leaf(reshape.Var(fieldpath.Root(fieldpath.Name("y"))))).
		Set("dropped", reshape.Leaf(reshape.Var(fieldpath.Root(fieldpath.Name("nosuchfield")))))
	fused := InlineProject0(outer, []reshape.Reshape{p})
	_, hasDropped := fused.Get("dropped")
	require.False(t, hasDropped)
	kept, ok := fused.Get("kept")
	require.True(t, ok)
	require.True(t, kept.Expr().Equal(reshape.Var(fieldpath.Root(fieldpath.Name("x")))))
}
