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

package workflow

import (
	"testing"

	"github.com/dolthub/go-mongo-compiler/data"
	"github.com/dolthub/go-mongo-compiler/fieldpath"
	"github.com/dolthub/go-mongo-compiler/reshape"
	"github.com/stretchr/testify/require"
)

func TestProjectProjectFuses(t *testing.T) {
	read := Read("widgets")
	inner := Project(read, reshape.EmptyReshape().Set("y", reshape.Leaf(reshape.Var(fieldpath.Root(fieldpath.Name("x"))))), reshape.IgnoreId)
	outer := Project(inner, reshape.EmptyReshape().Set("z", reshape.Leaf(reshape.Var(fieldpath.Root(fieldpath.Name("y"))))), reshape.IgnoreId)

	require.Equal(t, TagProject, outer.Tag())
	require.Same(t, read, outer.Source())
	s, ok := outer.Shape().Get("z")
	require.True(t, ok)
	require.True(t, s.Expr().Equal(reshape.Var(fieldpath.Root(fieldpath.Name("x")))))
}

func TestMatchMatchFusesWithAnd(t *testing.T) {
	read := Read("widgets")
	a := reshape.Op("$eq", reshape.Var(fieldpath.Root(fieldpath.Name("a"))), reshape.Literal(data.IntFromInt64(1)))
	b := reshape.Op("$eq", reshape.Var(fieldpath.Root(fieldpath.Name("b"))), reshape.Literal(data.IntFromInt64(2)))
	m := Match(Match(read, a), b)

	require.Same(t, read, m.Source())
	require.Equal(t, "$and", m.Selector().OpName())
	require.Len(t, m.Selector().OpArgs(), 2)
}

func TestLimitLimitTakesMinimum(t *testing.T) {
	read := Read("widgets")
	l := Limit(Limit(read, 10), 3)
	require.Equal(t, int64(3), l.N())
	require.Same(t, read, l.Source())
}

func TestSkipSkipSums(t *testing.T) {
	read := Read("widgets")
	s := Skip(Skip(read, 5), 7)
	require.Equal(t, int64(12), s.N())
	require.Same(t, read, s.Source())
}

func TestFoldLeftChildren(t *testing.T) {
	l := Read("left")
	r := Read("right")
	f := FoldLeft([]*Stage{l, r})
	require.Len(t, f.Children(), 2)
}
